package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BarzMap/ParksApp/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ReviewStorage реализует ports.ReviewStorage поверх PostgreSQL
type ReviewStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewReviewStorage(db *sqlx.DB, logger *slog.Logger) *ReviewStorage {
	return &ReviewStorage{db: db, logger: logger}
}

// CreateReview сохраняет отзыв о площадке
func (s *ReviewStorage) CreateReview(ctx context.Context, review *domain.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	now := time.Now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	if review.UpdatedAt.IsZero() {
		review.UpdatedAt = now
	}

	query := `
	INSERT INTO reviews (id, park_id, user_id, rating, comment, created_at, updated_at)
	VALUES (:id, :park_id, :user_id, :rating, :comment, :created_at, :updated_at)
	`

	_, err := s.db.NamedExecContext(ctx, query, review)
	if err != nil {
		s.logger.Error("failed to create review", "park_id", review.ParkID, "user_id", review.UserID, "error", err)
		return fmt.Errorf("ошибка при создании отзыва: %w", err)
	}

	s.logger.Info("review created successfully", "id", review.ID, "park_id", review.ParkID)
	return nil
}

// GetReviewByParkAndUser получает отзыв пользователя о площадке.
// Возвращает nil, nil если отзыва нет.
func (s *ReviewStorage) GetReviewByParkAndUser(ctx context.Context, parkID, userID uuid.UUID) (*domain.Review, error) {
	var review domain.Review
	q := `SELECT * FROM reviews WHERE park_id = $1 AND user_id = $2 LIMIT 1`

	err := s.db.GetContext(ctx, &review, q, parkID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("failed to get review by park and user", "park_id", parkID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("ошибка при получении отзыва: %w", err)
	}
	return &review, nil
}

// ListReviewsByPark получает отзывы площадки с пагинацией
func (s *ReviewStorage) ListReviewsByPark(ctx context.Context, parkID uuid.UUID, page, perPage int) ([]domain.Review, error) {
	offset := (page - 1) * perPage
	q := `
	SELECT * FROM reviews
	WHERE park_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`

	var reviews []domain.Review
	if err := s.db.SelectContext(ctx, &reviews, q, parkID, perPage, offset); err != nil {
		s.logger.Error("failed to list reviews by park", "park_id", parkID, "error", err)
		return nil, fmt.Errorf("ошибка при получении отзывов парка: %w", err)
	}
	return reviews, nil
}
