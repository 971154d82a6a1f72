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

// ImageStorage реализует ports.ImageStorage поверх PostgreSQL
type ImageStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewImageStorage(db *sqlx.DB, logger *slog.Logger) *ImageStorage {
	return &ImageStorage{db: db, logger: logger}
}

// CreateImage сохраняет метаданные фотографии площадки
func (s *ImageStorage) CreateImage(ctx context.Context, image *domain.Image) error {
	start := time.Now()

	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}

	query := `
	INSERT INTO images (id, park_id, uploaded_by, image_url, thumbnail_url, alt_text, is_approved, is_primary, is_inappropriate, upload_date, created_at)
	VALUES (:id, :park_id, :uploaded_by, :image_url, :thumbnail_url, :alt_text, :is_approved, :is_primary, :is_inappropriate, :upload_date, :created_at)
	`

	_, err := s.db.NamedExecContext(ctx, query, image)
	if err != nil {
		s.logger.Error("failed to create image", "park_id", image.ParkID, "error", err)
		return fmt.Errorf("ошибка при сохранении фотографии: %w", err)
	}

	s.logger.Info("image created successfully",
		"id", image.ID,
		"park_id", image.ParkID,
		"is_primary", image.IsPrimary,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListImagesByPark получает фотографии площадки (основная — первой)
func (s *ImageStorage) ListImagesByPark(ctx context.Context, parkID uuid.UUID) ([]domain.Image, error) {
	q := `
	SELECT * FROM images
	WHERE park_id = $1
	ORDER BY is_primary DESC, created_at ASC
	`

	var images []domain.Image
	if err := s.db.SelectContext(ctx, &images, q, parkID); err != nil {
		s.logger.Error("failed to list images by park", "park_id", parkID, "error", err)
		return nil, fmt.Errorf("ошибка при получении фотографий парка: %w", err)
	}
	return images, nil
}

// GetPrimaryImage получает основную фотографию площадки.
// Возвращает nil, nil если у площадки нет основной фотографии.
func (s *ImageStorage) GetPrimaryImage(ctx context.Context, parkID uuid.UUID) (*domain.Image, error) {
	var image domain.Image
	q := `SELECT * FROM images WHERE park_id = $1 AND is_primary = TRUE LIMIT 1`

	err := s.db.GetContext(ctx, &image, q, parkID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("failed to get primary image", "park_id", parkID, "error", err)
		return nil, fmt.Errorf("ошибка при получении основной фотографии: %w", err)
	}
	return &image, nil
}

// ApproveImage помечает фотографию прошедшей модерацию.
// Возвращает nil, nil если фотография не найдена.
func (s *ImageStorage) ApproveImage(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
	q := `
	UPDATE images
	SET is_approved = TRUE
	WHERE id = $1
	RETURNING *
	`

	var image domain.Image
	err := s.db.GetContext(ctx, &image, q, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("image not found for approval", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to approve image", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при одобрении фотографии: %w", err)
	}

	s.logger.Info("image approved", "id", id, "park_id", image.ParkID)
	return &image, nil
}
