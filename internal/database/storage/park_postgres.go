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

// ParkStorage реализует ports.ParkStorage поверх PostgreSQL
type ParkStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewParkStorage(db *sqlx.DB, logger *slog.Logger) *ParkStorage {
	return &ParkStorage{db: db, logger: logger}
}

// CreatePark сохраняет новую площадку в базе данных
func (s *ParkStorage) CreatePark(ctx context.Context, park *domain.Park) error {
	start := time.Now()

	if park.ID == uuid.Nil {
		park.ID = uuid.New()
	}

	query := `
	INSERT INTO parks (id, name, description, latitude, longitude, address, status, submitted_by, submit_date, created_at, updated_at)
	VALUES (:id, :name, :description, :latitude, :longitude, :address, :status, :submitted_by, :submit_date, :created_at, :updated_at)
	`

	_, err := s.db.NamedExecContext(ctx, query, park)
	if err != nil {
		s.logger.Error("failed to create park", "name", park.Name, "error", err)
		return fmt.Errorf("ошибка при создании парка: %w", err)
	}

	s.logger.Info("park created successfully",
		"id", park.ID,
		"name", park.Name,
		"status", park.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetParkByID получает площадку по ID
func (s *ParkStorage) GetParkByID(ctx context.Context, id uuid.UUID) (*domain.Park, error) {
	var park domain.Park
	query := `SELECT * FROM parks WHERE id = $1 LIMIT 1`

	err := s.db.GetContext(ctx, &park, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("park not found by id", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to get park by id", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении парка по ID: %w", err)
	}
	return &park, nil
}

// ListParks получает площадки с фильтром по статусу и пагинацией
func (s *ParkStorage) ListParks(ctx context.Context, status string, page, perPage int) ([]domain.Park, error) {
	start := time.Now()
	offset := (page - 1) * perPage

	var parks []domain.Park
	var err error

	if status != "" {
		q := `
		SELECT * FROM parks
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
		`
		err = s.db.SelectContext(ctx, &parks, q, status, perPage, offset)
	} else {
		q := `
		SELECT * FROM parks
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
		`
		err = s.db.SelectContext(ctx, &parks, q, perPage, offset)
	}

	if err != nil {
		s.logger.Error("failed to list parks", "status", status, "page", page, "error", err)
		return nil, fmt.Errorf("ошибка при получении списка парков: %w", err)
	}

	s.logger.Info("parks listed successfully",
		"status", status,
		"count", len(parks),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return parks, nil
}

// ListParksInBounds получает площадки внутри географической рамки
func (s *ParkStorage) ListParksInBounds(ctx context.Context, minLat, maxLat, minLng, maxLng float64, status string) ([]domain.Park, error) {
	q := `
	SELECT * FROM parks
	WHERE latitude BETWEEN $1 AND $2
	  AND longitude BETWEEN $3 AND $4
	  AND ($5 = '' OR status = $5)
	ORDER BY created_at DESC
	`

	var parks []domain.Park
	if err := s.db.SelectContext(ctx, &parks, q, minLat, maxLat, minLng, maxLng, status); err != nil {
		s.logger.Error("failed to list parks in bounds", "error", err)
		return nil, fmt.Errorf("ошибка при поиске парков в границах: %w", err)
	}
	return parks, nil
}

// ModeratePark обновляет статус площадки по решению модератора.
// Возвращает nil, nil если площадка не найдена.
func (s *ParkStorage) ModeratePark(ctx context.Context, id uuid.UUID, status string, moderatorID *uuid.UUID, adminNotes *string) (*domain.Park, error) {
	start := time.Now()

	q := `
	UPDATE parks
	SET status = $2,
	    approved_by = $3,
	    approved_at = CASE WHEN $2 = 'approved' THEN NOW() ELSE approved_at END,
	    admin_notes = COALESCE($4, admin_notes),
	    updated_at = NOW()
	WHERE id = $1
	RETURNING *
	`

	var park domain.Park
	err := s.db.GetContext(ctx, &park, q, id, status, moderatorID, adminNotes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("park not found for moderation", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to moderate park", "id", id, "status", status, "error", err)
		return nil, fmt.Errorf("ошибка при модерации парка: %w", err)
	}

	s.logger.Info("park moderated successfully",
		"id", id,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &park, nil
}
