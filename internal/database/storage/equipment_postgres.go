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

// EquipmentStorage реализует ports.EquipmentStorage поверх PostgreSQL
type EquipmentStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewEquipmentStorage(db *sqlx.DB, logger *slog.Logger) *EquipmentStorage {
	return &EquipmentStorage{db: db, logger: logger}
}

// CreateEquipment добавляет снаряд в справочник
func (s *EquipmentStorage) CreateEquipment(ctx context.Context, equipment *domain.Equipment) error {
	if equipment.ID == uuid.Nil {
		equipment.ID = uuid.New()
	}
	if equipment.CreatedAt.IsZero() {
		equipment.CreatedAt = time.Now()
	}

	query := `
	INSERT INTO equipment (id, name, description, icon_name, created_at)
	VALUES (:id, :name, :description, :icon_name, :created_at)
	`

	_, err := s.db.NamedExecContext(ctx, query, equipment)
	if err != nil {
		s.logger.Error("failed to create equipment", "name", equipment.Name, "error", err)
		return fmt.Errorf("ошибка при создании снаряда: %w", err)
	}

	s.logger.Info("equipment created successfully", "id", equipment.ID, "name", equipment.Name)
	return nil
}

// GetEquipmentByID получает снаряд по ID. Возвращает nil, nil если не найден.
func (s *EquipmentStorage) GetEquipmentByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error) {
	var equipment domain.Equipment
	query := `SELECT * FROM equipment WHERE id = $1 LIMIT 1`

	err := s.db.GetContext(ctx, &equipment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("failed to get equipment by id", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении снаряда по ID: %w", err)
	}
	return &equipment, nil
}

// ListEquipment получает весь справочник снарядов
func (s *EquipmentStorage) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	q := `SELECT * FROM equipment ORDER BY name ASC`

	var equipment []domain.Equipment
	if err := s.db.SelectContext(ctx, &equipment, q); err != nil {
		s.logger.Error("failed to list equipment", "error", err)
		return nil, fmt.Errorf("ошибка при получении справочника снарядов: %w", err)
	}
	return equipment, nil
}

// DeleteEquipment удаляет снаряд из справочника
func (s *EquipmentStorage) DeleteEquipment(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete equipment", "id", id, "error", err)
		return fmt.Errorf("ошибка при удалении снаряда: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		s.logger.Warn("equipment not found for deletion", "id", id)
	}
	return nil
}

// LinkEquipmentToPark создает связь парк-снаряд.
// Уникальность пары обеспечивает constraint uq_park_equipment.
func (s *EquipmentStorage) LinkEquipmentToPark(ctx context.Context, parkID, equipmentID uuid.UUID) error {
	start := time.Now()

	link := domain.ParkEquipment{
		ID:          uuid.New(),
		ParkID:      parkID,
		EquipmentID: equipmentID,
		CreatedAt:   time.Now(),
	}

	query := `
	INSERT INTO park_equipment (id, park_id, equipment_id, created_at)
	VALUES (:id, :park_id, :equipment_id, :created_at)
	`

	_, err := s.db.NamedExecContext(ctx, query, link)
	if err != nil {
		s.logger.Error("failed to link equipment to park",
			"park_id", parkID,
			"equipment_id", equipmentID,
			"error", err,
		)
		return fmt.Errorf("ошибка при привязке снаряда к парку: %w", err)
	}

	s.logger.Info("equipment linked to park",
		"park_id", parkID,
		"equipment_id", equipmentID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListEquipmentByPark получает снаряды, привязанные к площадке
func (s *EquipmentStorage) ListEquipmentByPark(ctx context.Context, parkID uuid.UUID) ([]domain.Equipment, error) {
	q := `
	SELECT e.* FROM equipment e
	JOIN park_equipment pe ON pe.equipment_id = e.id
	WHERE pe.park_id = $1
	ORDER BY e.name ASC
	`

	var equipment []domain.Equipment
	if err := s.db.SelectContext(ctx, &equipment, q, parkID); err != nil {
		s.logger.Error("failed to list equipment by park", "park_id", parkID, "error", err)
		return nil, fmt.Errorf("ошибка при получении снарядов парка: %w", err)
	}
	return equipment, nil
}
