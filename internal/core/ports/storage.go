package ports

import (
	"context"

	"github.com/BarzMap/ParksApp/internal/domain"
	"github.com/google/uuid"
)

// ParkStorage определяет методы для взаимодействия с хранилищем площадок
type ParkStorage interface {
	CreatePark(ctx context.Context, park *domain.Park) error
	GetParkByID(ctx context.Context, id uuid.UUID) (*domain.Park, error)
	ListParks(ctx context.Context, status string, page, perPage int) ([]domain.Park, error)
	ListParksInBounds(ctx context.Context, minLat, maxLat, minLng, maxLng float64, status string) ([]domain.Park, error)
	ModeratePark(ctx context.Context, id uuid.UUID, status string, moderatorID *uuid.UUID, adminNotes *string) (*domain.Park, error)
}

// EquipmentStorage определяет методы для взаимодействия с хранилищем снарядов
// и связями парк-снаряд
type EquipmentStorage interface {
	CreateEquipment(ctx context.Context, equipment *domain.Equipment) error
	GetEquipmentByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
	DeleteEquipment(ctx context.Context, id uuid.UUID) error
	LinkEquipmentToPark(ctx context.Context, parkID, equipmentID uuid.UUID) error
	ListEquipmentByPark(ctx context.Context, parkID uuid.UUID) ([]domain.Equipment, error)
}

// ImageStorage определяет методы для взаимодействия с хранилищем метаданных фотографий
type ImageStorage interface {
	CreateImage(ctx context.Context, image *domain.Image) error
	ListImagesByPark(ctx context.Context, parkID uuid.UUID) ([]domain.Image, error)
	GetPrimaryImage(ctx context.Context, parkID uuid.UUID) (*domain.Image, error)
	ApproveImage(ctx context.Context, id uuid.UUID) (*domain.Image, error)
}

// ReviewStorage определяет методы для взаимодействия с хранилищем отзывов
type ReviewStorage interface {
	CreateReview(ctx context.Context, review *domain.Review) error
	GetReviewByParkAndUser(ctx context.Context, parkID, userID uuid.UUID) (*domain.Review, error)
	ListReviewsByPark(ctx context.Context, parkID uuid.UUID, page, perPage int) ([]domain.Review, error)
}

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
