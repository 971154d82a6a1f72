package usecase

import (
	"context"

	"github.com/BarzMap/ParksApp/internal/domain"
	"github.com/google/uuid"
)

// CatalogUseCase определяет интерфейс для публичного каталога площадок
// и операций модерации
type CatalogUseCase interface {
	// GetPark получает площадку по внутреннему ID
	GetPark(ctx context.Context, id uuid.UUID) (*domain.Park, error)

	// ListParks получает площадки с фильтром по статусу и пагинацией
	ListParks(ctx context.Context, status string, page, perPage int) ([]domain.Park, error)

	// ListParksInBounds получает одобренные площадки внутри географической рамки
	ListParksInBounds(ctx context.Context, minLat, maxLat, minLng, maxLng float64) ([]domain.Park, error)

	// ListParkImages получает фотографии площадки
	ListParkImages(ctx context.Context, parkID uuid.UUID) ([]domain.Image, error)

	// ListParkEquipment получает снаряды, привязанные к площадке
	ListParkEquipment(ctx context.Context, parkID uuid.UUID) ([]domain.Equipment, error)

	// ListEquipment получает весь справочник снарядов
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)

	// CreateEquipment добавляет снаряд в справочник
	CreateEquipment(ctx context.Context, equipment *domain.Equipment) error

	// DeleteEquipment удаляет снаряд из справочника
	DeleteEquipment(ctx context.Context, id uuid.UUID) error

	// CreateReview добавляет отзыв; на пару (park, user) допускается один отзыв
	CreateReview(ctx context.Context, review *domain.Review) error

	// ListParkReviews получает отзывы площадки с пагинацией
	ListParkReviews(ctx context.Context, parkID uuid.UUID, page, perPage int) ([]domain.Review, error)

	// ModeratePark переводит площадку в статус approved/rejected
	ModeratePark(ctx context.Context, id uuid.UUID, status string, moderatorID *uuid.UUID, adminNotes *string) (*domain.Park, error)

	// ApproveImage помечает фотографию прошедшей модерацию
	ApproveImage(ctx context.Context, id uuid.UUID) (*domain.Image, error)
}
