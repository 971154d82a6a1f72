package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BarzMap/ParksApp/internal/core/ports"
	"github.com/BarzMap/ParksApp/internal/domain"
	"github.com/google/uuid"
)

// catalogUseCase implements CatalogUseCase
type catalogUseCase struct {
	parkStorage      ports.ParkStorage
	equipmentStorage ports.EquipmentStorage
	imageStorage     ports.ImageStorage
	reviewStorage    ports.ReviewStorage
	userStorage      ports.UserStorage
	logger           *slog.Logger
}

// NewCatalogUseCase создает новый экземпляр CatalogUseCase
func NewCatalogUseCase(
	parkStorage ports.ParkStorage,
	equipmentStorage ports.EquipmentStorage,
	imageStorage ports.ImageStorage,
	reviewStorage ports.ReviewStorage,
	userStorage ports.UserStorage,
	logger *slog.Logger,
) CatalogUseCase {
	return &catalogUseCase{
		parkStorage:      parkStorage,
		equipmentStorage: equipmentStorage,
		imageStorage:     imageStorage,
		reviewStorage:    reviewStorage,
		userStorage:      userStorage,
		logger:           logger,
	}
}

func (uc *catalogUseCase) GetPark(ctx context.Context, id uuid.UUID) (*domain.Park, error) {
	park, err := uc.parkStorage.GetParkByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении парка по ID %s: %w", id, err)
	}
	if park == nil {
		return nil, domain.ErrNotFound
	}
	return park, nil
}

func (uc *catalogUseCase) ListParks(ctx context.Context, status string, page, perPage int) ([]domain.Park, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	parks, err := uc.parkStorage.ListParks(ctx, status, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении списка парков: %w", err)
	}
	return parks, nil
}

func (uc *catalogUseCase) ListParksInBounds(ctx context.Context, minLat, maxLat, minLng, maxLng float64) ([]domain.Park, error) {
	// Публичная карта показывает только одобренные площадки.
	parks, err := uc.parkStorage.ListParksInBounds(ctx, minLat, maxLat, minLng, maxLng, domain.ParkStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при поиске парков в границах: %w", err)
	}
	return parks, nil
}

func (uc *catalogUseCase) ListParkImages(ctx context.Context, parkID uuid.UUID) ([]domain.Image, error) {
	images, err := uc.imageStorage.ListImagesByPark(ctx, parkID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении фотографий парка %s: %w", parkID, err)
	}
	return images, nil
}

func (uc *catalogUseCase) ListParkEquipment(ctx context.Context, parkID uuid.UUID) ([]domain.Equipment, error) {
	equipment, err := uc.equipmentStorage.ListEquipmentByPark(ctx, parkID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении снарядов парка %s: %w", parkID, err)
	}
	return equipment, nil
}

func (uc *catalogUseCase) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	equipment, err := uc.equipmentStorage.ListEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении справочника снарядов: %w", err)
	}
	return equipment, nil
}

func (uc *catalogUseCase) CreateEquipment(ctx context.Context, equipment *domain.Equipment) error {
	if equipment.Name == "" {
		return &domain.ValidationError{Messages: []string{"equipment name must not be empty"}}
	}
	if err := uc.equipmentStorage.CreateEquipment(ctx, equipment); err != nil {
		return fmt.Errorf("usecase: ошибка при создании снаряда: %w", err)
	}
	uc.logger.Info("equipment created", "equipment_id", equipment.ID, "name", equipment.Name)
	return nil
}

func (uc *catalogUseCase) DeleteEquipment(ctx context.Context, id uuid.UUID) error {
	if err := uc.equipmentStorage.DeleteEquipment(ctx, id); err != nil {
		return fmt.Errorf("usecase: ошибка при удалении снаряда %s: %w", id, err)
	}
	return nil
}

func (uc *catalogUseCase) CreateReview(ctx context.Context, review *domain.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return &domain.ValidationError{Messages: []string{"rating must be between 1 and 5"}}
	}

	park, err := uc.parkStorage.GetParkByID(ctx, review.ParkID)
	if err != nil {
		return fmt.Errorf("usecase: ошибка при проверке парка для отзыва: %w", err)
	}
	if park == nil {
		return domain.ErrNotFound
	}

	user, err := uc.userStorage.GetUserByID(ctx, review.UserID)
	if err != nil {
		return fmt.Errorf("usecase: ошибка при проверке автора отзыва: %w", err)
	}
	if user == nil {
		return &domain.ValidationError{Messages: []string{"review author does not exist"}}
	}

	existing, err := uc.reviewStorage.GetReviewByParkAndUser(ctx, review.ParkID, review.UserID)
	if err != nil {
		return fmt.Errorf("usecase: ошибка при проверке существующего отзыва: %w", err)
	}
	if existing != nil {
		return &domain.ValidationError{Messages: []string{"user has already reviewed this park"}}
	}

	if err := uc.reviewStorage.CreateReview(ctx, review); err != nil {
		return fmt.Errorf("usecase: ошибка при создании отзыва: %w", err)
	}
	uc.logger.Info("review created", "review_id", review.ID, "park_id", review.ParkID)
	return nil
}

func (uc *catalogUseCase) ListParkReviews(ctx context.Context, parkID uuid.UUID, page, perPage int) ([]domain.Review, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	reviews, err := uc.reviewStorage.ListReviewsByPark(ctx, parkID, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении отзывов парка %s: %w", parkID, err)
	}
	return reviews, nil
}

func (uc *catalogUseCase) ModeratePark(ctx context.Context, id uuid.UUID, status string, moderatorID *uuid.UUID, adminNotes *string) (*domain.Park, error) {
	if status != domain.ParkStatusApproved && status != domain.ParkStatusRejected {
		return nil, &domain.ValidationError{Messages: []string{"status must be approved or rejected"}}
	}

	park, err := uc.parkStorage.ModeratePark(ctx, id, status, moderatorID, adminNotes)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при модерации парка %s: %w", id, err)
	}
	if park == nil {
		return nil, domain.ErrNotFound
	}
	uc.logger.Info("park moderated", "park_id", id, "status", status)
	return park, nil
}

func (uc *catalogUseCase) ApproveImage(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
	image, err := uc.imageStorage.ApproveImage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при одобрении фотографии %s: %w", id, err)
	}
	if image == nil {
		return nil, domain.ErrNotFound
	}
	return image, nil
}
