package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/BarzMap/ParksApp/internal/core/ports"
	"github.com/BarzMap/ParksApp/internal/domain"
	"github.com/BarzMap/ParksApp/internal/messaging/payloads"
	"github.com/google/uuid"
)

// submissionUseCase implements SubmissionUseCase
type submissionUseCase struct {
	parkStorage      ports.ParkStorage
	equipmentStorage ports.EquipmentStorage
	imageStorage     ports.ImageStorage
	imageUploader    ImageUploader
	imageArchive     ImageArchive
	publisher        ports.ParkSubmittedPublisher
	logger           *slog.Logger
}

// NewSubmissionUseCase создает новый экземпляр SubmissionUseCase
// принимает реализации портов хранения, загрузчик изображений, архив и publisher
func NewSubmissionUseCase(
	parkStorage ports.ParkStorage,
	equipmentStorage ports.EquipmentStorage,
	imageStorage ports.ImageStorage,
	imageUploader ImageUploader,
	imageArchive ImageArchive,
	publisher ports.ParkSubmittedPublisher,
	logger *slog.Logger,
) SubmissionUseCase {
	return &submissionUseCase{
		parkStorage:      parkStorage,
		equipmentStorage: equipmentStorage,
		imageStorage:     imageStorage,
		imageUploader:    imageUploader,
		imageArchive:     imageArchive,
		publisher:        publisher,
		logger:           logger,
	}
}

// equipmentLinkResult — результат привязки одного снаряда к парку.
// Политика "продолжаем при сбое" видна в типе, а не спрятана в теле цикла.
type equipmentLinkResult struct {
	EquipmentID uuid.UUID
	Err         error
}

// imageLinkResult — результат сохранения метаданных одной загруженной фотографии.
type imageLinkResult struct {
	Index int
	Image *domain.Image
	Err   error
}

// ProcessSubmission проводит заявку через конвейер:
// валидация -> загрузка фото -> создание парка -> связи снарядов -> связи фото -> итог.
// Все неожиданные сбои ловятся на внешней границе и не утекают наружу
// ничем, кроме текста ошибки.
func (uc *submissionUseCase) ProcessSubmission(ctx context.Context, submission *domain.ParkSubmissionRequest) (result *domain.ParkSubmissionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("panic while processing park submission", "panic", r)
			result = nil
			err = fmt.Errorf("an unexpected error occurred while processing park submission: %v", r)
		}
	}()

	// 1. Бизнес-валидация. Парк не создается и загрузки не запускаются,
	// пока заявка не прошла проверку ссылок.
	validation := ValidateSubmission(ctx, submission, uc.equipmentStorage)
	if !validation.IsValid {
		return nil, &domain.ValidationError{Messages: validation.Errors}
	}

	// 2. Загрузка фотографий во внешний сервис.
	var uploadedImages []domain.UploadedImage
	if len(submission.Images) > 0 {
		if len(submission.Images) > domain.MaxSubmissionImages {
			// Парсер это уже отсек, но на всякий случай не даем пачке разрастись.
			uc.logger.Warn("too many images provided, only uploading first 5",
				"provided", len(submission.Images),
			)
			submission.Images = submission.Images[:domain.MaxSubmissionImages]
		}

		uploaded, uploadErr := uc.imageUploader.UploadImages(ctx, submission.Images)
		switch {
		case uploadErr == nil:
			uploadedImages = uploaded
		case isFatalUploadError(uploadErr):
			// Полный провал загрузки (или недоступность сервиса) фатален
			// для всей заявки — пробрасываем как есть.
			return nil, uploadErr
		default:
			// Любой другой сбой загрузчика не должен терять данные заявки:
			// продолжаем без фотографий.
			uc.logger.Error("failed to upload images, continuing without photos", "error", uploadErr)
		}
	}

	// 3. Создание записи парка. Статус всегда pending, что бы ни пришло в заявке.
	now := time.Now()
	park := &domain.Park{
		ID:          uuid.New(),
		Name:        submission.Name,
		Description: submission.Description,
		Latitude:    submission.Latitude,
		Longitude:   submission.Longitude,
		Address:     submission.Address,
		Status:      domain.ParkStatusPending,
		SubmittedBy: submission.SubmittedBy,
		SubmitDate:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.parkStorage.CreatePark(ctx, park); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при создании парка: %w", err)
	}

	// 4. Связи парк-снаряд, каждая независимо; сбой одной не блокирует остальные.
	linkResults := uc.linkEquipment(ctx, park.ID, submission.EquipmentIDs)
	for _, link := range linkResults {
		if link.Err != nil {
			uc.logger.Error("failed to link equipment to park",
				"park_id", park.ID,
				"equipment_id", link.EquipmentID,
				"error", link.Err,
			)
		}
	}

	// 5. Архив оригиналов для аудита модерации. Строго best-effort.
	uc.archiveOriginals(ctx, park.ID, submission.Images)

	// 6. Сохранение метаданных загруженных фотографий в исходном порядке.
	imageResults := uc.linkImages(ctx, park, submission, uploadedImages)
	imagesUploaded := 0
	for _, linked := range imageResults {
		if linked.Err != nil {
			uc.logger.Error("failed to create image record",
				"park_id", park.ID,
				"index", linked.Index,
				"error", linked.Err,
			)
			continue
		}
		imagesUploaded++
	}

	result = &domain.ParkSubmissionResult{
		ParkID:         park.ID,
		Name:           park.Name,
		Status:         park.Status,
		SubmittedBy:    park.SubmittedBy,
		SubmitDate:     park.SubmitDate,
		CreatedAt:      park.CreatedAt,
		ImagesUploaded: imagesUploaded,
		// Счетчик снарядов отражает заявку, а не число реально созданных связей.
		EquipmentCount: len(submission.EquipmentIDs),
	}

	uc.publishSubmitted(ctx, result)

	uc.logger.Info("park submission processed",
		"park_id", park.ID,
		"images_uploaded", result.ImagesUploaded,
		"equipment_count", result.EquipmentCount,
	)
	return result, nil
}

// isFatalUploadError выделяет случаи, когда сбой загрузки фатален для заявки:
// чистый отчет "все загрузки упали" либо несконфигурированный сервис.
func isFatalUploadError(err error) bool {
	var allFailed *domain.AllUploadsFailedError
	var validation *domain.ValidationError
	return errors.As(err, &allFailed) ||
		errors.As(err, &validation) ||
		errors.Is(err, domain.ErrUploadServiceUnavailable)
}

func (uc *submissionUseCase) linkEquipment(ctx context.Context, parkID uuid.UUID, equipmentIDs []uuid.UUID) []equipmentLinkResult {
	results := make([]equipmentLinkResult, 0, len(equipmentIDs))
	for _, equipmentID := range equipmentIDs {
		err := uc.equipmentStorage.LinkEquipmentToPark(ctx, parkID, equipmentID)
		results = append(results, equipmentLinkResult{EquipmentID: equipmentID, Err: err})
	}
	return results
}

// linkImages сохраняет метаданные успешно загруженных фотографий.
// Первая реально привязанная фотография (не первая в заявке!) помечается
// основной; фото без вариантов пропускается и в счетчик не попадает.
func (uc *submissionUseCase) linkImages(ctx context.Context, park *domain.Park, submission *domain.ParkSubmissionRequest, uploadedImages []domain.UploadedImage) []imageLinkResult {
	var results []imageLinkResult
	linkedCount := 0

	for index, uploaded := range uploadedImages {
		if uploaded.PrimaryURL == "" {
			uc.logger.Warn("uploaded image has no variants, skipping",
				"park_id", park.ID,
				"provider_id", uploaded.ProviderID,
			)
			continue
		}

		now := time.Now()
		image := &domain.Image{
			ID:           uuid.New(),
			ParkID:       park.ID,
			UploadedBy:   submission.SubmittedBy,
			ImageURL:     uploaded.PrimaryURL,
			ThumbnailURL: uploaded.ThumbnailURL,
			IsPrimary:    linkedCount == 0,
			IsApproved:   false, // фото показывается публично только после модерации
			UploadDate:   now,
			CreatedAt:    now,
		}

		err := uc.imageStorage.CreateImage(ctx, image)
		if err == nil {
			linkedCount++
		}
		results = append(results, imageLinkResult{Index: index, Image: image, Err: err})
	}
	return results
}

// archiveOriginals складывает исходные байты фотографий заявки в S3-архив.
// Сбой архива никогда не влияет на итог заявки.
func (uc *submissionUseCase) archiveOriginals(ctx context.Context, parkID uuid.UUID, images []domain.ImageSubmission) {
	if uc.imageArchive == nil {
		return
	}
	for idx, image := range images {
		if len(image.FileData) == 0 {
			continue
		}
		key := fmt.Sprintf("submissions/%s/%d", parkID, idx)
		contentType := http.DetectContentType(image.FileData)
		if _, err := uc.imageArchive.UploadFile(ctx, key, bytes.NewReader(image.FileData), contentType); err != nil {
			uc.logger.Warn("failed to archive submission image",
				"park_id", parkID,
				"index", idx,
				"error", err,
			)
		}
	}
}

// publishSubmitted отправляет уведомление модераторам. Best-effort:
// заявка уже сохранена, потеря уведомления не должна ее ломать.
func (uc *submissionUseCase) publishSubmitted(ctx context.Context, result *domain.ParkSubmissionResult) {
	if uc.publisher == nil {
		return
	}
	payload := payloads.ParkSubmittedPayload{
		ParkID:         result.ParkID,
		Name:           result.Name,
		Status:         result.Status,
		SubmittedBy:    result.SubmittedBy,
		ImagesUploaded: result.ImagesUploaded,
		EquipmentCount: result.EquipmentCount,
		SubmittedAt:    result.SubmitDate,
	}
	if err := uc.publisher.PublishParkSubmitted(ctx, payload); err != nil {
		uc.logger.Warn("failed to publish park submitted notification",
			"park_id", result.ParkID,
			"error", err,
		)
	}
}
