package usecase

import (
	"context"
	"io"

	"github.com/BarzMap/ParksApp/internal/domain"
	"github.com/google/uuid"
)

// ImageUploader определяет интерфейс для загрузки фотографий заявки во внешний
// хостинг изображений (Cloudflare Images). Адаптер маппит ответ провайдера
// во внутреннюю доменную модель UploadedImage.
type ImageUploader interface {
	// UploadImages загружает пачку изображений конкурентно и возвращает
	// только успешно загруженные. Если не удалась ни одна загрузка —
	// возвращает domain.AllUploadsFailedError.
	UploadImages(ctx context.Context, images []domain.ImageSubmission) ([]domain.UploadedImage, error)
}

// ImageArchive определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO)
// порт для архивирования оригиналов фотографий заявок (аудит модерации)
type ImageArchive interface {
	// UploadFile загружает файл в хранилище и возвращает его публичный URL.
	// `key` - это уникальное имя файла в хранилище.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteFile удаляет файл из хранилища по его ключу.
	DeleteFile(ctx context.Context, key string) error
}

// EquipmentFinder — минимальный контракт чтения, который нужен валидатору заявки.
type EquipmentFinder interface {
	GetEquipmentByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)
}

// SubmissionUseCase определяет интерфейс для бизнес-логики обработки заявок на площадки
type SubmissionUseCase interface {
	// ProcessSubmission проводит заявку через весь конвейер:
	// валидация -> загрузка фото -> создание парка -> связи -> итог.
	// Парк не создается, если валидация не прошла; сбои отдельных связей
	// после создания парка заявку не откатывают.
	ProcessSubmission(ctx context.Context, submission *domain.ParkSubmissionRequest) (*domain.ParkSubmissionResult, error)
}
