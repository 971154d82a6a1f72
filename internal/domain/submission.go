package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxSubmissionImages — максимум фотографий в одной заявке.
// Ограничение действует и на уровне парсинга формы, и на уровне валидации запроса.
const MaxSubmissionImages = 5

// ImageSubmission — фотография в составе заявки. Живет только в рамках запроса,
// постоянного идентификатора у нее нет до загрузки во внешний сервис.
type ImageSubmission struct {
	FileData []byte
	AltText  *string
}

// ParkSubmissionRequest — каноническое представление заявки на добавление площадки,
// собранное из multipart формы.
type ParkSubmissionRequest struct {
	Name         string            `json:"name"`
	Description  *string           `json:"description,omitempty"`
	Latitude     float64           `json:"latitude"`
	Longitude    float64           `json:"longitude"`
	Address      *string           `json:"address,omitempty"`
	SubmittedBy  *uuid.UUID        `json:"submitted_by,omitempty"`
	EquipmentIDs []uuid.UUID       `json:"equipment_ids,omitempty"`
	Images       []ImageSubmission `json:"-"`
}

// Validate проверяет структурные ограничения заявки (форма и диапазоны полей).
// Бизнес-валидация (существование снарядов) выполняется отдельно.
func (r *ParkSubmissionRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Address != nil {
		trimmed := strings.TrimSpace(*r.Address)
		r.Address = &trimmed
	}

	var errs []string
	if r.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if len(r.Name) > 255 {
		errs = append(errs, "name must be at most 255 characters")
	}
	if r.Description != nil && len(*r.Description) > 2000 {
		errs = append(errs, "description must be at most 2000 characters")
	}
	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, "latitude must be between -90 and 90")
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, "longitude must be between -180 and 180")
	}
	if len(r.Images) > MaxSubmissionImages {
		errs = append(errs, fmt.Sprintf("maximum of %d images allowed per park submission", MaxSubmissionImages))
	}
	for i, img := range r.Images {
		if img.AltText != nil && len(*img.AltText) > 255 {
			errs = append(errs, fmt.Sprintf("alt text for image %d must be at most 255 characters", i+1))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Messages: errs}
	}
	return nil
}

// ValidationResult — результат бизнес-валидации заявки.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// UploadedImage — результат успешной загрузки одной фотографии во внешний сервис.
// PrimaryURL и ThumbnailURL заполняются в адаптере при разборе ответа провайдера:
// первый вариант — основное разрешение, последний (если вариантов больше одного) — превью.
type UploadedImage struct {
	ProviderID   string   `json:"id"`
	Filename     *string  `json:"filename,omitempty"`
	Variants     []string `json:"variants,omitempty"`
	PrimaryURL   string   `json:"primary_url,omitempty"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
}

// ParkSubmissionResult — итог обработки заявки. Счетчики отражают фактически
// сохраненные данные: ImagesUploaded — число реально привязанных фото,
// EquipmentCount — размер списка снарядов из заявки.
type ParkSubmissionResult struct {
	ParkID         uuid.UUID  `json:"park_id"`
	Name           string     `json:"name"`
	Status         string     `json:"status"`
	SubmittedBy    *uuid.UUID `json:"submitted_by,omitempty"`
	SubmitDate     time.Time  `json:"submit_date"`
	CreatedAt      time.Time  `json:"created_at"`
	ImagesUploaded int        `json:"images_uploaded"`
	EquipmentCount int        `json:"equipment_count"`
}
