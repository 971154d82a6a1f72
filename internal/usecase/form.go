package usecase

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/BarzMap/ParksApp/internal/domain"
	"github.com/google/uuid"
)

// Имена полей multipart формы заявки.
const (
	formFieldName          = "name"
	formFieldDescription   = "description"
	formFieldLatitude      = "latitude"
	formFieldLongitude     = "longitude"
	formFieldAddress       = "address"
	formFieldSubmittedBy   = "submitted_by"
	formFieldEquipmentIDs  = "equipment_ids"
	formFieldImages        = "images"
	formFieldImageAltTexts = "image_alt_texts"
)

func formValue(form *multipart.Form, key string) string {
	values := form.Value[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// ParseSubmissionForm разбирает multipart форму в каноническую заявку.
//
// Обрабатывает:
// - лимит на количество изображений
// - JSON-массивы equipment_ids и image_alt_texts
// - UUID в submitted_by
// - чтение содержимого файлов (файлы читаются ровно один раз)
//
// Файлы читаются в память целиком: размер заявки ограничен лимитом в 5 фото.
func ParseSubmissionForm(form *multipart.Form) (*domain.ParkSubmissionRequest, error) {
	files := form.File[formFieldImages]
	if len(files) > domain.MaxSubmissionImages {
		return nil, &domain.ValidationError{Messages: []string{
			fmt.Sprintf("maximum of %d images allowed per park submission", domain.MaxSubmissionImages),
		}}
	}

	name := strings.TrimSpace(formValue(form, formFieldName))
	if name == "" {
		return nil, &domain.ValidationError{Messages: []string{"name is required"}}
	}

	latitude, err := strconv.ParseFloat(formValue(form, formFieldLatitude), 64)
	if err != nil {
		return nil, &domain.ValidationError{Messages: []string{"latitude must be a valid number"}}
	}
	longitude, err := strconv.ParseFloat(formValue(form, formFieldLongitude), 64)
	if err != nil {
		return nil, &domain.ValidationError{Messages: []string{"longitude must be a valid number"}}
	}

	var description *string
	if v := formValue(form, formFieldDescription); v != "" {
		description = &v
	}

	var address *string
	if v := strings.TrimSpace(formValue(form, formFieldAddress)); v != "" {
		address = &v
	}

	var submittedBy *uuid.UUID
	if v := formValue(form, formFieldSubmittedBy); v != "" {
		parsed, err := uuid.Parse(v)
		if err != nil {
			return nil, &domain.ValidationError{Messages: []string{"invalid submitted_by UUID format"}}
		}
		submittedBy = &parsed
	}

	var equipmentIDs []uuid.UUID
	if v := formValue(form, formFieldEquipmentIDs); v != "" {
		var raw []string
		if err := json.Unmarshal([]byte(v), &raw); err != nil {
			return nil, &domain.ValidationError{Messages: []string{
				fmt.Sprintf("invalid equipment_ids format: %v", err),
			}}
		}
		for _, eid := range raw {
			parsed, err := uuid.Parse(eid)
			if err != nil {
				return nil, &domain.ValidationError{Messages: []string{
					fmt.Sprintf("invalid equipment_ids format: %q is not a valid UUID", eid),
				}}
			}
			equipmentIDs = append(equipmentIDs, parsed)
		}
	}

	// Альт-тексты выравниваются с файлами по позиции; если список короче —
	// недостающие считаются отсутствующими, это не ошибка.
	var altTexts []*string
	if v := formValue(form, formFieldImageAltTexts); v != "" {
		if err := json.Unmarshal([]byte(v), &altTexts); err != nil {
			return nil, &domain.ValidationError{Messages: []string{
				fmt.Sprintf("invalid image_alt_texts format: %v", err),
			}}
		}
	}

	var images []domain.ImageSubmission
	for idx, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("ошибка открытия файла изображения %d: %w", idx, err)
		}
		content, err := io.ReadAll(file)
		closeErr := file.Close()
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения файла изображения %d: %w", idx, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("ошибка закрытия файла изображения %d: %w", idx, closeErr)
		}

		var altText *string
		if idx < len(altTexts) {
			altText = altTexts[idx]
		}
		images = append(images, domain.ImageSubmission{
			FileData: content,
			AltText:  altText,
		})
	}

	submission := &domain.ParkSubmissionRequest{
		Name:         name,
		Description:  description,
		Latitude:     latitude,
		Longitude:    longitude,
		Address:      address,
		SubmittedBy:  submittedBy,
		EquipmentIDs: equipmentIDs,
		Images:       images,
	}

	if err := submission.Validate(); err != nil {
		return nil, err
	}
	return submission, nil
}
