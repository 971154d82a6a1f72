package usecase

import (
	"context"
	"fmt"

	"github.com/BarzMap/ParksApp/internal/domain"
)

// ValidateSubmission выполняет бизнес-валидацию заявки: каждый указанный
// снаряд должен существовать в справочнике. Проверяются ВСЕ идентификаторы,
// даже после первой ошибки, чтобы клиент увидел полный список проблем.
// Функция только читает данные, ничего не мутирует.
func ValidateSubmission(ctx context.Context, submission *domain.ParkSubmissionRequest, equipment EquipmentFinder) domain.ValidationResult {
	var errs []string

	for _, equipmentID := range submission.EquipmentIDs {
		found, err := equipment.GetEquipmentByID(ctx, equipmentID)
		if err != nil {
			errs = append(errs, fmt.Sprintf("error validating equipment ID %s: %v", equipmentID, err))
			continue
		}
		if found == nil {
			errs = append(errs, fmt.Sprintf("equipment with ID %s does not exist", equipmentID))
		}
	}

	// Остальная структурная валидация (диапазоны, длины) уже выполнена
	// на этапе разбора формы.

	return domain.ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
