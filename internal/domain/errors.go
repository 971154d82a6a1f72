package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUploadServiceUnavailable возвращается, когда сервис загрузки изображений
// не сконфигурирован (нет токена или account ID). HTTP слой отдает 503.
var ErrUploadServiceUnavailable = errors.New("image upload service unavailable - missing configuration")

// ErrNotFound возвращается usecase-слоем, когда запрошенная сущность отсутствует.
// HTTP слой отдает 404.
var ErrNotFound = errors.New("not found")

// Категории ошибок загрузки одного изображения.
const (
	UploadErrorInvalidInput = "invalid_input"
	UploadErrorHTTP         = "http_error"
	UploadErrorUnexpected   = "unexpected_error"
)

// ImageUploadError описывает ошибку загрузки одного изображения из пачки.
type ImageUploadError struct {
	Index   int    `json:"index"`
	Kind    string `json:"error"`
	Message string `json:"message"`
}

func (e *ImageUploadError) Error() string {
	return fmt.Sprintf("image %d: %s: %s", e.Index, e.Kind, e.Message)
}

// ValidationError — ошибка входных данных клиента (парсинг формы или
// бизнес-валидация). Несет полный список проблем, а не только первую.
// HTTP слой отдает 400.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "park submission validation failed: " + strings.Join(e.Messages, "; ")
}

// AllUploadsFailedError возвращается пакетной загрузкой, когда не удалась
// ни одна попытка. Единственный случай, когда сбой загрузки фатален для
// всей заявки.
type AllUploadsFailedError struct {
	Failures []ImageUploadError
}

func (e *AllUploadsFailedError) Error() string {
	return fmt.Sprintf("all image uploads failed (%d failures)", len(e.Failures))
}
