package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/BarzMap/ParksApp/internal/config"
	"github.com/BarzMap/ParksApp/internal/domain"
)

// ImagesAPIClient представляет клиент для загрузки изображений в Cloudflare Images.
// Клиент конструируется явно и передается в usecase как зависимость —
// никакого глобального состояния с токеном на уровне пакета.
type ImagesAPIClient struct {
	httpClient *http.Client
	apiToken   string
	accountID  string
	baseURL    string
	logger     *slog.Logger
}

// NewImagesAPIClient создает новый экземпляр ImagesAPIClient.
// Отсутствующие креденшелы не являются ошибкой конструирования:
// они проверяются при загрузке и превращаются в ErrUploadServiceUnavailable.
func NewImagesAPIClient(cfg *config.Config, logger *slog.Logger) *ImagesAPIClient {
	if cfg.CloudflareAPIToken == "" {
		logger.Warn("CLOUDFLARE_API_TOKEN not set - image uploads will fail")
	}
	if cfg.CloudflareAccountID == "" {
		logger.Warn("CLOUDFLARE_ACCOUNT_ID not set - image uploads will fail")
	}

	return &ImagesAPIClient{
		httpClient: &http.Client{Timeout: cfg.UploadTimeout},
		apiToken:   cfg.CloudflareAPIToken,
		accountID:  cfg.CloudflareAccountID,
		baseURL:    cfg.CloudflareAPIBase,
		logger:     logger,
	}
}

// singleUploadResult — результат загрузки одного изображения: либо успех, либо ошибка.
type singleUploadResult struct {
	uploaded *domain.UploadedImage
	failure  *domain.ImageUploadError
}

// UploadSingleImage загружает одно изображение и возвращает либо результат,
// либо ошибку с категорией и индексом. Экспортирован для прямого тестирования.
func (c *ImagesAPIClient) UploadSingleImage(ctx context.Context, index int, image domain.ImageSubmission) (*domain.UploadedImage, *domain.ImageUploadError) {
	contentType, err := detectContentType(image.FileData)
	if err != nil {
		// Пустой или векторный контент отклоняем без сетевого вызова.
		c.logger.Warn("invalid image data", "index", index, "error", err)
		return nil, &domain.ImageUploadError{
			Index:   index,
			Kind:    domain.UploadErrorInvalidInput,
			Message: err.Error(),
		}
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	partHeader := make(map[string][]string)
	partHeader["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename="image-%d"`, index)}
	partHeader["Content-Type"] = []string{contentType}

	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, &domain.ImageUploadError{
			Index:   index,
			Kind:    domain.UploadErrorUnexpected,
			Message: fmt.Sprintf("failed to build multipart body: %v", err),
		}
	}
	if _, err := part.Write(image.FileData); err != nil {
		return nil, &domain.ImageUploadError{
			Index:   index,
			Kind:    domain.UploadErrorUnexpected,
			Message: fmt.Sprintf("failed to write image data: %v", err),
		}
	}
	if err := writer.Close(); err != nil {
		return nil, &domain.ImageUploadError{
			Index:   index,
			Kind:    domain.UploadErrorUnexpected,
			Message: fmt.Sprintf("failed to finalize multipart body: %v", err),
		}
	}

	endpoint := fmt.Sprintf("%s/accounts/%s/images/v1", c.baseURL, c.accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, &domain.ImageUploadError{
			Index:   index,
			Kind:    domain.UploadErrorUnexpected,
			Message: fmt.Sprintf("failed to create HTTP request: %v", err),
		}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("cloudflare upload request failed", "index", index, "error", err)
		return nil, &domain.ImageUploadError{
			Index:   index,
			Kind:    domain.UploadErrorHTTP,
			Message: err.Error(),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ImageUploadError{
			Index:   index,
			Kind:    domain.UploadErrorUnexpected,
			Message: fmt.Sprintf("failed to read response body: %v", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("cloudflare API returned error status",
			"index", index,
			"status", resp.StatusCode,
			"body", string(respBody),
		)
		return nil, &domain.ImageUploadError{
			Index:   index,
			Kind:    domain.UploadErrorHTTP,
			Message: fmt.Sprintf("cloudflare API returned status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var parsed uploadResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &domain.ImageUploadError{
			Index:   index,
			Kind:    domain.UploadErrorUnexpected,
			Message: fmt.Sprintf("failed to decode cloudflare response: %v", err),
		}
	}

	if !parsed.Success || parsed.Result == nil || parsed.Result.ID == "" {
		message := "cloudflare reported upload failure"
		if len(parsed.Errors) > 0 {
			message = fmt.Sprintf("cloudflare error %d: %s", parsed.Errors[0].Code, parsed.Errors[0].Message)
		} else if parsed.Success && (parsed.Result == nil || parsed.Result.ID == "") {
			message = "cloudflare response missing image id"
		}
		c.logger.Error("cloudflare upload rejected", "index", index, "message", message)
		return nil, &domain.ImageUploadError{
			Index:   index,
			Kind:    domain.UploadErrorHTTP,
			Message: message,
		}
	}

	return mapResultToUploadedImage(parsed.Result), nil
}

// mapResultToUploadedImage преобразует ответ провайдера в доменную модель.
// Конвенция порядка вариантов фиксируется здесь, на границе с провайдером:
// variants[0] — основное разрешение, последний вариант (если их больше одного) — превью.
func mapResultToUploadedImage(result *imageResult) *domain.UploadedImage {
	img := &domain.UploadedImage{
		ProviderID: result.ID,
		Variants:   result.Variants,
	}
	if result.Filename != "" {
		filename := result.Filename
		img.Filename = &filename
	}
	if len(result.Variants) > 0 {
		img.PrimaryURL = result.Variants[0]
	}
	if len(result.Variants) > 1 {
		thumb := result.Variants[len(result.Variants)-1]
		img.ThumbnailURL = &thumb
	}
	return img
}

// UploadImages загружает пачку изображений конкурентно и возвращает успешно
// загруженные. Если не удалась НИ ОДНА загрузка — возвращает
// AllUploadsFailedError со всеми деталями. Частичные сбои только логируются.
func (c *ImagesAPIClient) UploadImages(ctx context.Context, images []domain.ImageSubmission) ([]domain.UploadedImage, error) {
	if len(images) == 0 {
		return nil, &domain.ValidationError{Messages: []string{"no images provided for upload"}}
	}

	if c.apiToken == "" || c.accountID == "" {
		c.logger.Error("cloudflare client not configured - missing API token or account ID")
		return nil, domain.ErrUploadServiceUnavailable
	}

	// Загрузки независимы и ограничены сетевой задержкой, поэтому запускаем
	// их параллельно и собираем результаты по индексам.
	results := make([]singleUploadResult, len(images))
	var wg sync.WaitGroup
	for i, img := range images {
		wg.Add(1)
		go func(index int, image domain.ImageSubmission) {
			defer wg.Done()
			uploaded, failure := c.UploadSingleImage(ctx, index, image)
			results[index] = singleUploadResult{uploaded: uploaded, failure: failure}
		}(i, img)
	}
	wg.Wait()

	var uploadedImages []domain.UploadedImage
	var failedUploads []domain.ImageUploadError
	for _, result := range results {
		if result.uploaded != nil {
			uploadedImages = append(uploadedImages, *result.uploaded)
		} else if result.failure != nil {
			failedUploads = append(failedUploads, *result.failure)
		}
	}

	if len(uploadedImages) == 0 && len(failedUploads) > 0 {
		return nil, &domain.AllUploadsFailedError{Failures: failedUploads}
	}

	if len(failedUploads) > 0 {
		c.logger.Warn("partial upload success",
			"succeeded", len(uploadedImages),
			"failed", len(failedUploads),
		)
	}

	return uploadedImages, nil
}
