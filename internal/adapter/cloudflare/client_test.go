package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BarzMap/ParksApp/internal/config"
	"github.com/BarzMap/ParksApp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46}

func newTestClient(t *testing.T, baseURL string) *ImagesAPIClient {
	t.Helper()
	cfg := &config.Config{
		CloudflareAPIToken:  "test-token",
		CloudflareAccountID: "test-account",
		CloudflareAPIBase:   baseURL,
		UploadTimeout:       5 * time.Second,
	}
	return NewImagesAPIClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func successResponse(id string, variants ...string) string {
	body, _ := json.Marshal(uploadResponse{
		Success: true,
		Result: &imageResult{
			ID:       id,
			Filename: "photo.jpg",
			Variants: variants,
		},
	})
	return string(body)
}

func TestUploadSingleImage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts/test-account/images/v1", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(32<<20))
		files := r.MultipartForm.File["file"]
		require.Len(t, files, 1)

		fmt.Fprint(w, successResponse("img-1", "https://cdn.example/img-1/public", "https://cdn.example/img-1/medium", "https://cdn.example/img-1/thumbnail"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	uploaded, uploadErr := client.UploadSingleImage(context.Background(), 0, domain.ImageSubmission{FileData: jpegBytes})

	require.Nil(t, uploadErr)
	require.NotNil(t, uploaded)
	assert.Equal(t, "img-1", uploaded.ProviderID)
	assert.Equal(t, "https://cdn.example/img-1/public", uploaded.PrimaryURL)
	require.NotNil(t, uploaded.ThumbnailURL)
	assert.Equal(t, "https://cdn.example/img-1/thumbnail", *uploaded.ThumbnailURL)
}

func TestUploadSingleImage_SingleVariantHasNoThumbnail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, successResponse("img-2", "https://cdn.example/img-2/public"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	uploaded, uploadErr := client.UploadSingleImage(context.Background(), 0, domain.ImageSubmission{FileData: jpegBytes})

	require.Nil(t, uploadErr)
	assert.Equal(t, "https://cdn.example/img-2/public", uploaded.PrimaryURL)
	assert.Nil(t, uploaded.ThumbnailURL)
}

func TestUploadSingleImage_EmptyDataFailsWithoutNetworkCall(t *testing.T) {
	var called atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	uploaded, uploadErr := client.UploadSingleImage(context.Background(), 3, domain.ImageSubmission{FileData: nil})

	assert.Nil(t, uploaded)
	require.NotNil(t, uploadErr)
	assert.Equal(t, 3, uploadErr.Index)
	assert.Equal(t, domain.UploadErrorInvalidInput, uploadErr.Kind)
	assert.False(t, called.Load(), "empty image must be rejected before any HTTP request")
}

func TestUploadSingleImage_SVGRejectedWithoutNetworkCall(t *testing.T) {
	var called atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, uploadErr := client.UploadSingleImage(context.Background(), 0, domain.ImageSubmission{
		FileData: []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`),
	})

	require.NotNil(t, uploadErr)
	assert.Equal(t, domain.UploadErrorInvalidInput, uploadErr.Kind)
	assert.False(t, called.Load())
}

func TestUploadSingleImage_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream unavailable")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, uploadErr := client.UploadSingleImage(context.Background(), 1, domain.ImageSubmission{FileData: jpegBytes})

	require.NotNil(t, uploadErr)
	assert.Equal(t, domain.UploadErrorHTTP, uploadErr.Kind)
	assert.Contains(t, uploadErr.Message, "502")
}

func TestUploadSingleImage_SuccessWithoutImageID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "result": {"id": "", "variants": []}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, uploadErr := client.UploadSingleImage(context.Background(), 0, domain.ImageSubmission{FileData: jpegBytes})

	require.NotNil(t, uploadErr)
	assert.Equal(t, domain.UploadErrorHTTP, uploadErr.Kind)
	assert.Contains(t, uploadErr.Message, "missing image id")
}

func TestUploadSingleImage_MalformedJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "{not json")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, uploadErr := client.UploadSingleImage(context.Background(), 0, domain.ImageSubmission{FileData: jpegBytes})

	require.NotNil(t, uploadErr)
	assert.Equal(t, domain.UploadErrorUnexpected, uploadErr.Kind)
}

func TestUploadImages_EmptyListIsValidationError(t *testing.T) {
	client := newTestClient(t, "http://unused.invalid")

	_, err := client.UploadImages(context.Background(), nil)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestUploadImages_MissingCredentials(t *testing.T) {
	cfg := &config.Config{
		CloudflareAPIBase: "http://unused.invalid",
		UploadTimeout:     time.Second,
	}
	client := NewImagesAPIClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.UploadImages(context.Background(), []domain.ImageSubmission{{FileData: jpegBytes}})

	assert.ErrorIs(t, err, domain.ErrUploadServiceUnavailable)
}

func TestUploadImages_PartialSuccess(t *testing.T) {
	// Второй запрос падает, остальные проходят: результат содержит только успехи.
	var counter atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := counter.Add(1)
		if n == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, successResponse(fmt.Sprintf("img-%d", n), "https://cdn.example/public", "https://cdn.example/thumbnail"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	images := []domain.ImageSubmission{
		{FileData: jpegBytes},
		{FileData: jpegBytes},
		{FileData: jpegBytes},
	}

	uploaded, err := client.UploadImages(context.Background(), images)

	require.NoError(t, err)
	assert.Len(t, uploaded, 2)
}

func TestUploadImages_AllFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	images := []domain.ImageSubmission{
		{FileData: jpegBytes},
		{FileData: nil}, // невалидный контент, до сети не дойдет
	}

	uploaded, err := client.UploadImages(context.Background(), images)

	assert.Nil(t, uploaded)
	var allFailed *domain.AllUploadsFailedError
	require.ErrorAs(t, err, &allFailed)
	require.Len(t, allFailed.Failures, 2)

	kinds := map[int]string{}
	for _, failure := range allFailed.Failures {
		kinds[failure.Index] = failure.Kind
	}
	assert.Equal(t, domain.UploadErrorHTTP, kinds[0])
	assert.Equal(t, domain.UploadErrorInvalidInput, kinds[1])
}

func TestUploadImages_ResultsKeepSubmissionOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		files := r.MultipartForm.File["file"]
		require.Len(t, files, 1)
		// Имя файла несет индекс заявки, отдаем его назад как ID
		fmt.Fprint(w, successResponse(files[0].Filename, "https://cdn.example/public"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	images := []domain.ImageSubmission{
		{FileData: jpegBytes},
		{FileData: jpegBytes},
		{FileData: jpegBytes},
	}

	uploaded, err := client.UploadImages(context.Background(), images)

	require.NoError(t, err)
	require.Len(t, uploaded, 3)
	for i, img := range uploaded {
		assert.Equal(t, fmt.Sprintf("image-%d", i), img.ProviderID)
	}
}
