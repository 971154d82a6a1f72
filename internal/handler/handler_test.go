package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BarzMap/ParksApp/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmissionUseCase struct {
	result *domain.ParkSubmissionResult
	err    error
}

func (f *fakeSubmissionUseCase) ProcessSubmission(context.Context, *domain.ParkSubmissionRequest) (*domain.ParkSubmissionResult, error) {
	return f.result, f.err
}

func newSubmissionRequest(t *testing.T) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "Harbor Street Workout"))
	require.NoError(t, writer.WriteField("latitude", "59.9311"))
	require.NoError(t, writer.WriteField("longitude", "30.3609"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/submissions", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubmitPark_Success(t *testing.T) {
	parkID := uuid.New()
	uc := &fakeSubmissionUseCase{
		result: &domain.ParkSubmissionResult{
			ParkID:         parkID,
			Name:           "Harbor Street Workout",
			Status:         domain.ParkStatusPending,
			SubmitDate:     time.Now(),
			CreatedAt:      time.Now(),
			ImagesUploaded: 0,
			EquipmentCount: 0,
		},
	}
	h := NewSubmissionHandler(uc, discardLogger())

	rec := httptest.NewRecorder()
	h.SubmitPark(rec, newSubmissionRequest(t))

	assert.Equal(t, http.StatusOK, rec.Code)

	var payload domain.ParkSubmissionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, parkID, payload.ParkID)
	assert.Equal(t, domain.ParkStatusPending, payload.Status)
}

func TestSubmitPark_ValidationErrorReturns400(t *testing.T) {
	uc := &fakeSubmissionUseCase{
		err: &domain.ValidationError{Messages: []string{"equipment with ID x does not exist"}},
	}
	h := NewSubmissionHandler(uc, discardLogger())

	rec := httptest.NewRecorder()
	h.SubmitPark(rec, newSubmissionRequest(t))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Errors, 1)
}

func TestSubmitPark_UploadServiceUnavailableReturns503(t *testing.T) {
	uc := &fakeSubmissionUseCase{err: domain.ErrUploadServiceUnavailable}
	h := NewSubmissionHandler(uc, discardLogger())

	rec := httptest.NewRecorder()
	h.SubmitPark(rec, newSubmissionRequest(t))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSubmitPark_AllUploadsFailedReturns500WithFailures(t *testing.T) {
	uc := &fakeSubmissionUseCase{
		err: &domain.AllUploadsFailedError{Failures: []domain.ImageUploadError{
			{Index: 0, Kind: domain.UploadErrorHTTP, Message: "status 502"},
			{Index: 1, Kind: domain.UploadErrorInvalidInput, Message: "image content is empty"},
		}},
	}
	h := NewSubmissionHandler(uc, discardLogger())

	rec := httptest.NewRecorder()
	h.SubmitPark(rec, newSubmissionRequest(t))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var payload struct {
		Failures []domain.ImageUploadError `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Failures, 2)
	assert.Equal(t, domain.UploadErrorHTTP, payload.Failures[0].Kind)
}

func TestSubmitPark_UnexpectedErrorReturns500(t *testing.T) {
	uc := &fakeSubmissionUseCase{err: errors.New("something exploded")}
	h := NewSubmissionHandler(uc, discardLogger())

	rec := httptest.NewRecorder()
	h.SubmitPark(rec, newSubmissionRequest(t))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSubmitPark_MalformedFormReturns400(t *testing.T) {
	h := NewSubmissionHandler(&fakeSubmissionUseCase{}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/submissions", bytes.NewBufferString("not a form"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=broken")

	rec := httptest.NewRecorder()
	h.SubmitPark(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitPark_BadFormFieldReturns400(t *testing.T) {
	// Ошибка разбора формы (не число в latitude) не должна доходить до usecase
	uc := &fakeSubmissionUseCase{err: errors.New("must not be called")}
	h := NewSubmissionHandler(uc, discardLogger())

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "Harbor Street Workout"))
	require.NoError(t, writer.WriteField("latitude", "not-a-number"))
	require.NoError(t, writer.WriteField("longitude", "30.36"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/submissions", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	h.SubmitPark(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
