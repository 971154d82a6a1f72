package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/BarzMap/ParksApp/internal/domain"
	"github.com/BarzMap/ParksApp/internal/usecase"
)

// SubmissionHandler — обработчик HTTP-запросов конвейера заявок на площадки.
type SubmissionHandler struct {
	submissionUseCase usecase.SubmissionUseCase
	logger            *slog.Logger
}

// NewSubmissionHandler создаёт новый экземпляр SubmissionHandler.
func NewSubmissionHandler(uc usecase.SubmissionUseCase, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionUseCase: uc,
		logger:            logger,
	}
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// respondWithSubmissionError маппит таксономию ошибок конвейера заявок
// в HTTP статусы: 400 — ошибки клиента, 503 — несконфигурированный сервис
// загрузки, 500 — полный провал загрузок и все неожиданное.
func respondWithSubmissionError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "park submission validation failed",
			"errors":  validationErr.Messages,
		}, logger)
		return
	}

	if errors.Is(err, domain.ErrUploadServiceUnavailable) {
		respondWithError(w, http.StatusServiceUnavailable, err.Error(), logger)
		return
	}

	var allFailed *domain.AllUploadsFailedError
	if errors.As(err, &allFailed) {
		respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message":  "all image uploads failed",
			"failures": allFailed.Failures,
		}, logger)
		return
	}

	respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"message": "an unexpected error occurred while processing park submission",
		"error":   err.Error(),
	}, logger)
}

// SubmitPark — принимает multipart заявку на новую площадку.
//
// Поля формы: name, description, latitude, longitude, address, submitted_by,
// equipment_ids (JSON массив UUID), image_alt_texts (JSON массив).
// Файлы: images (до 5 штук).
func (h *SubmissionHandler) SubmitPark(w http.ResponseWriter, r *http.Request) {
	// 32 МБ в памяти достаточно: размер заявки ограничен лимитом в 5 фото.
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.logger.Warn("failed to parse multipart form", "error", err)
		respondWithError(w, http.StatusBadRequest, "invalid multipart form data", h.logger)
		return
	}
	if r.MultipartForm == nil {
		respondWithError(w, http.StatusBadRequest, "multipart form data is required", h.logger)
		return
	}

	submission, err := usecase.ParseSubmissionForm(r.MultipartForm)
	if err != nil {
		h.logger.Warn("failed to parse park submission form", "error", err)
		respondWithSubmissionError(w, err, h.logger)
		return
	}

	h.logger.Info("processing park submission",
		"endpoint", "SubmitPark",
		"name", submission.Name,
		"images", len(submission.Images),
		"equipment_ids", len(submission.EquipmentIDs),
	)

	result, err := h.submissionUseCase.ProcessSubmission(r.Context(), submission)
	if err != nil {
		h.logger.Error("failed to process park submission", "name", submission.Name, "error", err)
		respondWithSubmissionError(w, err, h.logger)
		return
	}

	h.logger.Info("park submission processed successfully", "park_id", result.ParkID)
	respondWithJSON(w, http.StatusOK, result, h.logger)
}
