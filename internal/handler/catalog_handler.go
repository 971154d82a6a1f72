package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/BarzMap/ParksApp/internal/domain"
	"github.com/BarzMap/ParksApp/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CatalogHandler — обработчик HTTP-запросов публичного каталога и модерации.
type CatalogHandler struct {
	catalogUseCase usecase.CatalogUseCase
	logger         *slog.Logger
}

// NewCatalogHandler создаёт новый экземпляр CatalogHandler.
func NewCatalogHandler(uc usecase.CatalogUseCase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: uc,
		logger:         logger,
	}
}

// respondWithCatalogError маппит ошибки каталога в HTTP статусы.
func respondWithCatalogError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "validation failed",
			"errors":  validationErr.Messages,
		}, logger)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "resource not found", logger)
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error", logger)
}

// parseUUIDParam извлекает UUID из path-параметра chi.
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// parsePagination читает page и per_page из query-параметров.
func parsePagination(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	return page, perPage
}

// ListParks — список площадок с фильтром по статусу и пагинацией.
// GET /parks?status=approved&page=1&per_page=20
func (h *CatalogHandler) ListParks(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	page, perPage := parsePagination(r)

	parks, err := h.catalogUseCase.ListParks(r.Context(), status, page, perPage)
	if err != nil {
		h.logger.Error("failed to list parks", "error", err)
		respondWithCatalogError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, parks, h.logger)
}

// ListParksInBounds — одобренные площадки внутри географической рамки.
// GET /parks/within?min_lat=..&max_lat=..&min_lng=..&max_lng=..
func (h *CatalogHandler) ListParksInBounds(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	bounds := make(map[string]float64, 4)
	for _, name := range []string{"min_lat", "max_lat", "min_lng", "max_lng"} {
		value, err := strconv.ParseFloat(query.Get(name), 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid bounding box parameter: "+name, h.logger)
			return
		}
		bounds[name] = value
	}

	parks, err := h.catalogUseCase.ListParksInBounds(r.Context(),
		bounds["min_lat"], bounds["max_lat"], bounds["min_lng"], bounds["max_lng"])
	if err != nil {
		h.logger.Error("failed to list parks in bounds", "error", err)
		respondWithCatalogError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, parks, h.logger)
}

// GetPark — площадка по ID.
// GET /parks/{parkID}
func (h *CatalogHandler) GetPark(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "parkID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid park ID", h.logger)
		return
	}

	park, err := h.catalogUseCase.GetPark(r.Context(), id)
	if err != nil {
		respondWithCatalogError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, park, h.logger)
}

// ListParkImages — фотографии площадки.
// GET /parks/{parkID}/images
func (h *CatalogHandler) ListParkImages(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "parkID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid park ID", h.logger)
		return
	}

	images, err := h.catalogUseCase.ListParkImages(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list park images", "park_id", id, "error", err)
		respondWithCatalogError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, images, h.logger)
}

// ListParkEquipment — снаряды площадки.
// GET /parks/{parkID}/equipment
func (h *CatalogHandler) ListParkEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "parkID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid park ID", h.logger)
		return
	}

	equipment, err := h.catalogUseCase.ListParkEquipment(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list park equipment", "park_id", id, "error", err)
		respondWithCatalogError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, equipment, h.logger)
}

// ListEquipment — справочник снарядов.
// GET /equipment
func (h *CatalogHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.catalogUseCase.ListEquipment(r.Context())
	if err != nil {
		h.logger.Error("failed to list equipment", "error", err)
		respondWithCatalogError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, equipment, h.logger)
}

type createEquipmentRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IconName    *string `json:"icon_name"`
}

// CreateEquipment — добавление снаряда в справочник.
// POST /equipment
func (h *CatalogHandler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var req createEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	equipment := &domain.Equipment{
		Name:        req.Name,
		Description: req.Description,
		IconName:    req.IconName,
	}
	if err := h.catalogUseCase.CreateEquipment(r.Context(), equipment); err != nil {
		h.logger.Error("failed to create equipment", "name", req.Name, "error", err)
		respondWithCatalogError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, equipment, h.logger)
}

// DeleteEquipment — удаление снаряда из справочника.
// DELETE /equipment/{equipmentID}
func (h *CatalogHandler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "equipmentID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid equipment ID", h.logger)
		return
	}

	if err := h.catalogUseCase.DeleteEquipment(r.Context(), id); err != nil {
		h.logger.Error("failed to delete equipment", "equipment_id", id, "error", err)
		respondWithCatalogError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createReviewRequest struct {
	UserID  uuid.UUID `json:"user_id"`
	Rating  int       `json:"rating"`
	Comment *string   `json:"comment"`
}

// CreateReview — добавление отзыва о площадке.
// POST /parks/{parkID}/reviews
func (h *CatalogHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	parkID, err := parseUUIDParam(r, "parkID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid park ID", h.logger)
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	review := &domain.Review{
		ParkID:  parkID,
		UserID:  req.UserID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := h.catalogUseCase.CreateReview(r.Context(), review); err != nil {
		h.logger.Error("failed to create review", "park_id", parkID, "error", err)
		respondWithCatalogError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, review, h.logger)
}

// ListParkReviews — отзывы площадки с пагинацией.
// GET /parks/{parkID}/reviews
func (h *CatalogHandler) ListParkReviews(w http.ResponseWriter, r *http.Request) {
	parkID, err := parseUUIDParam(r, "parkID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid park ID", h.logger)
		return
	}
	page, perPage := parsePagination(r)

	reviews, err := h.catalogUseCase.ListParkReviews(r.Context(), parkID, page, perPage)
	if err != nil {
		h.logger.Error("failed to list park reviews", "park_id", parkID, "error", err)
		respondWithCatalogError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews, h.logger)
}

type moderateParkRequest struct {
	Status      string     `json:"status"`
	ModeratorID *uuid.UUID `json:"moderator_id"`
	AdminNotes  *string    `json:"admin_notes"`
}

// ModeratePark — перевод площадки в статус approved/rejected.
// POST /admin/parks/{parkID}/moderate
func (h *CatalogHandler) ModeratePark(w http.ResponseWriter, r *http.Request) {
	parkID, err := parseUUIDParam(r, "parkID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid park ID", h.logger)
		return
	}

	var req moderateParkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	park, err := h.catalogUseCase.ModeratePark(r.Context(), parkID, req.Status, req.ModeratorID, req.AdminNotes)
	if err != nil {
		h.logger.Error("failed to moderate park", "park_id", parkID, "status", req.Status, "error", err)
		respondWithCatalogError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, park, h.logger)
}

// ApproveImage — пометка фотографии прошедшей модерацию.
// POST /admin/images/{imageID}/approve
func (h *CatalogHandler) ApproveImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := parseUUIDParam(r, "imageID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid image ID", h.logger)
		return
	}

	image, err := h.catalogUseCase.ApproveImage(r.Context(), imageID)
	if err != nil {
		h.logger.Error("failed to approve image", "image_id", imageID, "error", err)
		respondWithCatalogError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, image, h.logger)
}
