package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/geonews/geonews/internal/auth"
	"github.com/geonews/geonews/internal/geo"
	"github.com/geonews/geonews/internal/handler/dto"
	"github.com/geonews/geonews/internal/service"
)

// NewsHandler handles HTTP requests for news operations.
type NewsHandler struct {
	svc    *service.NewsService
	logger *slog.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(svc *service.NewsService, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /news/.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	user := auth.MustUserFromContext(r.Context())

	item, err := h.svc.Create(r.Context(), input, user.Name)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("news_created",
		"news_id", item.ID,
		"news_source", item.NewsSource,
		"type", string(item.Type),
	)

	writeJSON(w, http.StatusCreated, dto.ToNewsResponse(item))
}

// List handles GET /news/.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNewsListResponse(items))
}

// ListBySource handles GET /news/by_source/{source}.
func (h *NewsHandler) ListBySource(w http.ResponseWriter, r *http.Request) {
	source := chi.URLParam(r, "source")

	items, err := h.svc.ListBySource(r.Context(), source)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNewsListResponse(items))
}

// Get handles GET /news/{id}.
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNewsResponse(item))
}

// Update handles PUT /news/{id}.
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	user := auth.MustUserFromContext(r.Context())

	item, err := h.svc.Update(r.Context(), id, input, user.Name)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("news_updated",
		"news_id", item.ID,
		"news_source", item.NewsSource,
	)

	writeJSON(w, http.StatusOK, dto.ToNewsResponse(item))
}

// Delete handles DELETE /news/{id}.
// Responds with the deleted item's prior state.
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	user := auth.MustUserFromContext(r.Context())

	item, err := h.svc.Delete(r.Context(), id, user.Name)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("news_deleted",
		"news_id", id,
		"news_source", item.NewsSource,
	)

	writeJSON(w, http.StatusOK, dto.ToNewsResponse(item))
}

// decodeInput decodes and validates the request body shared by Create and
// Update. Writes the error response itself and returns ok=false on failure.
func (h *NewsHandler) decodeInput(w http.ResponseWriter, r *http.Request) (service.NewsInput, bool) {
	var req dto.NewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return service.NewsInput{}, false
	}

	date, err := req.ParseDate()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_DATE", "Date must be formatted as YYYY-MM-DD")
		return service.NewsInput{}, false
	}

	return service.NewsInput{
		Title:       req.Title,
		Description: req.Description,
		Coordinates: req.Coordinates,
		Type:        req.Type,
		Date:        date,
		URL:         req.URL,
	}, true
}

// parseID parses the {id} route parameter.
func (h *NewsHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusNotFound, "NEWS_NOT_FOUND", "News item not found")
		return 0, false
	}
	return id, true
}

// handleServiceError maps news service errors to HTTP responses.
func (h *NewsHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNewsNotFound):
		h.writeError(w, http.StatusNotFound, "NEWS_NOT_FOUND", "News item not found")
	case errors.Is(err, service.ErrForbidden):
		h.writeError(w, http.StatusForbidden, "FORBIDDEN", "Not authorized")
	case errors.Is(err, service.ErrURLTaken):
		h.writeError(w, http.StatusBadRequest, "URL_TAKEN", "URL already exists")
	case errors.Is(err, service.ErrInvalidNewsType):
		h.writeError(w, http.StatusBadRequest, "INVALID_TYPE", "Type must be one of crime, infrastructure, hazard, social")
	case errors.Is(err, service.ErrTitleRequired):
		h.writeError(w, http.StatusBadRequest, "TITLE_REQUIRED", "Title is required")
	case errors.Is(err, service.ErrURLRequired):
		h.writeError(w, http.StatusBadRequest, "URL_REQUIRED", "URL is required")
	case errors.Is(err, geo.ErrInvalidGeometry):
		h.writeError(w, http.StatusBadRequest, "INVALID_GEOMETRY", "Coordinates must be a WKT point like POINT (1 2)")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *NewsHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
