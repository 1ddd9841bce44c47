package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/shift"
	"github.com/worklane-hq/orgtime-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	CreateBreakType(w http.ResponseWriter, r *http.Request)
	ListBreakTypes(w http.ResponseWriter, r *http.Request)
	DeleteBreakType(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	catalogService shift.CatalogService
}

func NewShiftHandler(catalogService shift.CatalogService) ShiftHandler {
	return &shiftHandlerImpl{
		catalogService: catalogService,
	}
}

// Create implements ShiftHandler.
func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.catalogService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created", result)
}

// List implements ShiftHandler.
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.catalogService.ListShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Get implements ShiftHandler.
func (h *shiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.catalogService.GetShift(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements ShiftHandler.
func (h *shiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalogService.DeleteShift(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted successfully", nil)
}

// CreateBreakType implements ShiftHandler.
func (h *shiftHandlerImpl) CreateBreakType(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateBreakTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.catalogService.CreateBreakType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Break type created", result)
}

// ListBreakTypes implements ShiftHandler.
func (h *shiftHandlerImpl) ListBreakTypes(w http.ResponseWriter, r *http.Request) {
	results, err := h.catalogService.ListBreakTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// DeleteBreakType implements ShiftHandler.
func (h *shiftHandlerImpl) DeleteBreakType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalogService.DeleteBreakType(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break type deleted successfully", nil)
}
