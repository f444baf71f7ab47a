package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/auth"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"github.com/liftworks/service-api/internal/service"
	"go.uber.org/zap"
)

type CallbackHandler struct {
	callbackService *service.CallbackService
	logger          *zap.Logger
}

func NewCallbackHandler(callbackService *service.CallbackService, logger *zap.Logger) *CallbackHandler {
	return &CallbackHandler{
		callbackService: callbackService,
		logger:          logger,
	}
}

// List godoc
// @Summary List callbacks
// @Tags Callbacks
// @Produce json
// @Param status query string false "Filter by status"
// @Param customerId query string false "Filter by customer"
// @Success 200 {object} domain.ListResponse[domain.CallBack]
// @Security BearerAuth
// @Router /callbacks [get]
func (h *CallbackHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	filters := repository.CallbackFilters{Limit: limit, Offset: offset}
	if status := r.URL.Query().Get("status"); status != "" {
		st := domain.CallbackStatusType(status)
		if !st.IsValid() {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "unknown callback status")
			return
		}
		filters.Status = &st
	}
	if customerID := r.URL.Query().Get("customerId"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "customerId must be a UUID")
			return
		}
		filters.CustomerID = &id
	}

	callbacks, total, err := h.callbackService.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list callbacks", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.ListResponse[domain.CallBack]{
		Items: callbacks, Total: total, Limit: limit, Offset: offset,
	})
}

// Create godoc
// @Summary Register a breakdown callback
// @Tags Callbacks
// @Accept json
// @Produce json
// @Param request body domain.CreateCallbackRequest true "Callback"
// @Success 201 {object} domain.CallBack
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /callbacks [post]
func (h *CallbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCallbackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	callback, err := h.callbackService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, callback)
}

// GetByID godoc
// @Summary Get a callback
// @Tags Callbacks
// @Produce json
// @Param id path string true "Callback ID"
// @Success 200 {object} domain.CallBack
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /callbacks/{id} [get]
func (h *CallbackHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	callback, err := h.callbackService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, callback)
}

// Pick godoc
// @Summary Pick a pending callback
// @Description The authenticated technician claims the callback and becomes its primary
// @Tags Callbacks
// @Produce json
// @Param id path string true "Callback ID"
// @Success 200 {object} domain.CallBack
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /callbacks/{id}/pick [post]
func (h *CallbackHandler) Pick(w http.ResponseWriter, r *http.Request) {
	h.actAsTechnician(w, r, h.callbackService.Pick)
}

// OnTheWay godoc
// @Summary Mark the technician en route
// @Tags Callbacks
// @Produce json
// @Param id path string true "Callback ID"
// @Success 200 {object} domain.CallBack
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /callbacks/{id}/on-the-way [post]
func (h *CallbackHandler) OnTheWay(w http.ResponseWriter, r *http.Request) {
	h.actAsTechnician(w, r, h.callbackService.MarkOnTheWay)
}

// AtSite godoc
// @Summary Mark arrival at site
// @Tags Callbacks
// @Produce json
// @Param id path string true "Callback ID"
// @Success 200 {object} domain.CallBack
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /callbacks/{id}/at-site [post]
func (h *CallbackHandler) AtSite(w http.ResponseWriter, r *http.Request) {
	h.actAsTechnician(w, r, h.callbackService.MarkAtSite)
}

// StartWork godoc
// @Summary Start work on a callback
// @Tags Callbacks
// @Produce json
// @Param id path string true "Callback ID"
// @Success 200 {object} domain.CallBack
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /callbacks/{id}/start [post]
func (h *CallbackHandler) StartWork(w http.ResponseWriter, r *http.Request) {
	h.actAsTechnician(w, r, h.callbackService.StartWork)
}

// Join godoc
// @Summary Join an in-progress callback
// @Tags Callbacks
// @Produce json
// @Param id path string true "Callback ID"
// @Success 200 {object} domain.CallBack
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /callbacks/{id}/join [post]
func (h *CallbackHandler) Join(w http.ResponseWriter, r *http.Request) {
	h.actAsTechnician(w, r, h.callbackService.Join)
}

// Complete godoc
// @Summary Close out a callback
// @Tags Callbacks
// @Accept json
// @Produce json
// @Param id path string true "Callback ID"
// @Param request body domain.CompleteCallbackRequest true "Closure details"
// @Success 200 {object} domain.CallBack
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /callbacks/{id}/complete [post]
func (h *CallbackHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req domain.CompleteCallbackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := auth.MustFromContext(r.Context())
	callback, err := h.callbackService.Complete(r.Context(), id, user.UserID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, callback)
}

// Reopen godoc
// @Summary Reopen a completed callback that needs followup
// @Tags Callbacks
// @Produce json
// @Param id path string true "Callback ID"
// @Success 200 {object} domain.CallBack
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /callbacks/{id}/reopen [post]
func (h *CallbackHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	callback, err := h.callbackService.Reopen(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, callback)
}

// Assign godoc
// @Summary Assign a technician to a callback
// @Tags Callbacks
// @Accept json
// @Produce json
// @Param id path string true "Callback ID"
// @Param request body domain.AssignTechnicianRequest true "Technician"
// @Success 200 {object} domain.CallBack
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /callbacks/{id}/assign [post]
func (h *CallbackHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req domain.AssignTechnicianRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := auth.MustFromContext(r.Context())
	callback, err := h.callbackService.Assign(r.Context(), id, req.TechnicianID, &user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, callback)
}

// Unassign godoc
// @Summary Remove a technician from a callback
// @Tags Callbacks
// @Accept json
// @Param id path string true "Callback ID"
// @Param request body domain.AssignTechnicianRequest true "Technician"
// @Success 204
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /callbacks/{id}/unassign [post]
func (h *CallbackHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req domain.AssignTechnicianRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.callbackService.Unassign(r.Context(), id, req.TechnicianID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Cancel godoc
// @Summary Cancel a callback
// @Tags Callbacks
// @Produce json
// @Param id path string true "Callback ID"
// @Success 200 {object} domain.CallBack
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /callbacks/{id}/cancel [post]
func (h *CallbackHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	callback, err := h.callbackService.Cancel(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, callback)
}

// actAsTechnician runs a lifecycle step on behalf of the authenticated user.
func (h *CallbackHandler) actAsTechnician(w http.ResponseWriter, r *http.Request, step func(ctx context.Context, id, technicianID uuid.UUID) (*domain.CallBack, error)) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	user := auth.MustFromContext(r.Context())
	callback, err := step(r.Context(), id, user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, callback)
}
