package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/auth"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"github.com/liftworks/service-api/internal/service"
	"go.uber.org/zap"
)

type ComplaintHandler struct {
	complaintService *service.ComplaintService
	logger           *zap.Logger
}

func NewComplaintHandler(complaintService *service.ComplaintService, logger *zap.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
		logger:           logger,
	}
}

// List godoc
// @Summary List complaints
// @Tags Complaints
// @Produce json
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param customerId query string false "Filter by customer"
// @Success 200 {object} domain.ListResponse[domain.Complaint]
// @Security BearerAuth
// @Router /complaints [get]
func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	filters := repository.ComplaintFilters{Limit: limit, Offset: offset}
	if status := r.URL.Query().Get("status"); status != "" {
		st := domain.ComplaintStatusType(status)
		if !st.IsValid() {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "unknown complaint status")
			return
		}
		filters.Status = &st
	}
	if priority := r.URL.Query().Get("priority"); priority != "" {
		p := domain.ComplaintPriorityType(priority)
		if !p.IsValid() {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "unknown complaint priority")
			return
		}
		filters.Priority = &p
	}
	if customerID := r.URL.Query().Get("customerId"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "customerId must be a UUID")
			return
		}
		filters.CustomerID = &id
	}

	complaints, total, err := h.complaintService.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list complaints", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.ListResponse[domain.Complaint]{
		Items: complaints, Total: total, Limit: limit, Offset: offset,
	})
}

// Create godoc
// @Summary File a complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Param request body domain.CreateComplaintRequest true "Complaint"
// @Success 201 {object} domain.Complaint
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /complaints [post]
func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateComplaintRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	complaint, err := h.complaintService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, complaint)
}

// GetByID godoc
// @Summary Get a complaint
// @Tags Complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} domain.Complaint
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /complaints/{id} [get]
func (h *ComplaintHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	complaint, err := h.complaintService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, complaint)
}

// Claim godoc
// @Summary Claim an open complaint
// @Description The authenticated technician takes ownership. Fails once someone else holds it.
// @Tags Complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} domain.Complaint
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /complaints/{id}/claim [post]
func (h *ComplaintHandler) Claim(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	user := auth.MustFromContext(r.Context())
	complaint, err := h.complaintService.Claim(r.Context(), id, user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, complaint)
}

// UpdateStatus godoc
// @Summary Move a complaint through its lifecycle
// @Tags Complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param request body domain.UpdateComplaintStatusRequest true "New status"
// @Success 200 {object} domain.Complaint
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /complaints/{id}/status [put]
func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req domain.UpdateComplaintStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	complaint, err := h.complaintService.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, complaint)
}
