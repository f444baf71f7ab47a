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

type RepairHandler struct {
	repairService *service.RepairService
	logger        *zap.Logger
}

func NewRepairHandler(repairService *service.RepairService, logger *zap.Logger) *RepairHandler {
	return &RepairHandler{
		repairService: repairService,
		logger:        logger,
	}
}

// List godoc
// @Summary List repair jobs
// @Tags Repairs
// @Produce json
// @Param status query string false "Filter by status"
// @Param customerId query string false "Filter by customer"
// @Success 200 {object} domain.ListResponse[domain.Repair]
// @Security BearerAuth
// @Router /repairs [get]
func (h *RepairHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	filters := repository.RepairFilters{Limit: limit, Offset: offset}
	if status := r.URL.Query().Get("status"); status != "" {
		st := domain.RepairStatusType(status)
		if !st.IsValid() {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "unknown repair status")
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

	repairs, total, err := h.repairService.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list repairs", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.ListResponse[domain.Repair]{
		Items: repairs, Total: total, Limit: limit, Offset: offset,
	})
}

// Create godoc
// @Summary Create a repair job
// @Tags Repairs
// @Accept json
// @Produce json
// @Param request body domain.CreateRepairRequest true "Repair"
// @Success 201 {object} domain.Repair
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /repairs [post]
func (h *RepairHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRepairRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	repair, err := h.repairService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, repair)
}

// GetByID godoc
// @Summary Get a repair job
// @Tags Repairs
// @Produce json
// @Param id path string true "Repair ID"
// @Success 200 {object} domain.Repair
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /repairs/{id} [get]
func (h *RepairHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	repair, err := h.repairService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, repair)
}

// UpdateStatus godoc
// @Summary Move a repair through its lifecycle
// @Tags Repairs
// @Accept json
// @Produce json
// @Param id path string true "Repair ID"
// @Param request body domain.UpdateRepairStatusRequest true "New status"
// @Success 200 {object} domain.Repair
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /repairs/{id}/status [put]
func (h *RepairHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req domain.UpdateRepairStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	repair, err := h.repairService.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, repair)
}

// Assign godoc
// @Summary Assign a technician to a repair
// @Tags Repairs
// @Accept json
// @Produce json
// @Param id path string true "Repair ID"
// @Param request body domain.AssignTechnicianRequest true "Technician"
// @Success 200 {object} domain.Repair
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /repairs/{id}/assign [post]
func (h *RepairHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req domain.AssignTechnicianRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := auth.MustFromContext(r.Context())
	repair, err := h.repairService.Assign(r.Context(), id, req.TechnicianID, &user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, repair)
}

// Unassign godoc
// @Summary Remove a technician from a repair
// @Tags Repairs
// @Accept json
// @Param id path string true "Repair ID"
// @Param request body domain.AssignTechnicianRequest true "Technician"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /repairs/{id}/unassign [post]
func (h *RepairHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req domain.AssignTechnicianRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.repairService.Unassign(r.Context(), id, req.TechnicianID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
