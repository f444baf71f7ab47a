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

type MaterialHandler struct {
	materialService *service.MaterialService
	logger          *zap.Logger
}

func NewMaterialHandler(materialService *service.MaterialService, logger *zap.Logger) *MaterialHandler {
	return &MaterialHandler{
		materialService: materialService,
		logger:          logger,
	}
}

// List godoc
// @Summary List material usage records
// @Tags Materials
// @Produce json
// @Param customerId query string false "Filter by customer"
// @Param technicianId query string false "Filter by technician"
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Success 200 {object} domain.ListResponse[domain.MaterialUsage]
// @Security BearerAuth
// @Router /materials [get]
func (h *MaterialHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	filters := repository.MaterialFilters{Limit: limit, Offset: offset}
	if customerID := r.URL.Query().Get("customerId"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "customerId must be a UUID")
			return
		}
		filters.CustomerID = &id
	}
	if technicianID := r.URL.Query().Get("technicianId"); technicianID != "" {
		id, err := uuid.Parse(technicianID)
		if err != nil {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "technicianId must be a UUID")
			return
		}
		filters.TechnicianID = &id
	}
	var ok bool
	if filters.From, ok = timeQuery(w, r, "from"); !ok {
		return
	}
	if filters.To, ok = timeQuery(w, r, "to"); !ok {
		return
	}

	materials, total, err := h.materialService.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list material usage", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.ListResponse[domain.MaterialUsage]{
		Items: materials, Total: total, Limit: limit, Offset: offset,
	})
}

// Record godoc
// @Summary Record materials used on a job
// @Tags Materials
// @Accept json
// @Produce json
// @Param request body domain.CreateMaterialUsageRequest true "Usage"
// @Success 201 {object} domain.MaterialUsage
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /materials [post]
func (h *MaterialHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMaterialUsageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := auth.MustFromContext(r.Context())
	usage, err := h.materialService.Record(r.Context(), user.UserID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, usage)
}
