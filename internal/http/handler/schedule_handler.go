package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/auth"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"github.com/liftworks/service-api/internal/service"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	scheduleService *service.ScheduleService
	logger          *zap.Logger
}

func NewScheduleHandler(scheduleService *service.ScheduleService, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// List godoc
// @Summary List service schedules
// @Tags Schedules
// @Produce json
// @Param status query string false "Filter by status"
// @Param customerId query string false "Filter by customer"
// @Param technicianId query string false "Filter by assigned technician"
// @Param routes query string false "Comma separated route numbers"
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Success 200 {object} domain.ListResponse[domain.ServiceSchedule]
// @Security BearerAuth
// @Router /schedules [get]
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	filters := repository.ScheduleFilters{Limit: limit, Offset: offset}
	if status := r.URL.Query().Get("status"); status != "" {
		st := domain.ScheduleStatusType(status)
		if !st.IsValid() {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "unknown schedule status")
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
	if technicianID := r.URL.Query().Get("technicianId"); technicianID != "" {
		id, err := uuid.Parse(technicianID)
		if err != nil {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "technicianId must be a UUID")
			return
		}
		filters.TechnicianID = &id
	}
	if routes := r.URL.Query().Get("routes"); routes != "" {
		for _, part := range strings.Split(routes, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "routes must be numbers")
				return
			}
			filters.Routes = append(filters.Routes, n)
		}
	}
	var ok bool
	if filters.From, ok = timeQuery(w, r, "from"); !ok {
		return
	}
	if filters.To, ok = timeQuery(w, r, "to"); !ok {
		return
	}

	schedules, total, err := h.scheduleService.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list schedules", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.ListResponse[domain.ServiceSchedule]{
		Items: schedules, Total: total, Limit: limit, Offset: offset,
	})
}

// Create godoc
// @Summary Schedule a maintenance visit
// @Tags Schedules
// @Accept json
// @Produce json
// @Param request body domain.CreateScheduleRequest true "Schedule"
// @Success 201 {object} domain.ServiceSchedule
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /schedules [post]
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateScheduleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	schedule, err := h.scheduleService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, schedule)
}

// GetByID godoc
// @Summary Get a schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} domain.ServiceSchedule
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	schedule, err := h.scheduleService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}

// Assign godoc
// @Summary Assign a technician to a schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param request body domain.AssignTechnicianRequest true "Technician"
// @Success 200 {object} domain.ServiceSchedule
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /schedules/{id}/assign [post]
func (h *ScheduleHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req domain.AssignTechnicianRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := auth.MustFromContext(r.Context())
	schedule, err := h.scheduleService.Assign(r.Context(), id, req.TechnicianID, &user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}

// Pick godoc
// @Summary Pick a schedule for yourself
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} domain.ServiceSchedule
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /schedules/{id}/pick [post]
func (h *ScheduleHandler) Pick(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	user := auth.MustFromContext(r.Context())
	schedule, err := h.scheduleService.Pick(r.Context(), id, user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}

// Unpick godoc
// @Summary Step off a schedule before work starts
// @Tags Schedules
// @Param id path string true "Schedule ID"
// @Success 204
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /schedules/{id}/unpick [post]
func (h *ScheduleHandler) Unpick(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	user := auth.MustFromContext(r.Context())
	if err := h.scheduleService.Unpick(r.Context(), id, user.UserID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Cancel godoc
// @Summary Cancel a schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} domain.ServiceSchedule
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /schedules/{id}/cancel [post]
func (h *ScheduleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	schedule, err := h.scheduleService.Cancel(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}

// timeQuery parses an optional RFC3339 query parameter. Returns false after
// writing an error response when the value is present but malformed.
func timeQuery(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, name+" must be an RFC3339 timestamp")
		return nil, false
	}
	return &t, true
}
