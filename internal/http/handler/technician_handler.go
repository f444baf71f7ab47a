package handler

import (
	"net/http"

	"github.com/liftworks/service-api/internal/auth"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/service"
	"go.uber.org/zap"
)

// TechnicianHandler exposes the field-side surface used by the mobile app.
type TechnicianHandler struct {
	fieldService    *service.FieldService
	scheduleService *service.ScheduleService
	logger          *zap.Logger
}

func NewTechnicianHandler(fieldService *service.FieldService, scheduleService *service.ScheduleService, logger *zap.Logger) *TechnicianHandler {
	return &TechnicianHandler{
		fieldService:    fieldService,
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// AvailableTickets godoc
// @Summary List work available to the authenticated technician
// @Tags Field
// @Produce json
// @Success 200 {object} domain.AvailableTickets
// @Security BearerAuth
// @Router /technician/available-tickets [get]
func (h *TechnicianHandler) AvailableTickets(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())
	tickets, err := h.fieldService.AvailableTickets(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("failed to list available tickets", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tickets)
}

// CheckIn godoc
// @Summary Check in at a service site
// @Description Opens a service report for the schedule and records the technician's location
// @Tags Field
// @Accept json
// @Produce json
// @Param request body domain.CheckInRequest true "Check-in"
// @Success 201 {object} domain.ServiceReport
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /technician/check-in [post]
func (h *TechnicianHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckInRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := auth.MustFromContext(r.Context())
	report, err := h.fieldService.CheckIn(r.Context(), user.UserID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, report)
}

// CheckOut godoc
// @Summary Check out and close the service report
// @Tags Field
// @Accept json
// @Produce json
// @Param request body domain.CheckOutRequest true "Check-out"
// @Success 200 {object} domain.ServiceReport
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /technician/check-out [post]
func (h *TechnicianHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckOutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := auth.MustFromContext(r.Context())
	report, err := h.fieldService.CheckOut(r.Context(), user.UserID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// CreateAdhoc godoc
// @Summary Record an unplanned service visit
// @Description Creates a schedule on the spot with the technician already assigned
// @Tags Field
// @Accept json
// @Produce json
// @Param request body domain.CreateAdhocServiceRequest true "Adhoc visit"
// @Success 201 {object} domain.ServiceSchedule
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /technician/adhoc-service [post]
func (h *TechnicianHandler) CreateAdhoc(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAdhocServiceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := auth.MustFromContext(r.Context())
	schedule, err := h.scheduleService.CreateAdhoc(r.Context(), user.UserID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, schedule)
}

// ListReports godoc
// @Summary List service reports for a schedule
// @Tags Field
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {array} domain.ServiceReport
// @Security BearerAuth
// @Router /schedules/{id}/reports [get]
func (h *TechnicianHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	reports, err := h.fieldService.ListReports(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list service reports", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reports)
}
