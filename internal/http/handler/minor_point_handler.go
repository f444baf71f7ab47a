package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/auth"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/service"
	"go.uber.org/zap"
)

type MinorPointHandler struct {
	minorPointService *service.MinorPointService
	logger            *zap.Logger
}

func NewMinorPointHandler(minorPointService *service.MinorPointService, logger *zap.Logger) *MinorPointHandler {
	return &MinorPointHandler{
		minorPointService: minorPointService,
		logger:            logger,
	}
}

// List godoc
// @Summary List minor points
// @Tags MinorPoints
// @Produce json
// @Param customerId query string false "Filter by customer"
// @Param status query string false "Filter by status" Enums(OPEN, CLOSED)
// @Success 200 {array} domain.MinorPoint
// @Security BearerAuth
// @Router /minor-points [get]
func (h *MinorPointHandler) List(w http.ResponseWriter, r *http.Request) {
	var customerID *uuid.UUID
	if raw := r.URL.Query().Get("customerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "customerId must be a UUID")
			return
		}
		customerID = &id
	}
	var status *domain.MinorPointStatusType
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := domain.MinorPointStatusType(raw)
		if !st.IsValid() {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "unknown minor point status")
			return
		}
		status = &st
	}

	points, err := h.minorPointService.List(r.Context(), customerID, status)
	if err != nil {
		h.logger.Error("failed to list minor points", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, points)
}

// Create godoc
// @Summary Raise a minor point against a site
// @Tags MinorPoints
// @Accept json
// @Produce json
// @Param request body domain.CreateMinorPointRequest true "Minor point"
// @Success 201 {object} domain.MinorPoint
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /minor-points [post]
func (h *MinorPointHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMinorPointRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := auth.MustFromContext(r.Context())
	point, err := h.minorPointService.Create(r.Context(), &user.UserID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, point)
}

// Close godoc
// @Summary Close a minor point
// @Tags MinorPoints
// @Produce json
// @Param id path string true "Minor point ID"
// @Success 200 {object} domain.MinorPoint
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /minor-points/{id}/close [post]
func (h *MinorPointHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	point, err := h.minorPointService.Close(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, point)
}
