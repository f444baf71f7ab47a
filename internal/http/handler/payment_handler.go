package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"github.com/liftworks/service-api/internal/service"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// List godoc
// @Summary List payments
// @Tags Payments
// @Produce json
// @Param status query string false "Filter by status"
// @Param customerId query string false "Filter by customer"
// @Success 200 {object} domain.ListResponse[domain.Payment]
// @Security BearerAuth
// @Router /payments [get]
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	filters := repository.PaymentFilters{Limit: limit, Offset: offset}
	if status := r.URL.Query().Get("status"); status != "" {
		st := domain.PaymentStatusType(status)
		if !st.IsValid() {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "unknown payment status")
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

	payments, total, err := h.paymentService.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list payments", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.ListResponse[domain.Payment]{
		Items: payments, Total: total, Limit: limit, Offset: offset,
	})
}

// Create godoc
// @Summary Raise a payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body domain.CreatePaymentRequest true "Payment"
// @Success 201 {object} domain.Payment
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /payments [post]
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	payment, err := h.paymentService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

// GetByID godoc
// @Summary Get a payment
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	payment, err := h.paymentService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

// MarkPaid godoc
// @Summary Mark a payment as received
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body domain.MarkPaymentPaidRequest true "Payment details"
// @Success 200 {object} domain.Payment
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /payments/{id}/mark-paid [post]
func (h *PaymentHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req domain.MarkPaymentPaidRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	payment, err := h.paymentService.MarkPaid(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

// Stats godoc
// @Summary Payment totals by status
// @Tags Payments
// @Produce json
// @Success 200 {object} domain.PaymentStats
// @Security BearerAuth
// @Router /payments/stats [get]
func (h *PaymentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.paymentService.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to compute payment stats", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
