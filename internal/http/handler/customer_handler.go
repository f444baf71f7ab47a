package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"github.com/liftworks/service-api/internal/service"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// List godoc
// @Summary List customers
// @Tags Customers
// @Produce json
// @Param route query int false "Filter by route"
// @Param area query string false "Filter by area"
// @Param amcStatus query string false "Filter by AMC status" Enums(ACTIVE, INACTIVE)
// @Param search query string false "Search by site name or job number"
// @Success 200 {object} domain.ListResponse[domain.Customer]
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	filters := repository.CustomerFilters{
		Area:   r.URL.Query().Get("area"),
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	}
	if route := r.URL.Query().Get("route"); route != "" {
		n, err := strconv.Atoi(route)
		if err != nil {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "route must be a number")
			return
		}
		filters.Route = &n
	}
	if status := r.URL.Query().Get("amcStatus"); status != "" {
		st := domain.AMCStatusType(status)
		if !st.IsValid() {
			respondError(w, http.StatusBadRequest, domain.ErrorTypeValidation, "unknown AMC status")
			return
		}
		filters.AMCStatus = &st
	}

	customers, total, err := h.customerService.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.ListResponse[domain.Customer]{
		Items: customers, Total: total, Limit: limit, Offset: offset,
	})
}

// Create godoc
// @Summary Create a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body domain.CreateCustomerRequest true "Customer"
// @Success 201 {object} domain.Customer
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /customers [post]
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	customer, err := h.customerService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

// GetByID godoc
// @Summary Get a customer
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	customer, err := h.customerService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

// Update godoc
// @Summary Update a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body domain.UpdateCustomerRequest true "Changes"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req domain.UpdateCustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	customer, err := h.customerService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

// Deactivate godoc
// @Summary Deactivate a customer
// @Tags Customers
// @Param id path string true "Customer ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.customerService.Deactivate(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// RefreshAMCStatus godoc
// @Summary Run the AMC expiry sweep
// @Description Flip every customer more than 30 days past their AMC end date to INACTIVE
// @Tags Customers
// @Produce json
// @Success 200 {object} domain.AMCSweepResult
// @Security BearerAuth
// @Router /customers/refresh-amc-status [post]
func (h *CustomerHandler) RefreshAMCStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.customerService.RefreshAMCStatuses(r.Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("AMC sweep failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// CreateContract godoc
// @Summary Record an AMC contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Param request body domain.CreateContractRequest true "Contract"
// @Success 201 {object} domain.AMCContract
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /contracts [post]
func (h *CustomerHandler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContractRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contract, err := h.customerService.CreateContract(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, contract)
}

// ListContracts godoc
// @Summary List a customer's contracts
// @Tags Contracts
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {array} domain.AMCContract
// @Security BearerAuth
// @Router /customers/{id}/contracts [get]
func (h *CustomerHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	contracts, err := h.customerService.ListContracts(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list contracts", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contracts)
}
