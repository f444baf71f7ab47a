package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// amcExpiryGrace is how long past its AMC end date a customer stays ACTIVE.
// The grace period covers renewals that are signed late.
const amcExpiryGrace = 30 * 24 * time.Hour

// CustomerService manages lift installation sites and their AMC standing.
// AMC expiry is evaluated lazily on every read and in a nightly sweep, so a
// lapsed customer is caught whichever path touches them first.
type CustomerService struct {
	customerRepo *repository.CustomerRepository
	contractRepo *repository.ContractRepository
	sequences    *SequenceService
	logger       *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo *repository.CustomerRepository,
	contractRepo *repository.ContractRepository,
	sequences *SequenceService,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		contractRepo: contractRepo,
		sequences:    sequences,
		logger:       logger,
	}
}

// Create registers a new site and issues its job number.
func (s *CustomerService) Create(ctx context.Context, req *domain.CreateCustomerRequest) (*domain.Customer, error) {
	jobNumber, err := s.sequences.NextJobNumber(ctx)
	if err != nil {
		return nil, err
	}

	servicesPerYear := req.ServicesPerYear
	if servicesPerYear == 0 {
		servicesPerYear = 12
	}

	customer := &domain.Customer{
		JobNumber:       jobNumber,
		SiteName:        req.SiteName,
		Area:            req.Area,
		Route:           req.Route,
		Address:         req.Address,
		ContactPerson:   req.ContactPerson,
		ContactPhone:    req.ContactPhone,
		ContactEmail:    req.ContactEmail,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		AMCValidFrom:    req.AMCValidFrom,
		AMCValidTo:      req.AMCValidTo,
		ServicesPerYear: servicesPerYear,
		AMCAmount:       req.AMCAmount,
		AMCStatus:       domain.AMCStatusActive,
		AMCType:         req.AMCType,
		DoorType:        req.DoorType,
		ControllerType:  req.ControllerType,
		NumberOfFloors:  req.NumberOfFloors,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.logger.Info("customer created",
		zap.String("jobNumber", customer.JobNumber),
		zap.String("siteName", customer.SiteName))
	return customer, nil
}

// GetByID returns a customer, refreshing its AMC standing first.
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if err := s.refreshAMCStatus(ctx, customer, time.Now().UTC()); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByJobNumber returns a customer by its business job number.
func (s *CustomerService) GetByJobNumber(ctx context.Context, jobNumber string) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByJobNumber(ctx, jobNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if err := s.refreshAMCStatus(ctx, customer, time.Now().UTC()); err != nil {
		return nil, err
	}
	return customer, nil
}

// List returns customers matching the filters.
func (s *CustomerService) List(ctx context.Context, filters repository.CustomerFilters) ([]domain.Customer, int64, error) {
	return s.customerRepo.List(ctx, filters)
}

// Update applies a partial update. An explicit AMCStatus in the request wins
// over the derived value; setting new AMC dates on a lapsed customer brings
// it back to ACTIVE only when the request says so.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	if req.SiteName != nil {
		customer.SiteName = *req.SiteName
	}
	if req.Area != nil {
		customer.Area = *req.Area
	}
	if req.Route != nil {
		customer.Route = *req.Route
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.ContactPerson != nil {
		customer.ContactPerson = *req.ContactPerson
	}
	if req.ContactPhone != nil {
		customer.ContactPhone = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		customer.ContactEmail = *req.ContactEmail
	}
	if req.Latitude != nil {
		customer.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		customer.Longitude = *req.Longitude
	}
	if req.AMCValidFrom != nil {
		customer.AMCValidFrom = req.AMCValidFrom
	}
	if req.AMCValidTo != nil {
		customer.AMCValidTo = req.AMCValidTo
	}
	if req.ServicesPerYear != nil {
		customer.ServicesPerYear = *req.ServicesPerYear
	}
	if req.AMCAmount != nil {
		customer.AMCAmount = *req.AMCAmount
	}
	if req.AMCAmountReceived != nil {
		customer.AMCAmountReceived = *req.AMCAmountReceived
	}
	if req.AMCStatus != nil {
		status := domain.AMCStatusType(*req.AMCStatus)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown AMC status %q", ErrInvalidInput, *req.AMCStatus)
		}
		customer.AMCStatus = status
	}
	if req.AMCType != nil {
		customer.AMCType = *req.AMCType
	}
	if req.DoorType != nil {
		customer.DoorType = *req.DoorType
	}
	if req.ControllerType != nil {
		customer.ControllerType = *req.ControllerType
	}
	if req.NumberOfFloors != nil {
		customer.NumberOfFloors = *req.NumberOfFloors
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return customer, nil
}

// Deactivate marks a customer INACTIVE without deleting its history.
func (s *CustomerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.customerRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("deactivate customer: %w", err)
	}
	s.logger.Info("customer deactivated", zap.String("customerID", id.String()))
	return nil
}

// RequireActiveAMC loads a customer and fails unless its AMC is ACTIVE
// after the lazy expiry check.
func (s *CustomerService) RequireActiveAMC(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer.AMCStatus != domain.AMCStatusActive {
		return nil, ErrAMCInactive
	}
	return customer, nil
}

// RefreshAMCStatuses deactivates every customer whose AMC end date is more
// than the grace period in the past. Run nightly and exposed for manual
// triggering.
func (s *CustomerService) RefreshAMCStatuses(ctx context.Context, now time.Time) (*domain.AMCSweepResult, error) {
	checked, err := s.customerRepo.CountByStatus(ctx, domain.AMCStatusActive)
	if err != nil {
		return nil, fmt.Errorf("count active customers: %w", err)
	}

	updated, err := s.customerRepo.DeactivateExpired(ctx, now.Add(-amcExpiryGrace))
	if err != nil {
		return nil, fmt.Errorf("deactivate expired customers: %w", err)
	}

	if updated > 0 {
		s.logger.Info("AMC expiry sweep flipped customers to INACTIVE",
			zap.Int64("updated", updated),
			zap.Int64("checked", checked))
	}
	return &domain.AMCSweepResult{UpdatedCount: updated, CheckedCustomers: checked}, nil
}

// refreshAMCStatus is the lazy per-customer expiry check. The flip happens
// strictly after the grace period, so a customer 30 days past the end date
// is still ACTIVE and one 31 days past is not.
func (s *CustomerService) refreshAMCStatus(ctx context.Context, customer *domain.Customer, now time.Time) error {
	if customer.AMCStatus != domain.AMCStatusActive || customer.AMCValidTo == nil {
		return nil
	}
	if now.Sub(*customer.AMCValidTo) <= amcExpiryGrace {
		return nil
	}

	customer.AMCStatus = domain.AMCStatusInactive
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return fmt.Errorf("persist AMC expiry: %w", err)
	}
	s.logger.Info("customer AMC lapsed",
		zap.String("jobNumber", customer.JobNumber),
		zap.Timep("amcValidTo", customer.AMCValidTo))
	return nil
}

// CreateContract records a maintenance contract. An Active or Renewal
// contract also refreshes the customer's AMC window and amount.
func (s *CustomerService) CreateContract(ctx context.Context, req *domain.CreateContractRequest) (*domain.AMCContract, error) {
	contractType := domain.ContractType(req.Type)
	if !contractType.IsValid() {
		return nil, fmt.Errorf("%w: unknown contract type %q", ErrInvalidInput, req.Type)
	}
	frequency := domain.ContractFrequency(req.Frequency)
	if req.Frequency == "" {
		frequency = domain.FrequencyMonthly
	} else if !frequency.IsValid() {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, req.Frequency)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: contract end date must be after start date", ErrInvalidInput)
	}

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	number, err := s.sequences.NextRandomID(ctx, domain.PrefixContract, time.Now().UTC(), s.contractRepo.ExistsContractNumber)
	if err != nil {
		return nil, err
	}

	contract := &domain.AMCContract{
		ContractNumber: number,
		CustomerID:     customer.ID,
		Type:           contractType,
		Frequency:      frequency,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		TotalServices:  req.TotalServices,
		Amount:         req.Amount,
		Notes:          req.Notes,
	}
	if err := s.contractRepo.Create(ctx, contract); err != nil {
		return nil, fmt.Errorf("create contract: %w", err)
	}

	if contractType == domain.ContractActive || contractType == domain.ContractRenewal {
		customer.AMCValidFrom = &contract.StartDate
		customer.AMCValidTo = &contract.EndDate
		customer.AMCAmount = contract.Amount
		customer.AMCStatus = domain.AMCStatusActive
		if err := s.customerRepo.Update(ctx, customer); err != nil {
			return nil, fmt.Errorf("refresh customer AMC terms: %w", err)
		}
	}

	s.logger.Info("contract created",
		zap.String("contractNumber", contract.ContractNumber),
		zap.String("customerID", customer.ID.String()),
		zap.String("type", string(contract.Type)))
	return contract, nil
}

// ListContracts returns every contract ever recorded for a customer.
func (s *CustomerService) ListContracts(ctx context.Context, customerID uuid.UUID) ([]domain.AMCContract, error) {
	return s.contractRepo.ListByCustomer(ctx, customerID)
}
