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

// RepairService handles chargeable repair jobs. Repairs accept walk-in
// customers who are not under AMC, identified by name and phone only, and
// carry no technician cap.
type RepairService struct {
	repairRepo   *repository.RepairRepository
	customerRepo *repository.CustomerRepository
	assignments  *AssignmentService
	sequences    *SequenceService
	logger       *zap.Logger
}

// NewRepairService creates a new repair service
func NewRepairService(
	repairRepo *repository.RepairRepository,
	customerRepo *repository.CustomerRepository,
	assignments *AssignmentService,
	sequences *SequenceService,
	logger *zap.Logger,
) *RepairService {
	return &RepairService{
		repairRepo:   repairRepo,
		customerRepo: customerRepo,
		assignments:  assignments,
		sequences:    sequences,
		logger:       logger,
	}
}

// Create registers a repair job. Either a customer reference or a caller
// name must be given.
func (s *RepairService) Create(ctx context.Context, req *domain.CreateRepairRequest) (*domain.Repair, error) {
	if req.CustomerID == nil && req.CustomerName == "" {
		return nil, fmt.Errorf("%w: repair needs a customer or a caller name", ErrInvalidInput)
	}
	if req.CustomerID != nil {
		if _, err := s.customerRepo.GetByID(ctx, *req.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, fmt.Errorf("get customer: %w", err)
		}
	}

	now := time.Now().UTC()
	repairID, err := s.sequences.NextRepairID(ctx, now)
	if err != nil {
		return nil, err
	}

	repair := &domain.Repair{
		RepairID:      repairID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		ContactNumber: req.ContactNumber,
		Description:   req.Description,
		QuotedAmount:  req.QuotedAmount,
		Status:        domain.RepairPending,
	}
	if err := s.repairRepo.Create(ctx, repair); err != nil {
		return nil, fmt.Errorf("create repair: %w", err)
	}

	s.logger.Info("repair created", zap.String("repairID", repair.RepairID))
	return repair, nil
}

// GetByID returns a repair with its technicians attached.
func (s *RepairService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Repair, error) {
	repair, err := s.repairRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get repair: %w", err)
	}
	technicians, err := s.assignments.ListForJob(ctx, domain.JobTypeRepair, repair.ID)
	if err != nil {
		return nil, fmt.Errorf("list repair technicians: %w", err)
	}
	repair.Technicians = technicians
	return repair, nil
}

// List returns repairs matching the filters.
func (s *RepairService) List(ctx context.Context, filters repository.RepairFilters) ([]domain.Repair, int64, error) {
	return s.repairRepo.List(ctx, filters)
}

// UpdateStatus moves a repair along PENDING -> IN_PROGRESS -> COMPLETED.
// CANCELLED is reachable from any non-terminal state. Completing stamps
// CompletedAt and may record the invoice number.
func (s *RepairService) UpdateStatus(ctx context.Context, id uuid.UUID, req *domain.UpdateRepairStatusRequest) (*domain.Repair, error) {
	to := domain.RepairStatusType(req.Status)
	if !to.IsValid() {
		return nil, fmt.Errorf("%w: unknown repair status %q", ErrInvalidInput, req.Status)
	}

	now := time.Now().UTC()
	var from []domain.RepairStatusType
	updates := map[string]interface{}{}
	switch to {
	case domain.RepairInProgress:
		from = []domain.RepairStatusType{domain.RepairPending}
		updates["started_at"] = now
	case domain.RepairCompleted:
		from = []domain.RepairStatusType{domain.RepairInProgress}
		updates["completed_at"] = now
		if req.InvoiceNumber != "" {
			updates["invoice_number"] = req.InvoiceNumber
		}
	case domain.RepairCancelled:
		from = []domain.RepairStatusType{domain.RepairPending, domain.RepairInProgress}
	default:
		return nil, fmt.Errorf("%w: cannot move a repair back to %s", ErrInvalidTransition, to)
	}

	ok, err := s.repairRepo.Transition(ctx, id, from, to, updates)
	if err != nil {
		return nil, fmt.Errorf("transition repair to %s: %w", to, err)
	}
	if !ok {
		repair, err := s.repairRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("get repair: %w", err)
		}
		return nil, fmt.Errorf("%w: cannot move repair from %s to %s", ErrInvalidTransition, repair.Status, to)
	}

	s.logger.Info("repair status updated",
		zap.String("repairID", id.String()),
		zap.String("status", string(to)))
	return s.GetByID(ctx, id)
}

// Assign puts a technician on a repair. No capacity limit applies.
func (s *RepairService) Assign(ctx context.Context, id, technicianID uuid.UUID, assignedBy *uuid.UUID) (*domain.Repair, error) {
	repair, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if repair.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: repair is %s", ErrInvalidTransition, repair.Status)
	}
	if _, err := s.assignments.Assign(ctx, domain.JobTypeRepair, id, technicianID, assignedBy); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Unassign removes a technician from a repair.
func (s *RepairService) Unassign(ctx context.Context, id, technicianID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.assignments.Unassign(ctx, domain.JobTypeRepair, id, technicianID)
}
