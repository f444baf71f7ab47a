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

// ComplaintService handles customer complaints. Unlike callbacks, a
// complaint is worked by exactly one technician, claimed first-come with a
// conditional update on the empty assignee column.
type ComplaintService struct {
	complaintRepo *repository.ComplaintRepository
	customerRepo  *repository.CustomerRepository
	userRepo      *repository.UserRepository
	sequences     *SequenceService
	logger        *zap.Logger
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	complaintRepo *repository.ComplaintRepository,
	customerRepo *repository.CustomerRepository,
	userRepo *repository.UserRepository,
	sequences *SequenceService,
	logger *zap.Logger,
) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		customerRepo:  customerRepo,
		userRepo:      userRepo,
		sequences:     sequences,
		logger:        logger,
	}
}

// Create registers a complaint against a customer site.
func (s *ComplaintService) Create(ctx context.Context, req *domain.CreateComplaintRequest) (*domain.Complaint, error) {
	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	priority := domain.ComplaintPriorityType(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityMedium
	} else if !priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, req.Priority)
	}

	complaintID, err := s.sequences.NextComplaintID(ctx)
	if err != nil {
		return nil, err
	}

	complaint := &domain.Complaint{
		ComplaintID: complaintID,
		CustomerID:  req.CustomerID,
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    priority,
		Status:      domain.ComplaintOpen,
	}
	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	s.logger.Info("complaint created",
		zap.String("complaintID", complaint.ComplaintID),
		zap.String("priority", string(priority)))
	return complaint, nil
}

// GetByID returns a complaint.
func (s *ComplaintService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get complaint: %w", err)
	}
	return complaint, nil
}

// List returns complaints matching the filters.
func (s *ComplaintService) List(ctx context.Context, filters repository.ComplaintFilters) ([]domain.Complaint, int64, error) {
	return s.complaintRepo.List(ctx, filters)
}

// Claim assigns an open complaint to the claiming technician and moves it
// to in_progress. A complaint already claimed by anyone, including the
// caller, is refused.
func (s *ComplaintService) Claim(ctx context.Context, id, technicianID uuid.UUID) (*domain.Complaint, error) {
	if _, err := s.userRepo.ActiveTechnician(ctx, technicianID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTechnicianInactive
		}
		return nil, fmt.Errorf("check technician: %w", err)
	}

	ok, err := s.complaintRepo.Claim(ctx, id, technicianID)
	if err != nil {
		return nil, fmt.Errorf("claim complaint: %w", err)
	}
	if !ok {
		if _, err := s.complaintRepo.GetByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrAlreadyAssigned
	}

	s.logger.Info("complaint claimed",
		zap.String("complaintID", id.String()),
		zap.String("technicianID", technicianID.String()))
	return s.GetByID(ctx, id)
}

// UpdateStatus moves a complaint along open -> in_progress -> resolved ->
// closed. Resolving requires an assignee and stamps ResolvedAt.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id uuid.UUID, req *domain.UpdateComplaintStatusRequest) (*domain.Complaint, error) {
	to := domain.ComplaintStatusType(req.Status)
	if !to.IsValid() {
		return nil, fmt.Errorf("%w: unknown complaint status %q", ErrInvalidInput, req.Status)
	}

	var from []domain.ComplaintStatusType
	updates := map[string]interface{}{}
	switch to {
	case domain.ComplaintInProgress:
		from = []domain.ComplaintStatusType{domain.ComplaintOpen}
	case domain.ComplaintResolved:
		complaint, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if complaint.AssignedToID == nil {
			return nil, fmt.Errorf("%w: complaint has no assignee to resolve it", ErrBadRequest)
		}
		from = []domain.ComplaintStatusType{domain.ComplaintInProgress}
		updates["resolved_at"] = time.Now().UTC()
		if req.Resolution != "" {
			updates["resolution"] = req.Resolution
		}
	case domain.ComplaintClosed:
		from = []domain.ComplaintStatusType{domain.ComplaintResolved}
	default:
		return nil, fmt.Errorf("%w: cannot move a complaint back to %s", ErrInvalidTransition, to)
	}

	ok, err := s.complaintRepo.SetStatus(ctx, id, from, to, updates)
	if err != nil {
		return nil, fmt.Errorf("transition complaint to %s: %w", to, err)
	}
	if !ok {
		complaint, err := s.complaintRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("get complaint: %w", err)
		}
		return nil, fmt.Errorf("%w: cannot move complaint from %s to %s", ErrInvalidTransition, complaint.Status, to)
	}

	s.logger.Info("complaint status updated",
		zap.String("complaintID", id.String()),
		zap.String("status", string(to)))
	return s.GetByID(ctx, id)
}
