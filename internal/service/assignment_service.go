package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Technician capacity per job type. Zero means unlimited.
const (
	maxCallbackTechnicians = 3
	maxServiceTechnicians  = 3
	maxRepairTechnicians   = 0
)

// AssignmentService owns the job/technician association table shared by
// callbacks, service visits and repairs. Capacity is enforced inside the
// store so two concurrent assignments cannot both land on a full job.
type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	userRepo       *repository.UserRepository
	logger         *zap.Logger
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// CapacityFor returns the technician cap for a job type, zero for unlimited.
func CapacityFor(jobType domain.JobTypeType) int {
	switch jobType {
	case domain.JobTypeCallback:
		return maxCallbackTechnicians
	case domain.JobTypeService:
		return maxServiceTechnicians
	default:
		return maxRepairTechnicians
	}
}

// Assign adds a technician to a job. The first assignee becomes primary.
// Callers are responsible for checking that the job itself exists and is in
// an assignable state.
func (s *AssignmentService) Assign(ctx context.Context, jobType domain.JobTypeType, jobID, technicianID uuid.UUID, assignedBy *uuid.UUID) (*domain.JobTechnician, error) {
	if !jobType.IsValid() {
		return nil, fmt.Errorf("%w: unknown job type %q", ErrInvalidInput, jobType)
	}

	if _, err := s.userRepo.ActiveTechnician(ctx, technicianID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTechnicianInactive
		}
		return nil, fmt.Errorf("check technician: %w", err)
	}

	assignment, err := s.assignmentRepo.Assign(ctx, jobType, jobID, technicianID, assignedBy, CapacityFor(jobType))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAssignmentConflict):
			return nil, ErrDuplicateAssignment
		case errors.Is(err, repository.ErrCapacityReached):
			return nil, ErrCapacityExceeded
		}
		return nil, fmt.Errorf("assign technician: %w", err)
	}

	s.logger.Info("technician assigned",
		zap.String("jobType", string(jobType)),
		zap.String("jobID", jobID.String()),
		zap.String("technicianID", technicianID.String()),
		zap.Int("position", assignment.Position),
		zap.Bool("isPrimary", assignment.IsPrimary))

	return assignment, nil
}

// Unassign removes a technician from a job.
func (s *AssignmentService) Unassign(ctx context.Context, jobType domain.JobTypeType, jobID, technicianID uuid.UUID) error {
	if !jobType.IsValid() {
		return fmt.Errorf("%w: unknown job type %q", ErrInvalidInput, jobType)
	}
	err := s.assignmentRepo.Unassign(ctx, jobType, jobID, technicianID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("unassign technician: %w", err)
	}
	s.logger.Info("technician unassigned",
		zap.String("jobType", string(jobType)),
		zap.String("jobID", jobID.String()),
		zap.String("technicianID", technicianID.String()))
	return nil
}

// ListForJob returns the technicians on a job in assignment order.
func (s *AssignmentService) ListForJob(ctx context.Context, jobType domain.JobTypeType, jobID uuid.UUID) ([]domain.JobTechnician, error) {
	return s.assignmentRepo.ListForJob(ctx, jobType, jobID)
}

// IsAssigned reports whether a technician is on a job.
func (s *AssignmentService) IsAssigned(ctx context.Context, jobType domain.JobTypeType, jobID, technicianID uuid.UUID) (bool, error) {
	return s.assignmentRepo.IsAssigned(ctx, jobType, jobID, technicianID)
}
