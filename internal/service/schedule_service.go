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

// ScheduleService manages planned and ad-hoc maintenance visits. The
// association table is the source of truth for who is on a visit; the three
// legacy technician columns on the schedule row are kept mirrored for
// consumers that still read them.
type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepository
	assignments  *AssignmentService
	customers    *CustomerService
	sequences    *SequenceService
	logger       *zap.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	scheduleRepo *repository.ScheduleRepository,
	assignments *AssignmentService,
	customers *CustomerService,
	sequences *SequenceService,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		assignments:  assignments,
		customers:    customers,
		sequences:    sequences,
		logger:       logger,
	}
}

// Create plans a maintenance visit for a customer.
func (s *ScheduleService) Create(ctx context.Context, req *domain.CreateScheduleRequest) (*domain.ServiceSchedule, error) {
	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	serviceType := domain.ServiceTypeType(req.ServiceType)
	if req.ServiceType == "" {
		serviceType = domain.ServiceTypeService
	} else if !serviceType.IsValid() {
		return nil, fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, req.ServiceType)
	}

	scheduleID, err := s.sequences.NextScheduleID(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	schedule := &domain.ServiceSchedule{
		ScheduleID:    scheduleID,
		CustomerID:    customer.ID,
		ServiceType:   serviceType,
		ScheduledDate: req.ScheduledDate,
		Status:        domain.SchedulePending,
		Notes:         req.Notes,
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	s.logger.Info("schedule created",
		zap.String("scheduleID", schedule.ScheduleID),
		zap.String("customerID", customer.ID.String()),
		zap.Time("scheduledDate", schedule.ScheduledDate))
	return schedule, nil
}

// CreateAdhoc records an unscheduled visit a technician is starting right
// now. The visit is dated today and self-assigned to the creator.
func (s *ScheduleService) CreateAdhoc(ctx context.Context, technicianID uuid.UUID, req *domain.CreateAdhocServiceRequest) (*domain.ServiceSchedule, error) {
	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	scheduleID, err := s.sequences.NextAdhocServiceID(ctx, now)
	if err != nil {
		return nil, err
	}

	schedule := &domain.ServiceSchedule{
		ScheduleID:    scheduleID,
		CustomerID:    customer.ID,
		ServiceType:   domain.ServiceTypeService,
		ScheduledDate: now,
		Status:        domain.ScheduleScheduled,
		IsAdhoc:       true,
		Notes:         req.Notes,
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("create adhoc schedule: %w", err)
	}

	if _, err := s.assignments.Assign(ctx, domain.JobTypeService, schedule.ID, technicianID, &technicianID); err != nil {
		return nil, err
	}
	if err := s.mirrorLegacySlots(ctx, schedule.ID); err != nil {
		return nil, err
	}

	s.logger.Info("adhoc service created",
		zap.String("scheduleID", schedule.ScheduleID),
		zap.String("technicianID", technicianID.String()))
	return s.GetByID(ctx, schedule.ID)
}

// GetByID returns a schedule with its technicians attached.
func (s *ScheduleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceSchedule, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	technicians, err := s.assignments.ListForJob(ctx, domain.JobTypeService, schedule.ID)
	if err != nil {
		return nil, fmt.Errorf("list schedule technicians: %w", err)
	}
	schedule.Technicians = technicians
	return schedule, nil
}

// List returns schedules matching the filters.
func (s *ScheduleService) List(ctx context.Context, filters repository.ScheduleFilters) ([]domain.ServiceSchedule, int64, error) {
	return s.scheduleRepo.List(ctx, filters)
}

// Assign puts a technician on a visit, capped at three. Dispatcher
// assignment never touches the visit status; only a technician picking the
// visit themselves commits to a date.
func (s *ScheduleService) Assign(ctx context.Context, id, technicianID uuid.UUID, assignedBy *uuid.UUID) (*domain.ServiceSchedule, error) {
	schedule, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch schedule.Status {
	case domain.ScheduleCompleted, domain.ScheduleCancelled:
		return nil, fmt.Errorf("%w: schedule is %s", ErrInvalidTransition, schedule.Status)
	}

	if _, err := s.assignments.Assign(ctx, domain.JobTypeService, id, technicianID, assignedBy); err != nil {
		return nil, err
	}
	if err := s.mirrorLegacySlots(ctx, id); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Pick lets a technician put themselves on a visit. The first pick moves a
// pending visit to scheduled; losing that CAS just means someone else got
// there first. A technician a dispatcher already assigned can still pick to
// commit the visit.
func (s *ScheduleService) Pick(ctx context.Context, id, technicianID uuid.UUID) (*domain.ServiceSchedule, error) {
	if _, err := s.Assign(ctx, id, technicianID, &technicianID); err != nil && !errors.Is(err, ErrDuplicateAssignment) {
		return nil, err
	}
	if _, err := s.scheduleRepo.Transition(ctx, id,
		[]domain.ScheduleStatusType{domain.SchedulePending}, domain.ScheduleScheduled, nil); err != nil {
		return nil, fmt.Errorf("mark schedule as scheduled: %w", err)
	}
	return s.GetByID(ctx, id)
}

// Unpick removes a technician from a visit that has not started yet.
func (s *ScheduleService) Unpick(ctx context.Context, id, technicianID uuid.UUID) error {
	schedule, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch schedule.Status {
	case domain.ScheduleInProgress, domain.ScheduleCompleted, domain.ScheduleCancelled:
		return fmt.Errorf("%w: cannot unpick once the visit has started", ErrConflict)
	}

	if err := s.assignments.Unassign(ctx, domain.JobTypeService, id, technicianID); err != nil {
		return err
	}
	return s.mirrorLegacySlots(ctx, id)
}

// Cancel aborts a visit that has not started.
func (s *ScheduleService) Cancel(ctx context.Context, id uuid.UUID) (*domain.ServiceSchedule, error) {
	ok, err := s.scheduleRepo.Transition(ctx, id,
		[]domain.ScheduleStatusType{domain.SchedulePending, domain.ScheduleScheduled, domain.ScheduleOverdue},
		domain.ScheduleCancelled, nil)
	if err != nil {
		return nil, fmt.Errorf("cancel schedule: %w", err)
	}
	if !ok {
		schedule, err := s.scheduleRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("get schedule: %w", err)
		}
		return nil, fmt.Errorf("%w: cannot cancel a schedule that is %s", ErrInvalidTransition, schedule.Status)
	}
	s.logger.Info("schedule cancelled", zap.String("scheduleID", id.String()))
	return s.GetByID(ctx, id)
}

// MarkOverdue flips every past-due pending or scheduled visit to overdue.
// Run nightly.
func (s *ScheduleService) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	updated, err := s.scheduleRepo.MarkOverdue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("mark overdue schedules: %w", err)
	}
	if updated > 0 {
		s.logger.Info("schedules marked overdue", zap.Int64("count", updated))
	}
	return updated, nil
}

// mirrorLegacySlots copies the first three assignees into the technician
// columns on the schedule row.
func (s *ScheduleService) mirrorLegacySlots(ctx context.Context, id uuid.UUID) error {
	technicians, err := s.assignments.ListForJob(ctx, domain.JobTypeService, id)
	if err != nil {
		return fmt.Errorf("list schedule technicians: %w", err)
	}
	var slots [3]*uuid.UUID
	for i := range technicians {
		if i >= len(slots) {
			break
		}
		techID := technicians[i].TechnicianID
		slots[i] = &techID
	}
	if err := s.scheduleRepo.SetLegacySlots(ctx, id, slots); err != nil {
		return fmt.Errorf("mirror technician slots: %w", err)
	}
	return nil
}
