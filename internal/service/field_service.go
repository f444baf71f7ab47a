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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FieldService backs the technician-facing flow: browsing available work,
// checking in at a site, and checking out with the completed visit report.
type FieldService struct {
	reportRepo   *repository.ReportRepository
	scheduleRepo *repository.ScheduleRepository
	callbackRepo *repository.CallbackRepository
	repairRepo   *repository.RepairRepository
	contractRepo *repository.ContractRepository
	assignments  *AssignmentService
	sequences    *SequenceService
	logger       *zap.Logger
}

// NewFieldService creates a new field service
func NewFieldService(
	reportRepo *repository.ReportRepository,
	scheduleRepo *repository.ScheduleRepository,
	callbackRepo *repository.CallbackRepository,
	repairRepo *repository.RepairRepository,
	contractRepo *repository.ContractRepository,
	assignments *AssignmentService,
	sequences *SequenceService,
	logger *zap.Logger,
) *FieldService {
	return &FieldService{
		reportRepo:   reportRepo,
		scheduleRepo: scheduleRepo,
		callbackRepo: callbackRepo,
		repairRepo:   repairRepo,
		contractRepo: contractRepo,
		assignments:  assignments,
		sequences:    sequences,
		logger:       logger,
	}
}

// AvailableTickets returns the work a technician can pick up: pending
// callbacks, upcoming or overdue service visits, and open repairs.
func (s *FieldService) AvailableTickets(ctx context.Context, technicianID uuid.UUID) (*domain.AvailableTickets, error) {
	pendingCallback := domain.CallbackPending
	callbacks, _, err := s.callbackRepo.List(ctx, repository.CallbackFilters{Status: &pendingCallback})
	if err != nil {
		return nil, fmt.Errorf("list pending callbacks: %w", err)
	}

	var services []domain.ServiceSchedule
	for _, status := range []domain.ScheduleStatusType{
		domain.SchedulePending, domain.ScheduleScheduled, domain.ScheduleOverdue,
	} {
		st := status
		batch, _, err := s.scheduleRepo.List(ctx, repository.ScheduleFilters{Status: &st})
		if err != nil {
			return nil, fmt.Errorf("list %s schedules: %w", status, err)
		}
		services = append(services, batch...)
	}

	pendingRepair := domain.RepairPending
	repairs, _, err := s.repairRepo.List(ctx, repository.RepairFilters{Status: &pendingRepair})
	if err != nil {
		return nil, fmt.Errorf("list pending repairs: %w", err)
	}

	return &domain.AvailableTickets{
		Callbacks: callbacks,
		Services:  services,
		Repairs:   repairs,
	}, nil
}

// CheckIn opens a visit report at the technician's current location and
// moves the schedule to in_progress. A technician not yet on the visit is
// assigned by checking in; a technician with an open report on the same
// visit cannot check in twice.
func (s *FieldService) CheckIn(ctx context.Context, technicianID uuid.UUID, req *domain.CheckInRequest) (*domain.ServiceReport, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	switch schedule.Status {
	case domain.ScheduleCompleted, domain.ScheduleCancelled:
		return nil, fmt.Errorf("%w: schedule is %s", ErrInvalidTransition, schedule.Status)
	}

	if _, err := s.reportRepo.OpenReportForTechnician(ctx, schedule.ID, technicianID); err == nil {
		return nil, fmt.Errorf("%w: already checked in on this visit", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check open report: %w", err)
	}

	if _, err := s.assignments.Assign(ctx, domain.JobTypeService, schedule.ID, technicianID, &technicianID); err != nil {
		if !errors.Is(err, ErrDuplicateAssignment) {
			return nil, err
		}
	}

	now := time.Now().UTC()
	reportID, err := s.sequences.NextRandomID(ctx, domain.PrefixReport, now, s.reportRepo.ExistsReportID)
	if err != nil {
		return nil, err
	}

	report := &domain.ServiceReport{
		ReportID:        reportID,
		ScheduleID:      schedule.ID,
		TechnicianID:    technicianID,
		CheckInAt:       now,
		CheckInLocation: datatypes.NewJSONType(req.Location),
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	if _, err := s.scheduleRepo.Transition(ctx, schedule.ID,
		[]domain.ScheduleStatusType{domain.SchedulePending, domain.ScheduleScheduled, domain.ScheduleOverdue},
		domain.ScheduleInProgress, nil); err != nil {
		return nil, fmt.Errorf("mark schedule in progress: %w", err)
	}

	s.logger.Info("technician checked in",
		zap.String("reportID", report.ReportID),
		zap.String("scheduleID", schedule.ScheduleID),
		zap.String("technicianID", technicianID.String()))
	return report, nil
}

// CheckOut closes the visit report with the work summary and completes the
// schedule. The first check-out wins the completion; later ones only close
// their own report.
func (s *FieldService) CheckOut(ctx context.Context, technicianID uuid.UUID, req *domain.CheckOutRequest) (*domain.ServiceReport, error) {
	report, err := s.reportRepo.GetByID(ctx, req.ReportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	if report.TechnicianID != technicianID {
		return nil, fmt.Errorf("%w: report belongs to another technician", ErrBadRequest)
	}
	if report.CheckOutAt != nil {
		return nil, fmt.Errorf("%w: already checked out", ErrConflict)
	}

	now := time.Now().UTC()
	outLocation := datatypes.NewJSONType(req.Location)
	report.CheckOutAt = &now
	report.CheckOutLocation = &outLocation
	report.WorkDone = req.WorkDone
	report.PartsReplaced = datatypes.NewJSONSlice(req.PartsReplaced)
	report.ImageURLs = datatypes.NewJSONSlice(req.ImageURLs)
	report.TechnicianSignatureURL = req.TechnicianSignatureURL
	report.CustomerSignatureURL = req.CustomerSignatureURL
	report.CustomerFeedback = req.CustomerFeedback
	report.Rating = req.Rating
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}

	completed, err := s.scheduleRepo.Transition(ctx, report.ScheduleID,
		[]domain.ScheduleStatusType{domain.ScheduleInProgress}, domain.ScheduleCompleted,
		map[string]interface{}{"completed_at": now})
	if err != nil {
		return nil, fmt.Errorf("complete schedule: %w", err)
	}
	if completed {
		if err := s.creditContractService(ctx, report.ScheduleID, now); err != nil {
			return nil, err
		}
	}

	s.logger.Info("technician checked out",
		zap.String("reportID", report.ReportID),
		zap.Float64("durationMinutes", report.DurationMinutes()))
	return report, nil
}

// ListReports returns the reports filed against a schedule.
func (s *FieldService) ListReports(ctx context.Context, scheduleID uuid.UUID) ([]domain.ServiceReport, error) {
	return s.reportRepo.ListBySchedule(ctx, scheduleID)
}

// creditContractService counts the completed visit against the customer's
// active contract, if one covers today.
func (s *FieldService) creditContractService(ctx context.Context, scheduleID uuid.UUID, now time.Time) error {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("get schedule: %w", err)
	}
	contract, err := s.contractRepo.ActiveForCustomer(ctx, schedule.CustomerID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("get active contract: %w", err)
	}
	if err := s.contractRepo.IncrementCompleted(ctx, contract.ID); err != nil {
		return fmt.Errorf("credit contract service: %w", err)
	}
	return nil
}
