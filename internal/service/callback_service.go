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

// CallbackService runs the breakdown-call lifecycle:
//
//	PENDING -> PICKED -> ON_THE_WAY -> AT_SITE -> IN_PROGRESS -> COMPLETED
//
// CANCELLED is reachable from every non-terminal state. A completed callback
// whose closure left the lift shut down or running with errors can be
// reopened back to IN_PROGRESS. Every transition is a compare-and-swap on
// the current status, so two technicians racing the same step cannot both
// win.
type CallbackService struct {
	callbackRepo *repository.CallbackRepository
	assignments  *AssignmentService
	customers    *CustomerService
	sequences    *SequenceService
	logger       *zap.Logger
}

// NewCallbackService creates a new callback service
func NewCallbackService(
	callbackRepo *repository.CallbackRepository,
	assignments *AssignmentService,
	customers *CustomerService,
	sequences *SequenceService,
	logger *zap.Logger,
) *CallbackService {
	return &CallbackService{
		callbackRepo: callbackRepo,
		assignments:  assignments,
		customers:    customers,
		sequences:    sequences,
		logger:       logger,
	}
}

// Create registers a breakdown call. The customer must hold an active AMC.
func (s *CallbackService) Create(ctx context.Context, req *domain.CreateCallbackRequest) (*domain.CallBack, error) {
	customer, err := s.customers.RequireActiveAMC(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	callbackID, err := s.sequences.NextCallbackID(ctx, now)
	if err != nil {
		return nil, err
	}

	callback := &domain.CallBack{
		CallbackID:      callbackID,
		CustomerID:      customer.ID,
		ReportedProblem: req.ReportedProblem,
		CallerName:      req.CallerName,
		CallerPhone:     req.CallerPhone,
		Status:          domain.CallbackPending,
	}
	if err := s.callbackRepo.Create(ctx, callback); err != nil {
		return nil, fmt.Errorf("create callback: %w", err)
	}

	s.logger.Info("callback created",
		zap.String("callbackID", callback.CallbackID),
		zap.String("customerID", customer.ID.String()))
	return callback, nil
}

// GetByID returns a callback with its technicians attached.
func (s *CallbackService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CallBack, error) {
	callback, err := s.callbackRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get callback: %w", err)
	}
	if err := s.attachTechnicians(ctx, callback); err != nil {
		return nil, err
	}
	return callback, nil
}

// GetByCallbackID returns a callback by its business ID.
func (s *CallbackService) GetByCallbackID(ctx context.Context, callbackID string) (*domain.CallBack, error) {
	callback, err := s.callbackRepo.GetByCallbackID(ctx, callbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get callback: %w", err)
	}
	if err := s.attachTechnicians(ctx, callback); err != nil {
		return nil, err
	}
	return callback, nil
}

// List returns callbacks matching the filters.
func (s *CallbackService) List(ctx context.Context, filters repository.CallbackFilters) ([]domain.CallBack, int64, error) {
	return s.callbackRepo.List(ctx, filters)
}

// Pick lets a technician claim a pending callback. The picker becomes the
// primary technician and PickedAt is stamped. Losing the race to another
// picker surfaces as an invalid transition.
//
// The assignment lands before the status moves, so a rejected technician
// (inactive, already on the job elsewhere) leaves the callback PENDING and a
// picked callback always carries at least one technician. A pre-existing
// dispatcher assignment of the same technician is fine.
func (s *CallbackService) Pick(ctx context.Context, id, technicianID uuid.UUID) (*domain.CallBack, error) {
	_, err := s.assignments.Assign(ctx, domain.JobTypeCallback, id, technicianID, &technicianID)
	if err != nil && !errors.Is(err, ErrDuplicateAssignment) {
		return nil, err
	}
	inserted := err == nil

	now := time.Now().UTC()
	ok, err := s.callbackRepo.Transition(ctx, id, domain.CallbackPending, domain.CallbackPicked,
		map[string]interface{}{"picked_at": now})
	if err != nil {
		return nil, fmt.Errorf("pick callback: %w", err)
	}
	if !ok {
		// Lost the pick race or the callback does not exist; take the
		// assignment made above back out.
		if inserted {
			if uerr := s.assignments.Unassign(ctx, domain.JobTypeCallback, id, technicianID); uerr != nil {
				s.logger.Warn("failed to roll back pick assignment",
					zap.String("callbackID", id.String()),
					zap.String("technicianID", technicianID.String()),
					zap.Error(uerr))
			}
		}
		return nil, s.transitionFailure(ctx, id, domain.CallbackPicked)
	}

	s.logger.Info("callback picked",
		zap.String("callbackID", id.String()),
		zap.String("technicianID", technicianID.String()))
	return s.GetByID(ctx, id)
}

// MarkOnTheWay stamps the technician's departure. Only the assigned
// technicians may advance the job.
func (s *CallbackService) MarkOnTheWay(ctx context.Context, id, technicianID uuid.UUID) (*domain.CallBack, error) {
	return s.checkpoint(ctx, id, technicianID, domain.CallbackPicked, domain.CallbackOnTheWay, "on_the_way_at")
}

// MarkAtSite stamps arrival at the site.
func (s *CallbackService) MarkAtSite(ctx context.Context, id, technicianID uuid.UUID) (*domain.CallBack, error) {
	return s.checkpoint(ctx, id, technicianID, domain.CallbackOnTheWay, domain.CallbackAtSite, "at_site_at")
}

// StartWork moves the callback into active work. RespondedAt marks this
// moment; response time is measured to the start of work, not to closure.
func (s *CallbackService) StartWork(ctx context.Context, id, technicianID uuid.UUID) (*domain.CallBack, error) {
	return s.checkpoint(ctx, id, technicianID, domain.CallbackAtSite, domain.CallbackInProgress, "responded_at")
}

// Complete closes out an in-progress callback with the field report.
// RequiresFollowup is derived from the lift state the site was left in; the
// flag on the request is ignored.
func (s *CallbackService) Complete(ctx context.Context, id, technicianID uuid.UUID, req *domain.CompleteCallbackRequest) (*domain.CallBack, error) {
	liftStatus := domain.LiftStatusType(req.LiftStatusOnClosure)
	if !liftStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown lift status %q", ErrInvalidInput, req.LiftStatusOnClosure)
	}

	if err := s.requireAssigned(ctx, id, technicianID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"issue_faced":               req.IssueFaced,
		"customer_reporting_person": req.CustomerReportingPerson,
		"problem_solved":            req.ProblemSolved,
		"report_attachment_url":     req.ReportAttachmentURL,
		"materials_changed":         datatypes.NewJSONSlice(req.MaterialsChanged),
		"lift_status_on_closure":    liftStatus,
		"requires_followup":         liftStatus.RequiresFollowup(),
		"completed_at":              now,
	}
	ok, err := s.callbackRepo.Transition(ctx, id, domain.CallbackInProgress, domain.CallbackCompleted, updates)
	if err != nil {
		return nil, fmt.Errorf("complete callback: %w", err)
	}
	if !ok {
		return nil, s.transitionFailure(ctx, id, domain.CallbackCompleted)
	}

	s.logger.Info("callback completed",
		zap.String("callbackID", id.String()),
		zap.String("liftStatus", string(liftStatus)),
		zap.Bool("requiresFollowup", liftStatus.RequiresFollowup()))
	return s.GetByID(ctx, id)
}

// Reopen puts a completed callback that still needs followup back into
// IN_PROGRESS. The completion stamp is cleared so the next closure is the
// one that counts; RespondedAt stays, the crew already responded once.
func (s *CallbackService) Reopen(ctx context.Context, id uuid.UUID) (*domain.CallBack, error) {
	ok, err := s.callbackRepo.Reopen(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reopen callback: %w", err)
	}
	if !ok {
		if _, err := s.callbackRepo.GetByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: callback is not completed with followup required", ErrInvalidTransition)
	}

	s.logger.Info("callback reopened", zap.String("callbackID", id.String()))
	return s.GetByID(ctx, id)
}

// Join adds another technician to an in-progress callback, up to the cap.
func (s *CallbackService) Join(ctx context.Context, id, technicianID uuid.UUID) (*domain.CallBack, error) {
	callback, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if callback.Status != domain.CallbackInProgress {
		return nil, fmt.Errorf("%w: can only join a callback in progress, current status %s",
			ErrInvalidTransition, callback.Status)
	}

	if _, err := s.assignments.Assign(ctx, domain.JobTypeCallback, id, technicianID, &technicianID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Assign puts a technician on the callback without moving its status. Used
// by dispatchers for jobs already past pick.
func (s *CallbackService) Assign(ctx context.Context, id, technicianID uuid.UUID, assignedBy *uuid.UUID) (*domain.CallBack, error) {
	callback, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if callback.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: callback is %s", ErrInvalidTransition, callback.Status)
	}
	if _, err := s.assignments.Assign(ctx, domain.JobTypeCallback, id, technicianID, assignedBy); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Unassign removes a technician. Refused once the job has progressed beyond
// PICKED, because the checkpoint stamps already belong to the crew on site.
func (s *CallbackService) Unassign(ctx context.Context, id, technicianID uuid.UUID) error {
	callback, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch callback.Status {
	case domain.CallbackPending, domain.CallbackPicked:
	default:
		return fmt.Errorf("%w: cannot unassign once work is underway", ErrConflict)
	}
	return s.assignments.Unassign(ctx, domain.JobTypeCallback, id, technicianID)
}

// Cancel aborts a callback from any non-terminal state.
func (s *CallbackService) Cancel(ctx context.Context, id uuid.UUID) (*domain.CallBack, error) {
	ok, err := s.callbackRepo.Cancel(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("cancel callback: %w", err)
	}
	if !ok {
		return nil, s.transitionFailure(ctx, id, domain.CallbackCancelled)
	}
	s.logger.Info("callback cancelled", zap.String("callbackID", id.String()))
	return s.GetByID(ctx, id)
}

// checkpoint advances a callback one step and stamps the matching timestamp
// column. The acting technician must be assigned to the job.
func (s *CallbackService) checkpoint(ctx context.Context, id, technicianID uuid.UUID, from, to domain.CallbackStatusType, stampColumn string) (*domain.CallBack, error) {
	if err := s.requireAssigned(ctx, id, technicianID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if stampColumn != "" {
		updates[stampColumn] = time.Now().UTC()
	}
	ok, err := s.callbackRepo.Transition(ctx, id, from, to, updates)
	if err != nil {
		return nil, fmt.Errorf("transition callback to %s: %w", to, err)
	}
	if !ok {
		return nil, s.transitionFailure(ctx, id, to)
	}
	return s.GetByID(ctx, id)
}

func (s *CallbackService) requireAssigned(ctx context.Context, id, technicianID uuid.UUID) error {
	assigned, err := s.assignments.IsAssigned(ctx, domain.JobTypeCallback, id, technicianID)
	if err != nil {
		return fmt.Errorf("check assignment: %w", err)
	}
	if !assigned {
		return fmt.Errorf("%w: technician is not assigned to this callback", ErrBadRequest)
	}
	return nil
}

// transitionFailure turns a lost CAS into NotFound or InvalidTransition,
// depending on whether the callback exists at all.
func (s *CallbackService) transitionFailure(ctx context.Context, id uuid.UUID, to domain.CallbackStatusType) error {
	callback, err := s.callbackRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get callback: %w", err)
	}
	return fmt.Errorf("%w: cannot move callback from %s to %s", ErrInvalidTransition, callback.Status, to)
}

func (s *CallbackService) attachTechnicians(ctx context.Context, callback *domain.CallBack) error {
	technicians, err := s.assignments.ListForJob(ctx, domain.JobTypeCallback, callback.ID)
	if err != nil {
		return fmt.Errorf("list callback technicians: %w", err)
	}
	callback.Technicians = technicians
	return nil
}
