package service

import (
	"context"
	"fmt"
	"time"

	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"go.uber.org/zap"
)

// SequenceService issues the human-readable business IDs that appear on
// tickets, invoices and reports.
//
// Day-scoped sequences (callbacks, repairs, schedules) reset at midnight and
// embed the date, e.g. "CB-20250115-003". Lifetime sequences (job numbers,
// complaints) count up forever. Report, payment and contract numbers carry a
// random suffix instead of a counter and are re-rolled on collision.
type SequenceService struct {
	repo   *repository.SequenceRepository
	logger *zap.Logger
}

// NewSequenceService creates a new SequenceService
func NewSequenceService(repo *repository.SequenceRepository, logger *zap.Logger) *SequenceService {
	return &SequenceService{
		repo:   repo,
		logger: logger,
	}
}

// NextCallbackID returns the next callback ID for the given day,
// e.g. "CB-20250115-007".
func (s *SequenceService) NextCallbackID(ctx context.Context, now time.Time) (string, error) {
	return s.nextDated(ctx, domain.PrefixCallback, now)
}

// NextRepairID returns the next repair ID for the given day,
// e.g. "RP-20250115-002".
func (s *SequenceService) NextRepairID(ctx context.Context, now time.Time) (string, error) {
	return s.nextDated(ctx, domain.PrefixRepair, now)
}

// NextAdhocServiceID returns the next ad-hoc service ID for the given day,
// e.g. "SV-20250115-001".
func (s *SequenceService) NextAdhocServiceID(ctx context.Context, now time.Time) (string, error) {
	return s.nextDated(ctx, domain.PrefixService, now)
}

// NextScheduleID returns the next schedule ID for the given day,
// e.g. "SRV-20250115-0042".
func (s *SequenceService) NextScheduleID(ctx context.Context, now time.Time) (string, error) {
	n, err := s.next(ctx, domain.PrefixSchedule, domain.DateKey(now))
	if err != nil {
		return "", err
	}
	return domain.FormatScheduleID(now, n), nil
}

// NextJobNumber returns the next customer job number, e.g. "JB-0001".
// Job numbers never reset.
func (s *SequenceService) NextJobNumber(ctx context.Context) (string, error) {
	n, err := s.next(ctx, domain.PrefixJobNumber, "")
	if err != nil {
		return "", err
	}
	return domain.FormatJobNumber(n), nil
}

// NextComplaintID returns the next complaint ID, e.g. "COMP-014".
// Complaint IDs never reset.
func (s *SequenceService) NextComplaintID(ctx context.Context) (string, error) {
	n, err := s.next(ctx, domain.PrefixComplaint, "")
	if err != nil {
		return "", err
	}
	return domain.FormatComplaintID(n), nil
}

// randomIDAttempts bounds collision retries for random-suffix IDs. With a
// 36^5 suffix space collisions are rare; hitting the bound means something
// is wrong with the store.
const randomIDAttempts = 5

// NextRandomID returns a date-stamped random-suffix ID that does not yet
// exist according to the exists check, e.g. "RPT-20250115-X7K2Q".
func (s *SequenceService) NextRandomID(ctx context.Context, prefix string, now time.Time, exists func(context.Context, string) (bool, error)) (string, error) {
	for i := 0; i < randomIDAttempts; i++ {
		id := domain.RandomDatedID(prefix, now)
		taken, err := exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("check %s id: %w", prefix, err)
		}
		if !taken {
			return id, nil
		}
		s.logger.Warn("random id collision, retrying",
			zap.String("prefix", prefix),
			zap.String("id", id))
	}
	return "", fmt.Errorf("could not generate unique %s id after %d attempts", prefix, randomIDAttempts)
}

func (s *SequenceService) nextDated(ctx context.Context, prefix string, now time.Time) (string, error) {
	n, err := s.next(ctx, prefix, domain.DateKey(now))
	if err != nil {
		return "", err
	}
	return domain.FormatDatedID(prefix, now, n), nil
}

func (s *SequenceService) next(ctx context.Context, entityType, dateKey string) (int64, error) {
	n, err := s.repo.NextNumber(ctx, entityType, dateKey)
	if err != nil {
		s.logger.Error("failed to get next sequence number",
			zap.String("entityType", entityType),
			zap.String("dateKey", dateKey),
			zap.Error(err))
		return 0, fmt.Errorf("next %s number: %w", entityType, err)
	}
	return n, nil
}
