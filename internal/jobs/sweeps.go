package jobs

import (
	"context"
	"time"

	"github.com/liftworks/service-api/internal/config"
	"github.com/liftworks/service-api/internal/service"
	"go.uber.org/zap"
)

// sweepTimeout bounds each nightly sweep run.
const sweepTimeout = 5 * time.Minute

// RegisterSweeps wires the nightly maintenance jobs onto the scheduler:
// the AMC expiry sweep and the overdue marking for schedules and payments.
func RegisterSweeps(
	scheduler *Scheduler,
	cfg *config.JobsConfig,
	customers *service.CustomerService,
	schedules *service.ScheduleService,
	payments *service.PaymentService,
	logger *zap.Logger,
) error {
	err := scheduler.AddJob("amc-expiry-sweep", cfg.AMCExpirySchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		result, err := customers.RefreshAMCStatuses(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("AMC expiry sweep failed", zap.Error(err))
			return
		}
		logger.Info("AMC expiry sweep finished",
			zap.Int64("updated", result.UpdatedCount),
			zap.Int64("checked", result.CheckedCustomers))
	})
	if err != nil {
		return err
	}

	return scheduler.AddJob("overdue-sweep", cfg.OverdueSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		now := time.Now().UTC()
		if _, err := schedules.MarkOverdue(ctx, now); err != nil {
			logger.Error("overdue schedule sweep failed", zap.Error(err))
		}
		if _, err := payments.MarkOverdue(ctx, now); err != nil {
			logger.Error("overdue payment sweep failed", zap.Error(err))
		}
	})
}
