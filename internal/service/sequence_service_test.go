package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"github.com/liftworks/service-api/internal/service"
	"github.com/liftworks/service-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createSequenceService(db *gorm.DB) *service.SequenceService {
	return service.NewSequenceService(repository.NewSequenceRepository(db), zap.NewNop())
}

func TestSequenceService_DatedIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createSequenceService(db)
	ctx := context.Background()
	day := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("callback ids count up within a day", func(t *testing.T) {
		first, err := svc.NextCallbackID(ctx, day)
		require.NoError(t, err)
		second, err := svc.NextCallbackID(ctx, day)
		require.NoError(t, err)

		assert.Equal(t, "CB-20260115-001", first)
		assert.Equal(t, "CB-20260115-002", second)
	})

	t.Run("a new day restarts the count", func(t *testing.T) {
		nextDay, err := svc.NextCallbackID(ctx, day.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, "CB-20260116-001", nextDay)
	})

	t.Run("repair and schedule counters do not share state", func(t *testing.T) {
		repairID, err := svc.NextRepairID(ctx, day)
		require.NoError(t, err)
		scheduleID, err := svc.NextScheduleID(ctx, day)
		require.NoError(t, err)

		assert.Equal(t, "RP-20260115-001", repairID)
		assert.Equal(t, "SRV-20260115-0001", scheduleID)
	})
}

func TestSequenceService_LifetimeIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createSequenceService(db)
	ctx := context.Background()

	jobNumber, err := svc.NextJobNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "JB-0001", jobNumber)

	complaintID, err := svc.NextComplaintID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "COMP-001", complaintID)
}

func TestSequenceService_NextRandomID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createSequenceService(db)
	ctx := context.Background()
	day := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("free id is returned as is", func(t *testing.T) {
		id, err := svc.NextRandomID(ctx, domain.PrefixReport, day,
			func(context.Context, string) (bool, error) { return false, nil })
		require.NoError(t, err)
		assert.Regexp(t, `^RPT-20260115-[A-Z0-9]{5}$`, id)
	})

	t.Run("collisions are re-rolled", func(t *testing.T) {
		collisions := 0
		id, err := svc.NextRandomID(ctx, domain.PrefixPayment, day,
			func(context.Context, string) (bool, error) {
				if collisions < 2 {
					collisions++
					return true, nil
				}
				return false, nil
			})
		require.NoError(t, err)
		assert.Equal(t, 2, collisions)
		assert.Regexp(t, `^PAY-20260115-[A-Z0-9]{5}$`, id)
	})

	t.Run("a store that never frees up gives up", func(t *testing.T) {
		_, err := svc.NextRandomID(ctx, domain.PrefixContract, day,
			func(context.Context, string) (bool, error) { return true, nil })
		assert.Error(t, err)
	})
}
