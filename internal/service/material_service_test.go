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

func createMaterialService(db *gorm.DB) *service.MaterialService {
	return service.NewMaterialService(
		repository.NewMaterialRepository(db),
		repository.NewCustomerRepository(db),
		zap.NewNop(),
	)
}

func TestMaterialService_Record(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createMaterialService(db)
	ctx := context.Background()

	t.Run("computes the line total", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		usage, err := svc.Record(ctx, tech.ID, &domain.CreateMaterialUsageRequest{
			MaterialName: "Wire rope",
			Quantity:     12,
			Unit:         "m",
			UnitCost:     250,
			CustomerID:   customer.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, float64(3000), usage.TotalCost)
		assert.False(t, usage.UsedDate.IsZero())
	})

	t.Run("a usage row may reference at most one job", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		tech := testutil.CreateTestTechnician(t, db, "Ravi")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		schedule := testutil.CreateTestSchedule(t, db, customer.ID, time.Now().UTC())

		_, err := svc.Record(ctx, tech.ID, &domain.CreateMaterialUsageRequest{
			MaterialName: "Door roller",
			Quantity:     2,
			UnitCost:     400,
			CustomerID:   customer.ID,
			CallbackID:   &callback.ID,
			ScheduleID:   &schedule.ID,
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("filters by technician and window", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Window Court")
		tech := testutil.CreateTestTechnician(t, db, "Ravi")
		other := testutil.CreateTestTechnician(t, db, "Other")

		old := time.Now().UTC().AddDate(0, -2, 0)
		_, err := svc.Record(ctx, tech.ID, &domain.CreateMaterialUsageRequest{
			MaterialName: "Old grease",
			Quantity:     1,
			CustomerID:   customer.ID,
			UsedDate:     &old,
		})
		require.NoError(t, err)
		_, err = svc.Record(ctx, tech.ID, &domain.CreateMaterialUsageRequest{
			MaterialName: "Fresh grease",
			Quantity:     1,
			CustomerID:   customer.ID,
		})
		require.NoError(t, err)
		_, err = svc.Record(ctx, other.ID, &domain.CreateMaterialUsageRequest{
			MaterialName: "Someone else's grease",
			Quantity:     1,
			CustomerID:   customer.ID,
		})
		require.NoError(t, err)

		from := time.Now().UTC().AddDate(0, -1, 0)
		usages, total, err := svc.List(ctx, repository.MaterialFilters{
			TechnicianID: &tech.ID,
			From:         &from,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, usages, 1)
		assert.Equal(t, "Fresh grease", usages[0].MaterialName)
	})
}
