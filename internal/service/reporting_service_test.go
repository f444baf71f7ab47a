package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"github.com/liftworks/service-api/internal/service"
	"github.com/liftworks/service-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createReportingService(db *gorm.DB) *service.ReportingService {
	log := zap.NewNop()
	return service.NewReportingService(
		repository.NewCustomerRepository(db),
		repository.NewContractRepository(db),
		repository.NewCallbackRepository(db),
		repository.NewRepairRepository(db),
		repository.NewComplaintRepository(db),
		repository.NewScheduleRepository(db),
		repository.NewReportRepository(db),
		repository.NewMaterialRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewUserRepository(db),
		repository.NewAssignmentRepository(db),
		log,
	)
}

func TestReportingService_DailySummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createReportingService(db)
	ctx := context.Background()

	t.Run("empty day reports zeros without dividing by them", func(t *testing.T) {
		summary, err := svc.DailySummary(ctx, time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, int64(0), summary.Callbacks.Total)
		assert.Equal(t, float64(0), summary.Callbacks.CompletionRate)
		assert.Equal(t, float64(0), summary.Services.CompletionRate)
		assert.Empty(t, summary.Technicians)
	})

	t.Run("counts today's work by status", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		now := time.Now().UTC()

		testutil.CreateTestCallback(t, db, customer.ID)
		done := testutil.CreateTestCallback(t, db, customer.ID)
		require.NoError(t, db.Model(done).Update("status", domain.CallbackCompleted).Error)
		testutil.CreateTestSchedule(t, db, customer.ID, now)

		summary, err := svc.DailySummary(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), summary.Callbacks.Total)
		assert.Equal(t, int64(1), summary.Callbacks.Completed)
		assert.Equal(t, float64(50), summary.Callbacks.CompletionRate)
		assert.Equal(t, int64(1), summary.Services.Total)
	})
}

func TestReportingService_MonthlySummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createReportingService(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
	now := time.Now().UTC()
	testutil.CreateTestSchedule(t, db, customer.ID, now)

	summary, err := svc.MonthlySummary(ctx, now.Year(), now.Month())
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Services.Total)

	daysInMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, 0).AddDate(0, 0, -1).Day()
	require.Len(t, summary.DailyBreakdown, daysInMonth)

	var bucketed int64
	for _, bucket := range summary.DailyBreakdown {
		bucketed += bucket.Services
	}
	assert.Equal(t, int64(1), bucketed)
}

func TestReportingService_CustomerAMC(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createReportingService(db)
	ctx := context.Background()

	t.Run("window falls back to the customer's AMC dates", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		testutil.CreateTestSchedule(t, db, customer.ID, time.Now().UTC())
		testutil.CreateTestCallback(t, db, customer.ID)

		report, err := svc.CustomerAMC(ctx, customer.ID, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, customer.JobNumber, report.JobNumber)
		assert.WithinDuration(t, *customer.AMCValidFrom, report.PeriodStart, time.Second)
		assert.Equal(t, int64(1), report.ScheduledCount)
		assert.Len(t, report.Callbacks, 1)
	})

	t.Run("explicit window wins over AMC dates", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Window Towers")
		testutil.CreateTestSchedule(t, db, customer.ID, time.Now().UTC())

		from := time.Now().UTC().AddDate(-2, 0, 0)
		to := from.AddDate(0, 1, 0)
		report, err := svc.CustomerAMC(ctx, customer.ID, &from, &to)
		require.NoError(t, err)
		assert.Equal(t, int64(0), report.ScheduledCount)
		assert.Empty(t, report.Services)
	})

	t.Run("no AMC dates and no contract is a bad request", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Dateless Court")
		require.NoError(t, db.Model(&domain.Customer{}).
			Where("id = ?", customer.ID).
			Updates(map[string]interface{}{"amc_valid_from": nil, "amc_valid_to": nil}).Error)

		_, err := svc.CustomerAMC(ctx, customer.ID, nil, nil)
		assert.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("unknown customer", func(t *testing.T) {
		_, err := svc.CustomerAMC(ctx, uuid.New(), nil, nil)
		assert.ErrorIs(t, err, service.ErrCustomerNotFound)
	})
}

func TestReportingService_Materials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createReportingService(db)
	materials := createMaterialService(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
	tech := testutil.CreateTestTechnician(t, db, "Ravi")
	callback := testutil.CreateTestCallback(t, db, customer.ID)
	schedule := testutil.CreateTestSchedule(t, db, customer.ID, time.Now().UTC())

	record := func(name string, qty, unitCost float64, scheduleID, callbackID *uuid.UUID) {
		_, err := materials.Record(ctx, tech.ID, &domain.CreateMaterialUsageRequest{
			MaterialName: name,
			Quantity:     qty,
			UnitCost:     unitCost,
			CustomerID:   customer.ID,
			ScheduleID:   scheduleID,
			CallbackID:   callbackID,
		})
		require.NoError(t, err)
	}

	record("Wire rope", 10, 250, &schedule.ID, nil)
	record("Wire rope", 5, 250, nil, &callback.ID)
	record("Door roller", 2, 400, nil, nil)

	from := time.Now().UTC().AddDate(0, 0, -1)
	to := time.Now().UTC().AddDate(0, 0, 1)
	lines, err := svc.Materials(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	byName := map[string]domain.MaterialSummaryLine{}
	for _, line := range lines {
		byName[line.MaterialName] = line
	}

	rope := byName["Wire rope"]
	assert.Equal(t, float64(15), rope.TotalQuantity)
	assert.Equal(t, float64(3750), rope.TotalCost)
	assert.Equal(t, int64(1), rope.ServiceCount)
	assert.Equal(t, int64(1), rope.CallbackCount)

	roller := byName["Door roller"]
	assert.Equal(t, float64(2), roller.TotalQuantity)
	assert.Equal(t, int64(0), roller.ServiceCount)
}

func TestReportingService_Revenue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createReportingService(db)
	payments := createPaymentService(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
	require.NoError(t, db.Model(&domain.Customer{}).
		Where("id = ?", customer.ID).
		Update("amc_amount_received", 24000).Error)

	payment, err := payments.Create(ctx, &domain.CreatePaymentRequest{
		CustomerID: customer.ID,
		Amount:     12000,
	})
	require.NoError(t, err)
	_, err = payments.MarkPaid(ctx, payment.ID, &domain.MarkPaymentPaidRequest{Method: "UPI"})
	require.NoError(t, err)
	_, err = payments.Create(ctx, &domain.CreatePaymentRequest{
		CustomerID: customer.ID,
		Amount:     6000,
	})
	require.NoError(t, err)

	from := time.Now().UTC().AddDate(0, 0, -1)
	to := time.Now().UTC().AddDate(0, 0, 1)
	report, err := svc.Revenue(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.ActiveCustomers)
	assert.Equal(t, float64(48000), report.TotalAMCValue)
	assert.Equal(t, float64(24000), report.TotalAMCReceived)
	assert.Equal(t, float64(50), report.CollectionRate)
	assert.Equal(t, float64(12000), report.PeriodPaidAmount)
	assert.Equal(t, float64(6000), report.PeriodPendingAmount)
}

func TestReportingService_Dashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createReportingService(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
	testutil.CreateTestCallback(t, db, customer.ID)
	testutil.CreateTestRepair(t, db, customer.ID)
	testutil.CreateTestSchedule(t, db, customer.ID, time.Now().UTC())

	overview, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), overview.OpenCallbacks)
	assert.Equal(t, int64(1), overview.OpenRepairs)
	assert.Equal(t, int64(1), overview.TodaySchedules)
	assert.Equal(t, int64(1), overview.ActiveCustomers)
	assert.Len(t, overview.RecentCallbacks, 1)
	assert.Len(t, overview.RecentSchedules, 1)
}
