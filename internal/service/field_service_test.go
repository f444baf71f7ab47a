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

func createFieldService(db *gorm.DB) *service.FieldService {
	log := zap.NewNop()
	sequences := service.NewSequenceService(repository.NewSequenceRepository(db), log)
	assignments := service.NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewUserRepository(db),
		log,
	)
	return service.NewFieldService(
		repository.NewReportRepository(db),
		repository.NewScheduleRepository(db),
		repository.NewCallbackRepository(db),
		repository.NewRepairRepository(db),
		repository.NewContractRepository(db),
		assignments,
		sequences,
		log,
	)
}

func siteLocation() domain.GeoPoint {
	return domain.GeoPoint{Latitude: 12.9716, Longitude: 77.5946}
}

func checkOutRequest(report *domain.ServiceReport) *domain.CheckOutRequest {
	return &domain.CheckOutRequest{
		ReportID: report.ID,
		Location: siteLocation(),
		WorkDone: "Completed the monthly checklist, greased guide rails",
	}
}

func TestFieldService_CheckIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createFieldService(db)
	ctx := context.Background()

	t.Run("opens a report and starts the visit", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		schedule := testutil.CreateTestSchedule(t, db, customer.ID, time.Now().UTC())
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		report, err := svc.CheckIn(ctx, tech.ID, &domain.CheckInRequest{
			ScheduleID: schedule.ID,
			Location:   siteLocation(),
		})
		require.NoError(t, err)
		assert.Regexp(t, `^RPT-\d{8}-[A-Z0-9]{5}$`, report.ReportID)
		assert.Equal(t, tech.ID, report.TechnicianID)
		assert.Nil(t, report.CheckOutAt)

		var stored domain.ServiceSchedule
		require.NoError(t, db.First(&stored, "id = ?", schedule.ID).Error)
		assert.Equal(t, domain.ScheduleInProgress, stored.Status)
	})

	t.Run("checking in twice on the same visit is refused", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		schedule := testutil.CreateTestSchedule(t, db, customer.ID, time.Now().UTC())
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		_, err := svc.CheckIn(ctx, tech.ID, &domain.CheckInRequest{ScheduleID: schedule.ID, Location: siteLocation()})
		require.NoError(t, err)

		_, err = svc.CheckIn(ctx, tech.ID, &domain.CheckInRequest{ScheduleID: schedule.ID, Location: siteLocation()})
		assert.ErrorIs(t, err, service.ErrConflict)
	})

	t.Run("a second technician can join the same visit", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		schedule := testutil.CreateTestSchedule(t, db, customer.ID, time.Now().UTC())
		first := testutil.CreateTestTechnician(t, db, "First")
		second := testutil.CreateTestTechnician(t, db, "Second")

		_, err := svc.CheckIn(ctx, first.ID, &domain.CheckInRequest{ScheduleID: schedule.ID, Location: siteLocation()})
		require.NoError(t, err)
		_, err = svc.CheckIn(ctx, second.ID, &domain.CheckInRequest{ScheduleID: schedule.ID, Location: siteLocation()})
		require.NoError(t, err)

		reports, err := svc.ListReports(ctx, schedule.ID)
		require.NoError(t, err)
		assert.Len(t, reports, 2)
	})

	t.Run("cannot check in on a cancelled visit", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		schedule := testutil.CreateTestSchedule(t, db, customer.ID, time.Now().UTC())
		tech := testutil.CreateTestTechnician(t, db, "Ravi")
		require.NoError(t, db.Model(schedule).Update("status", domain.ScheduleCancelled).Error)

		_, err := svc.CheckIn(ctx, tech.ID, &domain.CheckInRequest{ScheduleID: schedule.ID, Location: siteLocation()})
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})
}

func TestFieldService_CheckOut(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createFieldService(db)
	ctx := context.Background()

	checkedIn := func(t *testing.T, customer *domain.Customer) (*domain.ServiceSchedule, *domain.User, *domain.ServiceReport) {
		t.Helper()
		schedule := testutil.CreateTestSchedule(t, db, customer.ID, time.Now().UTC())
		tech := testutil.CreateTestTechnician(t, db, "Ravi")
		report, err := svc.CheckIn(ctx, tech.ID, &domain.CheckInRequest{ScheduleID: schedule.ID, Location: siteLocation()})
		require.NoError(t, err)
		return schedule, tech, report
	}

	t.Run("closes the report and completes the visit", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		schedule, tech, report := checkedIn(t, customer)

		req := checkOutRequest(report)
		rating := 5
		req.Rating = &rating
		req.PartsReplaced = []string{"guide shoe"}

		closed, err := svc.CheckOut(ctx, tech.ID, req)
		require.NoError(t, err)
		require.NotNil(t, closed.CheckOutAt)
		assert.Equal(t, req.WorkDone, closed.WorkDone)
		assert.Greater(t, closed.DurationMinutes(), -1.0)

		var stored domain.ServiceSchedule
		require.NoError(t, db.First(&stored, "id = ?", schedule.ID).Error)
		assert.Equal(t, domain.ScheduleCompleted, stored.Status)
		assert.NotNil(t, stored.CompletedAt)
	})

	t.Run("completing the visit credits the active contract", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Contract Court")
		now := time.Now().UTC()
		contract := &domain.AMCContract{
			ContractNumber: "AMC-20260101-TESTA",
			CustomerID:     customer.ID,
			Type:           domain.ContractActive,
			Frequency:      domain.FrequencyMonthly,
			StartDate:      now.AddDate(0, -1, 0),
			EndDate:        now.AddDate(0, 11, 0),
			TotalServices:  12,
		}
		require.NoError(t, db.Create(contract).Error)

		_, tech, report := checkedIn(t, customer)
		_, err := svc.CheckOut(ctx, tech.ID, checkOutRequest(report))
		require.NoError(t, err)

		var stored domain.AMCContract
		require.NoError(t, db.First(&stored, "id = ?", contract.ID).Error)
		assert.Equal(t, 1, stored.CompletedServices)
		assert.Equal(t, 11, stored.PendingServices())
	})

	t.Run("cannot close another technician's report", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		_, _, report := checkedIn(t, customer)
		outsider := testutil.CreateTestTechnician(t, db, "Outsider")

		_, err := svc.CheckOut(ctx, outsider.ID, checkOutRequest(report))
		assert.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("cannot check out twice", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		_, tech, report := checkedIn(t, customer)

		_, err := svc.CheckOut(ctx, tech.ID, checkOutRequest(report))
		require.NoError(t, err)

		_, err = svc.CheckOut(ctx, tech.ID, checkOutRequest(report))
		assert.ErrorIs(t, err, service.ErrConflict)
	})
}

func TestFieldService_AvailableTickets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createFieldService(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
	tech := testutil.CreateTestTechnician(t, db, "Ravi")

	testutil.CreateTestCallback(t, db, customer.ID)
	testutil.CreateTestSchedule(t, db, customer.ID, time.Now().UTC().AddDate(0, 0, 1))
	testutil.CreateTestRepair(t, db, customer.ID)

	// Completed work must not show up as available.
	done := testutil.CreateTestCallback(t, db, customer.ID)
	require.NoError(t, db.Model(done).Update("status", domain.CallbackCompleted).Error)

	tickets, err := svc.AvailableTickets(ctx, tech.ID)
	require.NoError(t, err)
	assert.Len(t, tickets.Callbacks, 1)
	assert.Len(t, tickets.Services, 1)
	assert.Len(t, tickets.Repairs, 1)
}
