package service_test

import (
	"context"
	"testing"

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

func createCallbackService(db *gorm.DB) *service.CallbackService {
	log := zap.NewNop()
	sequences := service.NewSequenceService(repository.NewSequenceRepository(db), log)
	customers := service.NewCustomerService(
		repository.NewCustomerRepository(db),
		repository.NewContractRepository(db),
		sequences,
		log,
	)
	assignments := service.NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewUserRepository(db),
		log,
	)
	return service.NewCallbackService(
		repository.NewCallbackRepository(db),
		assignments,
		customers,
		sequences,
		log,
	)
}

func completionRequest(liftStatus string) *domain.CompleteCallbackRequest {
	return &domain.CompleteCallbackRequest{
		IssueFaced:          "Door stuck on third floor",
		ProblemSolved:       "Realigned the door guide shoe",
		LiftStatusOnClosure: liftStatus,
	}
}

func TestCallbackService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCallbackService(db)
	ctx := context.Background()

	t.Run("creates a pending callback with a dated id", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")

		callback, err := svc.Create(ctx, &domain.CreateCallbackRequest{
			CustomerID:      customer.ID,
			ReportedProblem: "Lift not stopping at floor",
			CallerName:      "Watchman",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CallbackPending, callback.Status)
		assert.Regexp(t, `^CB-\d{8}-\d{3}$`, callback.CallbackID)
		assert.Nil(t, callback.PickedAt)
	})

	t.Run("rejects customers without an active contract", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Lapsed Plaza")
		require.NoError(t, db.Model(customer).Update("amc_status", domain.AMCStatusInactive).Error)

		_, err := svc.Create(ctx, &domain.CreateCallbackRequest{
			CustomerID:      customer.ID,
			ReportedProblem: "Noise in the machine room",
		})
		assert.ErrorIs(t, err, service.ErrAMCInactive)
	})

	t.Run("rejects unknown customers", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateCallbackRequest{
			CustomerID:      uuid.New(),
			ReportedProblem: "Anything",
		})
		assert.ErrorIs(t, err, service.ErrCustomerNotFound)
	})
}

func TestCallbackService_Pick(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCallbackService(db)
	ctx := context.Background()

	t.Run("picker becomes the primary technician", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		picked, err := svc.Pick(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CallbackPicked, picked.Status)
		require.NotNil(t, picked.PickedAt)
		require.Len(t, picked.Technicians, 1)
		assert.Equal(t, tech.ID, picked.Technicians[0].TechnicianID)
		assert.True(t, picked.Technicians[0].IsPrimary)
	})

	t.Run("only one picker can win", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		first := testutil.CreateTestTechnician(t, db, "First")
		second := testutil.CreateTestTechnician(t, db, "Second")

		_, err := svc.Pick(ctx, callback.ID, first.ID)
		require.NoError(t, err)

		_, err = svc.Pick(ctx, callback.ID, second.ID)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)

		// The loser leaves no trace on the job.
		got, err := svc.GetByID(ctx, callback.ID)
		require.NoError(t, err)
		require.Len(t, got.Technicians, 1)
		assert.Equal(t, first.ID, got.Technicians[0].TechnicianID)
	})

	t.Run("a rejected picker leaves the callback pending", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		tech := testutil.CreateTestTechnician(t, db, "Retired")
		require.NoError(t, db.Model(tech).Update("is_active", false).Error)

		_, err := svc.Pick(ctx, callback.ID, tech.ID)
		assert.ErrorIs(t, err, service.ErrTechnicianInactive)

		got, err := svc.GetByID(ctx, callback.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CallbackPending, got.Status)
		assert.Nil(t, got.PickedAt)
		assert.Empty(t, got.Technicians)
	})

	t.Run("picking after a dispatcher assignment still works", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		tech := testutil.CreateTestTechnician(t, db, "Ravi")
		admin := testutil.CreateTestAdmin(t, db)

		_, err := svc.Assign(ctx, callback.ID, tech.ID, &admin.ID)
		require.NoError(t, err)

		picked, err := svc.Pick(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CallbackPicked, picked.Status)
		require.Len(t, picked.Technicians, 1)
	})

	t.Run("unknown callback", func(t *testing.T) {
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		_, err := svc.Pick(ctx, uuid.New(), tech.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestCallbackService_Checkpoints(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCallbackService(db)
	ctx := context.Background()

	t.Run("walks pick to in progress with stamps", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		_, err := svc.Pick(ctx, callback.ID, tech.ID)
		require.NoError(t, err)

		onTheWay, err := svc.MarkOnTheWay(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CallbackOnTheWay, onTheWay.Status)
		assert.NotNil(t, onTheWay.OnTheWayAt)

		atSite, err := svc.MarkAtSite(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CallbackAtSite, atSite.Status)
		assert.NotNil(t, atSite.AtSiteAt)
		assert.Nil(t, atSite.RespondedAt)

		inProgress, err := svc.StartWork(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CallbackInProgress, inProgress.Status)
		assert.NotNil(t, inProgress.RespondedAt)
	})

	t.Run("steps cannot be skipped", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		_, err := svc.Pick(ctx, callback.ID, tech.ID)
		require.NoError(t, err)

		_, err = svc.StartWork(ctx, callback.ID, tech.ID)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("unassigned technicians cannot advance the job", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		tech := testutil.CreateTestTechnician(t, db, "Ravi")
		outsider := testutil.CreateTestTechnician(t, db, "Outsider")

		_, err := svc.Pick(ctx, callback.ID, tech.ID)
		require.NoError(t, err)

		_, err = svc.MarkOnTheWay(ctx, callback.ID, outsider.ID)
		assert.ErrorIs(t, err, service.ErrBadRequest)
	})
}

func TestCallbackService_Complete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCallbackService(db)
	ctx := context.Background()

	startedCallback := func(t *testing.T) (*domain.CallBack, *domain.User) {
		t.Helper()
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		_, err := svc.Pick(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		_, err = svc.MarkOnTheWay(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		_, err = svc.MarkAtSite(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		_, err = svc.StartWork(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		return callback, tech
	}

	t.Run("normal running closure needs no followup", func(t *testing.T) {
		callback, tech := startedCallback(t)

		completed, err := svc.Complete(ctx, callback.ID, tech.ID, completionRequest("NORMAL_RUNNING"))
		require.NoError(t, err)
		assert.Equal(t, domain.CallbackCompleted, completed.Status)
		assert.False(t, completed.RequiresFollowup)
		assert.NotNil(t, completed.CompletedAt)
		assert.NotNil(t, completed.RespondedAt)
	})

	t.Run("shut down closure flags followup and allows reopen", func(t *testing.T) {
		callback, tech := startedCallback(t)

		completed, err := svc.Complete(ctx, callback.ID, tech.ID, completionRequest("SHUT_DOWN"))
		require.NoError(t, err)
		assert.True(t, completed.RequiresFollowup)

		reopened, err := svc.Reopen(ctx, callback.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CallbackInProgress, reopened.Status)
		assert.Nil(t, reopened.CompletedAt)
		assert.NotNil(t, reopened.RespondedAt)
	})

	t.Run("clean closure cannot be reopened", func(t *testing.T) {
		callback, tech := startedCallback(t)

		_, err := svc.Complete(ctx, callback.ID, tech.ID, completionRequest("NORMAL_RUNNING"))
		require.NoError(t, err)

		_, err = svc.Reopen(ctx, callback.ID)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("followup flag on the request is ignored", func(t *testing.T) {
		callback, tech := startedCallback(t)

		req := completionRequest("NORMAL_RUNNING")
		followup := true
		req.RequiresFollowup = &followup

		completed, err := svc.Complete(ctx, callback.ID, tech.ID, req)
		require.NoError(t, err)
		assert.False(t, completed.RequiresFollowup)
	})

	t.Run("unknown lift status is rejected", func(t *testing.T) {
		callback, tech := startedCallback(t)

		_, err := svc.Complete(ctx, callback.ID, tech.ID, completionRequest("LEVITATING"))
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("cannot complete before work starts", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		_, err := svc.Pick(ctx, callback.ID, tech.ID)
		require.NoError(t, err)

		_, err = svc.Complete(ctx, callback.ID, tech.ID, completionRequest("NORMAL_RUNNING"))
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})
}

func TestCallbackService_Join(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCallbackService(db)
	ctx := context.Background()

	t.Run("second technician can join active work", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		tech := testutil.CreateTestTechnician(t, db, "Ravi")
		helper := testutil.CreateTestTechnician(t, db, "Helper")

		_, err := svc.Pick(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		_, err = svc.MarkOnTheWay(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		_, err = svc.MarkAtSite(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		_, err = svc.StartWork(ctx, callback.ID, tech.ID)
		require.NoError(t, err)

		joined, err := svc.Join(ctx, callback.ID, helper.ID)
		require.NoError(t, err)
		assert.Len(t, joined.Technicians, 2)
	})

	t.Run("joining is only possible while work is in progress", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		helper := testutil.CreateTestTechnician(t, db, "Helper")

		_, err := svc.Join(ctx, callback.ID, helper.ID)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})
}

func TestCallbackService_Unassign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCallbackService(db)
	ctx := context.Background()

	t.Run("allowed while still picked", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		_, err := svc.Pick(ctx, callback.ID, tech.ID)
		require.NoError(t, err)

		require.NoError(t, svc.Unassign(ctx, callback.ID, tech.ID))
	})

	t.Run("refused once the crew is moving", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		_, err := svc.Pick(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		_, err = svc.MarkOnTheWay(ctx, callback.ID, tech.ID)
		require.NoError(t, err)

		err = svc.Unassign(ctx, callback.ID, tech.ID)
		assert.ErrorIs(t, err, service.ErrConflict)
	})
}

func TestCallbackService_Cancel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCallbackService(db)
	ctx := context.Background()

	t.Run("cancels pending work", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)

		cancelled, err := svc.Cancel(ctx, callback.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CallbackCancelled, cancelled.Status)
		assert.NotNil(t, cancelled.CancelledAt)
	})

	t.Run("completed work cannot be cancelled", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		callback := testutil.CreateTestCallback(t, db, customer.ID)
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		_, err := svc.Pick(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		_, err = svc.MarkOnTheWay(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		_, err = svc.MarkAtSite(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		_, err = svc.StartWork(ctx, callback.ID, tech.ID)
		require.NoError(t, err)
		_, err = svc.Complete(ctx, callback.ID, tech.ID, completionRequest("NORMAL_RUNNING"))
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, callback.ID)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})
}
