package service_test

import (
	"context"
	"testing"

	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"github.com/liftworks/service-api/internal/service"
	"github.com/liftworks/service-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createRepairService(db *gorm.DB) *service.RepairService {
	log := zap.NewNop()
	assignments := service.NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewUserRepository(db),
		log,
	)
	return service.NewRepairService(
		repository.NewRepairRepository(db),
		repository.NewCustomerRepository(db),
		assignments,
		service.NewSequenceService(repository.NewSequenceRepository(db), log),
		log,
	)
}

func TestRepairService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createRepairService(db)
	ctx := context.Background()

	t.Run("walk-in customer by name only", func(t *testing.T) {
		repair, err := svc.Create(ctx, &domain.CreateRepairRequest{
			CustomerName:  "Mr. Shah",
			ContactNumber: "9876543210",
			Description:   "Cabin fan not working",
			QuotedAmount:  1500,
		})
		require.NoError(t, err)
		assert.Regexp(t, `^RP-\d{8}-\d{3}$`, repair.RepairID)
		assert.Equal(t, domain.RepairPending, repair.Status)
		assert.Nil(t, repair.CustomerID)
	})

	t.Run("needs a customer or a caller name", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateRepairRequest{
			Description: "Orphan repair",
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("AMC customer by reference", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")

		repair, err := svc.Create(ctx, &domain.CreateRepairRequest{
			CustomerID:  &customer.ID,
			Description: "Replace worn wire rope",
		})
		require.NoError(t, err)
		require.NotNil(t, repair.CustomerID)
		assert.Equal(t, customer.ID, *repair.CustomerID)
	})
}

func TestRepairService_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createRepairService(db)
	ctx := context.Background()

	newRepair := func(t *testing.T) *domain.Repair {
		t.Helper()
		repair, err := svc.Create(ctx, &domain.CreateRepairRequest{
			CustomerName: "Mr. Shah",
			Description:  "Cabin fan not working",
		})
		require.NoError(t, err)
		return repair
	}

	t.Run("pending to in progress to completed", func(t *testing.T) {
		repair := newRepair(t)

		started, err := svc.UpdateStatus(ctx, repair.ID, &domain.UpdateRepairStatusRequest{
			Status: string(domain.RepairInProgress),
		})
		require.NoError(t, err)
		assert.NotNil(t, started.StartedAt)

		completed, err := svc.UpdateStatus(ctx, repair.ID, &domain.UpdateRepairStatusRequest{
			Status:        string(domain.RepairCompleted),
			InvoiceNumber: "INV-2026-041",
		})
		require.NoError(t, err)
		assert.NotNil(t, completed.CompletedAt)
		assert.Equal(t, "INV-2026-041", completed.InvoiceNumber)
	})

	t.Run("cannot complete a pending repair", func(t *testing.T) {
		repair := newRepair(t)

		_, err := svc.UpdateStatus(ctx, repair.ID, &domain.UpdateRepairStatusRequest{
			Status: string(domain.RepairCompleted),
		})
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("cancel from in progress", func(t *testing.T) {
		repair := newRepair(t)

		_, err := svc.UpdateStatus(ctx, repair.ID, &domain.UpdateRepairStatusRequest{
			Status: string(domain.RepairInProgress),
		})
		require.NoError(t, err)

		cancelled, err := svc.UpdateStatus(ctx, repair.ID, &domain.UpdateRepairStatusRequest{
			Status: string(domain.RepairCancelled),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RepairCancelled, cancelled.Status)

		_, err = svc.UpdateStatus(ctx, repair.ID, &domain.UpdateRepairStatusRequest{
			Status: string(domain.RepairInProgress),
		})
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})
}

func TestRepairService_Assign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createRepairService(db)
	ctx := context.Background()

	t.Run("repairs take any number of technicians", func(t *testing.T) {
		repair, err := svc.Create(ctx, &domain.CreateRepairRequest{
			CustomerName: "Mr. Shah",
			Description:  "Full door replacement",
		})
		require.NoError(t, err)

		for i := 0; i < 4; i++ {
			tech := testutil.CreateTestTechnician(t, db, "Tech")
			_, err := svc.Assign(ctx, repair.ID, tech.ID, nil)
			require.NoError(t, err)
		}

		got, err := svc.GetByID(ctx, repair.ID)
		require.NoError(t, err)
		assert.Len(t, got.Technicians, 4)
	})

	t.Run("cannot assign onto a cancelled repair", func(t *testing.T) {
		repair, err := svc.Create(ctx, &domain.CreateRepairRequest{
			CustomerName: "Mr. Shah",
			Description:  "Abandoned job",
		})
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, repair.ID, &domain.UpdateRepairStatusRequest{
			Status: string(domain.RepairCancelled),
		})
		require.NoError(t, err)

		tech := testutil.CreateTestTechnician(t, db, "Ravi")
		_, err = svc.Assign(ctx, repair.ID, tech.ID, nil)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})
}
