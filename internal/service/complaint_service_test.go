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

func createComplaintService(db *gorm.DB) *service.ComplaintService {
	log := zap.NewNop()
	return service.NewComplaintService(
		repository.NewComplaintRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewUserRepository(db),
		service.NewSequenceService(repository.NewSequenceRepository(db), log),
		log,
	)
}

func TestComplaintService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createComplaintService(db)
	ctx := context.Background()

	t.Run("issues lifetime complaint ids", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")

		first, err := svc.Create(ctx, &domain.CreateComplaintRequest{
			CustomerID: customer.ID,
			Subject:    "Technician arrived late",
		})
		require.NoError(t, err)
		second, err := svc.Create(ctx, &domain.CreateComplaintRequest{
			CustomerID: customer.ID,
			Subject:    "Billing mismatch",
			Priority:   string(domain.PriorityHigh),
		})
		require.NoError(t, err)

		assert.Equal(t, "COMP-001", first.ComplaintID)
		assert.Equal(t, "COMP-002", second.ComplaintID)
		assert.Equal(t, domain.PriorityMedium, first.Priority)
		assert.Equal(t, domain.PriorityHigh, second.Priority)
		assert.Equal(t, domain.ComplaintOpen, first.Status)
	})

	t.Run("rejects unknown customers", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateComplaintRequest{
			CustomerID: uuid.New(),
			Subject:    "Anything",
		})
		assert.ErrorIs(t, err, service.ErrCustomerNotFound)
	})
}

func TestComplaintService_Claim(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createComplaintService(db)
	ctx := context.Background()

	newComplaint := func(t *testing.T) *domain.Complaint {
		t.Helper()
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		complaint, err := svc.Create(ctx, &domain.CreateComplaintRequest{
			CustomerID: customer.ID,
			Subject:    "Door rattles",
		})
		require.NoError(t, err)
		return complaint
	}

	t.Run("first claim wins and starts work", func(t *testing.T) {
		complaint := newComplaint(t)
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		claimed, err := svc.Claim(ctx, complaint.ID, tech.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ComplaintInProgress, claimed.Status)
		require.NotNil(t, claimed.AssignedToID)
		assert.Equal(t, tech.ID, *claimed.AssignedToID)
	})

	t.Run("a claimed complaint cannot be claimed again", func(t *testing.T) {
		complaint := newComplaint(t)
		first := testutil.CreateTestTechnician(t, db, "First")
		second := testutil.CreateTestTechnician(t, db, "Second")

		_, err := svc.Claim(ctx, complaint.ID, first.ID)
		require.NoError(t, err)

		_, err = svc.Claim(ctx, complaint.ID, second.ID)
		assert.ErrorIs(t, err, service.ErrAlreadyAssigned)

		// Not even by the current assignee.
		_, err = svc.Claim(ctx, complaint.ID, first.ID)
		assert.ErrorIs(t, err, service.ErrAlreadyAssigned)
	})

	t.Run("inactive technicians cannot claim", func(t *testing.T) {
		complaint := newComplaint(t)
		tech := testutil.CreateTestTechnician(t, db, "Retired")
		require.NoError(t, db.Model(tech).Update("is_active", false).Error)

		_, err := svc.Claim(ctx, complaint.ID, tech.ID)
		assert.ErrorIs(t, err, service.ErrTechnicianInactive)
	})
}

func TestComplaintService_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createComplaintService(db)
	ctx := context.Background()

	claimedComplaint := func(t *testing.T) *domain.Complaint {
		t.Helper()
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		complaint, err := svc.Create(ctx, &domain.CreateComplaintRequest{
			CustomerID: customer.ID,
			Subject:    "Door rattles",
		})
		require.NoError(t, err)
		tech := testutil.CreateTestTechnician(t, db, "Ravi")
		claimed, err := svc.Claim(ctx, complaint.ID, tech.ID)
		require.NoError(t, err)
		return claimed
	}

	t.Run("resolve then close", func(t *testing.T) {
		complaint := claimedComplaint(t)

		resolved, err := svc.UpdateStatus(ctx, complaint.ID, &domain.UpdateComplaintStatusRequest{
			Status:     string(domain.ComplaintResolved),
			Resolution: "Adjusted the door closer",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ComplaintResolved, resolved.Status)
		assert.NotNil(t, resolved.ResolvedAt)
		assert.Equal(t, "Adjusted the door closer", resolved.Resolution)

		closed, err := svc.UpdateStatus(ctx, complaint.ID, &domain.UpdateComplaintStatusRequest{
			Status: string(domain.ComplaintClosed),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ComplaintClosed, closed.Status)
	})

	t.Run("resolving requires an assignee", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		complaint, err := svc.Create(ctx, &domain.CreateComplaintRequest{
			CustomerID: customer.ID,
			Subject:    "Still open",
		})
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, complaint.ID, &domain.UpdateComplaintStatusRequest{
			Status: string(domain.ComplaintResolved),
		})
		assert.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("cannot close an unresolved complaint", func(t *testing.T) {
		complaint := claimedComplaint(t)

		_, err := svc.UpdateStatus(ctx, complaint.ID, &domain.UpdateComplaintStatusRequest{
			Status: string(domain.ComplaintClosed),
		})
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("cannot reopen", func(t *testing.T) {
		complaint := claimedComplaint(t)

		_, err := svc.UpdateStatus(ctx, complaint.ID, &domain.UpdateComplaintStatusRequest{
			Status: string(domain.ComplaintOpen),
		})
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})
}
