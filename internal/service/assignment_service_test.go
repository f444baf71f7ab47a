package service_test

import (
	"context"
	"errors"
	"sync"
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

func createAssignmentService(db *gorm.DB) *service.AssignmentService {
	return service.NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewUserRepository(db),
		zap.NewNop(),
	)
}

func TestAssignmentService_Assign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAssignmentService(db)
	ctx := context.Background()

	t.Run("first assignee becomes primary", func(t *testing.T) {
		tech := testutil.CreateTestTechnician(t, db, "Ravi")
		jobID := uuid.New()

		assignment, err := svc.Assign(ctx, domain.JobTypeCallback, jobID, tech.ID, nil)
		require.NoError(t, err)
		assert.True(t, assignment.IsPrimary)
		assert.Equal(t, 0, assignment.Position)
	})

	t.Run("later assignees keep assignment order", func(t *testing.T) {
		jobID := uuid.New()
		for i := 0; i < 3; i++ {
			tech := testutil.CreateTestTechnician(t, db, "Tech")
			assignment, err := svc.Assign(ctx, domain.JobTypeCallback, jobID, tech.ID, nil)
			require.NoError(t, err)
			assert.Equal(t, i, assignment.Position)
			assert.Equal(t, i == 0, assignment.IsPrimary)
		}

		technicians, err := svc.ListForJob(ctx, domain.JobTypeCallback, jobID)
		require.NoError(t, err)
		require.Len(t, technicians, 3)
		assert.True(t, technicians[0].IsPrimary)
		assert.False(t, technicians[1].IsPrimary)
		assert.False(t, technicians[2].IsPrimary)
	})

	t.Run("fourth technician on a callback is rejected", func(t *testing.T) {
		jobID := uuid.New()
		for i := 0; i < 3; i++ {
			tech := testutil.CreateTestTechnician(t, db, "Tech")
			_, err := svc.Assign(ctx, domain.JobTypeCallback, jobID, tech.ID, nil)
			require.NoError(t, err)
		}

		extra := testutil.CreateTestTechnician(t, db, "Extra")
		_, err := svc.Assign(ctx, domain.JobTypeCallback, jobID, extra.ID, nil)
		assert.ErrorIs(t, err, service.ErrCapacityExceeded)
	})

	t.Run("repairs have no technician cap", func(t *testing.T) {
		jobID := uuid.New()
		for i := 0; i < 5; i++ {
			tech := testutil.CreateTestTechnician(t, db, "Tech")
			_, err := svc.Assign(ctx, domain.JobTypeRepair, jobID, tech.ID, nil)
			require.NoError(t, err)
		}
	})

	t.Run("duplicate assignment is rejected", func(t *testing.T) {
		tech := testutil.CreateTestTechnician(t, db, "Ravi")
		jobID := uuid.New()

		_, err := svc.Assign(ctx, domain.JobTypeService, jobID, tech.ID, nil)
		require.NoError(t, err)

		_, err = svc.Assign(ctx, domain.JobTypeService, jobID, tech.ID, nil)
		assert.ErrorIs(t, err, service.ErrDuplicateAssignment)
	})

	t.Run("inactive technician cannot be assigned", func(t *testing.T) {
		tech := testutil.CreateTestTechnician(t, db, "Retired")
		require.NoError(t, db.Model(tech).Update("is_active", false).Error)

		_, err := svc.Assign(ctx, domain.JobTypeCallback, uuid.New(), tech.ID, nil)
		assert.ErrorIs(t, err, service.ErrTechnicianInactive)
	})

	t.Run("non technician account cannot be assigned", func(t *testing.T) {
		admin := testutil.CreateTestAdmin(t, db)

		_, err := svc.Assign(ctx, domain.JobTypeCallback, uuid.New(), admin.ID, nil)
		assert.ErrorIs(t, err, service.ErrTechnicianInactive)
	})

	t.Run("unknown job type is rejected", func(t *testing.T) {
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		_, err := svc.Assign(ctx, domain.JobTypeType("mystery"), uuid.New(), tech.ID, nil)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestAssignmentService_ConcurrentAssign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	// SQLite allows one writer at a time; a single pooled connection keeps
	// concurrent callers from tripping over busy errors.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	svc := createAssignmentService(db)
	ctx := context.Background()

	const callers = 6
	jobID := uuid.New()
	techs := make([]*domain.User, callers)
	for i := range techs {
		techs[i] = testutil.CreateTestTechnician(t, db, "Tech")
	}

	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for _, tech := range techs {
		wg.Add(1)
		go func(techID uuid.UUID) {
			defer wg.Done()
			_, err := svc.Assign(ctx, domain.JobTypeCallback, jobID, techID, nil)
			errs <- err
		}(tech.ID)
	}
	wg.Wait()
	close(errs)

	var won, capped int
	for err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, service.ErrCapacityExceeded):
			capped++
		default:
			t.Fatalf("unexpected assign error: %v", err)
		}
	}
	assert.Equal(t, 3, won)
	assert.Equal(t, callers-3, capped)

	assignments, err := svc.ListForJob(ctx, domain.JobTypeCallback, jobID)
	require.NoError(t, err)
	require.Len(t, assignments, 3)

	primaries := 0
	for _, a := range assignments {
		if a.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestAssignmentService_Unassign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAssignmentService(db)
	ctx := context.Background()

	t.Run("removes the assignment", func(t *testing.T) {
		tech := testutil.CreateTestTechnician(t, db, "Ravi")
		jobID := uuid.New()

		_, err := svc.Assign(ctx, domain.JobTypeCallback, jobID, tech.ID, nil)
		require.NoError(t, err)

		require.NoError(t, svc.Unassign(ctx, domain.JobTypeCallback, jobID, tech.ID))

		assigned, err := svc.IsAssigned(ctx, domain.JobTypeCallback, jobID, tech.ID)
		require.NoError(t, err)
		assert.False(t, assigned)
	})

	t.Run("unassigning an absent technician fails", func(t *testing.T) {
		tech := testutil.CreateTestTechnician(t, db, "Ravi")

		err := svc.Unassign(ctx, domain.JobTypeCallback, uuid.New(), tech.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("freed slot can be reused", func(t *testing.T) {
		jobID := uuid.New()
		var first *domain.User
		for i := 0; i < 3; i++ {
			tech := testutil.CreateTestTechnician(t, db, "Tech")
			if first == nil {
				first = tech
			}
			_, err := svc.Assign(ctx, domain.JobTypeCallback, jobID, tech.ID, nil)
			require.NoError(t, err)
		}

		require.NoError(t, svc.Unassign(ctx, domain.JobTypeCallback, jobID, first.ID))

		replacement := testutil.CreateTestTechnician(t, db, "Replacement")
		_, err := svc.Assign(ctx, domain.JobTypeCallback, jobID, replacement.ID, nil)
		require.NoError(t, err)
	})
}
