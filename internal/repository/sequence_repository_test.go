package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"github.com/liftworks/service-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceRepository_NextNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSequenceRepository(db)
	ctx := context.Background()

	t.Run("numbers are gapless from one", func(t *testing.T) {
		for want := int64(1); want <= 5; want++ {
			got, err := repo.NextNumber(ctx, domain.PrefixCallback, "20260115")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("scopes are independent per entity type", func(t *testing.T) {
		cb, err := repo.NextNumber(ctx, domain.PrefixCallback, "20260116")
		require.NoError(t, err)
		rp, err := repo.NextNumber(ctx, domain.PrefixRepair, "20260116")
		require.NoError(t, err)

		assert.Equal(t, int64(1), cb)
		assert.Equal(t, int64(1), rp)
	})

	t.Run("day scoped counters reset on a new date key", func(t *testing.T) {
		first, err := repo.NextNumber(ctx, domain.PrefixSchedule, "20260117")
		require.NoError(t, err)
		second, err := repo.NextNumber(ctx, domain.PrefixSchedule, "20260117")
		require.NoError(t, err)
		nextDay, err := repo.NextNumber(ctx, domain.PrefixSchedule, "20260118")
		require.NoError(t, err)

		assert.Equal(t, int64(1), first)
		assert.Equal(t, int64(2), second)
		assert.Equal(t, int64(1), nextDay)
	})

	t.Run("lifetime counters use an empty date key", func(t *testing.T) {
		first, err := repo.NextNumber(ctx, domain.PrefixJobNumber, "")
		require.NoError(t, err)
		second, err := repo.NextNumber(ctx, domain.PrefixJobNumber, "")
		require.NoError(t, err)

		assert.Equal(t, int64(1), first)
		assert.Equal(t, int64(2), second)
	})
}

func TestSequenceRepository_ConcurrentNextNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	// SQLite allows one writer at a time; a single pooled connection keeps
	// concurrent callers from tripping over busy errors.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := repository.NewSequenceRepository(db)
	ctx := context.Background()

	const callers = 20
	numbers := make(chan int64, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := repo.NextNumber(ctx, domain.PrefixCallback, "20260125")
			assert.NoError(t, err)
			numbers <- n
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[int64]bool, callers)
	for n := range numbers {
		assert.False(t, seen[n], "number %d issued twice", n)
		seen[n] = true
	}
	for want := int64(1); want <= callers; want++ {
		assert.True(t, seen[want], "number %d never issued", want)
	}
}

func TestSequenceRepository_Current(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSequenceRepository(db)
	ctx := context.Background()

	t.Run("unissued scope reads zero", func(t *testing.T) {
		got, err := repo.Current(ctx, domain.PrefixComplaint, "")
		require.NoError(t, err)
		assert.Equal(t, int64(0), got)
	})

	t.Run("reading does not increment", func(t *testing.T) {
		_, err := repo.NextNumber(ctx, domain.PrefixCallback, "20260120")
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			got, err := repo.Current(ctx, domain.PrefixCallback, "20260120")
			require.NoError(t, err)
			assert.Equal(t, int64(1), got)
		}
	})
}
