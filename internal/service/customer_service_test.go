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

func createCustomerService(db *gorm.DB) *service.CustomerService {
	log := zap.NewNop()
	sequences := service.NewSequenceService(repository.NewSequenceRepository(db), log)
	return service.NewCustomerService(
		repository.NewCustomerRepository(db),
		repository.NewContractRepository(db),
		sequences,
		log,
	)
}

// setAMCValidTo writes the end date directly, bypassing the lazy refresh.
func setAMCValidTo(t *testing.T, db *gorm.DB, customerID uuid.UUID, validTo time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&domain.Customer{}).
		Where("id = ?", customerID).
		Update("amc_valid_to", validTo).Error)
}

func TestCustomerService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCustomerService(db)
	ctx := context.Background()

	t.Run("issues sequential job numbers", func(t *testing.T) {
		first, err := svc.Create(ctx, &domain.CreateCustomerRequest{SiteName: "Marina Heights"})
		require.NoError(t, err)
		second, err := svc.Create(ctx, &domain.CreateCustomerRequest{SiteName: "Marina Annexe"})
		require.NoError(t, err)

		assert.Equal(t, "JB-0001", first.JobNumber)
		assert.Equal(t, "JB-0002", second.JobNumber)
	})

	t.Run("applies defaults", func(t *testing.T) {
		customer, err := svc.Create(ctx, &domain.CreateCustomerRequest{SiteName: "Default Court"})
		require.NoError(t, err)

		assert.Equal(t, 12, customer.ServicesPerYear)
		assert.Equal(t, domain.AMCStatusActive, customer.AMCStatus)
	})
}

func TestCustomerService_AMCExpiry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCustomerService(db)
	ctx := context.Background()

	t.Run("flips to INACTIVE once the grace period has passed", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Lapsed Towers")
		setAMCValidTo(t, db, customer.ID, time.Now().UTC().Add(-31*24*time.Hour))

		got, err := svc.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AMCStatusInactive, got.AMCStatus)

		// The flip is persisted, not just reflected in the response.
		var stored domain.Customer
		require.NoError(t, db.First(&stored, "id = ?", customer.ID).Error)
		assert.Equal(t, domain.AMCStatusInactive, stored.AMCStatus)
	})

	t.Run("stays ACTIVE within the grace period", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Grace Court")
		setAMCValidTo(t, db, customer.ID, time.Now().UTC().Add(-29*24*time.Hour))

		got, err := svc.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AMCStatusActive, got.AMCStatus)
	})

	t.Run("customers without an end date are left alone", func(t *testing.T) {
		customer, err := svc.Create(ctx, &domain.CreateCustomerRequest{SiteName: "Open Ended"})
		require.NoError(t, err)

		got, err := svc.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AMCStatusActive, got.AMCStatus)
	})

	t.Run("RequireActiveAMC rejects lapsed customers", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Lapsed Mills")
		setAMCValidTo(t, db, customer.ID, time.Now().UTC().Add(-40*24*time.Hour))

		_, err := svc.RequireActiveAMC(ctx, customer.ID)
		assert.ErrorIs(t, err, service.ErrAMCInactive)
	})
}

func TestCustomerService_RefreshAMCStatuses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCustomerService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	expired1 := testutil.CreateTestCustomer(t, db, "Expired One")
	expired2 := testutil.CreateTestCustomer(t, db, "Expired Two")
	inGrace := testutil.CreateTestCustomer(t, db, "Still In Grace")
	current := testutil.CreateTestCustomer(t, db, "Fully Current")

	setAMCValidTo(t, db, expired1.ID, now.Add(-45*24*time.Hour))
	setAMCValidTo(t, db, expired2.ID, now.Add(-31*24*time.Hour))
	setAMCValidTo(t, db, inGrace.ID, now.Add(-10*24*time.Hour))
	setAMCValidTo(t, db, current.ID, now.Add(200*24*time.Hour))

	result, err := svc.RefreshAMCStatuses(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.UpdatedCount)
	assert.Equal(t, int64(4), result.CheckedCustomers)

	for id, want := range map[uuid.UUID]domain.AMCStatusType{
		expired1.ID: domain.AMCStatusInactive,
		expired2.ID: domain.AMCStatusInactive,
		inGrace.ID:  domain.AMCStatusActive,
		current.ID:  domain.AMCStatusActive,
	} {
		var stored domain.Customer
		require.NoError(t, db.First(&stored, "id = ?", id).Error)
		assert.Equal(t, want, stored.AMCStatus)
	}

	// A second sweep has nothing left to do.
	result, err = svc.RefreshAMCStatuses(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.UpdatedCount)
}

func TestCustomerService_CreateContract(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCustomerService(db)
	ctx := context.Background()

	t.Run("renewal refreshes the customer AMC window", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Renewed Towers")
		setAMCValidTo(t, db, customer.ID, time.Now().UTC().Add(-40*24*time.Hour))

		start := time.Now().UTC().Truncate(time.Second)
		end := start.AddDate(1, 0, 0)
		contract, err := svc.CreateContract(ctx, &domain.CreateContractRequest{
			CustomerID:    customer.ID,
			Type:          string(domain.ContractRenewal),
			Frequency:     string(domain.FrequencyMonthly),
			StartDate:     start,
			EndDate:       end,
			TotalServices: 12,
			Amount:        52000,
		})
		require.NoError(t, err)
		assert.Regexp(t, `^AMC-\d{8}-[A-Z0-9]{5}$`, contract.ContractNumber)

		refreshed, err := svc.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AMCStatusActive, refreshed.AMCStatus)
		require.NotNil(t, refreshed.AMCValidTo)
		assert.WithinDuration(t, end, *refreshed.AMCValidTo, time.Second)
		assert.Equal(t, float64(52000), refreshed.AMCAmount)
	})

	t.Run("warranty contracts leave the AMC window alone", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Warranty Court")
		before, err := svc.GetByID(ctx, customer.ID)
		require.NoError(t, err)

		start := time.Now().UTC()
		_, err = svc.CreateContract(ctx, &domain.CreateContractRequest{
			CustomerID: customer.ID,
			Type:       string(domain.ContractWarranty),
			StartDate:  start,
			EndDate:    start.AddDate(1, 0, 0),
		})
		require.NoError(t, err)

		after, err := svc.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, before.AMCAmount, after.AMCAmount)
		require.NotNil(t, after.AMCValidTo)
		assert.WithinDuration(t, *before.AMCValidTo, *after.AMCValidTo, time.Second)
	})

	t.Run("end date must follow start date", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Backwards Court")
		start := time.Now().UTC()

		_, err := svc.CreateContract(ctx, &domain.CreateContractRequest{
			CustomerID: customer.ID,
			Type:       string(domain.ContractActive),
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, -1),
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("contracts list newest first per customer", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "History Court")
		start := time.Now().UTC()
		for i := 0; i < 2; i++ {
			_, err := svc.CreateContract(ctx, &domain.CreateContractRequest{
				CustomerID: customer.ID,
				Type:       string(domain.ContractActive),
				StartDate:  start.AddDate(-i, 0, 0),
				EndDate:    start.AddDate(1-i, 0, 0),
			})
			require.NoError(t, err)
		}

		contracts, err := svc.ListContracts(ctx, customer.ID)
		require.NoError(t, err)
		assert.Len(t, contracts, 2)
	})
}

func TestCustomerService_Deactivate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCustomerService(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Closing Down")
	require.NoError(t, svc.Deactivate(ctx, customer.ID))

	got, err := svc.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AMCStatusInactive, got.AMCStatus)

	assert.ErrorIs(t, svc.Deactivate(ctx, uuid.New()), service.ErrCustomerNotFound)
}
