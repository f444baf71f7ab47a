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

func createPaymentService(db *gorm.DB) *service.PaymentService {
	log := zap.NewNop()
	return service.NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewCustomerRepository(db),
		service.NewSequenceService(repository.NewSequenceRepository(db), log),
		log,
	)
}

func TestPaymentService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createPaymentService(db)
	ctx := context.Background()

	t.Run("records a pending payment", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		due := time.Now().UTC().AddDate(0, 1, 0)

		payment, err := svc.Create(ctx, &domain.CreatePaymentRequest{
			CustomerID:  customer.ID,
			Amount:      12000,
			PaymentType: "AMC_INSTALLMENT",
			DueDate:     &due,
		})
		require.NoError(t, err)
		assert.Regexp(t, `^PAY-\d{8}-[A-Z0-9]{5}$`, payment.PaymentID)
		assert.Equal(t, domain.PaymentPending, payment.Status)
		assert.Nil(t, payment.PaidAt)
	})

	t.Run("rejects unknown customers", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreatePaymentRequest{
			CustomerID: uuid.New(),
			Amount:     500,
		})
		assert.ErrorIs(t, err, service.ErrCustomerNotFound)
	})
}

func TestPaymentService_MarkPaid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createPaymentService(db)
	ctx := context.Background()

	newPayment := func(t *testing.T, amount float64) *domain.Payment {
		t.Helper()
		customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
		payment, err := svc.Create(ctx, &domain.CreatePaymentRequest{
			CustomerID: customer.ID,
			Amount:     amount,
		})
		require.NoError(t, err)
		return payment
	}

	t.Run("settles a pending payment", func(t *testing.T) {
		payment := newPayment(t, 8000)

		paid, err := svc.MarkPaid(ctx, payment.ID, &domain.MarkPaymentPaidRequest{
			Method:    "UPI",
			Reference: "UTR12345",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentPaid, paid.Status)
		assert.NotNil(t, paid.PaidAt)
		assert.Equal(t, "UPI", paid.Method)
		assert.Equal(t, "UTR12345", paid.Reference)
	})

	t.Run("a settled payment stays settled", func(t *testing.T) {
		payment := newPayment(t, 8000)

		_, err := svc.MarkPaid(ctx, payment.ID, &domain.MarkPaymentPaidRequest{Method: "CASH"})
		require.NoError(t, err)

		_, err = svc.MarkPaid(ctx, payment.ID, &domain.MarkPaymentPaidRequest{Method: "CASH"})
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("unknown payment", func(t *testing.T) {
		_, err := svc.MarkPaid(ctx, uuid.New(), &domain.MarkPaymentPaidRequest{})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestPaymentService_MarkOverdue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createPaymentService(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
	now := time.Now().UTC()

	makePayment := func(due *time.Time) *domain.Payment {
		payment, err := svc.Create(ctx, &domain.CreatePaymentRequest{
			CustomerID: customer.ID,
			Amount:     5000,
			DueDate:    due,
		})
		require.NoError(t, err)
		return payment
	}

	pastDue := now.AddDate(0, 0, -5)
	futureDue := now.AddDate(0, 0, 5)
	late := makePayment(&pastDue)
	onTime := makePayment(&futureDue)
	noDue := makePayment(nil)

	updated, err := svc.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	for id, want := range map[uuid.UUID]domain.PaymentStatusType{
		late.ID:   domain.PaymentOverdue,
		onTime.ID: domain.PaymentPending,
		noDue.ID:  domain.PaymentPending,
	} {
		got, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.Status)
	}

	// Overdue payments can still be settled.
	paid, err := svc.MarkPaid(ctx, late.ID, &domain.MarkPaymentPaidRequest{Method: "CHEQUE"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, paid.Status)
}

func TestPaymentService_Stats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createPaymentService(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Sunview Towers")
	amounts := []float64{10000, 6000, 4000}
	var payments []*domain.Payment
	for _, amount := range amounts {
		payment, err := svc.Create(ctx, &domain.CreatePaymentRequest{
			CustomerID: customer.ID,
			Amount:     amount,
		})
		require.NoError(t, err)
		payments = append(payments, payment)
	}

	_, err := svc.MarkPaid(ctx, payments[0].ID, &domain.MarkPaymentPaidRequest{Method: "UPI"})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(20000), stats.TotalAmount)
	assert.Equal(t, float64(10000), stats.PaidAmount)
	assert.Equal(t, float64(10000), stats.PendingAmount)
	assert.Equal(t, int64(0), stats.OverdueCount)
}
