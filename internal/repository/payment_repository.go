package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"gorm.io/gorm"
)

// PaymentRepository handles database operations for payment records
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).Preload("Customer").First(&payment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// PaymentFilters narrows payment listings
type PaymentFilters struct {
	Status     *domain.PaymentStatusType
	CustomerID *uuid.UUID
	Limit      int
	Offset     int
}

func (r *PaymentRepository) List(ctx context.Context, filters PaymentFilters) ([]domain.Payment, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Payment{})
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	if filters.CustomerID != nil {
		q = q.Where("customer_id = ?", *filters.CustomerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		q = q.Offset(filters.Offset)
	}

	var payments []domain.Payment
	err := q.Preload("Customer").Order("created_at DESC").Find(&payments).Error
	return payments, total, err
}

// MarkPaid flips an unpaid payment to paid. Returns false when the payment
// was already paid.
func (r *PaymentRepository) MarkPaid(ctx context.Context, id uuid.UUID, at time.Time, method, reference string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ? AND status IN ?", id,
			[]domain.PaymentStatusType{domain.PaymentPending, domain.PaymentPartial, domain.PaymentOverdue}).
		Updates(map[string]interface{}{
			"status":    domain.PaymentPaid,
			"paid_at":   at,
			"method":    method,
			"reference": reference,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkOverdue flips pending payments whose due date has passed to overdue.
func (r *PaymentRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", domain.PaymentPending, now).
		Update("status", domain.PaymentOverdue)
	return result.RowsAffected, result.Error
}

// Stats aggregates payment totals across all records.
func (r *PaymentRepository) Stats(ctx context.Context) (*domain.PaymentStats, error) {
	row := struct {
		TotalAmount   float64
		PaidAmount    float64
		PendingAmount float64
	}{}
	err := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Select(`COALESCE(SUM(amount), 0) AS total_amount,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS paid_amount,
			COALESCE(SUM(CASE WHEN status IN ('pending', 'partial', 'overdue') THEN amount ELSE 0 END), 0) AS pending_amount`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	var overdue int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("status = ?", domain.PaymentOverdue).
		Count(&overdue).Error; err != nil {
		return nil, err
	}

	return &domain.PaymentStats{
		TotalAmount:   row.TotalAmount,
		PaidAmount:    row.PaidAmount,
		PendingAmount: row.PendingAmount,
		OverdueCount:  overdue,
	}, nil
}

func (r *PaymentRepository) CountByStatus(ctx context.Context, statuses ...domain.PaymentStatusType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}

// SumInPeriod sums payment amounts by status for payments created inside the
// window.
func (r *PaymentRepository) SumInPeriod(ctx context.Context, from, to time.Time, statuses []domain.PaymentStatusType) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("created_at >= ? AND created_at < ? AND status IN ?", from, to, statuses).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// ExistsPaymentID reports whether the business payment ID is already taken.
func (r *PaymentRepository) ExistsPaymentID(ctx context.Context, paymentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("payment_id = ?", paymentID).
		Count(&count).Error
	return count > 0, err
}
