package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"gorm.io/gorm"
)

// MaterialRepository handles database operations for material usage records
type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, usage *domain.MaterialUsage) error {
	return r.db.WithContext(ctx).Create(usage).Error
}

func (r *MaterialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MaterialUsage, error) {
	var usage domain.MaterialUsage
	err := r.db.WithContext(ctx).First(&usage, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

// MaterialFilters narrows material usage listings
type MaterialFilters struct {
	CustomerID   *uuid.UUID
	TechnicianID *uuid.UUID
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

func (r *MaterialRepository) List(ctx context.Context, filters MaterialFilters) ([]domain.MaterialUsage, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.MaterialUsage{})
	if filters.CustomerID != nil {
		q = q.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.TechnicianID != nil {
		q = q.Where("technician_id = ?", *filters.TechnicianID)
	}
	if filters.From != nil {
		q = q.Where("used_date >= ?", *filters.From)
	}
	if filters.To != nil {
		q = q.Where("used_date < ?", *filters.To)
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

	var usages []domain.MaterialUsage
	err := q.Order("used_date DESC").Find(&usages).Error
	return usages, total, err
}

// ListInPeriod returns usage rows with used_date inside the window,
// optionally for one customer.
func (r *MaterialRepository) ListInPeriod(ctx context.Context, from, to time.Time, customerID *uuid.UUID) ([]domain.MaterialUsage, error) {
	q := r.db.WithContext(ctx).
		Where("used_date >= ? AND used_date < ?", from, to)
	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}
	var usages []domain.MaterialUsage
	err := q.Order("used_date ASC").Find(&usages).Error
	return usages, err
}
