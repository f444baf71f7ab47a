package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"gorm.io/gorm"
)

// MinorPointRepository handles database operations for site observations
type MinorPointRepository struct {
	db *gorm.DB
}

func NewMinorPointRepository(db *gorm.DB) *MinorPointRepository {
	return &MinorPointRepository{db: db}
}

func (r *MinorPointRepository) Create(ctx context.Context, point *domain.MinorPoint) error {
	return r.db.WithContext(ctx).Create(point).Error
}

func (r *MinorPointRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MinorPoint, error) {
	var point domain.MinorPoint
	err := r.db.WithContext(ctx).Preload("Customer").First(&point, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *MinorPointRepository) List(ctx context.Context, customerID *uuid.UUID, status *domain.MinorPointStatusType) ([]domain.MinorPoint, error) {
	q := r.db.WithContext(ctx).Model(&domain.MinorPoint{})
	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var points []domain.MinorPoint
	err := q.Preload("Customer").Order("created_at DESC").Find(&points).Error
	return points, err
}

// Close flips an open point to CLOSED. Returns false when it was not open.
func (r *MinorPointRepository) Close(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.MinorPoint{}).
		Where("id = ? AND status = ?", id, domain.MinorPointOpen).
		Updates(map[string]interface{}{
			"status":    domain.MinorPointClosed,
			"closed_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
