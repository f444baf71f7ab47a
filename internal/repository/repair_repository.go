package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"gorm.io/gorm"
)

// RepairRepository handles database operations for repair jobs
type RepairRepository struct {
	db *gorm.DB
}

func NewRepairRepository(db *gorm.DB) *RepairRepository {
	return &RepairRepository{db: db}
}

func (r *RepairRepository) Create(ctx context.Context, repair *domain.Repair) error {
	return r.db.WithContext(ctx).Create(repair).Error
}

func (r *RepairRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Repair, error) {
	var repair domain.Repair
	err := r.db.WithContext(ctx).Preload("Customer").First(&repair, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &repair, nil
}

func (r *RepairRepository) GetByRepairID(ctx context.Context, repairID string) (*domain.Repair, error) {
	var repair domain.Repair
	err := r.db.WithContext(ctx).Preload("Customer").First(&repair, "repair_id = ?", repairID).Error
	if err != nil {
		return nil, err
	}
	return &repair, nil
}

// RepairFilters narrows repair listings
type RepairFilters struct {
	Status     *domain.RepairStatusType
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

func (r *RepairRepository) List(ctx context.Context, filters RepairFilters) ([]domain.Repair, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Repair{})
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	if filters.CustomerID != nil {
		q = q.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.From != nil {
		q = q.Where("created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		q = q.Where("created_at < ?", *filters.To)
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

	var repairs []domain.Repair
	err := q.Preload("Customer").Order("created_at DESC").Find(&repairs).Error
	return repairs, total, err
}

func (r *RepairRepository) Update(ctx context.Context, repair *domain.Repair) error {
	return r.db.WithContext(ctx).Save(repair).Error
}

// Transition moves a repair from one status to another with extra column
// updates applied atomically. Returns false when the guard did not hold.
func (r *RepairRepository) Transition(ctx context.Context, id uuid.UUID, from []domain.RepairStatusType, to domain.RepairStatusType, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to

	result := r.db.WithContext(ctx).
		Model(&domain.Repair{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *RepairRepository) CountByStatus(ctx context.Context, statuses ...domain.RepairStatusType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Repair{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}

// StatusCountsInPeriod groups repairs created inside the window by status.
func (r *RepairRepository) StatusCountsInPeriod(ctx context.Context, from, to time.Time) (domain.StatusCounts, error) {
	return statusCountsInPeriod(r.db.WithContext(ctx), &domain.Repair{}, "created_at", from, to)
}
