package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"gorm.io/gorm"
)

// ComplaintRepository handles database operations for customer complaints
type ComplaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

func (r *ComplaintRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Complaint, error) {
	var complaint domain.Complaint
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("AssignedTo").
		First(&complaint, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// ComplaintFilters narrows complaint listings
type ComplaintFilters struct {
	Status     *domain.ComplaintStatusType
	Priority   *domain.ComplaintPriorityType
	CustomerID *uuid.UUID
	AssignedTo *uuid.UUID
	Limit      int
	Offset     int
}

func (r *ComplaintRepository) List(ctx context.Context, filters ComplaintFilters) ([]domain.Complaint, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Complaint{})
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	if filters.Priority != nil {
		q = q.Where("priority = ?", *filters.Priority)
	}
	if filters.CustomerID != nil {
		q = q.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.AssignedTo != nil {
		q = q.Where("assigned_to_id = ?", *filters.AssignedTo)
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

	var complaints []domain.Complaint
	err := q.Preload("Customer").Order("created_at DESC").Find(&complaints).Error
	return complaints, total, err
}

func (r *ComplaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

// Claim assigns the complaint to a technician if and only if nobody holds it
// yet. Returns false when it was already claimed.
func (r *ComplaintRepository) Claim(ctx context.Context, id, technicianID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Complaint{}).
		Where("id = ? AND assigned_to_id IS NULL", id).
		Updates(map[string]interface{}{
			"assigned_to_id": technicianID,
			"status":         domain.ComplaintInProgress,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetStatus updates the status with optional extra columns, guarded on the
// current status being one of the allowed predecessors.
func (r *ComplaintRepository) SetStatus(ctx context.Context, id uuid.UUID, from []domain.ComplaintStatusType, to domain.ComplaintStatusType, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to

	result := r.db.WithContext(ctx).
		Model(&domain.Complaint{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ComplaintRepository) CountByStatus(ctx context.Context, statuses ...domain.ComplaintStatusType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Complaint{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}

// CountResolvedInPeriod counts complaints resolved inside the window.
func (r *ComplaintRepository) CountResolvedInPeriod(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Complaint{}).
		Where("resolved_at IS NOT NULL AND resolved_at >= ? AND resolved_at < ?", from, to).
		Count(&count).Error
	return count, err
}
