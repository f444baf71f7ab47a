package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"gorm.io/gorm"
)

// CallbackRepository handles database operations for breakdown callbacks.
// Status transitions are compare-and-swap updates; a transition whose guard
// no longer holds affects zero rows and the caller maps that to an invalid
// transition error.
type CallbackRepository struct {
	db *gorm.DB
}

func NewCallbackRepository(db *gorm.DB) *CallbackRepository {
	return &CallbackRepository{db: db}
}

func (r *CallbackRepository) Create(ctx context.Context, callback *domain.CallBack) error {
	return r.db.WithContext(ctx).Create(callback).Error
}

func (r *CallbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CallBack, error) {
	var callback domain.CallBack
	err := r.db.WithContext(ctx).Preload("Customer").First(&callback, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &callback, nil
}

func (r *CallbackRepository) GetByCallbackID(ctx context.Context, callbackID string) (*domain.CallBack, error) {
	var callback domain.CallBack
	err := r.db.WithContext(ctx).Preload("Customer").First(&callback, "callback_id = ?", callbackID).Error
	if err != nil {
		return nil, err
	}
	return &callback, nil
}

// CallbackFilters narrows callback listings
type CallbackFilters struct {
	Status     *domain.CallbackStatusType
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

func (r *CallbackRepository) List(ctx context.Context, filters CallbackFilters) ([]domain.CallBack, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.CallBack{})
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

	var callbacks []domain.CallBack
	err := q.Preload("Customer").Order("created_at DESC").Find(&callbacks).Error
	return callbacks, total, err
}

// Transition moves a callback from exactly one status to another and applies
// the given column updates in the same statement. Returns false when the
// callback was not in the expected status.
func (r *CallbackRepository) Transition(ctx context.Context, id uuid.UUID, from, to domain.CallbackStatusType, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to

	result := r.db.WithContext(ctx).
		Model(&domain.CallBack{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Cancel moves a callback to CANCELLED from any non-terminal state.
func (r *CallbackRepository) Cancel(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.CallBack{}).
		Where("id = ? AND status NOT IN ?", id, []domain.CallbackStatusType{domain.CallbackCompleted, domain.CallbackCancelled}).
		Updates(map[string]interface{}{
			"status":       domain.CallbackCancelled,
			"cancelled_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Reopen moves a completed callback that still requires followup back to
// IN_PROGRESS, clearing the completion stamp. The response stamp is kept.
func (r *CallbackRepository) Reopen(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.CallBack{}).
		Where("id = ? AND status = ? AND requires_followup = ?", id, domain.CallbackCompleted, true).
		Updates(map[string]interface{}{
			"status":       domain.CallbackInProgress,
			"completed_at": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *CallbackRepository) CountByStatus(ctx context.Context, statuses ...domain.CallbackStatusType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CallBack{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}

// StatusCountsInPeriod groups callbacks created inside the window by status.
func (r *CallbackRepository) StatusCountsInPeriod(ctx context.Context, from, to time.Time) (domain.StatusCounts, error) {
	return statusCountsInPeriod(r.db.WithContext(ctx), &domain.CallBack{}, "created_at", from, to)
}

// ListInPeriod returns callbacks created inside the window, oldest first.
func (r *CallbackRepository) ListInPeriod(ctx context.Context, from, to time.Time, customerID *uuid.UUID) ([]domain.CallBack, error) {
	q := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to)
	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}
	var callbacks []domain.CallBack
	err := q.Order("created_at ASC").Find(&callbacks).Error
	return callbacks, err
}

// statusCountsInPeriod is shared by the job repositories for the reporting
// aggregates.
func statusCountsInPeriod(db *gorm.DB, model interface{}, timeColumn string, from, to time.Time) (domain.StatusCounts, error) {
	rows := []struct {
		Status string
		Count  int64
	}{}
	err := db.Model(model).
		Select("status, COUNT(*) AS count").
		Where(timeColumn+" >= ? AND "+timeColumn+" < ?", from, to).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := domain.StatusCounts{}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
