package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"gorm.io/gorm"
)

// ScheduleRepository handles database operations for maintenance visits
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule *domain.ServiceSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceSchedule, error) {
	var schedule domain.ServiceSchedule
	err := r.db.WithContext(ctx).Preload("Customer").First(&schedule, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *ScheduleRepository) GetByScheduleID(ctx context.Context, scheduleID string) (*domain.ServiceSchedule, error) {
	var schedule domain.ServiceSchedule
	err := r.db.WithContext(ctx).Preload("Customer").First(&schedule, "schedule_id = ?", scheduleID).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ScheduleFilters narrows schedule listings
type ScheduleFilters struct {
	Status       *domain.ScheduleStatusType
	CustomerID   *uuid.UUID
	TechnicianID *uuid.UUID
	Routes       []int
	IsAdhoc      *bool
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

func (r *ScheduleRepository) List(ctx context.Context, filters ScheduleFilters) ([]domain.ServiceSchedule, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.ServiceSchedule{})
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	if filters.CustomerID != nil {
		q = q.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.TechnicianID != nil {
		id := *filters.TechnicianID
		q = q.Where("technician_id = ? OR technician2_id = ? OR technician3_id = ?", id, id, id)
	}
	if len(filters.Routes) > 0 {
		q = q.Joins("JOIN customers ON customers.id = service_schedules.customer_id").
			Where("customers.route IN ?", filters.Routes)
	}
	if filters.IsAdhoc != nil {
		q = q.Where("is_adhoc = ?", *filters.IsAdhoc)
	}
	if filters.From != nil {
		q = q.Where("scheduled_date >= ?", *filters.From)
	}
	if filters.To != nil {
		q = q.Where("scheduled_date < ?", *filters.To)
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

	var schedules []domain.ServiceSchedule
	err := q.Preload("Customer").Order("scheduled_date DESC").Find(&schedules).Error
	return schedules, total, err
}

func (r *ScheduleRepository) Update(ctx context.Context, schedule *domain.ServiceSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

// Transition moves a schedule between statuses with extra column updates
// applied atomically. Returns false when the guard did not hold.
func (r *ScheduleRepository) Transition(ctx context.Context, id uuid.UUID, from []domain.ScheduleStatusType, to domain.ScheduleStatusType, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to

	result := r.db.WithContext(ctx).
		Model(&domain.ServiceSchedule{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetLegacySlots overwrites the three legacy technician columns. Slot
// resolution happens in the service.
func (r *ScheduleRepository) SetLegacySlots(ctx context.Context, id uuid.UUID, slots [3]*uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.ServiceSchedule{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"technician_id":  slots[0],
			"technician2_id": slots[1],
			"technician3_id": slots[2],
		}).Error
}

// MarkOverdue flips past-due pending and scheduled visits to overdue and
// returns the number of rows changed.
func (r *ScheduleRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.ServiceSchedule{}).
		Where("status IN ? AND scheduled_date < ?",
			[]domain.ScheduleStatusType{domain.SchedulePending, domain.ScheduleScheduled}, now).
		Update("status", domain.ScheduleOverdue)
	return result.RowsAffected, result.Error
}

func (r *ScheduleRepository) CountByStatus(ctx context.Context, statuses ...domain.ScheduleStatusType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ServiceSchedule{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}

// CountInDay counts visits scheduled on the given calendar day.
func (r *ScheduleRepository) CountInDay(ctx context.Context, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ServiceSchedule{}).
		Where("scheduled_date >= ? AND scheduled_date < ?", start, end).
		Count(&count).Error
	return count, err
}

// StatusCountsInPeriod groups visits scheduled inside the window by status.
func (r *ScheduleRepository) StatusCountsInPeriod(ctx context.Context, from, to time.Time) (domain.StatusCounts, error) {
	return statusCountsInPeriod(r.db.WithContext(ctx), &domain.ServiceSchedule{}, "scheduled_date", from, to)
}

// CountAdhocInPeriod counts ad-hoc visits created inside the window.
func (r *ScheduleRepository) CountAdhocInPeriod(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ServiceSchedule{}).
		Where("is_adhoc = ? AND scheduled_date >= ? AND scheduled_date < ?", true, from, to).
		Count(&count).Error
	return count, err
}

// ListInPeriod returns visits scheduled inside the window, oldest first.
func (r *ScheduleRepository) ListInPeriod(ctx context.Context, from, to time.Time, customerID *uuid.UUID) ([]domain.ServiceSchedule, error) {
	q := r.db.WithContext(ctx).
		Where("scheduled_date >= ? AND scheduled_date < ?", from, to)
	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}
	var schedules []domain.ServiceSchedule
	err := q.Order("scheduled_date ASC").Find(&schedules).Error
	return schedules, err
}
