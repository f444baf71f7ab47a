package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"gorm.io/gorm"
)

// ReportRepository handles database operations for field visit reports
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.ServiceReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceReport, error) {
	var report domain.ServiceReport
	err := r.db.WithContext(ctx).
		Preload("Schedule").
		Preload("Technician").
		First(&report, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) Update(ctx context.Context, report *domain.ServiceReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

// ListBySchedule returns the reports filed against a visit.
func (r *ReportRepository) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]domain.ServiceReport, error) {
	var reports []domain.ServiceReport
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("check_in_at ASC").
		Find(&reports).Error
	return reports, err
}

// OpenReportForTechnician finds the technician's unfinished report on a
// visit, if any.
func (r *ReportRepository) OpenReportForTechnician(ctx context.Context, scheduleID, technicianID uuid.UUID) (*domain.ServiceReport, error) {
	var report domain.ServiceReport
	err := r.db.WithContext(ctx).
		Where("schedule_id = ? AND technician_id = ? AND check_out_at IS NULL", scheduleID, technicianID).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListByTechnicianInPeriod returns reports a technician filed with check-in
// inside the window.
func (r *ReportRepository) ListByTechnicianInPeriod(ctx context.Context, technicianID uuid.UUID, from, to time.Time) ([]domain.ServiceReport, error) {
	var reports []domain.ServiceReport
	err := r.db.WithContext(ctx).
		Where("technician_id = ? AND check_in_at >= ? AND check_in_at < ?", technicianID, from, to).
		Order("check_in_at ASC").
		Find(&reports).Error
	return reports, err
}

// ListForSchedules returns all reports belonging to the given visits.
func (r *ReportRepository) ListForSchedules(ctx context.Context, scheduleIDs []uuid.UUID) ([]domain.ServiceReport, error) {
	if len(scheduleIDs) == 0 {
		return nil, nil
	}
	var reports []domain.ServiceReport
	err := r.db.WithContext(ctx).
		Where("schedule_id IN ?", scheduleIDs).
		Find(&reports).Error
	return reports, err
}

// ExistsReportID reports whether the business report ID is already taken.
func (r *ReportRepository) ExistsReportID(ctx context.Context, reportID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ServiceReport{}).
		Where("report_id = ?", reportID).
		Count(&count).Error
	return count > 0, err
}
