package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"gorm.io/gorm"
)

// ErrAssignmentConflict is returned when the unique (job, technician) index
// rejects an insert.
var ErrAssignmentConflict = errors.New("technician already assigned to job")

// ErrCapacityReached is returned when the job already carries its maximum
// number of technicians.
var ErrCapacityReached = errors.New("job technician capacity reached")

// AssignmentRepository manages the job/technician association table.
type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Assign inserts an assignment row if and only if the job is below maxCount
// technicians. Position and the primary flag are computed from the current
// count inside the same statement. maxCount <= 0 means unlimited.
//
// The count subqueries alone are not race-safe under READ COMMITTED: two
// concurrent assigns of different technicians hit distinct unique-index keys,
// neither blocks, and both see the same snapshot count. On PostgreSQL the
// transaction therefore holds an advisory lock on (job_type, job_id) across
// the check and the insert, serializing writers per job the way the sequence
// counter serializes on its row. SQLite serializes writers on its own.
func (r *AssignmentRepository) Assign(ctx context.Context, jobType domain.JobTypeType, jobID, technicianID uuid.UUID, assignedBy *uuid.UUID, maxCount int) (*domain.JobTechnician, error) {
	id := uuid.New()
	now := time.Now().UTC()

	query := `
		INSERT INTO job_technicians (id, job_type, job_id, technician_id, position, is_primary, assigned_by_id, assigned_at)
		SELECT ?, ?, ?, ?,
			(SELECT COUNT(*) FROM job_technicians WHERE job_type = ? AND job_id = ?),
			(SELECT COUNT(*) FROM job_technicians WHERE job_type = ? AND job_id = ?) = 0,
			?, ?`
	args := []interface{}{
		id, jobType, jobID, technicianID,
		jobType, jobID,
		jobType, jobID,
		assignedBy, now,
	}
	if maxCount > 0 {
		query += `
		WHERE (SELECT COUNT(*) FROM job_technicians WHERE job_type = ? AND job_id = ?) < ?`
		args = append(args, jobType, jobID, maxCount)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			lockKey := string(jobType) + ":" + jobID.String()
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", lockKey).Error; err != nil {
				return err
			}
		}

		result := tx.Exec(query, args...)
		if result.Error != nil {
			if isUniqueViolation(result.Error) {
				return ErrAssignmentConflict
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCapacityReached
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var row domain.JobTechnician
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Unassign removes a technician from a job.
func (r *AssignmentRepository) Unassign(ctx context.Context, jobType domain.JobTypeType, jobID, technicianID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("job_type = ? AND job_id = ? AND technician_id = ?", jobType, jobID, technicianID).
		Delete(&domain.JobTechnician{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForJob returns the assignments of a job in assignment order, with the
// technician preloaded.
func (r *AssignmentRepository) ListForJob(ctx context.Context, jobType domain.JobTypeType, jobID uuid.UUID) ([]domain.JobTechnician, error) {
	var rows []domain.JobTechnician
	err := r.db.WithContext(ctx).
		Preload("Technician").
		Where("job_type = ? AND job_id = ?", jobType, jobID).
		Order("position ASC").
		Find(&rows).Error
	return rows, err
}

// CountForJob returns how many technicians are assigned to a job.
func (r *AssignmentRepository) CountForJob(ctx context.Context, jobType domain.JobTypeType, jobID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.JobTechnician{}).
		Where("job_type = ? AND job_id = ?", jobType, jobID).
		Count(&count).Error
	return count, err
}

// IsAssigned reports whether the technician is on the job.
func (r *AssignmentRepository) IsAssigned(ctx context.Context, jobType domain.JobTypeType, jobID, technicianID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.JobTechnician{}).
		Where("job_type = ? AND job_id = ? AND technician_id = ?", jobType, jobID, technicianID).
		Count(&count).Error
	return count > 0, err
}

// ListJobIDsForTechnician returns the job IDs of a given type worked by a
// technician, optionally bounded to an assignment window.
func (r *AssignmentRepository) ListJobIDsForTechnician(ctx context.Context, jobType domain.JobTypeType, technicianID uuid.UUID, from, to *time.Time) ([]uuid.UUID, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.JobTechnician{}).
		Where("job_type = ? AND technician_id = ?", jobType, technicianID)
	if from != nil {
		q = q.Where("assigned_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("assigned_at < ?", *to)
	}

	var ids []uuid.UUID
	err := q.Pluck("job_id", &ids).Error
	return ids, err
}

// isUniqueViolation recognizes unique constraint errors from both the
// PostgreSQL and the SQLite drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
