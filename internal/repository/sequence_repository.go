package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"gorm.io/gorm"
)

// SequenceRepository hands out gapless per-scope sequence numbers. The
// increment happens in a single upsert statement so concurrent callers can
// never observe the same number.
type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// NextNumber atomically increments and returns the counter for the given
// scope. dateKey is empty for lifetime counters.
func (r *SequenceRepository) NextNumber(ctx context.Context, entityType, dateKey string) (int64, error) {
	now := time.Now().UTC()
	var next int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequential_counters (id, entity_type, date_key, last_number, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT (entity_type, date_key)
		DO UPDATE SET last_number = sequential_counters.last_number + 1, updated_at = ?
		RETURNING last_number`,
		uuid.New(), entityType, dateKey, now, now, now).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Current returns the last issued number for a scope without incrementing it.
// Returns 0 when the scope has never issued a number.
func (r *SequenceRepository) Current(ctx context.Context, entityType, dateKey string) (int64, error) {
	var counter domain.SequentialCounter
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND date_key = ?", entityType, dateKey).
		First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return counter.LastNumber, nil
}
