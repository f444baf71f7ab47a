package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"gorm.io/gorm"
)

// CustomerRepository handles database operations for customer sites
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) GetByJobNumber(ctx context.Context, jobNumber string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).First(&customer, "job_number = ?", jobNumber).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// CustomerFilters narrows customer listings
type CustomerFilters struct {
	Route     *int
	Area      string
	AMCStatus *domain.AMCStatusType
	Search    string
	Limit     int
	Offset    int
}

func (r *CustomerRepository) List(ctx context.Context, filters CustomerFilters) ([]domain.Customer, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Customer{})
	if filters.Route != nil {
		q = q.Where("route = ?", *filters.Route)
	}
	if filters.Area != "" {
		q = q.Where("area = ?", filters.Area)
	}
	if filters.AMCStatus != nil {
		q = q.Where("amc_status = ?", *filters.AMCStatus)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		q = q.Where("site_name LIKE ? OR job_number LIKE ?", pattern, pattern)
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

	var customers []domain.Customer
	err := q.Order("created_at DESC").Find(&customers).Error
	return customers, total, err
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Deactivate flips a single customer to INACTIVE.
func (r *CustomerRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("id = ?", id).
		Update("amc_status", domain.AMCStatusInactive)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeactivateExpired flips every ACTIVE customer whose AMC expired before the
// cutoff to INACTIVE and returns how many rows changed. The cutoff is the
// last day a contract may be past its valid-to date without being treated as
// lapsed.
func (r *CustomerRepository) DeactivateExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("amc_status = ? AND amc_valid_to IS NOT NULL AND amc_valid_to < ?", domain.AMCStatusActive, cutoff).
		Update("amc_status", domain.AMCStatusInactive)
	return result.RowsAffected, result.Error
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).Count(&count).Error
	return count, err
}

func (r *CustomerRepository) CountByStatus(ctx context.Context, status domain.AMCStatusType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("amc_status = ?", status).
		Count(&count).Error
	return count, err
}

// ActiveAMCTotals sums the contract value and received amount across active
// customers.
func (r *CustomerRepository) ActiveAMCTotals(ctx context.Context) (total float64, received float64, err error) {
	row := struct {
		Total    float64
		Received float64
	}{}
	err = r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("amc_status = ?", domain.AMCStatusActive).
		Select("COALESCE(SUM(amc_amount), 0) AS total, COALESCE(SUM(amc_amount_received), 0) AS received").
		Scan(&row).Error
	return row.Total, row.Received, err
}
