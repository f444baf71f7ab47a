package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"gorm.io/gorm"
)

// ContractRepository handles database operations for AMC contracts
type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(ctx context.Context, contract *domain.AMCContract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AMCContract, error) {
	var contract domain.AMCContract
	err := r.db.WithContext(ctx).Preload("Customer").First(&contract, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.AMCContract, error) {
	var contracts []domain.AMCContract
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("start_date DESC").
		Find(&contracts).Error
	return contracts, err
}

// ActiveForCustomer returns the customer's current Active contract covering
// the given instant, newest first when several overlap.
func (r *ContractRepository) ActiveForCustomer(ctx context.Context, customerID uuid.UUID, at time.Time) (*domain.AMCContract, error) {
	var contract domain.AMCContract
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND type = ? AND start_date <= ? AND end_date >= ?",
			customerID, domain.ContractActive, at, at).
		Order("start_date DESC").
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepository) Update(ctx context.Context, contract *domain.AMCContract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

// IncrementCompleted bumps the completed visit counter of a contract.
func (r *ContractRepository) IncrementCompleted(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.AMCContract{}).
		Where("id = ?", id).
		Update("completed_services", gorm.Expr("completed_services + 1")).Error
}

// ExistsContractNumber reports whether the contract number is already taken.
func (r *ContractRepository) ExistsContractNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.AMCContract{}).
		Where("contract_number = ?", number).
		Count(&count).Error
	return count > 0, err
}
