package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaterialService records material consumption against jobs. A usage row may
// reference at most one parent job.
type MaterialService struct {
	materialRepo *repository.MaterialRepository
	customerRepo *repository.CustomerRepository
	logger       *zap.Logger
}

// NewMaterialService creates a new material service
func NewMaterialService(
	materialRepo *repository.MaterialRepository,
	customerRepo *repository.CustomerRepository,
	logger *zap.Logger,
) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Record stores one material usage line for a technician.
func (s *MaterialService) Record(ctx context.Context, technicianID uuid.UUID, req *domain.CreateMaterialUsageRequest) (*domain.MaterialUsage, error) {
	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	usedDate := time.Now().UTC()
	if req.UsedDate != nil {
		usedDate = *req.UsedDate
	}

	usage := &domain.MaterialUsage{
		MaterialName: req.MaterialName,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		UnitCost:     req.UnitCost,
		TotalCost:    req.UnitCost * req.Quantity,
		UsedDate:     usedDate,
		TechnicianID: technicianID,
		CustomerID:   req.CustomerID,
		ScheduleID:   req.ScheduleID,
		CallbackID:   req.CallbackID,
		RepairID:     req.RepairID,
	}
	if usage.ParentCount() > 1 {
		return nil, fmt.Errorf("%w: material usage may reference at most one job", ErrInvalidInput)
	}

	if err := s.materialRepo.Create(ctx, usage); err != nil {
		return nil, fmt.Errorf("create material usage: %w", err)
	}

	s.logger.Info("material usage recorded",
		zap.String("material", usage.MaterialName),
		zap.Float64("quantity", usage.Quantity),
		zap.String("customerID", usage.CustomerID.String()))
	return usage, nil
}

// List returns material usage matching the filters.
func (s *MaterialService) List(ctx context.Context, filters repository.MaterialFilters) ([]domain.MaterialUsage, int64, error) {
	return s.materialRepo.List(ctx, filters)
}
