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

// MinorPointService tracks the small observations technicians raise against
// a site, outside the formal job lifecycle.
type MinorPointService struct {
	minorPointRepo *repository.MinorPointRepository
	customerRepo   *repository.CustomerRepository
	logger         *zap.Logger
}

// NewMinorPointService creates a new minor point service
func NewMinorPointService(
	minorPointRepo *repository.MinorPointRepository,
	customerRepo *repository.CustomerRepository,
	logger *zap.Logger,
) *MinorPointService {
	return &MinorPointService{
		minorPointRepo: minorPointRepo,
		customerRepo:   customerRepo,
		logger:         logger,
	}
}

// Create raises an observation against a site.
func (s *MinorPointService) Create(ctx context.Context, raisedBy *uuid.UUID, req *domain.CreateMinorPointRequest) (*domain.MinorPoint, error) {
	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	point := &domain.MinorPoint{
		CustomerID:  req.CustomerID,
		Description: req.Description,
		Status:      domain.MinorPointOpen,
		RaisedByID:  raisedBy,
	}
	if err := s.minorPointRepo.Create(ctx, point); err != nil {
		return nil, fmt.Errorf("create minor point: %w", err)
	}
	return point, nil
}

// List returns minor points, optionally filtered by customer and status.
func (s *MinorPointService) List(ctx context.Context, customerID *uuid.UUID, status *domain.MinorPointStatusType) ([]domain.MinorPoint, error) {
	return s.minorPointRepo.List(ctx, customerID, status)
}

// Close resolves an open minor point.
func (s *MinorPointService) Close(ctx context.Context, id uuid.UUID) (*domain.MinorPoint, error) {
	ok, err := s.minorPointRepo.Close(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("close minor point: %w", err)
	}
	if !ok {
		point, err := s.minorPointRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("get minor point: %w", err)
		}
		return nil, fmt.Errorf("%w: minor point is already %s", ErrInvalidTransition, point.Status)
	}

	point, err := s.minorPointRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get minor point: %w", err)
	}
	s.logger.Info("minor point closed", zap.String("minorPointID", id.String()))
	return point, nil
}
