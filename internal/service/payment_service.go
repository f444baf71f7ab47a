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

// PaymentService tracks expected and received customer payments. Due dates
// that slip past are flipped to overdue by a nightly sweep.
type PaymentService struct {
	paymentRepo  *repository.PaymentRepository
	customerRepo *repository.CustomerRepository
	sequences    *SequenceService
	logger       *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	customerRepo *repository.CustomerRepository,
	sequences *SequenceService,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		sequences:    sequences,
		logger:       logger,
	}
}

// Create records an expected payment.
func (s *PaymentService) Create(ctx context.Context, req *domain.CreatePaymentRequest) (*domain.Payment, error) {
	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	paymentID, err := s.sequences.NextRandomID(ctx, domain.PrefixPayment, time.Now().UTC(), s.paymentRepo.ExistsPaymentID)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		PaymentID:   paymentID,
		CustomerID:  req.CustomerID,
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		DueDate:     req.DueDate,
		Status:      domain.PaymentPending,
		Notes:       req.Notes,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.logger.Info("payment created",
		zap.String("paymentID", payment.PaymentID),
		zap.Float64("amount", payment.Amount))
	return payment, nil
}

// GetByID returns a payment.
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return payment, nil
}

// List returns payments matching the filters.
func (s *PaymentService) List(ctx context.Context, filters repository.PaymentFilters) ([]domain.Payment, int64, error) {
	return s.paymentRepo.List(ctx, filters)
}

// MarkPaid settles a pending, partial or overdue payment.
func (s *PaymentService) MarkPaid(ctx context.Context, id uuid.UUID, req *domain.MarkPaymentPaidRequest) (*domain.Payment, error) {
	ok, err := s.paymentRepo.MarkPaid(ctx, id, time.Now().UTC(), req.Method, req.Reference)
	if err != nil {
		return nil, fmt.Errorf("mark payment paid: %w", err)
	}
	if !ok {
		payment, err := s.paymentRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("get payment: %w", err)
		}
		return nil, fmt.Errorf("%w: payment is already %s", ErrInvalidTransition, payment.Status)
	}

	s.logger.Info("payment settled", zap.String("paymentID", id.String()))
	return s.GetByID(ctx, id)
}

// Stats returns the headline payment numbers for dashboards.
func (s *PaymentService) Stats(ctx context.Context) (*domain.PaymentStats, error) {
	return s.paymentRepo.Stats(ctx)
}

// MarkOverdue flips pending payments whose due date passed. Run nightly.
func (s *PaymentService) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	updated, err := s.paymentRepo.MarkOverdue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("mark overdue payments: %w", err)
	}
	if updated > 0 {
		s.logger.Info("payments marked overdue", zap.Int64("count", updated))
	}
	return updated, nil
}
