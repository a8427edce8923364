package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
)

type paymentRepositoryImpl struct {
	db *gorm.DB
}

// NewPaymentRepository creates a GORM-backed PaymentRepository.
func NewPaymentRepository(db *gorm.DB) repositories.PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

func (r *paymentRepositoryImpl) Create(ctx context.Context, payment *entities.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *paymentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var payment entities.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepositoryImpl) GetByStripePaymentIntentID(ctx context.Context, id string) (*entities.Payment, error) {
	var payment entities.Payment
	if err := r.db.WithContext(ctx).Where("stripe_payment_intent_id = ?", id).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get payment by payment intent id: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepositoryImpl) Update(ctx context.Context, payment *entities.Payment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}
