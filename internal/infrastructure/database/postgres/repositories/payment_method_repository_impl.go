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

type paymentMethodRepositoryImpl struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a GORM-backed PaymentMethodRepository.
func NewPaymentMethodRepository(db *gorm.DB) repositories.PaymentMethodRepository {
	return &paymentMethodRepositoryImpl{db: db}
}

func (r *paymentMethodRepositoryImpl) Create(ctx context.Context, method *entities.PaymentMethod) error {
	if err := r.db.WithContext(ctx).Create(method).Error; err != nil {
		return fmt.Errorf("create payment method: %w", err)
	}
	return nil
}

func (r *paymentMethodRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentMethod, error) {
	var method entities.PaymentMethod
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return &method, nil
}

func (r *paymentMethodRepositoryImpl) ListForSubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*entities.PaymentMethod, error) {
	var methods []*entities.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("subscriber_id = ?", subscriberID).
		Order("is_default DESC, created_at DESC").
		Find(&methods).Error; err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return methods, nil
}
