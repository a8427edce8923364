package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
)

// PaymentRepository persists payment attempts against subscriptions.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	Update(ctx context.Context, payment *entities.Payment) error
	GetByStripePaymentIntentID(ctx context.Context, id string) (*entities.Payment, error)
}

// PaymentMethodRepository persists stored payment instruments.
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *entities.PaymentMethod) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentMethod, error)
	ListForSubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*entities.PaymentMethod, error)
}
