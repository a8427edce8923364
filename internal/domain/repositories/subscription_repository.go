package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
)

// SubscriptionRepository persists subscriber-to-plan bindings.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entities.Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscription, error)
	Update(ctx context.Context, subscription *entities.Subscription) error

	// GetMostRecentForSubscriber returns the subscriber's most recently
	// created subscription row regardless of status, which the Entitlement
	// Engine's resolve() operation uses as its single source of truth.
	GetMostRecentForSubscriber(ctx context.Context, subscriberID uuid.UUID) (*entities.Subscription, error)

	GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*entities.Subscription, error)

	// ListExpiring returns active subscriptions whose current period ends
	// before the given time, for the expiry-reconciliation sweep.
	ListExpiring(ctx context.Context, before time.Time) ([]*entities.Subscription, error)
}
