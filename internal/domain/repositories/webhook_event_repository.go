package repositories

import (
	"context"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
)

// WebhookEventRepository records processed payment-provider webhook events
// so a redelivered event can be recognized and skipped.
type WebhookEventRepository interface {
	Create(ctx context.Context, event *entities.WebhookEvent) error
	GetByStripeEventID(ctx context.Context, stripeEventID string) (*entities.WebhookEvent, error)
	MarkProcessed(ctx context.Context, stripeEventID string) error
}
