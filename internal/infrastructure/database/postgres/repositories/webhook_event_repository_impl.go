package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
)

type webhookEventRepositoryImpl struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a GORM-backed WebhookEventRepository.
func NewWebhookEventRepository(db *gorm.DB) repositories.WebhookEventRepository {
	return &webhookEventRepositoryImpl{db: db}
}

func (r *webhookEventRepositoryImpl) Create(ctx context.Context, event *entities.WebhookEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create webhook event: %w", err)
	}
	return nil
}

func (r *webhookEventRepositoryImpl) GetByStripeEventID(ctx context.Context, stripeEventID string) (*entities.WebhookEvent, error) {
	var event entities.WebhookEvent
	if err := r.db.WithContext(ctx).Where("stripe_event_id = ?", stripeEventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get webhook event: %w", err)
	}
	return &event, nil
}

func (r *webhookEventRepositoryImpl) MarkProcessed(ctx context.Context, stripeEventID string) error {
	if err := r.db.WithContext(ctx).
		Model(&entities.WebhookEvent{}).
		Where("stripe_event_id = ?", stripeEventID).
		Update("processed", true).Error; err != nil {
		return fmt.Errorf("mark webhook event processed: %w", err)
	}
	return nil
}
