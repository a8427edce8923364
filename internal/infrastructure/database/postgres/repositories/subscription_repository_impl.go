package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
)

type subscriptionRepositoryImpl struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a GORM-backed SubscriptionRepository.
func NewSubscriptionRepository(db *gorm.DB) repositories.SubscriptionRepository {
	return &subscriptionRepositoryImpl{db: db}
}

func (r *subscriptionRepositoryImpl) Create(ctx context.Context, subscription *entities.Subscription) error {
	if err := r.db.WithContext(ctx).Create(subscription).Error; err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscription, error) {
	var subscription entities.Subscription
	if err := r.db.WithContext(ctx).Preload("Plan").Where("id = ?", id).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get subscription by id: %w", err)
	}
	return &subscription, nil
}

func (r *subscriptionRepositoryImpl) Update(ctx context.Context, subscription *entities.Subscription) error {
	if err := r.db.WithContext(ctx).Save(subscription).Error; err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepositoryImpl) GetMostRecentForSubscriber(ctx context.Context, subscriberID uuid.UUID) (*entities.Subscription, error) {
	var subscription entities.Subscription
	if err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").
		First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get most recent subscription: %w", err)
	}
	return &subscription, nil
}

func (r *subscriptionRepositoryImpl) GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*entities.Subscription, error) {
	var subscription entities.Subscription
	if err := r.db.WithContext(ctx).Where("stripe_subscription_id = ?", stripeSubscriptionID).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get subscription by stripe id: %w", err)
	}
	return &subscription, nil
}

func (r *subscriptionRepositoryImpl) ListExpiring(ctx context.Context, before time.Time) ([]*entities.Subscription, error) {
	var subscriptions []*entities.Subscription
	if err := r.db.WithContext(ctx).
		Where("status = ? AND current_period_end < ?", "active", before).
		Find(&subscriptions).Error; err != nil {
		return nil, fmt.Errorf("list expiring subscriptions: %w", err)
	}
	return subscriptions, nil
}
