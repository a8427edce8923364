package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

type subscriberRepositoryImpl struct {
	db *gorm.DB
}

// NewSubscriberRepository creates a GORM-backed SubscriberRepository.
func NewSubscriberRepository(db *gorm.DB) repositories.SubscriberRepository {
	return &subscriberRepositoryImpl{db: db}
}

func (r *subscriberRepositoryImpl) Create(ctx context.Context, subscriber *entities.Subscriber) error {
	if err := r.db.WithContext(ctx).Create(subscriber).Error; err != nil {
		logger.WithField("email", subscriber.Email).Errorf("failed to create subscriber: %v", err)
		return fmt.Errorf("create subscriber: %w", err)
	}
	return nil
}

func (r *subscriberRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscriber, error) {
	var subscriber entities.Subscriber
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get subscriber by id: %w", err)
	}
	return &subscriber, nil
}

func (r *subscriberRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.Subscriber, error) {
	var subscriber entities.Subscriber
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get subscriber by email: %w", err)
	}
	return &subscriber, nil
}

func (r *subscriberRepositoryImpl) GetByHandle(ctx context.Context, handle string) (*entities.Subscriber, error) {
	var subscriber entities.Subscriber
	if err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get subscriber by handle: %w", err)
	}
	return &subscriber, nil
}

func (r *subscriberRepositoryImpl) Update(ctx context.Context, subscriber *entities.Subscriber) error {
	if err := r.db.WithContext(ctx).Save(subscriber).Error; err != nil {
		return fmt.Errorf("update subscriber: %w", err)
	}
	return nil
}

func (r *subscriberRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Subscriber{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check subscriber email exists: %w", err)
	}
	return count > 0, nil
}

func (r *subscriberRepositoryImpl) ExistsByHandle(ctx context.Context, handle string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Subscriber{}).Where("handle = ?", handle).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check subscriber handle exists: %w", err)
	}
	return count > 0, nil
}

func (r *subscriberRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Subscriber{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return count, nil
}
