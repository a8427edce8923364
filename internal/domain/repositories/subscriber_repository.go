package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
)

// SubscriberRepository persists Identity Store account records.
type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *entities.Subscriber) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*entities.Subscriber, error)
	GetByHandle(ctx context.Context, handle string) (*entities.Subscriber, error)
	Update(ctx context.Context, subscriber *entities.Subscriber) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByHandle(ctx context.Context, handle string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
