package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
)

// VerificationCodeRepository persists issued six-digit codes.
type VerificationCodeRepository interface {
	Create(ctx context.Context, code *entities.VerificationCode) error
	Update(ctx context.Context, code *entities.VerificationCode) error

	// GetActiveForSubscriber returns the subscriber's most recently issued
	// unconsumed code for a purpose, whether or not it has expired; callers
	// check expiry themselves.
	GetActiveForSubscriber(ctx context.Context, subscriberID uuid.UUID, purpose string) (*entities.VerificationCode, error)

	GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationCode, error)
}
