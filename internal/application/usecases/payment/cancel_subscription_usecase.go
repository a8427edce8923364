package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/services"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// CancelSubscriptionUseCase handles subscription cancellation.
type CancelSubscriptionUseCase struct {
	entitlementEngine services.EntitlementEngine
}

// NewCancelSubscriptionUseCase creates a new CancelSubscriptionUseCase instance.
func NewCancelSubscriptionUseCase(entitlementEngine services.EntitlementEngine) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{entitlementEngine: entitlementEngine}
}

// Execute cancels auto-renewal for the subscriber's active subscription.
func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, subscriberID uuid.UUID) error {
	if err := uc.entitlementEngine.Cancel(ctx, subscriberID); err != nil {
		logger.Error("failed to cancel subscription", err, map[string]interface{}{"subscriber_id": subscriberID})
		return err
	}

	logger.Info("subscription canceled", map[string]interface{}{"subscriber_id": subscriberID})
	return nil
}
