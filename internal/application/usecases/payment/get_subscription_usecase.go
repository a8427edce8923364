package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/services"
)

// GetSubscriptionUseCase resolves a subscriber's effective plan and, if any,
// their underlying subscription record.
type GetSubscriptionUseCase struct {
	entitlementEngine services.EntitlementEngine
}

// NewGetSubscriptionUseCase creates a new GetSubscriptionUseCase instance.
func NewGetSubscriptionUseCase(entitlementEngine services.EntitlementEngine) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{entitlementEngine: entitlementEngine}
}

// GetSubscriptionResponse represents a subscriber's resolved entitlement.
type GetSubscriptionResponse struct {
	Plan         *entities.Plan         `json:"plan"`
	Subscription *entities.Subscription `json:"subscription,omitempty"`
}

// Execute resolves the subscriber's current plan and subscription.
func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, subscriberID uuid.UUID) (*GetSubscriptionResponse, error) {
	plan, subscription, err := uc.entitlementEngine.Resolve(ctx, subscriberID)
	if err != nil {
		return nil, err
	}

	return &GetSubscriptionResponse{Plan: plan, Subscription: subscription}, nil
}
