package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/services"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// SubscribeRequest represents a subscription request.
type SubscribeRequest struct {
	SubscriberID  uuid.UUID `json:"subscriber_id" validate:"required"`
	PlanCode      string    `json:"plan_code" validate:"required"`
	PaymentMethod string    `json:"payment_method_id" validate:"required"`
}

// SubscribeUseCase handles subscription creation.
type SubscribeUseCase struct {
	entitlementEngine services.EntitlementEngine
}

// NewSubscribeUseCase creates a new SubscribeUseCase instance.
func NewSubscribeUseCase(entitlementEngine services.EntitlementEngine) *SubscribeUseCase {
	return &SubscribeUseCase{entitlementEngine: entitlementEngine}
}

// Execute starts or switches the subscriber's paid plan.
func (uc *SubscribeUseCase) Execute(ctx context.Context, req *SubscribeRequest) (*entities.Subscription, error) {
	logger.Info("creating subscription", map[string]interface{}{
		"subscriber_id": req.SubscriberID,
		"plan_code":     req.PlanCode,
	})

	subscription, err := uc.entitlementEngine.Subscribe(ctx, req.SubscriberID, req.PlanCode, req.PaymentMethod)
	if err != nil {
		logger.Error("failed to create subscription", err, map[string]interface{}{
			"subscriber_id": req.SubscriberID,
			"plan_code":     req.PlanCode,
		})
		return nil, err
	}

	return subscription, nil
}
