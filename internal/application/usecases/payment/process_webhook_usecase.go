package payment

import (
	"context"

	"github.com/fenwicknet/vpnctl/internal/domain/services"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/external/stripe"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// ProcessWebhookUseCase verifies and reconciles an inbound Stripe webhook.
type ProcessWebhookUseCase struct {
	entitlementEngine services.EntitlementEngine
	stripeService     *stripe.StripeService
}

// NewProcessWebhookUseCase creates a new ProcessWebhookUseCase instance.
func NewProcessWebhookUseCase(entitlementEngine services.EntitlementEngine, stripeService *stripe.StripeService) *ProcessWebhookUseCase {
	return &ProcessWebhookUseCase{entitlementEngine: entitlementEngine, stripeService: stripeService}
}

// Execute verifies the webhook signature and reconciles local state from it.
func (uc *ProcessWebhookUseCase) Execute(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := uc.stripeService.VerifyWebhook(ctx, payload, signatureHeader)
	if err != nil {
		logger.Error("failed to verify webhook signature", err, nil)
		return ErrWebhookSignatureInvalid
	}

	if err := uc.entitlementEngine.ConfirmPayment(ctx, event); err != nil {
		logger.Error("failed to process webhook event", err, map[string]interface{}{
			"stripe_event_id": event.ID,
			"type":            event.Type,
		})
		return err
	}

	logger.Info("webhook event processed", map[string]interface{}{
		"stripe_event_id": event.ID,
		"type":            event.Type,
	})
	return nil
}
