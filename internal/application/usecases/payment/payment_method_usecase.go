package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenwicknet/vpnctl/internal/domain/entities"
	"github.com/fenwicknet/vpnctl/internal/domain/repositories"
	"github.com/fenwicknet/vpnctl/internal/domain/services"
	"github.com/fenwicknet/vpnctl/internal/infrastructure/external/stripe"
	"github.com/fenwicknet/vpnctl/pkg/errors"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// AddPaymentMethodRequest represents a payment method addition request.
type AddPaymentMethodRequest struct {
	SubscriberID uuid.UUID              `json:"subscriber_id" validate:"required"`
	Type         string                 `json:"type" validate:"required,oneof=card bank_account sepa_debit"`
	CardDetails  map[string]interface{} `json:"card_details,omitempty"`
	IsDefault    bool                   `json:"is_default"`
}

// AddPaymentMethodUseCase handles payment method addition.
type AddPaymentMethodUseCase struct {
	identityService   services.IdentityService
	paymentMethodRepo repositories.PaymentMethodRepository
	stripeService     *stripe.StripeService
}

// NewAddPaymentMethodUseCase creates a new AddPaymentMethodUseCase instance.
func NewAddPaymentMethodUseCase(identityService services.IdentityService, paymentMethodRepo repositories.PaymentMethodRepository, stripeService *stripe.StripeService) *AddPaymentMethodUseCase {
	return &AddPaymentMethodUseCase{identityService: identityService, paymentMethodRepo: paymentMethodRepo, stripeService: stripeService}
}

// Execute registers a new payment instrument for a subscriber.
func (uc *AddPaymentMethodUseCase) Execute(ctx context.Context, req *AddPaymentMethodRequest) (*entities.PaymentMethod, error) {
	subscriber, err := uc.identityService.GetByID(ctx, req.SubscriberID)
	if err != nil {
		return nil, err
	}

	stripePaymentMethod, err := uc.stripeService.CreatePaymentMethod(ctx, req.Type, subscriber.ID.String(), req.CardDetails)
	if err != nil {
		logger.Error("failed to create stripe payment method", err, map[string]interface{}{"subscriber_id": req.SubscriberID})
		return nil, errors.WrapError(err, "failed to create payment method with payment provider")
	}

	method := &entities.PaymentMethod{
		SubscriberID:          req.SubscriberID,
		StripePaymentMethodID: &stripePaymentMethod.ID,
		Type:                  req.Type,
		IsDefault:             req.IsDefault,
	}

	if stripePaymentMethod.Card != nil {
		method.CardBrand = &stripePaymentMethod.Card.Brand
		method.CardLast4 = &stripePaymentMethod.Card.Last4
		method.CardExpiryMonth = &stripePaymentMethod.Card.ExpiryMonth
		method.CardExpiryYear = &stripePaymentMethod.Card.ExpiryYear
		method.CardFingerprint = &stripePaymentMethod.Card.Fingerprint
	}

	if err := uc.paymentMethodRepo.Create(ctx, method); err != nil {
		return nil, errors.WrapError(err, "failed to persist payment method")
	}

	return method, nil
}

// GetPaymentMethodsUseCase lists a subscriber's stored payment methods.
type GetPaymentMethodsUseCase struct {
	paymentMethodRepo repositories.PaymentMethodRepository
}

// NewGetPaymentMethodsUseCase creates a new GetPaymentMethodsUseCase instance.
func NewGetPaymentMethodsUseCase(paymentMethodRepo repositories.PaymentMethodRepository) *GetPaymentMethodsUseCase {
	return &GetPaymentMethodsUseCase{paymentMethodRepo: paymentMethodRepo}
}

// Execute lists the subscriber's payment methods.
func (uc *GetPaymentMethodsUseCase) Execute(ctx context.Context, subscriberID uuid.UUID) ([]*entities.PaymentMethod, error) {
	return uc.paymentMethodRepo.ListForSubscriber(ctx, subscriberID)
}
