package payment

import "errors"

// Payment use case errors
var (
	ErrPlanNotFound              = errors.New("subscription plan not found")
	ErrSubscriptionNotFound      = errors.New("subscription not found")
	ErrSubscriptionInactive      = errors.New("subscription is not active")
	ErrWebhookSignatureInvalid   = errors.New("webhook signature invalid")
	ErrWebhookProcessingFailed   = errors.New("webhook processing failed")
)
