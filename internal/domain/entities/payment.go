package entities

import (
	"time"

	"github.com/google/uuid"
)

// Payment represents a payment transaction entity
type Payment struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SubscriberID     uuid.UUID  `json:"subscriber_id" gorm:"type:uuid;not null;index"`
	SubscriptionID   *uuid.UUID `json:"subscription_id" gorm:"type:uuid;index"`
	StripePaymentIntentID *string `json:"stripe_payment_intent_id" gorm:"uniqueIndex"`
	Amount           int64      `json:"amount" gorm:"not null"`
	Currency         string     `json:"currency" gorm:"not null;default:'USD'"`
	Status           string     `json:"status" gorm:"not null;check:status IN ('pending', 'processing', 'succeeded', 'failed', 'canceled', 'refunded')"`
	PaymentMethodID  *string    `json:"payment_method_id"`
	StripeChargeID   *string    `json:"stripe_charge_id"`
	RefundID         *string    `json:"refund_id"`
	FailureReason    *string    `json:"failure_reason"`
	Description      *string    `json:"description"`
	Metadata         map[string]string `json:"metadata" gorm:"serializer:json"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Subscriber   *Subscriber   `json:"subscriber,omitempty" gorm:"foreignKey:SubscriberID"`
	Subscription *Subscription `json:"subscription,omitempty" gorm:"foreignKey:SubscriptionID"`
}

// TableName returns the table name for the Payment entity
func (Payment) TableName() string {
	return "payments"
}

// IsPending returns true if the payment is pending
func (p *Payment) IsPending() bool {
	return p.Status == "pending"
}

// IsProcessing returns true if the payment is processing
func (p *Payment) IsProcessing() bool {
	return p.Status == "processing"
}

// IsSucceeded returns true if the payment succeeded
func (p *Payment) IsSucceeded() bool {
	return p.Status == "succeeded"
}

// IsFailed returns true if the payment failed
func (p *Payment) IsFailed() bool {
	return p.Status == "failed"
}

// IsCanceled returns true if the payment was canceled
func (p *Payment) IsCanceled() bool {
	return p.Status == "canceled"
}

// IsRefunded returns true if the payment was refunded
func (p *Payment) IsRefunded() bool {
	return p.Status == "refunded"
}

// CanBeRefunded returns true if the payment can be refunded
func (p *Payment) CanBeRefunded() bool {
	return p.IsSucceeded() && p.RefundID == nil
}

// SetPending sets the payment status to pending
func (p *Payment) SetPending() {
	p.Status = "pending"
}

// SetProcessing sets the payment status to processing
func (p *Payment) SetProcessing() {
	p.Status = "processing"
}

// SetSucceeded sets the payment status to succeeded
func (p *Payment) SetSucceeded() {
	p.Status = "succeeded"
}

// SetFailed sets the payment status to failed
func (p *Payment) SetFailed(reason string) {
	p.Status = "failed"
	p.FailureReason = &reason
}

// SetCanceled sets the payment status to canceled
func (p *Payment) SetCanceled() {
	p.Status = "canceled"
}

// SetRefunded sets the payment status to refunded
func (p *Payment) SetRefunded(refundID string) {
	p.Status = "refunded"
	p.RefundID = &refundID
}

// PaymentMethod represents a payment method entity
type PaymentMethod struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SubscriberID    uuid.UUID  `json:"subscriber_id" gorm:"type:uuid;not null;index"`
	StripePaymentMethodID *string `json:"stripe_payment_method_id" gorm:"uniqueIndex"`
	Type            string     `json:"type" gorm:"not null;check:type IN ('card', 'bank_account', 'sepa_debit')"`
	IsDefault       bool       `json:"is_default" gorm:"default:false"`
	CardBrand       *string    `json:"card_brand"`
	CardLast4       *string    `json:"card_last4"`
	CardExpiryMonth *int64     `json:"card_expiry_month"`
	CardExpiryYear  *int64     `json:"card_expiry_year"`
	CardFingerprint *string    `json:"card_fingerprint"`
	BankName        *string    `json:"bank_name"`
	BankLast4       *string    `json:"bank_last4"`
	IsVerified      bool       `json:"is_verified" gorm:"default:false"`
	Metadata        map[string]string `json:"metadata" gorm:"serializer:json"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Subscriber *Subscriber `json:"subscriber,omitempty" gorm:"foreignKey:SubscriberID"`
}

// TableName returns the table name for the PaymentMethod entity
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// IsCard returns true if the payment method is a card
func (pm *PaymentMethod) IsCard() bool {
	return pm.Type == "card"
}

// IsBankAccount returns true if the payment method is a bank account
func (pm *PaymentMethod) IsBankAccount() bool {
	return pm.Type == "bank_account"
}

// IsSepaDebit returns true if the payment method is a SEPA debit
func (pm *PaymentMethod) IsSepaDebit() bool {
	return pm.Type == "sepa_debit"
}

// SetDefault sets the payment method as default
func (pm *PaymentMethod) SetDefault() {
	pm.IsDefault = true
}

// UnsetDefault unsets the payment method as default
func (pm *PaymentMethod) UnsetDefault() {
	pm.IsDefault = false
}

// Verify marks the payment method as verified
func (pm *PaymentMethod) Verify() {
	pm.IsVerified = true
}

// Unverify marks the payment method as unverified
func (pm *PaymentMethod) Unverify() {
	pm.IsVerified = false
}

// WebhookEvent represents a webhook event entity
type WebhookEvent struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	StripeEventID   string     `json:"stripe_event_id" gorm:"uniqueIndex;not null"`
	Type            string     `json:"type" gorm:"not null;index"`
	Processed       bool       `json:"processed" gorm:"default:false"`
	ProcessingError *string    `json:"processing_error"`
	RawData         string     `json:"raw_data" gorm:"type:text"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for the WebhookEvent entity
func (WebhookEvent) TableName() string {
	return "webhook_events"
}

// IsProcessed returns true if the webhook event has been processed
func (we *WebhookEvent) IsProcessed() bool {
	return we.Processed
}

// SetProcessed marks the webhook event as processed
func (we *WebhookEvent) SetProcessed() {
	we.Processed = true
	we.ProcessingError = nil
}

// SetProcessingError sets the processing error
func (we *WebhookEvent) SetProcessingError(error string) {
	we.Processed = false
	we.ProcessingError = &error
}

// IsValidPaymentStatus checks if the payment status is valid
func IsValidPaymentStatus(status string) bool {
	validStatuses := []string{"pending", "processing", "succeeded", "failed", "canceled", "refunded"}
	for _, validStatus := range validStatuses {
		if status == validStatus {
			return true
		}
	}
	return false
}

// IsValidPaymentMethodType checks if the payment method type is valid
func IsValidPaymentMethodType(paymentMethodType string) bool {
	validTypes := []string{"card", "bank_account", "sepa_debit"}
	for _, validType := range validTypes {
		if paymentMethodType == validType {
			return true
		}
	}
	return false
}

