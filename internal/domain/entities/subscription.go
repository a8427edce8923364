package entities

import (
	"time"

	"github.com/google/uuid"
)

// Subscription binds a subscriber to a plan for a billing period.
type Subscription struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SubscriberID       uuid.UUID  `json:"subscriber_id" gorm:"type:uuid;not null;index"`
	PlanID             uuid.UUID  `json:"plan_id" gorm:"type:uuid;not null;index"`
	Status             string     `json:"status" gorm:"not null;index;check:status IN ('pending', 'active', 'canceled', 'expired', 'past_due')"`
	AutoRenew          bool       `json:"auto_renew" gorm:"default:true"`
	StripeSubscriptionID string   `json:"stripe_subscription_id" gorm:"uniqueIndex"`
	CurrentPeriodStart time.Time  `json:"current_period_start"`
	CurrentPeriodEnd   time.Time  `json:"current_period_end"`
	CreatedAt          time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Plan *Plan `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
}

// TableName returns the table name for the Subscription entity.
func (Subscription) TableName() string {
	return "subscriptions"
}

// IsPending returns true if the subscription is awaiting payment confirmation.
func (s *Subscription) IsPending() bool {
	return s.Status == "pending"
}

// IsActive returns true if the subscription currently grants access.
func (s *Subscription) IsActive() bool {
	return s.Status == "active"
}

// IsCanceled returns true if the subscription's status is canceled. A canceled
// subscription no longer grants access: IsActive is false for it.
func (s *Subscription) IsCanceled() bool {
	return s.Status == "canceled"
}

// IsExpired returns true if the subscription period has lapsed.
func (s *Subscription) IsExpired() bool {
	return s.Status == "expired"
}

// Activate marks the subscription active and sets its billing period.
func (s *Subscription) Activate(start, end time.Time) {
	s.Status = "active"
	s.CurrentPeriodStart = start
	s.CurrentPeriodEnd = end
}

// MarkCanceled sets the status to canceled and stops auto-renewal. Access ends
// at once, since only an active subscription grants it; turning off renewal
// while keeping access until period end is done by clearing AutoRenew alone.
func (s *Subscription) MarkCanceled() {
	s.Status = "canceled"
	s.AutoRenew = false
}

// Expire marks the subscription expired once its period has lapsed.
func (s *Subscription) Expire() {
	s.Status = "expired"
}

// UnexpiredAt returns true if the subscription's current period covers the given time.
func (s *Subscription) UnexpiredAt(at time.Time) bool {
	if s.CurrentPeriodEnd.IsZero() {
		return s.Status == "active"
	}
	return at.Before(s.CurrentPeriodEnd)
}

// IsValidSubscriptionStatus checks if the given status is recognized.
func IsValidSubscriptionStatus(status string) bool {
	switch status {
	case "pending", "active", "canceled", "expired", "past_due":
		return true
	}
	return false
}
