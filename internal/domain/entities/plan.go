package entities

import "github.com/google/uuid"

// Plan represents a purchasable service tier.
type Plan struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Code           string    `json:"code" gorm:"uniqueIndex;not null"`
	Name           string    `json:"name" gorm:"not null"`
	Tier           string    `json:"tier" gorm:"not null;check:tier IN ('free', 'paid')"`
	PriceCents     int64     `json:"price_cents" gorm:"not null;default:0"`
	Currency       string    `json:"currency" gorm:"not null;default:'USD'"`
	BillingPeriod  string    `json:"billing_period" gorm:"not null;default:'month';check:billing_period IN ('none', 'month', 'year')"`
	StripePriceID  string    `json:"stripe_price_id"`
	Active         bool      `json:"active" gorm:"default:true"`
}

// TableName returns the table name for the Plan entity.
func (Plan) TableName() string {
	return "plans"
}

// IsFree returns true if the plan has no charge.
func (p *Plan) IsFree() bool {
	return p.Tier == "free" || p.PriceCents == 0
}

// IsPaid returns true if the plan requires payment.
func (p *Plan) IsPaid() bool {
	return !p.IsFree()
}
