package models

import "time"

// DiscountType selects how a plan discounts marketplace fees.
type DiscountType string

const (
	// DiscountTypeFixed applies the plan's DiscountValue regardless of fee amount.
	DiscountTypeFixed DiscountType = "FIXED"
	// DiscountTypeTiered selects a DiscountCommission tier by fee amount.
	DiscountTypeTiered DiscountType = "TIERED"
)

// SubscriptionPlan defines a billing tier: price, period length, discount
// rule and per-job credit allotment.
type SubscriptionPlan struct {
	ID             uint   `gorm:"primarykey"`
	Name           string `gorm:"uniqueIndex;not null"`
	Description    string
	Price          float64       `gorm:"not null"`
	DurationDays   int           `gorm:"not null"` // billing period length
	DiscountType   DiscountType  `gorm:"not null;default:'FIXED'"`
	DiscountValue  float64       `gorm:"not null;default:0"`
	RollOverCredit bool          `gorm:"not null;default:false"`
	CreditsPerJob  float64       `gorm:"not null;default:0"`
	Benefits       StringList    `gorm:"type:jsonb"`
	IsDefault      bool          `gorm:"not null;default:false"`
	Status         CatalogStatus `gorm:"not null;default:'DRAFT'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SubscriptionStatus captures the subscription lifecycle. ACTIVE is the only
// non-terminal state: expiry moves it to INACTIVE, explicit cancellation to
// CANCELLED, and nothing leaves either of those.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusInactive  SubscriptionStatus = "INACTIVE"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription is a provider's time-bounded enrollment in a plan. A partial
// unique index on (service_provider_id) WHERE status = 'ACTIVE' guarantees
// at most one ACTIVE subscription per provider (created in InitDB, since
// GORM tags cannot express partial indexes).
type Subscription struct {
	ID                 uint               `gorm:"primarykey"`
	ServiceProviderID  uint               `gorm:"index;not null"`
	SubscriptionPlanID uint               `gorm:"index;not null"`
	StartDate          time.Time          `gorm:"not null"`
	EndDate            time.Time          `gorm:"index;not null"`
	Status             SubscriptionStatus `gorm:"not null;default:'ACTIVE'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DiscountCommission is one fee-amount tier of a TIERED plan. Tiers of a
// plan+status combination must not overlap; the discount resolver validates
// that, not storage.
type DiscountCommission struct {
	ID         uint          `gorm:"primarykey"`
	PlanID     uint          `gorm:"index;not null"`
	Commission float64       `gorm:"not null"`
	MinValue   float64       `gorm:"not null"`
	MaxValue   float64       `gorm:"not null"`
	Status     CatalogStatus `gorm:"not null;default:'ACTIVE'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
