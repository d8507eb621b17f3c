package models

import "time"

const (
	SubscriptionMonthly = "monthly"
	SubscriptionYearly  = "yearly"
)

// Subscription is a completed, paid premium term. Only the self-service
// activation path writes these; admin approvals mutate the User directly.
type Subscription struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	SubscriptionType string    `gorm:"not null" json:"subscription_type"` // monthly, yearly
	Amount           float64   `json:"amount"`
	PaymentMethod    string    `json:"payment_method"`
	PaymentStatus    string    `gorm:"default:pending" json:"payment_status"` // pending, paid, expired
	StartsAt         time.Time `json:"starts_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// PremiumRequest is a user's claim that they paid for premium, waiting on
// an admin decision. Terminal once approved or rejected.
type PremiumRequest struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"index;not null" json:"user_id"`
	SubscriptionType string     `gorm:"not null" json:"subscription_type"`
	Amount           float64    `json:"amount"`
	Status           string     `gorm:"default:pending" json:"status"`
	RequestedAt      time.Time  `json:"requested_at"`
	ProcessedAt      *time.Time `json:"processed_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
}
