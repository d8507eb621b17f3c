package models

import "time"

// Tenant payment statuses. The stored "overdue" value is a landlord-set
// label; the scanner derives lateness from rent_due_date and the calendar,
// and the two signals are allowed to disagree.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

type Tenant struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	LandlordID      uint       `gorm:"index;not null" json:"landlord_id"`
	PropertyID      uint       `gorm:"index;not null" json:"property_id"`
	FullName        string     `gorm:"not null" json:"full_name"`
	PassportSeries  string     `json:"passport_series"`
	PassportNumber  string     `json:"passport_number"`
	MoveInDate      time.Time  `json:"move_in_date"`
	RentDueDate     int        `gorm:"default:1" json:"rent_due_date"` // day of month, 1-31
	PaymentStatus   string     `gorm:"default:pending" json:"payment_status"`
	AmountDue       float64    `json:"amount_due"` // rent snapshot taken at creation
	AmountPaid      float64    `json:"amount_paid"`
	LastPaymentDate *time.Time `json:"last_payment_date"`
	CreatedAt       time.Time  `json:"created_at"`

	Landlord User     `gorm:"foreignKey:LandlordID" json:"-"`
	Property Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
}
