package services

import (
	"errors"
	"fmt"
	"time"

	"rentbot-backend/metrics"
	"rentbot-backend/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the referenced record does not exist or is
// not owned by the caller.
var ErrNotFound = errors.New("record not found")

// Payment marks a landlord can apply to a tenant.
const (
	MarkFull    = "full"
	MarkNone    = "none"
	MarkPartial = "partial"
)

// PaymentService is the tenant payment state machine. Every transition is
// a single UPDATE keyed by tenant id and landlord id, so a landlord can
// never touch another landlord's tenants.
type PaymentService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db, now: time.Now}
}

// MarkPayment applies a landlord-issued transition:
//
//	full    -> paid, amount_paid synced to amount_due
//	none    -> overdue
//	partial -> partial, amount_paid overwritten with the given amount
//
// last_payment_date advances to the call time on every mark.
func (s *PaymentService) MarkPayment(landlordID, tenantID uint, mark string, amount float64) error {
	now := s.now()

	updates := map[string]interface{}{
		"last_payment_date": now,
	}

	switch mark {
	case MarkFull:
		updates["payment_status"] = models.PaymentStatusPaid
		updates["amount_paid"] = gorm.Expr("amount_due")
	case MarkNone:
		updates["payment_status"] = models.PaymentStatusOverdue
	case MarkPartial:
		if amount < 0 {
			return fmt.Errorf("partial amount must not be negative")
		}
		updates["payment_status"] = models.PaymentStatusPartial
		updates["amount_paid"] = amount
	default:
		return fmt.Errorf("unknown payment mark %q", mark)
	}

	res := s.DB.Model(&models.Tenant{}).
		Where("id = ? AND landlord_id = ?", tenantID, landlordID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	metrics.PaymentMarkCounter.WithLabelValues(mark).Inc()
	return nil
}

// StartNewBillingPeriod opens a fresh cycle: every tenant marked paid goes
// back to pending. Scheduled at the start of each month; partial and
// overdue tenants keep their state until the landlord resolves them.
func (s *PaymentService) StartNewBillingPeriod() (int64, error) {
	res := s.DB.Model(&models.Tenant{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Update("payment_status", models.PaymentStatusPending)
	return res.RowsAffected, res.Error
}
