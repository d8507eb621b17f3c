package services

import (
	"errors"
	"fmt"
	"time"

	"rentbot-backend/config"
	"rentbot-backend/metrics"
	"rentbot-backend/models"

	"gorm.io/gorm"
)

// ErrPriceMismatch is returned when a premium request's amount does not
// match the configured price for its subscription type.
var ErrPriceMismatch = errors.New("amount does not match subscription price")

// Fixed premium durations. Not calendar-aware: monthly is always 30 days,
// yearly always 365.
const (
	monthlyDuration = 30 * 24 * time.Hour
	yearlyDuration  = 365 * 24 * time.Hour
)

// PremiumService owns the premium lifecycle: requests, admin approval and
// direct activation, and the lazy expiry check every premium gate uses.
type PremiumService struct {
	DB  *gorm.DB
	Cfg config.SubscriptionConfig
	now func() time.Time
}

func NewPremiumService(db *gorm.DB, cfg config.SubscriptionConfig) *PremiumService {
	return &PremiumService{DB: db, Cfg: cfg, now: time.Now}
}

// SubscriptionPrice returns the configured price for a subscription type.
func (s *PremiumService) SubscriptionPrice(subType string) (float64, error) {
	switch subType {
	case models.SubscriptionMonthly:
		return s.Cfg.MonthlyPrice, nil
	case models.SubscriptionYearly:
		return s.Cfg.YearlyPrice, nil
	default:
		return 0, fmt.Errorf("unknown subscription type %q", subType)
	}
}

func premiumExpiry(subType string, from time.Time) time.Time {
	if subType == models.SubscriptionYearly {
		return from.Add(yearlyDuration)
	}
	return from.Add(monthlyDuration)
}

// ActivatePremium grants a fresh premium window starting now. Repeated
// activation restarts the window; remaining time is discarded, not added.
// A paid Subscription row is recorded in the same transaction.
func (s *PremiumService) ActivatePremium(userID uint, subType string) error {
	price, err := s.SubscriptionPrice(subType)
	if err != nil {
		return err
	}

	now := s.now()
	expiresAt := premiumExpiry(subType, now)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"is_premium":         true,
				"premium_expires_at": expiresAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		sub := models.Subscription{
			UserID:           userID,
			SubscriptionType: subType,
			Amount:           price,
			PaymentStatus:    "paid",
			StartsAt:         now,
			ExpiresAt:        expiresAt,
		}
		return tx.Create(&sub).Error
	})
	if err != nil {
		return err
	}

	metrics.PremiumActivationCounter.Inc()
	return nil
}

// CreatePremiumRequest records a user's claim that they paid. The amount
// is checked against the price table rather than trusted from the caller.
func (s *PremiumService) CreatePremiumRequest(userID uint, subType string, amount float64) (*models.PremiumRequest, error) {
	price, err := s.SubscriptionPrice(subType)
	if err != nil {
		return nil, err
	}
	if amount != price {
		return nil, ErrPriceMismatch
	}

	request := models.PremiumRequest{
		UserID:           userID,
		SubscriptionType: subType,
		Amount:           amount,
		Status:           models.RequestStatusPending,
		RequestedAt:      s.now(),
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ApprovePremiumRequest marks a pending request approved and activates the
// user's premium window, all inside one transaction. A missing or already
// processed request, or a request pointing at a deleted user, leaves
// nothing mutated and reports not-found.
func (s *PremiumService) ApprovePremiumRequest(requestID uint) (*models.PremiumRequest, error) {
	now := s.now()
	var request models.PremiumRequest

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND status = ?", requestID, models.RequestStatusPending).
			First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.PremiumRequest{}).
			Where("id = ?", request.ID).
			Updates(map[string]interface{}{
				"status":       models.RequestStatusApproved,
				"processed_at": now,
			}).Error; err != nil {
			return err
		}

		expiresAt := premiumExpiry(request.SubscriptionType, now)
		res := tx.Model(&models.User{}).
			Where("id = ?", request.UserID).
			Updates(map[string]interface{}{
				"is_premium":         true,
				"premium_expires_at": expiresAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Request without a user: roll the approval back too.
			return ErrNotFound
		}

		request.Status = models.RequestStatusApproved
		request.ProcessedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PremiumActivationCounter.Inc()
	metrics.PremiumRequestCounter.WithLabelValues(models.RequestStatusApproved).Inc()
	return &request, nil
}

// RejectPremiumRequest closes a pending request without touching the user.
func (s *PremiumService) RejectPremiumRequest(requestID uint) error {
	now := s.now()
	res := s.DB.Model(&models.PremiumRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":       models.RequestStatusRejected,
			"processed_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	metrics.PremiumRequestCounter.WithLabelValues(models.RequestStatusRejected).Inc()
	return nil
}

// PendingRequests lists requests waiting on an admin decision.
func (s *PremiumService) PendingRequests() ([]models.PremiumRequest, error) {
	var requests []models.PremiumRequest
	err := s.DB.Preload("User").
		Where("status = ?", models.RequestStatusPending).
		Order("requested_at").
		Find(&requests).Error
	return requests, err
}

// HasActivePremium checks the premium window against the clock. The stored
// flag alone is never trusted: nothing clears is_premium on expiry, so a
// stale true with a past expiry means no premium.
func (s *PremiumService) HasActivePremium(user *models.User) bool {
	return user.IsPremium &&
		user.PremiumExpiresAt != nil &&
		user.PremiumExpiresAt.After(s.now())
}

// CanAddProperty enforces the free-tier property limit. Premium users
// (with an unexpired window) add without limit.
func (s *PremiumService) CanAddProperty(userID uint) (bool, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	if s.HasActivePremium(&user) {
		return true, nil
	}

	var count int64
	if err := s.DB.Model(&models.Property{}).
		Where("owner_id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count < int64(s.Cfg.FreePropertyLimit), nil
}
