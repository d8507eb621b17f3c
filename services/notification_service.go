package services

import (
	"fmt"
	"time"

	"rentbot-backend/metrics"
	"rentbot-backend/models"
	"rentbot-backend/notifier"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReminderEvent is emitted for a tenant whose rent is due in LeadDays.
type ReminderEvent struct {
	TenantID        uint   `json:"tenant_id"`
	TenantName      string `json:"tenant_name"`
	PropertyAddress string `json:"property_address"`
	LandlordChatID  *int64 `json:"landlord_chat_id"`
	Language        string `json:"language"`
	DaysRemaining   int    `json:"days_remaining"`
}

// OverdueEvent is emitted for a tenant whose due day has passed without
// full payment.
type OverdueEvent struct {
	TenantID        uint    `json:"tenant_id"`
	TenantName      string  `json:"tenant_name"`
	PropertyAddress string  `json:"property_address"`
	LandlordChatID  *int64  `json:"landlord_chat_id"`
	Language        string  `json:"language"`
	OverdueAmount   float64 `json:"overdue_amount"`
	DaysOverdue     int     `json:"days_overdue"`
	Currency        string  `json:"currency"`
}

// NotificationService runs the time-driven reminder and overdue scans.
// Each run is a full-table pass with no cursor; idempotency comes from the
// day-granularity match, so a second trigger on the same calendar day
// repeats the same notifications.
//
// Day matching is a literal day-of-month comparison, as in the original
// system: a due day of 31 never matches inside a 30-day month, and days
// past the month's end are never clamped.
type NotificationService struct {
	DB         *gorm.DB
	Dispatcher notifier.Dispatcher
	Log        *zap.Logger
	LeadDays   int
}

func NewNotificationService(db *gorm.DB, dispatcher notifier.Dispatcher, log *zap.Logger, leadDays int) *NotificationService {
	return &NotificationService{DB: db, Dispatcher: dispatcher, Log: log, LeadDays: leadDays}
}

// scanRow is the joined tenant/property/landlord projection both passes read.
type scanRow struct {
	TenantID    uint
	FullName    string
	RentDueDate int
	AmountDue   float64
	AmountPaid  float64
	Address     string
	Currency    string
	TelegramID  *int64
	Language    string
}

func (s *NotificationService) scanRows(db *gorm.DB, dueDayCond string, dueDayArg int) ([]scanRow, error) {
	var rows []scanRow
	err := db.Table("tenants").
		Select("tenants.id AS tenant_id, tenants.full_name, tenants.rent_due_date, tenants.amount_due, tenants.amount_paid, properties.address, properties.currency, users.telegram_id, users.language").
		Joins("JOIN properties ON properties.id = tenants.property_id").
		Joins("JOIN users ON users.id = tenants.landlord_id").
		Where("tenants.payment_status IN ?", []string{models.PaymentStatusPending, models.PaymentStatusPartial}).
		Where("tenants.rent_due_date "+dueDayCond, dueDayArg).
		Scan(&rows).Error
	return rows, err
}

// RunReminderScan emits a reminder for every pending or partial tenant
// whose due day lands LeadDays from now. A delivery failure for one
// landlord never aborts the rest of the pass.
func (s *NotificationService) RunReminderScan(now time.Time) ([]ReminderEvent, error) {
	metrics.ScanRunCounter.WithLabelValues("reminder").Inc()

	targetDay := now.AddDate(0, 0, s.LeadDays).Day()
	rows, err := s.scanRows(s.DB, "= ?", targetDay)
	if err != nil {
		return nil, err
	}

	events := make([]ReminderEvent, 0, len(rows))
	for _, row := range rows {
		event := ReminderEvent{
			TenantID:        row.TenantID,
			TenantName:      row.FullName,
			PropertyAddress: row.Address,
			LandlordChatID:  row.TelegramID,
			Language:        row.Language,
			DaysRemaining:   s.LeadDays,
		}
		events = append(events, event)

		s.dispatch(row.TelegramID, reminderText(event), "reminder", row.TenantID)
	}
	return events, nil
}

// RunOverdueScan emits an overdue notice for every pending or partial
// tenant whose due day already passed this month.
func (s *NotificationService) RunOverdueScan(now time.Time) ([]OverdueEvent, error) {
	metrics.ScanRunCounter.WithLabelValues("overdue").Inc()

	rows, err := s.scanRows(s.DB, "< ?", now.Day())
	if err != nil {
		return nil, err
	}

	events := make([]OverdueEvent, 0, len(rows))
	for _, row := range rows {
		event := OverdueEvent{
			TenantID:        row.TenantID,
			TenantName:      row.FullName,
			PropertyAddress: row.Address,
			LandlordChatID:  row.TelegramID,
			Language:        row.Language,
			OverdueAmount:   row.AmountDue - row.AmountPaid,
			DaysOverdue:     now.Day() - row.RentDueDate,
			Currency:        row.Currency,
		}
		events = append(events, event)

		s.dispatch(row.TelegramID, overdueText(event), "overdue", row.TenantID)
	}
	return events, nil
}

// dispatch sends best-effort. Landlords with no chat bound are skipped;
// failures are logged and counted, never propagated.
func (s *NotificationService) dispatch(chatID *int64, text, kind string, tenantID uint) {
	if chatID == nil {
		return
	}
	if err := s.Dispatcher.Send(*chatID, text); err != nil {
		metrics.NotificationFailureCounter.Inc()
		s.Log.Warn("notification delivery failed",
			zap.String("kind", kind),
			zap.Uint("tenant_id", tenantID),
			zap.Int64("chat_id", *chatID),
			zap.Error(err))
		return
	}
	metrics.NotificationsSentCounter.WithLabelValues(kind).Inc()
}

func reminderText(e ReminderEvent) string {
	if e.Language == "ru" {
		return fmt.Sprintf("⏰ Напоминание: арендатор %s (%s) должен оплатить аренду через %d дн.",
			e.TenantName, e.PropertyAddress, e.DaysRemaining)
	}
	return fmt.Sprintf("⏰ Eslatma: ijarachi %s (%s) %d kundan so'ng ijara to'lashi kerak.",
		e.TenantName, e.PropertyAddress, e.DaysRemaining)
}

func overdueText(e OverdueEvent) string {
	if e.Language == "ru" {
		return fmt.Sprintf("⚠️ Просрочка: арендатор %s (%s) должен %.0f %s, просрочено на %d дн.",
			e.TenantName, e.PropertyAddress, e.OverdueAmount, e.Currency, e.DaysOverdue)
	}
	return fmt.Sprintf("⚠️ Muddati o'tgan: ijarachi %s (%s) %.0f %s qarzdor, %d kun kechikdi.",
		e.TenantName, e.PropertyAddress, e.OverdueAmount, e.Currency, e.DaysOverdue)
}

// NotifyAdminPremiumRequest tells the admin chat about a new premium
// request. Best-effort, like every other dispatch.
func (s *NotificationService) NotifyAdminPremiumRequest(adminChatID int64, user *models.User, subType string, amount float64) {
	if adminChatID == 0 {
		return
	}

	name := user.FullName
	if name == "" {
		name = user.Username
	}
	text := fmt.Sprintf("💎 New premium request!\n\n👤 %s\n📞 %s\n💰 %.0f so'm\n📅 %s",
		name, user.PhoneNumber, amount, subType)

	if err := s.Dispatcher.Send(adminChatID, text); err != nil {
		metrics.NotificationFailureCounter.Inc()
		s.Log.Warn("admin notification failed", zap.Error(err))
	}
}

// NotifyPremiumActivated tells the user their premium went live. A failure
// here never rolls back the approval.
func (s *NotificationService) NotifyPremiumActivated(user *models.User) {
	if user.TelegramID == nil {
		return
	}

	text := "✅ Sizning premium obunangiz faollashtirildi!"
	if user.Language == "ru" {
		text = "✅ Ваша премиум-подписка активирована!"
	}

	if err := s.Dispatcher.Send(*user.TelegramID, text); err != nil {
		metrics.NotificationFailureCounter.Inc()
		s.Log.Warn("premium activation notification failed",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
	}
}
