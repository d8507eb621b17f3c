package services

import (
	"time"

	"rentbot-backend/models"

	"gorm.io/gorm"
)

// MonthlyReport summarizes a landlord's income for the current month.
type MonthlyReport struct {
	Month           string  `json:"month"`
	TotalIncome     float64 `json:"total_income"`
	PaidTenants     int     `json:"paid_tenants"`
	TotalTenants    int     `json:"total_tenants"`
	PropertiesCount int     `json:"properties_count"`
	PaymentRate     float64 `json:"payment_rate"`
}

// YearlyReport breaks a landlord's income down by month.
type YearlyReport struct {
	Year          int                `json:"year"`
	TotalIncome   float64            `json:"total_income"`
	MonthlyIncome map[string]float64 `json:"monthly_income"`
}

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type reportRow struct {
	PropertyID      uint
	PaymentStatus   string
	AmountPaid      float64
	LastPaymentDate *time.Time
}

func (s *ReportService) paymentRows(landlordID uint, since time.Time) ([]reportRow, error) {
	var rows []reportRow
	err := s.DB.Table("tenants").
		Select("tenants.property_id, tenants.payment_status, tenants.amount_paid, tenants.last_payment_date").
		Where("tenants.landlord_id = ?", landlordID).
		Where("tenants.last_payment_date >= ?", since).
		Scan(&rows).Error
	return rows, err
}

// Monthly sums paid and partial amounts received since month start.
func (s *ReportService) Monthly(landlordID uint, now time.Time) (*MonthlyReport, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	rows, err := s.paymentRows(landlordID, monthStart)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{Month: now.Format("January 2006")}
	properties := map[uint]struct{}{}

	for _, row := range rows {
		properties[row.PropertyID] = struct{}{}
		report.TotalTenants++

		switch row.PaymentStatus {
		case models.PaymentStatusPaid:
			report.TotalIncome += row.AmountPaid
			report.PaidTenants++
		case models.PaymentStatusPartial:
			report.TotalIncome += row.AmountPaid
		}
	}

	report.PropertiesCount = len(properties)
	if report.TotalTenants > 0 {
		report.PaymentRate = float64(report.PaidTenants) / float64(report.TotalTenants) * 100
	}
	return report, nil
}

// Yearly groups income received this year by payment month.
func (s *ReportService) Yearly(landlordID uint, now time.Time) (*YearlyReport, error) {
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	rows, err := s.paymentRows(landlordID, yearStart)
	if err != nil {
		return nil, err
	}

	report := &YearlyReport{
		Year:          now.Year(),
		MonthlyIncome: map[string]float64{},
	}

	for _, row := range rows {
		if row.LastPaymentDate == nil {
			continue
		}
		if row.PaymentStatus != models.PaymentStatusPaid && row.PaymentStatus != models.PaymentStatusPartial {
			continue
		}
		monthKey := row.LastPaymentDate.Format("2006-01")
		report.MonthlyIncome[monthKey] += row.AmountPaid
		report.TotalIncome += row.AmountPaid
	}
	return report, nil
}
