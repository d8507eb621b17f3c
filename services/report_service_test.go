package services

import (
	"testing"
	"time"

	"rentbot-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyReportSumsPaidAndPartial(t *testing.T) {
	db := newTestDB(t)
	landlord := createLandlord(t, db, 100)
	property := createProperty(t, db, landlord.ID, 500000)

	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	paidAt := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	paid := createTenant(t, db, landlord.ID, property.ID, 5, models.PaymentStatusPaid, 500000)
	partial := createTenant(t, db, landlord.ID, property.ID, 10, models.PaymentStatusPartial, 500000)
	pending := createTenant(t, db, landlord.ID, property.ID, 15, models.PaymentStatusPending, 500000)

	require.NoError(t, db.Model(&models.Tenant{}).Where("id = ?", paid.ID).
		Updates(map[string]interface{}{"amount_paid": 500000, "last_payment_date": paidAt}).Error)
	require.NoError(t, db.Model(&models.Tenant{}).Where("id = ?", partial.ID).
		Updates(map[string]interface{}{"amount_paid": 200000, "last_payment_date": paidAt}).Error)
	// Pending tenant paid last month; outside this report window.
	require.NoError(t, db.Model(&models.Tenant{}).Where("id = ?", pending.ID).
		Update("last_payment_date", paidAt.AddDate(0, -1, 0)).Error)

	svc := NewReportService(db)
	report, err := svc.Monthly(landlord.ID, now)
	require.NoError(t, err)

	assert.Equal(t, "May 2024", report.Month)
	assert.Equal(t, 700000.0, report.TotalIncome)
	assert.Equal(t, 1, report.PaidTenants)
	assert.Equal(t, 2, report.TotalTenants)
	assert.Equal(t, 1, report.PropertiesCount)
	assert.InDelta(t, 50.0, report.PaymentRate, 0.01)
}

func TestYearlyReportGroupsByMonth(t *testing.T) {
	db := newTestDB(t)
	landlord := createLandlord(t, db, 100)
	property := createProperty(t, db, landlord.ID, 500000)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	march := createTenant(t, db, landlord.ID, property.ID, 5, models.PaymentStatusPaid, 500000)
	may := createTenant(t, db, landlord.ID, property.ID, 10, models.PaymentStatusPartial, 500000)

	require.NoError(t, db.Model(&models.Tenant{}).Where("id = ?", march.ID).
		Updates(map[string]interface{}{
			"amount_paid":       500000,
			"last_payment_date": time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		}).Error)
	require.NoError(t, db.Model(&models.Tenant{}).Where("id = ?", may.ID).
		Updates(map[string]interface{}{
			"amount_paid":       150000,
			"last_payment_date": time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
		}).Error)

	svc := NewReportService(db)
	report, err := svc.Yearly(landlord.ID, now)
	require.NoError(t, err)

	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, 650000.0, report.TotalIncome)
	assert.Equal(t, 500000.0, report.MonthlyIncome["2024-03"])
	assert.Equal(t, 150000.0, report.MonthlyIncome["2024-05"])
}
