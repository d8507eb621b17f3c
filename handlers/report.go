package handlers

import (
	"fmt"
	"net/http"
	"time"

	"rentbot-backend/database"
	"rentbot-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// GET /api/reports/monthly
func GetMonthlyReport(c *gin.Context) {
	userID := getUserID(c)

	report, err := reports.Monthly(userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

// GET /api/reports/yearly
func GetYearlyReport(c *gin.Context) {
	userID := getUserID(c)

	report, err := reports.Yearly(userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

// GET /api/reports/export
// Streams an xlsx of the landlord's tenants and their payment state.
func ExportExcel(c *gin.Context) {
	userID := getUserID(c)

	type exportRow struct {
		FullName        string
		Address         string
		Currency        string
		RentDueDate     int
		PaymentStatus   string
		AmountDue       float64
		AmountPaid      float64
		LastPaymentDate *time.Time
	}

	var rows []exportRow
	database.DB.Table("tenants").
		Select("tenants.full_name, tenants.rent_due_date, tenants.payment_status, tenants.amount_due, tenants.amount_paid, tenants.last_payment_date, properties.address, properties.currency").
		Joins("JOIN properties ON properties.id = tenants.property_id").
		Where("tenants.landlord_id = ?", userID).
		Order("tenants.created_at desc").
		Scan(&rows)

	f := excelize.NewFile()
	sheetName := "Tenants"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"No", "Tenant", "Property", "Due Day", "Status", "Amount Due", "Amount Paid", "Last Payment"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	styleHeader, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetCellStyle(sheetName, "A1", "H1", styleHeader)

	row := 2
	for i, t := range rows {
		lastPayment := ""
		if t.LastPaymentDate != nil {
			lastPayment = t.LastPaymentDate.Format("02-01-2006")
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.FullName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Address)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.RentDueDate)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.PaymentStatus)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), fmt.Sprintf("%.0f %s", t.AmountDue, t.Currency))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), fmt.Sprintf("%.0f %s", t.AmountPaid, t.Currency))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), lastPayment)

		// Green for paid, red for overdue.
		if t.PaymentStatus == models.PaymentStatusPaid {
			stylePaid, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#10B981"}})
			f.SetCellStyle(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), stylePaid)
		} else if t.PaymentStatus == models.PaymentStatusOverdue {
			styleOverdue, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#EF4444"}})
			f.SetCellStyle(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), styleOverdue)
		}

		row++
	}

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "C", 25)
	f.SetColWidth(sheetName, "D", "E", 10)
	f.SetColWidth(sheetName, "F", "H", 15)

	fileName := fmt.Sprintf("rental_report_%s.xlsx", time.Now().Format("20060102"))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate excel"})
	}
}
