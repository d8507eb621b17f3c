package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"rentbot-backend/database"
	"rentbot-backend/models"
	"rentbot-backend/services"

	"github.com/gin-gonic/gin"
)

type TenantInput struct {
	PropertyID     uint   `json:"property_id" binding:"required"`
	FullName       string `json:"full_name" binding:"required"`
	PassportSeries string `json:"passport_series"`
	PassportNumber string `json:"passport_number"`
	MoveInDate     string `json:"move_in_date"` // DD.MM.YYYY
	RentDueDate    int    `json:"rent_due_date" binding:"required"`
}

// POST /api/tenants
func CreateTenant(c *gin.Context) {
	userID := getUserID(c)

	var input TenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if input.RentDueDate < 1 || input.RentDueDate > 31 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rent due date must be between 1 and 31"})
		return
	}

	// The property must belong to the caller; the tenant's landlord is
	// always the property owner.
	var property models.Property
	if err := database.DB.Where("id = ? AND owner_id = ?", input.PropertyID, userID).
		First(&property).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	moveIn := time.Now()
	if input.MoveInDate != "" {
		parsed, err := time.Parse("02.01.2006", input.MoveInDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "move_in_date must be DD.MM.YYYY"})
			return
		}
		moveIn = parsed
	}

	tenant := models.Tenant{
		LandlordID:     userID,
		PropertyID:     property.ID,
		FullName:       input.FullName,
		PassportSeries: input.PassportSeries,
		PassportNumber: input.PassportNumber,
		MoveInDate:     moveIn,
		RentDueDate:    input.RentDueDate,
		PaymentStatus:  models.PaymentStatusPending,
		AmountDue:      property.MonthlyRent, // snapshot; later rent changes don't follow
		CreatedAt:      time.Now(),
	}

	if err := database.DB.Create(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tenant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tenant created", "data": tenant})
}

// GET /api/tenants
func GetTenants(c *gin.Context) {
	userID := getUserID(c)

	var tenants []models.Tenant
	database.DB.Where("landlord_id = ?", userID).Order("created_at desc").Find(&tenants)

	c.JSON(http.StatusOK, gin.H{"data": tenants})
}

// DELETE /api/tenants/:id
func DeleteTenant(c *gin.Context) {
	userID := getUserID(c)
	id := c.Param("id")

	res := database.DB.Where("id = ? AND landlord_id = ?", id, userID).Delete(&models.Tenant{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete tenant"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tenant deleted"})
}

type MarkPaymentInput struct {
	Mark   string  `json:"mark" binding:"required"` // full, none, partial
	Amount float64 `json:"amount"`
}

// POST /api/tenants/:id/payment
func MarkTenantPayment(c *gin.Context) {
	userID := getUserID(c)

	tenantID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant id must be a number"})
		return
	}

	var input MarkPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := payments.MarkPayment(userID, uint(tenantID), input.Mark, input.Amount); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tenant models.Tenant
	database.DB.First(&tenant, tenantID)

	c.JSON(http.StatusOK, gin.H{"message": "payment status updated", "data": tenant})
}
