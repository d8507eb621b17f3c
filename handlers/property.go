package handlers

import (
	"net/http"
	"time"

	"rentbot-backend/database"
	"rentbot-backend/models"

	"github.com/gin-gonic/gin"
)

type PropertyInput struct {
	Address     string  `json:"address" binding:"required"`
	AreaSqm     float64 `json:"area_sqm" binding:"required"`
	RoomsCount  int     `json:"rooms_count" binding:"required"`
	MonthlyRent float64 `json:"monthly_rent" binding:"required"`
	Currency    string  `json:"currency"`
}

// POST /api/properties
func CreateProperty(c *gin.Context) {
	userID := getUserID(c)

	var input PropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if input.MonthlyRent <= 0 || input.AreaSqm <= 0 || input.RoomsCount < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rent and area must be positive, rooms at least 1"})
		return
	}

	currency := input.Currency
	if currency != "USD" {
		currency = "UZS"
	}

	allowed, err := premium.CanAddProperty(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check property limit"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "free property limit reached, premium subscription required",
			"limit": cfg.Subscription.FreePropertyLimit,
		})
		return
	}

	property := models.Property{
		OwnerID:     userID,
		Address:     input.Address,
		AreaSqm:     input.AreaSqm,
		RoomsCount:  input.RoomsCount,
		MonthlyRent: input.MonthlyRent,
		Currency:    currency,
		CreatedAt:   time.Now(),
	}

	if err := database.DB.Create(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "property created", "data": property})
}

// GET /api/properties
func GetProperties(c *gin.Context) {
	userID := getUserID(c)

	var properties []models.Property
	database.DB.Where("owner_id = ?", userID).Order("created_at desc").Find(&properties)

	c.JSON(http.StatusOK, gin.H{"data": properties})
}

// DELETE /api/properties/:id
// Deleting a property removes its tenants as well.
func DeleteProperty(c *gin.Context) {
	userID := getUserID(c)
	id := c.Param("id")

	res := database.DB.Where("id = ? AND owner_id = ?", id, userID).Delete(&models.Property{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete property"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	database.DB.Where("property_id = ?", id).Delete(&models.Tenant{})

	c.JSON(http.StatusOK, gin.H{"message": "property deleted"})
}
