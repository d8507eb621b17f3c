package handlers

import (
	"errors"
	"net/http"

	"rentbot-backend/database"
	"rentbot-backend/models"
	"rentbot-backend/services"

	"github.com/gin-gonic/gin"
)

// GET /api/premium/prices
func GetPremiumPrices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"monthly":             cfg.Subscription.MonthlyPrice,
		"yearly":              cfg.Subscription.YearlyPrice,
		"currency":            "UZS",
		"free_property_limit": cfg.Subscription.FreePropertyLimit,
	})
}

type PremiumRequestInput struct {
	SubscriptionType string  `json:"subscription_type" binding:"required"` // monthly, yearly
	Amount           float64 `json:"amount" binding:"required"`
}

// POST /api/premium/request
// The user attests they paid; the admin reviews it later.
func CreatePremiumRequest(c *gin.Context) {
	userID := getUserID(c)

	var input PremiumRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	request, err := premium.CreatePremiumRequest(userID, input.SubscriptionType, input.Amount)
	if err != nil {
		if errors.Is(err, services.ErrPriceMismatch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount does not match the subscription price"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Best-effort heads-up to the admin chat.
	var user models.User
	if err := database.DB.First(&user, userID).Error; err == nil {
		notifications.NotifyAdminPremiumRequest(cfg.Telegram.AdminChatID, &user, request.SubscriptionType, request.Amount)
	}

	c.JSON(http.StatusOK, gin.H{"message": "premium request submitted", "data": request})
}
