package handlers

import (
	"net/http"

	"rentbot-backend/database"
	"rentbot-backend/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// GET /api/user/profile
func GetProfile(c *gin.Context) {
	userID := getUserID(c)
	var user models.User

	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                 user.ID,
		"username":           user.Username,
		"full_name":          user.FullName,
		"phone_number":       user.PhoneNumber,
		"language":           user.Language,
		"telegram_id":        user.TelegramID,
		"is_premium":         user.IsPremium,
		"premium_expires_at": user.PremiumExpiresAt,
		"premium_active":     premium.HasActivePremium(&user),
	})
}

type UpdateProfileInput struct {
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Language    string `json:"language"`
	TelegramID  *int64 `json:"telegram_id"`
}

// PUT /api/user/profile
func UpdateProfile(c *gin.Context) {
	userID := getUserID(c)
	var user models.User

	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if input.Password != "" {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}
	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = input.PhoneNumber
	}
	if input.Language == "uz" || input.Language == "ru" {
		user.Language = input.Language
	}
	if input.TelegramID != nil {
		user.TelegramID = input.TelegramID
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update profile, telegram id may already be bound"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "profile updated",
		"user": gin.H{
			"username":    user.Username,
			"full_name":   user.FullName,
			"language":    user.Language,
			"telegram_id": user.TelegramID,
		},
	})
}
