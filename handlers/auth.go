package handlers

import (
	"net/http"
	"time"

	"rentbot-backend/database"
	"rentbot-backend/models"
	"rentbot-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginInput struct {
	Password string `json:"password" binding:"required"`
}

type RegisterInput struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Language    string `json:"language"`
	TelegramID  *int64 `json:"telegram_id"`
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":                 user.ID,
			"username":           user.Username,
			"role":               user.Role,
			"is_premium":         user.IsPremium,
			"premium_expires_at": user.PremiumExpiresAt,
		},
	})
}

// POST /admin/login
// Admin access is gated by the shared admin password: the hash stored
// under AdminConfig once it has been rotated, the configured default
// before that.
func AdminLogin(c *gin.Context) {
	var input AdminLoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if !verifyAdminPassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin password"})
		return
	}

	token, err := utils.GenerateToken(0, "admin")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func verifyAdminPassword(password string) bool {
	var entry models.AdminConfig
	if err := database.DB.Where("key = ?", adminPasswordKey).First(&entry).Error; err == nil {
		return bcrypt.CompareHashAndPassword([]byte(entry.Value), []byte(password)) == nil
	}
	return cfg.Admin.Password != "" && password == cfg.Admin.Password
}

func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	language := input.Language
	if language != "ru" {
		language = "uz"
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)

	newUser := models.User{
		Username:    input.Username,
		Password:    string(hashedPassword),
		Role:        "user",
		FullName:    input.FullName,
		PhoneNumber: input.PhoneNumber,
		Language:    language,
		TelegramID:  input.TelegramID,
		CreatedAt:   time.Now(),
	}

	if err := database.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username or telegram id already taken"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "registered",
		"user": gin.H{
			"id":       newUser.ID,
			"username": newUser.Username,
			"language": newUser.Language,
		},
	})
}
