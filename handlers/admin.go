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
	"golang.org/x/crypto/bcrypt"
)

const adminPasswordKey = "admin_password"

// GET /api/admin/users
func GetAllUsers(c *gin.Context) {
	var users []models.User
	database.DB.Order("created_at desc").Find(&users)

	c.JSON(http.StatusOK, gin.H{"data": users})
}

// GET /api/admin/users/:id
func GetUserDetail(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var propertyCount, tenantCount int64
	database.DB.Model(&models.Property{}).Where("owner_id = ?", user.ID).Count(&propertyCount)
	database.DB.Model(&models.Tenant{}).Where("landlord_id = ?", user.ID).Count(&tenantCount)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":                 user.ID,
			"username":           user.Username,
			"full_name":          user.FullName,
			"phone_number":       user.PhoneNumber,
			"language":           user.Language,
			"is_premium":         user.IsPremium,
			"premium_expires_at": user.PremiumExpiresAt,
			"premium_active":     premium.HasActivePremium(&user),
			"created_at":         user.CreatedAt,
		},
		"stats": gin.H{
			"properties": propertyCount,
			"tenants":    tenantCount,
		},
	})
}

type ActivatePremiumInput struct {
	SubscriptionType string `json:"subscription_type" binding:"required"`
}

// POST /api/admin/users/:id/premium
// Direct grant: skips the request flow entirely.
func ActivateUserPremium(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id must be a number"})
		return
	}

	var input ActivatePremiumInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := premium.ActivatePremium(uint(userID), input.SubscriptionType); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err == nil {
		notifications.NotifyPremiumActivated(&user)
	}

	c.JSON(http.StatusOK, gin.H{"message": "premium activated"})
}

// GET /api/admin/premium-requests
func GetPendingPremiumRequests(c *gin.Context) {
	requests, err := premium.PendingRequests()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load premium requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": requests})
}

// POST /api/admin/premium-requests/:id/approve
func ApprovePremiumRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request id must be a number"})
		return
	}

	request, err := premium.ApprovePremiumRequest(uint(requestID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found or already processed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to approve request"})
		return
	}

	// Notify the user after the commit; a send failure never undoes the
	// approval.
	var user models.User
	if err := database.DB.First(&user, request.UserID).Error; err == nil {
		notifications.NotifyPremiumActivated(&user)
	}

	c.JSON(http.StatusOK, gin.H{"message": "premium request approved"})
}

// POST /api/admin/premium-requests/:id/reject
func RejectPremiumRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request id must be a number"})
		return
	}

	if err := premium.RejectPremiumRequest(uint(requestID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found or already processed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reject request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "premium request rejected"})
}

// GET /api/admin/stats
func GetPlatformStats(c *gin.Context) {
	var totalUsers, premiumUsers, totalProperties, totalTenants, pendingRequests int64
	now := time.Now()

	database.DB.Model(&models.User{}).Count(&totalUsers)
	database.DB.Model(&models.User{}).
		Where("is_premium = ? AND premium_expires_at > ?", true, now).
		Count(&premiumUsers)
	database.DB.Model(&models.Property{}).Count(&totalProperties)
	database.DB.Model(&models.Tenant{}).Count(&totalTenants)
	database.DB.Model(&models.PremiumRequest{}).
		Where("status = ?", models.RequestStatusPending).
		Count(&pendingRequests)

	premiumRate := 0.0
	if totalUsers > 0 {
		premiumRate = float64(premiumUsers) / float64(totalUsers) * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":      totalUsers,
		"premium_users":    premiumUsers,
		"premium_rate":     premiumRate,
		"total_properties": totalProperties,
		"total_tenants":    totalTenants,
		"pending_requests": pendingRequests,
	})
}

type ChangePasswordInput struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// POST /api/admin/password
// The admin password lives in the AdminConfig key-value store so it can
// be rotated without redeploying.
func ChangeAdminPassword(c *gin.Context) {
	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	var entry models.AdminConfig
	err = database.DB.Where("key = ?", adminPasswordKey).First(&entry).Error
	if err != nil {
		entry = models.AdminConfig{Key: adminPasswordKey, Value: string(hashed)}
		err = database.DB.Create(&entry).Error
	} else {
		entry.Value = string(hashed)
		err = database.DB.Save(&entry).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "admin password updated"})
}

// POST /api/admin/scans/reminders
// Manual trigger for the scheduled reminder pass.
func TriggerReminderScan(c *gin.Context) {
	events, err := notifications.RunReminderScan(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reminder scan failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reminder scan finished", "events": events})
}

// POST /api/admin/scans/overdue
func TriggerOverdueScan(c *gin.Context) {
	events, err := notifications.RunOverdueScan(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "overdue scan failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "overdue scan finished", "events": events})
}

// POST /api/admin/billing-period
// Manual trigger for the month-start reset.
func TriggerBillingReset(c *gin.Context) {
	reset, err := payments.StartNewBillingPeriod()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "billing period reset failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "new billing period started", "tenants_reset": reset})
}
