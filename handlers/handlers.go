package handlers

import (
	"rentbot-backend/config"
	"rentbot-backend/services"

	"github.com/gin-gonic/gin"
)

// Package-level service wiring; set once at startup.
var (
	cfg           *config.Config
	payments      *services.PaymentService
	premium       *services.PremiumService
	notifications *services.NotificationService
	reports       *services.ReportService
)

// Setup hands the handlers their collaborators. Called from main before
// the router starts serving.
func Setup(c *config.Config, pay *services.PaymentService, prem *services.PremiumService,
	notif *services.NotificationService, rep *services.ReportService) {
	cfg = c
	payments = pay
	premium = prem
	notifications = notif
	reports = rep
}

// getUserID pulls the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) uint {
	id, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	return id.(uint)
}
