package main

import (
	"net/http"

	"rentbot-backend/config"
	"rentbot-backend/database"
	"rentbot-backend/handlers"
	"rentbot-backend/logger"
	"rentbot-backend/middleware"
	"rentbot-backend/notifier"
	"rentbot-backend/scheduler"
	"rentbot-backend/services"
	"rentbot-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	utils.InitJWT(cfg.JWT)

	logger.Init(cfg)
	log := logger.Get()
	defer log.Sync()

	if err := database.ConnectDatabase(cfg); err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	log.Info("database connected", zap.String("path", cfg.Database.Path))

	// Dispatcher is injected everywhere a component needs to message
	// through the bot channel; no global bot handle.
	var dispatcher notifier.Dispatcher
	if cfg.Telegram.BotToken != "" {
		dispatcher = notifier.NewTelegramNotifier(cfg.Telegram.BotToken)
	} else {
		log.Warn("no bot token configured, notifications go to the log")
		dispatcher = &notifier.LogNotifier{Log: log}
	}

	paymentService := services.NewPaymentService(database.DB)
	premiumService := services.NewPremiumService(database.DB, cfg.Subscription)
	notificationService := services.NewNotificationService(database.DB, dispatcher, log, cfg.Scheduler.ReminderLeadDays)
	reportService := services.NewReportService(database.DB)

	handlers.Setup(cfg, paymentService, premiumService, notificationService, reportService)

	sched := scheduler.New(notificationService, paymentService, log)
	if err := sched.Start(cfg.Scheduler); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))
	r.Use(middleware.RequestID())

	// Public routes
	r.POST("/login", handlers.Login)
	r.POST("/admin/login", handlers.AdminLogin)
	r.POST("/register", handlers.Register)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes
	api := r.Group("/api")
	api.Use(middleware.JwtAuthMiddleware())
	{
		api.GET("/user/profile", handlers.GetProfile)
		api.PUT("/user/profile", handlers.UpdateProfile)

		api.POST("/properties", handlers.CreateProperty)
		api.GET("/properties", handlers.GetProperties)
		api.DELETE("/properties/:id", handlers.DeleteProperty)

		api.POST("/tenants", handlers.CreateTenant)
		api.GET("/tenants", handlers.GetTenants)
		api.DELETE("/tenants/:id", handlers.DeleteTenant)
		api.POST("/tenants/:id/payment", handlers.MarkTenantPayment)

		api.GET("/premium/prices", handlers.GetPremiumPrices)
		api.POST("/premium/request", handlers.CreatePremiumRequest)

		api.GET("/reports/monthly", handlers.GetMonthlyReport)
		api.GET("/reports/yearly", handlers.GetYearlyReport)
		api.GET("/reports/export", handlers.ExportExcel)

		// Admin-only
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", handlers.GetAllUsers)
			admin.GET("/users/:id", handlers.GetUserDetail)
			admin.POST("/users/:id/premium", handlers.ActivateUserPremium)

			admin.GET("/premium-requests", handlers.GetPendingPremiumRequests)
			admin.POST("/premium-requests/:id/approve", handlers.ApprovePremiumRequest)
			admin.POST("/premium-requests/:id/reject", handlers.RejectPremiumRequest)

			admin.GET("/stats", handlers.GetPlatformStats)
			admin.POST("/password", handlers.ChangeAdminPassword)

			admin.POST("/scans/reminders", handlers.TriggerReminderScan)
			admin.POST("/scans/overdue", handlers.TriggerOverdueScan)
			admin.POST("/billing-period", handlers.TriggerBillingReset)
		}
	}

	log.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
