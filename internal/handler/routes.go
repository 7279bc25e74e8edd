package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"resi-be-svc/internal/middleware"
	"resi-be-svc/internal/service"
	"resi-be-svc/pkg/logger"
)

// SetupRoutes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	userService service.UserService,
	residentService service.ResidentService,
	paymentService service.PaymentService,
	gatewayService service.GatewayService,
	documentService service.DocumentService,
	notificationService service.NotificationService,
	dashboardService service.DashboardService,
	logger *logger.Logger,
) {
	// Initialize handlers
	authHandler := NewAuthHandler(authService, logger)
	userHandler := NewUserHandler(userService, notificationService, logger)
	adminHandler := NewAdminHandler(residentService, paymentService, notificationService, dashboardService, logger)
	paymentHandler := NewPaymentHandler(paymentService, gatewayService, logger)
	documentHandler := NewDocumentHandler(documentService, logger)
	notificationHandler := NewNotificationHandler(notificationService, logger)

	authenticated := middleware.Auth(authService)
	adminOnly := middleware.AdminOnly()

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// User routes
		users := v1.Group("/users", authenticated)
		{
			users.GET("/profile", userHandler.GetProfile)
			users.PUT("/profile", userHandler.UpdateProfile)
			users.PUT("/change-password", userHandler.ChangePassword)
		}

		// Admin routes
		admin := v1.Group("/admin", authenticated, adminOnly)
		{
			admin.GET("/residents", adminHandler.ListResidents)
			admin.GET("/residents/:id", adminHandler.GetResident)
			admin.PUT("/residents/:id/status", adminHandler.UpdateResidentStatus)
			admin.GET("/stats", adminHandler.GetStats)
			admin.POST("/create-admin", adminHandler.CreateAdmin)
			admin.POST("/create-payment", adminHandler.CreatePayment)
			admin.POST("/create-mass-payments", adminHandler.CreateMassPayments)
			admin.POST("/send-mass-notification", adminHandler.SendMassNotification)
			admin.GET("/payments-report", adminHandler.GetPaymentsReport)
			admin.GET("/payments-report/export", adminHandler.ExportPaymentsReport)
		}

		// Payment routes
		payments := v1.Group("/payments")
		{
			// Gateway webhook is signature-verified, not token-authenticated
			payments.POST("/webhook", paymentHandler.Webhook)

			payments.GET("/my-payments", authenticated, paymentHandler.GetMyPayments)
			payments.GET("/my-summary", authenticated, paymentHandler.GetMySummary)
			payments.GET("/pending-payments", authenticated, paymentHandler.GetPendingPayments)
			payments.POST("/mark-as-paid", authenticated, paymentHandler.MarkAsPaid)
			payments.POST("/create-payment-intent", authenticated, paymentHandler.CreatePaymentIntent)
			payments.POST("/confirm-payment", authenticated, paymentHandler.ConfirmPayment)

			payments.GET("", authenticated, adminOnly, paymentHandler.ListPayments)
			payments.GET("/stats", authenticated, adminOnly, paymentHandler.GetStats)
			payments.PUT("/:id/mark-paid", authenticated, adminOnly, paymentHandler.MarkPaid)
			payments.POST("/update-overdue", authenticated, adminOnly, paymentHandler.UpdateOverdue)
		}

		// Document routes
		documents := v1.Group("/documents", authenticated)
		{
			documents.GET("/my-documents", documentHandler.GetMyDocuments)
			documents.GET("", adminOnly, documentHandler.ListDocuments)
			documents.POST("/generate-water-invoice", adminOnly, documentHandler.GenerateWaterInvoice)
			documents.POST("/generate-maintenance-invoice", adminOnly, documentHandler.GenerateMaintenanceInvoice)
			documents.POST("/generate-receipt", adminOnly, documentHandler.GenerateReceipt)
			documents.GET("/download/:id", documentHandler.Download)
			documents.PUT("/:id/read", documentHandler.MarkRead)
		}

		// Notification routes
		notifications := v1.Group("/notifications", authenticated)
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}
	}
}

// HealthCheck reports service liveness
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service status"
// @Router /api/v1/health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Residential Community Backend Service",
	})
}
