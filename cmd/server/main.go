package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"resi-be-svc/docs"
	"resi-be-svc/internal/config"
	"resi-be-svc/internal/database"
	"resi-be-svc/internal/handler"
	"resi-be-svc/internal/middleware"
	"resi-be-svc/internal/repository"
	"resi-be-svc/internal/scheduler"
	"resi-be-svc/internal/service"
	"resi-be-svc/pkg/logger"
)

// @title Residential Community Backend Service API
// @version 1.0
// @description RESTful API for resident registry, billing, documents and notifications
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "Residential Community Backend Service API"
	docs.SwaggerInfo.Description = "RESTful API for resident registry, billing, documents and notifications"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting Residential Community Backend Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	residentRepo := repository.NewResidentRepository(db.DB)
	paymentRepo := repository.NewPaymentRepository(db.DB)
	documentRepo := repository.NewDocumentRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)
	sweepLogRepo := repository.NewSweepLogRepository(db.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, residentRepo, cfg.JWT, appLogger)
	userService := service.NewUserService(userRepo, residentRepo, appLogger)
	residentService := service.NewResidentService(residentRepo, userRepo, appLogger)
	paymentService := service.NewPaymentService(paymentRepo, residentRepo, notificationRepo, appLogger)
	stripeService := service.NewStripeService(cfg.Stripe, appLogger)
	gatewayService := service.NewGatewayService(paymentRepo, notificationRepo, stripeService, appLogger)
	documentService := service.NewDocumentService(documentRepo, residentRepo, paymentRepo, notificationRepo, cfg.Upload, appLogger)
	notificationService := service.NewNotificationService(notificationRepo, residentRepo, appLogger)
	dashboardService := service.NewDashboardService(residentRepo, userRepo, paymentRepo, documentRepo, notificationRepo, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())

	// Setup routes
	handler.SetupRoutes(router, authService, userService, residentService, paymentService, gatewayService, documentService, notificationService, dashboardService, appLogger)

	// Start overdue sweep scheduler when enabled
	var sweepScheduler *scheduler.SweepScheduler
	if cfg.Scheduler.SweepEnabled {
		sweepScheduler = scheduler.NewSweepScheduler(paymentService, sweepLogRepo, appLogger, cfg.Scheduler.SweepCronExpression)
		if err := sweepScheduler.Start(); err != nil {
			appLogger.WithField("error", err).Fatal("Failed to start overdue sweep scheduler")
		}
	}

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	appLogger.WithField("port", cfg.Server.Port).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop the scheduler before draining requests
	if sweepScheduler != nil {
		sweepScheduler.Stop()
	}

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Fatal("Server forced to shutdown")
	}

	// Close database connection
	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}
