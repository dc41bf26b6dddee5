package main

import (
	"context"
	"log"
	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"techpro-backoffice/config"
	routes "techpro-backoffice/http"
	"techpro-backoffice/http/handlers"
	"techpro-backoffice/logger"
	"techpro-backoffice/scheduling"
	"techpro-backoffice/services"
	"techpro-backoffice/storage"
)

func main() {
	// Load configuration
	config.LoadConfig()

	lg := logger.Default()

	// Initialize Kafka producer (non-fatal)
	services.InitProducer()

	// Open the JSON stores
	stores := storage.NewStores(config.AppConfig.DataDir)

	mailer := services.NewMailer(lg)
	paymentSvc := services.NewPaymentService(stores.Students, stores.Courses)

	// Setup routes
	routes.SetupRoutes(routes.Services{
		Counselors:    handlers.NewCounselorService(stores.Counselors, lg),
		Bookings:      handlers.NewBookingService(stores.Bookings, stores.Counselors, mailer, lg),
		Students:      handlers.NewStudentService(stores.Students, lg),
		Trainers:      handlers.NewTrainerService(stores.Trainers, lg),
		Courses:       handlers.NewCourseService(stores.Courses, lg),
		Payments:      handlers.NewPaymentHandler(stores.Payments, stores.Students, paymentSvc, mailer, lg),
		Auth:          handlers.NewAuthService(stores.Users, stores.Admins, mailer, lg),
		Notifications: handlers.NewNotificationService(stores.Notifications, lg),
		Permissions:   handlers.NewPermissionService(stores.Permissions, lg),
		PageConfigs:   handlers.NewPageConfigService(stores.PageConfigs, lg),
	})

	// Start the session reminder sweep
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scanner := scheduling.NewScanner(
		stores.Bookings,
		mailer,
		lg,
		config.AppConfig.ReminderInterval,
		scheduling.Window{
			Min: config.AppConfig.ReminderWindowMin,
			Max: config.AppConfig.ReminderWindowMax,
		},
		nil,
	)
	scanner.Start(ctx)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting on %s", config.AppConfig.ServerAddr)
		log.Fatal(netHttp.ListenAndServe(config.AppConfig.ServerAddr, nil))
	}()

	// Wait for shutdown signal
	<-sigChan
	logger.Info("Shutdown signal received, stopping reminder scanner...")
	scanner.Stop()

	// Close Kafka producer gracefully
	if err := services.CloseProducer(); err != nil {
		logger.Error("Error closing Kafka producer: %v", err)
	}

	logger.Info("Server shutdown complete")
}
