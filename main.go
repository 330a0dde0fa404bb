// File: wezet/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wezet/config"
	"wezet/cron"
	"wezet/database"
	blockedRepo "wezet/database/repository/blockeddate"
	bookingRepo "wezet/database/repository/booking"
	bundleRepo "wezet/database/repository/bundle"
	directoryRepo "wezet/database/repository/directory"
	exceptionRepo "wezet/database/repository/exception"
	redemptionRepo "wezet/database/repository/redemption"
	ruleRepo "wezet/database/repository/rule"
	"wezet/handlers"
	"wezet/middleware"
	"wezet/routes"
	"wezet/services/availability"
	"wezet/services/booking"
	"wezet/services/notification"
	"wezet/services/tasks"
	"wezet/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	db := database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	rules := ruleRepo.NewMongoWeeklyRuleRepo(db)
	exceptions := exceptionRepo.NewMongoExceptionRepo(db)
	blocked := blockedRepo.NewMongoBlockedDateRepo(db)
	bookings := bookingRepo.NewMongoBookingRepo(db)
	bundles := bundleRepo.NewMongoBundlePurchaseRepo(db)
	codes := redemptionRepo.NewMongoRedemptionCodeRepo(db)
	directory := directoryRepo.NewMongoDirectoryRepo(db)

	// Confirmation delivery: tasks are queued on Redis and worked off by the
	// in-process asynq server.
	queueOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	queueClient := asynq.NewClient(queueOpts)
	defer queueClient.Close()
	dispatcher := tasks.NewAsynqDispatcher(queueClient)

	emailSender := notification.NewEmailConfirmationService(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUser,
		config.AppConfig.SMTPPass,
		config.AppConfig.EmailFrom,
		logger,
	)
	go cron.InitConfirmationWorker(emailSender)

	// services.
	resolver := &availability.DefaultSlotResolver{
		Rules:      rules,
		Exceptions: exceptions,
		Blocked:    blocked,
		Logger:     logger,
	}
	scheduleService := &availability.DefaultScheduleService{
		Rules:      rules,
		Exceptions: exceptions,
		Blocked:    blocked,
		Logger:     logger,
	}
	ledger := &booking.DefaultLedger{
		Bundles: bundles,
		Codes:   codes,
		Logger:  logger,
	}
	gateway := booking.NewStripeGateway(
		config.AppConfig.StripeSuccessURL,
		config.AppConfig.StripeCancelURL,
		logger,
	)
	bookingService := &booking.DefaultBookingService{
		Bookings:   bookings,
		Directory:  directory,
		Resolver:   resolver,
		Ledger:     ledger,
		Gateway:    gateway,
		Dispatcher: dispatcher,
		Sessions:   utils.GetCacheClient(),
		Logger:     logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Schedule:  scheduleService,
		Resolver:  resolver,
		Bookings:  bookingService,
		Directory: directory,
		Logger:    logger,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
