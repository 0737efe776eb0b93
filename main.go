// File: turnia/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"turnia/config"
	"turnia/cron"
	"turnia/database"
	bookingRepoPkg "turnia/database/repository/booking"
	professionalRepoPkg "turnia/database/repository/professional"
	userRepoPkg "turnia/database/repository/user"
	"turnia/handlers"
	"turnia/middleware"
	"turnia/routes"
	"turnia/services/alerts"
	"turnia/services/booking"
	"turnia/services/notification"
	"turnia/services/payment"
	"turnia/services/professional"
	"turnia/services/tasks"
	"turnia/services/user"
	"turnia/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	utils.StartHealthMonitor(
		map[string]*redis.Client{
			"cache": utils.GetCacheClient(),
			"auth":  utils.GetAuthCacheClient(),
		},
		database.MongoClient,
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	professionalRepo := professionalRepoPkg.NewMongoProfessionalRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}
	professionalService := &professional.DefaultProfessionalService{
		Repo:    professionalRepo,
		Storage: cloudinaryStorageService,
	}
	notificationService := &notification.DefaultNotificationService{
		Users:         userRepo,
		Professionals: professionalRepo,
	}

	alertHub := alerts.NewHub(logger)
	checkoutService := payment.NewStripeCheckoutService(logger)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJobQueueDB,
	})
	defer asynqClient.Close()

	bookingService := &booking.DefaultBookingService{
		Repo:          bookingRepo,
		Users:         userRepo,
		Professionals: professionalRepo,
		Checkout:      checkoutService,
		Alerts:        alertHub,
		Notify:        notificationService,
		Jobs:          tasks.NewAsynqScheduler(asynqClient),
		Logger:        logger,
	}

	// Background worker for meeting expiry and reminders.
	cron.InitWorker(bookingService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:         userRepo,
		ProfessionalRepo: professionalRepo,

		Users:         &handlers.UserHandler{UserService: userService},
		Professionals: &handlers.ProfessionalHandler{ProfessionalService: professionalService},
		Bookings:      &handlers.BookingHandler{BookingService: bookingService},
		Payments: &handlers.PaymentHandler{
			Checkout:       checkoutService,
			BookingService: bookingService,
		},
		Alerts: &handlers.AlertsHandler{Hub: alertHub},
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
