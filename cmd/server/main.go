package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/brightpaws/service-boarding/internal/application"
	"github.com/brightpaws/service-boarding/internal/config"
	rateDomain "github.com/brightpaws/service-boarding/internal/domain/rate"
	boardingEvents "github.com/brightpaws/service-boarding/internal/events"
	"github.com/brightpaws/service-boarding/internal/handler"
	"github.com/brightpaws/service-boarding/internal/pkg/auth"
	"github.com/brightpaws/service-boarding/internal/pkg/database"
	"github.com/brightpaws/service-boarding/internal/pkg/health"
	"github.com/brightpaws/service-boarding/internal/pkg/kafka"
	"github.com/brightpaws/service-boarding/internal/pkg/logger"
	"github.com/brightpaws/service-boarding/internal/pkg/middleware"
	"github.com/brightpaws/service-boarding/internal/repository"
	"github.com/brightpaws/service-boarding/internal/scheduler"
)

func main() {
	// Load .env in local development; a missing file is fine.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-boarding")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-boarding",
		zap.String("port", cfg.Port),
		zap.String("timezone", cfg.Timezone),
	)

	// Resolve the business time zone
	location, err := cfg.Location()
	if err != nil {
		log.Fatal("failed to load timezone", zap.Error(err))
	}

	// Connect to database
	db, err := database.Connect(cfg.PostgresConfig(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.BookingModel{},
			&repository.DogModel{},
			&repository.PhotoModel{},
			&repository.UserRateModel{},
			&repository.DefaultRateModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenDuration)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	dogRepo := repository.NewGormDogRepository(db)
	photoRepo := repository.NewGormPhotoRepository(db)
	rateRepo := repository.NewGormRateRepository(db)

	// Initialize rate resolver
	rateResolver := rateDomain.NewResolver(rateRepo)

	// Initialize application services
	bookingService := application.NewBookingService(
		bookingRepo,
		dogRepo,
		rateResolver,
		kafkaProducer,
		location,
		log,
	)
	dogService := application.NewDogService(dogRepo, log)
	photoService := application.NewPhotoService(photoRepo, dogService, log)

	// Initialize and start the calendar decision consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.Kafka.GroupPrefix + "boarding-service"
	calendarConsumer := boardingEvents.NewCalendarEventConsumer(
		cfg.Kafka.Brokers,
		groupID,
		bookingService,
		log,
	)
	defer func() { _ = calendarConsumer.Close() }()

	go func() {
		log.Info("starting calendar event consumer")
		if err := calendarConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("calendar event consumer error", zap.Error(err))
		}
	}()

	// Start the status sweeper
	sweeper := scheduler.NewStatusSweeper(bookingRepo, log)
	if err := sweeper.Start(cfg.SweepSchedule); err != nil {
		log.Fatal("failed to start status sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	dogHandler := handler.NewDogHandler(dogService, photoService)
	adminHandler := handler.NewAdminBookingHandler(bookingService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-boarding")
	healthHandler.RegisterRoutes(router)

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	dogHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-boarding...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-boarding stopped")
}
