package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zari/api/routes"
	"zari/docs"
	"zari/internal/jobs"
	"zari/internal/notifications"
	"zari/internal/shared/config"
	"zari/internal/shared/constants"
	"zari/internal/shared/database"
	"zari/internal/shared/middleware"
	"zari/pkg/cache"
	"zari/pkg/logger"
	"zari/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// @title Zari API
// @version 1.0
// @description Restaurant seat reservations with camera-based occupancy.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	appLogger := logger.NewWithWriter(os.Stdout, cfg.LogLevel, !cfg.IsDevelopment())
	if envErr != nil {
		appLogger.Info("No .env file found, using system environment variables")
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}
	appLogger.Info("starting zari", "version", Version, "build_time", BuildTime, "commit", GitCommit)

	db, err := database.InitDB(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Alerts travel through Kafka when enabled, otherwise straight into the inbox
	inbox := notifications.NewInbox(db.Redis, appLogger.WithComponent("alerts"))
	var publisher notifications.Publisher = notifications.NewInlinePublisher(inbox)
	var consumer *notifications.KafkaConsumer
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := notifications.NewKafkaPublisher(cfg.Kafka, appLogger.WithComponent("kafka"))
		if err != nil {
			appLogger.Error("Kafka publisher unavailable, delivering alerts inline", "error", err)
		} else {
			publisher = kafkaPublisher
			consumer, err = notifications.NewKafkaConsumer(cfg.Kafka, inbox, appLogger.WithComponent("kafka"))
			if err != nil {
				appLogger.Error("Kafka consumer unavailable", "error", err)
			}
		}
	}
	defer publisher.Close()

	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()
	if consumer != nil {
		consumer.Start(consumerCtx)
		defer func() {
			if err := consumer.Stop(); err != nil {
				appLogger.Error("Error stopping alert consumer", "error", err)
			}
		}()
	}

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.Redis, &ratelimit.Config{
			Enabled:             cfg.RateLimit.Enabled,
			WindowDuration:      cfg.RateLimit.WindowDuration,
			DefaultRequests:     cfg.RateLimit.DefaultRequests,
			PublicRequests:      cfg.RateLimit.PublicRequests,
			AuthRequests:        cfg.RateLimit.AuthRequests,
			ReservationRequests: cfg.RateLimit.ReservationRequests,
			BusinessRequests:    cfg.RateLimit.BusinessRequests,
			DetectionRequests:   cfg.RateLimit.DetectionRequests,
			WhitelistedIPs:      cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			"window", cfg.RateLimit.WindowDuration.String(),
			"default_requests", cfg.RateLimit.DefaultRequests,
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	appRouter := routes.NewRouter(cfg, db, publisher, appLogger)
	engine := setupEngine(cfg, appRouter, rateLimiter, appLogger)

	var locker *cache.Locker
	if !cfg.IsDevelopment() {
		locker = cache.NewLocker(db.Redis, constants.KEY_LOCK_PREFIX)
	}
	processor, err := jobs.NewProcessor(appRouter.Reservations(), appRouter.Cameras(), locker, jobs.Config{
		LifecycleInterval: cfg.Monitor.LifecycleInterval,
		CameraInterval:    cfg.Monitor.CameraInterval,
		CameraMonitor:     cfg.Monitor.Enabled,
	}, appLogger)
	if err != nil {
		appLogger.Error("failed to create job scheduler", "error", err)
		os.Exit(1)
	}
	processor.Start()
	defer func() {
		if err := processor.Shutdown(); err != nil {
			appLogger.Error("Error stopping background jobs", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			"address", cfg.GetServerAddress(),
			"health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port),
			"swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port),
			"version", cfg.APIVersion,
			"kafka", cfg.Kafka.Enabled,
			"rate_limiting", cfg.RateLimit.Enabled,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", "error", err)
	}

	appLogger.Info("Server exited gracefully")
}

func setupEngine(cfg *config.Config, appRouter *routes.Router, rateLimiter *ratelimit.RateLimiter, appLogger *logger.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestLogger(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter, appLogger.WithComponent("ratelimit")))
	}

	docs.SwaggerInfo.BasePath = cfg.GetAPIBasePath()
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	appRouter.SetupRoutes(engine)
	return engine
}
