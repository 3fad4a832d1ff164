package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/hotel-reservation/cache"
	"github.com/yeremiapane/hotel-reservation/config"
	"github.com/yeremiapane/hotel-reservation/database"
	"github.com/yeremiapane/hotel-reservation/events"
	"github.com/yeremiapane/hotel-reservation/middlewares"
	"github.com/yeremiapane/hotel-reservation/router"
	"github.com/yeremiapane/hotel-reservation/services"
	"github.com/yeremiapane/hotel-reservation/utils"
)

func main() {
	utils.InitLogger()

	// Load .env
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	cfg := config.Load()
	utils.SetLogLevel(cfg.LogLevel)
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	hub := events.NewHub()
	publishers := events.Multi{hub}
	opts := []services.Option{services.WithProducerName(cfg.ServiceName)}
	checks := map[string]router.HealthCheck{}

	var producer *events.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, 1024)
		producer.Start(context.Background())
		publishers = append(publishers, producer)
		utils.InfoLogger.Printf("Publishing reservation events to Kafka topic %s (%v)", cfg.KafkaTopic, cfg.KafkaBrokers)
	}
	opts = append(opts, services.WithPublisher(publishers))

	if cfg.RedisAddr != "" {
		rdb := cache.New(cfg.RedisAddr)
		defer rdb.Close()
		store := cache.NewIdempotencyStore(rdb)
		opts = append(opts, services.WithIdempotencyStore(store))
		checks["redis"] = store.Ping
		utils.InfoLogger.Printf("Idempotency keys stored in Redis at %s", cfg.RedisAddr)
	}

	service := services.NewReservationService(db, opts...)

	limiter := middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stopCleanup := make(chan struct{})
	go limiter.Run(stopCleanup, time.Minute)

	r := router.SetupRouter(router.Dependencies{
		DB:          db,
		Service:     service,
		Hub:         hub,
		Publisher:   publishers,
		Limiter:     limiter,
		CORSOrigin:  cfg.CORSOrigin,
		ServiceName: cfg.ServiceName,
		Checks:      checks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server forced to shutdown: %v", err)
	}
	close(stopCleanup)

	if producer != nil {
		producer.Close()
		producer.WaitClosed()
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	utils.InfoLogger.Println("Server exited")
}
