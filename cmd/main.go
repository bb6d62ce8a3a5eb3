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

	"github.com/joy095/shareit/config"
	"github.com/joy095/shareit/config/db"
	"github.com/joy095/shareit/config/redis"
	"github.com/joy095/shareit/logger"
	"github.com/joy095/shareit/middlewares/cors"
	logger_middleware "github.com/joy095/shareit/middlewares/logger"
	"github.com/joy095/shareit/middlewares/metrics"
	"github.com/joy095/shareit/models/booking_models"
	"github.com/joy095/shareit/models/catalog_models"
	"github.com/joy095/shareit/models/shared_models"
	"github.com/joy095/shareit/routes"
	"github.com/joy095/shareit/services/booking_service"
	"github.com/joy095/shareit/services/item_service"
	"github.com/joy095/shareit/utils"
	"github.com/joy095/shareit/utils/locks"
)

func init() {
	// .env may carry LOG_LEVEL and LOG_FILE.
	config.LoadEnv()

	logger.InitLoggers()
}

func main() {
	cfg := config.Load()
	shared_models.Location = cfg.Location

	if err := utils.RegisterValidators(); err != nil {
		logger.ErrorLogger.Fatalf("Failed to register validators: %v", err)
	}

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}

	var locker locks.Locker
	if client, err := redis.GetRedisClient(ctx); err != nil {
		logger.WarnLogger.Warnf("Redis unavailable, approvals are serialized in-process only: %v", err)
		locker = locks.NewLocalLocker()
	} else {
		defer redis.CloseRedis()
		locker = locks.NewRedisLocker(client, "shareit:lock:", cfg.LockTTL)
	}

	clock := utils.SystemClock{Location: cfg.Location}
	directory := catalog_models.NewPgDirectory(pool)
	store := booking_models.NewPgStore(pool)

	bookingService := booking_service.NewService(store, directory, locker, clock)
	itemService := item_service.NewService(directory, store, clock)

	m := metrics.New()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger_middleware.GinLogger())
	r.Use(cors.CorsMiddleware(cfg.CORSOrigins))
	r.Use(m.Middleware())

	routes.RegisterRoutes(r, bookingService, itemService, m, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoLogger.Infof("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorLogger.Fatalf("Server failed to listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.InfoLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.InfoLogger.Info("Server exited gracefully.")
}
