package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mp-classroom/classroom-gateway/internal/backend"
	"github.com/mp-classroom/classroom-gateway/internal/config"
	"github.com/mp-classroom/classroom-gateway/internal/events"
	"github.com/mp-classroom/classroom-gateway/internal/handlers"
	"github.com/mp-classroom/classroom-gateway/internal/session"
	"github.com/mp-classroom/classroom-gateway/internal/token"
	"github.com/mp-classroom/classroom-gateway/internal/utils"
	"github.com/mp-classroom/classroom-gateway/internal/validator"
	"github.com/mp-classroom/classroom-gateway/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Redis is optional: without it the gateway refetches the session user
	// from the backend per request instead of caching it.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}

	sessions := session.NewStore(redisClient, cfg.SessionTTL)
	carrier := token.NewCarrier(cfg.CookieName, int(cfg.SessionTTL.Seconds()), cfg.Environment == "production")
	client := backend.NewClient(cfg.BackendBaseURL)
	validate := validator.New()

	bus := events.NewBus(slogLogger)
	auditCtx, auditCancel := context.WithCancel(context.Background())
	defer auditCancel()
	if err := bus.RunAuditLog(auditCtx, slogLogger); err != nil {
		log.Fatalf("Failed to start audit log: %v", err)
	}

	handlerManager := handlers.NewHandlerManager(client, sessions, carrier, validate, bus, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "backend", cfg.BackendBaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	auditCancel()
	if err := bus.Close(); err != nil {
		log.Printf("Failed to close event bus: %v", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
