package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/joho/godotenv/autoload"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/fintrack/scheme-engine/internal/channel"
	"github.com/fintrack/scheme-engine/internal/config"
	"github.com/fintrack/scheme-engine/internal/dispatch"
	"github.com/fintrack/scheme-engine/internal/handler"
	"github.com/fintrack/scheme-engine/internal/notify"
	"github.com/fintrack/scheme-engine/internal/repository"
	"github.com/fintrack/scheme-engine/internal/service"
	"github.com/fintrack/scheme-engine/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Initialize database
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	holderRepo := repository.NewHolderRepository(db)
	schemeRepo := repository.NewSchemeRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	eventLogRepo := repository.NewEventLogRepository(db)

	// Initialize notification pipeline
	policy := notify.NewPolicy(cfg.Business.GraceWeeks, cfg.Business.CurrencySymbol, cfg.Business.AppName)
	dispatcher := dispatch.New(
		holderRepo, schemeRepo, paymentRepo, eventLogRepo,
		initChannel(cfg, logger),
		policy,
		dispatch.Config{
			DispatchTimeout: cfg.GetDispatchTimeout(),
			TickConcurrency: cfg.Business.TickConcurrency,
		},
		logger,
	)

	progressService := service.NewProgressService(
		holderRepo, schemeRepo, paymentRepo,
		redisClient, cfg.GetProgressCacheTTL(), logger,
	)

	holderHandler := handler.NewHolderHandler(holderRepo, schemeRepo, eventLogRepo, cfg.Business.SchemeDurationWeeks)
	paymentHandler := handler.NewPaymentHandler(paymentRepo, dispatcher, progressService)
	progressHandler := handler.NewProgressHandler(progressService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(holderHandler, paymentHandler, progressHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// initChannel picks the WhatsApp gateway when configured, otherwise the
// log-only channel so development runs never hit a real gateway.
func initChannel(cfg *config.Config, logger *slog.Logger) channel.Channel {
	if cfg.Channel.WhatsAppURL != "" {
		return channel.NewWhatsAppChannel(cfg.Channel.WhatsAppURL, cfg.Channel.WhatsAppToken, cfg.GetDispatchTimeout())
	}
	return channel.NewLogChannel(logger)
}

func setupRoutes(holderHandler *handler.HolderHandler, paymentHandler *handler.PaymentHandler, progressHandler *handler.ProgressHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/holders", holderHandler.CreateHolder).Methods("POST")
	api.HandleFunc("/holders/{holderId}", holderHandler.UpdateHolder).Methods("PUT")
	api.HandleFunc("/payments", paymentHandler.CreatePayment).Methods("POST")
	api.HandleFunc("/holders/{holderId}/progress", progressHandler.GetProgress).Methods("GET")

	return router
}
