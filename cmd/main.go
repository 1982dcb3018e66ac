package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/adapter/postgres"
	"github.com/amaryllis-studio/florist/internal/adapter/rabbitmq"
	"github.com/amaryllis-studio/florist/internal/app/auth"
	"github.com/amaryllis-studio/florist/internal/app/catalog"
	"github.com/amaryllis-studio/florist/internal/app/order"
	"github.com/amaryllis-studio/florist/internal/app/settings"
	"github.com/amaryllis-studio/florist/internal/app/upload"
	"github.com/amaryllis-studio/florist/internal/config"
	"github.com/amaryllis-studio/florist/migrations"

	amqpAdapter "github.com/amaryllis-studio/florist/internal/adapter/amqp"
	httpAdapter "github.com/amaryllis-studio/florist/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "", "Service mode: api-server, notification-subscriber")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	ctx := context.Background()

	lgr := logger.New(*mode)

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	switch *mode {
	case "api-server":
		runAPIServer(ctx, cfg, db, mqConn, lgr)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, db, mqConn, lgr)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runAPIServer(ctx context.Context, cfg *config.Config, db postgres.DB, mqConn rabbitmq.Connection, lgr logger.Logger) {
	if err := migrations.Run(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	orderRepo := postgres.NewOrderRepository(db)
	bouquetRepo := postgres.NewBouquetRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	publisher := rabbitmq.NewPublisher(mqConn, lgr)

	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour

	settingsService := settings.NewService(settingsRepo, lgr)
	orderService := order.NewService(orderRepo, bouquetRepo, settingsService, publisher, lgr)
	catalogService := catalog.NewService(bouquetRepo, lgr)
	authService := auth.NewService(adminRepo, cfg.Auth.JWTSecret, tokenTTL, lgr)
	uploadService := upload.NewService(cfg.Upload.Dir, cfg.Upload.PublicPath, cfg.Upload.MaxFileBytes, lgr)

	if err := authService.EnsureSeedAdmin(ctx, cfg.Auth.SeedAdminUsername, cfg.Auth.SeedAdminPassword); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	orderHandler := httpAdapter.NewOrderHandler(orderService, lgr)
	bouquetHandler := httpAdapter.NewBouquetHandler(catalogService, lgr)
	settingsHandler := httpAdapter.NewSettingsHandler(settingsService, lgr)
	authHandler := httpAdapter.NewAuthHandler(authService, tokenTTL, lgr)
	uploadHandler := httpAdapter.NewUploadHandler(uploadService, cfg.Upload.MaxFileBytes, lgr)

	requireAuth := httpAdapter.RequireAuth(authService)
	optionalAuth := httpAdapter.OptionalAuth(authService)

	mux := http.NewServeMux()

	// Public storefront endpoints.
	mux.HandleFunc("POST /api/orders", orderHandler.CreateOrder)
	mux.Handle("GET /api/bouquets", optionalAuth(http.HandlerFunc(bouquetHandler.ListBouquets)))
	mux.HandleFunc("GET /api/bouquets/{id}", bouquetHandler.GetBouquet)

	// Admin endpoints.
	mux.Handle("GET /api/orders", requireAuth(http.HandlerFunc(orderHandler.ListOrders)))
	mux.Handle("GET /api/orders/{id}", requireAuth(http.HandlerFunc(orderHandler.GetOrder)))
	mux.Handle("PUT /api/orders/{id}/status", requireAuth(http.HandlerFunc(orderHandler.UpdateStatus)))
	mux.Handle("POST /api/bouquets", requireAuth(http.HandlerFunc(bouquetHandler.CreateBouquet)))
	mux.Handle("PUT /api/bouquets/{id}", requireAuth(http.HandlerFunc(bouquetHandler.UpdateBouquet)))
	mux.Handle("DELETE /api/bouquets/{id}", requireAuth(http.HandlerFunc(bouquetHandler.DeleteBouquet)))
	mux.Handle("GET /api/settings", requireAuth(http.HandlerFunc(settingsHandler.GetSettings)))
	mux.Handle("PUT /api/settings", requireAuth(http.HandlerFunc(settingsHandler.PutSetting)))
	mux.Handle("POST /api/upload", requireAuth(http.HandlerFunc(uploadHandler.Upload)))
	mux.Handle("POST /api/upload/multiple", requireAuth(http.HandlerFunc(uploadHandler.UploadMultiple)))

	// Session endpoints.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/check", authHandler.Check)

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"ok"}`))
	})

	// Uploaded images are served directly from disk.
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir))))

	handler := httpAdapter.LoggingMiddleware(lgr)(mux)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("API server started on port %d", cfg.HTTP.Port), "startup", map[string]interface{}{
		"port": cfg.HTTP.Port,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "shutting down API server", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "server error", "runtime", nil, err)
	}
}

func runNotificationSubscriber(ctx context.Context, db postgres.DB, mqConn rabbitmq.Connection, lgr logger.Logger) {
	settingsRepo := postgres.NewSettingsRepository(db)
	settingsService := settings.NewService(settingsRepo, lgr)

	consumer := rabbitmq.NewConsumer(mqConn, lgr)
	notificationHandler := amqpAdapter.NewNotificationHandler(settingsService, lgr)

	lgr.Info("service_started", "notification subscriber started", "startup", nil)

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := consumer.ConsumeNotifications(consumeCtx, notificationHandler.HandleNotification); err != nil && consumeCtx.Err() == nil {
			lgr.Error("consumer_error", "error consuming notifications", "runtime", nil, err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "shutting down notification subscriber", "shutdown", nil)
}
