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

	"github.com/gorilla/mux"

	"github.com/pandawok/pos/internal/adapter/logger"
	"github.com/pandawok/pos/internal/adapter/postgres"
	"github.com/pandawok/pos/internal/adapter/rabbitmq"
	"github.com/pandawok/pos/internal/app/checkout"
	"github.com/pandawok/pos/internal/app/inventory"
	"github.com/pandawok/pos/internal/app/kitchen"
	"github.com/pandawok/pos/internal/app/reporting"
	"github.com/pandawok/pos/internal/config"

	amqpAdapter "github.com/pandawok/pos/internal/adapter/amqp"
	httpAdapter "github.com/pandawok/pos/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "", "Service mode: pos-service, kitchen-display")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	ctx := context.Background()
	lgr := logger.New(*mode)

	switch *mode {
	case "pos-service":
		runPOSService(ctx, cfg, lgr)

	case "kitchen-display":
		runKitchenDisplay(ctx, cfg, lgr)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runPOSService(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	// Repositories
	orderRepo := postgres.NewOrderRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Messaging
	publisher := rabbitmq.NewPublisher(mqConn)

	// Services
	decrementEngine := inventory.NewEngine(catalogRepo, inventoryRepo, publisher, lgr)
	checkoutService := checkout.NewService(orderRepo, catalogRepo, decrementEngine, publisher, lgr)
	reportingService := reporting.NewService(reportRepo, inventoryRepo, lgr)
	kitchenService := kitchen.NewService(orderRepo, lgr)

	// HTTP handlers
	checkoutHandler := httpAdapter.NewCheckoutHandler(checkoutService, lgr)
	kitchenHandler := httpAdapter.NewKitchenHandler(kitchenService, lgr)
	reportHandler := httpAdapter.NewReportHandler(reportingService, lgr)

	router := mux.NewRouter()
	router.HandleFunc("/orders", checkoutHandler.CreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders/recent", kitchenHandler.ListRecent).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id:[0-9]+}/status", kitchenHandler.UpdateStatus).Methods(http.MethodPost)
	router.HandleFunc("/reports/interim", reportHandler.Interim).Methods(http.MethodGet)
	router.HandleFunc("/reports/close", reportHandler.Close).Methods(http.MethodPost)
	router.HandleFunc("/reports/sales", reportHandler.SalesByRecipe).Methods(http.MethodGet)
	router.HandleFunc("/reports/inventory-usage", reportHandler.InventoryUsage).Methods(http.MethodGet)
	router.HandleFunc("/reports/restock", reportHandler.Restock).Methods(http.MethodGet)

	handler := httpAdapter.LoggingMiddleware(lgr)(router)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("POS Service started on port %d", cfg.HTTP.Port), "startup", map[string]interface{}{
		"port": cfg.HTTP.Port,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down POS Service", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

func runKitchenDisplay(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	consumer := rabbitmq.NewConsumer(mqConn)
	displayHandler := amqpAdapter.NewDisplayHandler(lgr)

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	lgr.Info("service_started", "Kitchen Display started", "startup", nil)

	go func() {
		if err := consumer.ConsumeEvents(consumeCtx, displayHandler.HandleEvent); err != nil {
			lgr.Error("consumer_error", "Error consuming events", "runtime", nil, err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down Kitchen Display", "shutdown", nil)
}
