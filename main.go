package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-delivery/config"
	"food-delivery/internal/analytics"
	httpapi "food-delivery/internal/api/http"
	"food-delivery/internal/service"
	"food-delivery/internal/storage"
)

const orderEventsTopic = "order-events"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "food-delivery")

	db, err := config.InitPostgres()
	if err != nil {
		logger.Error("init postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := config.InitRedis(context.Background())
	if err != nil {
		logger.Error("init redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	kafkaWriter := config.NewKafkaWriter(orderEventsTopic)
	defer kafkaWriter.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		logger.Error("ensure schema", "error", err)
		os.Exit(1)
	}

	statusCache := storage.NewStatusCache(rdb, 24*time.Hour)
	publisher := storage.NewKafkaPublisher(kafkaWriter)
	qrGen := service.DefaultQRGenerator{BaseURL: config.EnvOr("PUBLIC_BASE_URL", "http://localhost:8080")}

	restaurantSvc := service.NewRestaurantService(repo, logger)
	mealSvc := service.NewMealService(repo, logger)
	orderSvc := service.NewOrderService(repo, statusCache, publisher, qrGen, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kafkaReader := config.NewKafkaReader(orderEventsTopic, "analytics")
	defer kafkaReader.Close()
	consumer := analytics.NewConsumer(kafkaReader, analytics.NewStore(rdb), logger)
	go consumer.Start(ctx)

	handler := httpapi.NewHandler(restaurantSvc, mealSvc, orderSvc)
	router := httpapi.NewRouter(handler)

	addr := config.EnvOr("HTTP_ADDR", ":8080")
	if err := httpapi.StartServer(addr, router, logger); err != nil {
		logger.Error("http server", "error", err)
		os.Exit(1)
	}
}
