package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockroom/internal/config"
	"stockroom/internal/database"
	"stockroom/internal/server"
	"stockroom/internal/services"
	"stockroom/pkg/logger"
	"stockroom/pkg/rabbitmq"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{ServiceName: "stockroom"}).Fatal(context.Background(), "config.load_failed", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: cfg.ServiceName,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"service_kind": cfg.ServiceKind,
		"store_driver": cfg.StoreDriver,
	})

	store, err := database.Open(ctx, cfg, logg)
	if err != nil {
		logg.Fatal(ctx, "store.open_failed", err)
	}

	var events services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.EventsEnabled() {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			// Events are best effort; the API keeps serving without them.
			logg.Warn(ctx, "events.disabled", err)
		} else {
			events = mqClient
			startEventConsumer(ctx, logg, mqClient)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := server.Deps{Store: store, Log: logg, Registry: registry}
	if cfg.ServesUsers() {
		deps.Users = services.NewUserService(store.Users, events, logg)
	}
	if cfg.ServesProducts() {
		deps.Products = services.NewProductService(store.Products, events, logg)
	}
	app := server.New(cfg, deps)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logg.Info(logg.WithField(ctx, "addr", cfg.AppPort), "server.starting")
		if err := app.Listen(cfg.AppPort); err != nil {
			logg.Fatal(ctx, "server.listen_failed", err)
		}
	}()

	<-quit
	logg.Info(ctx, "server.shutting_down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logg.Error(ctx, "server.shutdown_failed", err)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		logg.Error(ctx, "store.close_failed", err)
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			logg.Error(ctx, "events.close_failed", err)
		}
	}

	logg.Info(ctx, "server.stopped")
}

// startEventConsumer logs every record event published by this process.
func startEventConsumer(ctx context.Context, logg *logger.Logger, mqClient *rabbitmq.Client) {
	handler := func(msg amqp.Delivery) error {
		var event rabbitmq.Event
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return err
		}
		logg.Info(logg.WithFields(ctx, map[string]any{
			"event":       event.Type,
			"occurred_at": event.OccurredAt,
			"tag":         msg.DeliveryTag,
		}), "event.received")
		return nil
	}
	onError := func(tag uint64, err error) {
		logg.Warn(logg.WithField(ctx, "tag", tag), "event.rejected", err)
	}

	if err := mqClient.Consume(handler, onError); err != nil {
		logg.Warn(ctx, "events.consumer_failed", err)
		return
	}
	logg.Info(ctx, "events.consumer_started")
}
