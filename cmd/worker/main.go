package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/capsule/pkg/app"
	"github.com/ghuser/capsule/pkg/cache"
	"github.com/ghuser/capsule/pkg/config"
	"github.com/ghuser/capsule/pkg/database"
	"github.com/ghuser/capsule/pkg/events"
	"github.com/ghuser/capsule/pkg/logger"
	"github.com/ghuser/capsule/pkg/objstore"
	"github.com/ghuser/capsule/pkg/telemetry"
	wardrobeEvents "github.com/ghuser/capsule/services/wardrobe/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	slog.SetDefault(log.ToSlog())

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	storage, err := objstore.New(cfg)
	if err != nil {
		log.Error("failed to setup object storage", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("object storage client ready", "bucket", cfg.S3Bucket)

	appConfig := &app.Application{
		Cfg:      cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Storage:  storage,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	grants := cache.NewGrantCache(a.Redis)

	subscriptions := []struct {
		topic   string
		handler func(context.Context, *message.Message) error
	}{
		{wardrobeEvents.TopicItemCreated, handleItemCreated(a, grants)},
		{wardrobeEvents.TopicItemDeleted, handleItemDeleted(a, grants)},
	}

	topics := make([]string, 0, len(subscriptions))
	for _, sub := range subscriptions {
		errCh, err := a.EventBus.Subscribe(ctx, sub.topic, sub.handler)
		if err != nil {
			return err
		}
		topics = append(topics, sub.topic)

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(sub.topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleItemCreated returns a handler for wardrobe.item.created events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Pre-signs download grants for both images so the first wardrobe render
// after creation is served from cache.
func handleItemCreated(a *app.Application, grants *cache.GrantCache) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt wardrobeEvents.ItemCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		for _, storedURL := range []string{evt.ImageURLFront, evt.ImageURLBack} {
			key, err := a.Storage.ParseKey(storedURL)
			if err != nil {
				a.Logger.WarnContext(ctx, "skipping grant warm for unrecognized URL",
					"item_id", evt.ItemID, "url", storedURL, "error", err)
				continue
			}
			signed, err := a.Storage.PresignDownload(ctx, storedURL, objstore.DownloadGrantTTL)
			if err != nil {
				// Grant warming is best-effort; log but do not fail the handler.
				a.Logger.WarnContext(ctx, "grant warm failed for item.created",
					"item_id", evt.ItemID, "key", key, "error", err)
				continue
			}
			if err := grants.Set(ctx, key, signed); err != nil {
				a.Logger.WarnContext(ctx, "grant cache write failed",
					"item_id", evt.ItemID, "key", key, "error", err)
			}
		}

		a.Logger.InfoContext(ctx, "download grants warmed",
			"item_id", evt.ItemID, "user_id", evt.UserID)
		return nil
	}
}

// handleItemDeleted returns a handler for wardrobe.item.deleted events.
// Evicts cached download grants so deleted images stop being served.
func handleItemDeleted(a *app.Application, grants *cache.GrantCache) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt wardrobeEvents.ItemDeletedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		for _, storedURL := range []string{evt.ImageURLFront, evt.ImageURLBack} {
			key, err := a.Storage.ParseKey(storedURL)
			if err != nil {
				a.Logger.WarnContext(ctx, "skipping grant eviction for unrecognized URL",
					"item_id", evt.ItemID, "url", storedURL, "error", err)
				continue
			}
			if err := grants.Delete(ctx, key); err != nil && !errors.Is(err, redis.Nil) {
				a.Logger.WarnContext(ctx, "grant eviction failed",
					"item_id", evt.ItemID, "key", key, "error", err)
			}
		}

		a.Logger.InfoContext(ctx, "download grants evicted",
			"item_id", evt.ItemID, "user_id", evt.UserID)
		return nil
	}
}
