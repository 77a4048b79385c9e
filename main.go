package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/server"
	"storefront/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
	log.Info().Msg("Server gracefully stopped")
}

// setupLogging applies level to the global logger, falling back to info.
func setupLogging(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	return lvl
}

// backends holds the external connections the app runs on.
type backends struct {
	db    *gorm.DB
	redis *redis.Client
	mq    *rabbitmq.Client
}

// openBackends connects to the database and to the optional cache and broker.
func openBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	b := &backends{db: db}

	if cfg.RedisAddr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := b.redis.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unreachable, product cache will miss")
		}
	}

	if cfg.RabbitMQURL != "" {
		b.mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			b.close()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
	}
	return b, nil
}

func (b *backends) close() {
	if b.mq != nil {
		if err := b.mq.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing RabbitMQ connection")
		}
	}
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing Redis client")
		}
	}
	if sqlDB, err := b.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// buildApp creates the HTTP application on top of b.
func buildApp(cfg *config.Config, b *backends) *fiber.App {
	deps := server.Deps{
		Config:    cfg,
		DB:        b.db,
		Redis:     b.redis,
		AccessLog: true,
	}
	// A nil *rabbitmq.Client must stay a nil interface.
	if b.mq != nil {
		deps.Publisher = b.mq
	}
	return server.New(deps)
}

// run serves HTTP and consumes order events until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	b, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	app := buildApp(cfg, b)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.AppPort).Msg("Starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if b.mq != nil {
		g.Go(func() error {
			log.Info().Str("queue", rabbitmq.OrderPlacedQueue).Msg("Starting RabbitMQ consumer for orders")
			err := b.mq.ConsumeOrderEvents(gctx, rabbitmq.LogOrderPlaced)
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("order consumer failed: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")
		return app.Shutdown()
	})

	return g.Wait()
}
