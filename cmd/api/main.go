package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reviewly/api/internal/config"
	"github.com/reviewly/api/internal/server"
	"github.com/reviewly/api/internal/telemetry"
)

// setupTimeout bounds index creation and the Redis probe once Mongo is connected.
const setupTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("api stopped")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	log.Logger = cfg.Logger
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.OTelEnabled {
		otelShutdown, err := telemetry.SetupOTelSDK(context.Background(), telemetry.Options{})
		if err != nil {
			return fmt.Errorf("opentelemetry setup: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(ctx); err != nil {
				log.Warn().Err(err).Msg("opentelemetry shutdown")
			}
		}()
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancelConnect()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}

	setupCtx, cancelSetup := context.WithTimeout(context.Background(), setupTimeout)
	defer cancelSetup()

	app, err := server.New(setupCtx, cfg, client)
	if err != nil {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
		return fmt.Errorf("server setup: %w", err)
	}
	return app.Run()
}
