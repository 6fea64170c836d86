package database

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/dailyquest/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/fx"
)

// NewMongo connects to MongoDB when MISSION_STORE=mongo and returns nil otherwise.
func NewMongo(lc fx.Lifecycle, cfg *config.Config) (*mongo.Database, error) {
	if !cfg.MongoEnabled() {
		return nil, nil
	}
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("MONGO_URI is required when MISSION_STORE=mongo")
	}

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetMaxPoolSize(100).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(60 * time.Second).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		log.Warn().Err(err).Msg("Could not verify MongoDB connection")
	} else {
		log.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := client.Disconnect(stopCtx); err != nil {
				log.Error().Err(err).Msg("Error disconnecting from MongoDB")
				return err
			}
			log.Info().Msg("Disconnected from MongoDB")
			return nil
		},
	})

	return client.Database(cfg.Mongo.Database), nil
}
