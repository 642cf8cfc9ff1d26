package app

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adanyl0v/go-task-planner/internal/config"
)

// MustConnectMongo opens and pings the MongoDB client. The client is
// returned to the caller instead of being held as a package global so
// its lifecycle stays explicit: main owns it and defers DisconnectMongo.
func MustConnectMongo() *mongo.Client {
	cfg := config.Global().Mongo

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout))
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to mongodb")
		panic(err)
	}

	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancelPing()

	err = client.Ping(pingCtx, nil)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping mongodb")
		panic(err)
	}
	globalLogger.Info().
		Str("database", cfg.Database).
		Msg("connected to mongodb")

	return client
}

func DisconnectMongo(client *mongo.Client) {
	err := client.Disconnect(context.Background())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to disconnect from mongodb")
		return
	}
	globalLogger.Info().Msg("disconnected from mongodb")
}
