package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hostlink-ma/hostlink-services/api/internal/config"
	"github.com/hostlink-ma/hostlink-services/api/internal/logging"
	"github.com/hostlink-ma/hostlink-services/api/internal/server"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	app, err := server.New(cfg, client, logger)
	if err != nil {
		logger.Error("failed to build server", "error", err)
		_ = client.Disconnect(context.Background())
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
