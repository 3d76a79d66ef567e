package database

import (
	"context"
	"fmt"
	"time"

	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewDatabase connects to MongoDB and returns a handle to the configured database.
func NewDatabase(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB is not reachable: %w", err)
	}

	log.Info().Str("uri", cfg.Mongo.URI).Str("db", cfg.Mongo.DBName).Msg("Connected to MongoDB")
	return client.Database(cfg.Mongo.DBName), nil
}

// EnsureIndexes creates the unique indexes the insert paths rely on.
// Signup and survey submission are conditional inserts: a duplicate key
// error from these indexes is what surfaces as "already exists".
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users.email index: %w", err)
	}

	_, err = db.Collection("history").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create history.userId index: %w", err)
	}

	log.Info().Msg("Database indexes ensured")
	return nil
}
