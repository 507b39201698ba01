package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Adilet2002/item-service/internal/config"
	"github.com/Adilet2002/item-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes the Mongo connection and verifies it with a ping.
func ConnectDB(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	logger.Log.WithField("db", cfg.MongoDB).Info("MongoDB connection established")
	return client.Database(cfg.MongoDB), nil
}

// EnsureIndexes creates the indexes the schemas rely on. The unique index on
// category name is what turns a duplicate create into a storage-level error.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("categories").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create category name index: %v", err)
	}

	_, err = db.Collection("items").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create item category index: %v", err)
	}

	_, err = db.Collection("reviews").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "item", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create review item index: %v", err)
	}

	return nil
}
