package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"potensidesa/internal/config"
)

// NewMongo connects to the document database and returns the configured database handle.
// The caller owns the client and must Disconnect it on shutdown.
func NewMongo(ctx context.Context, c config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	if c.URI == "" || c.Database == "" {
		return nil, nil, fmt.Errorf("invalid mongo config: uri and database are required")
	}

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(c.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(cctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(c.Database), nil
}

// mongoIndexes lists the secondary indexes the dashboard queries rely on, keyed by collection.
var mongoIndexes = map[string][]mongo.IndexModel{
	"investments": {
		{Keys: bson.D{{Key: "created_at", Value: -1}}, Options: options.Index().SetName("created_at_desc")},
	},
	"locations": {
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("status_created_at")},
		{Keys: bson.D{{Key: "submitted_by", Value: 1}}, Options: options.Index().SetName("submitted_by")},
	},
	"desa": {
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("name")},
	},
}

// EnsureMongoIndexes creates the secondary indexes if missing. CreateMany is idempotent for identical specs.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	for col, models := range mongoIndexes {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", col, err)
		}
	}
	return nil
}
