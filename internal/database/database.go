package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lostnfound/backend/internal/config"
)

const (
	LostReportsCollection  = "lost_reports"
	FoundReportsCollection = "found_reports"
)

// DB wraps the Mongo client and database handle. It is constructed once in
// main and passed explicitly to the stores.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, cfg *config.Config) (*DB, error) {
	dctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	start := time.Now()
	client, err := mongo.Connect(dctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	d := &DB{client: client, db: client.Database(cfg.MongoDBName)}

	if err := d.ensureIndexes(dctx); err != nil {
		slog.Warn("index creation warnings", "error", err)
	}

	slog.Info("database connected", "db", cfg.MongoDBName, "elapsed", time.Since(start).Round(time.Millisecond).String())
	return d, nil
}

func (d *DB) LostReports() *mongo.Collection {
	return d.db.Collection(LostReportsCollection)
}

func (d *DB) FoundReports() *mongo.Collection {
	return d.db.Collection(FoundReportsCollection)
}

func (d *DB) Ping(ctx context.Context) error {
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return d.client.Ping(pctx, nil)
}

func (d *DB) Disconnect(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

func (d *DB) ensureIndexes(ctx context.Context) error {
	lost := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "management_token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "reporter_email", Value: 1}}},
		{
			Keys:    bson.D{{Key: "description", Value: "text"}},
			Options: options.Index().SetName("description_text_index"),
		},
	}
	if _, err := d.LostReports().Indexes().CreateMany(ctx, lost); err != nil {
		return fmt.Errorf("lost_reports indexes: %w", err)
	}

	found := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "description", Value: "text"}},
			Options: options.Index().SetName("description_text_index"),
		},
	}
	if _, err := d.FoundReports().Indexes().CreateMany(ctx, found); err != nil {
		return fmt.Errorf("found_reports indexes: %w", err)
	}
	return nil
}
