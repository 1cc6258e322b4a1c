package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Database struct {
	cli      *mongo.Client
	db       *mongo.Database
	playback *mongo.Collection
	history  *mongo.Collection
	sets     *mongo.Collection
	kv       *mongo.Collection
}

const databaseTimeout = 40 * time.Second

// Connect creates database connection
func Connect(uri string) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), databaseTimeout)
	defer cancel()

	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to db failed: %w", err)
	}

	if err = cli.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("connect to db failed: %w", err)
	}

	database := cli.Database("vodcatalog")
	db := &Database{
		cli:      cli,
		db:       database,
		playback: database.Collection("playback"),
		history:  database.Collection("history"),
		sets:     database.Collection("sets"),
		kv:       database.Collection("kv"),
	}

	return db, nil
}
