package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Persisted id sets. No ordering guarantees.
const (
	SetWatchlist = "watchlist"
	SetLiked     = "liked"
)

type setDoc struct {
	ID  string   `bson:"_id"`
	IDs []string `bson:"ids"`
}

// ToggleMember adds or removes a title id and returns the updated set.
func (d *Database) ToggleMember(ctx context.Context, set, id string, add bool) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	var update bson.D
	if add {
		update = bson.D{{Key: "$addToSet", Value: bson.D{{Key: "ids", Value: id}}}}
	} else {
		update = bson.D{{Key: "$pull", Value: bson.D{{Key: "ids", Value: id}}}}
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	result := d.sets.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: set}}, update, opts)
	if result.Err() != nil {
		return nil, fmt.Errorf("toggle %s member failed: %w", set, result.Err())
	}

	doc := setDoc{}
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.IDs, nil
}

// GetSet returns the membership of a persisted id set.
func (d *Database) GetSet(ctx context.Context, set string) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	result := d.sets.FindOne(ctx, bson.D{{Key: "_id", Value: set}})
	if errors.Is(result.Err(), mongo.ErrNoDocuments) {
		return map[string]struct{}{}, nil
	}
	if result.Err() != nil {
		return nil, result.Err()
	}

	doc := setDoc{}
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}
	members := make(map[string]struct{}, len(doc.IDs))
	for _, id := range doc.IDs {
		members[id] = struct{}{}
	}
	return members, nil
}
