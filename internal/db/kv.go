package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type kvDoc struct {
	ID    string        `bson:"_id"`
	Value bson.RawValue `bson:"value"`
}

// Write stores an arbitrary value under key, overwriting any old value.
func (d *Database) Write(ctx context.Context, key string, value any) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	doc := bson.D{{Key: "_id", Value: key}, {Key: "value", Value: value}}
	opts := options.Replace().SetUpsert(true)
	_, err := d.kv.ReplaceOne(ctx, bson.D{{Key: "_id", Value: key}}, doc, opts)
	return err
}

// Read decodes the value stored under key into out. A missing key leaves out
// untouched, so callers pre-fill it with their fallback.
func (d *Database) Read(ctx context.Context, key string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	result := d.kv.FindOne(ctx, bson.D{{Key: "_id", Value: key}})
	if errors.Is(result.Err(), mongo.ErrNoDocuments) {
		return nil
	}
	if result.Err() != nil {
		return result.Err()
	}

	doc := kvDoc{}
	if err := result.Decode(&doc); err != nil {
		return err
	}
	return doc.Value.Unmarshal(out)
}
