package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/streamnest/vod-catalog/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const historyDocID = "watch-history"

type historyDoc struct {
	ID    string               `bson:"_id"`
	Items []model.HistoryEntry `bson:"items"`
}

// UpsertHistory puts the entry at the front of the bounded watch history,
// evicting a previous entry with the same title id.
func (d *Database) UpsertHistory(ctx context.Context, entry model.HistoryEntry, max int) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	doc, err := d.loadHistory(ctx)
	if err != nil {
		return err
	}
	doc.Items = model.BoundHistory(doc.Items, entry, max)

	opts := options.Replace().SetUpsert(true)
	filter := bson.D{{Key: "_id", Value: historyDocID}}
	if _, err = d.history.ReplaceOne(ctx, filter, doc, opts); err != nil {
		return fmt.Errorf("store history failed: %w", err)
	}
	return nil
}

// GetHistory returns the most-recent-first watch history, at most limit
// entries when limit > 0.
func (d *Database) GetHistory(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	doc, err := d.loadHistory(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(doc.Items) > limit {
		doc.Items = doc.Items[:limit]
	}
	return doc.Items, nil
}

func (d *Database) loadHistory(ctx context.Context) (*historyDoc, error) {
	doc := historyDoc{ID: historyDocID}
	result := d.history.FindOne(ctx, bson.D{{Key: "_id", Value: historyDocID}})
	if errors.Is(result.Err(), mongo.ErrNoDocuments) {
		return &doc, nil
	}
	if result.Err() != nil {
		return nil, result.Err()
	}
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
