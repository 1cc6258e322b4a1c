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

// PutPlayback overwrites the single playback record of a title.
func (d *Database) PutPlayback(ctx context.Context, rec *model.PlaybackRecord) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	filter := bson.D{{Key: "_id", Value: rec.TitleID}}

	_, err := d.playback.ReplaceOne(ctx, filter, rec, opts)
	if err != nil {
		return fmt.Errorf("store playback record failed: %w", err)
	}
	return nil
}

// GetPlayback returns the playback record of a title, nil when absent.
func (d *Database) GetPlayback(ctx context.Context, titleID string) (*model.PlaybackRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	result := d.playback.FindOne(ctx, bson.D{{Key: "_id", Value: titleID}})
	if errors.Is(result.Err(), mongo.ErrNoDocuments) {
		return nil, nil
	}
	if result.Err() != nil {
		return nil, result.Err()
	}

	rec := model.PlaybackRecord{}
	if err := result.Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetAllPlayback returns every stored playback record.
func (d *Database) GetAllPlayback(ctx context.Context) ([]*model.PlaybackRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	cur, err := d.playback.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var results []*model.PlaybackRecord
	if err = cur.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// DeletePlayback removes the playback record of a title.
func (d *Database) DeletePlayback(ctx context.Context, titleID string) error {
	ctx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()

	_, err := d.playback.DeleteOne(ctx, bson.D{{Key: "_id", Value: titleID}})
	return err
}
