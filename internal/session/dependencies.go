package session

import (
	"context"

	"github.com/streamnest/vod-catalog/internal/catalog"
	"github.com/streamnest/vod-catalog/internal/model"
)

// Database requires some methods for persisting playback state
type Database interface {
	GetPlayback(ctx context.Context, titleID string) (*model.PlaybackRecord, error)
	PutPlayback(ctx context.Context, rec *model.PlaybackRecord) error
	UpsertHistory(ctx context.Context, entry model.HistoryEntry, max int) error
}

// SnapshotProvider hands out the currently published catalog
type SnapshotProvider interface {
	Snapshot() *catalog.Snapshot
}
