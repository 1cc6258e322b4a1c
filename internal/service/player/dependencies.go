package player

import (
	"context"

	"github.com/streamnest/vod-catalog/internal/catalog"
	"github.com/streamnest/vod-catalog/internal/model"
	"github.com/streamnest/vod-catalog/internal/session"
)

type Sessions interface {
	Open(ctx context.Context, clientID, titleID string) (session.Status, error)
	PlayEpisode(ctx context.Context, clientID string, season, episode int) (session.Status, error)
	SelectSource(ctx context.Context, clientID, url string) (session.Status, error)
	Progress(ctx context.Context, clientID string, position, duration float64) error
	Ended(ctx context.Context, clientID string) (session.Status, error)
	MediaError(clientID, message string)
	Status(clientID string) (session.Status, error)
	Close(clientID string)
}

type Catalog interface {
	Snapshot() *catalog.Snapshot
}

type Database interface {
	GetAllPlayback(ctx context.Context) ([]*model.PlaybackRecord, error)
}
