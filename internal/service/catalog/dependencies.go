package catalog

import (
	"context"

	"github.com/streamnest/vod-catalog/internal/catalog"
	"github.com/streamnest/vod-catalog/internal/model"
)

type Catalog interface {
	Snapshot() *catalog.Snapshot
	Refresh(ctx context.Context) (int, error)
}

type Database interface {
	GetSet(ctx context.Context, set string) (map[string]struct{}, error)
	GetAllPlayback(ctx context.Context) ([]*model.PlaybackRecord, error)
}
