package catalog

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/streamnest/vod-catalog/internal/model"
	"github.com/streamnest/vod-catalog/internal/normalize"
	"github.com/streamnest/vod-catalog/internal/remote"
	"go-micro.dev/v4/logger"
)

// Fetcher yields the raw record collection from the remote store.
type Fetcher interface {
	FetchCollection(ctx context.Context) ([]remote.Record, error)
}

// Manager owns the published snapshot. Refreshes race-safely replace it:
// results of an older fetch completing after a newer one are discarded
// (last-write-wins by request token).
type Manager struct {
	fetcher Fetcher

	snap  atomic.Pointer[Snapshot]
	token atomic.Uint64
}

func NewManager(fetcher Fetcher) *Manager {
	m := &Manager{fetcher: fetcher}
	m.snap.Store(NewSnapshot(nil))
	return m
}

// Snapshot returns the currently published collection, never nil.
func (m *Manager) Snapshot() *Snapshot {
	return m.snap.Load()
}

// Refresh fetches and normalizes the whole collection and atomically swaps
// the snapshot. A fetch failure keeps the previous snapshot intact.
func (m *Manager) Refresh(ctx context.Context) (int, error) {
	token := m.token.Add(1)

	records, err := m.fetcher.FetchCollection(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch collection failed: %w", err)
	}

	titles := make([]model.Title, 0, len(records))
	for _, rec := range records {
		titles = append(titles, normalize.Normalize(rec.Fields, rec.Key))
	}

	if m.token.Load() != token {
		logger.Debugf("Discarding stale refresh result (token %d)", token)
		return len(titles), nil
	}
	m.snap.Store(NewSnapshot(titles))
	logger.Infof("Catalog refreshed: %d titles", len(titles))
	return len(titles), nil
}
