package lists

import (
	"context"
	"testing"
	"time"

	"github.com/streamnest/vod-catalog/internal/model"
	"github.com/streamnest/vod-catalog/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	sets    map[string]map[string]struct{}
	history []model.HistoryEntry
}

func newFakeDB() *fakeDB {
	return &fakeDB{sets: map[string]map[string]struct{}{}}
}

func (f *fakeDB) ToggleMember(ctx context.Context, set, id string, add bool) ([]string, error) {
	members := f.sets[set]
	if members == nil {
		members = map[string]struct{}{}
		f.sets[set] = members
	}
	if add {
		members[id] = struct{}{}
	} else {
		delete(members, id)
	}
	ids := make([]string, 0, len(members))
	for m := range members {
		ids = append(ids, m)
	}
	return ids, nil
}

func (f *fakeDB) GetSet(ctx context.Context, set string) (map[string]struct{}, error) {
	return f.sets[set], nil
}

func (f *fakeDB) GetHistory(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	if limit > 0 && len(f.history) > limit {
		return f.history[:limit], nil
	}
	return f.history, nil
}

func TestToggle(t *testing.T) {
	s := &Service{Database: newFakeDB()}

	var resp api.ToggleResponse
	err := s.Toggle(context.Background(), &api.ToggleRequest{List: "watchlist", ID: "m1", Add: true}, &resp)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, resp.IDs)

	err = s.Toggle(context.Background(), &api.ToggleRequest{List: "watchlist", ID: "m1", Add: false}, &resp)
	require.NoError(t, err)
	assert.Empty(t, resp.IDs)

	err = s.Toggle(context.Background(), &api.ToggleRequest{List: "favourites", ID: "m1", Add: true}, &resp)
	assert.Error(t, err)
}

func TestGetList(t *testing.T) {
	db := newFakeDB()
	db.sets["liked"] = map[string]struct{}{"b": {}, "a": {}}
	s := &Service{Database: db}

	var resp api.GetListResponse
	err := s.GetList(context.Background(), &api.GetListRequest{List: "liked"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, resp.IDs)
}

func TestHistory(t *testing.T) {
	db := newFakeDB()
	db.history = []model.HistoryEntry{
		{TitleID: "m2", Type: "series", SeasonIndex: 1, EpisodeIndex: 3, ProgressPct: 50, UpdatedAt: time.Unix(2000, 0)},
		{TitleID: "m1", Type: "movie", ProgressPct: 80, UpdatedAt: time.Unix(1000, 0)},
	}
	s := &Service{Database: db}

	var resp api.HistoryResponse
	err := s.History(context.Background(), &api.HistoryRequest{}, &resp)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "m2", resp.Items[0].TitleID)
	assert.Equal(t, int64(2000), resp.Items[0].UpdatedAt)

	err = s.History(context.Background(), &api.HistoryRequest{Limit: 1}, &resp)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
}
