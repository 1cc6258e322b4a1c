package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/streamnest/vod-catalog/internal/catalog"
	"github.com/streamnest/vod-catalog/internal/model"
	"github.com/streamnest/vod-catalog/internal/ratelimit"
	"github.com/streamnest/vod-catalog/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	snap      *catalog.Snapshot
	refreshed int
}

func (f *fakeCatalog) Snapshot() *catalog.Snapshot { return f.snap }

func (f *fakeCatalog) Refresh(ctx context.Context) (int, error) {
	f.refreshed++
	return f.snap.Len(), nil
}

type fakeDB struct {
	sets     map[string]map[string]struct{}
	playback []*model.PlaybackRecord
	setCalls int
}

func (f *fakeDB) GetSet(ctx context.Context, set string) (map[string]struct{}, error) {
	f.setCalls++
	return f.sets[set], nil
}

func (f *fakeDB) GetAllPlayback(ctx context.Context) ([]*model.PlaybackRecord, error) {
	return f.playback, nil
}

func testService() (*Service, *fakeCatalog, *fakeDB) {
	cat := &fakeCatalog{snap: catalog.NewSnapshot([]model.Title{
		{ID: "m1", Title: "Movie One", Category: model.CategoryMovies, Year: "2020", SearchBlob: "movie one"},
		{ID: "m2", Title: "Movie Two", Category: model.CategoryMovies, Year: "2021", SearchBlob: "movie two"},
		{ID: "s1", Title: "Show One", Category: model.CategoryTvShow, Year: "2019", IsSeries: true,
			Seasons: []model.Season{{Name: "Season 1", Episodes: []model.Episode{
				{Title: "Episode 1", URL: "http://cdn/s1e1", Sources: []model.Source{{URL: "http://cdn/s1e1", Label: "HD"}}},
			}}}},
	})}
	db := &fakeDB{sets: map[string]map[string]struct{}{"watchlist": {"m2": {}}}}
	return &Service{Catalog: cat, Database: db}, cat, db
}

func TestQuery(t *testing.T) {
	s, _, db := testService()

	var resp api.QueryResponse
	err := s.Query(context.Background(), &api.QueryRequest{Tab: "movies"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.False(t, resp.HasMore)
	// persisted state is not consulted for a plain tab query
	assert.Zero(t, db.setCalls)

	err = s.Query(context.Background(), &api.QueryRequest{Preset: "watchlist"}, &resp)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "m2", resp.Items[0].ID)
	assert.Equal(t, 1, db.setCalls)
}

func TestGet(t *testing.T) {
	s, _, _ := testService()

	var resp api.GetResponse
	err := s.Get(context.Background(), &api.GetRequest{ID: "s1"}, &resp)
	require.NoError(t, err)
	require.NotNil(t, resp.Title)
	assert.Equal(t, "tv", resp.NavType)
	require.Len(t, resp.Title.Seasons, 1)
	assert.Equal(t, "Episode 1", resp.Title.Seasons[0].Episodes[0].Title)

	err = s.Get(context.Background(), &api.GetRequest{ID: "m1"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "movie", resp.NavType)

	err = s.Get(context.Background(), &api.GetRequest{ID: "missing"}, &resp)
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	s, cat, _ := testService()

	var resp api.RefreshResponse
	err := s.Refresh(context.Background(), &api.RefreshRequest{}, &resp)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Titles)
	assert.Equal(t, 1, cat.refreshed)
}

func TestRefreshRateLimited(t *testing.T) {
	s, cat, _ := testService()
	s.RefreshLimiter = ratelimit.NewInterval(time.Hour)

	var resp api.RefreshResponse
	require.NoError(t, s.Refresh(context.Background(), &api.RefreshRequest{}, &resp))
	require.NoError(t, s.Refresh(context.Background(), &api.RefreshRequest{}, &resp))

	// the second call was answered from the snapshot without a re-fetch
	assert.Equal(t, 1, cat.refreshed)
	assert.Equal(t, 3, resp.Titles)
}
