package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/streamnest/vod-catalog/internal/catalog"
	"github.com/streamnest/vod-catalog/internal/model"
	"github.com/streamnest/vod-catalog/internal/schedule"
	"github.com/streamnest/vod-catalog/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	mu      sync.Mutex
	records map[string]*model.PlaybackRecord
	history []model.HistoryEntry
	puts    int
}

func newFakeDB() *fakeDB {
	return &fakeDB{records: map[string]*model.PlaybackRecord{}}
}

func (f *fakeDB) GetPlayback(ctx context.Context, titleID string) (*model.PlaybackRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[titleID], nil
}

func (f *fakeDB) PutPlayback(ctx context.Context, rec *model.PlaybackRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[rec.TitleID] = rec
	f.puts++
	return nil
}

func (f *fakeDB) UpsertHistory(ctx context.Context, entry model.HistoryEntry, max int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = model.BoundHistory(f.history, entry, max)
	return nil
}

func (f *fakeDB) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts
}

type fakeCatalog struct {
	snap *catalog.Snapshot
}

func (f *fakeCatalog) Snapshot() *catalog.Snapshot { return f.snap }

func movieTitle(id string) model.Title {
	return model.Title{
		ID:    id,
		Title: "Movie " + id,
		Sources: []model.Source{
			{URL: "http://m/" + id + "/hd", Label: "HD"},
			{URL: "http://m/" + id + "/4k", Label: "4K"},
		},
	}
}

func newTestManager(t *testing.T, db *fakeDB, titles ...model.Title) (*Manager, schedule.Scheduler) {
	t.Helper()
	sched := schedule.New()
	t.Cleanup(sched.Stop)
	m := NewManager(Settings{
		Catalog:          &fakeCatalog{snap: catalog.NewSnapshot(titles)},
		Database:         db,
		Scheduler:        sched,
		Selector:         selector.SourceSelector{},
		AutoAdvanceDelay: 30 * time.Millisecond,
	})
	return m, sched
}

func TestOpenMovie(t *testing.T) {
	m, _ := newTestManager(t, newFakeDB(), movieTitle("m1"))

	status, err := m.Open(context.Background(), "c1", "m1")
	require.NoError(t, err)
	assert.Equal(t, StatePlayingMovie, status.State)
	require.NotNil(t, status.Source)
	assert.Equal(t, "http://m/m1/hd", status.Source.URL)
	assert.Nil(t, status.Next)
	assert.Nil(t, status.Resume)
}

func TestOpenNotFound(t *testing.T) {
	m, _ := newTestManager(t, newFakeDB(), movieTitle("m1"))

	status, err := m.Open(context.Background(), "c1", "nope")
	assert.ErrorIs(t, err, ErrTitleNotFound)
	assert.Equal(t, StateError, status.State)
}

func TestOpenNoSources(t *testing.T) {
	m, _ := newTestManager(t, newFakeDB(), model.Title{ID: "empty", Title: "Empty"})

	status, err := m.Open(context.Background(), "c1", "empty")
	assert.ErrorIs(t, err, ErrNoSources)
	assert.Equal(t, StateError, status.State)
}

func TestOpenSeriesRestoresPointer(t *testing.T) {
	db := newFakeDB()
	db.records["show"] = &model.PlaybackRecord{
		TitleID:      "show",
		SeasonIndex:  1,
		EpisodeIndex: 1,
		Time:         120,
		Duration:     1200,
	}
	m, _ := newTestManager(t, db, *seriesTitle(3, 2))

	status, err := m.Open(context.Background(), "c1", "show")
	require.NoError(t, err)
	assert.Equal(t, StatePlayingEpisode, status.State)
	assert.Equal(t, Pointer{Season: 1, Episode: 1}, status.Pointer)
	require.NotNil(t, status.Resume)
	assert.True(t, status.Resume.Eligible)
	// last episode of the last season: nothing to advance to
	assert.Nil(t, status.Next)
}

func TestOpenSeriesClampsStalePointer(t *testing.T) {
	db := newFakeDB()
	db.records["show"] = &model.PlaybackRecord{TitleID: "show", SeasonIndex: 9, EpisodeIndex: 9}
	m, _ := newTestManager(t, db, *seriesTitle(2))

	status, err := m.Open(context.Background(), "c1", "show")
	require.NoError(t, err)
	assert.Equal(t, Pointer{}, status.Pointer)
}

func TestPlayEpisode(t *testing.T) {
	m, _ := newTestManager(t, newFakeDB(), *seriesTitle(3, 2))

	_, err := m.Open(context.Background(), "c1", "show")
	require.NoError(t, err)

	status, err := m.PlayEpisode(context.Background(), "c1", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, Pointer{Season: 0, Episode: 2}, status.Pointer)
	require.NotNil(t, status.Next)
	assert.Equal(t, Pointer{Season: 1, Episode: 0}, *status.Next)

	// out-of-range target: silent no-op
	status, err = m.PlayEpisode(context.Background(), "c1", 5, 0)
	require.NoError(t, err)
	assert.Equal(t, Pointer{Season: 0, Episode: 2}, status.Pointer)
}

func TestPlayEpisodeOnMovie(t *testing.T) {
	m, _ := newTestManager(t, newFakeDB(), movieTitle("m1"))

	_, err := m.Open(context.Background(), "c1", "m1")
	require.NoError(t, err)

	_, err = m.PlayEpisode(context.Background(), "c1", 0, 0)
	assert.ErrorIs(t, err, ErrNotSeries)
}

func TestSelectSourceOrthogonal(t *testing.T) {
	db := newFakeDB()
	m, _ := newTestManager(t, db, movieTitle("m1"))

	_, err := m.Open(context.Background(), "c1", "m1")
	require.NoError(t, err)

	// two ticks consumed, cadence position 2-of-3
	require.NoError(t, m.Progress(context.Background(), "c1", 10, 100))
	require.NoError(t, m.Progress(context.Background(), "c1", 11, 100))
	assert.Equal(t, 1, db.putCount())

	status, err := m.SelectSource(context.Background(), "c1", "http://m/m1/4k")
	require.NoError(t, err)
	assert.Equal(t, "http://m/m1/4k", status.Source.URL)

	// source switch did not reset the cadence: third tick persists
	require.NoError(t, m.Progress(context.Background(), "c1", 12, 100))
	assert.Equal(t, 2, db.putCount())

	_, err = m.SelectSource(context.Background(), "c1", "http://elsewhere/x")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestProgressThrottled(t *testing.T) {
	db := newFakeDB()
	m, _ := newTestManager(t, db, movieTitle("m1"))

	_, err := m.Open(context.Background(), "c1", "m1")
	require.NoError(t, err)

	for i := 0; i < 9; i++ {
		require.NoError(t, m.Progress(context.Background(), "c1", float64(i), 100))
	}
	// 1-in-3 ticks persisted
	assert.Equal(t, 3, db.putCount())
	assert.Len(t, db.history, 1)
	assert.Equal(t, "movie", db.history[0].Type)
}

func TestAutoAdvance(t *testing.T) {
	m, _ := newTestManager(t, newFakeDB(), *seriesTitle(2))

	_, err := m.Open(context.Background(), "c1", "show")
	require.NoError(t, err)

	status, err := m.Ended(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, StateEnded, status.State)

	assert.Eventually(t, func() bool {
		status, err := m.Status("c1")
		return err == nil && status.State == StatePlayingEpisode && status.Pointer.Episode == 1
	}, time.Second, 10*time.Millisecond)
}

func TestAutoAdvanceCancelledByNavigation(t *testing.T) {
	m, _ := newTestManager(t, newFakeDB(), *seriesTitle(3))

	_, err := m.Open(context.Background(), "c1", "show")
	require.NoError(t, err)

	_, err = m.Ended(context.Background(), "c1")
	require.NoError(t, err)

	// user picks another episode before the grace period runs out
	status, err := m.PlayEpisode(context.Background(), "c1", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, Pointer{Season: 0, Episode: 2}, status.Pointer)

	time.Sleep(80 * time.Millisecond)
	status, err = m.Status("c1")
	require.NoError(t, err)
	assert.Equal(t, Pointer{Season: 0, Episode: 2}, status.Pointer)
}

func TestMediaErrorKeepsState(t *testing.T) {
	m, _ := newTestManager(t, newFakeDB(), movieTitle("m1"))

	_, err := m.Open(context.Background(), "c1", "m1")
	require.NoError(t, err)

	m.MediaError("c1", "network stalled")

	status, err := m.Status("c1")
	require.NoError(t, err)
	assert.Equal(t, StatePlayingMovie, status.State)
}
