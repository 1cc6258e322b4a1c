package session

import (
	"context"
	"errors"
	"time"

	"github.com/streamnest/vod-catalog/internal/model"
	"github.com/streamnest/vod-catalog/internal/ratelimit"
	"github.com/streamnest/vod-catalog/internal/selector"
	"go-micro.dev/v4/logger"
)

// State of one playback session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlayingMovie
	StatePlayingEpisode
	StateEnded
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePlayingMovie:
		return "playing-movie"
	case StatePlayingEpisode:
		return "playing-episode"
	case StateEnded:
		return "ended"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

var (
	ErrTitleNotFound = errors.New("title not found")
	ErrNotSeries     = errors.New("title is not a series")
	ErrNoSources     = errors.New("no playable sources")
	ErrNoSession     = errors.New("no active session")
	ErrUnknownSource = errors.New("source url does not belong to the session")
)

// persistEveryNTicks throttles progress writes to 1-in-3 player ticks.
const persistEveryNTicks = 3

// Resume describes the saved position found on session open.
type Resume struct {
	Time     float64
	Duration float64
	Eligible bool
}

// Status is the externally visible view of a session.
type Status struct {
	State   State
	TitleID string
	Pointer Pointer
	Source  *model.Source
	Sources []model.Source
	Next    *Pointer
	Resume  *Resume
}

// Session tracks which title/episode/source is playing for one client.
type Session struct {
	clientID string
	title    *model.Title
	state    State
	pointer  Pointer
	source   model.Source
	sources  []model.Source
	next     *Pointer
	resume   *Resume
	throttle *ratelimit.Counter

	db  Database
	sel selector.SourceSelector
}

func newSession(clientID string, db Database, sel selector.SourceSelector) *Session {
	return &Session{
		clientID: clientID,
		state:    StateIdle,
		throttle: ratelimit.NewCounter(persistEveryNTicks),
		db:       db,
		sel:      sel,
	}
}

// open enters the session for a resolved title. A nil title or an empty
// source list lands in the Error state.
func (s *Session) open(ctx context.Context, title *model.Title) error {
	s.state = StateLoading
	s.next = nil
	s.resume = nil

	if title == nil {
		s.state = StateError
		return ErrTitleNotFound
	}
	s.title = title

	rec, err := s.db.GetPlayback(ctx, title.ID)
	if err != nil {
		logger.Warnf("Load playback record failed: %s", err)
		rec = nil
	}

	if len(title.Seasons) > 0 {
		s.pointer = Pointer{}
		if rec != nil {
			s.pointer = ClampPointer(title, Pointer{Season: rec.SeasonIndex, Episode: rec.EpisodeIndex})
		}
		episode := title.Episode(s.pointer.Season, s.pointer.Episode)
		if episode == nil || len(episode.Sources) == 0 {
			s.state = StateError
			return ErrNoSources
		}
		s.sources = episode.Sources
		s.state = StatePlayingEpisode
		s.computeNext()
	} else {
		if len(title.Sources) == 0 {
			s.state = StateError
			return ErrNoSources
		}
		s.pointer = Pointer{}
		s.sources = title.Sources
		s.state = StatePlayingMovie
	}

	s.source = s.sources[s.selectIndex()]
	if rec != nil {
		s.resume = &Resume{
			Time:     rec.Time,
			Duration: rec.Duration,
			Eligible: ResumeEligible(rec.Time, rec.Duration),
		}
	}
	return nil
}

// selectSource replaces the active source. Orthogonal to the episode pointer
// and to the persistence cadence, which both stay untouched.
func (s *Session) selectSource(url string) error {
	for _, src := range s.sources {
		if src.URL == url {
			s.source = src
			return nil
		}
	}
	return ErrUnknownSource
}

// playEpisode switches to (season, episode). Out-of-range targets no-op
// silently; success resets the source to the target's best one and
// recomputes next-episode availability.
func (s *Session) playEpisode(season, episode int) error {
	if s.title == nil || len(s.title.Seasons) == 0 {
		return ErrNotSeries
	}
	target := s.title.Episode(season, episode)
	if target == nil {
		return nil
	}

	s.pointer = Pointer{Season: season, Episode: episode}
	s.sources = target.Sources
	s.source = s.sources[s.selectIndex()]
	s.state = StatePlayingEpisode
	s.resume = nil
	s.computeNext()
	return nil
}

// tick records player progress. Persistence is throttled to bound write
// volume; each persisted write updates both the playback record and the
// bounded watch history.
func (s *Session) tick(ctx context.Context, position, duration float64) {
	if s.state != StatePlayingMovie && s.state != StatePlayingEpisode {
		return
	}
	if !s.throttle.Allow() {
		return
	}
	s.persist(ctx, position, duration)
}

func (s *Session) persist(ctx context.Context, position, duration float64) {
	pct := Progress(position, duration)
	rec := model.PlaybackRecord{
		TitleID:      s.title.ID,
		SeasonIndex:  s.pointer.Season,
		EpisodeIndex: s.pointer.Episode,
		Time:         position,
		Duration:     duration,
		ProgressPct:  pct,
		UpdatedAt:    time.Now(),
	}
	if err := s.db.PutPlayback(ctx, &rec); err != nil {
		logger.Warnf("Store playback record failed: %s", err)
		return
	}

	entryType := "movie"
	if len(s.title.Seasons) > 0 {
		entryType = "series"
	}
	entry := model.HistoryEntry{
		TitleID:      rec.TitleID,
		Type:         entryType,
		SeasonIndex:  rec.SeasonIndex,
		EpisodeIndex: rec.EpisodeIndex,
		Time:         rec.Time,
		Duration:     rec.Duration,
		ProgressPct:  rec.ProgressPct,
		UpdatedAt:    rec.UpdatedAt,
	}
	if err := s.db.UpsertHistory(ctx, entry, model.HistoryLimit); err != nil {
		logger.Warnf("Store history entry failed: %s", err)
	}
}

// ended marks playback finished; the caller decides about auto-advance.
func (s *Session) ended() {
	if s.state == StatePlayingMovie || s.state == StatePlayingEpisode {
		s.state = StateEnded
	}
}

// mediaError is reported by the player but never alters session state: the
// user stays able to pick another source.
func (s *Session) mediaError(message string) {
	logger.Warnf("Client %s media error on %s: %s", s.clientID, s.source.URL, message)
}

func (s *Session) computeNext() {
	s.next = nil
	if next, ok := NextEpisode(s.title, s.pointer); ok {
		s.next = &next
	}
}

func (s *Session) selectIndex() int {
	if i := s.sel.Select(s.sources); i > 0 {
		return i
	}
	return 0
}

func (s *Session) status() Status {
	st := Status{
		State:   s.state,
		Pointer: s.pointer,
		Sources: s.sources,
		Next:    s.next,
		Resume:  s.resume,
	}
	if s.title != nil {
		st.TitleID = s.title.ID
	}
	if s.state == StatePlayingMovie || s.state == StatePlayingEpisode || s.state == StateEnded {
		src := s.source
		st.Source = &src
	}
	return st
}
