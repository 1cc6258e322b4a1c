package session

import (
	"context"
	"sync"
	"time"

	"github.com/streamnest/vod-catalog/internal/lock"
	"github.com/streamnest/vod-catalog/internal/schedule"
	"github.com/streamnest/vod-catalog/internal/selector"
	"go-micro.dev/v4/logger"
)

// DefaultAutoAdvanceDelay is the grace period before the next episode starts.
const DefaultAutoAdvanceDelay = 5 * time.Second

// Settings holds all dependencies of the session manager
type Settings struct {
	Catalog   SnapshotProvider
	Database  Database
	Scheduler schedule.Scheduler
	Selector  selector.SourceSelector

	// AutoAdvanceDelay overrides DefaultAutoAdvanceDelay when positive
	AutoAdvanceDelay time.Duration
}

// Manager owns the playback sessions, one per client id. The lk locker
// serializes operations per client; mu only guards the map itself.
type Manager struct {
	settings Settings
	delay    time.Duration

	lk       lock.Locker
	mu       sync.Mutex
	sessions map[string]*Session
}

func (m *Manager) get(clientID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[clientID]
	return s, ok
}

func (m *Manager) put(clientID string, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[clientID] = s
}

func (m *Manager) drop(clientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, clientID)
}

func NewManager(settings Settings) *Manager {
	delay := settings.AutoAdvanceDelay
	if delay <= 0 {
		delay = DefaultAutoAdvanceDelay
	}
	return &Manager{
		settings: settings,
		delay:    delay,
		lk:       lock.NewLocker(),
		sessions: map[string]*Session{},
	}
}

func (m *Manager) advanceGroup(clientID string) string {
	return "advance:" + clientID
}

// Open starts (or restarts) the session of a client on the given title.
func (m *Manager) Open(ctx context.Context, clientID, titleID string) (Status, error) {
	unlock := m.lk.Lock(clientID)
	defer unlock.Unlock()

	m.settings.Scheduler.Cancel(m.advanceGroup(clientID))

	s := newSession(clientID, m.settings.Database, m.settings.Selector)
	m.put(clientID, s)

	title := m.settings.Catalog.Snapshot().Lookup(titleID)
	if err := s.open(ctx, title); err != nil {
		logger.Warnf("Open session for %q failed: %s", titleID, err)
		return s.status(), err
	}
	return s.status(), nil
}

// PlayEpisode switches the session to an episode; any pending auto-advance
// is dropped first.
func (m *Manager) PlayEpisode(ctx context.Context, clientID string, season, episode int) (Status, error) {
	unlock := m.lk.Lock(clientID)
	defer unlock.Unlock()

	s, ok := m.get(clientID)
	if !ok {
		return Status{}, ErrNoSession
	}
	m.settings.Scheduler.Cancel(m.advanceGroup(clientID))

	if err := s.playEpisode(season, episode); err != nil {
		return s.status(), err
	}
	return s.status(), nil
}

// SelectSource swaps the active stream variant.
func (m *Manager) SelectSource(ctx context.Context, clientID, url string) (Status, error) {
	unlock := m.lk.Lock(clientID)
	defer unlock.Unlock()

	s, ok := m.get(clientID)
	if !ok {
		return Status{}, ErrNoSession
	}
	if err := s.selectSource(url); err != nil {
		return s.status(), err
	}
	return s.status(), nil
}

// Progress feeds one player time-update tick into the session.
func (m *Manager) Progress(ctx context.Context, clientID string, position, duration float64) error {
	unlock := m.lk.Lock(clientID)
	defer unlock.Unlock()

	s, ok := m.get(clientID)
	if !ok {
		return ErrNoSession
	}
	s.tick(ctx, position, duration)
	return nil
}

// Ended handles playback end. When a next episode exists it is scheduled
// after the grace delay; user navigation cancels it.
func (m *Manager) Ended(ctx context.Context, clientID string) (Status, error) {
	unlock := m.lk.Lock(clientID)
	defer unlock.Unlock()

	s, ok := m.get(clientID)
	if !ok {
		return Status{}, ErrNoSession
	}
	s.ended()

	if next := s.next; next != nil && s.state == StateEnded {
		target := *next
		m.settings.Scheduler.After(m.advanceGroup(clientID), m.delay, func(ctx context.Context) {
			m.autoAdvance(ctx, clientID, target)
		})
	}
	return s.status(), nil
}

func (m *Manager) autoAdvance(ctx context.Context, clientID string, target Pointer) {
	unlock := m.lk.Lock(clientID)
	defer unlock.Unlock()

	s, ok := m.get(clientID)
	if !ok || s.state != StateEnded {
		return
	}
	if err := s.playEpisode(target.Season, target.Episode); err != nil {
		logger.Warnf("Auto-advance for client %s failed: %s", clientID, err)
	}
}

// MediaError records a client-side source failure without touching state.
func (m *Manager) MediaError(clientID, message string) {
	unlock := m.lk.Lock(clientID)
	defer unlock.Unlock()

	if s, ok := m.get(clientID); ok {
		s.mediaError(message)
	}
}

// Status returns the current view of a session.
func (m *Manager) Status(clientID string) (Status, error) {
	unlock := m.lk.Lock(clientID)
	defer unlock.Unlock()

	s, ok := m.get(clientID)
	if !ok {
		return Status{}, ErrNoSession
	}
	return s.status(), nil
}

// Close drops the session and any pending auto-advance.
func (m *Manager) Close(clientID string) {
	unlock := m.lk.Lock(clientID)
	defer unlock.Unlock()

	m.settings.Scheduler.Cancel(m.advanceGroup(clientID))
	m.drop(clientID)
}
