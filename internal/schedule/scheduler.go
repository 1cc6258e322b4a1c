// Package schedule runs deferred and periodic background work keyed by group,
// so pending work can be cancelled wholesale when its owner goes away
// (auto-advance timers on user navigation, refresh loops on shutdown).
package schedule

import (
	"context"
	"sync"
	"time"
)

type Scheduler interface {
	// After runs fn once after d unless the group is cancelled first
	After(group string, d time.Duration, fn func(ctx context.Context))

	// Every runs fn periodically until the group is cancelled
	Every(group string, interval time.Duration, fn func(ctx context.Context))

	// Cancel drops all pending and periodic work of a group
	Cancel(group string)

	// Stop cancels everything and waits for running callbacks
	Stop()
}

type entry struct {
	cancel context.CancelFunc
	timer  *time.Timer
}

type scheduler struct {
	mu      sync.Mutex
	groups  map[string][]*entry
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	stopped bool
}

func New() Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &scheduler{
		groups: map[string][]*entry{},
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *scheduler) After(group string, d time.Duration, fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	e := &entry{cancel: cancel}
	e.timer = time.AfterFunc(d, func() {
		defer cancel()
		if ctx.Err() != nil {
			return
		}
		s.wg.Add(1)
		defer s.wg.Done()
		fn(ctx)
	})
	s.groups[group] = append(s.groups[group], e)
}

func (s *scheduler) Every(group string, interval time.Duration, fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.groups[group] = append(s.groups[group], &entry{cancel: cancel})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
}

func (s *scheduler) Cancel(group string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.groups[group] {
		if e.timer != nil {
			e.timer.Stop()
		}
		e.cancel()
	}
	delete(s.groups, group)
}

func (s *scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for group, entries := range s.groups {
		for _, e := range entries {
			if e.timer != nil {
				e.timer.Stop()
			}
			e.cancel()
		}
		delete(s.groups, group)
	}
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
}
