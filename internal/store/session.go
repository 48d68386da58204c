package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"cv-generator/internal/domain"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Session owns one CV snapshot. Every mutation goes through Apply, so
// writers are serialised and readers always see a whole snapshot.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu        sync.Mutex
	cv        domain.CV
	enhancing bool
	lastUsed  time.Time
}

func newSession(cv domain.CV, now time.Time) *Session {
	return &Session{ID: uuid.New(), CreatedAt: now, cv: cv, lastUsed: now}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}

// idle reports whether the session can be evicted: not enhancing and unused
// since before cutoff.
func (s *Session) idle(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.enhancing && s.lastUsed.Before(cutoff)
}

func (s *Session) Snapshot() domain.CV {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cv
}

// Apply replaces the snapshot with fn(current) and returns the result.
func (s *Session) Apply(fn func(domain.CV) domain.CV) domain.CV {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cv = fn(s.cv)
	return s.cv
}

// BeginEnhance moves the session from idle to enhancing. It returns false if
// an enhancement is already running.
func (s *Session) BeginEnhance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enhancing {
		return false
	}
	s.enhancing = true
	return true
}

func (s *Session) EndEnhance() {
	s.mu.Lock()
	s.enhancing = false
	s.mu.Unlock()
}

func (s *Session) Enhancing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enhancing
}

// Registry keeps every live session in memory. Sessions are only dropped by
// Delete or by Sweep.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	now func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[uuid.UUID]*Session{}, now: time.Now}
}

// Create starts a session with an empty CV.
func (r *Registry) Create() *Session {
	return r.Import(domain.NewCV())
}

// Import starts a session from an existing document.
func (r *Registry) Import(cv domain.CV) *Session {
	s := newSession(Normalize(cv), r.now())
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(r.now())
	return s, nil
}

func (r *Registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops every session not fetched with Get for longer than maxIdle.
// Sessions with an enhancement in flight are kept. It returns the number
// removed.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.idle(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor sweeps every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(maxIdle); n > 0 {
				slog.Info("evicted idle sessions", "count", n, "remaining", r.Len())
			}
		}
	}
}
