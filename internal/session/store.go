// Package session keeps one independent sales series per dashboard session.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	apierrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// Session is a point-in-time view of one session.
// Series is nil until the session's first generation.
type Session struct {
	ID         string           `json:"session_id"`
	CreatedAt  time.Time        `json:"created_at"`
	LastAccess time.Time        `json:"last_access"`
	Series     domain.RawSeries `json:"-"`
}

// HasData reports whether a series has been generated
func (s Session) HasData() bool {
	return s.Series != nil
}

type entry struct {
	createdAt  time.Time
	lastAccess time.Time
	series     domain.RawSeries
}

// Store is an in-memory session store safe for concurrent use
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
	onEvict  func(id string)
	logger   *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithEvictHook registers fn to run for every session removed by Delete or Sweep
func WithEvictHook(fn func(id string)) Option {
	return func(s *Store) { s.onEvict = fn }
}

// NewStore creates an empty store
func NewStore(logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		now:      time.Now,
		logger:   logger.With("component", "session_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session without data
func (s *Store) Create() Session {
	id := uuid.New().String()
	now := s.now()

	s.mu.Lock()
	s.sessions[id] = &entry{createdAt: now, lastAccess: now}
	s.mu.Unlock()

	s.logger.Debug("session created", slog.String("session_id", id))
	return Session{ID: id, CreatedAt: now, LastAccess: now}
}

// Get returns a snapshot of the session and marks it as accessed.
// The returned series is a copy.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return Session{}, notFound(id)
	}
	e.lastAccess = s.now()
	return Session{
		ID:         id,
		CreatedAt:  e.createdAt,
		LastAccess: e.lastAccess,
		Series:     e.series.Clone(),
	}, nil
}

// SetSeries replaces the session's series with a copy of series
func (s *Store) SetSeries(id string, series domain.RawSeries) error {
	clone := series.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return notFound(id)
	}
	e.series = clone
	e.lastAccess = s.now()
	return nil
}

// Delete removes a session
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return notFound(id)
	}
	s.evicted(id)
	return nil
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than idleTTL and returns how many were removed
func (s *Store) Sweep(idleTTL time.Duration) int {
	cutoff := s.now().Add(-idleTTL)

	s.mu.Lock()
	var expired []string
	for id, e := range s.sessions {
		if e.lastAccess.Before(cutoff) {
			expired = append(expired, id)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		s.evicted(id)
	}
	if len(expired) > 0 {
		s.logger.Info("expired idle sessions", slog.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps idle sessions every interval until ctx is cancelled
func (s *Store) Run(ctx context.Context, interval, idleTTL time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep(idleTTL)
		}
	}
}

func (s *Store) evicted(id string) {
	if s.onEvict != nil {
		s.onEvict(id)
	}
}

func notFound(id string) error {
	return apierrors.NewNotFoundError("session").WithContext("session_id", id)
}
