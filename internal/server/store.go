package server

import (
	"errors"
	"sync"
	"time"

	"github.com/spigell/resume-ranker/internal/ranker"
)

// DefaultSessionID is used when a request carries no X-Session-ID header.
const DefaultSessionID = "default"

// ErrNoSession is returned by Store.Existing for unknown session IDs.
var ErrNoSession = errors.New("session not found")

type entry struct {
	mu       sync.Mutex
	session  *ranker.Session
	lastUsed time.Time
}

// Store keeps one ranking session per session ID. Each session is guarded by
// its own mutex so a mutation never interleaves with a ranking pass on the
// same session, while different sessions proceed independently.
//
// Sessions idle for longer than the TTL are dropped, and when the store is
// full the least recently used session is evicted to make room.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	newFn       func(id string) *ranker.Session
	onChange    func(total int)
	maxSessions int
	ttl         time.Duration
	now         func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithMaxSessions caps the number of live sessions. Zero means no cap.
func WithMaxSessions(n int) StoreOption {
	return func(s *Store) {
		s.maxSessions = n
	}
}

// WithTTL drops sessions that were not used for d. Zero disables expiry.
func WithTTL(d time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = d
	}
}

// WithOnChange registers a callback invoked with the session count whenever
// sessions are created or removed.
func WithOnChange(fn func(total int)) StoreOption {
	return func(s *Store) {
		s.onChange = fn
	}
}

// NewStore creates a store. newFn builds a fresh session for an ID.
func NewStore(newFn func(id string) *ranker.Session, opts ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		newFn:    newFn,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// With runs fn with exclusive access to the session for id, creating it on
// first use.
func (s *Store) With(id string, fn func(*ranker.Session) error) error {
	return s.run(s.acquire(id, true), fn)
}

// Existing runs fn with exclusive access to the session for id. Unlike With
// it never creates a session and returns ErrNoSession instead.
func (s *Store) Existing(id string, fn func(*ranker.Session) error) error {
	e := s.acquire(id, false)
	if e == nil {
		return ErrNoSession
	}
	return s.run(e, fn)
}

// Delete clears and removes the session for id. It reports whether the
// session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
		s.notifyLocked()
	}
	s.mu.Unlock()

	if !ok {
		return false
	}

	// A request may still hold the entry; it must not see stale documents.
	e.mu.Lock()
	e.session.Reset()
	e.mu.Unlock()

	return true
}

// Len returns the number of sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) run(e *entry, fn func(*ranker.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fn(e.session)
}

func (s *Store) acquire(id string, create bool) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	changed := s.expireLocked(now)

	e, ok := s.sessions[id]
	if !ok && create {
		if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
			s.evictOldestLocked()
		}
		e = &entry{session: s.newFn(id)}
		s.sessions[id] = e
		ok, changed = true, true
	}

	if changed {
		s.notifyLocked()
	}
	if !ok {
		return nil
	}

	e.lastUsed = now
	return e
}

func (s *Store) expireLocked(now time.Time) bool {
	if s.ttl <= 0 {
		return false
	}

	removed := false
	for id, e := range s.sessions {
		if now.Sub(e.lastUsed) > s.ttl {
			delete(s.sessions, id)
			removed = true
		}
	}
	return removed
}

func (s *Store) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
		found    bool
	)
	for id, e := range s.sessions {
		if !found || e.lastUsed.Before(oldest) {
			oldestID, oldest, found = id, e.lastUsed, true
		}
	}
	if found {
		delete(s.sessions, oldestID)
	}
}

func (s *Store) notifyLocked() {
	if s.onChange != nil {
		s.onChange(len(s.sessions))
	}
}
