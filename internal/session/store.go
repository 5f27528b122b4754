package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store tracks live sessions by id and expires idle ones. All of its sessions
// read the same Workspace.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ws       *Workspace
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger
}

// NewStore creates a Store whose sessions expire after ttl of inactivity.
// A zero ttl disables expiry.
func NewStore(ttl time.Duration, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		sessions: make(map[string]*Session),
		ws:       NewWorkspace(),
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

// Create opens a new session for user.
func (s *Store) Create(user, role string) *Session {
	now := s.now()
	sess := &Session{
		ID:       uuid.NewString(),
		User:     user,
		Role:     role,
		Created:  now,
		ws:       s.ws,
		lastSeen: now,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.log.Debug("session created", zap.String("session", sess.ID), zap.String("user", user))
	return sess
}

// Workspace returns the dataset shared by the Store's sessions.
func (s *Store) Workspace() *Workspace {
	return s.ws
}

// Get returns a live session and marks it as used.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	if s.expired(sess, now) {
		s.Delete(id)
		return nil, ErrNotFound
	}
	sess.touch(now)
	return sess, nil
}

// Delete removes a session; unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of tracked sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Info("expired sessions removed", zap.Int("count", n), zap.Int("live", s.Len()))
			}
		}
	}
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.LastSeen()) > s.ttl
}
