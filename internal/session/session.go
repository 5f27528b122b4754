// Package session holds the per-login handle and the workspace dataset it
// reads.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/dataset"
)

var (
	// ErrNoDataset is returned by Dataset before the first upload.
	ErrNoDataset = errors.New("no dataset loaded; upload a file first")
	// ErrNotFound is returned for unknown or expired session ids.
	ErrNotFound = errors.New("session not found or expired")
)

// Session is one login. Its dataset lives in the workspace it shares with the
// other sessions of the same Store.
type Session struct {
	ID      string
	User    string
	Role    string
	Created time.Time

	ws       *Workspace
	mu       sync.RWMutex
	lastSeen time.Time
}

// Dataset returns the workspace table.
func (s *Session) Dataset() (*dataset.Table, error) {
	return s.ws.Dataset()
}

// Replace publishes t to every session of the workspace.
func (s *Session) Replace(t *dataset.Table) {
	s.ws.Replace(t, s.User)
}

// Clear drops the workspace table.
func (s *Session) Clear() {
	s.ws.Clear()
}

// Workspace returns the shared workspace.
func (s *Session) Workspace() *Workspace {
	return s.ws
}

// LastSeen reports when the session was last used.
func (s *Session) LastSeen() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// NewLocal returns a session that is not tracked by any Store and owns a
// private workspace, for single-user front ends such as the terminal menu.
func NewLocal(user string) *Session {
	now := time.Now()
	return &Session{ID: "local", User: user, Created: now, ws: NewWorkspace(), lastSeen: now}
}
