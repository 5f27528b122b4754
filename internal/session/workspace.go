package session

import (
	"sync"
	"time"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/dataset"
)

// Workspace holds the dataset shared by every session of a Store. Replacing
// it is atomic with respect to readers: they see either the previous table or
// the new one.
type Workspace struct {
	mu       sync.RWMutex
	table    *dataset.Table
	loadedBy string
	loadedAt time.Time
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Dataset returns the current table.
func (w *Workspace) Dataset() (*dataset.Table, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.table == nil {
		return nil, ErrNoDataset
	}
	return w.table, nil
}

// Replace swaps in a new table loaded by user.
func (w *Workspace) Replace(t *dataset.Table, user string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.table = t
	w.loadedBy = user
	w.loadedAt = time.Now()
}

// Clear drops the current table.
func (w *Workspace) Clear() {
	w.Replace(nil, "")
}

// Origin reports who loaded the current table and when.
func (w *Workspace) Origin() (user string, at time.Time) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loadedBy, w.loadedAt
}
