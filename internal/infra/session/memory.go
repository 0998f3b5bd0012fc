package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"factcheck-web/internal/observability/metrics"
)

type memoryEntry struct {
	state   *State
	expires time.Time
}

// MemoryStore keeps sessions in process memory. Expired sessions are removed
// by Sweep, which Schedule runs on a cron scheduler.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore returns a store whose sessions live for ttl after their
// last update.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok || !m.now().Before(e.expires) {
		return nil, ErrNotFound
	}
	return e.state.Clone(), nil
}

// Update implements Store.
func (m *MemoryStore) Update(_ context.Context, id string, fn func(*State) error) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var working *State
	if e, ok := m.sessions[id]; ok && now.Before(e.expires) {
		working = e.state.Clone()
	} else {
		working = NewState(id)
	}

	if err := fn(working); err != nil {
		return nil, err
	}

	m.sessions[id] = &memoryEntry{state: working, expires: now.Add(m.ttl)}
	return working.Clone(), nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Ping implements Store. Memory is always available.
func (m *MemoryStore) Ping(context.Context) error { return nil }

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (m *MemoryStore) Sweep() int {
	now := m.now()

	m.mu.Lock()
	removed := 0
	for id, e := range m.sessions {
		if !now.Before(e.expires) {
			delete(m.sessions, id)
			removed++
		}
	}
	active := len(m.sessions)
	m.mu.Unlock()

	metrics.UpdateSessionsActive(active)
	return removed
}

// Schedule registers Sweep on scheduler using a cron spec such as "@every 10m".
func (m *MemoryStore) Schedule(scheduler *cron.Cron, spec string) (cron.EntryID, error) {
	return scheduler.AddFunc(spec, func() {
		removed := m.Sweep()
		slog.Debug("session sweep completed",
			slog.Int("removed", removed),
			slog.Int("active", m.Len()))
	})
}
