package session

import (
	"errors"
	"sync"
	"time"

	"github.com/zaidqureshi-dev/menuorder-api/checkout"
)

var ErrSessionNotFound = errors.New("session not found or expired")

const (
	// SessionTTL is how long an idle session survives before the sweeper
	// removes it.
	SessionTTL = 4 * time.Hour

	// SweepInterval is how often the background sweep runs.
	SweepInterval = 5 * time.Minute
)

// entry pairs a session with its own lock so that work on one session never
// blocks another.
type entry struct {
	mu sync.Mutex
	s  *checkout.Session
}

// Manager holds the in-memory checkout sessions. Sessions are independent
// actors: the manager's lock only guards the map, while each session carries
// its own mutex that serializes the one-writer wizard work.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry

	stopSweep chan struct{}
	wg        sync.WaitGroup
}

func NewManager() *Manager {
	m := &Manager{
		sessions:  make(map[string]*entry),
		stopSweep: make(chan struct{}),
	}
	m.wg.Add(1)
	go m.sweepLoop()
	return m
}

func (m *Manager) sweepLoop() {
	defer m.wg.Done()
	ticker := time.NewTicker(SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.expireSessions()
		case <-m.stopSweep:
			return
		}
	}
}

func (m *Manager) expireSessions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-SessionTTL)
	for id, e := range m.sessions {
		if e.s.LastSeen.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

// Create starts a new session. A non-empty table number marks a dine-in
// session.
func (m *Manager) Create(tableNumber string) *checkout.Session {
	s := checkout.NewSession(tableNumber)
	m.mu.Lock()
	m.sessions[s.ID] = &entry{s: s}
	m.mu.Unlock()
	return s
}

// With runs fn with the session locked, refreshing its idle timer. The map
// lock is dropped before fn runs, so a slow callback (DB reads, order submit)
// holds up only its own session.
func (m *Manager) With(id string, fn func(*checkout.Session) error) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return ErrSessionNotFound
	}
	// LastSeen stays under the map lock: the sweeper reads it there.
	e.s.LastSeen = time.Now()
	m.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close stops the background sweep and waits for it to finish.
func (m *Manager) Close() {
	close(m.stopSweep)
	m.wg.Wait()
}
