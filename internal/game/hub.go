package game

import (
	"context"
	"sync"
	"time"

	"retrochess/internal/logging"
)

// Idle sessions are dropped after MaxIdle; the sweep runs every SweepInterval.
const (
	MaxIdle       = 24 * time.Hour
	SweepInterval = 5 * time.Minute
)

// Hub manages the sessions of all connected browsers
type Hub struct {
	Mu       sync.Mutex
	Sessions map[string]*Session

	backend   Backend
	autoQueen bool
	done      chan struct{}
	closeOnce sync.Once
}

// NewHub creates a new session hub with cleanup goroutine
func NewHub(backend Backend, autoQueen bool) *Hub {
	h := &Hub{
		Sessions:  make(map[string]*Session),
		backend:   backend,
		autoQueen: autoQueen,
		done:      make(chan struct{}),
	}
	go func() {
		ticker := time.NewTicker(SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-h.done:
				return
			case now := <-ticker.C:
				if n := h.Sweep(now, MaxIdle); n > 0 {
					logging.Debugf("swept %d idle sessions", n)
				}
			}
		}
	}()
	return h
}

// Close stops the cleanup goroutine
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Get retrieves an existing session or creates a new one. A new session
// loads the game before it is returned.
func (h *Hub) Get(ctx context.Context, id string) *Session {
	h.Mu.Lock()
	if s, ok := h.Sessions[id]; ok {
		h.Mu.Unlock()
		s.Touch()
		return s
	}
	s := NewSession(id, h.backend, h.autoQueen)
	h.Sessions[id] = s
	h.Mu.Unlock()

	logging.Debugf("new session %s", id)
	s.Dispatch(ctx, Load{})
	return s
}

// Lookup returns the session for id without creating it
func (h *Hub) Lookup(id string) (*Session, bool) {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	s, ok := h.Sessions[id]
	return s, ok
}

// Sweep removes sessions unseen for longer than maxIdle and returns how many
// were removed.
func (h *Hub) Sweep(now time.Time, maxIdle time.Duration) int {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	removed := 0
	for id, s := range h.Sessions {
		if now.Sub(s.LastSeen()) > maxIdle {
			delete(h.Sessions, id)
			removed++
		}
	}
	return removed
}
