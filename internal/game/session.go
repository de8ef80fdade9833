package game

import (
	"context"
	"sync"
	"time"

	"retrochess/internal/api"
	"retrochess/internal/logging"
)

// Backend is the part of the API client a session needs
type Backend interface {
	SubmitMove(ctx context.Context, m api.Move) (any, error)
	Restart(ctx context.Context) (any, error)
	Refresh(ctx context.Context) (api.Snapshot, error)
}

// Session is one user's view of the game: a Model plus the watchers that
// want to hear when it changes.
type Session struct {
	ID string

	mu       sync.Mutex
	model    Model
	version  uint64
	backend  Backend
	watchers map[chan uint64]struct{}
	lastSeen time.Time
}

// NewSession creates an idle session. Dispatch Load to fetch the game.
func NewSession(id string, backend Backend, autoQueen bool) *Session {
	return &Session{
		ID:       id,
		model:    NewModel(autoQueen),
		backend:  backend,
		watchers: make(map[chan uint64]struct{}),
		lastSeen: time.Now(),
	}
}

// Model returns the current model and its version
func (s *Session) Model() (Model, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model, s.version
}

// Dispatch applies ev and, if it starts a request, performs the request and
// applies its result before returning. Events that arrive while a request is
// in flight are ignored by Update, so concurrent callers never overlap.
func (s *Session) Dispatch(ctx context.Context, ev Event) Model {
	m, eff := s.apply(ev)
	if eff == nil {
		return m
	}
	logging.Debugf("session %s: %s, running %T seq=%d", s.ID, PhaseName(m.Phase), eff, eff.Sequence())
	m, _ = s.apply(s.run(ctx, eff))
	return m
}

func (s *Session) apply(ev Event) (Model, Effect) {
	s.mu.Lock()
	next, eff := Update(s.model, ev)
	changed := !sameModel(s.model, next)
	s.model = next
	s.lastSeen = time.Now()
	if changed {
		s.version++
		s.broadcastLocked()
	}
	s.mu.Unlock()
	return next, eff
}

func (s *Session) run(ctx context.Context, eff Effect) Event {
	switch e := eff.(type) {
	case FetchAll:
		snap, err := s.backend.Refresh(ctx)
		return Loaded{Seq: e.Seq, Snapshot: snap, Err: err}

	case SendMove:
		if _, err := s.backend.SubmitMove(ctx, e.Move); err != nil {
			logging.Debugf("session %s: move %s-%s rejected: %v", s.ID, e.Move.From, e.Move.To, err)
			return MoveResolved{Seq: e.Seq, Err: err}
		}
		snap, err := s.backend.Refresh(ctx)
		return MoveResolved{Seq: e.Seq, Applied: true, Snapshot: snap, Err: err}

	case SendRestart:
		if _, err := s.backend.Restart(ctx); err != nil {
			return Restarted{Seq: e.Seq, Err: err}
		}
		snap, err := s.backend.Refresh(ctx)
		return Restarted{Seq: e.Seq, Snapshot: snap, Err: err}
	}
	logging.Logger.Error().Str("session", s.ID).Msgf("unknown effect %T", eff)
	return nil
}

// Touch updates the last seen timestamp
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// LastSeen returns when the session was last used
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// AddWatcher registers ch to receive the version after every change
func (s *Session) AddWatcher(ch chan uint64) {
	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()
}

// RemoveWatcher unregisters ch
func (s *Session) RemoveWatcher(ch chan uint64) {
	s.mu.Lock()
	delete(s.watchers, ch)
	s.mu.Unlock()
}

// Watchers returns the number of registered watchers
func (s *Session) Watchers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watchers)
}

func (s *Session) broadcastLocked() {
	for ch := range s.watchers {
		select {
		case ch <- s.version:
		default:
		}
	}
}

func sameModel(a, b Model) bool {
	return a.Phase == b.Phase &&
		a.Snapshot == b.Snapshot &&
		a.Error == b.Error &&
		a.MoveError == b.MoveError &&
		a.Seq == b.Seq
}
