package game

import (
	"retrochess/internal/api"
)

// Phase is the interaction state of a session. Exactly one of the types
// below is active at a time.
type Phase interface {
	phase() string
}

// Idle means nothing is selected
type Idle struct{}

// SourceSelected holds the square picked as move origin. Selected is the
// last clicked square, which differs from From after a rejected move.
type SourceSelected struct {
	From     string
	Selected string
}

// Submitting means Move is in flight
type Submitting struct {
	Move api.Move
}

// Loading means state and history are being fetched
type Loading struct{}

// Restarting means a game reset is in flight
type Restarting struct{}

func (Idle) phase() string           { return "idle" }
func (SourceSelected) phase() string { return "source-selected" }
func (Submitting) phase() string     { return "submitting" }
func (Loading) phase() string        { return "loading" }
func (Restarting) phase() string     { return "restarting" }

// PhaseName returns a short name for logs and JSON
func PhaseName(p Phase) string {
	if p == nil {
		return Idle{}.phase()
	}
	return p.phase()
}

// Event is an input to Update
type Event interface {
	event()
}

// Load asks for a fresh copy of state and history
type Load struct{}

// Click is a click on a board square
type Click struct {
	Square string
}

// Restart asks the backend to reset the game
type Restart struct{}

// Loaded answers a FetchAll effect
type Loaded struct {
	Seq      uint64
	Snapshot api.Snapshot
	Err      error
}

// MoveResolved answers a SendMove effect. Applied is true once the backend
// accepted the move, even if the refresh after it failed.
type MoveResolved struct {
	Seq      uint64
	Applied  bool
	Snapshot api.Snapshot
	Err      error
}

// Restarted answers a SendRestart effect
type Restarted struct {
	Seq      uint64
	Snapshot api.Snapshot
	Err      error
}

func (Load) event()         {}
func (Click) event()        {}
func (Restart) event()      {}
func (Loaded) event()       {}
func (MoveResolved) event() {}
func (Restarted) event()    {}

// Effect is work Update asks the caller to perform. The result must be fed
// back as the matching resolution event carrying the same Seq.
type Effect interface {
	Sequence() uint64
}

// FetchAll reads state and history
type FetchAll struct{ Seq uint64 }

// SendMove submits Move, then reads state and history
type SendMove struct {
	Seq  uint64
	Move api.Move
}

// SendRestart resets the game, then reads state and history
type SendRestart struct{ Seq uint64 }

func (e FetchAll) Sequence() uint64    { return e.Seq }
func (e SendMove) Sequence() uint64    { return e.Seq }
func (e SendRestart) Sequence() uint64 { return e.Seq }
