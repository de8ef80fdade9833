package game

import (
	"errors"

	"retrochess/internal/api"
	"retrochess/internal/view"
)

// Messages used when a failure carries no text of its own.
const (
	msgLoadFailed    = "Failed to load game state."
	msgMoveFailed    = "Illegal move."
	msgRestartFailed = "Failed to restart game."
)

// Model is the complete client state of one session. It is only changed
// through Update.
type Model struct {
	Phase Phase
	// Snapshot is the last state and history read from the backend, nil
	// until the first successful load.
	Snapshot *api.Snapshot
	// Error blocks the board: a failed load or restart.
	Error string
	// MoveError explains a failed move and is cleared by the next action.
	MoveError string
	// Seq numbers requests; only the answer to the latest one is applied.
	Seq uint64
	// AutoQueen promotes a pawn reaching the last rank to a queen.
	AutoQueen bool
}

// NewModel returns an idle model with nothing loaded.
func NewModel(autoQueen bool) Model {
	return Model{Phase: Idle{}, AutoQueen: autoQueen}
}

// Busy reports whether a request is in flight. User events are ignored then.
func (m Model) Busy() bool {
	switch m.Phase.(type) {
	case Loading, Submitting, Restarting:
		return true
	}
	return false
}

// Selection returns the squares to highlight.
func (m Model) Selection() view.Selection {
	switch p := m.Phase.(type) {
	case SourceSelected:
		return view.Selection{Selected: p.Selected, From: p.From}
	case Submitting:
		return view.Selection{Selected: p.Move.To, From: p.Move.From}
	}
	return view.Selection{}
}

// Update applies ev and returns the next model plus the effect to run, if any.
func Update(m Model, ev Event) (Model, Effect) {
	if m.Phase == nil {
		m.Phase = Idle{}
	}
	switch ev := ev.(type) {
	case Load:
		if m.Busy() {
			return m, nil
		}
		m.Seq++
		m.Phase = Loading{}
		m.Error = ""
		return m, FetchAll{Seq: m.Seq}

	case Click:
		return click(m, ev.Square)

	case Restart:
		if m.Busy() {
			return m, nil
		}
		m.Seq++
		m.Phase = Restarting{}
		m.Error = ""
		m.MoveError = ""
		return m, SendRestart{Seq: m.Seq}

	case Loaded:
		if _, ok := m.Phase.(Loading); !ok || ev.Seq != m.Seq {
			return m, nil
		}
		m.Phase = Idle{}
		if ev.Err != nil {
			m.Error = message(ev.Err, msgLoadFailed)
			return m, nil
		}
		m.Snapshot = snapshot(ev.Snapshot)
		return m, nil

	case MoveResolved:
		p, ok := m.Phase.(Submitting)
		if !ok || ev.Seq != m.Seq {
			return m, nil
		}
		switch {
		case ev.Err != nil && !ev.Applied:
			m.Phase = SourceSelected{From: p.Move.From, Selected: p.Move.To}
			m.MoveError = message(ev.Err, msgMoveFailed)
		case ev.Err != nil:
			m.Phase = Idle{}
			m.MoveError = message(ev.Err, msgMoveFailed)
		default:
			m.Phase = Idle{}
			m.Snapshot = snapshot(ev.Snapshot)
		}
		return m, nil

	case Restarted:
		if _, ok := m.Phase.(Restarting); !ok || ev.Seq != m.Seq {
			return m, nil
		}
		m.Phase = Idle{}
		if ev.Err != nil {
			m.Error = message(ev.Err, msgRestartFailed)
			return m, nil
		}
		m.Snapshot = snapshot(ev.Snapshot)
		return m, nil
	}
	return m, nil
}

func click(m Model, square string) (Model, Effect) {
	if m.Busy() {
		return m, nil
	}
	m.MoveError = ""

	from, ok := m.Phase.(SourceSelected)
	if !ok {
		m.Phase = SourceSelected{From: square, Selected: square}
		return m, nil
	}
	if from.From == square {
		m.Phase = Idle{}
		return m, nil
	}

	move := api.Move{From: from.From, To: square}
	if m.AutoQueen && m.promotes(move) {
		move.Promotion = "q"
	}
	m.Seq++
	m.Phase = Submitting{Move: move}
	return m, SendMove{Seq: m.Seq, Move: move}
}

// promotes reports whether the cached board has a pawn on move.From and
// move.To is on that pawn's last rank.
func (m Model) promotes(move api.Move) bool {
	if m.Snapshot == nil || len(move.To) != 2 {
		return false
	}
	p, ok := view.BuildLookup(m.Snapshot.State.Board).At(move.From)
	if !ok || !view.IsPawn(p) {
		return false
	}
	rank := move.To[1]
	return (p.Color == "white" && rank == '8') || (p.Color == "black" && rank == '1')
}

// View builds the page view-model for the current state.
func (m Model) View(version uint64) view.Page {
	_, loading := m.Phase.(Loading)
	_, submitting := m.Phase.(Submitting)
	return view.NewPage(view.PageInput{
		Snapshot:   m.Snapshot,
		Selection:  m.Selection(),
		Loading:    loading,
		Submitting: submitting,
		Busy:       m.Busy(),
		Error:      m.Error,
		MoveError:  m.MoveError,
		Version:    version,
	})
}

func snapshot(s api.Snapshot) *api.Snapshot {
	return &s
}

func message(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
