package game

import (
	"errors"
	"testing"

	"retrochess/internal/api"
)

func loadedModel(t *testing.T, board ...api.BoardSquare) Model {
	t.Helper()
	m := NewModel(true)
	m, eff := Update(m, Load{})
	fetch, ok := eff.(FetchAll)
	if !ok {
		t.Fatalf("expected FetchAll, got %T", eff)
	}
	m, _ = Update(m, Loaded{Seq: fetch.Seq, Snapshot: api.Snapshot{State: api.GameState{Board: board, CurrentTurn: "white"}}})
	if _, ok := m.Phase.(Idle); !ok || m.Snapshot == nil {
		t.Fatalf("expected loaded idle model, got %+v", m)
	}
	return m
}

func TestClickFromIdleSelectsSource(t *testing.T) {
	for _, sq := range []string{"e2", "e4", "h8"} {
		m, eff := Update(loadedModel(t), Click{Square: sq})
		if eff != nil {
			t.Fatalf("first click must not start a request")
		}
		p, ok := m.Phase.(SourceSelected)
		if !ok || p.From != sq || p.Selected != sq {
			t.Fatalf("expected source %s selected, got %#v", sq, m.Phase)
		}
	}
}

func TestClickSameSquareDeselects(t *testing.T) {
	m, _ := Update(loadedModel(t), Click{Square: "e2"})
	m, eff := Update(m, Click{Square: "e2"})
	if eff != nil {
		t.Fatalf("toggling off must not start a request")
	}
	if _, ok := m.Phase.(Idle); !ok {
		t.Fatalf("expected idle, got %#v", m.Phase)
	}
	if sel := m.Selection(); sel.From != "" || sel.Selected != "" {
		t.Fatalf("expected empty selection, got %+v", sel)
	}
}

func TestClickOtherSquareSubmits(t *testing.T) {
	m, _ := Update(loadedModel(t), Click{Square: "g1"})
	m, eff := Update(m, Click{Square: "f3"})
	send, ok := eff.(SendMove)
	if !ok {
		t.Fatalf("expected SendMove, got %T", eff)
	}
	if send.Move != (api.Move{From: "g1", To: "f3"}) || send.Seq != m.Seq {
		t.Fatalf("unexpected effect %+v", send)
	}
	if !m.Busy() {
		t.Fatalf("expected busy model while submitting")
	}
	if sel := m.Selection(); sel.From != "g1" || sel.Selected != "f3" {
		t.Fatalf("unexpected selection while submitting %+v", sel)
	}
}

func TestMoveRejectedKeepsSource(t *testing.T) {
	m, _ := Update(loadedModel(t), Click{Square: "e2"})
	m, eff := Update(m, Click{Square: "e5"})
	seq := eff.Sequence()
	before := m.Snapshot

	m, _ = Update(m, MoveResolved{Seq: seq, Err: &api.Error{Message: "Illegal move: e2e5", Status: 400}})
	p, ok := m.Phase.(SourceSelected)
	if !ok || p.From != "e2" || p.Selected != "e5" {
		t.Fatalf("expected source kept after rejection, got %#v", m.Phase)
	}
	if m.MoveError != "Illegal move: e2e5" {
		t.Fatalf("unexpected move error %q", m.MoveError)
	}
	if m.Snapshot != before {
		t.Fatalf("snapshot must not change on rejection")
	}

	m, eff = Update(m, Click{Square: "e4"})
	send, ok := eff.(SendMove)
	if !ok || send.Move.From != "e2" || send.Move.To != "e4" {
		t.Fatalf("expected retry from e2, got %#v", eff)
	}
	if m.MoveError != "" {
		t.Fatalf("move error should clear on the next click")
	}
}

func TestMoveAcceptedReplacesSnapshot(t *testing.T) {
	m, _ := Update(loadedModel(t), Click{Square: "e2"})
	m, eff := Update(m, Click{Square: "e4"})
	next := api.Snapshot{
		State:   api.GameState{CurrentTurn: "black"},
		History: []api.HistoryEntry{{MoveNumber: 1, Color: "white", From: "e2", To: "e4"}},
	}
	m, _ = Update(m, MoveResolved{Seq: eff.Sequence(), Applied: true, Snapshot: next})
	if _, ok := m.Phase.(Idle); !ok {
		t.Fatalf("expected idle after move, got %#v", m.Phase)
	}
	if m.Snapshot.State.CurrentTurn != "black" || len(m.Snapshot.History) != 1 {
		t.Fatalf("snapshot not replaced: %+v", m.Snapshot)
	}
}

func TestMoveAppliedButRefreshFailed(t *testing.T) {
	m, _ := Update(loadedModel(t), Click{Square: "e2"})
	m, eff := Update(m, Click{Square: "e4"})
	m, _ = Update(m, MoveResolved{Seq: eff.Sequence(), Applied: true, Err: errors.New("history unavailable")})
	if _, ok := m.Phase.(Idle); !ok {
		t.Fatalf("selection should be cleared once the move was accepted, got %#v", m.Phase)
	}
	if m.MoveError != "history unavailable" {
		t.Fatalf("unexpected move error %q", m.MoveError)
	}
}

func TestMoveErrorFallback(t *testing.T) {
	m, _ := Update(loadedModel(t), Click{Square: "e2"})
	m, eff := Update(m, Click{Square: "e4"})
	m, _ = Update(m, MoveResolved{Seq: eff.Sequence(), Err: &api.Error{}})
	if m.MoveError != "Illegal move." {
		t.Fatalf("expected fallback message, got %q", m.MoveError)
	}
}

func TestEventsIgnoredWhileBusy(t *testing.T) {
	m, _ := Update(loadedModel(t), Click{Square: "e2"})
	m, _ = Update(m, Click{Square: "e4"})
	busy := m
	for _, ev := range []Event{Click{Square: "d2"}, Restart{}, Load{}} {
		next, eff := Update(m, ev)
		if eff != nil || next != busy {
			t.Fatalf("%T should be ignored while submitting", ev)
		}
	}
}

func TestStaleResolutionIgnored(t *testing.T) {
	m, _ := Update(loadedModel(t), Click{Square: "e2"})
	m, eff := Update(m, Click{Square: "e4"})
	stale := MoveResolved{Seq: eff.Sequence() - 1, Applied: true}
	next, _ := Update(m, stale)
	if next != m {
		t.Fatalf("stale resolution must be ignored")
	}
	next, _ = Update(m, Loaded{Seq: eff.Sequence()})
	if next != m {
		t.Fatalf("resolution for another phase must be ignored")
	}
}

func TestRestartClearsSelectionImmediately(t *testing.T) {
	m, _ := Update(loadedModel(t), Click{Square: "e2"})
	m.MoveError = "old"
	m.Error = "old"
	m, eff := Update(m, Restart{})
	if _, ok := eff.(SendRestart); !ok {
		t.Fatalf("expected SendRestart, got %T", eff)
	}
	if sel := m.Selection(); sel.From != "" || sel.Selected != "" {
		t.Fatalf("selection must be cleared before the restart resolves, got %+v", sel)
	}
	if m.Error != "" || m.MoveError != "" {
		t.Fatalf("errors must be cleared on restart")
	}

	m, _ = Update(m, Restarted{Seq: eff.Sequence(), Err: &api.Error{Message: "backend down", Status: 503}})
	if m.Error != "backend down" {
		t.Fatalf("expected global error, got %q", m.Error)
	}
	if sel := m.Selection(); sel.From != "" || sel.Selected != "" {
		t.Fatalf("selection must stay cleared after a failed restart, got %+v", sel)
	}
	if m.Busy() {
		t.Fatalf("model should not be busy after restart resolved")
	}
}

func TestLoadFailureSetsGlobalError(t *testing.T) {
	m, eff := Update(NewModel(false), Load{})
	if _, ok := m.Phase.(Loading); !ok {
		t.Fatalf("expected loading phase")
	}
	m, _ = Update(m, Loaded{Seq: eff.Sequence(), Err: &api.Error{}})
	if m.Error != "Failed to load game state." || m.Snapshot != nil {
		t.Fatalf("unexpected model %+v", m)
	}
	m, eff = Update(m, Load{})
	if eff == nil || m.Error != "" {
		t.Fatalf("retry should clear the error and fetch again")
	}
}

func TestAutoQueen(t *testing.T) {
	board := []api.BoardSquare{
		{Position: "a7", Piece: api.Piece{Color: "white", Type: "pawn"}},
		{Position: "h2", Piece: api.Piece{Color: "black", Type: "pawn"}},
		{Position: "d7", Piece: api.Piece{Color: "white", Type: "rook"}},
	}
	tests := []struct {
		from, to string
		promo    string
	}{
		{"a7", "a8", "q"},
		{"h2", "h1", "q"},
		{"a7", "a6", ""},
		{"d7", "d8", ""},
		{"b7", "b8", ""},
	}
	for _, tt := range tests {
		m, _ := Update(loadedModel(t, board...), Click{Square: tt.from})
		_, eff := Update(m, Click{Square: tt.to})
		send := eff.(SendMove)
		if send.Move.Promotion != tt.promo {
			t.Fatalf("%s-%s: expected promotion %q got %q", tt.from, tt.to, tt.promo, send.Move.Promotion)
		}
	}

	m := loadedModel(t, board...)
	m.AutoQueen = false
	m, _ = Update(m, Click{Square: "a7"})
	_, eff := Update(m, Click{Square: "a8"})
	if eff.(SendMove).Move.Promotion != "" {
		t.Fatalf("auto-queen disabled should not add a promotion")
	}
}
