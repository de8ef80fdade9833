package view

import (
	"testing"

	"retrochess/internal/api"
)

func TestBuildLookupExactSquares(t *testing.T) {
	in := []api.BoardSquare{
		{Position: "e1", Piece: api.Piece{Color: "white", Type: "king"}},
		{Position: "e8", Piece: api.Piece{Color: "black", Type: "king"}},
		{Position: "d2", Piece: api.Piece{Color: "white", Type: "pawn"}},
	}
	l := BuildLookup(in)
	if len(l) != len(in) {
		t.Fatalf("expected %d entries got %d", len(in), len(l))
	}
	for _, sq := range in {
		if got, ok := l.At(sq.Position); !ok || got != sq.Piece {
			t.Fatalf("square %s: expected %+v got %+v", sq.Position, sq.Piece, got)
		}
	}
	if _, ok := l.At("e4"); ok {
		t.Fatalf("absent square must be absent from the lookup")
	}
}

func TestBuildLookupEmpty(t *testing.T) {
	if l := BuildLookup(nil); len(l) != 0 {
		t.Fatalf("expected empty lookup, got %v", l)
	}
}

func TestIsLight(t *testing.T) {
	if IsLight(0, 1) {
		t.Fatalf("a1 should be dark")
	}
	if !IsLight(0, 8) {
		t.Fatalf("a8 should be light")
	}
	if !IsLight(7, 1) {
		t.Fatalf("h1 should be light")
	}
}

func TestRenderBoardLayout(t *testing.T) {
	b := RenderBoard(nil, Selection{}, nil, false)
	if got := b.Rows[0][0].ID; got != "a8" {
		t.Fatalf("top-left should be a8, got %s", got)
	}
	if got := b.Rows[7][7].ID; got != "h1" {
		t.Fatalf("bottom-right should be h1, got %s", got)
	}
	if got := b.Rows[7][4].ID; got != "e1" {
		t.Fatalf("expected e1, got %s", got)
	}
	a1, _ := b.Square("a1")
	if a1.Light || a1.Class() != "square dark" {
		t.Fatalf("a1 should be dark, got %q", a1.Class())
	}
	a8, _ := b.Square("a8")
	if !a8.Light {
		t.Fatalf("a8 should be light")
	}
	if len(b.Files) != 8 || b.Files[0] != "a" || len(b.Ranks) != 8 || b.Ranks[0] != "8" {
		t.Fatalf("unexpected legend files=%v ranks=%v", b.Files, b.Ranks)
	}
}

func TestRenderBoardTags(t *testing.T) {
	last := &api.HistoryEntry{From: "e2", To: "e4"}
	b := RenderBoard(nil, Selection{Selected: "e4", From: "e4"}, last, true)
	if !b.Disabled {
		t.Fatalf("expected disabled board")
	}
	e4, _ := b.Square("e4")
	for _, tag := range []Tag{TagSelected, TagFrom, TagLastTo} {
		if !e4.Has(tag) {
			t.Fatalf("e4 missing tag %s: %v", tag, e4.Tags)
		}
	}
	if e4.Has(TagLastFrom) {
		t.Fatalf("e4 should not be tagged last-from")
	}
	if e4.Class() != "square light selected from last-to" {
		t.Fatalf("unexpected class %q", e4.Class())
	}
	e2, _ := b.Square("e2")
	if len(e2.Tags) != 1 || !e2.Has(TagLastFrom) {
		t.Fatalf("e2 should only be last-from, got %v", e2.Tags)
	}
}

func TestRenderBoardPieces(t *testing.T) {
	pieces := Lookup{
		"g1": {Color: "white", Type: "knight"},
		"d8": {Color: "black", Type: "queen"},
		"c3": {Color: "green", Type: "knight"},
	}
	b := RenderBoard(pieces, Selection{}, nil, false)
	g1, _ := b.Square("g1")
	if g1.Glyph != "♘" || g1.Label() != "g1 white knight" {
		t.Fatalf("unexpected g1 %q %q", g1.Glyph, g1.Label())
	}
	d8, _ := b.Square("d8")
	if d8.Glyph != "♛" {
		t.Fatalf("unexpected d8 glyph %q", d8.Glyph)
	}
	c3, _ := b.Square("c3")
	if c3.Glyph != "" || c3.Piece == nil {
		t.Fatalf("unknown color should render no glyph but keep the piece")
	}
	e4, _ := b.Square("e4")
	if e4.Piece != nil || e4.Glyph != "" || e4.Label() != "e4" {
		t.Fatalf("e4 should be empty")
	}
}

func TestFormatMove(t *testing.T) {
	tests := []struct {
		entry api.HistoryEntry
		want  string
	}{
		{
			api.HistoryEntry{MoveNumber: 1, Color: "white", Piece: api.HistoryPiece{Type: "knight"}, From: "g1", To: "f3"},
			"1. W N g1-f3",
		},
		{
			api.HistoryEntry{MoveNumber: 8, Color: "black", Piece: api.HistoryPiece{Type: "pawn"}, From: "e2", To: "e1", Capture: true, Promotion: "q"},
			"8. B P e2xe1=Q",
		},
		{
			api.HistoryEntry{MoveNumber: 3, Color: "white", Piece: api.HistoryPiece{Type: "dragon"}, From: "a2", To: "a3"},
			"3. W P a2-a3",
		},
		{
			api.HistoryEntry{MoveNumber: 4, Color: "black", From: "h7", To: "h6"},
			"4. B P h7-h6",
		},
		{
			api.HistoryEntry{MoveNumber: 5, Color: "white", Piece: api.HistoryPiece{Type: "king"}, From: "e1", To: "g1"},
			"5. W K e1-g1",
		},
	}
	for _, tt := range tests {
		if got := FormatMove(tt.entry); got != tt.want {
			t.Fatalf("expected %q got %q", tt.want, got)
		}
	}
}

func TestRenderHistory(t *testing.T) {
	h := RenderHistory(nil)
	if !h.Empty() || h.CountLabel() != "0 moves" {
		t.Fatalf("expected empty history, got %+v", h)
	}
	h = RenderHistory([]api.HistoryEntry{
		{MoveNumber: 1, Color: "white", Piece: api.HistoryPiece{Type: "pawn"}, From: "e2", To: "e4"},
		{MoveNumber: 1, Color: "black", Piece: api.HistoryPiece{Type: "pawn"}, From: "e7", To: "e5"},
	})
	if h.Empty() || len(h.Lines) != 2 || h.Lines[1] != "1. B P e7-e5" || h.CountLabel() != "2 moves" {
		t.Fatalf("unexpected history %+v", h)
	}
}

func TestNewPageBeforeLoad(t *testing.T) {
	p := NewPage(PageInput{Loading: true, Busy: true})
	if p.Loaded || p.TurnLabel != "—" || p.Next != "—" || p.From != "—" {
		t.Fatalf("unexpected page %+v", p)
	}
	if !p.Board.Disabled {
		t.Fatalf("board should be disabled while busy")
	}
}

func TestNewPageLoaded(t *testing.T) {
	snap := &api.Snapshot{
		State: api.GameState{
			Board:       []api.BoardSquare{{Position: "e4", Piece: api.Piece{Color: "white", Type: "pawn"}}},
			CurrentTurn: "black",
		},
		History: []api.HistoryEntry{{MoveNumber: 1, Color: "white", Piece: api.HistoryPiece{Type: "pawn"}, From: "e2", To: "e4"}},
	}
	p := NewPage(PageInput{Snapshot: snap, Selection: Selection{Selected: "e7", From: "e7"}})
	if p.TurnLabel != "Black to move" || p.TurnClass != "pill pillBlack" || p.Next != "WHITE" {
		t.Fatalf("unexpected turn %+v", p)
	}
	if p.From != "E7" {
		t.Fatalf("expected From E7, got %q", p.From)
	}
	e4, _ := p.Board.Square("e4")
	if e4.Glyph != "♙" || !e4.Has(TagLastTo) {
		t.Fatalf("unexpected e4 %+v", e4)
	}
	if p.History.Count != 1 {
		t.Fatalf("expected one move in history")
	}
}
