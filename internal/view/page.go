package view

import (
	"strings"

	"retrochess/internal/api"
)

const placeholder = "—"

// PageInput is everything the page depends on
type PageInput struct {
	Snapshot   *api.Snapshot
	Selection  Selection
	Loading    bool
	Submitting bool
	Busy       bool
	Error      string
	MoveError  string
	Version    uint64
}

// Page is the view-model of the whole screen, shared by the web and terminal frontends.
type Page struct {
	Loaded     bool
	Loading    bool
	Submitting bool
	Busy       bool
	Turn       string
	TurnLabel  string
	TurnClass  string
	From       string
	Next       string
	Error      string
	MoveError  string
	Board      Board
	History    History
	Version    uint64
}

// NewPage derives the page from the cached snapshot and interaction state.
func NewPage(in PageInput) Page {
	p := Page{
		Loaded:     in.Snapshot != nil,
		Loading:    in.Loading,
		Submitting: in.Submitting,
		Busy:       in.Busy,
		TurnLabel:  placeholder,
		TurnClass:  "pill pillWhite",
		From:       placeholder,
		Next:       placeholder,
		Error:      in.Error,
		MoveError:  in.MoveError,
		Version:    in.Version,
	}
	if in.Selection.From != "" {
		p.From = strings.ToUpper(in.Selection.From)
	}

	var (
		pieces Lookup
		last   *api.HistoryEntry
	)
	if in.Snapshot != nil {
		turn := in.Snapshot.State.CurrentTurn
		if turn == "" {
			turn = "white"
		}
		p.Turn = turn
		if turn == "white" {
			p.TurnLabel = "White to move"
			p.Next = "BLACK"
		} else {
			p.TurnLabel = "Black to move"
			p.TurnClass = "pill pillBlack"
			p.Next = "WHITE"
		}
		pieces = BuildLookup(in.Snapshot.State.Board)
		last = in.Snapshot.LastMove()
		p.History = RenderHistory(in.Snapshot.History)
	} else {
		p.History = RenderHistory(nil)
	}
	p.Board = RenderBoard(pieces, in.Selection, last, in.Busy)
	return p
}
