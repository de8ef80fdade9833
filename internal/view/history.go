package view

import (
	"fmt"
	"strings"

	"retrochess/internal/api"
)

// EmptyHistory is shown instead of the move list before the first move.
const EmptyHistory = "No moves yet."

// FormatMove renders a history entry, e.g. "1. W N g1-f3" or "8. B P e2xe1=Q".
func FormatMove(e api.HistoryEntry) string {
	mover := "B"
	if e.Color == "white" {
		mover = "W"
	}
	sep := "-"
	if e.Capture {
		sep = "x"
	}
	promo := ""
	if e.Promotion != "" {
		promo = "=" + strings.ToUpper(e.Promotion)
	}
	return fmt.Sprintf("%d. %s %s %s%s%s%s", e.MoveNumber, mover, PieceLetter(e.Piece.Type), e.From, sep, e.To, promo)
}

// History is the rendered move list
type History struct {
	Lines []string
	Count int
}

// Empty reports whether no move has been played
func (h History) Empty() bool { return len(h.Lines) == 0 }

// CountLabel returns e.g. "3 moves".
func (h History) CountLabel() string {
	return fmt.Sprintf("%d moves", h.Count)
}

// RenderHistory formats every entry in order.
func RenderHistory(entries []api.HistoryEntry) History {
	h := History{Lines: make([]string, 0, len(entries)), Count: len(entries)}
	for _, e := range entries {
		h.Lines = append(h.Lines, FormatMove(e))
	}
	return h
}
