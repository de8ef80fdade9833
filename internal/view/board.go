package view

import (
	"strings"

	"github.com/corentings/chess/v2"

	"retrochess/internal/api"
)

// Tag marks a visual state of a square. A square may carry several.
type Tag string

const (
	TagSelected Tag = "selected"
	TagFrom     Tag = "from"
	TagLastFrom Tag = "last-from"
	TagLastTo   Tag = "last-to"
)

// Selection is the client-side pick shown on the board
type Selection struct {
	Selected string
	From     string
}

// Square is one cell of the rendered board
type Square struct {
	ID    string
	Light bool
	Piece *api.Piece
	Glyph string
	Tags  []Tag
}

// Has reports whether the square carries tag t
func (s Square) Has(t Tag) bool {
	for _, tag := range s.Tags {
		if tag == t {
			return true
		}
	}
	return false
}

// Class returns the CSS classes for the square, e.g. "square light selected from".
func (s Square) Class() string {
	parts := []string{"square", "dark"}
	if s.Light {
		parts[1] = "light"
	}
	for _, t := range s.Tags {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, " ")
}

// Label is the accessible name of the square, e.g. "e4 white pawn".
func (s Square) Label() string {
	if s.Piece == nil {
		return s.ID
	}
	return s.ID + " " + s.Piece.Color + " " + s.Piece.Type
}

// Board is the 8x8 grid from rank 8 down to rank 1, files a to h.
type Board struct {
	Rows     [8][8]Square
	Files    []string
	Ranks    []string
	Disabled bool
}

// IsLight classifies a square; fileIndex is 0 for the a-file, rank is 1..8.
func IsLight(fileIndex, rank int) bool {
	return (fileIndex+rank)%2 == 0
}

// RenderBoard lays out the board. Tags come from the selection and the last
// played move; disabled is set while a request is in flight.
func RenderBoard(pieces Lookup, sel Selection, last *api.HistoryEntry, disabled bool) Board {
	b := Board{Disabled: disabled}
	for file := chess.FileA; file <= chess.FileH; file++ {
		b.Files = append(b.Files, file.String())
	}
	row := 0
	for rank := chess.Rank8; rank >= chess.Rank1; rank-- {
		b.Ranks = append(b.Ranks, rank.String())
		for file := chess.FileA; file <= chess.FileH; file++ {
			id := chess.Square(int(file) + 8*int(rank)).String()
			sq := Square{
				ID:    id,
				Light: IsLight(int(file), int(rank)+1),
			}
			if p, ok := pieces.At(id); ok {
				piece := p
				sq.Piece = &piece
				sq.Glyph = Glyph(p)
			}
			if sel.Selected == id {
				sq.Tags = append(sq.Tags, TagSelected)
			}
			if sel.From == id {
				sq.Tags = append(sq.Tags, TagFrom)
			}
			if last != nil && last.From == id {
				sq.Tags = append(sq.Tags, TagLastFrom)
			}
			if last != nil && last.To == id {
				sq.Tags = append(sq.Tags, TagLastTo)
			}
			b.Rows[row][int(file)] = sq
		}
		row++
	}
	return b
}

// Square returns the rendered cell for a square id, if it is on the board.
func (b Board) Square(id string) (Square, bool) {
	for _, row := range b.Rows {
		for _, sq := range row {
			if sq.ID == id {
				return sq, true
			}
		}
	}
	return Square{}, false
}
