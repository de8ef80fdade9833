// Package view derives display models from backend snapshots and the
// current selection. Nothing here talks to the network or mutates state.
package view

import "retrochess/internal/api"

// Lookup maps a square id such as "e4" to the piece standing on it.
// Empty squares have no entry.
type Lookup map[string]api.Piece

// BuildLookup indexes the occupied squares reported by the backend. Later
// entries overwrite earlier ones for the same square.
func BuildLookup(squares []api.BoardSquare) Lookup {
	out := make(Lookup, len(squares))
	for _, sq := range squares {
		out[sq.Position] = sq.Piece
	}
	return out
}

// At returns the piece on square, if any.
func (l Lookup) At(square string) (api.Piece, bool) {
	p, ok := l[square]
	return p, ok
}
