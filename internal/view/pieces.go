package view

import (
	"strings"

	"github.com/corentings/chess/v2"

	"retrochess/internal/api"
)

var pieceTypes = map[string]chess.PieceType{
	"king":   chess.King,
	"queen":  chess.Queen,
	"rook":   chess.Rook,
	"bishop": chess.Bishop,
	"knight": chess.Knight,
	"pawn":   chess.Pawn,
}

var colors = map[string]chess.Color{
	"white": chess.White,
	"black": chess.Black,
}

// Glyph returns the Unicode symbol for a piece, or "" when the color or type
// is not recognized.
func Glyph(p api.Piece) string {
	pt, ok := pieceTypes[p.Type]
	if !ok {
		return ""
	}
	c, ok := colors[p.Color]
	if !ok {
		return ""
	}
	return chess.NewPiece(pt, c).String()
}

// PieceLetter returns K, Q, R, B, N or P. Unknown or missing types read as a pawn.
func PieceLetter(pieceType string) string {
	pt, ok := pieceTypes[pieceType]
	if !ok {
		pt = chess.Pawn
	}
	return strings.ToUpper(pt.String())
}

// IsPawn reports whether p is a pawn.
func IsPawn(p api.Piece) bool {
	pt, ok := pieceTypes[p.Type]
	return ok && pt == chess.Pawn
}
