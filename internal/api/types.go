package api

// Piece describes a chess piece as reported by the backend
type Piece struct {
	Color string `json:"color"`
	Type  string `json:"type"`
}

// BoardSquare is one occupied square of the board
type BoardSquare struct {
	Position string `json:"position"`
	Piece    Piece  `json:"piece"`
}

// GameState represents the board and side to move
type GameState struct {
	Board       []BoardSquare `json:"board"`
	CurrentTurn string        `json:"current_turn"`
}

// HistoryPiece is the piece that moved in a history entry
type HistoryPiece struct {
	Type string `json:"type"`
}

// HistoryEntry represents a single played move
type HistoryEntry struct {
	MoveNumber int          `json:"moveNumber"`
	Color      string       `json:"color"`
	Piece      HistoryPiece `json:"piece"`
	From       string       `json:"from"`
	To         string       `json:"to"`
	Capture    bool         `json:"capture"`
	Promotion  string       `json:"promotion,omitempty"`
}

// Move is a move submission
type Move struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// Snapshot is the game state and history read together after a change
type Snapshot struct {
	State   GameState      `json:"state"`
	History []HistoryEntry `json:"history"`
}

// LastMove returns the most recent history entry, if any
func (s Snapshot) LastMove() *HistoryEntry {
	if len(s.History) == 0 {
		return nil
	}
	last := s.History[len(s.History)-1]
	return &last
}

type historyResponse struct {
	History []HistoryEntry `json:"history"`
}
