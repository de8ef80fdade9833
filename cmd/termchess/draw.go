package main

import (
	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"retrochess/internal/view"
)

// Board placement on screen. Each square is cellWidth columns by one row.
const (
	boardX    = 3
	boardY    = 2
	cellWidth = 3
	panelX    = boardX + 8*cellWidth + 4
)

const files = "abcdefgh"

// cursor addresses a square by file index (0 = a) and row (0 = rank 8).
type cursor struct {
	file int
	row  int
}

func (c cursor) square() string {
	return string(files[c.file]) + string(rune('8'-c.row))
}

func (c cursor) move(df, dr int) cursor {
	c.file = clamp(c.file+df, 0, 7)
	c.row = clamp(c.row+dr, 0, 7)
	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// cursorAt maps a screen cell to the board square under it.
func cursorAt(x, y int) (cursor, bool) {
	if x < boardX || y < boardY {
		return cursor{}, false
	}
	file := (x - boardX) / cellWidth
	row := y - boardY
	if file > 7 || row > 7 {
		return cursor{}, false
	}
	return cursor{file: file, row: row}, true
}

// squareColors picks the background for a square; tags win over the base color.
func squareColors(sq view.Square) (fg, bg termbox.Attribute) {
	fg = termbox.ColorBlack
	bg = termbox.ColorYellow
	if sq.Light {
		bg = termbox.ColorWhite
	}
	switch {
	case sq.Has(view.TagFrom):
		bg = termbox.ColorGreen
	case sq.Has(view.TagSelected):
		bg = termbox.ColorCyan
	case sq.Has(view.TagLastFrom), sq.Has(view.TagLastTo):
		bg = termbox.ColorMagenta
	}
	return fg, bg
}

func draw(p view.Page, cur cursor) {
	_ = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	printAt(boardX, 0, "Retro Chess", termbox.ColorYellow|termbox.AttrBold, termbox.ColorDefault)

	switch {
	case p.Loading:
		printAt(boardX, boardY, "Loading game…", termbox.ColorDefault, termbox.ColorDefault)
	case p.Error != "":
		printAt(boardX, boardY, "Couldn’t load the game", termbox.ColorRed|termbox.AttrBold, termbox.ColorDefault)
		printAt(boardX, boardY+1, p.Error, termbox.ColorRed, termbox.ColorDefault)
		printAt(boardX, boardY+3, "Press l to retry.", termbox.ColorDefault, termbox.ColorDefault)
	default:
		drawBoard(p.Board, cur)
	}
	drawPanel(p)
	printAt(boardX, boardY+11, "arrows/mouse move · enter select · r restart · l reload · q quit",
		termbox.ColorBlue, termbox.ColorDefault)
	_ = termbox.Flush()
}

func drawBoard(b view.Board, cur cursor) {
	for row, squares := range b.Rows {
		y := boardY + row
		printAt(boardX-2, y, b.Ranks[row], termbox.ColorDefault, termbox.ColorDefault)
		for file, sq := range squares {
			x := boardX + file*cellWidth
			fg, bg := squareColors(sq)
			left, right := ' ', ' '
			if cur.file == file && cur.row == row {
				left, right = '[', ']'
			}
			glyph := sq.Glyph
			if glyph == "" {
				glyph = " "
			}
			termbox.SetCell(x, y, left, fg, bg)
			printAt(x+1, y, glyph, fg, bg)
			termbox.SetCell(x+2, y, right, fg, bg)
		}
	}
	for i, f := range b.Files {
		printAt(boardX+i*cellWidth+1, boardY+8, f, termbox.ColorDefault, termbox.ColorDefault)
	}
	if b.Disabled {
		printAt(boardX, boardY+9, "Please wait…", termbox.ColorBlue, termbox.ColorDefault)
	}
}

func drawPanel(p view.Page) {
	y := boardY
	printAt(panelX, y, "Turn: "+p.TurnLabel, termbox.ColorDefault|termbox.AttrBold, termbox.ColorDefault)
	y++
	printAt(panelX, y, "You selected: "+p.From, termbox.ColorDefault, termbox.ColorDefault)
	y++
	printAt(panelX, y, "Next: "+p.Next, termbox.ColorDefault, termbox.ColorDefault)
	y++
	if p.MoveError != "" {
		printAt(panelX, y, p.MoveError, termbox.ColorRed, termbox.ColorDefault)
	}
	y += 2

	printAt(panelX, y, "Move History ("+p.History.CountLabel()+")", termbox.ColorDefault|termbox.AttrBold, termbox.ColorDefault)
	y++
	if p.History.Empty() {
		printAt(panelX, y, view.EmptyHistory, termbox.ColorBlue, termbox.ColorDefault)
		return
	}
	_, height := termbox.Size()
	lines := p.History.Lines
	if room := height - y - 1; room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	for _, line := range lines {
		printAt(panelX, y, line, termbox.ColorDefault, termbox.ColorDefault)
		y++
	}
}

func printAt(x, y int, s string, fg, bg termbox.Attribute) {
	for _, r := range s {
		termbox.SetCell(x, y, r, fg, bg)
		x += runewidth.RuneWidth(r)
	}
}
