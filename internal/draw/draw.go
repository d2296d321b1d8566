// Package draw renders the game to an ANSI terminal: a half-block canvas for
// world geometry, a chunked writer for text overlays, and a colour palette.
package draw

import (
	"fmt"
	"io"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// ClearScreenColor clears the terminal using the given SGR background
// parameters (as produced by Palette.FlashBackground), so the whole screen
// takes that colour. An empty sequence behaves like ClearScreen.
func ClearScreenColor(w io.Writer, bgSeq string) {
	if bgSeq == "" {
		ClearScreen(w)
		return
	}
	fmt.Fprintf(w, "\033[%sm\033[H\033[2J\033[0m", bgSeq)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
