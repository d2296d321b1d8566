package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// TextLayer collects the HUD, message box and overlay screens drawn over the
// canvas and writes them in network-sized chunks. Coordinates are 1-based
// columns and rows inside the render area; the area's offset in the real
// terminal is added when the cursor moves.
type TextLayer struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int
	width  int
	height int
	bell   bool
}

// NewTextLayer creates a text layer writing to w for a render area of
// width x height cells placed at offsetCol, offsetRow.
func NewTextLayer(w io.Writer, offsetCol, offsetRow, width, height int) *TextLayer {
	return &TextLayer{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
		width:  width,
		height: height,
	}
}

// SetArea moves and resizes the render area after a terminal resize.
func (tl *TextLayer) SetArea(offsetCol, offsetRow, width, height int) {
	tl.offCol, tl.offRow = offsetCol, offsetRow
	tl.width, tl.height = width, height
}

// Width returns the render area width in columns.
func (tl *TextLayer) Width() int { return tl.width }

// Height returns the render area height in rows.
func (tl *TextLayer) Height() int { return tl.height }

// MoveCursor appends an ANSI cursor position sequence for col, row.
func (tl *TextLayer) MoveCursor(col, row int) {
	tl.buf.WriteString("\033[")
	tl.buf.Write(strconv.AppendInt(tl.numBuf[:0], int64(row+tl.offRow), 10))
	tl.buf.WriteByte(';')
	tl.buf.Write(strconv.AppendInt(tl.numBuf[:0], int64(col+tl.offCol), 10))
	tl.buf.WriteByte('H')
}

// Write lets Canvas.Render stream its rows into the same frame.
func (tl *TextLayer) Write(p []byte) (n int, err error) {
	return tl.buf.Write(p)
}

func (tl *TextLayer) WriteString(s string) {
	tl.buf.WriteString(s)
}

// WriteAt writes s starting at col, row.
func (tl *TextLayer) WriteAt(col, row int, s string) {
	tl.MoveCursor(col, row)
	tl.buf.WriteString(s)
}

// WriteCentered writes a single line centred on row. Styled text is
// measured by its printable width.
func (tl *TextLayer) WriteCentered(row int, s string) {
	col := (tl.width-lipgloss.Width(s))/2 + 1
	if col < 1 {
		col = 1
	}
	tl.WriteAt(col, row, s)
}

// WriteRight writes s so that it ends at the right edge of the area. It
// writes nothing and reports false when s would start before minCol.
func (tl *TextLayer) WriteRight(row, minCol int, s string) bool {
	col := tl.width - lipgloss.Width(s)
	if col < minCol {
		return false
	}
	tl.WriteAt(col, row, s)
	return true
}

// WriteBox centres a multi-line block, such as a bordered message, in the
// middle of the area. A block larger than the area is pinned to the top-left.
func (tl *TextLayer) WriteBox(block string) {
	col := (tl.width-lipgloss.Width(block))/2 + 1
	row := (tl.height-lipgloss.Height(block))/2 + 1
	if col < 1 {
		col = 1
	}
	if row < 1 {
		row = 1
	}
	for i, line := range strings.Split(block, "\n") {
		tl.WriteAt(col, row+i, line)
	}
}

// Bell rings the terminal bell once at the end of the next Flush.
func (tl *TextLayer) Bell() {
	tl.bell = true
}

var _ io.Writer = (*TextLayer)(nil)

// Flush writes the frame in chunks of at most maxChunkSize bytes and resets
// the layer.
func (tl *TextLayer) Flush() error {
	if tl.bell {
		tl.buf.WriteByte('\a')
		tl.bell = false
	}
	data := tl.buf.String()
	tl.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := tl.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return tl.bufw.Flush()
}

// TermSizeFunc reports the terminal size in columns and rows.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the local terminal on stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
