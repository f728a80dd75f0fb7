package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Terminal control sequences.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqReset      = "\033[0m"
)

// maxChunkSize is the maximum bytes to write at once, just under a typical MTU.
const maxChunkSize = 1400

// TextTracker is told which cells text overwrote, so a canvas can repaint
// them once the text is gone. Canvas implements it.
type TextTracker interface {
	MarkTextDirty(col, row, n int)
}

// ChunkWriter accumulates a frame of terminal output and writes it in chunks
// for smooth network flow over SSH. Positions are 1-based canvas coordinates;
// the offset set with SetOffset is applied automatically.
type ChunkWriter struct {
	buf     []byte
	bufw    *bufio.Writer
	offCol  int
	offRow  int
	tracker TextTracker
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// TrackText reports every text write to t.
func (cw *ChunkWriter) TrackText(t TextTracker) {
	cw.tracker = t
}

// MoveCursor appends an ANSI cursor position sequence.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf = append(cw.buf, "\033["...)
	cw.buf = strconv.AppendInt(cw.buf, int64(row+cw.offRow), 10)
	cw.buf = append(cw.buf, ';')
	cw.buf = strconv.AppendInt(cw.buf, int64(col+cw.offCol), 10)
	cw.buf = append(cw.buf, 'H')
}

// Clear appends a full terminal clear.
func (cw *ChunkWriter) Clear() {
	cw.buf = append(cw.buf, seqClear...)
}

// WriteString appends raw output.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf = append(cw.buf, s...)
}

// WriteAt writes text at (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf = append(cw.buf, s...)
	if cw.tracker != nil {
		cw.tracker.MarkTextDirty(col, row, utf8.RuneCountInString(s))
	}
}

// WriteCentered writes s centered on col at row.
func (cw *ChunkWriter) WriteCentered(col, row int, s string) {
	cw.WriteAt(max(1, col-utf8.RuneCountInString(s)/2), row, s)
}

// WritePadded writes s at (col, row), cut or padded with spaces to width
// cells so a shorter value erases a longer one.
func (cw *ChunkWriter) WritePadded(col, row, width int, s string) {
	if width <= 0 {
		return
	}
	n := utf8.RuneCountInString(s)
	if n > width {
		s = string([]rune(s)[:width])
		n = width
	}
	cw.WriteAt(col, row, s+strings.Repeat(" ", width-n))
}

// WriteColored writes text at (col, row) in foreground color fg.
func (cw *ChunkWriter) WriteColored(col, row int, fg Color, s string) {
	cw.buf = appendSGR(cw.buf, fg, ColorNone)
	cw.WriteAt(col, row, s)
	cw.buf = append(cw.buf, seqReset...)
}

// Flush writes the accumulated frame to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf
	for len(data) > 0 {
		chunk := data[:min(len(data), maxChunkSize)]
		if _, err := cw.bufw.Write(chunk); err != nil {
			cw.buf = cw.buf[:0]
			return err
		}
		data = data[len(chunk):]
	}
	cw.buf = cw.buf[:0]
	return cw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, seqReset+seqClear)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, seqHideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, seqShowCursor)
}
