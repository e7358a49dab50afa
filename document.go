package vrope

import (
	"github.com/vrope/vrope/internal/buffer"
	"github.com/vrope/vrope/internal/edit"
	"github.com/vrope/vrope/internal/scanner"
)

// WidthMethod selects the width-oracle algorithm a host wires into
// NewWidthOracle.
type WidthMethod int

const (
	// WidthMethodUnicode is the tiered unicode-width default.
	WidthMethodUnicode WidthMethod = iota
	// WidthMethodWCWidth mirrors POSIX wcwidth via go-runewidth.
	WidthMethodWCWidth
)

// WidthOracle maps a single grapheme cluster's bytes to a terminal cell
// count. Must be deterministic and side-effect free.
type WidthOracle = scanner.Oracle

// GraphemeSpan is one grapheme cluster's location within a scanned slice.
type GraphemeSpan = scanner.GraphemeSpan

// GraphemeIteratorFunc produces, for any byte slice, the grapheme cluster
// spans within it.
type GraphemeIteratorFunc = scanner.IteratorFunc

// UnicodeConfig is the locale-sensitive narrow/wide toggle for
// ambiguous-width characters, threaded into NewWidthOracle.
type UnicodeConfig = scanner.UnicodeConfig

// NewUnicodeConfig returns the default (narrow) configuration.
func NewUnicodeConfig() UnicodeConfig { return scanner.NewUnicodeConfig() }

// NewWidthOracle builds a WidthOracle for method and cfg.
func NewWidthOracle(method WidthMethod, cfg UnicodeConfig) WidthOracle {
	m := scanner.WidthMethodUnicode
	if method == WidthMethodWCWidth {
		m = scanner.WidthMethodWCWidth
	}
	return scanner.OracleFor(m, cfg)
}

// DefaultGraphemeIterator is the uniseg-backed grapheme iterator used when a
// host does not need a custom one.
var DefaultGraphemeIterator GraphemeIteratorFunc = scanner.DefaultIterator

// Cursor is a display-column cursor position: row, column, and the sticky
// desired column preserved across vertical motion.
type Cursor = edit.Cursor

// Document is the root handle over one in-memory buffer: its registry,
// rope, width oracle, and edit state. The zero value is invalid; construct
// with NewDocument. Not safe for concurrent use: a document is a single
// mutation domain, and mutating methods must not overlap with reads or
// with each other.
type Document struct {
	buf *buffer.TextBuffer
	eb  *edit.EditBuffer

	graphemes GraphemeIteratorFunc
}

// NewDocument constructs an empty document with width injected via width
// and a grapheme-cluster iterator factory injected via graphemes. A nil
// width selects the unicode oracle with the default UnicodeConfig; a nil
// graphemes selects DefaultGraphemeIterator. graphemes is stored but not
// consulted: every internal package segments graphemes with the
// uniseg-backed default (see DESIGN.md's Open Questions).
func NewDocument(width WidthOracle, graphemes GraphemeIteratorFunc) (*Document, error) {
	if width == nil {
		width = NewWidthOracle(WidthMethodUnicode, NewUnicodeConfig())
	}
	if graphemes == nil {
		graphemes = DefaultGraphemeIterator
	}
	buf := buffer.New(width)
	eb, err := edit.New(buf)
	if err != nil {
		return nil, err
	}
	return &Document{buf: buf, eb: eb, graphemes: graphemes}, nil
}

// GetLineCount returns 1 + the number of hard line breaks.
func (d *Document) GetLineCount() int { return d.buf.GetLineCount() }

// GetTotalWidth returns the document's total display-column weight.
func (d *Document) GetTotalWidth() int { return d.buf.GetTotalWidth() }

// GetMaxLineWidth returns the widest fully contained line's display width.
func (d *Document) GetMaxLineWidth() int { return d.buf.GetMaxLineWidth() }

// GetPlainTextInto flattens the document's text into out, normalizing CR
// and CRLF to LF, and returns the number of bytes written.
func (d *Document) GetPlainTextInto(out []byte) (int, error) {
	return d.buf.GetPlainTextInto(out)
}

// InsertText inserts bytes at every cursor.
func (d *Document) InsertText(bytes []byte) error { return d.eb.InsertText(bytes) }

// DeleteRange deletes the span between two cursor positions.
func (d *Document) DeleteRange(start, end Cursor) error { return d.eb.DeleteRange(start, end) }

// Backspace deletes one display column (or joins with the previous line) at
// every cursor.
func (d *Document) Backspace() error { return d.eb.Backspace() }

// DeleteForward deletes the column under the cursor (or joins with the next
// line) at every cursor.
func (d *Document) DeleteForward() error { return d.eb.DeleteForward() }

// MoveLeft moves every cursor left one display column.
func (d *Document) MoveLeft() { d.eb.MoveLeft() }

// MoveRight moves every cursor right one display column.
func (d *Document) MoveRight() { d.eb.MoveRight() }

// MoveUp moves every cursor up one line, preserving its desired column.
func (d *Document) MoveUp() { d.eb.MoveUp() }

// MoveDown moves every cursor down one line, preserving its desired column.
func (d *Document) MoveDown() { d.eb.MoveDown() }

// MoveWordLeft moves every cursor to the start of the previous word on its
// line.
func (d *Document) MoveWordLeft() { d.eb.MoveWordLeft() }

// MoveWordRight moves every cursor to the start of the next word on its
// line.
func (d *Document) MoveWordRight() { d.eb.MoveWordRight() }

// SetCursor moves the primary cursor to (row,col).
func (d *Document) SetCursor(row, col int) error { return d.eb.SetCursor(row, col) }

// GetPrimaryCursor returns the primary cursor's current position.
func (d *Document) GetPrimaryCursor() Cursor { return d.eb.PrimaryCursor() }

// Cursors returns every cursor, primary first.
func (d *Document) Cursors() []Cursor { return d.eb.Cursors() }

// AddCursor appends a new cursor at (row,col).
func (d *Document) AddCursor(row, col int) error { return d.eb.AddCursor(row, col) }

// RemoveCursor drops the cursor at index i (the primary cursor, index 0,
// cannot be removed).
func (d *Document) RemoveCursor(i int) error { return d.eb.RemoveCursor(i) }

// GetSelectedText returns the text between two cursor positions.
func (d *Document) GetSelectedText(start, end Cursor) (string, error) {
	return d.eb.GetSelectedText(start, end)
}

// DeleteSelection removes the text between two cursor positions.
func (d *Document) DeleteSelection(start, end Cursor) error {
	return d.eb.DeleteSelection(start, end)
}

// KillToLineEnd kills from the primary cursor to end of line into the kill
// ring (Ctrl+K).
func (d *Document) KillToLineEnd() error { return d.eb.KillToLineEnd() }

// Yank inserts the kill ring's current entry at the primary cursor
// (Ctrl+Y).
func (d *Document) Yank() error { return d.eb.Yank() }

// YankPop rotates the kill ring and inserts the rotated-to entry (Alt+Y).
func (d *Document) YankPop() error { return d.eb.YankPop() }
