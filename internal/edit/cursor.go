package edit

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/vrope/vrope/internal/errs"
	"github.com/vrope/vrope/internal/iter"
	"github.com/vrope/vrope/internal/scanner"
)

// Cursor is a display-column position plus the sticky desired column
// preserved across vertical motion.
type Cursor struct {
	Row, Col, DesiredCol int
}

// PrimaryCursor returns cursor index 0.
func (eb *EditBuffer) PrimaryCursor() Cursor {
	return eb.cursors[0]
}

// Cursors returns every cursor, primary first.
func (eb *EditBuffer) Cursors() []Cursor {
	out := make([]Cursor, len(eb.cursors))
	copy(out, eb.cursors)
	return out
}

// AddCursor appends a new cursor at (row,col), validating it against the
// current rope content.
func (eb *EditBuffer) AddCursor(row, col int) error {
	if _, ok := iter.CoordsToOffset(eb.Buf.Rope, row, col); !ok {
		return errs.ErrInvalidCursor
	}
	eb.cursors = append(eb.cursors, Cursor{Row: row, Col: col, DesiredCol: col})
	return nil
}

// RemoveCursor drops the cursor at index i. Removing the primary cursor
// (index 0) is rejected: a buffer always has at least one cursor.
func (eb *EditBuffer) RemoveCursor(i int) error {
	if i <= 0 || i >= len(eb.cursors) {
		return errs.ErrOutOfBounds
	}
	eb.cursors = append(eb.cursors[:i], eb.cursors[i+1:]...)
	return nil
}

// SetCursor moves the primary cursor to (row,col), failing with
// ErrInvalidCursor if it does not resolve to a valid position.
func (eb *EditBuffer) SetCursor(row, col int) error {
	if _, ok := iter.CoordsToOffset(eb.Buf.Rope, row, col); !ok {
		return errs.ErrInvalidCursor
	}
	eb.cursors[0] = Cursor{Row: row, Col: col, DesiredCol: col}
	return nil
}

func (eb *EditBuffer) moveLeftAt(i int) {
	cur := eb.cursors[i]
	if cur.Col > 0 {
		cur.Col--
	} else if cur.Row > 0 {
		cur.Row--
		width, _ := iter.LineWidthAt(eb.Buf.Rope, cur.Row)
		cur.Col = width
	}
	cur.DesiredCol = cur.Col
	eb.cursors[i] = cur
}

// MoveLeft moves every cursor left by one display column, wrapping to the
// end of the previous line at column 0.
func (eb *EditBuffer) MoveLeft() {
	for i := range eb.cursors {
		eb.moveLeftAt(i)
	}
}

func (eb *EditBuffer) moveRightAt(i int) {
	cur := eb.cursors[i]
	width, _ := iter.LineWidthAt(eb.Buf.Rope, cur.Row)
	if cur.Col < width {
		cur.Col++
	} else if _, _, ok := eb.Buf.Rope.GetMarker(cur.Row + 1); ok {
		cur.Row++
		cur.Col = 0
	}
	cur.DesiredCol = cur.Col
	eb.cursors[i] = cur
}

// MoveRight moves every cursor right by one display column, wrapping to
// the start of the next line at end-of-line.
func (eb *EditBuffer) MoveRight() {
	for i := range eb.cursors {
		eb.moveRightAt(i)
	}
}

func (eb *EditBuffer) moveVertical(i, delta int) {
	cur := eb.cursors[i]
	target := cur.Row + delta
	if target < 0 || target >= eb.Buf.GetLineCount() {
		return
	}
	width, _ := iter.LineWidthAt(eb.Buf.Rope, target)
	col := cur.DesiredCol
	if col > width {
		col = width
	}
	eb.cursors[i] = Cursor{Row: target, Col: col, DesiredCol: cur.DesiredCol}
}

// MoveUp moves every cursor up one line, clamping to the target line's
// width and preserving desired_col.
func (eb *EditBuffer) MoveUp() {
	for i := range eb.cursors {
		eb.moveVertical(i, -1)
	}
}

// MoveDown moves every cursor down one line.
func (eb *EditBuffer) MoveDown() {
	for i := range eb.cursors {
		eb.moveVertical(i, 1)
	}
}

// graphemeUnit is one grapheme cluster's display-column start, width, and
// word-boundary classification within a single logical line — built fresh
// per word-motion call, the edit-layer analogue of the view layer's
// per-chunk wrap-offset index.
type graphemeUnit struct {
	col      int
	width    int
	boundary bool
}

func isWordBoundaryCluster(cluster []byte) bool {
	if len(cluster) == 1 {
		return scanner.IsASCIIWrapBreak(cluster[0])
	}
	r, _ := utf8.DecodeRune(cluster)
	return scanner.IsWrapBreakRune(r)
}

func (eb *EditBuffer) lineGraphemes(row int) ([]graphemeUnit, error) {
	width, ok := iter.LineWidthAt(eb.Buf.Rope, row)
	if !ok {
		return nil, errs.ErrInvalidCursor
	}
	start, _ := iter.CoordsToOffset(eb.Buf.Rope, row, 0)
	end, _ := iter.CoordsToOffset(eb.Buf.Rope, row, width)
	text, err := eb.extractRange(start, end)
	if err != nil {
		return nil, err
	}
	b := []byte(text)
	var units []graphemeUnit
	col, rest, state := 0, b, -1
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.FirstGraphemeCluster(rest, state)
		w := eb.Buf.Oracle(cluster)
		units = append(units, graphemeUnit{col: col, width: w, boundary: isWordBoundaryCluster(cluster)})
		col += w
		rest, state = next, newState
	}
	return units, nil
}

func graphemeIndexAtCol(units []graphemeUnit, col int) int {
	for i, u := range units {
		if u.col >= col {
			return i
		}
	}
	return len(units)
}

// moveWordRightAt skips the current word, then skips trailing boundary
// characters, staying within the current line.
func (eb *EditBuffer) moveWordRightAt(i int) {
	cur := eb.cursors[i]
	units, err := eb.lineGraphemes(cur.Row)
	if err != nil {
		return
	}
	idx := graphemeIndexAtCol(units, cur.Col)
	for idx < len(units) && !units[idx].boundary {
		idx++
	}
	for idx < len(units) && units[idx].boundary {
		idx++
	}
	col := cur.Col
	switch {
	case idx < len(units):
		col = units[idx].col
	case len(units) > 0:
		last := units[len(units)-1]
		col = last.col + last.width
	}
	eb.cursors[i] = Cursor{Row: cur.Row, Col: col, DesiredCol: col}
}

// moveWordLeftAt skips leading boundary characters, then the previous word,
// staying within the current line.
func (eb *EditBuffer) moveWordLeftAt(i int) {
	cur := eb.cursors[i]
	if cur.Col == 0 {
		return
	}
	units, err := eb.lineGraphemes(cur.Row)
	if err != nil {
		return
	}
	idx := graphemeIndexAtCol(units, cur.Col) - 1
	if idx < 0 {
		idx = 0
	}
	for idx > 0 && units[idx].boundary {
		idx--
	}
	for idx > 0 && !units[idx-1].boundary {
		idx--
	}
	col := 0
	if idx < len(units) {
		col = units[idx].col
	}
	eb.cursors[i] = Cursor{Row: cur.Row, Col: col, DesiredCol: col}
}

// MoveWordRight moves every cursor forward to the start of the next word
// on its current line.
func (eb *EditBuffer) MoveWordRight() {
	for i := range eb.cursors {
		eb.moveWordRightAt(i)
	}
}

// MoveWordLeft moves every cursor backward to the start of the previous
// word on its current line.
func (eb *EditBuffer) MoveWordLeft() {
	for i := range eb.cursors {
		eb.moveWordLeftAt(i)
	}
}
