// Package edit implements the Edit Buffer: the append-only add-buffer, the
// cursor list, and the insert/delete/backspace primitives that drive the
// rope through the buffer layer's registered splitter.
package edit

import (
	"sort"

	"github.com/vrope/vrope/internal/buffer"
	"github.com/vrope/vrope/internal/errs"
	"github.com/vrope/vrope/internal/iter"
	"github.com/vrope/vrope/internal/rope"
	"github.com/vrope/vrope/internal/scanner"
)

// initialAddBufferCap is the add-buffer's starting capacity; it doubles on
// overflow.
const initialAddBufferCap = 64 * 1024

// EditBuffer owns an append-only add-buffer and a cursor list (primary at
// index 0) layered over a buffer.TextBuffer. Not safe for concurrent use.
type EditBuffer struct {
	Buf *buffer.TextBuffer

	addMemID int
	addBytes []byte

	cursors  []Cursor
	killRing *KillRing
}

// New returns an EditBuffer over buf, with a single primary cursor at
// (0,0) and a fresh add-buffer registered with the buffer's memory
// registry.
func New(buf *buffer.TextBuffer) (*EditBuffer, error) {
	eb := &EditBuffer{
		Buf:      buf,
		cursors:  []Cursor{{}},
		killRing: NewKillRing(DefaultKillRingSize),
	}
	if err := eb.growAddBuffer(initialAddBufferCap); err != nil {
		return nil, err
	}
	return eb, nil
}

func (eb *EditBuffer) growAddBuffer(capacity int) error {
	backing := make([]byte, 0, capacity)
	id, err := eb.Buf.RegisterMemBuffer(backing, true)
	if err != nil {
		return err
	}
	eb.addMemID = id
	eb.addBytes = backing
	return nil
}

// appendToAddBuffer copies data into the current add-buffer, growing (and
// registering a fresh memory-registry id for) a new, larger backing array
// on overflow. The old add-buffer remains registered, since chunks already
// inserted into the rope still reference it by id.
func (eb *EditBuffer) appendToAddBuffer(data []byte) (memID, start, end int, err error) {
	if len(eb.addBytes)+len(data) > cap(eb.addBytes) {
		newCap := cap(eb.addBytes) * 2
		if newCap == 0 {
			newCap = initialAddBufferCap
		}
		for newCap < len(eb.addBytes)+len(data) {
			newCap *= 2
		}
		if err := eb.growAddBuffer(newCap); err != nil {
			return 0, 0, 0, err
		}
	}
	start = len(eb.addBytes)
	eb.addBytes = append(eb.addBytes, data...)
	end = len(eb.addBytes)
	if err := eb.Buf.Registry.Replace(eb.addMemID, eb.addBytes, true); err != nil {
		return 0, 0, 0, err
	}
	return eb.addMemID, start, end, nil
}

// buildSegments interleaves Text segments over the non-break regions of
// data with Break/LineStart pairs at each recognized line break. For a
// CRLF the text segment excludes both the CR and the LF. Returns the
// segment list and the sum of leaf weights it contributes (display column
// count, matching total_weight's definition).
func (eb *EditBuffer) buildSegments(memID, chunkStart int, data []byte) ([]rope.Segment, int, error) {
	breaks := scanner.FindLineBreaks(data)
	segs := make([]rope.Segment, 0, 2*len(breaks)+1)
	width := 0
	regionStart := 0

	appendText := func(lo, hi int) error {
		if hi <= lo {
			return nil
		}
		chunk, err := eb.Buf.CreateChunk(memID, chunkStart+lo, chunkStart+hi)
		if err != nil {
			return err
		}
		segs = append(segs, rope.NewTextSegment(chunk))
		width += chunk.DisplayWidth
		return nil
	}

	for _, brk := range breaks {
		textEnd, skipEnd := brk.Pos, brk.Pos+1
		if brk.Kind == scanner.CRLF {
			textEnd = brk.Pos - 1
		}
		if err := appendText(regionStart, textEnd); err != nil {
			return nil, 0, err
		}
		segs = append(segs, rope.NewBreakSegment(), rope.NewLineStartSegment())
		width++
		regionStart = skipEnd
	}
	if err := appendText(regionStart, len(data)); err != nil {
		return nil, 0, err
	}
	return segs, width, nil
}

// cursorOrderDescending returns cursor indices ordered by descending
// current display-weight offset, so a multi-cursor edit processes the
// rightmost cursor first: inserting or deleting there never invalidates
// the still-unprocessed, lower-offset cursors' coordinates.
func (eb *EditBuffer) cursorOrderDescending() []int {
	order := make([]int, len(eb.cursors))
	offsets := make([]int, len(eb.cursors))
	for i, c := range eb.cursors {
		order[i] = i
		offsets[i], _ = iter.CoordsToOffset(eb.Buf.Rope, c.Row, c.Col)
	}
	sort.Slice(order, func(a, b int) bool { return offsets[order[a]] > offsets[order[b]] })
	return order
}

func (eb *EditBuffer) insertAtCursor(idx int, data []byte) error {
	cur := eb.cursors[idx]
	insertOffset, ok := iter.CoordsToOffset(eb.Buf.Rope, cur.Row, cur.Col)
	if !ok {
		return errs.ErrInvalidCursor
	}
	memID, start, _, err := eb.appendToAddBuffer(data)
	if err != nil {
		return err
	}
	segs, insertedWidth, err := eb.buildSegments(memID, start, data)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return nil
	}
	if err := eb.Buf.Rope.InsertSliceByWeight(insertOffset, segs, eb.Buf.Splitter()); err != nil {
		return err
	}
	eb.Buf.MarkViewsDirty()
	row, col, _ := iter.OffsetToCoords(eb.Buf.Rope, insertOffset+insertedWidth)
	eb.cursors[idx] = Cursor{Row: row, Col: col, DesiredCol: col}
	return nil
}

// InsertText inserts data at every cursor, processing cursors in
// descending offset order so a higher-offset insertion never invalidates a
// not-yet-processed lower-offset cursor's coordinates.
func (eb *EditBuffer) InsertText(data []byte) error {
	for _, idx := range eb.cursorOrderDescending() {
		if err := eb.insertAtCursor(idx, data); err != nil {
			return err
		}
	}
	return nil
}

// DeleteRange deletes the display-weight span between two explicit cursor
// positions, normalizing so start <= end, and moves the primary cursor to
// the deletion start. DeleteRange(c, c) is a no-op.
func (eb *EditBuffer) DeleteRange(start, end Cursor) error {
	so, ok1 := iter.CoordsToOffset(eb.Buf.Rope, start.Row, start.Col)
	eo, ok2 := iter.CoordsToOffset(eb.Buf.Rope, end.Row, end.Col)
	if !ok1 || !ok2 {
		return errs.ErrInvalidCursor
	}
	if so > eo {
		so, eo = eo, so
	}
	if err := eb.Buf.Rope.DeleteRangeByWeight(so, eo, eb.Buf.Splitter()); err != nil {
		return err
	}
	eb.Buf.MarkViewsDirty()
	row, col, _ := iter.OffsetToCoords(eb.Buf.Rope, so)
	eb.cursors[0] = Cursor{Row: row, Col: col, DesiredCol: col}
	return nil
}

// deleteBreakAndLineStart removes the Break leaf starting at breakOffset
// and, if one now sits in its place, the LineStart that followed it — the
// pair a successful backspace-across-lines or delete-forward-at-line-end
// must remove together to preserve the segment invariants (every Break is
// immediately followed by a LineStart).
func (eb *EditBuffer) deleteBreakAndLineStart(breakOffset int) error {
	// The Break spans [breakOffset, breakOffset+1); locating its end weight
	// skips the Text leaf that ends at breakOffset.
	idx, _, ok := eb.Buf.Rope.LocateLeaf(breakOffset + 1)
	if !ok {
		return errs.ErrOutOfBounds
	}
	seg, ok := eb.Buf.Rope.Get(idx)
	if !ok || seg.Kind != rope.KindBreak {
		return errs.ErrOutOfBounds
	}
	if err := eb.Buf.Rope.Delete(idx); err != nil {
		return err
	}
	if next, ok := eb.Buf.Rope.Get(idx); ok && next.Kind == rope.KindLineStart {
		if err := eb.Buf.Rope.Delete(idx); err != nil {
			return err
		}
	}
	return nil
}

func (eb *EditBuffer) backspaceAt(idx int) error {
	cur := eb.cursors[idx]
	if cur.Row == 0 && cur.Col == 0 {
		return nil
	}
	if cur.Col == 0 {
		prevWidth, ok := iter.LineWidthAt(eb.Buf.Rope, cur.Row-1)
		if !ok {
			return errs.ErrInvalidCursor
		}
		breakOffset, ok := iter.CoordsToOffset(eb.Buf.Rope, cur.Row-1, prevWidth)
		if !ok {
			return errs.ErrInvalidCursor
		}
		if err := eb.deleteBreakAndLineStart(breakOffset); err != nil {
			return err
		}
		eb.Buf.MarkViewsDirty()
		eb.cursors[idx] = Cursor{Row: cur.Row - 1, Col: prevWidth, DesiredCol: prevWidth}
		return nil
	}
	off, ok := iter.CoordsToOffset(eb.Buf.Rope, cur.Row, cur.Col)
	if !ok {
		return errs.ErrInvalidCursor
	}
	if err := eb.Buf.Rope.DeleteRangeByWeight(off-1, off, eb.Buf.Splitter()); err != nil {
		return err
	}
	eb.Buf.MarkViewsDirty()
	eb.cursors[idx] = Cursor{Row: cur.Row, Col: cur.Col - 1, DesiredCol: cur.Col - 1}
	return nil
}

// Backspace deletes one display column (or joins the current line with the
// previous one at column 0) at every cursor.
func (eb *EditBuffer) Backspace() error {
	for _, idx := range eb.cursorOrderDescending() {
		if err := eb.backspaceAt(idx); err != nil {
			return err
		}
	}
	return nil
}

func (eb *EditBuffer) deleteForwardAt(idx int) error {
	cur := eb.cursors[idx]
	width, ok := iter.LineWidthAt(eb.Buf.Rope, cur.Row)
	if !ok {
		return errs.ErrInvalidCursor
	}
	if cur.Col >= width {
		if _, _, ok := eb.Buf.Rope.GetMarker(cur.Row + 1); !ok {
			return nil // last line, nothing to join
		}
		breakOffset, ok := iter.CoordsToOffset(eb.Buf.Rope, cur.Row, width)
		if !ok {
			return errs.ErrInvalidCursor
		}
		if err := eb.deleteBreakAndLineStart(breakOffset); err != nil {
			return err
		}
		eb.Buf.MarkViewsDirty()
		return nil
	}
	off, ok := iter.CoordsToOffset(eb.Buf.Rope, cur.Row, cur.Col)
	if !ok {
		return errs.ErrInvalidCursor
	}
	if err := eb.Buf.Rope.DeleteRangeByWeight(off, off+1, eb.Buf.Splitter()); err != nil {
		return err
	}
	eb.Buf.MarkViewsDirty()
	return nil
}

// DeleteForward deletes the column under the cursor (or joins with the
// next line at end-of-line) at every cursor.
func (eb *EditBuffer) DeleteForward() error {
	for _, idx := range eb.cursorOrderDescending() {
		if err := eb.deleteForwardAt(idx); err != nil {
			return err
		}
	}
	return nil
}

// extractRange copies the text in display-weight range [start,end) into a
// string, growing a scratch buffer until ExtractTextBetweenOffsets reports
// it wrote less than the buffer's capacity.
func (eb *EditBuffer) extractRange(start, end int) (string, error) {
	capacity := (end - start) * 4
	if capacity < 16 {
		capacity = 16
	}
	for {
		out := make([]byte, capacity)
		n, err := iter.ExtractTextBetweenOffsets(eb.Buf.Rope, eb.Buf.Registry, buffer.DefaultTabWidth, start, end, out, eb.Buf.Oracle)
		if err != nil {
			return "", err
		}
		if n < len(out) {
			return string(out[:n]), nil
		}
		capacity *= 2
	}
}

// GetSelectedText returns the text between two cursor positions, order
// independent.
func (eb *EditBuffer) GetSelectedText(start, end Cursor) (string, error) {
	so, ok1 := iter.CoordsToOffset(eb.Buf.Rope, start.Row, start.Col)
	eo, ok2 := iter.CoordsToOffset(eb.Buf.Rope, end.Row, end.Col)
	if !ok1 || !ok2 {
		return "", errs.ErrInvalidCursor
	}
	if so > eo {
		so, eo = eo, so
	}
	return eb.extractRange(so, eo)
}

// DeleteSelection removes the text between two cursor positions. Equivalent
// to DeleteRange, named for the selection-as-first-class-range use case.
func (eb *EditBuffer) DeleteSelection(start, end Cursor) error {
	return eb.DeleteRange(start, end)
}
