package edit

import (
	"github.com/vrope/vrope/internal/errs"
	"github.com/vrope/vrope/internal/iter"
)

// DefaultKillRingSize is the ring's capacity absent an explicit size.
const DefaultKillRingSize = 10

// KillRing is a bounded, circular Emacs-style kill ring: a short history of
// killed text (maxSize entries), not an undo stack — it is explicitly
// bounded and non-persistent.
type KillRing struct {
	items   []string
	maxSize int
	index   int
}

// NewKillRing returns an empty ring with capacity maxSize (DefaultKillRingSize
// when maxSize <= 0).
func NewKillRing(maxSize int) *KillRing {
	if maxSize <= 0 {
		maxSize = DefaultKillRingSize
	}
	return &KillRing{maxSize: maxSize}
}

// Kill pushes text onto the ring, evicting the oldest entry once full, and
// points the yank cursor at it.
func (k *KillRing) Kill(text string) {
	if text == "" {
		return
	}
	if len(k.items) >= k.maxSize {
		k.items = k.items[1:]
	}
	k.items = append(k.items, text)
	k.index = len(k.items) - 1
}

// Yank returns the ring's current entry, or "" if empty.
func (k *KillRing) Yank() string {
	if k.index < 0 || k.index >= len(k.items) {
		return ""
	}
	return k.items[k.index]
}

// YankPop rotates the yank cursor backward and returns the entry it now
// points to (Emacs M-y). It does not replace a previous insertion; the
// caller is responsible for deciding what to do with the returned text.
func (k *KillRing) YankPop() string {
	if len(k.items) == 0 {
		return ""
	}
	k.index--
	if k.index < 0 {
		k.index = len(k.items) - 1
	}
	return k.Yank()
}

// IsEmpty reports whether the ring holds any entries.
func (k *KillRing) IsEmpty() bool {
	return len(k.items) == 0
}

// KillToLineEnd kills from the primary cursor to the end of its line
// (Ctrl+K); at end of line it kills the line break itself, joining with
// the next line.
func (eb *EditBuffer) KillToLineEnd() error {
	cur := eb.PrimaryCursor()
	width, ok := iter.LineWidthAt(eb.Buf.Rope, cur.Row)
	if !ok {
		return errs.ErrInvalidCursor
	}
	if cur.Col >= width {
		if _, _, ok := eb.Buf.Rope.GetMarker(cur.Row + 1); !ok {
			return nil
		}
		breakOffset, ok := iter.CoordsToOffset(eb.Buf.Rope, cur.Row, width)
		if !ok {
			return errs.ErrInvalidCursor
		}
		eb.killRing.Kill("\n")
		if err := eb.deleteBreakAndLineStart(breakOffset); err != nil {
			return err
		}
		eb.Buf.MarkViewsDirty()
		return nil
	}
	start, _ := iter.CoordsToOffset(eb.Buf.Rope, cur.Row, cur.Col)
	end, _ := iter.CoordsToOffset(eb.Buf.Rope, cur.Row, width)
	killed, err := eb.extractRange(start, end)
	if err != nil {
		return err
	}
	eb.killRing.Kill(killed)
	if err := eb.Buf.Rope.DeleteRangeByWeight(start, end, eb.Buf.Splitter()); err != nil {
		return err
	}
	eb.Buf.MarkViewsDirty()
	return nil
}

// Yank inserts the kill ring's current entry at the primary cursor
// (Ctrl+Y).
func (eb *EditBuffer) Yank() error {
	text := eb.killRing.Yank()
	if text == "" {
		return nil
	}
	return eb.insertAtCursor(0, []byte(text))
}

// YankPop rotates the kill ring and inserts the rotated-to entry at the
// primary cursor (Alt+Y).
func (eb *EditBuffer) YankPop() error {
	text := eb.killRing.YankPop()
	if text == "" {
		return nil
	}
	return eb.insertAtCursor(0, []byte(text))
}
