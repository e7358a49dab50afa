package view

import "github.com/charmbracelet/lipgloss"

// Position is a (row, col) logical-buffer coordinate, the same coordinate
// space edit.Cursor uses.
type Position struct {
	Row, Col int
}

// Selection is a view-local highlighted span plus the colors a renderer
// should paint it with; the view, not the edit buffer, owns rendering
// concerns.
type Selection struct {
	Anchor, Cursor Position
	Background     lipgloss.Color
	Foreground     lipgloss.Color
}

// Range returns the selection's two endpoints in document order.
func (s Selection) Range() (start, end Position) {
	if less(s.Anchor, s.Cursor) {
		return s.Anchor, s.Cursor
	}
	return s.Cursor, s.Anchor
}

func less(a, b Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// DefaultSelectionColors are the default colors for a selection highlight.
var (
	DefaultSelectionBackground = lipgloss.Color("62")
	DefaultSelectionForeground = lipgloss.Color("231")
)

// SetSelection installs the view's highlighted span, applying the default
// colors when bg/fg are the zero value.
func (v *View) SetSelection(anchor, cursor Position, bg, fg lipgloss.Color) {
	if bg == "" {
		bg = DefaultSelectionBackground
	}
	if fg == "" {
		fg = DefaultSelectionForeground
	}
	v.selection = &Selection{Anchor: anchor, Cursor: cursor, Background: bg, Foreground: fg}
}

// ResetSelection clears the view's selection.
func (v *View) ResetSelection() {
	v.selection = nil
}

// GetSelection returns the view's current selection and whether one is
// set.
func (v *View) GetSelection() (Selection, bool) {
	if v.selection == nil {
		return Selection{}, false
	}
	return *v.selection, true
}
