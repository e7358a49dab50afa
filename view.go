package vrope

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vrope/vrope/view"
)

// WrapMode selects character- or word-granularity soft wrapping.
type WrapMode = view.WrapMode

const (
	WrapChar WrapMode = view.WrapChar
	WrapWord WrapMode = view.WrapWord
)

// VirtualLine and VirtualChunk mirror view's projection output.
type VirtualLine = view.VirtualLine
type VirtualChunk = view.VirtualChunk

// LineInfo is a virtual line's cached (char_offset, width) pair.
type LineInfo = view.LineInfo

// Position is a (row, col) logical-buffer coordinate.
type Position = view.Position

// View projects a Document's rope into wrapped virtual lines. The zero
// value is invalid; construct with Document.NewView.
type View struct {
	inner *view.View
}

// NewView registers a new, unwrapped view against d.
func (d *Document) NewView() *View {
	return &View{inner: view.New(d.buf)}
}

// Close unregisters the view from its document.
func (v *View) Close() { v.inner.Close() }

// SetWrapWidth sets the soft-wrap width in display columns, or nil for the
// unwrapped 1:1 projection.
func (v *View) SetWrapWidth(w *int) { v.inner.SetWrapWidth(w) }

// SetWrapMode sets character or word wrapping.
func (v *View) SetWrapMode(m WrapMode) { v.inner.SetWrapMode(m) }

// GetVirtualLineCount rebuilds the projection if stale and returns the
// current virtual-line count.
func (v *View) GetVirtualLineCount() (int, error) {
	if err := v.inner.Update(); err != nil {
		return 0, err
	}
	return v.inner.GetVirtualLineCount(), nil
}

// GetVirtualLines rebuilds the projection if stale and returns the current
// virtual lines.
func (v *View) GetVirtualLines() ([]VirtualLine, error) {
	if err := v.inner.Update(); err != nil {
		return nil, err
	}
	return v.inner.GetVirtualLines(), nil
}

// GetCachedLineInfo rebuilds the projection if stale and returns the cached
// per-virtual-line (char_offset, width) pairs plus the overall max width.
func (v *View) GetCachedLineInfo() ([]LineInfo, int, error) {
	if err := v.inner.Update(); err != nil {
		return nil, 0, err
	}
	lines, maxWidth := v.inner.GetCachedLineInfo()
	return lines, maxWidth, nil
}

// SetSelection installs the view's highlighted span between anchor and
// cursor, painted with bg/fg (the zero lipgloss.Color uses the view's
// defaults).
func (v *View) SetSelection(anchor, cursor Position, bg, fg lipgloss.Color) {
	v.inner.SetSelection(anchor, cursor, bg, fg)
}

// ResetSelection clears the view's selection.
func (v *View) ResetSelection() { v.inner.ResetSelection() }

// GetPlainTextInto flattens the underlying document's text into out.
func (v *View) GetPlainTextInto(out []byte) (int, error) {
	return v.inner.GetPlainTextInto(out)
}
