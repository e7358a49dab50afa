// Package view implements the per-view wrap projection: a view owns wrap
// parameters and a virtual-line cache that it rebuilds from the rope,
// through the iterators package, whenever the buffer or the wrap settings
// change.
package view

import (
	"github.com/vrope/vrope/internal/buffer"
	"github.com/vrope/vrope/internal/iter"
	"github.com/vrope/vrope/internal/rope"
)

// WrapMode selects character- or word-granularity soft wrapping.
type WrapMode int

const (
	// WrapChar fits as many leading graphemes of a chunk as possible into
	// the remaining columns on a virtual line, without regard to word
	// boundaries.
	WrapChar WrapMode = iota
	// WrapWord wraps at the chunk's precomputed soft-wrap break points,
	// falling back to character wrapping for a single token wider than
	// the wrap width.
	WrapWord
)

// VirtualChunk is a slice of a logical line's text segment that landed on
// one virtual line.
type VirtualChunk struct {
	SourceChunkIdx int // index of the source TextChunk within its logical line
	GraphemeStart  int // grapheme offset into the source chunk
	GraphemeCount  int // -1 means "the entire chunk", used by 1:1 projection
	Width          int
}

// VirtualLine is one projected display line.
type VirtualLine struct {
	Chunks          []VirtualChunk
	Width           int
	CharOffset      int
	SourceLine      int
	SourceColOffset int
}

type chunkKey struct {
	memID, byteStart, byteEnd int
}

// View holds wrap parameters and the virtual-line cache projected from one
// buffer. Not safe for concurrent use with mutation of its buffer: a
// view's projection must not run concurrently with a mutation on its
// buffer.
type View struct {
	buf *buffer.TextBuffer
	id  int

	wrapWidth *int
	wrapMode  WrapMode
	tabWidth  int

	dirty bool

	lines      []VirtualLine
	lineStarts []int
	lineWidths []int
	maxWidth   int

	selection *Selection

	wrapCache map[chunkKey][]wrapPoint
}

// New registers a fresh view against buf, dirty by construction so the
// first Update call always projects.
func New(buf *buffer.TextBuffer) *View {
	return &View{
		buf:       buf,
		id:        buf.RegisterView(),
		wrapMode:  WrapChar,
		tabWidth:  buffer.DefaultTabWidth,
		dirty:     true,
		wrapCache: make(map[chunkKey][]wrapPoint),
	}
}

// Close unregisters the view from its buffer.
func (v *View) Close() {
	v.buf.UnregisterView(v.id)
}

// SetWrapWidth sets the soft-wrap width in display columns, or nil for the
// unwrapped 1:1 projection. Marks the view dirty only when the value
// actually changes, so calling it twice with the same width is a no-op.
func (v *View) SetWrapWidth(w *int) {
	changed := (w == nil) != (v.wrapWidth == nil)
	if !changed && w != nil && v.wrapWidth != nil {
		changed = *w != *v.wrapWidth
	}
	if changed {
		v.dirty = true
	}
	if w == nil {
		v.wrapWidth = nil
		return
	}
	width := *w
	v.wrapWidth = &width
}

// SetWrapMode sets character or word wrapping.
func (v *View) SetWrapMode(m WrapMode) {
	if m != v.wrapMode {
		v.dirty = true
	}
	v.wrapMode = m
}

// Update rebuilds the virtual-line cache if the view or its buffer is
// dirty.
func (v *View) Update() error {
	if !v.dirty && !v.buf.IsViewDirty(v.id) {
		return nil
	}
	v.wrapCache = make(map[chunkKey][]wrapPoint)
	v.lines = nil

	var err error
	if v.wrapWidth == nil {
		err = v.projectUnwrapped()
	} else {
		err = v.projectWrapped(*v.wrapWidth)
	}
	if err != nil {
		return err
	}

	v.rebuildCaches()
	v.dirty = false
	v.buf.ClearViewDirty(v.id)
	return nil
}

func (v *View) rebuildCaches() {
	v.lineStarts = make([]int, len(v.lines))
	v.lineWidths = make([]int, len(v.lines))
	v.maxWidth = 0
	for i, l := range v.lines {
		v.lineStarts[i] = l.CharOffset
		v.lineWidths[i] = l.Width
		if l.Width > v.maxWidth {
			v.maxWidth = l.Width
		}
	}
}

// GetVirtualLineCount returns the number of virtual lines in the current
// projection. Callers must call Update first.
func (v *View) GetVirtualLineCount() int {
	return len(v.lines)
}

// GetVirtualLines returns the current virtual-line projection.
func (v *View) GetVirtualLines() []VirtualLine {
	return v.lines
}

// LineInfo mirrors iter.LineInfo's shape for the view's cached per-virtual-
// line offsets and widths.
type LineInfo struct {
	CharOffset int
	Width      int
}

// GetCachedLineInfo returns the cached (char_offset, width) for every
// virtual line, and the overall max width.
func (v *View) GetCachedLineInfo() (lines []LineInfo, maxWidth int) {
	lines = make([]LineInfo, len(v.lineStarts))
	for i := range v.lineStarts {
		lines[i] = LineInfo{CharOffset: v.lineStarts[i], Width: v.lineWidths[i]}
	}
	return lines, v.maxWidth
}

// GetPlainTextInto flattens the buffer's full text into out; the view
// itself carries no separate text, only its projection.
func (v *View) GetPlainTextInto(out []byte) (int, error) {
	return v.buf.GetPlainTextInto(out)
}

func (v *View) projectUnwrapped() error {
	var cur VirtualLine
	started := false
	return iter.WalkLinesAndSegments(v.buf.Rope,
		func(lineIdx int, chunk rope.TextChunk, chunkIdx int) (bool, error) {
			if !started {
				cur = VirtualLine{}
				started = true
			}
			cur.Chunks = append(cur.Chunks, VirtualChunk{
				SourceChunkIdx: chunkIdx,
				GraphemeStart:  0,
				GraphemeCount:  -1,
				Width:          chunk.DisplayWidth,
			})
			return true, nil
		},
		func(info iter.LineInfo) (bool, error) {
			cur.SourceLine = info.LineIdx
			cur.CharOffset = info.CharOffset
			cur.Width = info.Width
			cur.SourceColOffset = 0
			v.lines = append(v.lines, cur)
			cur = VirtualLine{}
			started = false
			return true, nil
		})
}
