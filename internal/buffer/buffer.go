// Package buffer implements the Text Buffer: the aggregate root owning a
// memory registry, a rope, a width oracle, and the set of views registered
// against this buffer's content.
package buffer

import (
	"github.com/vrope/vrope/internal/errs"
	"github.com/vrope/vrope/internal/iter"
	"github.com/vrope/vrope/internal/registry"
	"github.com/vrope/vrope/internal/rope"
	"github.com/vrope/vrope/internal/scanner"
)

// DefaultTabWidth is the column width assumed for tab expansion when the
// caller does not specify one explicitly.
const DefaultTabWidth = 8

// TextBuffer owns the registry, rope, and width oracle for one logical
// document. Not safe for concurrent use.
type TextBuffer struct {
	Registry *registry.Registry
	Rope     *rope.Rope
	Oracle   scanner.Oracle

	nextViewID int
	dirtyBits  map[int]bool
}

// New returns an empty text buffer, seeded with the single LineStart marker
// every buffer begins with. No empty Text segment is added: an empty buffer
// holds that one leaf only.
func New(oracle scanner.Oracle) *TextBuffer {
	b := &TextBuffer{
		Registry:  registry.New(),
		Rope:      rope.New(),
		Oracle:    oracle,
		dirtyBits: make(map[int]bool),
	}
	b.Rope.Append(rope.NewLineStartSegment())
	return b
}

// RegisterMemBuffer delegates to the memory registry.
func (b *TextBuffer) RegisterMemBuffer(bytes []byte, owned bool) (int, error) {
	return b.Registry.Register(bytes, owned)
}

// CreateChunk builds a TextChunk over [byteStart,byteEnd) of memID's bytes,
// computing display_width via the scanner and the buffer's width oracle,
// and setting ASCII_ONLY when every byte in range is < 0x80.
func (b *TextBuffer) CreateChunk(memID, byteStart, byteEnd int) (rope.TextChunk, error) {
	bytes, ok := b.Registry.Get(memID)
	if !ok {
		return rope.TextChunk{}, errs.ErrInvalidMemID
	}
	if byteStart < 0 || byteEnd > len(bytes) || byteStart > byteEnd {
		return rope.TextChunk{}, errs.ErrOutOfBounds
	}
	slice := bytes[byteStart:byteEnd]
	ascii := true
	for _, c := range slice {
		if c >= 0x80 {
			ascii = false
			break
		}
	}
	width := scanner.StringWidth(string(slice), b.Oracle)
	return rope.TextChunk{
		MemID:        memID,
		ByteStart:    byteStart,
		ByteEnd:      byteEnd,
		DisplayWidth: width,
		AsciiOnly:    ascii,
	}, nil
}

// RegisterView assigns the next monotonic view id and marks it dirty.
func (b *TextBuffer) RegisterView() int {
	id := b.nextViewID
	b.nextViewID++
	b.dirtyBits[id] = true
	return id
}

// UnregisterView drops id's dirty bit.
func (b *TextBuffer) UnregisterView(id int) {
	delete(b.dirtyBits, id)
}

// MarkViewsDirty sets every registered view's dirty bit. Called after every
// mutating operation so a view's next projection observes the change.
func (b *TextBuffer) MarkViewsDirty() {
	for id := range b.dirtyBits {
		b.dirtyBits[id] = true
	}
}

// IsViewDirty reports whether id's dirty bit is set.
func (b *TextBuffer) IsViewDirty(id int) bool {
	return b.dirtyBits[id]
}

// ClearViewDirty clears id's dirty bit.
func (b *TextBuffer) ClearViewDirty(id int) {
	b.dirtyBits[id] = false
}

// GetLineCount returns 1 + the number of Break segments.
func (b *TextBuffer) GetLineCount() int {
	return b.Rope.LinestartCount()
}

// GetTotalWidth returns the rope's total display weight.
func (b *TextBuffer) GetTotalWidth() int {
	return b.Rope.TotalWeight()
}

// GetMaxLineWidth returns the widest fully contained line.
func (b *TextBuffer) GetMaxLineWidth() int {
	return b.Rope.MaxLineWidth()
}

// GetPlainTextInto flattens all text into out, inserting a single '\n'
// between lines, and returns the number of bytes written.
func (b *TextBuffer) GetPlainTextInto(out []byte) (int, error) {
	return iter.ExtractTextBetweenOffsets(b.Rope, b.Registry, DefaultTabWidth, 0, b.Rope.TotalWeight(), out, b.Oracle)
}
