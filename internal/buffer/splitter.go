package buffer

import (
	"github.com/vrope/vrope/internal/errs"
	"github.com/vrope/vrope/internal/rope"
	"github.com/vrope/vrope/internal/scanner"
)

// textSplitter implements rope.Splitter over a TextBuffer's registry and
// width oracle, dividing a Text leaf at a grapheme boundary located via the
// scanner.
type textSplitter struct {
	b *TextBuffer
}

// Splitter returns the rope.Splitter the buffer's own registry and oracle
// back, for use by any caller of rope.InsertSliceByWeight /
// DeleteRangeByWeight (the edit layer).
func (b *TextBuffer) Splitter() rope.Splitter {
	return textSplitter{b: b}
}

func (s textSplitter) Split(leaf rope.Segment, weightInLeaf int) (rope.Segment, rope.Segment, error) {
	chunk := leaf.Chunk
	bytes, ok := s.b.Registry.Get(chunk.MemID)
	if !ok {
		return rope.Segment{}, rope.Segment{}, errs.ErrInvalidMemID
	}
	slice := bytes[chunk.ByteStart:chunk.ByteEnd]
	byteOffset, cols := scanner.FindPosByWidth(slice, weightInLeaf, DefaultTabWidth, chunk.AsciiOnly, false, s.b.Oracle)
	if cols != weightInLeaf {
		return rope.Segment{}, rope.Segment{}, errs.ErrInvalidSplit
	}
	mid := chunk.ByteStart + byteOffset
	left := rope.TextChunk{
		MemID: chunk.MemID, ByteStart: chunk.ByteStart, ByteEnd: mid,
		DisplayWidth: weightInLeaf, AsciiOnly: allASCII(bytes[chunk.ByteStart:mid]),
	}
	right := rope.TextChunk{
		MemID: chunk.MemID, ByteStart: mid, ByteEnd: chunk.ByteEnd,
		DisplayWidth: chunk.DisplayWidth - weightInLeaf, AsciiOnly: allASCII(bytes[mid:chunk.ByteEnd]),
	}
	return rope.NewTextSegment(left), rope.NewTextSegment(right), nil
}

func allASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
