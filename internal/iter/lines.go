// Package iter implements the rope traversal and coordinate-conversion
// helpers: line walks, coords<->offset, and text extraction.
package iter

import (
	"github.com/vrope/vrope/internal/registry"
	"github.com/vrope/vrope/internal/rope"
)

// LineInfo describes one logical line.
type LineInfo struct {
	LineIdx    int
	CharOffset int // global display-weight offset of the line's first column
	Width      int
	SegStart   int // leaf index of the line's LineStart marker
	SegEnd     int // leaf index one past the line's terminating Break (or rope end)
}

// LineWidthAt returns line row's display width: the gap between successive
// LineStart markers, minus 1 for the intervening Break, or
// total_weight - line_start_weight for the final line.
func LineWidthAt(rp *rope.Rope, row int) (int, bool) {
	_, startWeight, ok := rp.GetMarker(row)
	if !ok {
		return 0, false
	}
	if _, nextWeight, ok := rp.GetMarker(row + 1); ok {
		return nextWeight - startWeight - 1, true
	}
	return rp.TotalWeight() - startWeight, true
}

// WalkLines emits LineInfo for every logical line via the marker index.
// cb returning keepWalking=false stops the walk early.
func WalkLines(rp *rope.Rope, cb func(LineInfo) (keepWalking bool, err error)) error {
	count := rp.MarkerCount()
	for row := 0; row < count; row++ {
		segStart, startWeight, _ := rp.GetMarker(row)
		width, _ := LineWidthAt(rp, row)
		segEnd := rp.Count()
		if _, _, ok := rp.GetMarker(row + 1); ok {
			// The line ends at the Break immediately preceding the next
			// LineStart; segEnd is exclusive, so it's that Break's index + 1.
			nextSegStart, _, _ := rp.GetMarker(row + 1)
			segEnd = nextSegStart
		}
		info := LineInfo{LineIdx: row, CharOffset: startWeight, Width: width, SegStart: segStart, SegEnd: segEnd}
		keepGoing, err := cb(info)
		if err != nil || !keepGoing {
			return err
		}
	}
	return nil
}

// WalkLinesAndSegments performs one pass over the rope in segment order,
// invoking segCb for each Text segment within a line and lineCb when a
// Break (or the rope's end, if content exists) closes that line.
func WalkLinesAndSegments(
	rp *rope.Rope,
	segCb func(lineIdx int, chunk rope.TextChunk, chunkIdxInLine int) (bool, error),
	lineCb func(LineInfo) (bool, error),
) error {
	if rp.Count() == 0 {
		return nil
	}
	lineIdx := 0
	chunkIdx := 0
	charOffset := 0
	lineStartWeight := 0
	segStart := 0
	width := 0
	stopped := false

	err := rp.Walk(func(leaf *rope.Segment, idx int) (bool, error) {
		switch leaf.Kind {
		case rope.KindLineStart:
			segStart = idx
			lineStartWeight = charOffset
			chunkIdx = 0
		case rope.KindText:
			keepGoing, err := segCb(lineIdx, leaf.Chunk, chunkIdx)
			if err != nil || !keepGoing {
				stopped = !keepGoing
				return keepGoing, err
			}
			chunkIdx++
			width += leaf.Chunk.DisplayWidth
			charOffset += leaf.Chunk.DisplayWidth
		case rope.KindBreak:
			info := LineInfo{LineIdx: lineIdx, CharOffset: lineStartWeight, Width: width, SegStart: segStart, SegEnd: idx + 1}
			keepGoing, err := lineCb(info)
			if err != nil || !keepGoing {
				stopped = !keepGoing
				return keepGoing, err
			}
			lineIdx++
			width = 0
			charOffset++
		}
		return true, nil
	})
	if err != nil || stopped {
		return err
	}

	// The final line has no terminating Break; close it explicitly now
	// that the rope's end has been reached, as long as content exists.
	info := LineInfo{LineIdx: lineIdx, CharOffset: lineStartWeight, Width: width, SegStart: segStart, SegEnd: rp.Count()}
	_, err = lineCb(info)
	return err
}

// getBytes reads the slice a TextChunk refers to.
func getBytes(reg *registry.Registry, chunk rope.TextChunk) ([]byte, bool) {
	bytes, ok := reg.Get(chunk.MemID)
	if !ok {
		return nil, false
	}
	if chunk.ByteStart < 0 || chunk.ByteEnd > len(bytes) || chunk.ByteStart > chunk.ByteEnd {
		return nil, false
	}
	return bytes[chunk.ByteStart:chunk.ByteEnd], true
}
