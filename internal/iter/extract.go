package iter

import (
	"github.com/vrope/vrope/internal/registry"
	"github.com/vrope/vrope/internal/rope"
	"github.com/vrope/vrope/internal/scanner"
)

// ExtractTextBetweenOffsets copies the text in the display-weight range
// [start,end) into out, returning the bytes written. Graphemes starting
// strictly before start are excluded; graphemes starting strictly before
// end are included. One '\n' is emitted between lines when the range
// crosses a Break.
func ExtractTextBetweenOffsets(rp *rope.Rope, reg *registry.Registry, tabWidth, start, end int, out []byte, oracle scanner.Oracle) (int, error) {
	written := 0
	offset := 0
	err := rp.Walk(func(leaf *rope.Segment, idx int) (bool, error) {
		if offset >= end {
			return false, nil
		}
		switch leaf.Kind {
		case rope.KindBreak:
			if offset >= start && offset < end {
				if written < len(out) {
					out[written] = '\n'
				}
				written++
			}
			offset++
		case rope.KindText:
			chunkStart := offset
			chunkEnd := offset + leaf.Chunk.DisplayWidth
			if chunkEnd > start && chunkStart < end {
				bytes, ok := getBytes(reg, leaf.Chunk)
				if ok {
					n := copyChunkRange(bytes, leaf.Chunk, chunkStart, start, end, tabWidth, oracle, out[written:])
					written += n
				}
			}
			offset = chunkEnd
		}
		return true, nil
	})
	return written, err
}

// copyChunkRange copies the portion of a chunk's bytes whose global
// display-weight span overlaps [start,end), writing grapheme-aligned
// content into out and returning the number of bytes written.
func copyChunkRange(bytes []byte, chunk rope.TextChunk, chunkGlobalStart, start, end, tabWidth int, oracle scanner.Oracle, out []byte) int {
	loCol := 0
	if start > chunkGlobalStart {
		loCol = start - chunkGlobalStart
	}
	hiCol := chunk.DisplayWidth
	if end < chunkGlobalStart+chunk.DisplayWidth {
		hiCol = end - chunkGlobalStart
	}
	if hiCol <= loCol {
		return 0
	}
	// Rounding up drops a grapheme that straddles start and keeps one that
	// straddles end.
	loByte := 0
	if loCol > 0 {
		loByte, _ = scanner.FindPosByWidth(bytes, loCol, tabWidth, chunk.AsciiOnly, true, oracle)
	}
	hiByte, _ := scanner.FindPosByWidth(bytes, hiCol, tabWidth, chunk.AsciiOnly, true, oracle)
	if hiByte > len(bytes) {
		hiByte = len(bytes)
	}
	if loByte > hiByte {
		return 0
	}
	return copy(out, bytes[loByte:hiByte])
}
