package view

import (
	"github.com/rivo/uniseg"

	"github.com/vrope/vrope/internal/iter"
	"github.com/vrope/vrope/internal/rope"
	"github.com/vrope/vrope/internal/scanner"
)

// wrapPoint records one soft-wrap candidate within a chunk: the byte
// offset immediately after a break character, and the cumulative display
// column and grapheme count up to that offset.
type wrapPoint struct {
	byteOffset int
	col        int
	graphemes  int
}

// projectWrapped rebuilds v.lines by walking the rope line by line and
// handing each line's chunks to a wrapProjector.
func (v *View) projectWrapped(wrapWidth int) error {
	p := &wrapProjector{v: v, wrapWidth: wrapWidth}
	return iter.WalkLinesAndSegments(v.buf.Rope,
		func(lineIdx int, chunk rope.TextChunk, chunkIdx int) (bool, error) {
			return true, p.segment(lineIdx, chunk, chunkIdx)
		},
		func(info iter.LineInfo) (bool, error) {
			p.endLine(info)
			return true, nil
		})
}

// wrapProjector accumulates virtual lines for the logical line currently
// being walked, flushing a committed virtual line to v.lines whenever the
// line budget fills or a logical line ends.
type wrapProjector struct {
	v         *View
	wrapWidth int

	cur         VirtualLine
	lineStarted bool
	linePos     int // columns committed to the current virtual line so far
	sourceCol   int // columns consumed within the current logical line so far
}

func (p *wrapProjector) ensureStarted(lineIdx int) {
	if !p.lineStarted {
		p.cur = VirtualLine{SourceLine: lineIdx, SourceColOffset: p.sourceCol}
		p.lineStarted = true
		p.linePos = 0
	}
}

func (p *wrapProjector) commit(lineIdx int) {
	if p.lineStarted {
		p.v.lines = append(p.v.lines, p.cur)
	}
	p.lineStarted = false
	p.linePos = 0
}

// endLine closes out whatever virtual line is in progress when a logical
// line ends, so a trailing empty logical line still produces one (empty)
// virtual line, and CharOffset is stamped from the logical line's info.
// It also resets the per-logical-line source column counter.
func (p *wrapProjector) endLine(info iter.LineInfo) {
	p.ensureStarted(info.LineIdx)
	p.cur.CharOffset = info.CharOffset
	p.commit(info.LineIdx)
	p.sourceCol = 0
}

func (p *wrapProjector) segment(lineIdx int, chunk rope.TextChunk, chunkIdx int) error {
	bytes, ok := p.v.buf.Registry.Get(chunk.MemID)
	if !ok {
		return nil
	}
	slice := bytes[chunk.ByteStart:chunk.ByteEnd]
	if p.v.wrapMode == WrapWord {
		return p.emitWord(lineIdx, chunkIdx, slice, chunk)
	}
	return p.emitChar(lineIdx, chunkIdx, slice, chunk)
}

// forceOneGrapheme fits exactly one grapheme cluster of slice regardless of
// the wrap width, the fallback for a single character wider than a whole
// fresh line.
func forceOneGrapheme(slice []byte, tabWidth int, asciiOnly bool, oracle scanner.Oracle) (byteOffset, cols, graphemes int) {
	byteOffset, cols = scanner.FindPosByWidth(slice, 0, tabWidth, asciiOnly, true, oracle)
	if byteOffset == 0 {
		return 0, 0, 0
	}
	return byteOffset, cols, 1
}

// emitChar implements character-mode wrap: repeatedly fit as many leading
// graphemes of slice as the remaining line budget allows, forcing exactly
// one grapheme onto a fresh line when even the full wrap width cannot hold
// it.
func (p *wrapProjector) emitChar(lineIdx, chunkIdx int, slice []byte, chunk rope.TextChunk) error {
	remaining := slice
	graphemeStart := 0
	for len(remaining) > 0 {
		p.ensureStarted(lineIdx)
		budget := p.wrapWidth - p.linePos
		graphemes, byteOff, cols := scanner.FindWrapPosByWidth(remaining, budget, p.v.tabWidth, chunk.AsciiOnly, p.v.buf.Oracle)
		if graphemes == 0 {
			if p.linePos == 0 {
				byteOff, cols, graphemes = forceOneGrapheme(remaining, p.v.tabWidth, chunk.AsciiOnly, p.v.buf.Oracle)
				if graphemes == 0 {
					return nil
				}
			} else {
				p.commit(lineIdx)
				continue
			}
		}
		p.cur.Chunks = append(p.cur.Chunks, VirtualChunk{
			SourceChunkIdx: chunkIdx,
			GraphemeStart:  graphemeStart,
			GraphemeCount:  graphemes,
			Width:          cols,
		})
		p.cur.Width += cols
		p.linePos += cols
		p.sourceCol += cols
		graphemeStart += graphemes
		remaining = remaining[byteOff:]
		if p.linePos >= p.wrapWidth && len(remaining) > 0 {
			p.commit(lineIdx)
		}
	}
	return nil
}

// emitWord implements word-mode wrap: precompute the chunk's cumulative
// wrap-offset table, then greedily take the furthest break point that fits
// the remaining budget, falling back to the character-mode force-break for
// a token wider than a fresh line.
func (p *wrapProjector) emitWord(lineIdx, chunkIdx int, slice []byte, chunk rope.TextChunk) error {
	points := p.v.wrapOffsets(chunk, slice)
	graphemeStart, byteStart, colStart, graphemeBase := 0, 0, 0, 0
	pointIdx := 0

	for byteStart < len(slice) {
		p.ensureStarted(lineIdx)
		budget := p.wrapWidth - p.linePos

		for pointIdx < len(points) && points[pointIdx].byteOffset <= byteStart {
			pointIdx++
		}
		best := -1
		for j := pointIdx; j < len(points); j++ {
			if points[j].col-colStart <= budget {
				best = j
			} else {
				break
			}
		}
		if best >= 0 {
			pt := points[best]
			width := pt.col - colStart
			p.cur.Chunks = append(p.cur.Chunks, VirtualChunk{
				SourceChunkIdx: chunkIdx,
				GraphemeStart:  graphemeStart,
				GraphemeCount:  pt.graphemes - graphemeBase,
				Width:          width,
			})
			p.cur.Width += width
			p.linePos += width
			p.sourceCol += width
			graphemeStart = pt.graphemes
			graphemeBase = pt.graphemes
			byteStart = pt.byteOffset
			colStart = pt.col
			pointIdx = best + 1
			continue
		}

		if p.linePos > 0 {
			p.commit(lineIdx)
			continue
		}

		// Nothing reaches even a fresh line: force-break by fitting as many
		// graphemes as the fresh line holds (at least one), character-mode
		// style.
		graphemes, byteOff, cols := scanner.FindWrapPosByWidth(slice[byteStart:], p.wrapWidth-p.linePos, p.v.tabWidth, chunk.AsciiOnly, p.v.buf.Oracle)
		if graphemes == 0 {
			byteOff, cols, graphemes = forceOneGrapheme(slice[byteStart:], p.v.tabWidth, chunk.AsciiOnly, p.v.buf.Oracle)
			if graphemes == 0 {
				return nil
			}
		}
		p.cur.Chunks = append(p.cur.Chunks, VirtualChunk{
			SourceChunkIdx: chunkIdx,
			GraphemeStart:  graphemeStart,
			GraphemeCount:  graphemes,
			Width:          cols,
		})
		p.cur.Width += cols
		p.linePos += cols
		p.sourceCol += cols
		graphemeStart += graphemes
		graphemeBase += graphemes
		byteStart += byteOff
		colStart += cols
		if p.linePos >= p.wrapWidth && byteStart < len(slice) {
			p.commit(lineIdx)
		}
	}
	return nil
}

// wrapOffsets returns chunk's cumulative wrap-point table, building and
// caching it on first use, extended with running column/grapheme counts
// for the word-wrap projector.
func (v *View) wrapOffsets(chunk rope.TextChunk, slice []byte) []wrapPoint {
	key := chunkKey{memID: chunk.MemID, byteStart: chunk.ByteStart, byteEnd: chunk.ByteEnd}
	if cached, ok := v.wrapCache[key]; ok {
		return cached
	}
	breakOffsets := scanner.FindWrapBreaks(slice)
	points := make([]wrapPoint, 0, len(breakOffsets)+1)
	breakIdx := 0

	col, graphemes, offset := 0, 0, 0
	rest, state := slice, -1
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.FirstGraphemeCluster(rest, state)
		col += scanner.GraphemeColumnWidth(cluster, col, v.tabWidth, v.buf.Oracle)
		graphemes++
		offset += len(cluster)
		rest, state = next, newState

		for breakIdx < len(breakOffsets) && breakOffsets[breakIdx] < offset {
			breakIdx++
		}
		if breakIdx < len(breakOffsets) && breakOffsets[breakIdx] == offset {
			points = append(points, wrapPoint{byteOffset: offset, col: col, graphemes: graphemes})
			breakIdx++
		}
	}
	points = append(points, wrapPoint{byteOffset: len(slice), col: col, graphemes: graphemes})
	v.wrapCache[key] = points
	return points
}
