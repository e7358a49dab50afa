package iter

import (
	"github.com/vrope/vrope/internal/registry"
	"github.com/vrope/vrope/internal/rope"
	"github.com/vrope/vrope/internal/scanner"
)

// GetGraphemeWidthAt locates the Text chunk containing column col on row,
// and returns the width of the grapheme starting there.
func GetGraphemeWidthAt(rp *rope.Rope, reg *registry.Registry, row, col, tabWidth int, oracle scanner.Oracle) (width int, ok bool) {
	offset, ok := CoordsToOffset(rp, row, col)
	if !ok {
		return 0, false
	}
	return graphemeWidthAtOffset(rp, reg, offset, tabWidth, oracle)
}

func graphemeWidthAtOffset(rp *rope.Rope, reg *registry.Registry, offset, tabWidth int, oracle scanner.Oracle) (int, bool) {
	// The leaf holding column offset is the first whose span reaches
	// offset+1; locating offset itself yields a leaf that ends there.
	leafIdx, within, ok := rp.LocateLeaf(offset + 1)
	if !ok {
		return 0, false
	}
	seg, ok := rp.Get(leafIdx)
	if !ok || seg.Kind != rope.KindText {
		return 0, false
	}
	bytes, ok := getBytes(reg, seg.Chunk)
	if !ok {
		return 0, false
	}
	byteOffset, _ := scanner.FindPosByWidth(bytes, within-1, tabWidth, seg.Chunk.AsciiOnly, false, oracle)
	if byteOffset >= len(bytes) {
		return 0, false
	}
	_, w := scanner.DecodeGraphemeAt(bytes, byteOffset, oracle)
	return w, true
}

// GetPrevGraphemeWidth locates the chunk containing column col on row and
// returns the width of the grapheme immediately before it.
func GetPrevGraphemeWidth(rp *rope.Rope, reg *registry.Registry, row, col, tabWidth int, oracle scanner.Oracle) (width int, ok bool) {
	offset, ok := CoordsToOffset(rp, row, col)
	if !ok || offset == 0 {
		return 0, false
	}
	leafIdx, within, ok := rp.LocateLeaf(offset)
	if !ok {
		return 0, false
	}
	seg, ok := rp.Get(leafIdx)
	if !ok || seg.Kind != rope.KindText {
		return 0, false
	}
	bytes, ok := getBytes(reg, seg.Chunk)
	if !ok {
		return 0, false
	}
	byteOffset, _ := scanner.FindPosByWidth(bytes, within, tabWidth, seg.Chunk.AsciiOnly, false, oracle)
	_, w, ok := scanner.GetPrevGraphemeStart(bytes, byteOffset, oracle)
	return w, ok
}
