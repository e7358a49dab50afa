package iter

import "github.com/vrope/vrope/internal/rope"

// CoordsToOffset resolves (row,col) to a global display-weight offset in
// O(1) via the marker index. Returns ok=false if row >= line_count or
// col > line_width(row).
func CoordsToOffset(rp *rope.Rope, row, col int) (offset int, ok bool) {
	_, startWeight, exists := rp.GetMarker(row)
	if !exists {
		return 0, false
	}
	width, _ := LineWidthAt(rp, row)
	if col > width {
		return 0, false
	}
	return startWeight + col, true
}

// OffsetToCoords resolves a global display-weight offset to (row,col) via
// binary search over line-start weights. offset == total_weight is valid
// only when it lands on the last line's final column; every other
// line-ending offset resolves to (row, line_width(row)).
func OffsetToCoords(rp *rope.Rope, offset int) (row, col int, ok bool) {
	total := rp.TotalWeight()
	if offset < 0 || offset > total {
		return 0, 0, false
	}
	lineCount := rp.MarkerCount()
	if lineCount == 0 {
		return 0, 0, false
	}

	lo, hi := 0, lineCount-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		_, weight, _ := rp.GetMarker(mid)
		if weight <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	_, startWeight, _ := rp.GetMarker(lo)
	return lo, offset - startWeight, true
}
