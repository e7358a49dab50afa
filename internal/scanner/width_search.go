package scanner

import "github.com/rivo/uniseg"

// graphemeWidthAt returns the width of a lone tab, expanded to the next tab
// stop from the current column, or -1 for any other cluster.
func graphemeWidthAt(cluster []byte, col, tabWidth int) int {
	if len(cluster) == 1 && cluster[0] == '\t' {
		if tabWidth <= 0 {
			return 1
		}
		return tabWidth - (col % tabWidth)
	}
	return -1 // sentinel: caller must apply the oracle
}

func width(cluster []byte, col, tabWidth int, oracle Oracle) int {
	if w := graphemeWidthAt(cluster, col, tabWidth); w >= 0 {
		return w
	}
	return oracle(cluster)
}

// GraphemeColumnWidth is width's exported form, for callers outside this
// package that need a single tab-aware grapheme width (the view layer's
// wrap-offset index builder).
func GraphemeColumnWidth(cluster []byte, col, tabWidth int, oracle Oracle) int {
	return width(cluster, col, tabWidth, oracle)
}

// FindPosByWidth scans bytes for the grapheme boundary at or just past
// targetCol. With roundUp=false the result never exceeds targetCol
// (snapping to the start of a straddling grapheme); with roundUp=true it
// snaps to the end of the straddling grapheme, never overshooting by more
// than that grapheme's own width.
func FindPosByWidth(b []byte, targetCol, tabWidth int, asciiOnly, roundUp bool, oracle Oracle) (byteOffset, columnsUsed int) {
	col, offset := 0, 0
	if asciiOnly {
		for offset < len(b) {
			w := width(b[offset:offset+1], col, tabWidth, oracle)
			if col+w > targetCol {
				if roundUp {
					return offset + 1, col + w
				}
				return offset, col
			}
			col += w
			offset++
			if col == targetCol {
				return offset, col
			}
		}
		return offset, col
	}

	rest, state := b, -1
	for offset < len(b) {
		cluster, next, _, newState := uniseg.FirstGraphemeCluster(rest, state)
		w := width(cluster, col, tabWidth, oracle)
		if col+w > targetCol {
			if roundUp {
				return offset + len(cluster), col + w
			}
			return offset, col
		}
		col += w
		offset += len(cluster)
		rest, state = next, newState
		if col == targetCol {
			return offset, col
		}
	}
	return offset, col
}

// FindWrapPosByWidth greedily fits as many leading graphemes of b as
// possible within maxCols, never exceeding it. Used by character-mode wrap.
func FindWrapPosByWidth(b []byte, maxCols, tabWidth int, asciiOnly bool, oracle Oracle) (graphemeCount, byteOffset, columnsUsed int) {
	col, offset, count := 0, 0, 0
	if asciiOnly {
		for offset < len(b) {
			w := width(b[offset:offset+1], col, tabWidth, oracle)
			if col+w > maxCols {
				break
			}
			col += w
			offset++
			count++
		}
		return count, offset, col
	}

	rest, state := b, -1
	for offset < len(b) {
		cluster, next, _, newState := uniseg.FirstGraphemeCluster(rest, state)
		w := width(cluster, col, tabWidth, oracle)
		if col+w > maxCols {
			break
		}
		col += w
		offset += len(cluster)
		count++
		rest, state = next, newState
	}
	return count, offset, col
}
