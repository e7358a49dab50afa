package scanner

import "github.com/rivo/uniseg"

// GraphemeSpan is one grapheme cluster's location within a scanned slice.
type GraphemeSpan struct {
	ByteOffset int
	ByteLen    int
}

// IteratorFunc yields grapheme cluster spans over bytes, in order. Hosts may
// inject their own; DefaultIterator is the uniseg-backed implementation
// used when none is supplied.
type IteratorFunc func(b []byte) []GraphemeSpan

// DefaultIterator segments b into grapheme clusters using uniseg's
// state-machine cluster boundaries.
func DefaultIterator(b []byte) []GraphemeSpan {
	if len(b) == 0 {
		return nil
	}
	spans := make([]GraphemeSpan, 0, len(b))
	rest := b
	offset := 0
	state := -1
	for len(rest) > 0 {
		var cluster []byte
		cluster, rest, _, state = uniseg.FirstGraphemeCluster(rest, state)
		spans = append(spans, GraphemeSpan{ByteOffset: offset, ByteLen: len(cluster)})
		offset += len(cluster)
	}
	return spans
}

// DecodeGraphemeAt decodes the single grapheme cluster starting at offset
// and returns its byte length and display width per oracle. offset must be
// a grapheme boundary (callers never pass mid-cluster offsets).
func DecodeGraphemeAt(b []byte, offset int, oracle Oracle) (byteLen, width int) {
	if offset < 0 || offset >= len(b) {
		return 0, 0
	}
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(b[offset:], -1)
	return len(cluster), oracle(cluster)
}

// GetPrevGraphemeStart returns the byte offset and width of the grapheme
// cluster immediately preceding the byte position `before`. It walks
// forward from the start of b re-deriving cluster boundaries (uniseg's
// segmentation is forward-only), which is linear in the distance from the
// start of b — callers bound b to a single chunk to keep this cheap.
func GetPrevGraphemeStart(b []byte, before int, oracle Oracle) (byteOffset, width int, ok bool) {
	if before <= 0 || before > len(b) {
		return 0, 0, false
	}
	rest := b
	offset := 0
	state := -1
	for offset < before && len(rest) > 0 {
		cluster, next, _, newState := uniseg.FirstGraphemeCluster(rest, state)
		end := offset + len(cluster)
		if end == before {
			return offset, oracle(cluster), true
		}
		if end > before {
			return 0, 0, false
		}
		rest, state, offset = next, newState, end
	}
	return 0, 0, false
}
