package rope

import "github.com/vrope/vrope/internal/errs"

// Splitter divides a Text leaf at a display-weight offset into two leaves
// whose concatenation is byte-identical to the original and whose widths
// sum to the original width. A single-method interface, preferred here
// over an opaque function pointer with untyped context.
//
// weightInLeaf is guaranteed to fall in [1, leaf.Chunk.DisplayWidth-1];
// Split is never invoked for Break or LineStart leaves, or for a weight
// exactly on a leaf boundary. The rope does not check that weightInLeaf is
// a grapheme boundary: an implementation returns an error for a weight
// that falls inside a grapheme.
type Splitter interface {
	Split(leaf Segment, weightInLeaf int) (left, right Segment, err error)
}

func splitLeafSegment(splitter Splitter, leaf Segment, weightInLeaf int) (Segment, Segment, error) {
	if leaf.Kind != KindText {
		return Segment{}, Segment{}, errs.ErrInvalidSplit
	}
	if weightInLeaf <= 0 || weightInLeaf >= leaf.Chunk.DisplayWidth {
		return Segment{}, Segment{}, errs.ErrInvalidSplit
	}
	return splitter.Split(leaf, weightInLeaf)
}
