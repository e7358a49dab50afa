package rope

import "github.com/vrope/vrope/internal/errs"

// Rope is a balanced tree over Segment leaves with monoidal aggregated
// metrics, plus a lazily rebuilt LineStart marker index. Not safe for
// concurrent use; callers hold a single-writer discipline.
type Rope struct {
	root *node

	markers      []markerEntry
	markersValid bool
}

// New returns an empty rope.
func New() *Rope {
	return &Rope{}
}

// Count returns the number of leaves.
func (rp *Rope) Count() int {
	if rp.root == nil {
		return 0
	}
	return rp.root.m.count
}

// TotalWeight returns the sum of leaf weights.
func (rp *Rope) TotalWeight() int {
	if rp.root == nil {
		return 0
	}
	return rp.root.m.totalWidth
}

// LinestartCount returns the number of LineStart leaves.
func (rp *Rope) LinestartCount() int {
	if rp.root == nil {
		return 0
	}
	return rp.root.m.linestartCount
}

// MaxLineWidth returns the maximum display width over lines fully
// contained in the buffer, derived in O(1) from the root's measure.
func (rp *Rope) MaxLineWidth() int {
	if rp.root == nil {
		return 0
	}
	return rootMaxLineWidth(rp.root.m)
}

// Get returns a copy of the leaf at index, or ok=false if out of range.
func (rp *Rope) Get(index int) (Segment, bool) {
	s := get(rp.root, index)
	if s == nil {
		return Segment{}, false
	}
	return *s, true
}

// Append adds leaf at the end of the rope.
func (rp *Rope) Append(leaf Segment) {
	rp.root = concat(rp.root, newLeaf(leaf))
	rp.invalidate()
	rp.maybeRebalance()
}

// Insert places leaf at leaf position index, shifting subsequent leaves.
func (rp *Rope) Insert(index int, leaf Segment) error {
	if index < 0 || index > rp.Count() {
		return errs.ErrOutOfBounds
	}
	l, r := split(rp.root, index)
	rp.root = concat(concat(l, newLeaf(leaf)), r)
	rp.invalidate()
	rp.maybeRebalance()
	return nil
}

// Delete removes the leaf at position index.
func (rp *Rope) Delete(index int) error {
	if index < 0 || index >= rp.Count() {
		return errs.ErrOutOfBounds
	}
	l, mid := split(rp.root, index)
	_, r := split(mid, 1)
	rp.root = concat(l, r)
	rp.invalidate()
	rp.maybeRebalance()
	return nil
}

// Walk visits leaves in order. fn returns keepWalking=false to stop early,
// or a non-nil error to abort; Walk propagates whichever the callback
// returns.
func (rp *Rope) Walk(fn func(leaf *Segment, index int) (keepWalking bool, err error)) error {
	idx := 0
	_, err := walkInOrder(rp.root, &idx, fn)
	return err
}

// Rebalance rebuilds the tree to minimal depth over its current leaf
// sequence, restoring the depth invariant via periodic rebuilding.
func (rp *Rope) Rebalance() {
	if rp.root == nil {
		return
	}
	leaves := collectLeaves(rp.root, make([]Segment, 0, rp.Count()))
	rp.root = buildBalanced(leaves)
}

func (rp *Rope) maybeRebalance() {
	if rp.root == nil {
		return
	}
	if rp.root.m.depth > depthBudget(rp.root.m.count) {
		rp.Rebalance()
	}
}

func (rp *Rope) invalidate() {
	rp.markersValid = false
	rp.markers = nil
}

// MarkerCount returns the number of LineStart markers (the only marker
// kind the engine tracks).
func (rp *Rope) MarkerCount() int {
	rp.ensureMarkers()
	return len(rp.markers)
}

// GetMarker returns the (leaf_index, global_weight) of the ordinal-th
// LineStart marker (0-based), or ok=false if out of range.
func (rp *Rope) GetMarker(ordinal int) (leafIndex, globalWeight int, ok bool) {
	rp.ensureMarkers()
	if ordinal < 0 || ordinal >= len(rp.markers) {
		return 0, 0, false
	}
	e := rp.markers[ordinal]
	return e.leafIndex, e.globalWeight, true
}

func (rp *Rope) ensureMarkers() {
	if rp.markersValid {
		return
	}
	rp.markers = buildMarkerIndex(rp.root)
	rp.markersValid = true
}

// LocateLeaf returns the leaf containing the given display-weight
// position and the column offset within that leaf. Used by the iterators
// package to find the Text chunk under a (row,col) coordinate.
func (rp *Rope) LocateLeaf(weight int) (leafIndex, offsetInLeaf int, ok bool) {
	return locate(rp.root, weight)
}

// locate finds the leaf containing weight and the byte... rather,
// display-column offset within that leaf.
func locate(n *node, weight int) (leafIndex, offsetInLeaf int, ok bool) {
	if n == nil {
		return 0, 0, false
	}
	if n.leaf != nil {
		return 0, weight, true
	}
	if weight <= n.left.m.totalWidth {
		return locate(n.left, weight)
	}
	idx, off, ok := locate(n.right, weight-n.left.m.totalWidth)
	return idx + n.left.m.count, off, ok
}

// ensureBoundary returns the leaf index of an exact weight boundary,
// splitting the straddling Text leaf via splitter if weight falls in its
// interior. On an existing boundary the index lies past any LineStart
// markers at that weight, so the position belongs to the line they open.
// The tree is mutated in place when a split occurs.
func (rp *Rope) ensureBoundary(weight int, splitter Splitter) (int, error) {
	if rp.root == nil {
		if weight == 0 {
			return 0, nil
		}
		return 0, errs.ErrOutOfBounds
	}
	leafIdx, offset, ok := locate(rp.root, weight)
	if !ok {
		return 0, errs.ErrOutOfBounds
	}
	leaf := get(rp.root, leafIdx)
	leafWeight := leaf.Weight()
	if offset == 0 || offset == leafWeight {
		idx := leafIdx
		if offset == leafWeight {
			idx++
		}
		for s := get(rp.root, idx); s != nil && s.Kind == KindLineStart; s = get(rp.root, idx) {
			idx++
		}
		return idx, nil
	}
	left, right, err := splitLeafSegment(splitter, *leaf, offset)
	if err != nil {
		return 0, err
	}
	l, r := split(rp.root, leafIdx)
	_, after := split(r, 1)
	newMiddle := buildBalanced([]Segment{left, right})
	rp.root = concat(concat(l, newMiddle), after)
	rp.invalidate()
	return leafIdx + 1, nil
}

// InsertSliceByWeight locates the leaf containing the given display-weight
// position, splitting it via splitter when the position falls in its
// interior, and splices segs in at that boundary.
func (rp *Rope) InsertSliceByWeight(weight int, segs []Segment, splitter Splitter) error {
	if weight < 0 || weight > rp.TotalWeight() {
		return errs.ErrOutOfBounds
	}
	idx, err := rp.ensureBoundary(weight, splitter)
	if err != nil {
		return err
	}
	l, r := split(rp.root, idx)
	built := buildBalanced(segs)
	rp.root = concat(concat(l, built), r)
	rp.invalidate()
	rp.maybeRebalance()
	return nil
}

// DeleteRangeByWeight deletes every leaf fully inside [start,end),
// splitting the straddling leaves at the boundaries via splitter.
// delete_range(c,c) is a documented no-op.
func (rp *Rope) DeleteRangeByWeight(start, end int, splitter Splitter) error {
	if start < 0 || end > rp.TotalWeight() || start > end {
		return errs.ErrOutOfBounds
	}
	if start == end {
		return nil
	}
	startIdx, err := rp.ensureBoundary(start, splitter)
	if err != nil {
		return err
	}
	endIdx, err := rp.ensureBoundary(end, splitter)
	if err != nil {
		return err
	}
	l, rest := split(rp.root, startIdx)
	_, r := split(rest, endIdx-startIdx)
	rp.root = concat(l, r)
	rp.invalidate()
	rp.maybeRebalance()
	return nil
}
