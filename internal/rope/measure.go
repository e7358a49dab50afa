package rope

// measure is the monoidal aggregate cached at every tree node. Combining two
// children's measures never requires looking at leaf content directly,
// which is what lets total_width/linestart_count/max_line_width stay O(1)
// at the root after any structural mutation.
//
// leadWidth/trailWidth/midMax implement the classic "maximum bounded
// subrange" combine: a logical line can span a tree-split boundary, so the
// width of a line that is still "open" at a subtree's left or right edge
// must be carried up and stitched together by the parent before it can be
// judged a candidate for max_line_width.
type measure struct {
	count          int // number of leaves
	depth          int // tree height
	totalWidth     int // sum of leaf weights
	linestartCount int // count of LineStart leaves
	breakCount     int // count of Break leaves

	leadWidth  int // width of the subtree's leading, possibly-open line
	trailWidth int // width of the subtree's trailing, possibly-open line
	midMax     int // max width of a line fully closed within the subtree, -1 if none
}

func leafMeasure(s Segment) measure {
	w := s.Weight()
	m := measure{count: 1, depth: 1, totalWidth: w, midMax: -1}
	switch s.Kind {
	case KindLineStart:
		m.linestartCount = 1
	case KindBreak:
		m.breakCount = 1
	case KindText:
		m.leadWidth = w
		m.trailWidth = w
	}
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func combine(l, r measure) measure {
	m := measure{
		count:          l.count + r.count,
		depth:          maxInt(l.depth, r.depth) + 1,
		totalWidth:     l.totalWidth + r.totalWidth,
		linestartCount: l.linestartCount + r.linestartCount,
		breakCount:     l.breakCount + r.breakCount,
	}

	if l.breakCount == 0 {
		m.leadWidth = l.leadWidth + r.leadWidth
	} else {
		m.leadWidth = l.leadWidth
	}

	if r.breakCount == 0 {
		m.trailWidth = r.trailWidth + l.trailWidth
	} else {
		m.trailWidth = r.trailWidth
	}

	m.midMax = maxInt(l.midMax, r.midMax)
	if l.breakCount > 0 && r.breakCount > 0 {
		joined := l.trailWidth + r.leadWidth
		m.midMax = maxInt(m.midMax, joined)
	}
	return m
}

// rootMaxLineWidth derives max_line_width from a root measure: the leading
// and trailing open lines are bounded by the buffer's start/end (which act
// like implicit LineStart/Break boundaries), so at the root — and only at
// the root — they are genuine, fully-closed lines too.
func rootMaxLineWidth(m measure) int {
	if m.breakCount == 0 {
		return m.totalWidth
	}
	width := m.midMax
	width = maxInt(width, m.leadWidth)
	width = maxInt(width, m.trailWidth)
	return width
}
