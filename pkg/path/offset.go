package path

// DefaultCloseTolerance is the centerline gap under which
// ApplyOffsetTrimmed joins the last line to the first when no tolerance is
// given.
const DefaultCloseTolerance = 1e-4

// ApplyOffset returns a copy of the chain whose offset lines are the
// centerline segments translated by offset along their left normal.
// Corners are not trimmed: consecutive offset lines may overlap or leave a
// gap, which the section builder compensates for with the mitre scale.
func ApplyOffset(c Chain, offset float64) Chain {
	out := make(Chain, len(c))
	for i, e := range c {
		e.Line = e.Segment.Offset(offset)
		out[i] = e
	}
	return out
}

// ApplyOffsetTrimmed is ApplyOffset followed by joining consecutive
// straight offset lines at their intersection. When the centerline closes
// within tol the wrap joint is joined too, so the offset lines stay closed.
// A non-positive tol selects DefaultCloseTolerance.
// Parallel lines, degenerate lines and joins that would reverse a line are
// left as they are.
func ApplyOffsetTrimmed(c Chain, offset, tol float64) Chain {
	if tol <= 0 {
		tol = DefaultCloseTolerance
	}
	out := ApplyOffset(c, offset)
	for i := 1; i < len(out); i++ {
		trimJoin(&out[i-1], &out[i])
	}
	if n := len(out); n > 2 {
		gap := out[0].Segment.Origin().Sub(out[n-1].Segment.End()).Length()
		if gap < tol {
			trimJoin(&out[n-1], &out[0])
		}
	}
	return out
}

func trimJoin(prevElem, curElem *Element) {
	prev, ok := prevElem.Line.(Straight)
	if !ok || prev.Length() == 0 {
		return
	}
	cur, ok := curElem.Line.(Straight)
	if !ok || cur.Length() == 0 {
		return
	}
	t, ok := cur.Intersect(prev)
	if !ok {
		return
	}
	p := cur.Lerp(t)
	head := p.Sub(prev.P)
	tail := cur.End().Sub(p)
	if head.Dot(prev.V) <= 0 || tail.Dot(cur.V) <= 0 {
		return
	}
	prevElem.Line = NewStraight(prev.P, head)
	curElem.Line = NewStraight(p, tail)
}
