package molding

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// SegmentAnchor locates the handles of one part on its offset line.
type SegmentAnchor struct {
	Index  int     `json:"index"`
	Start  v2.Vec  `json:"start"`
	End    v2.Vec  `json:"end"`
	Prev   v2.Vec  `json:"prev"` // reversed unit direction of the previous part, zero for the first
	Next   v2.Vec  `json:"next"` // unit direction of this part
	Length float64 `json:"length"`
	Z0     float64 `json:"z0"`
}

// HasAngle reports whether the part has an incoming part to turn from.
func (a SegmentAnchor) HasAngle() bool {
	return a.Index > 0
}

// Anchors is the geometry a manipulator layer needs: per-part length and
// angle handles, the total length and the profile extent.
type Anchors struct {
	Segments []SegmentAnchor `json:"segments"`
	Length   float64         `json:"length"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
}

// SectionAnchors returns the manipulator anchors from the cached chain.
// It does not touch mesh buffers.
func (g *Generator) SectionAnchors() Anchors {
	chain := g.Chain()
	a := Anchors{Segments: make([]SegmentAnchor, len(chain))}
	for i, e := range chain {
		s := SegmentAnchor{
			Index:  i,
			Start:  e.Line.Origin(),
			End:    e.Line.End(),
			Next:   e.Line.StartDirection(),
			Length: e.Line.Length(),
			Z0:     e.Z0,
		}
		if i > 0 {
			s.Prev = chain[i-1].Line.EndDirection().Neg()
		}
		a.Segments[i] = s
		a.Length += s.Length
	}
	a.Width, a.Height = g.params.Profile.Size()
	return a
}

// Points returns the offset polyline through the anchors.
func (a Anchors) Points() []v2.Vec {
	if len(a.Segments) == 0 {
		return nil
	}
	pts := make([]v2.Vec, 0, len(a.Segments)+1)
	pts = append(pts, a.Segments[0].Start)
	for _, s := range a.Segments {
		pts = append(pts, s.End)
	}
	return pts
}
