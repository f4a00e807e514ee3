// Package profile resolves a named cross-section shape and its dimensions
// into the ordered 2D points that get swept along a path. Points are in
// frame-local coordinates: x across the molding, y up.
package profile

import (
	"fmt"
	"math"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Kind selects a built-in profile shape.
type Kind int

const (
	Square Kind = iota
	Circle
	Complex
)

// Default dimensions, in scene units.
const (
	DefaultWidth  = 0.02
	DefaultHeight = 0.1
	DefaultRadius = 0.02
)

// arcSteps is the number of steps of the rounded CIRCLE corner.
const arcSteps = 6

func (k Kind) String() string {
	switch k {
	case Square:
		return "SQUARE"
	case Circle:
		return "CIRCLE"
	case Complex:
		return "COMPLEX"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a profile name, ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SQUARE":
		return Square, nil
	case "CIRCLE":
		return Circle, nil
	case "COMPLEX":
		return Complex, nil
	}
	return 0, fmt.Errorf("profile: unknown kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Spec is a profile choice plus its dimensions.
type Spec struct {
	Kind   Kind    `yaml:"profile" json:"profile"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	Radius float64 `yaml:"radius" json:"radius"` // CIRCLE only
}

// Default returns the SQUARE profile at default dimensions.
func Default() Spec {
	return Spec{Kind: Square, Width: DefaultWidth, Height: DefaultHeight, Radius: DefaultRadius}
}

// EffectiveRadius is the radius CIRCLE actually uses: min(radius, w, h).
func (s Spec) EffectiveRadius() float64 {
	return math.Min(s.Radius, math.Min(s.Width, s.Height))
}

// RadiusClamped reports whether the requested radius exceeds the profile.
func (s Spec) RadiusClamped() bool {
	return s.Kind == Circle && s.Radius > math.Min(s.Width, s.Height)
}

// Points returns the ordered profile points.
func (s Spec) Points() []v2.Vec {
	w, h := s.Width, s.Height
	switch s.Kind {
	case Circle:
		r := s.EffectiveRadius()
		pts := []v2.Vec{{X: 0, Y: h}, {X: 0, Y: 0}, {X: w, Y: 0}}
		da := math.Pi / 2 / arcSteps
		for a := 0; a <= arcSteps; a++ {
			sn, cs := math.Sincos(float64(a) * da)
			pts = append(pts, v2.Vec{X: w + r*(cs-1), Y: h + r*(sn-1)})
		}
		return pts
	case Complex:
		pts := make([]v2.Vec, len(complexShape))
		for i, p := range complexShape {
			pts[i] = v2.Vec{X: p.X * w, Y: p.Y * h}
		}
		return pts
	default:
		return []v2.Vec{{X: 0, Y: h}, {X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}}
	}
}

// Contour returns the profile as a polygon contour.
func (s Spec) Contour() polyclip.Contour {
	pts := s.Points()
	c := make(polyclip.Contour, len(pts))
	for i, p := range pts {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return c
}

// Bounds returns the lower-left and upper-right corners of the profile.
func (s Spec) Bounds() (lo, hi v2.Vec) {
	c := s.Contour()
	if len(c) == 0 {
		return v2.Vec{}, v2.Vec{}
	}
	bb := c.BoundingBox()
	return v2.Vec{X: bb.Min.X, Y: bb.Min.Y}, v2.Vec{X: bb.Max.X, Y: bb.Max.Y}
}

// Size returns the profile extent along x and y.
func (s Spec) Size() (width, height float64) {
	lo, hi := s.Bounds()
	return hi.X - lo.X, hi.Y - lo.Y
}

// complexShape is a circle sitting on a square, in units of (width, height).
var complexShape = []v2.Vec{
	{X: -0.28, Y: 1.83}, {X: -0.355, Y: 1.77}, {X: -0.415, Y: 1.695}, {X: -0.46, Y: 1.605},
	{X: -0.49, Y: 1.51}, {X: -0.5, Y: 1.415}, {X: -0.49, Y: 1.315}, {X: -0.46, Y: 1.225},
	{X: -0.415, Y: 1.135}, {X: -0.355, Y: 1.06}, {X: -0.28, Y: 1.0}, {X: -0.255, Y: 0.925},
	{X: -0.33, Y: 0.855}, {X: -0.5, Y: 0.855}, {X: -0.5, Y: 0.0}, {X: 0.5, Y: 0.0},
	{X: 0.5, Y: 0.855}, {X: 0.33, Y: 0.855}, {X: 0.255, Y: 0.925}, {X: 0.28, Y: 1.0},
	{X: 0.355, Y: 1.06}, {X: 0.415, Y: 1.135}, {X: 0.46, Y: 1.225}, {X: 0.49, Y: 1.315},
	{X: 0.5, Y: 1.415}, {X: 0.49, Y: 1.51}, {X: 0.46, Y: 1.605}, {X: 0.415, Y: 1.695},
	{X: 0.355, Y: 1.77}, {X: 0.28, Y: 1.83}, {X: 0.19, Y: 1.875}, {X: 0.1, Y: 1.905},
	{X: 0.0, Y: 1.915}, {X: -0.095, Y: 1.905}, {X: -0.19, Y: 1.875},
}
