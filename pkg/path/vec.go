package path

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Unit returns v scaled to length 1, or the zero vector for zero input.
func Unit(v v2.Vec) v2.Vec {
	l := v.Length()
	if l == 0 {
		return v2.Vec{}
	}
	return v2.Vec{X: v.X / l, Y: v.Y / l}
}

// LeftNormal returns v rotated a quarter turn counter-clockwise.
func LeftNormal(v v2.Vec) v2.Vec {
	return v2.Vec{X: -v.Y, Y: v.X}
}

// RightNormal returns v rotated a quarter turn clockwise.
func RightNormal(v v2.Vec) v2.Vec {
	return v2.Vec{X: v.Y, Y: -v.X}
}

// Heading returns the angle of v from the +X axis.
func Heading(v v2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}
