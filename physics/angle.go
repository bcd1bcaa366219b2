package physics

import "math"

// Angle is a heading stored in radians, with a fixed-point wire
// quantisation of 1/256th of a radian.
type Angle struct {
	radians float32
}

// AngleFromRadians constructs an Angle from a radian value.
func AngleFromRadians(radians float32) Angle {
	return Angle{radians: radians}
}

// ToRadians returns the angle in radians.
func (a Angle) ToRadians() float32 {
	return a.radians
}

// ToDegrees returns the angle in degrees.
func (a Angle) ToDegrees() float32 {
	return a.radians / 2.0 / math.Pi * 360.0
}

// ToDirection returns the unit vector pointing in the angle's direction.
func (a Angle) ToDirection() Vec2 {
	s, c := math.Sincos(float64(a.ToRadians()))

	return Vec2{X: float32(c), Y: float32(s)}
}

// ToNet quantises the angle to the wire representation: radians scaled by
// 256 and truncated towards zero.
func (a Angle) ToNet() int32 {
	return int32(a.ToRadians() * 256.0)
}

// AngleFromNet reconstructs an Angle from its wire representation.
func AngleFromNet(net int32) Angle {
	return AngleFromRadians(float32(net) / 256.0)
}
