package physics

import "math"

func pow32(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}

// roundToInt32 rounds f to the nearest integer, matching the reference's
// round-half-away-from-zero semantics used when quantising positions and
// velocities onto the wire.
func roundToInt32(f float32) int32 {
	return int32(math.Round(float64(f)))
}

// truncToInt32 truncates f towards zero.
func truncToInt32(f float32) int32 {
	return int32(f)
}
