package particle

import "math"

const rad2deg = 180 / math.Pi

// mod is the floored modulus, always in [0, m) for m > 0.
func mod(n, m float64) float64 {
	return math.Mod(math.Mod(n, m)+m, m)
}

func modInt(n, m int) int {
	return ((n % m) + m) % m
}

// FoldAngle maps a rotated direction in [0, 360) onto a tent peaking at 360
// for 180 and falling to 0 at 0 and 360.
func FoldAngle(rotated float64) float64 {
	return 360 - 2*math.Abs(rotated-180)
}

// DirectionAngle is the heading of (dx, dy) in degrees, shifted into [0, 360].
func DirectionAngle(dx, dy float64) float64 {
	return math.Atan2(dy, dx)*rad2deg + 180
}

// SegmentHue derives an integral hue in [0, 360) for a segment heading
// angleDeg under the given global hue parameters.
func SegmentHue(angleDeg, hueRotation, hueRange, huePosition float64) int {
	rotated := mod(math.Floor(angleDeg+hueRotation), 360)
	half := FoldAngle(rotated)
	hue := mod(math.Floor(half/360*hueRange+huePosition-hueRange/2), 360)
	return int(math.Floor(hue))
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
