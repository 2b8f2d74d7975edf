package geometry

import "math"

// Epsilon is the absolute tolerance for every floating point comparison
// in the module. Vertex identity is decided with it.
const Epsilon = 1e-6

// Precision is the number of decimal places kept by HashFloat when
// angles are used as identity (prototile deduplication).
const Precision = 2

// Tau is one full turn in radians.
const Tau = 2 * math.Pi

// ApproxEqual reports whether a and b differ by at most Epsilon.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// Rad normalizes angle into [0, 2π). Results within Epsilon of a full
// turn collapse to 0.
func Rad(angle float64) float64 {
	r := math.Mod(Tau+math.Mod(angle, Tau), Tau)
	if ApproxEqual(r, Tau) {
		return 0
	}
	return r
}

// ToRad converts degrees to radians.
func ToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// ToDeg converts radians to degrees.
func ToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// HashFloat rounds f to precision decimal places and returns the scaled
// integer, suitable as a map key or hash input.
func HashFloat(f float64, precision int) int64 {
	return int64(math.Round(f * math.Pow10(precision)))
}
