package sbm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// norm3 returns the Euclidean norm of a 3-vector.
func norm3(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// sub3 returns a - b.
func sub3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// add3 returns a + b.
func add3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// scale3 returns v scaled by s.
func scale3(v [3]float64, s float64) [3]float64 {
	return [3]float64{v[0] * s, v[1] * s, v[2] * s}
}

// almostEqual reports whether a and b differ by no more than tol.
func almostEqual(a, b, tol float64) bool {
	return floats.EqualWithinAbs(a, b, tol)
}
