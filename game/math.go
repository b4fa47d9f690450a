package game

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"
)

// Round64 will round a float64 to a given precision.
func Round64(val float64, precision int) float64 {
	pwr := math.Pow(10, float64(precision))
	return math.Round(val*pwr) / pwr
}

// RoundVec64 will round a 64-bit vector to a given precision.
func RoundVec64(v mgl64.Vec3, p int) mgl64.Vec3 {
	return mgl64.Vec3{Round64(v.X(), p), Round64(v.Y(), p), Round64(v.Z(), p)}
}

// HorizontalDistance returns the planar distance between two positions, ignoring the Y-axis.
func HorizontalDistance(from, to mgl64.Vec3) float64 {
	dx, dz := to.X()-from.X(), to.Z()-from.Z()
	return math.Sqrt(dx*dx + dz*dz)
}

// Finite64 returns true if the value is neither NaN nor infinite.
func Finite64(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Finite32 returns true if the value is neither NaN nor infinite.
func Finite32(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// FiniteVec64 returns true if every component of the vector is finite.
func FiniteVec64(v mgl64.Vec3) bool {
	return Finite64(v[0]) && Finite64(v[1]) && Finite64(v[2])
}

// ApproxEq64 determines whether two floating point numbers are within the given threshold of each other.
func ApproxEq64(a, b, threshold float64) bool {
	return math.Abs(a-b) <= threshold
}

// ClampFloor returns v if it is above floor, and floor otherwise.
func ClampFloor(v, floor float64) float64 {
	return math.Max(v, floor)
}
