// Package geom has the angle helpers used by sprites that move by heading.
package geom

import (
	"math"
	"math/rand"

	"github.com/faiface/pixel"
)

// Rad converts degrees to radians.
func Rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// Deg converts radians to degrees.
func Deg(rad float64) float64 {
	return rad * (180 / math.Pi)
}

// AngleToDelta returns the unit step for a heading given in degrees.
// 0 points right and 90 points down on screen.
func AngleToDelta(deg float64) pixel.Vec {
	return pixel.Unit(Rad(deg))
}

// DeltaToAngle is the inverse of AngleToDelta, in degrees within (-180, 180].
func DeltaToAngle(d pixel.Vec) float64 {
	return Deg(d.Angle())
}

// RandomRange returns a pseudo-random number in [min, max).
func RandomRange(min, max float64) float64 {
	return rand.Float64()*(max-min) + min
}
