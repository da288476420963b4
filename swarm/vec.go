package swarm

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var down = r2.Vec{X: 0, Y: -1}

// normalize is r2.Unit with the zero vector mapped to zero instead of NaN.
func normalize(v r2.Vec) r2.Vec {
	if v.X == 0 && v.Y == 0 {
		return r2.Vec{}
	}
	u := r2.Unit(v)
	if math.IsNaN(u.X) || math.IsNaN(u.Y) {
		return r2.Vec{}
	}
	return u
}

func distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}
