package swarm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

const eps = 1e-9

func TestFlockNoNeighbors(t *testing.T) {
	tests := []struct {
		name     string
		velocity r2.Vec
	}{
		{"moving_right", r2.Vec{X: 1, Y: 0}},
		{"diagonal", r2.Vec{X: 3, Y: -4}},
		{"stationary", r2.Vec{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			self := Agent{Velocity: tc.velocity, Params: DefaultParams()}
			f := Flock(self, nil)

			assert.Equal(t, r2.Vec{}, f.Cohesion)
			assert.Equal(t, r2.Vec{}, f.Separation)
			assert.Equal(t, 0, f.Count)
			assert.Equal(t, normalize(tc.velocity), f.Alignment)

			v := Steer(self, f, 1.0/60)
			if tc.velocity == (r2.Vec{}) {
				assert.Equal(t, r2.Vec{}, v)
				return
			}
			want := normalize(tc.velocity)
			got := normalize(v)
			assert.InDelta(t, want.X, got.X, eps)
			assert.InDelta(t, want.Y, got.Y, eps)
		})
	}
}

func TestSteerRenormalizesToSpeed(t *testing.T) {
	neighbors := []Neighbor{
		{Position: r2.Vec{X: 0.3, Y: 0.1}, Velocity: r2.Vec{X: 0, Y: 2}},
		{Position: r2.Vec{X: -0.2, Y: 0.4}, Velocity: r2.Vec{X: -1, Y: 1}},
		{Position: r2.Vec{X: 5, Y: 5}, Velocity: r2.Vec{X: 1, Y: 0}},
	}
	for _, speed := range []float64{0.5, 5, 12} {
		p := DefaultParams()
		p.Speed = speed
		self := Agent{Velocity: r2.Vec{X: 1, Y: 0.5}, Params: p}

		v := Steer(self, Flock(self, neighbors), 0.25)
		assert.InDelta(t, speed, r2.Norm(v), 1e-9, "speed %g", speed)
	}
}

func TestStepSeekAndGravityAfterRenormalize(t *testing.T) {
	p := DefaultParams()
	p.Speed = 5
	p.FollowStrength = 2
	p.GravityStrength = 9.8
	self := Agent{Position: r2.Vec{}, Velocity: r2.Vec{X: 1, Y: 0}, Params: p}

	v := Step(self, r2.Vec{X: 10, Y: 0}, nil, 1)

	assert.InDelta(t, 7.0, v.X, eps)
	assert.InDelta(t, -9.8, v.Y, eps)
}

func TestSeparationPairIsSymmetric(t *testing.T) {
	p := Params{
		Speed:              1,
		SeparationStrength: 1,
		SeparationDistance: 1,
	}
	a := Agent{Position: r2.Vec{X: 0, Y: 0}, Velocity: r2.Vec{X: 1}, Params: p}
	b := Agent{Position: r2.Vec{X: 0.5, Y: 0}, Velocity: r2.Vec{X: 1}, Params: p}

	fa := Flock(a, []Neighbor{{Position: b.Position, Velocity: b.Velocity}})
	fb := Flock(b, []Neighbor{{Position: a.Position, Velocity: a.Velocity}})

	assert.Equal(t, 1, fa.Count)
	assert.Less(t, fa.Separation.X, 0.0, "a is pushed away from b")
	assert.Greater(t, fb.Separation.X, 0.0, "b is pushed away from a")
	assert.InDelta(t, r2.Norm(fa.Separation), r2.Norm(fb.Separation), eps)
	assert.Greater(t, r2.Norm(fa.Separation), 0.0)
}

func TestFlockNeighborFilter(t *testing.T) {
	p := DefaultParams()
	p.SeparationDistance = 1
	self := Agent{Velocity: r2.Vec{X: 1}, Params: p}

	neighbors := []Neighbor{
		{Position: r2.Vec{X: 1, Y: 0}},   // exactly on the radius, excluded
		{Position: r2.Vec{X: 0, Y: 2}},   // outside
		{Position: r2.Vec{X: 0, Y: 0.5}}, // inside
	}

	f := Flock(self, neighbors)
	assert.Equal(t, 1, f.Count)
	assert.InDelta(t, 0, f.Cohesion.X, eps)
	assert.InDelta(t, 1, f.Cohesion.Y, eps)
	assert.InDelta(t, -1, f.Separation.Y, eps)
}

func TestFlockCoincidentNeighbor(t *testing.T) {
	self := Agent{Position: r2.Vec{X: 2, Y: 2}, Velocity: r2.Vec{X: 0, Y: 1}, Params: DefaultParams()}
	f := Flock(self, []Neighbor{{Position: self.Position, Velocity: r2.Vec{X: 0, Y: 3}}})

	assert.Equal(t, 1, f.Count)
	assert.Equal(t, r2.Vec{}, f.Separation)
	assert.Equal(t, r2.Vec{}, f.Cohesion)
	assert.False(t, math.IsNaN(f.Alignment.X) || math.IsNaN(f.Alignment.Y))
	assert.InDelta(t, 1, f.Alignment.Y, eps)
}

func TestAlignmentAveragesHeadings(t *testing.T) {
	p := DefaultParams()
	p.SeparationDistance = 10
	self := Agent{Velocity: r2.Vec{X: 2, Y: 0}, Params: p}
	f := Flock(self, []Neighbor{{Position: r2.Vec{X: 1}, Velocity: r2.Vec{X: 0, Y: 7}}})

	assert.InDelta(t, math.Sqrt2/2, f.Alignment.X, eps)
	assert.InDelta(t, math.Sqrt2/2, f.Alignment.Y, eps)
}
