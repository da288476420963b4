package swarm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRamp() RampConfig {
	c := NewRampConfig("speed")
	c.CloseDistance = 1
	c.FarDistance = 5
	c.MaxChangeRate = 2
	c.MinChangeRate = 0
	return c
}

func TestRampRate(t *testing.T) {
	c := sampleRamp()
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"inside_close", 0.2, 2},
		{"at_close", 1, 2},
		{"midpoint", 3, 1},
		{"quarter", 2, 1.5},
		{"at_far", 5, 0},
		{"beyond_far", 40, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, c.Rate(tc.distance), 1e-12)
		})
	}
}

func TestRampRateMonotonic(t *testing.T) {
	c := sampleRamp()
	prev := c.Rate(c.CloseDistance)
	for d := c.CloseDistance; d <= c.FarDistance; d += 0.05 {
		r := c.Rate(d)
		assert.LessOrEqual(t, r, prev, "distance %g", d)
		prev = r
	}
}

func TestRampRateDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		close float64
		far   float64
	}{
		{"equal", 3, 3},
		{"inverted", 4, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := sampleRamp()
			c.CloseDistance = tc.close
			c.FarDistance = tc.far

			assert.Equal(t, c.MaxChangeRate, c.Rate(tc.close))
			assert.Equal(t, c.MinChangeRate, c.Rate(tc.close+0.5))
			assert.ErrorIs(t, c.Validate(), ErrInvalidRamp)
		})
	}
}

func TestBindingApplyClamps(t *testing.T) {
	b, err := sampleRamp().Bind()
	require.NoError(t, err)

	p := DefaultParams()
	p.Speed = 9
	got := b.Apply(&p, b.Config.Rate(1), 1)
	assert.Equal(t, 10.0, got)
	assert.Equal(t, 10.0, p.Speed)

	p.Speed = 9
	got = b.Apply(&p, b.Config.Rate(3), 1)
	assert.InDelta(t, 10.0, got, 1e-12)

	p.Speed = 0.5
	got = b.Apply(&p, -100, 1)
	assert.Equal(t, 0.0, got)

	// Only the bound slot moves.
	want := DefaultParams()
	want.Speed = p.Speed
	assert.Equal(t, want, p)
}

func TestBindingApplyStaysInBounds(t *testing.T) {
	c := sampleRamp()
	c.MinValue = -2
	c.MaxValue = 3
	b, err := c.Bind()
	require.NoError(t, err)

	for _, start := range []float64{-50, -2, 0, 3, 50} {
		for _, rate := range []float64{-1e6, -1, 0, 1, 1e6} {
			p := DefaultParams()
			p.Speed = start
			got := b.Apply(&p, rate, 0.016)
			assert.GreaterOrEqual(t, got, c.MinValue)
			assert.LessOrEqual(t, got, c.MaxValue)
		}
	}
}

func TestApplyUnknownParameter(t *testing.T) {
	c := sampleRamp()
	c.Parameter = "whiskerLength"

	a := Agent{Params: DefaultParams()}
	_, err := Apply(&a, c, 1, 1)
	assert.ErrorIs(t, err, ErrUnknownParam)
	assert.Equal(t, DefaultParams(), a.Params)

	_, err = c.Bind()
	assert.ErrorIs(t, err, ErrUnknownParam)
}

func TestApplyByName(t *testing.T) {
	c := sampleRamp()
	c.Parameter = "gravity"

	a := Agent{Params: DefaultParams()}
	got, err := Apply(&a, c, 0.1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got, 1e-12)
	assert.InDelta(t, 10.0, a.Params.GravityStrength, 1e-12)
}
