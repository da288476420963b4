package prefabs

import (
	"testing"

	"github.com/milk9111/ratswarm/swarm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadRatSpec(t *testing.T) {
	spec, err := LoadRatSpec()
	require.NoError(t, err)

	assert.Equal(t, "rat", spec.Name)
	assert.Equal(t, 1.0, spec.Rat.HeadingX)
	assert.Equal(t, swarm.DefaultParams(), spec.Rat.Params)
	require.NotNil(t, spec.Rat.Color)
	assert.Greater(t, spec.Body.Radius, 0.0)
	require.NotNil(t, spec.Ramp)
	assert.Equal(t, "speed_near_pointer", spec.Ramp.Ramp)
}

func TestLoadSwarmSpec(t *testing.T) {
	spec, err := LoadSwarmSpec()
	require.NoError(t, err)

	assert.Greater(t, spec.Population, 0)
	assert.Less(t, spec.Bounds.MinX, spec.Bounds.MaxX)
	assert.Less(t, spec.Spawn.MinY, spec.Spawn.MaxY)
	assert.Equal(t, "cursor", spec.Target.Source)
	assert.GreaterOrEqual(t, spec.Workers, 1)
}

func TestLoadEmbeddedRamps(t *testing.T) {
	for _, name := range []string{"speed_near_pointer", "spread_near_pointer"} {
		t.Run(name, func(t *testing.T) {
			cfg, b, err := LoadRamp(name)
			require.NoError(t, err)
			require.NotNil(t, b)
			assert.Equal(t, cfg, b.Config)
			assert.Less(t, cfg.CloseDistance, cfg.FarDistance)
		})
	}

	_, _, err := LoadRamp("missing")
	assert.Error(t, err)
}

func TestRampSpecDefaults(t *testing.T) {
	var spec RampSpec
	require.NoError(t, yaml.Unmarshal([]byte(`
parameter: gravity
close_distance: 1
far_distance: 5
max_change_rate: 2
min_change_rate: 0
`), &spec))

	cfg := spec.Config()
	assert.Equal(t, 0.0, cfg.MinValue)
	assert.Equal(t, 10.0, cfg.MaxValue)
	assert.Equal(t, "gravity", cfg.Parameter)

	zero := 0.0
	spec.MaxValue = &zero
	assert.Equal(t, 0.0, spec.Config().MaxValue)
}

func TestRampPathAndName(t *testing.T) {
	assert.Equal(t, "ramps/speed.yaml", RampPath("speed"))
	assert.Equal(t, "ramps/speed.yaml", RampPath("speed.yaml"))

	name, ok := RampName("prefabs/ramps/speed.yaml")
	assert.True(t, ok)
	assert.Equal(t, "speed", name)

	_, ok = RampName("prefabs/rat.yaml")
	assert.False(t, ok)
	_, ok = RampName("prefabs/ramps/notes.txt")
	assert.False(t, ok)

	name, ok = StartupSpecName("prefabs/rat.yaml")
	assert.True(t, ok)
	assert.Equal(t, "rat.yaml", name)
	_, ok = StartupSpecName("prefabs/ramps/speed.yaml")
	assert.False(t, ok)
	_, ok = StartupSpecName("prefabs/scripts/orbit.tengo")
	assert.False(t, ok)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"figure_eight.tengo", "scripts/orbit.tengo", "prefabs/scripts/orbit.tengo"} {
		src, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(src), "math")
	}
}

func TestYAMLColor(t *testing.T) {
	var c struct {
		Color YAMLColor `yaml:"color"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(`color: "#ff800040"`), &c))
	r, g, b, a := c.Color.RGBA()
	assert.NotZero(t, r)
	assert.NotZero(t, g)
	assert.Zero(t, b)
	assert.NotZero(t, a)

	assert.Error(t, yaml.Unmarshal([]byte(`color: "#abc"`), &c))
}
