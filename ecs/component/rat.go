package component

import (
	"image/color"

	"github.com/milk9111/ratswarm/swarm"
	"gonum.org/v1/gonum/spatial/r2"
)

// Rat is one swarm agent's steering state. Velocity is the rat's own
// intended velocity; the physics body's velocity is what neighbors observe.
type Rat struct {
	Velocity r2.Vec
	Params   swarm.Params
	Color    color.Color
}

var RatComponent = NewComponent[Rat]()

// DistanceRamp binds a ramp config to the rat it lives on. Binding is nil
// when the config failed validation; the swarm system then falls back to a
// by-name apply and records the lookup failure.
type DistanceRamp struct {
	Name    string
	Config  swarm.RampConfig
	Binding *swarm.Binding

	// Last tick's readings, kept for debug drawing.
	Distance float64
	Rate     float64
}

var DistanceRampComponent = NewComponent[DistanceRamp]()
