package system

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/milk9111/ratswarm/common"
	"github.com/milk9111/ratswarm/diagnostics"
	"github.com/milk9111/ratswarm/ecs"
	"github.com/milk9111/ratswarm/ecs/component"
	"github.com/milk9111/ratswarm/swarm"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
)

type stepFunc func(self swarm.Agent, target r2.Vec, neighbors []swarm.Neighbor, dt float64) r2.Vec

// agentSlot is one rat's tick-start state and its compute result. During the
// compute phase each slot is written only by the goroutine that owns it.
type agentSlot struct {
	e     ecs.Entity
	agent swarm.Agent
	ramp  *component.DistanceRamp

	velocity r2.Vec
	params   swarm.Params
	distance float64
	rate     float64
	ramped   bool

	stage string
	err   error
}

// SwarmSystem runs the flocking step and distance ramp for every rat. A tick
// is split into a snapshot phase, a compute phase that may fan out over
// Workers goroutines, and a serial commit phase. Nothing a rat computes is
// visible to another rat until the next tick.
type SwarmSystem struct {
	Dt       float64
	Workers  int
	Recorder diagnostics.Recorder

	grid  *swarm.Grid
	tick  int64
	slots []agentSlot
	snaps []swarm.Neighbor
	step  stepFunc
}

func NewSwarmSystem(cellSize float64, workers int, rec diagnostics.Recorder) *SwarmSystem {
	if rec == nil {
		rec = diagnostics.Log{}
	}
	return &SwarmSystem{
		Dt:       1.0 / common.TickRate,
		Workers:  workers,
		Recorder: rec,
		grid:     swarm.NewGrid(cellSize),
		step:     swarm.Step,
	}
}

// Tick returns the number of completed ticks.
func (s *SwarmSystem) Tick() int64 {
	return s.tick
}

func (s *SwarmSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	s.snapshot(w)
	if len(s.slots) == 0 {
		s.tick++
		return
	}

	tgt, hasTarget := s.target(w)
	s.compute(tgt, hasTarget)
	s.commit(w)
	s.tick++
}

func (s *SwarmSystem) snapshot(w *ecs.World) {
	s.slots = s.slots[:0]
	s.snaps = s.snaps[:0]

	ecs.ForEach2(w, component.RatComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rat *component.Rat, tf *component.Transform) {
		pos := r2.Vec{X: tf.X, Y: tf.Y}

		// Neighbors see the body's actual velocity; the rat steers from its
		// own intended velocity.
		observed := rat.Velocity
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
			v := body.Body.Velocity()
			observed = r2.Vec{X: v.X, Y: v.Y}
		}

		ramp, _ := ecs.Get(w, e, component.DistanceRampComponent.Kind())
		s.slots = append(s.slots, agentSlot{
			e:     e,
			agent: swarm.Agent{Position: pos, Velocity: rat.Velocity, Params: rat.Params},
			ramp:  ramp,
		})
		s.snaps = append(s.snaps, swarm.Neighbor{Position: pos, Velocity: observed})
	})

	// The grid keeps s.snaps until the next Rebuild, so the slice is only
	// reset at the start of the following snapshot.
	s.grid.Rebuild(s.snaps)
}

func (s *SwarmSystem) target(w *ecs.World) (r2.Vec, bool) {
	e, ok := w.First(component.TargetTagComponent.Kind())
	if !ok {
		return r2.Vec{}, false
	}
	t, ok := ecs.Get(w, e, component.TargetComponent.Kind())
	if !ok || !t.Active {
		return r2.Vec{}, false
	}
	return r2.Vec{X: t.X, Y: t.Y}, true
}

func (s *SwarmSystem) compute(tgt r2.Vec, hasTarget bool) {
	workers := s.Workers
	if workers <= 1 || len(s.slots) < 2 {
		for i := range s.slots {
			s.computeOne(i, tgt, hasTarget)
		}
		return
	}
	if workers > len(s.slots) {
		workers = len(s.slots)
	}

	var g errgroup.Group
	for wk := 0; wk < workers; wk++ {
		wk := wk
		g.Go(func() error {
			for i := wk; i < len(s.slots); i += workers {
				s.computeOne(i, tgt, hasTarget)
			}
			return nil
		})
	}
	// computeOne recovers its own panics, so Wait never reports an error.
	_ = g.Wait()
}

func (s *SwarmSystem) computeOne(i int, tgt r2.Vec, hasTarget bool) {
	slot := &s.slots[i]
	slot.stage = diagnostics.StageStep
	defer func() {
		if r := recover(); r != nil {
			slot.err = fmt.Errorf("panic: %v", r)
		}
	}()

	a := slot.agent
	seek := a.Position
	if hasTarget {
		seek = tgt
	}
	neighbors := s.grid.Neighbors(i, a.Position, a.Params.SeparationDistance)
	v := s.step(a, seek, neighbors, s.Dt)
	if math.IsNaN(v.X) || math.IsNaN(v.Y) {
		slot.err = errors.New("velocity is NaN")
		return
	}
	slot.velocity = v
	slot.params = a.Params

	if slot.ramp == nil || !hasTarget {
		return
	}
	slot.stage = diagnostics.StageRamp
	cfg := slot.ramp.Config
	slot.distance = r2.Norm(r2.Sub(tgt, a.Position))
	slot.rate = cfg.Rate(slot.distance)
	if slot.ramp.Binding != nil {
		slot.ramp.Binding.Apply(&slot.params, slot.rate, s.Dt)
		slot.ramped = true
		return
	}
	agent := swarm.Agent{Params: slot.params}
	if _, err := swarm.Apply(&agent, cfg, slot.rate, s.Dt); err != nil {
		slot.err = err
		return
	}
	slot.params = agent.Params
	slot.ramped = true
}

func (s *SwarmSystem) commit(w *ecs.World) {
	stats := diagnostics.TickStats{Tick: s.tick, Agents: len(s.slots)}
	var speedSum, rampSum float64
	committed, ramped := 0, 0

	for i := range s.slots {
		slot := &s.slots[i]
		rat, ok := ecs.Get(w, slot.e, component.RatComponent.Kind())
		if !ok {
			continue
		}

		failedStep := slot.err != nil && slot.stage == diagnostics.StageStep
		if !failedStep {
			rat.Velocity = slot.velocity
			speedSum += r2.Norm(slot.velocity)
			committed++
		}
		if slot.ramped {
			rat.Params = slot.params
			slot.ramp.Distance, slot.ramp.Rate = slot.distance, slot.rate
			if b := slot.ramp.Binding; b != nil {
				rampSum += *rat.Params.Slot(b.Param)
				ramped++
			}
		}

		if slot.err != nil {
			stats.Failures++
			s.fail(w, slot)
		}
	}

	if committed > 0 {
		stats.MeanSpeed = speedSum / float64(committed)
	}
	if ramped > 0 {
		stats.MeanRamp = rampSum / float64(ramped)
	}
	if err := s.Recorder.RecordTick(stats); err != nil {
		log.Printf("swarm: record tick %d: %v", s.tick, err)
	}
}

func (s *SwarmSystem) fail(w *ecs.World, slot *agentSlot) {
	err := s.Recorder.RecordFailure(diagnostics.Record{
		Tick:   s.tick,
		Entity: uint64(slot.e),
		Stage:  slot.stage,
		Err:    slot.err.Error(),
	})
	if err != nil {
		log.Printf("swarm: record failure for %s: %v", slot.e, err)
	}
	w.Events().Push(ecs.Event{Type: ecs.EventAgentFailed, Data: slot.e})
}
