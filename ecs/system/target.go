package system

import (
	"github.com/milk9111/ratswarm/common"
	"github.com/milk9111/ratswarm/ecs"
	"github.com/milk9111/ratswarm/ecs/component"
	"github.com/milk9111/ratswarm/target"
)

// TargetSystem samples the target source once per tick and writes the
// result into the target entity. The target keeps its last position while
// the source reports nothing.
type TargetSystem struct {
	Source  target.Source
	Dt      float64
	elapsed float64
}

func NewTargetSystem(src target.Source) *TargetSystem {
	return &TargetSystem{Source: src, Dt: 1.0 / common.TickRate}
}

// Elapsed returns the simulated seconds seen by the source.
func (s *TargetSystem) Elapsed() float64 {
	return s.elapsed
}

func (s *TargetSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.Source == nil {
		return
	}

	e, ok := w.First(component.TargetTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TargetComponent.Kind())
	if !ok {
		return
	}

	s.elapsed += s.Dt
	p, ok := s.Source.Position(s.elapsed)
	t.Source = s.Source.Name()
	if !ok {
		return
	}
	t.X, t.Y, t.Active = p.X, p.Y, true

	if tf, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		tf.X, tf.Y = p.X, p.Y
	}
}
