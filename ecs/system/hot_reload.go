package system

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/ratswarm/ecs"
	"github.com/milk9111/ratswarm/ecs/component"
	"github.com/milk9111/ratswarm/prefabs"
	"github.com/milk9111/ratswarm/swarm"
)

// ChangeSource reports prefab files that changed since the last call
// without blocking. *prefabs.Watcher satisfies it.
type ChangeSource interface {
	Poll() []string
}

type rampLoader func(name string) (swarm.RampConfig, *swarm.Binding, error)

// HotReloadSystem applies prefab edits at the frame boundary. Changed ramp
// files are validated and re-bound before being swapped into every rat
// using them; a ramp that fails validation leaves the old binding in place.
// Script changes are handed to OnScript. Edits to startup prefabs are
// logged once per file since they need a restart.
type HotReloadSystem struct {
	Changes  ChangeSource
	OnScript func(name string)

	load  rampLoader
	stale map[string]bool
}

func NewHotReloadSystem(changes ChangeSource) *HotReloadSystem {
	return &HotReloadSystem{Changes: changes, load: prefabs.LoadRamp}
}

func (s *HotReloadSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.Changes == nil {
		return
	}

	for _, path := range s.Changes.Poll() {
		if name, ok := prefabs.RampName(path); ok {
			s.reloadRamp(w, name)
			continue
		}
		if name, ok := prefabs.StartupSpecName(path); ok {
			s.markStale(name)
			continue
		}
		if strings.HasSuffix(path, ".tengo") && s.OnScript != nil {
			s.OnScript(filepath.Base(path))
		}
	}
}

func (s *HotReloadSystem) markStale(name string) {
	if s.stale[name] {
		return
	}
	if s.stale == nil {
		s.stale = make(map[string]bool)
	}
	s.stale[name] = true
	log.Printf("hot reload: %s changed; restart to apply", name)
}

func (s *HotReloadSystem) reloadRamp(w *ecs.World, name string) {
	_, binding, err := s.load(name)
	if err != nil {
		log.Printf("hot reload: ramp %s rejected: %v", name, err)
		return
	}

	n := 0
	ecs.ForEach(w, component.DistanceRampComponent.Kind(), func(_ ecs.Entity, ramp *component.DistanceRamp) {
		if ramp.Name != name {
			return
		}
		ramp.Config = binding.Config
		ramp.Binding = binding
		n++
	})
	log.Printf("hot reload: ramp %s rebound on %d rats", name, n)
	w.Events().Push(ecs.Event{Type: ecs.EventRampReloaded, Data: name})
}
