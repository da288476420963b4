package system

import (
	"log"
	"sync"

	"github.com/milk9111/ratswarm/ecs"
	"github.com/milk9111/ratswarm/ecs/component"
	"github.com/milk9111/ratswarm/swarm"
)

type tuneRequest struct {
	param swarm.Param
	value float64
}

// TuningSystem is the bulk parameter interface used by the slider panel.
// SetAll only queues; the queue is applied on the next Update, which runs
// before the swarm system so a tick never sees a half-applied change.
type TuningSystem struct {
	mu      sync.Mutex
	pending []tuneRequest
}

var _ swarm.BulkSetter = (*TuningSystem)(nil)

func NewTuningSystem() *TuningSystem {
	return &TuningSystem{}
}

// SetAll queues an overwrite of the named parameter on every rat.
func (s *TuningSystem) SetAll(name string, value float64) error {
	p, err := swarm.ParseParam(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.pending = append(s.pending, tuneRequest{param: p, value: value})
	s.mu.Unlock()
	return nil
}

// Pending reports how many requests are waiting for the next Update.
func (s *TuningSystem) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *TuningSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, req := range pending {
		n := 0
		ecs.ForEach(w, component.RatComponent.Kind(), func(_ ecs.Entity, rat *component.Rat) {
			*rat.Params.Slot(req.param) = req.value
			n++
		})
		log.Printf("tuning: %s = %.3f on %d rats", req.param, req.value, n)
		w.Events().Push(ecs.Event{
			Type: ecs.EventParamsTuned,
			Data: ecs.TunedParam{Name: req.param.String(), Value: req.value, Agents: n},
		})
	}
}
