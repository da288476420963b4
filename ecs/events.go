package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventRampReloaded carries the reloaded ramp name as Data.
	EventRampReloaded = "ramp_reloaded"
	// EventAgentFailed carries the failing Entity as Data.
	EventAgentFailed = "agent_failed"
	// EventParamsTuned carries a TunedParam as Data.
	EventParamsTuned = "params_tuned"
)

// TunedParam records a bulk parameter overwrite.
type TunedParam struct {
	Name   string
	Value  float64
	Agents int
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
