// Package diagnostics records per-agent failures and per-tick swarm stats so
// a bad agent can be isolated without stopping the tick loop.
package diagnostics

import (
	"log"
	"sync"
	"time"
)

// Stage names where an agent's tick can fail.
const (
	StageStep = "step"
	StageRamp = "ramp"
)

// Record describes one agent's failure during one tick.
type Record struct {
	Tick   int64     `db:"tick"`
	Entity uint64    `db:"entity"`
	Stage  string    `db:"stage"`
	Err    string    `db:"err"`
	At     time.Time `db:"at"`
}

// TickStats summarizes one completed tick.
type TickStats struct {
	Tick      int64   `db:"tick"`
	Agents    int     `db:"agents"`
	Failures  int     `db:"failures"`
	MeanSpeed float64 `db:"mean_speed"`
	MeanRamp  float64 `db:"mean_ramp"`
}

type Recorder interface {
	RecordFailure(r Record) error
	RecordTick(s TickStats) error
}

// Memory keeps records in process. It is safe for concurrent use.
type Memory struct {
	mu       sync.Mutex
	failures []Record
	ticks    []TickStats
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) RecordFailure(r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, r)
	return nil
}

func (m *Memory) RecordTick(s TickStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticks = append(m.ticks, s)
	return nil
}

func (m *Memory) Failures() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.failures...)
}

func (m *Memory) Ticks() []TickStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TickStats(nil), m.ticks...)
}

// Latest keeps only the most recent tick stats and drops failures.
type Latest struct {
	mu   sync.Mutex
	last TickStats
	seen bool
}

func (l *Latest) RecordFailure(Record) error { return nil }

func (l *Latest) RecordTick(s TickStats) error {
	l.mu.Lock()
	l.last, l.seen = s, true
	l.mu.Unlock()
	return nil
}

// Last returns the stats of the newest recorded tick.
func (l *Latest) Last() (TickStats, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last, l.seen
}

// Log writes failures through the standard logger and ignores tick stats.
type Log struct{}

func (Log) RecordFailure(r Record) error {
	log.Printf("swarm: tick=%d entity=%d stage=%s: %s", r.Tick, r.Entity, r.Stage, r.Err)
	return nil
}

func (Log) RecordTick(TickStats) error { return nil }

// Multi fans records out to several recorders and returns the first error.
type Multi []Recorder

func (m Multi) RecordFailure(r Record) error {
	var first error
	for _, rec := range m {
		if err := rec.RecordFailure(r); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) RecordTick(s TickStats) error {
	var first error
	for _, rec := range m {
		if err := rec.RecordTick(s); err != nil && first == nil {
			first = err
		}
	}
	return first
}
