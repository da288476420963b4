package ecs

import (
	"testing"

	"github.com/milk9111/ratswarm/ecs/component"
)

type pos struct{ X, Y float64 }
type vel struct{ X, Y float64 }
type tag struct{}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			dead := ents[c.destroyIndex]
			if !DestroyEntity(w, dead) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, dead) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, dead) {
				t.Fatalf("second destroy should report false")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestRecycledIDGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[pos]()

	old := CreateEntity(w)
	if err := Add(w, old, kind, &pos{X: 1}); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected id reuse, got %d and %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("recycled entity must not equal the stale handle")
	}
	if _, ok := Get(w, fresh, kind); ok {
		t.Fatalf("components must not survive destroy")
	}
	if err := Add(w, old, kind, &pos{}); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestComponents(t *testing.T) {
	w := NewWorld()
	posKind := component.NewComponentKind[pos]()
	velKind := component.NewComponentKind[vel]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_pos_to_e1",
			setup: func() error { return Add(w, e1, posKind, &pos{X: 10}) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, posKind)
				if !ok || v.X != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				v.X = 11
				again, _ := Get(w, e1, posKind)
				if again.X != 11 {
					t.Fatalf("expected in-place mutation to stick, got %v", again.X)
				}
			},
			teardown: func() bool { return Remove(w, e1, posKind) },
		},
		{
			name: "add_vel_to_both",
			setup: func() error {
				if err := Add(w, e1, velKind, &vel{X: 1}); err != nil {
					return err
				}
				return Add(w, e2, velKind, &vel{Y: 1})
			},
			check: func(t *testing.T) {
				if !Has(w, e1, velKind) || !Has(w, e2, velKind) {
					t.Fatalf("expected both entities to have vel")
				}
				if Has(w, e1, posKind) {
					t.Fatalf("pos should have been removed by previous teardown")
				}
			},
			teardown: func() bool { return Remove(w, e1, velKind) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}

	if err := Add[pos](w, e1, posKind, nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	if err := Add(w, e1, component.ComponentKind[pos]{}, &pos{}); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[pos]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	_ = Add(w, e1, kind, &pos{X: 1})
	_ = Add(w, e3, kind, &pos{X: 3})

	seen := map[Entity]float64{}
	ForEach(w, kind, func(e Entity, p *pos) { seen[e] = p.X })
	if len(seen) != 2 || seen[e1] != 1 || seen[e3] != 3 {
		t.Fatalf("unexpected visit set %v", seen)
	}
	if _, ok := seen[e2]; ok {
		t.Fatalf("did not expect e2")
	}

	// destroying during iteration is allowed
	count := 0
	ForEach(w, kind, func(e Entity, _ *pos) {
		count++
		DestroyEntity(w, e)
	})
	if count != 2 || len(w.Query(kind)) != 0 {
		t.Fatalf("expected both visited and destroyed, count=%d", count)
	}
}

func TestForEachIntersections(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[pos]()
	kb := component.NewComponentKind[vel]()
	kc := component.NewComponentKind[tag]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	_ = Add(w, e1, ka, &pos{})
	_ = Add(w, e2, ka, &pos{})
	_ = Add(w, e2, kb, &vel{})
	_ = Add(w, e2, kc, &tag{})
	_ = Add(w, e3, kb, &vel{})
	_ = Add(w, e3, kc, &tag{})

	var two []Entity
	ForEach2(w, ka, kb, func(e Entity, _ *pos, _ *vel) { two = append(two, e) })
	if len(two) != 1 || two[0] != e2 {
		t.Fatalf("ForEach2: expected only e2, got %v", two)
	}

	var three []Entity
	ForEach3(w, ka, kb, kc, func(e Entity, _ *pos, _ *vel, _ *tag) { three = append(three, e) })
	if len(three) != 1 || three[0] != e2 {
		t.Fatalf("ForEach3: expected only e2, got %v", three)
	}

	q := w.Query(kb, kc)
	if len(q) != 2 {
		t.Fatalf("Query: expected e2 and e3, got %v", q)
	}

	DestroyEntity(w, e2)
	three = nil
	ForEach3(w, ka, kb, kc, func(e Entity, _ *pos, _ *vel, _ *tag) { three = append(three, e) })
	if len(three) != 0 {
		t.Fatalf("expected empty result after destroy, got %v", three)
	}

	missing := component.NewComponentKind[int]()
	if got := w.Query(ka, missing); len(got) != 0 {
		t.Fatalf("expected empty query for unused kind, got %v", got)
	}
	if _, ok := w.First(missing); ok {
		t.Fatalf("First on unused kind should fail")
	}
	if first, ok := w.First(kb); !ok || first != e3 {
		t.Fatalf("expected First(vel) = e3, got %v ok=%v", first, ok)
	}
}
