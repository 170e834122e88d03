package ecs

import (
	"testing"

	"github.com/milk9111/winnerpov/ecs/component"
)

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
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
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for a live entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("destroying twice should report false")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[float64]()

	old := CreateEntity(w)
	if err := Add(w, old, kind, float64Ptr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("reused slot must carry a new generation")
	}
	if _, ok := Get(w, fresh, kind); ok {
		t.Fatalf("components of a destroyed entity must not leak into the reused slot")
	}
	if err := Add(w, old, kind, float64Ptr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestComponentAccess(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[float64]()
	e := CreateEntity(w)

	tests := []struct {
		name  string
		run   func() error
		check func(t *testing.T)
	}{
		{
			name: "add",
			run:  func() error { return Add(w, e, h.Kind(), float64Ptr(1.5)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e, h.Kind())
				if !ok || *v != 1.5 {
					t.Fatalf("expected 1.5, got %v ok=%v", v, ok)
				}
			},
		},
		{
			name: "mutate_in_place",
			run: func() error {
				v, _ := Get(w, e, h.Kind())
				*v = 3
				return nil
			},
			check: func(t *testing.T) {
				v, _ := Get(w, e, h.Kind())
				if *v != 3 {
					t.Fatalf("expected in-place write to stick, got %v", *v)
				}
			},
		},
		{
			name: "nil_rejected",
			run: func() error {
				if err := Add(w, e, h.Kind(), nil); err != component.ErrNilComponent {
					t.Fatalf("expected ErrNilComponent, got %v", err)
				}
				return nil
			},
			check: func(t *testing.T) {},
		},
		{
			name: "remove",
			run: func() error {
				if !Remove(w, e, h.Kind()) {
					t.Fatalf("remove should report true")
				}
				return nil
			},
			check: func(t *testing.T) {
				if Has(w, e, h.Kind()) {
					t.Fatalf("component should be gone")
				}
				if Remove(w, e, h.Kind()) {
					t.Fatalf("second remove should report false")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestQueryAndForEach(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[float64]()
	kb := component.NewComponentKind[float64]()
	kc := component.NewComponentKind[float64]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	_ = Add(w, e1, ka, float64Ptr(1))
	_ = Add(w, e2, ka, float64Ptr(2))
	_ = Add(w, e2, kb, float64Ptr(3))
	_ = Add(w, e2, kc, float64Ptr(4))
	_ = Add(w, e3, kb, float64Ptr(5))

	t.Run("single_kind", func(t *testing.T) {
		var ents []Entity
		ForEach(w, ka, func(e Entity, _ *float64) { ents = append(ents, e) })
		set := toSet(ents)
		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1")
		}
		if _, ok := set[e2]; !ok {
			t.Fatalf("expected e2")
		}
		if _, ok := set[e3]; ok {
			t.Fatalf("did not expect e3")
		}
	})

	t.Run("intersection", func(t *testing.T) {
		var res []Entity
		ForEach3(w, ka, kb, kc, func(e Entity, _, _, _ *float64) { res = append(res, e) })
		if len(res) != 1 || res[0] != e2 {
			t.Fatalf("expected only e2, got %v", res)
		}
		if q := w.Query(ka, kb); len(q) != 1 || q[0] != e2 {
			t.Fatalf("expected Query to return e2, got %v", q)
		}
	})

	t.Run("missing_store", func(t *testing.T) {
		kd := component.NewComponentKind[float64]()
		if q := w.Query(ka, kd); len(q) != 0 {
			t.Fatalf("expected empty result, got %v", q)
		}
		if _, ok := First(w, kd); ok {
			t.Fatalf("First on an empty store should report false")
		}
	})

	t.Run("destroy_during_iteration", func(t *testing.T) {
		count := 0
		ForEach(w, kb, func(e Entity, _ *float64) {
			count++
			DestroyEntity(w, e)
		})
		if count != 2 {
			t.Fatalf("expected to visit 2 entities, got %d", count)
		}
		if q := w.Query(kb); len(q) != 0 {
			t.Fatalf("expected kb store empty, got %v", q)
		}
	})
}

type recordingSystem struct {
	name  string
	log   *[]string
	times *[]float64
}

func (s recordingSystem) Update(w *World, dt float64) {
	*s.log = append(*s.log, s.name)
	*s.times = append(*s.times, w.Time())
}

func TestUpdateOrderAndClock(t *testing.T) {
	w := NewWorld()
	var order []string
	var times []float64
	w.AddSystem(recordingSystem{name: "first", log: &order, times: &times})
	w.AddSystem(recordingSystem{name: "second", log: &order, times: &times})

	w.Update(0.5)
	w.Update(0.25)

	want := []string{"first", "second", "first", "second"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
	// systems see the time at the start of their tick
	if times[0] != 0 || times[2] != 0.5 {
		t.Fatalf("unexpected clock readings %v", times)
	}
	if w.Time() != 0.75 {
		t.Fatalf("expected clock 0.75, got %v", w.Time())
	}
}

func TestEventQueue(t *testing.T) {
	var q EventQueue
	q.Emit(EventJump, 1)
	q.Push(Event{Type: EventLand, Entity: 1, Data: 2.5})
	if q.Len() != 2 {
		t.Fatalf("expected 2 queued events, got %d", q.Len())
	}

	got := q.Drain()
	if len(got) != 2 || got[0].Type != EventJump || got[1].Type != EventLand {
		t.Fatalf("unexpected drain order %v", got)
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}
