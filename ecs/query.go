package ecs

import "github.com/milk9111/winnerpov/ecs/component"

// Kind is satisfied by every component.ComponentKind[T].
type Kind interface {
	ID() component.ComponentID
}

// Query returns the live entities that carry every kind, in the storage order
// of the smallest set.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID())
		if s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	out := make([]Entity, 0, smallest.Len())
	for _, id := range smallest.ids() {
		matched := true
		for _, s := range sets {
			if !s.Has(id) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if e, ok := w.entities.entity(id); ok {
			out = append(out, e)
		}
	}
	return out
}
