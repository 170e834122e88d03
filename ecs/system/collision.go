package system

import (
	"math"

	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
)

// CollisionConfig holds the contact classification thresholds. Grace is how
// long a contact category may be missing before its state is dropped.
type CollisionConfig struct {
	GroundThreshold float64
	WallThreshold   float64
	Grace           float64
}

func DefaultCollisionConfig() CollisionConfig {
	return CollisionConfig{GroundThreshold: 0.5, WallThreshold: 0.8, Grace: 0.1}
}

// Classification is the semantic reading of one tick's contacts.
type Classification struct {
	Grounded bool
	Wall     component.WallSide
}

// Classify maps contact normals to ground and wall flags. Any ground contact
// wins and reports no wall. A wall pushing toward +X is on the left.
func Classify(contacts []component.Contact, cfg CollisionConfig) Classification {
	var out Classification
	for _, c := range contacts {
		n := c.Normal
		if n.Y > cfg.GroundThreshold {
			return Classification{Grounded: true}
		}
		if out.Wall != component.WallNone || math.Abs(n.X) <= cfg.WallThreshold {
			continue
		}
		if n.X > 0 {
			out.Wall = component.WallLeft
		} else {
			out.Wall = component.WallRight
		}
	}
	return out
}

// CollisionSystem turns the contacts delivered for a tick into the grounded
// and wall flags of Kinematic, debouncing losses by the configured grace.
type CollisionSystem struct {
	cfg CollisionConfig
}

func NewCollisionSystem(cfg CollisionConfig) *CollisionSystem {
	return &CollisionSystem{cfg: cfg}
}

func (s *CollisionSystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach3(w,
		component.KinematicComponent.Kind(),
		component.ContactsComponent.Kind(),
		component.ContactStateComponent.Kind(),
		func(_ ecs.Entity, k *component.Kinematic, contacts *component.Contacts, st *component.ContactState) {
			s.apply(k, st, Classify(contacts.Items, s.cfg), dt)
			contacts.Items = contacts.Items[:0]
		})
}

func (s *CollisionSystem) apply(k *component.Kinematic, st *component.ContactState, c Classification, dt float64) {
	st.Landed = false
	st.WallAcquired = false
	st.WallLost = false

	if c.Grounded {
		if !k.Grounded {
			st.Landed = true
		}
		if k.Wall != component.WallNone {
			st.WallLost = true
		}
		k.SetGrounded(true)
		st.GroundLostFor = 0
		st.WallLostFor = 0
		return
	}

	if k.Grounded {
		st.GroundLostFor += dt
		if st.GroundLostFor < s.cfg.Grace-component.TimerEpsilon {
			// still grounded inside the grace; walls stay ignored
			return
		}
		k.Grounded = false
		st.GroundLostFor = 0
	}

	if c.Wall != component.WallNone {
		st.WallLostFor = 0
		if k.Wall != c.Wall {
			k.Wall = c.Wall
			st.WallAcquired = true
		}
		return
	}

	if k.Wall == component.WallNone {
		return
	}
	st.WallLostFor += dt
	if st.WallLostFor >= s.cfg.Grace-component.TimerEpsilon {
		k.Wall = component.WallNone
		k.WallSliding = false
		st.WallLostFor = 0
		st.WallLost = true
	}
}

// SetConfig replaces the thresholds used from the next update on.
func (s *CollisionSystem) SetConfig(cfg CollisionConfig) {
	s.cfg = cfg
}
