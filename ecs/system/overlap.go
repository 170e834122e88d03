package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
)

// overlapEnemies returns the live enemies whose hurtbox intersects the circle.
func overlapEnemies(w *ecs.World, center cp.Vector, radius float64) []ecs.Entity {
	var hits []ecs.Entity
	ecs.ForEach2(w, component.EnemyTagComponent.Kind(), component.KinematicComponent.Kind(), func(e ecs.Entity, _ *component.EnemyTag, k *component.Kinematic) {
		reach := radius
		if hb, ok := ecs.Get(w, e, component.HurtboxComponent.Kind()); ok {
			reach += hb.Radius
		}
		if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && hp.Dead() {
			return
		}
		if k.Position.DistanceSq(center) <= reach*reach {
			hits = append(hits, e)
		}
	})
	return hits
}

// Hit describes damage dealt to one target.
type Hit struct {
	Target  ecs.Entity
	Damage  float64
	Impulse cp.Vector
}

// applyHit damages the target and, when it is knockbackable, adds the impulse
// to its velocity (unit mass).
func applyHit(w *ecs.World, source ecs.Entity, hit Hit) {
	if hit.Damage > 0 {
		if hp, ok := ecs.Get(w, hit.Target, component.HealthComponent.Kind()); ok {
			hp.Damage(hit.Damage)
		}
	}
	if ecs.Has(w, hit.Target, component.KnockbackableComponent.Kind()) {
		if k, ok := ecs.Get(w, hit.Target, component.KinematicComponent.Kind()); ok {
			k.Velocity = k.Velocity.Add(hit.Impulse)
		}
	}
	w.Events().Push(ecs.Event{Type: ecs.EventHit, Entity: source, Data: hit})
}

func setGravityScale(w *ecs.World, e ecs.Entity, scale float64) {
	if g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
		g.Scale = scale
		return
	}
	_ = ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: scale})
}
