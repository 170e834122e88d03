package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
)

// ProjectileImpact is the payload of EventProjectileHit. Target is zero when
// the projectile struck level geometry.
type ProjectileImpact struct {
	Point  cp.Vector
	Target ecs.Entity
}

// ProjectileSystem moves projectiles in straight lines and resolves their
// first contact with level geometry or an enemy.
type ProjectileSystem struct {
	ray Raycaster
}

func NewProjectileSystem(ray Raycaster) *ProjectileSystem {
	return &ProjectileSystem{ray: ray}
}

func (s *ProjectileSystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil || dt <= 0 {
		return
	}

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.KinematicComponent.Kind(), func(e ecs.Entity, p *component.Projectile, k *component.Kinematic) {
		from := k.Position
		to := from.Add(k.Velocity.Mult(dt))

		if point, blocked := s.ray.Raycast(from, to); blocked {
			k.Position = point
			w.Events().Push(ecs.Event{Type: ecs.EventProjectileHit, Entity: e, Data: ProjectileImpact{Point: point}})
			ecs.DestroyEntity(w, e)
			return
		}
		k.Position = to

		hits := overlapEnemies(w, to, p.Radius)
		if len(hits) == 0 {
			return
		}
		target := hits[0]
		applyHit(w, ecs.Entity(p.Owner), Hit{Target: target, Damage: p.Damage})
		w.Events().Push(ecs.Event{Type: ecs.EventProjectileHit, Entity: e, Data: ProjectileImpact{Point: to, Target: target}})
		ecs.DestroyEntity(w, e)
	})
}
