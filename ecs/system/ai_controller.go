package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
)

// AISystem drives every enemy through patrol, chase and attack toward the player.
type AISystem struct {
	ray Raycaster
}

func NewAISystem(ray Raycaster) *AISystem {
	return &AISystem{ray: ray}
}

// EndAttack finishes the current attack of e, as an animation-end signal would.
func (s *AISystem) EndAttack(w *ecs.World, e ecs.Entity) {
	if st, ok := ecs.Get(w, e, component.AIStateComponent.Kind()); ok && st.Current == component.StateAttack {
		st.AttackRemaining = 0
	}
}

func (s *AISystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil || dt <= 0 {
		return
	}

	var target cp.Vector
	hasTarget := false
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if pk, ok := ecs.Get(w, player, component.KinematicComponent.Kind()); ok {
			target = pk.Position
			hasTarget = true
		}
	}

	entities := w.Query(
		component.EnemyTagComponent.Kind(),
		component.AIComponent.Kind(),
		component.AIStateComponent.Kind(),
		component.KinematicComponent.Kind(),
	)
	for _, e := range entities {
		cfg, _ := ecs.Get(w, e, component.AIComponent.Kind())
		st, _ := ecs.Get(w, e, component.AIStateComponent.Kind())
		k, _ := ecs.Get(w, e, component.KinematicComponent.Kind())
		if cfg == nil || st == nil || k == nil {
			continue
		}

		ctx := &enemyContext{w: w, e: e, dt: dt, cfg: cfg, st: st, k: k, hasTarget: hasTarget, target: target}
		s.step(ctx)
		if ctx.destroy {
			ecs.DestroyEntity(w, e)
		}
	}
}

func (s *AISystem) step(ctx *enemyContext) {
	st, k, cfg := ctx.st, ctx.k, ctx.cfg

	if st.Current == "" {
		st.PatrolA = k.Position.Add(cp.Vector{X: -cfg.PatrolOffset})
		st.PatrolB = k.Position.Add(cp.Vector{X: cfg.PatrolOffset})
		st.HeadingToB = true
		ctx.ChangeState(enemyStatePatrol)
	}
	if hp, ok := ecs.Get(ctx.w, ctx.e, component.HealthComponent.Kind()); ok && hp.Dead() {
		ctx.ChangeState(enemyStateDead)
		return
	}
	if st.Current == component.StateDead {
		return
	}

	st.CooldownRemaining = math.Max(0, st.CooldownRemaining-ctx.dt)

	st.Grounded = s.grounded(ctx)
	if !st.Grounded {
		k.Velocity.X = 0
		return
	}

	if ctx.hasTarget {
		ctx.distance = k.Position.Distance(ctx.target)
		sight, checked := false, false
		ctx.sees = func() bool {
			if !checked {
				sight = lineOfSight(s.ray, k.Position, ctx.target, cfg.Rays, cfg.ConeAngle)
				checked = true
			}
			return sight
		}
		if st.HasTarget && (ctx.distance > cfg.LoseRange || !ctx.sees()) {
			st.HasTarget = false
		} else if !st.HasTarget && ctx.distance <= cfg.DetectRange && ctx.sees() {
			st.HasTarget = true
		}
	} else {
		ctx.sees = func() bool { return false }
		st.HasTarget = false
	}

	if cur, ok := enemyStates[st.Current]; ok {
		cur.Update(ctx)
	}
}

// grounded probes straight down from the feet for static geometry.
func (s *AISystem) grounded(ctx *enemyContext) bool {
	if ctx.k.Grounded {
		return true
	}
	feet := ctx.k.Position
	if body, ok := ecs.Get(ctx.w, ctx.e, component.PhysicsBodyComponent.Kind()); ok {
		feet.Y -= body.Height / 2
	}
	_, hit := s.ray.Raycast(feet, feet.Add(cp.Vector{Y: -ctx.cfg.GroundProbe}))
	return hit
}
