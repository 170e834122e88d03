package system

import (
	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
)

// IntegrationSystem commits velocities to positions without collision
// response. It stands in for the physics step when contacts are delivered
// from outside the simulation.
type IntegrationSystem struct {
	gravity float64
}

func NewIntegrationSystem(gravity float64) *IntegrationSystem {
	return &IntegrationSystem{gravity: gravity}
}

func (s *IntegrationSystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil || dt <= 0 {
		return
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.KinematicComponent.Kind(), func(e ecs.Entity, _ *component.PhysicsBody, k *component.Kinematic) {
		if !k.Grounded {
			k.Velocity.Y -= s.gravity * GravityScaleOf(w, e) * dt
		}
		k.Position = k.Position.Add(k.Velocity.Mult(dt))
	})
}

// GravityScaleOf returns the entity's gravity scale, 1 when it has none.
func GravityScaleOf(w *ecs.World, e ecs.Entity) float64 {
	if g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
		return g.Scale
	}
	return 1
}
