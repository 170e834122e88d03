package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
	"github.com/stretchr/testify/require"
)

const tick60 = 1.0 / 60

// openSky never hits anything.
type openSky struct{}

func (openSky) Raycast(from, to cp.Vector) (cp.Vector, bool) { return cp.Vector{}, false }

// fakeRay reports a hit for segments accepted by block, and counts calls.
type fakeRay struct {
	block func(from, to cp.Vector) bool
	calls int
}

func (r *fakeRay) Raycast(from, to cp.Vector) (cp.Vector, bool) {
	r.calls++
	if r.block != nil && r.block(from, to) {
		return to, true
	}
	return cp.Vector{}, false
}

// groundBelow blocks only rays pointing down, so ground probes hit and sight lines stay clear.
func groundBelow() *fakeRay {
	return &fakeRay{block: func(from, to cp.Vector) bool {
		return to.X == from.X && to.Y < from.Y
	}}
}

func newPlayer(t *testing.T, w *ecs.World, at cp.Vector) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mv := component.DefaultMovement()
	cb := component.DefaultCombat()
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.KinematicComponent.Kind(), &component.Kinematic{Position: at, Facing: 1}))
	require.NoError(t, ecs.Add(w, e, component.MovementComponent.Kind(), &mv))
	require.NoError(t, ecs.Add(w, e, component.MovementStateComponent.Kind(), &component.MovementState{}))
	require.NoError(t, ecs.Add(w, e, component.DashComponent.Kind(), &component.Dash{}))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, e, component.ContactsComponent.Kind(), &component.Contacts{}))
	require.NoError(t, ecs.Add(w, e, component.ContactStateComponent.Kind(), &component.ContactState{}))
	require.NoError(t, ecs.Add(w, e, component.CombatComponent.Kind(), &cb))
	require.NoError(t, ecs.Add(w, e, component.AttackComponent.Kind(), &component.Attack{}))
	require.NoError(t, ecs.Add(w, e, component.ChargeAttackComponent.Kind(), &component.ChargeAttack{MaxChargeTime: cb.HeavyPunchMaxChargeTime}))
	require.NoError(t, ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1}))
	return e
}

func newEnemy(t *testing.T, w *ecs.World, at cp.Vector) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	ai := component.DefaultAI()
	require.NoError(t, ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}))
	require.NoError(t, ecs.Add(w, e, component.KinematicComponent.Kind(), &component.Kinematic{Position: at, Facing: 1}))
	require.NoError(t, ecs.Add(w, e, component.AIComponent.Kind(), &ai))
	require.NoError(t, ecs.Add(w, e, component.AIStateComponent.Kind(), &component.AIState{}))
	require.NoError(t, ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: 100, Max: 100}))
	require.NoError(t, ecs.Add(w, e, component.HurtboxComponent.Kind(), &component.Hurtbox{Radius: 0.5}))
	require.NoError(t, ecs.Add(w, e, component.KnockbackableComponent.Kind(), &component.Knockbackable{}))
	return e
}

func kinematic(t *testing.T, w *ecs.World, e ecs.Entity) *component.Kinematic {
	t.Helper()
	k, ok := ecs.Get(w, e, component.KinematicComponent.Kind())
	require.True(t, ok)
	return k
}

func setInput(t *testing.T, w *ecs.World, e ecs.Entity, in component.Input) {
	t.Helper()
	cur, ok := ecs.Get(w, e, component.InputComponent.Kind())
	require.True(t, ok)
	*cur = in
}

func eventsOf(events []ecs.Event, typ ecs.EventType) []ecs.Event {
	var out []ecs.Event
	for _, ev := range events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}
