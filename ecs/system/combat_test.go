package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type combatRig struct {
	w  *ecs.World
	e  ecs.Entity
	cs *CombatSystem
}

func newCombatRig(t *testing.T) *combatRig {
	w := ecs.NewWorld()
	cs := NewCombatSystem()
	w.AddSystem(cs)
	return &combatRig{w: w, e: newPlayer(t, w, cp.Vector{}), cs: cs}
}

func (r *combatRig) step(t *testing.T, dt float64, in component.Input) []ecs.Event {
	setInput(t, r.w, r.e, in)
	r.w.Update(dt)
	return r.w.Events().Drain()
}

func (r *combatRig) charge(t *testing.T) *component.ChargeAttack {
	c, ok := ecs.Get(r.w, r.e, component.ChargeAttackComponent.Kind())
	require.True(t, ok)
	return c
}

// hold presses heavy on the first tick and keeps it held for ticks ticks.
func (r *combatRig) hold(t *testing.T, dt float64, ticks int) []ecs.Event {
	var events []ecs.Event
	for i := 0; i < ticks; i++ {
		events = append(events, r.step(t, dt, component.Input{Heavy: true, HeavyPressed: i == 0})...)
	}
	return events
}

func TestHeavyPunchReleaseSpeed(t *testing.T) {
	tests := []struct {
		name      string
		holdTicks int
		wantX     float64
		wantFully bool
	}{
		{"tap", 0, 35 * 0.3, false},
		{"half", 4, 35 * 0.55, false},
		{"full", 8, 35, true},
		{"over_held", 12, 35, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newCombatRig(t)
			var events []ecs.Event
			if tt.holdTicks == 0 {
				events = r.step(t, 0.25, component.Input{Heavy: true, HeavyPressed: true, HeavyReleased: true})
			} else {
				r.hold(t, 0.25, tt.holdTicks)
				events = r.step(t, 0.25, component.Input{HeavyReleased: true})
			}

			released := eventsOf(events, ecs.EventHeavyPunch)
			require.Len(t, released, 1)
			payload, ok := released[0].Data.(HeavyPunchRelease)
			require.True(t, ok)
			assert.Equal(t, tt.wantFully, payload.FullyCharged)

			k := kinematic(t, r.w, r.e)
			assert.InDelta(t, tt.wantX, k.Velocity.X, 1e-9)
			assert.InDelta(t, 5, k.Velocity.Y, 1e-9)
			assert.False(t, r.charge(t).Charging)
		})
	}
}

func TestHeavyPunchFullyChargedOnce(t *testing.T) {
	r := newCombatRig(t)
	events := r.hold(t, 0.25, 12)

	fully := eventsOf(events, ecs.EventFullyCharged)
	require.Len(t, fully, 1)
	assert.Len(t, eventsOf(events, ecs.EventChargeStart), 1)
	assert.Equal(t, 1.0, r.charge(t).Intensity())
}

func TestHeavyPunchTransfersFallSpeed(t *testing.T) {
	r := newCombatRig(t)
	k := kinematic(t, r.w, r.e)
	k.Facing = -1

	r.hold(t, 0.25, 8)
	k.Velocity.Y = -10
	r.step(t, 0.25, component.Input{HeavyReleased: true})

	assert.InDelta(t, -45, k.Velocity.X, 1e-9)
	assert.InDelta(t, 3, k.Velocity.Y, 1e-9)
}

func TestHeavyPunchOverrides(t *testing.T) {
	r := newCombatRig(t)

	r.hold(t, 0.25, 1)
	scale, ok := ecs.Get(r.w, r.e, component.SpeedScaleComponent.Kind())
	require.True(t, ok, "charging slows movement")
	assert.Equal(t, 0.3, scale.Scale)

	r.step(t, 0.25, component.Input{HeavyReleased: true})
	assert.False(t, ecs.Has(r.w, r.e, component.SpeedScaleComponent.Kind()))
	bypass, ok := ecs.Get(r.w, r.e, component.AirCapBypassComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.AirCapBypass{Cap: 40, Remaining: 0.5}, *bypass)
}

func TestHeavyPunchWhileDashingKeepsDashVelocity(t *testing.T) {
	r := newCombatRig(t)
	k := kinematic(t, r.w, r.e)
	k.Dashing = true
	k.Velocity = cp.Vector{X: 20}

	events := r.step(t, 0.25, component.Input{Heavy: true, HeavyPressed: true, HeavyReleased: true})
	assert.Len(t, eventsOf(events, ecs.EventHeavyPunch), 1)
	assert.Equal(t, cp.Vector{X: 20}, k.Velocity)
}

func TestCombatCancel(t *testing.T) {
	r := newCombatRig(t)
	r.hold(t, 0.25, 3)
	require.True(t, r.charge(t).Charging)
	require.NoError(t, ecs.Add(r.w, r.e, component.AirCapBypassComponent.Kind(), &component.AirCapBypass{Cap: 40, Remaining: 1}))

	r.cs.Cancel(r.w, r.e)
	assert.False(t, r.charge(t).Charging)
	assert.Equal(t, 0.0, r.charge(t).Elapsed)
	assert.False(t, ecs.Has(r.w, r.e, component.SpeedScaleComponent.Kind()))
	assert.False(t, ecs.Has(r.w, r.e, component.AirCapBypassComponent.Kind()))

	// cancelling with nothing active is harmless
	r.cs.Cancel(r.w, r.e)

	events := r.step(t, 0.25, component.Input{HeavyReleased: true})
	assert.Empty(t, eventsOf(events, ecs.EventHeavyPunch), "a cancelled charge cannot be released")
}

func TestCooldownGate(t *testing.T) {
	r := newCombatRig(t)

	var punches int
	for i := 0; i < 4; i++ {
		punches += len(eventsOf(r.step(t, 0.25, component.Input{Punch: true}), ecs.EventPunch))
	}
	assert.Equal(t, 2, punches, "fires at t=0 and again once the 0.5s cooldown has passed")
}

func TestCooldownGateAtSixtyHz(t *testing.T) {
	r := newCombatRig(t)

	var fired []int
	for i := 0; i < 32; i++ {
		if len(eventsOf(r.step(t, tick60, component.Input{Punch: true}), ecs.EventPunch)) > 0 {
			fired = append(fired, i)
		}
	}
	assert.Equal(t, []int{0, 30}, fired, "the second punch lands exactly one cooldown after the first")
}

func TestCooldownGateReady(t *testing.T) {
	var g component.CooldownGate
	assert.True(t, g.Ready(0))

	g.Trigger(0, 0.5)
	assert.False(t, g.Ready(0.49))

	var now float64
	for i := 0; i < 30; i++ {
		now += tick60
	}
	assert.True(t, g.Ready(now), "accumulated tick time reaches the boundary")
}

func TestActionPriority(t *testing.T) {
	r := newCombatRig(t)

	events := r.step(t, 0.25, component.Input{Shoot: true, Punch: true, Uppercut: true})
	assert.Len(t, eventsOf(events, ecs.EventShoot), 1)
	assert.Empty(t, eventsOf(events, ecs.EventPunch))
	assert.Empty(t, eventsOf(events, ecs.EventUppercut))

	events = r.step(t, 0.25, component.Input{Punch: true})
	assert.Empty(t, eventsOf(events, ecs.EventPunch), "the cooldown is shared")
}

func TestPunch(t *testing.T) {
	r := newCombatRig(t)
	enemy := newEnemy(t, r.w, cp.Vector{X: 1.2})

	events := r.step(t, 0.25, component.Input{Punch: true})
	hits := eventsOf(events, ecs.EventHit)
	require.Len(t, hits, 1)

	hp, _ := ecs.Get(r.w, enemy, component.HealthComponent.Kind())
	assert.Equal(t, 60.0, hp.Current)
	assert.InDelta(t, 5, kinematic(t, r.w, enemy).Velocity.X, 1e-9)
}

func TestPunchMissesOutOfRange(t *testing.T) {
	r := newCombatRig(t)
	enemy := newEnemy(t, r.w, cp.Vector{X: -1.2})

	events := r.step(t, 0.25, component.Input{Punch: true})
	assert.Len(t, eventsOf(events, ecs.EventPunch), 1)
	assert.Empty(t, eventsOf(events, ecs.EventHit), "the attack point is in front of the facing")

	hp, _ := ecs.Get(r.w, enemy, component.HealthComponent.Kind())
	assert.Equal(t, 100.0, hp.Current)
}

func TestUppercut(t *testing.T) {
	r := newCombatRig(t)
	enemy := newEnemy(t, r.w, cp.Vector{X: 1})

	r.step(t, 0.05, component.Input{Uppercut: true})
	assert.Equal(t, 15.0, kinematic(t, r.w, r.e).Velocity.Y)
	assert.InDelta(t, 18, kinematic(t, r.w, enemy).Velocity.Y, 1e-9)

	r.step(t, 0.05, component.Input{Heavy: true, HeavyPressed: true})
	assert.False(t, r.charge(t).Charging, "no charge while uppercutting")

	r.step(t, 0.05, component.Input{Heavy: true, HeavyPressed: true})
	assert.True(t, r.charge(t).Charging)
}

func TestUppercutAllowsChargeWhenConfigured(t *testing.T) {
	r := newCombatRig(t)
	cfg, _ := ecs.Get(r.w, r.e, component.CombatComponent.Kind())
	cfg.AllowChargeDuringUppercut = true

	r.step(t, 0.05, component.Input{Uppercut: true})
	r.step(t, 0.05, component.Input{Heavy: true, HeavyPressed: true})
	assert.True(t, r.charge(t).Charging)
}

func TestShoot(t *testing.T) {
	r := newCombatRig(t)

	events := r.step(t, 0.25, component.Input{Shoot: true, Aim: cp.Vector{Y: 2}})
	shots := eventsOf(events, ecs.EventShoot)
	require.Len(t, shots, 1)

	p, ok := shots[0].Data.(ecs.Entity)
	require.True(t, ok)
	k := kinematic(t, r.w, p)
	assert.InDelta(t, 0, k.Velocity.X, 1e-9)
	assert.InDelta(t, 10, k.Velocity.Y, 1e-9)
	assert.Equal(t, cp.Vector{X: 1}, k.Position)

	ttl, ok := ecs.Get(r.w, p, component.TTLComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 5.0, ttl.Remaining)
}
