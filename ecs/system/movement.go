package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/common"
	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
)

// MovementSystem advances ground, air, wall and dash movement of every entity
// that has movement tuning and an input snapshot.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}

	entities := w.Query(
		component.MovementComponent.Kind(),
		component.MovementStateComponent.Kind(),
		component.KinematicComponent.Kind(),
		component.DashComponent.Kind(),
		component.InputComponent.Kind(),
	)
	for _, e := range entities {
		m, ok := newMover(w, e, dt)
		if !ok {
			continue
		}
		m.run()
	}
}

// mover carries one entity's components through a movement tick.
type mover struct {
	w       *ecs.World
	e       ecs.Entity
	dt      float64
	in      component.Input
	tune    component.Movement
	k       *component.Kinematic
	st      *component.MovementState
	dash    *component.Dash
	contact *component.ContactState
}

func newMover(w *ecs.World, e ecs.Entity, dt float64) (*mover, bool) {
	tune, ok := ecs.Get(w, e, component.MovementComponent.Kind())
	if !ok {
		return nil, false
	}
	st, ok := ecs.Get(w, e, component.MovementStateComponent.Kind())
	if !ok {
		return nil, false
	}
	k, ok := ecs.Get(w, e, component.KinematicComponent.Kind())
	if !ok {
		return nil, false
	}
	dash, ok := ecs.Get(w, e, component.DashComponent.Kind())
	if !ok {
		return nil, false
	}
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return nil, false
	}
	contact, _ := ecs.Get(w, e, component.ContactStateComponent.Kind())

	m := &mover{w: w, e: e, dt: dt, in: *in, tune: *tune, k: k, st: st, dash: dash, contact: contact}
	// The tuning component is never written; a speed scale only shapes this tick's copy.
	if scale, ok := ecs.Get(w, e, component.SpeedScaleComponent.Kind()); ok {
		m.tune.MoveSpeed *= scale.Scale
		m.tune.AirMaxSpeed *= scale.Scale
	}
	if m.k.Facing == 0 {
		m.k.Facing = 1
	}
	return m, true
}

func (m *mover) run() {
	m.resolveContacts()

	if m.dash.Active {
		m.updateDash()
		m.decayTimers()
		return
	}
	if m.startDash() {
		m.decayTimers()
		return
	}

	moveX := m.locomotion()
	m.wall(moveX)
	m.jump()
	m.fastFall()
	m.decayTimers()

	if !m.k.Grounded {
		m.st.LastAirVelocityX = m.k.Velocity.X
	}
}

func (m *mover) emit(t ecs.EventType) {
	m.w.Events().Emit(t, m.e)
}

// resolveContacts applies the landing rule and arms or disarms the wall jump
// from the transitions the collision system recorded this tick.
func (m *mover) resolveContacts() {
	if m.contact != nil {
		if m.contact.Landed {
			if m.in.Jump {
				m.st.PreservedSpeed = m.st.LastAirVelocityX * m.tune.BhopMultiplier
			} else {
				m.k.Velocity.X = 0
				m.st.PreservedSpeed = 0
			}
			m.emit(ecs.EventLand)
		}
		if m.contact.WallAcquired {
			m.st.CanWallJump = true
		}
		if m.contact.WallLost {
			m.emit(ecs.EventWallLeave)
		}
	}
	if m.k.Grounded || m.k.Wall == component.WallNone {
		m.st.CanWallJump = false
		m.k.WallSliding = false
	}
}

func (m *mover) startDash() bool {
	if !m.in.DashPressed || !m.dash.Ready() {
		return false
	}

	dir := m.in.Aim
	if dir.LengthSq() == 0 {
		dir = cp.Vector{X: m.k.FacingSign()}
	} else {
		dir = dir.Normalize()
	}

	*m.dash = component.Dash{
		Active:         true,
		Remaining:      m.tune.DashDuration,
		Direction:      dir,
		VelocityBefore: m.k.Velocity,
		Cooldown:       m.tune.DashCooldown,
	}
	m.k.Dashing = true
	m.k.WallSliding = false
	m.k.Velocity = dir.Mult(m.tune.DashSpeed)
	setGravityScale(m.w, m.e, 0)
	m.emit(ecs.EventDash)
	return true
}

func (m *mover) updateDash() {
	m.k.Velocity = m.dash.Direction.Mult(m.tune.DashSpeed)

	if len(overlapEnemies(m.w, m.k.Position, m.tune.DashEnemyRadius)) > 0 {
		m.stopDash()
		m.dash.Cooldown = 0
		m.emit(ecs.EventDashCancel)
		return
	}

	m.dash.Remaining -= m.dt
	if m.dash.Remaining > component.TimerEpsilon {
		return
	}

	before := m.dash.VelocityBefore
	m.stopDash()
	if m.k.Grounded {
		m.k.Velocity = cp.Vector{X: 0, Y: before.Y}
		return
	}
	x := common.Lerp(before.X, m.k.Velocity.X, m.tune.DashExitBlend)
	m.k.Velocity = cp.Vector{
		X: common.Clamp(x, -m.tune.AirMaxSpeed, m.tune.AirMaxSpeed),
		Y: before.Y,
	}
}

// stopDash restores gravity and enemy collision. Velocity is left to the caller.
func (m *mover) stopDash() {
	m.dash.Active = false
	m.dash.Remaining = 0
	m.k.Dashing = false
	setGravityScale(m.w, m.e, 1)
}

// locomotion applies the momentum floor, facing, key lockout and the ground or
// air horizontal rule. It returns the lockout-filtered input.
func (m *mover) locomotion() float64 {
	k := m.k
	raw := m.in.MoveX

	if m.st.Momentum.Active {
		if floor := m.st.Momentum.Floor(); math.Abs(k.Velocity.X) < floor {
			k.Velocity.X = m.st.Momentum.Push * floor
		}
	}

	if raw != 0 {
		k.Facing = common.Sign(raw)
	}
	moveX := m.st.Lockout.Filter(raw)

	if k.Grounded {
		k.Velocity.X = moveX * m.tune.MoveSpeed
		return moveX
	}

	// The momentum window adds its own unclamped steering on top of the air push.
	if m.st.Momentum.Active && moveX != 0 {
		k.Velocity.X += moveX * m.tune.AirControlForce * m.tune.MomentumControlMultiplier * m.dt
	}

	limit := m.tune.AirMaxSpeed
	bypass, bypassed := ecs.Get(m.w, m.e, component.AirCapBypassComponent.Kind())
	if bypassed {
		limit = bypass.Cap
	}
	if moveX != 0 {
		k.Velocity.X = airPush(k.Velocity.X, moveX*m.tune.AirControlForce*m.dt, limit)
	}
	if bypassed {
		k.Velocity.X = common.Clamp(k.Velocity.X, -limit, limit)
	}
	return moveX
}

// airPush adds dv without letting the result pass limit in the push direction.
// A velocity already beyond the limit is kept, never reduced.
func airPush(v, dv, limit float64) float64 {
	switch {
	case dv > 0:
		if v >= limit {
			return v
		}
		return math.Min(v+dv, limit)
	case dv < 0:
		if v <= -limit {
			return v
		}
		return math.Max(v+dv, -limit)
	default:
		return v
	}
}

func (m *mover) wall(moveX float64) {
	k := m.k
	if k.Grounded || k.Wall == component.WallNone {
		k.WallSliding = false
		return
	}

	into := -k.Wall.Away()
	k.WallSliding = common.Sign(moveX) == into
	if k.WallSliding && k.Velocity.Y < -m.tune.WallSlideSpeed {
		k.Velocity.Y = -m.tune.WallSlideSpeed
	}

	if m.in.JumpPressed && m.st.CanWallJump {
		m.wallJump()
	}
}

func (m *mover) wallJump() {
	k := m.k
	away := k.Wall.Away()
	into := -away

	if m.tune.UpwardWallJump && k.FacingSign() == away {
		k.Velocity = cp.Vector{X: 0, Y: m.tune.WallJumpForce * 1.2}
	} else {
		k.Velocity = cp.Vector{X: away * m.tune.WallJumpDirectionForce, Y: m.tune.WallJumpForce}
	}

	// Holding away from the wall earns the boost speed.
	target := m.tune.WallJumpDirectionForce
	if common.Sign(m.in.MoveX) == away {
		target = m.tune.WallJumpBoostSpeed
	}
	m.st.Momentum.Open(target, m.tune.MomentumDuration, away)
	m.st.Lockout.Lock(component.DirectionOf(into), m.tune.WallKeyDisableTime)

	m.st.CanWallJump = false
	k.WallSliding = false
	m.emit(ecs.EventWallJump)
}

func (m *mover) jump() {
	k := m.k
	if !m.in.Jump || !k.Grounded {
		return
	}

	k.Velocity.Y = m.tune.JumpForce
	if m.st.PreservedSpeed != 0 {
		k.Velocity.X = m.st.PreservedSpeed
		m.st.PreservedSpeed = 0
	}
	k.Grounded = false
	if m.contact != nil {
		m.contact.GroundLostFor = 0
	}
	m.emit(ecs.EventJump)
}

func (m *mover) fastFall() {
	if !m.in.FastFall || m.k.Velocity.Y >= 0 || m.tune.FastFallMultiplier <= 1 {
		return
	}
	m.k.Velocity.Y -= m.tune.Gravity * (m.tune.FastFallMultiplier - 1) * m.dt
}

func (m *mover) decayTimers() {
	m.dash.Cooldown = math.Max(0, m.dash.Cooldown-m.dt)
	m.st.Momentum.Decay(m.dt)
	m.st.Lockout.Decay(m.dt)

	if bypass, ok := ecs.Get(m.w, m.e, component.AirCapBypassComponent.Kind()); ok {
		bypass.Remaining -= m.dt
		if bypass.Remaining <= component.TimerEpsilon {
			ecs.Remove(m.w, m.e, component.AirCapBypassComponent.Kind())
		}
	}
}
