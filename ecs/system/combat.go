package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/common"
	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
)

// HeavyPunchRelease is the payload of EventHeavyPunch.
type HeavyPunchRelease struct {
	Charge       float64
	FullyCharged bool
	Velocity     cp.Vector
}

// CombatSystem runs the discrete attacks and the heavy punch charge. It runs
// after movement so attack velocities override locomotion for the tick.
type CombatSystem struct{}

func NewCombatSystem() *CombatSystem {
	return &CombatSystem{}
}

func (s *CombatSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}

	entities := w.Query(
		component.CombatComponent.Kind(),
		component.AttackComponent.Kind(),
		component.ChargeAttackComponent.Kind(),
		component.KinematicComponent.Kind(),
		component.InputComponent.Kind(),
	)
	for _, e := range entities {
		cfg, _ := ecs.Get(w, e, component.CombatComponent.Kind())
		attack, _ := ecs.Get(w, e, component.AttackComponent.Kind())
		charge, _ := ecs.Get(w, e, component.ChargeAttackComponent.Kind())
		k, _ := ecs.Get(w, e, component.KinematicComponent.Kind())
		in, _ := ecs.Get(w, e, component.InputComponent.Kind())
		if cfg == nil || attack == nil || charge == nil || k == nil || in == nil {
			continue
		}

		f := fighter{w: w, e: e, cfg: cfg, attack: attack, charge: charge, k: k}
		f.tickUppercut(dt)

		switch {
		case in.Shoot:
			f.gated(func() { f.shoot(in.Aim) })
		case in.Punch:
			f.gated(f.punch)
		case in.Uppercut:
			f.gated(f.uppercut)
		}

		if in.HeavyPressed {
			f.startCharge()
		}
		if charge.Charging {
			if in.HeavyReleased {
				f.release()
			} else {
				f.accumulate(dt)
			}
		}
	}
}

// Cancel ends any charge on e and removes every movement override combat
// applied. It is safe to call at any time.
func (s *CombatSystem) Cancel(w *ecs.World, e ecs.Entity) {
	if w == nil {
		return
	}
	if charge, ok := ecs.Get(w, e, component.ChargeAttackComponent.Kind()); ok {
		*charge = component.ChargeAttack{MaxChargeTime: charge.MaxChargeTime}
	}
	if attack, ok := ecs.Get(w, e, component.AttackComponent.Kind()); ok {
		attack.Uppercutting = false
		attack.UppercutRemaining = 0
	}
	ecs.Remove(w, e, component.SpeedScaleComponent.Kind())
	ecs.Remove(w, e, component.AirCapBypassComponent.Kind())
}

type fighter struct {
	w      *ecs.World
	e      ecs.Entity
	cfg    *component.Combat
	attack *component.Attack
	charge *component.ChargeAttack
	k      *component.Kinematic
}

// gated fires action when the shared cooldown allows it. A rejected action is a no-op.
func (f *fighter) gated(action func()) {
	now := f.w.Time()
	if !f.attack.Gate.Ready(now) {
		return
	}
	action()
	f.attack.Gate.Trigger(now, f.cfg.AttackCooldown)
}

func (f *fighter) attackPoint() cp.Vector {
	return f.k.Position.Add(cp.Vector{X: f.k.FacingSign() * f.cfg.AttackOffsetX, Y: f.cfg.AttackOffsetY})
}

func (f *fighter) emit(t ecs.EventType, data any) {
	f.w.Events().Push(ecs.Event{Type: t, Entity: f.e, Data: data})
}

func (f *fighter) tickUppercut(dt float64) {
	if !f.attack.Uppercutting {
		return
	}
	f.attack.UppercutRemaining -= dt
	if f.attack.UppercutRemaining <= component.TimerEpsilon {
		f.attack.Uppercutting = false
		f.attack.UppercutRemaining = 0
	}
}

func (f *fighter) knockback(force, damage float64) {
	for _, target := range overlapEnemies(f.w, f.attackPoint(), f.cfg.AttackRange) {
		tk, ok := ecs.Get(f.w, target, component.KinematicComponent.Kind())
		if !ok {
			continue
		}
		dir := tk.Position.Sub(f.k.Position)
		if dir.LengthSq() > 0 {
			dir = dir.Normalize()
		}
		applyHit(f.w, f.e, Hit{Target: target, Damage: damage, Impulse: dir.Mult(force)})
	}
}

func (f *fighter) punch() {
	f.knockback(f.cfg.KnockbackForce, f.cfg.AttackDamage)
	f.emit(ecs.EventPunch, nil)
}

func (f *fighter) uppercut() {
	if !f.k.Dashing {
		f.k.Velocity.Y = f.cfg.UppercutForce
	}
	f.attack.Uppercutting = true
	f.attack.UppercutRemaining = f.cfg.UppercutDuration

	lift := f.cfg.UppercutForce * f.cfg.UppercutEnemyMultiplier
	for _, target := range overlapEnemies(f.w, f.attackPoint(), f.cfg.AttackRange) {
		if !ecs.Has(f.w, target, component.KnockbackableComponent.Kind()) {
			continue
		}
		if tk, ok := ecs.Get(f.w, target, component.KinematicComponent.Kind()); ok {
			tk.Velocity.Y = lift
		}
	}
	f.emit(ecs.EventUppercut, nil)
}

func (f *fighter) shoot(aim cp.Vector) {
	dir := aim
	if dir.LengthSq() == 0 {
		dir = cp.Vector{X: f.k.FacingSign()}
	} else {
		dir = dir.Normalize()
	}

	p := ecs.CreateEntity(f.w)
	_ = ecs.Add(f.w, p, component.KinematicComponent.Kind(), &component.Kinematic{
		Position: f.attackPoint(),
		Velocity: dir.Mult(f.cfg.ProjectileSpeed),
		Facing:   common.Sign(dir.X),
	})
	_ = ecs.Add(f.w, p, component.ProjectileComponent.Kind(), &component.Projectile{
		Damage: f.cfg.ProjectileDamage,
		Radius: f.cfg.ProjectileRadius,
		Owner:  uint64(f.e),
	})
	_ = ecs.Add(f.w, p, component.TTLComponent.Kind(), &component.TTL{Remaining: f.cfg.ProjectileLifetime})
	f.emit(ecs.EventShoot, p)
}

func (f *fighter) startCharge() {
	if f.charge.Charging {
		return
	}
	if f.attack.Uppercutting && !f.cfg.AllowChargeDuringUppercut {
		return
	}

	*f.charge = component.ChargeAttack{Charging: true, MaxChargeTime: f.cfg.HeavyPunchMaxChargeTime}
	_ = ecs.Add(f.w, f.e, component.SpeedScaleComponent.Kind(), &component.SpeedScale{Scale: f.cfg.ChargingMovementMultiplier})
	f.emit(ecs.EventChargeStart, nil)
}

func (f *fighter) accumulate(dt float64) {
	f.charge.Elapsed += dt
	if !f.charge.FullyCharged && f.charge.Elapsed >= f.charge.MaxChargeTime-component.TimerEpsilon {
		f.charge.FullyCharged = true
		f.emit(ecs.EventFullyCharged, nil)
	}
}

func (f *fighter) release() {
	cfg := f.cfg
	pct := 1.0
	if f.charge.MaxChargeTime > 0 {
		pct = common.Clamp01(f.charge.Elapsed / f.charge.MaxChargeTime)
	}

	xSpeed := cfg.HeavyPunchFullyChargedSpeed
	if !f.charge.FullyCharged {
		xSpeed = common.Lerp(cfg.ChargeSpeedMultiplierMin, cfg.ChargeSpeedMultiplierMax, pct) * cfg.HeavyPunchFullyChargedSpeed
	}
	vy := f.k.Velocity.Y
	transferred := math.Abs(vy) * cfg.YToXVelocityTransfer
	velocity := cp.Vector{
		X: (xSpeed + transferred) * f.k.FacingSign(),
		Y: vy*cfg.ExistingYVelocityMultiplier + cfg.HeavyPunchYVelocity,
	}
	if !f.k.Dashing {
		f.k.Velocity = velocity
	}

	fully := f.charge.FullyCharged
	*f.charge = component.ChargeAttack{MaxChargeTime: f.charge.MaxChargeTime}
	ecs.Remove(f.w, f.e, component.SpeedScaleComponent.Kind())
	if cfg.BypassVelocityLimit {
		_ = ecs.Add(f.w, f.e, component.AirCapBypassComponent.Kind(), &component.AirCapBypass{
			Cap:       cfg.HeavyPunchMaxXVelocity,
			Remaining: cfg.BoostDuration,
		})
	}

	f.knockback(cfg.KnockbackForce*cfg.HeavyPunchKnockbackMultiplier, cfg.AttackDamage)
	f.emit(ecs.EventHeavyPunch, HeavyPunchRelease{Charge: pct, FullyCharged: fully, Velocity: velocity})
}
