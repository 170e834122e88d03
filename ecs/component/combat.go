package component

// Combat is the attack tuning of a character.
type Combat struct {
	AttackCooldown float64
	AttackRange    float64
	AttackDamage   float64
	AttackOffsetX  float64
	AttackOffsetY  float64
	KnockbackForce float64

	UppercutForce           float64
	UppercutEnemyMultiplier float64
	UppercutDuration        float64

	HeavyPunchMaxChargeTime       float64
	HeavyPunchFullyChargedSpeed   float64
	ChargeSpeedMultiplierMin      float64
	ChargeSpeedMultiplierMax      float64
	HeavyPunchYVelocity           float64
	HeavyPunchKnockbackMultiplier float64
	HeavyPunchMaxXVelocity        float64
	ExistingYVelocityMultiplier   float64
	YToXVelocityTransfer          float64
	ChargingMovementMultiplier    float64
	BoostDuration                 float64
	BypassVelocityLimit           bool
	AllowChargeDuringUppercut     bool

	ProjectileSpeed    float64
	ProjectileLifetime float64
	ProjectileDamage   float64
	ProjectileRadius   float64
}

var CombatComponent = NewComponent[Combat]()

func DefaultCombat() Combat {
	return Combat{
		AttackCooldown: 0.5,
		AttackRange:    0.5,
		AttackDamage:   40,
		AttackOffsetX:  1,
		KnockbackForce: 5,

		UppercutForce:           15,
		UppercutEnemyMultiplier: 1.2,
		UppercutDuration:        0.1,

		HeavyPunchMaxChargeTime:       2,
		HeavyPunchFullyChargedSpeed:   35,
		ChargeSpeedMultiplierMin:      0.3,
		ChargeSpeedMultiplierMax:      0.8,
		HeavyPunchYVelocity:           5,
		HeavyPunchKnockbackMultiplier: 1.5,
		HeavyPunchMaxXVelocity:        40,
		ExistingYVelocityMultiplier:   0.2,
		YToXVelocityTransfer:          1,
		ChargingMovementMultiplier:    0.3,
		BoostDuration:                 0.5,
		BypassVelocityLimit:           true,

		ProjectileSpeed:    10,
		ProjectileLifetime: 5,
		ProjectileDamage:   20,
		ProjectileRadius:   0.15,
	}
}

// CooldownGate lets an action fire only once simulation time reaches NextAvailable.
// The clock is a running sum of dt, so the comparison allows TimerEpsilon of drift.
type CooldownGate struct {
	NextAvailable float64
}

func (g CooldownGate) Ready(now float64) bool {
	return now+TimerEpsilon >= g.NextAvailable
}

func (g *CooldownGate) Trigger(now, cooldown float64) {
	g.NextAvailable = now + cooldown
}

// Attack holds the discrete attack state shared by punch, uppercut and shoot.
type Attack struct {
	Gate              CooldownGate
	Uppercutting      bool
	UppercutRemaining float64
}

var AttackComponent = NewComponent[Attack]()

// ChargeAttack tracks a heavy punch charge.
type ChargeAttack struct {
	Charging      bool
	FullyCharged  bool
	Elapsed       float64
	MaxChargeTime float64
}

var ChargeAttackComponent = NewComponent[ChargeAttack]()

// Intensity is the charge progress in [0, 1] for presentation.
func (c ChargeAttack) Intensity() float64 {
	if !c.Charging {
		return 0
	}
	if c.FullyCharged || c.MaxChargeTime <= 0 {
		return 1
	}
	p := c.Elapsed / c.MaxChargeTime
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
