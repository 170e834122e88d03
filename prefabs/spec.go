package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/winnerpov/ecs/component"
	"gopkg.in/yaml.v3"
)

// LoadSpec decodes filename over defaults, so keys missing from the YAML keep
// their default values.
func LoadSpec[T any](filename string, defaults T) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec := defaults
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type MovementSpec struct {
	MoveSpeed       float64 `yaml:"move_speed"`
	JumpForce       float64 `yaml:"jump_force"`
	AirControlForce float64 `yaml:"air_control_force"`
	AirMaxSpeed     float64 `yaml:"air_max_speed"`

	WallSlideSpeed            float64 `yaml:"wall_slide_speed"`
	WallJumpForce             float64 `yaml:"wall_jump_force"`
	WallJumpDirectionForce    float64 `yaml:"wall_jump_direction_force"`
	WallJumpBoostSpeed        float64 `yaml:"wall_jump_boost_speed"`
	MomentumDuration          float64 `yaml:"momentum_duration"`
	MomentumControlMultiplier float64 `yaml:"momentum_control_multiplier"`
	WallKeyDisableTime        float64 `yaml:"wall_key_disable_time"`
	UpwardWallJump            bool    `yaml:"upward_wall_jump"`

	FastFallMultiplier float64 `yaml:"fast_fall_multiplier"`
	BhopMultiplier     float64 `yaml:"bhop_multiplier"`

	DashSpeed       float64 `yaml:"dash_speed"`
	DashDuration    float64 `yaml:"dash_duration"`
	DashCooldown    float64 `yaml:"dash_cooldown"`
	DashEnemyRadius float64 `yaml:"dash_enemy_radius"`
	DashExitBlend   float64 `yaml:"dash_exit_blend"`
}

type CombatSpec struct {
	AttackCooldown float64    `yaml:"attack_cooldown"`
	AttackRange    float64    `yaml:"attack_range"`
	AttackDamage   float64    `yaml:"attack_damage"`
	AttackOffset   VectorSpec `yaml:"attack_offset"`
	KnockbackForce float64    `yaml:"knockback_force"`

	UppercutForce           float64 `yaml:"uppercut_force"`
	UppercutEnemyMultiplier float64 `yaml:"uppercut_enemy_multiplier"`
	UppercutDuration        float64 `yaml:"uppercut_duration"`

	MaxChargeTime               float64 `yaml:"max_charge_time"`
	FullyChargedSpeed           float64 `yaml:"fully_charged_speed"`
	ChargeSpeedMultiplierMin    float64 `yaml:"charge_speed_multiplier_min"`
	ChargeSpeedMultiplierMax    float64 `yaml:"charge_speed_multiplier_max"`
	PopUpVelocity               float64 `yaml:"pop_up_velocity"`
	KnockbackMultiplier         float64 `yaml:"knockback_multiplier"`
	MaxXVelocity                float64 `yaml:"max_x_velocity"`
	ExistingYVelocityMultiplier float64 `yaml:"existing_y_velocity_multiplier"`
	YToXVelocityTransfer        float64 `yaml:"y_to_x_velocity_transfer"`
	ChargingMovementMultiplier  float64 `yaml:"charging_movement_multiplier"`
	BoostDuration               float64 `yaml:"boost_duration"`
	BypassVelocityLimit         bool    `yaml:"bypass_velocity_limit"`
	AllowChargeDuringUppercut   bool    `yaml:"allow_charge_during_uppercut"`

	ProjectileSpeed    float64 `yaml:"projectile_speed"`
	ProjectileLifetime float64 `yaml:"projectile_lifetime"`
	ProjectileDamage   float64 `yaml:"projectile_damage"`
	ProjectileRadius   float64 `yaml:"projectile_radius"`
}

type CollisionSpec struct {
	GroundThreshold float64 `yaml:"ground_threshold"`
	WallThreshold   float64 `yaml:"wall_threshold"`
	Grace           float64 `yaml:"grace"`
}

type PlayerSpec struct {
	Name      string        `yaml:"name"`
	Size      SizeSpec      `yaml:"size"`
	Gravity   float64       `yaml:"gravity"`
	Movement  MovementSpec  `yaml:"movement"`
	Combat    CombatSpec    `yaml:"combat"`
	Collision CollisionSpec `yaml:"collision"`
}

type EnemySpec struct {
	Name        string   `yaml:"name"`
	Size        SizeSpec `yaml:"size"`
	MaxHealth   float64  `yaml:"max_health"`
	HurtRadius  float64  `yaml:"hurt_radius"`
	Knockback   bool     `yaml:"knockback"`
	PatrolSpeed float64  `yaml:"patrol_speed"`
	ChaseSpeed  float64  `yaml:"chase_speed"`
	PatrolRange float64  `yaml:"patrol_range"`
	WaitTime    float64  `yaml:"wait_time"`

	DetectRange    float64 `yaml:"detect_range"`
	LoseRange      float64 `yaml:"lose_range"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	AttackDuration float64 `yaml:"attack_duration"`
	AttackDamage   float64 `yaml:"attack_damage"`

	Rays        int     `yaml:"rays"`
	ConeAngle   float64 `yaml:"cone_angle"`
	GroundProbe float64 `yaml:"ground_probe"`
}

type BoxSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TerrainSpec describes a strip of noise-generated ground columns.
type TerrainSpec struct {
	Seed        int64   `yaml:"seed"`
	StartX      float64 `yaml:"start_x"`
	Columns     int     `yaml:"columns"`
	ColumnWidth float64 `yaml:"column_width"`
	BaseHeight  float64 `yaml:"base_height"`
	Amplitude   float64 `yaml:"amplitude"`
	Frequency   float64 `yaml:"frequency"`
}

type LevelSpec struct {
	Name        string       `yaml:"name"`
	PlayerSpawn VectorSpec   `yaml:"player_spawn"`
	Boxes       []BoxSpec    `yaml:"boxes"`
	Terrain     *TerrainSpec `yaml:"terrain"`
	Enemies     []VectorSpec `yaml:"enemies"`
}

func DefaultPlayerSpec() PlayerSpec {
	mv := component.DefaultMovement()
	return PlayerSpec{
		Name:      "player",
		Size:      SizeSpec{Width: 0.8, Height: 1.6},
		Gravity:   mv.Gravity,
		Movement:  movementSpecOf(mv),
		Combat:    combatSpecOf(component.DefaultCombat()),
		Collision: CollisionSpec{GroundThreshold: 0.5, WallThreshold: 0.8, Grace: 0.1},
	}
}

func DefaultEnemySpec() EnemySpec {
	ai := component.DefaultAI()
	return EnemySpec{
		Name:           "enemy",
		Size:           SizeSpec{Width: 0.9, Height: 1.4},
		MaxHealth:      100,
		HurtRadius:     0.5,
		Knockback:      true,
		PatrolSpeed:    ai.PatrolSpeed,
		ChaseSpeed:     ai.ChaseSpeed,
		PatrolRange:    ai.PatrolOffset,
		WaitTime:       ai.WaitTime,
		DetectRange:    ai.DetectRange,
		LoseRange:      ai.LoseRange,
		AttackRange:    ai.AttackRange,
		AttackCooldown: ai.AttackCooldown,
		AttackDuration: ai.AttackDuration,
		AttackDamage:   ai.AttackDamage,
		Rays:           ai.Rays,
		ConeAngle:      ai.ConeAngle,
		GroundProbe:    ai.GroundProbe,
	}
}

func movementSpecOf(m component.Movement) MovementSpec {
	return MovementSpec{
		MoveSpeed:                 m.MoveSpeed,
		JumpForce:                 m.JumpForce,
		AirControlForce:           m.AirControlForce,
		AirMaxSpeed:               m.AirMaxSpeed,
		WallSlideSpeed:            m.WallSlideSpeed,
		WallJumpForce:             m.WallJumpForce,
		WallJumpDirectionForce:    m.WallJumpDirectionForce,
		WallJumpBoostSpeed:        m.WallJumpBoostSpeed,
		MomentumDuration:          m.MomentumDuration,
		MomentumControlMultiplier: m.MomentumControlMultiplier,
		WallKeyDisableTime:        m.WallKeyDisableTime,
		UpwardWallJump:            m.UpwardWallJump,
		FastFallMultiplier:        m.FastFallMultiplier,
		BhopMultiplier:            m.BhopMultiplier,
		DashSpeed:                 m.DashSpeed,
		DashDuration:              m.DashDuration,
		DashCooldown:              m.DashCooldown,
		DashEnemyRadius:           m.DashEnemyRadius,
		DashExitBlend:             m.DashExitBlend,
	}
}

func combatSpecOf(c component.Combat) CombatSpec {
	return CombatSpec{
		AttackCooldown:              c.AttackCooldown,
		AttackRange:                 c.AttackRange,
		AttackDamage:                c.AttackDamage,
		AttackOffset:                VectorSpec{X: c.AttackOffsetX, Y: c.AttackOffsetY},
		KnockbackForce:              c.KnockbackForce,
		UppercutForce:               c.UppercutForce,
		UppercutEnemyMultiplier:     c.UppercutEnemyMultiplier,
		UppercutDuration:            c.UppercutDuration,
		MaxChargeTime:               c.HeavyPunchMaxChargeTime,
		FullyChargedSpeed:           c.HeavyPunchFullyChargedSpeed,
		ChargeSpeedMultiplierMin:    c.ChargeSpeedMultiplierMin,
		ChargeSpeedMultiplierMax:    c.ChargeSpeedMultiplierMax,
		PopUpVelocity:               c.HeavyPunchYVelocity,
		KnockbackMultiplier:         c.HeavyPunchKnockbackMultiplier,
		MaxXVelocity:                c.HeavyPunchMaxXVelocity,
		ExistingYVelocityMultiplier: c.ExistingYVelocityMultiplier,
		YToXVelocityTransfer:        c.YToXVelocityTransfer,
		ChargingMovementMultiplier:  c.ChargingMovementMultiplier,
		BoostDuration:               c.BoostDuration,
		BypassVelocityLimit:         c.BypassVelocityLimit,
		AllowChargeDuringUppercut:   c.AllowChargeDuringUppercut,
		ProjectileSpeed:             c.ProjectileSpeed,
		ProjectileLifetime:          c.ProjectileLifetime,
		ProjectileDamage:            c.ProjectileDamage,
		ProjectileRadius:            c.ProjectileRadius,
	}
}

// MovementTuning converts the YAML movement block into the component the
// movement system reads.
func (s PlayerSpec) MovementTuning() component.Movement {
	m := s.Movement
	return component.Movement{
		MoveSpeed:                 m.MoveSpeed,
		JumpForce:                 m.JumpForce,
		AirControlForce:           m.AirControlForce,
		AirMaxSpeed:               m.AirMaxSpeed,
		Gravity:                   s.Gravity,
		WallSlideSpeed:            m.WallSlideSpeed,
		WallJumpForce:             m.WallJumpForce,
		WallJumpDirectionForce:    m.WallJumpDirectionForce,
		WallJumpBoostSpeed:        m.WallJumpBoostSpeed,
		MomentumDuration:          m.MomentumDuration,
		MomentumControlMultiplier: m.MomentumControlMultiplier,
		WallKeyDisableTime:        m.WallKeyDisableTime,
		UpwardWallJump:            m.UpwardWallJump,
		FastFallMultiplier:        m.FastFallMultiplier,
		BhopMultiplier:            m.BhopMultiplier,
		DashSpeed:                 m.DashSpeed,
		DashDuration:              m.DashDuration,
		DashCooldown:              m.DashCooldown,
		DashEnemyRadius:           m.DashEnemyRadius,
		DashExitBlend:             m.DashExitBlend,
	}
}

func (s PlayerSpec) CombatTuning() component.Combat {
	c := s.Combat
	return component.Combat{
		AttackCooldown:                c.AttackCooldown,
		AttackRange:                   c.AttackRange,
		AttackDamage:                  c.AttackDamage,
		AttackOffsetX:                 c.AttackOffset.X,
		AttackOffsetY:                 c.AttackOffset.Y,
		KnockbackForce:                c.KnockbackForce,
		UppercutForce:                 c.UppercutForce,
		UppercutEnemyMultiplier:       c.UppercutEnemyMultiplier,
		UppercutDuration:              c.UppercutDuration,
		HeavyPunchMaxChargeTime:       c.MaxChargeTime,
		HeavyPunchFullyChargedSpeed:   c.FullyChargedSpeed,
		ChargeSpeedMultiplierMin:      c.ChargeSpeedMultiplierMin,
		ChargeSpeedMultiplierMax:      c.ChargeSpeedMultiplierMax,
		HeavyPunchYVelocity:           c.PopUpVelocity,
		HeavyPunchKnockbackMultiplier: c.KnockbackMultiplier,
		HeavyPunchMaxXVelocity:        c.MaxXVelocity,
		ExistingYVelocityMultiplier:   c.ExistingYVelocityMultiplier,
		YToXVelocityTransfer:          c.YToXVelocityTransfer,
		ChargingMovementMultiplier:    c.ChargingMovementMultiplier,
		BoostDuration:                 c.BoostDuration,
		BypassVelocityLimit:           c.BypassVelocityLimit,
		AllowChargeDuringUppercut:     c.AllowChargeDuringUppercut,
		ProjectileSpeed:               c.ProjectileSpeed,
		ProjectileLifetime:            c.ProjectileLifetime,
		ProjectileDamage:              c.ProjectileDamage,
		ProjectileRadius:              c.ProjectileRadius,
	}
}

func (s EnemySpec) AITuning() component.AI {
	ai := component.DefaultAI()
	ai.PatrolSpeed = s.PatrolSpeed
	ai.ChaseSpeed = s.ChaseSpeed
	ai.PatrolOffset = s.PatrolRange
	ai.WaitTime = s.WaitTime
	ai.DetectRange = s.DetectRange
	ai.LoseRange = s.LoseRange
	ai.AttackRange = s.AttackRange
	ai.AttackCooldown = s.AttackCooldown
	ai.AttackDuration = s.AttackDuration
	ai.AttackDamage = s.AttackDamage
	ai.Rays = s.Rays
	ai.ConeAngle = s.ConeAngle
	ai.GroundProbe = s.GroundProbe
	return ai
}

func LoadPlayerSpec(filename string) (PlayerSpec, error) {
	return LoadSpec(filename, DefaultPlayerSpec())
}

func LoadEnemySpec(filename string) (EnemySpec, error) {
	return LoadSpec(filename, DefaultEnemySpec())
}

func LoadLevelSpec(filename string) (LevelSpec, error) {
	return LoadSpec(filename, LevelSpec{})
}

// Validate reports every tuning value that would make the simulation meaningless.
func (s PlayerSpec) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	positive("size.width", s.Size.Width)
	positive("size.height", s.Size.Height)
	positive("movement.move_speed", s.Movement.MoveSpeed)
	positive("movement.jump_force", s.Movement.JumpForce)
	positive("movement.air_max_speed", s.Movement.AirMaxSpeed)
	positive("movement.dash_duration", s.Movement.DashDuration)
	positive("movement.momentum_duration", s.Movement.MomentumDuration)
	positive("combat.max_charge_time", s.Combat.MaxChargeTime)
	positive("combat.fully_charged_speed", s.Combat.FullyChargedSpeed)
	positive("collision.ground_threshold", s.Collision.GroundThreshold)
	positive("collision.wall_threshold", s.Collision.WallThreshold)
	if s.Combat.ChargeSpeedMultiplierMin > s.Combat.ChargeSpeedMultiplierMax {
		errs = append(errs, fmt.Errorf("combat.charge_speed_multiplier_min %v exceeds max %v",
			s.Combat.ChargeSpeedMultiplierMin, s.Combat.ChargeSpeedMultiplierMax))
	}
	return errors.Join(errs...)
}

func (s EnemySpec) Validate() error {
	var errs []error
	if s.LoseRange < s.DetectRange {
		errs = append(errs, fmt.Errorf("lose_range %v is below detect_range %v", s.LoseRange, s.DetectRange))
	}
	if s.Rays < 1 {
		errs = append(errs, fmt.Errorf("rays must be at least 1, got %d", s.Rays))
	}
	if s.MaxHealth <= 0 {
		errs = append(errs, fmt.Errorf("max_health must be positive, got %v", s.MaxHealth))
	}
	return errors.Join(errs...)
}
