// Package sim assembles the character simulation: it owns the ECS world,
// registers the systems in their fixed order and advances one tick at a time.
package sim

import (
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
	"github.com/milk9111/winnerpov/ecs/system"
	"github.com/milk9111/winnerpov/logging"
	"github.com/milk9111/winnerpov/physics"
	"github.com/milk9111/winnerpov/prefabs"
)

type Config struct {
	Player prefabs.PlayerSpec
	Enemy  prefabs.EnemySpec
	Spawn  cp.Vector
}

// DefaultConfig uses the built-in player and enemy tuning.
func DefaultConfig() Config {
	return Config{Player: prefabs.DefaultPlayerSpec(), Enemy: prefabs.DefaultEnemySpec()}
}

// Deps are the collaborators a simulation needs. With Physics set, bodies are
// stepped by Chipmunk and contacts come from the space. Without it, contacts
// are delivered to Tick by the caller and a Raycaster is required.
type Deps struct {
	Physics   *physics.World
	Raycaster system.Raycaster
	Logger    *slog.Logger
}

type Simulation struct {
	world  *ecs.World
	player ecs.Entity
	tick   uint64

	physics   *physics.World
	collision *system.CollisionSystem
	combat    *system.CombatSystem
	ai        *system.AISystem

	playerSpec prefabs.PlayerSpec
	enemySpec  prefabs.EnemySpec
	log        *slog.Logger
}

func New(cfg Config, deps Deps) (*Simulation, error) {
	ray := deps.Raycaster
	if ray == nil && deps.Physics != nil {
		ray = deps.Physics
	}
	if ray == nil {
		return nil, &ConfigurationError{Field: "raycaster"}
	}
	if err := cfg.Player.Validate(); err != nil {
		return nil, &ConfigurationError{Field: "player", Err: err}
	}
	if err := cfg.Enemy.Validate(); err != nil {
		return nil, &ConfigurationError{Field: "enemy", Err: err}
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.Sim()
	}

	s := &Simulation{
		world:      ecs.NewWorld(),
		physics:    deps.Physics,
		collision:  system.NewCollisionSystem(collisionConfig(cfg.Player)),
		combat:     system.NewCombatSystem(),
		ai:         system.NewAISystem(ray),
		playerSpec: cfg.Player,
		enemySpec:  cfg.Enemy,
		log:        logger,
	}

	s.world.AddSystem(s.collision)
	s.world.AddSystem(system.NewMovementSystem())
	s.world.AddSystem(s.combat)
	s.world.AddSystem(s.ai)
	s.world.AddSystem(system.NewProjectileSystem(ray))
	s.world.AddSystem(system.NewTTLSystem())
	if s.physics != nil {
		s.world.AddSystem(s.physics)
	} else {
		s.world.AddSystem(system.NewIntegrationSystem(cfg.Player.Gravity))
	}

	s.player = s.spawnPlayer(cfg.Spawn)
	s.log.Debug("simulation ready", "player", s.player.String(), "physics", s.physics != nil)
	return s, nil
}

func collisionConfig(spec prefabs.PlayerSpec) system.CollisionConfig {
	return system.CollisionConfig{
		GroundThreshold: spec.Collision.GroundThreshold,
		WallThreshold:   spec.Collision.WallThreshold,
		Grace:           spec.Collision.Grace,
	}
}

func (s *Simulation) spawnPlayer(at cp.Vector) ecs.Entity {
	w := s.world
	e := ecs.CreateEntity(w)
	mv := s.playerSpec.MovementTuning()
	cb := s.playerSpec.CombatTuning()

	_ = ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, e, component.KinematicComponent.Kind(), &component.Kinematic{Position: at, Facing: 1})
	_ = ecs.Add(w, e, component.MovementComponent.Kind(), &mv)
	_ = ecs.Add(w, e, component.MovementStateComponent.Kind(), &component.MovementState{})
	_ = ecs.Add(w, e, component.DashComponent.Kind(), &component.Dash{})
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
	_ = ecs.Add(w, e, component.ContactsComponent.Kind(), &component.Contacts{})
	_ = ecs.Add(w, e, component.ContactStateComponent.Kind(), &component.ContactState{})
	_ = ecs.Add(w, e, component.CombatComponent.Kind(), &cb)
	_ = ecs.Add(w, e, component.AttackComponent.Kind(), &component.Attack{})
	_ = ecs.Add(w, e, component.ChargeAttackComponent.Kind(), &component.ChargeAttack{MaxChargeTime: cb.HeavyPunchMaxChargeTime})
	_ = ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    s.playerSpec.Size.Width,
		Height:   s.playerSpec.Size.Height,
		Category: component.CategoryPlayer,
	})
	return e
}

// SpawnEnemy adds an enemy using the configured enemy spec and returns it.
func (s *Simulation) SpawnEnemy(at cp.Vector) ecs.Entity {
	w := s.world
	e := ecs.CreateEntity(w)
	spec := s.enemySpec
	ai := spec.AITuning()

	_ = ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
	_ = ecs.Add(w, e, component.KinematicComponent.Kind(), &component.Kinematic{Position: at, Facing: 1})
	_ = ecs.Add(w, e, component.AIComponent.Kind(), &ai)
	_ = ecs.Add(w, e, component.AIStateComponent.Kind(), &component.AIState{})
	_ = ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: spec.MaxHealth, Max: spec.MaxHealth})
	_ = ecs.Add(w, e, component.HurtboxComponent.Kind(), &component.Hurtbox{Radius: spec.HurtRadius})
	_ = ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1})
	if spec.Knockback {
		_ = ecs.Add(w, e, component.KnockbackableComponent.Kind(), &component.Knockbackable{})
	}
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Size.Width,
		Height:   spec.Size.Height,
		Category: component.CategoryEnemy,
	})
	s.log.Debug("enemy spawned", "entity", e.String(), "x", at.X, "y", at.Y)
	return e
}

// Tick advances the simulation by dt with the given input snapshot. Contacts
// are added to whatever the physics step recorded; pass nil when physics owns
// collision. It returns the events raised during the tick, in order.
func (s *Simulation) Tick(in component.Input, contacts []component.Contact, dt float64) []ecs.Event {
	if s == nil || dt <= 0 {
		return nil
	}
	w := s.world

	if cur, ok := ecs.Get(w, s.player, component.InputComponent.Kind()); ok {
		*cur = in
	}
	if len(contacts) > 0 {
		if c, ok := ecs.Get(w, s.player, component.ContactsComponent.Kind()); ok {
			c.Items = append(c.Items, contacts...)
		}
	}

	w.Update(dt)
	s.tick++
	return w.Events().Drain()
}

// ApplyPlayerSpec swaps the player tuning in place, keeping all runtime state.
func (s *Simulation) ApplyPlayerSpec(spec prefabs.PlayerSpec) error {
	if err := spec.Validate(); err != nil {
		return &ConfigurationError{Field: "player", Err: err}
	}
	w := s.world
	if mv, ok := ecs.Get(w, s.player, component.MovementComponent.Kind()); ok {
		*mv = spec.MovementTuning()
	}
	if cb, ok := ecs.Get(w, s.player, component.CombatComponent.Kind()); ok {
		*cb = spec.CombatTuning()
	}
	if charge, ok := ecs.Get(w, s.player, component.ChargeAttackComponent.Kind()); ok {
		charge.MaxChargeTime = spec.Combat.MaxChargeTime
	}
	s.collision.SetConfig(collisionConfig(spec))
	s.playerSpec = spec
	s.log.Info("player tuning applied", "name", spec.Name)
	return nil
}

// CancelActions ends any heavy punch charge and removes its movement overrides.
func (s *Simulation) CancelActions() {
	s.combat.Cancel(s.world, s.player)
}

// EndEnemyAttack finishes the current attack of an enemy.
func (s *Simulation) EndEnemyAttack(e ecs.Entity) {
	s.ai.EndAttack(s.world, e)
}

func (s *Simulation) World() *ecs.World       { return s.world }
func (s *Simulation) Player() ecs.Entity      { return s.player }
func (s *Simulation) Ticks() uint64           { return s.tick }
func (s *Simulation) Time() float64           { return s.world.Time() }
func (s *Simulation) Physics() *physics.World { return s.physics }

// Kinematic returns a copy of the player's kinematic state.
func (s *Simulation) Kinematic() component.Kinematic {
	if k, ok := ecs.Get(s.world, s.player, component.KinematicComponent.Kind()); ok {
		return *k
	}
	return component.Kinematic{}
}

func (s *Simulation) Charge() component.ChargeAttack {
	if c, ok := ecs.Get(s.world, s.player, component.ChargeAttackComponent.Kind()); ok {
		return *c
	}
	return component.ChargeAttack{}
}

func (s *Simulation) Dash() component.Dash {
	if d, ok := ecs.Get(s.world, s.player, component.DashComponent.Kind()); ok {
		return *d
	}
	return component.Dash{}
}

// Enemies returns the live enemy entities.
func (s *Simulation) Enemies() []ecs.Entity {
	return s.world.Query(component.EnemyTagComponent.Kind())
}
