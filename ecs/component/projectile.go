package component

// Projectile is a shot moving with its Kinematic velocity. Owner is the
// shooter's entity handle, kept as a raw value since components cannot import ecs.
type Projectile struct {
	Damage float64
	Radius float64
	Owner  uint64
}

var ProjectileComponent = NewComponent[Projectile]()
