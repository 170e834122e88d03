package component

// Knockbackable marks entities with a physics body that attack impulses may move.
// Entities without it still take damage.
type Knockbackable struct{}

var KnockbackableComponent = NewComponent[Knockbackable]()
