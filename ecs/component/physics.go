package component

import "github.com/jakecoffman/cp"

// Collision categories used by shape filters.
const (
	CategoryStatic uint = 1 << iota
	CategoryPlayer
	CategoryEnemy
)

// PhysicsBody describes the box collider of a dynamic entity. Body and Shape
// are owned by the physics system and filled in on first sync.
type PhysicsBody struct {
	Width    float64
	Height   float64
	Category uint
	Friction float64

	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
