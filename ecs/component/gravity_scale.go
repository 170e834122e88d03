package component

// GravityScale multiplies the gravity the physics step applies to a body.
// A dash holds it at zero for its duration.
type GravityScale struct {
	Scale float64
}

var GravityScaleComponent = NewComponent[GravityScale]()
