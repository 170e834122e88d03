package component

// Hurtbox is the circle attacks and overlaps test against, centred on the
// entity position.
type Hurtbox struct {
	Radius float64
}

var HurtboxComponent = NewComponent[Hurtbox]()
