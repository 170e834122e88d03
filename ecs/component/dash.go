package component

import "github.com/jakecoffman/cp"

// Dash is the state of the dash ability. Cooldown counts from dash start.
type Dash struct {
	Active         bool
	Remaining      float64
	Direction      cp.Vector
	VelocityBefore cp.Vector
	Cooldown       float64
}

var DashComponent = NewComponent[Dash]()

func (d *Dash) Ready() bool {
	return d != nil && !d.Active && d.Cooldown <= 0
}
