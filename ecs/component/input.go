package component

import "github.com/jakecoffman/cp"

// Input is the per-tick snapshot of logical buttons and axes. Pressed and
// Released fields are true only on the tick the edge happened.
type Input struct {
	MoveX       float64
	Jump        bool
	JumpPressed bool
	DashPressed bool
	FastFall    bool

	Punch    bool
	Uppercut bool
	Shoot    bool

	Heavy         bool
	HeavyPressed  bool
	HeavyReleased bool

	// Aim is a world-space direction. It need not be normalized.
	Aim cp.Vector
}

var InputComponent = NewComponent[Input]()
