package component

import "github.com/jakecoffman/cp"

// WallSide is the side of the character a wall contact was classified on.
type WallSide int

const (
	WallNone WallSide = iota
	WallLeft
	WallRight
)

func (s WallSide) String() string {
	switch s {
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	default:
		return "none"
	}
}

// Away returns the horizontal sign pointing away from the wall, or 0.
func (s WallSide) Away() float64 {
	switch s {
	case WallLeft:
		return 1
	case WallRight:
		return -1
	default:
		return 0
	}
}

// Kinematic is the committed motion state of a character. Y points up.
// Grounded and a wall side are never active together.
type Kinematic struct {
	Position    cp.Vector
	Velocity    cp.Vector
	Facing      float64
	Grounded    bool
	Wall        WallSide
	Dashing     bool
	WallSliding bool
}

var KinematicComponent = NewComponent[Kinematic]()

func (k *Kinematic) IsGrounded() bool { return k != nil && k.Grounded }

func (k *Kinematic) OnWall() bool { return k != nil && k.Wall != WallNone }

func (k *Kinematic) IsDashing() bool { return k != nil && k.Dashing }

func (k *Kinematic) FacingSign() float64 {
	if k == nil || k.Facing >= 0 {
		return 1
	}
	return -1
}

// SetGrounded marks ground contact and drops any wall state with it.
func (k *Kinematic) SetGrounded(grounded bool) {
	k.Grounded = grounded
	if grounded {
		k.Wall = WallNone
		k.WallSliding = false
	}
}
