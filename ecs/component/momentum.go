package component

// TimerEpsilon absorbs float drift when countdowns are decremented by decimal dt values.
const TimerEpsilon = 1e-9

// MomentumWindow guarantees a decaying minimum horizontal speed after a wall jump.
// Push is the sign the floor is enforced in, pointing away from the wall
// that was jumped off.
type MomentumWindow struct {
	Active        bool
	Remaining     float64
	TargetSpeed   float64
	TotalDuration float64
	Push          float64
}

func (m *MomentumWindow) Open(targetSpeed, duration, push float64) {
	if duration <= 0 {
		*m = MomentumWindow{}
		return
	}
	*m = MomentumWindow{
		Active:        true,
		Remaining:     duration,
		TargetSpeed:   targetSpeed,
		TotalDuration: duration,
		Push:          push,
	}
}

// Floor is the minimum |velocity.x| the window currently enforces.
func (m MomentumWindow) Floor() float64 {
	if !m.Active || m.TotalDuration <= 0 || m.Remaining <= 0 {
		return 0
	}
	return m.TargetSpeed * (m.Remaining / m.TotalDuration)
}

func (m *MomentumWindow) Decay(dt float64) {
	if !m.Active {
		return
	}
	m.Remaining -= dt
	if m.Remaining <= TimerEpsilon {
		m.Remaining = 0
		m.Active = false
	}
}

// Direction is a horizontal input direction.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionNegative
	DirectionPositive
)

func (d Direction) String() string {
	switch d {
	case DirectionNegative:
		return "negative"
	case DirectionPositive:
		return "positive"
	default:
		return "none"
	}
}

// DirectionOf maps a sign to a Direction.
func DirectionOf(sign float64) Direction {
	switch {
	case sign > 0:
		return DirectionPositive
	case sign < 0:
		return DirectionNegative
	default:
		return DirectionNone
	}
}

// KeyLockout suppresses one horizontal input direction for a while.
type KeyLockout struct {
	Locked    Direction
	Remaining float64
}

func (k *KeyLockout) Lock(dir Direction, duration float64) {
	if dir == DirectionNone || duration <= 0 {
		*k = KeyLockout{}
		return
	}
	*k = KeyLockout{Locked: dir, Remaining: duration}
}

// Filter zeroes moveX when it points in the locked direction.
func (k KeyLockout) Filter(moveX float64) float64 {
	if k.Locked == DirectionNone || k.Remaining <= 0 {
		return moveX
	}
	if DirectionOf(moveX) == k.Locked {
		return 0
	}
	return moveX
}

func (k *KeyLockout) Decay(dt float64) {
	if k.Locked == DirectionNone {
		return
	}
	k.Remaining -= dt
	if k.Remaining <= TimerEpsilon {
		*k = KeyLockout{}
	}
}
