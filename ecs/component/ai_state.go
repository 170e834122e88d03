package component

import "github.com/jakecoffman/cp"

type StateID string

const (
	StatePatrol StateID = "patrol"
	StateChase  StateID = "chase"
	StateAttack StateID = "attack"
	StateDead   StateID = "dead"
)

// AIState is the runtime state of one enemy.
type AIState struct {
	Current StateID

	PatrolA       cp.Vector
	PatrolB       cp.Vector
	HeadingToB    bool
	Waiting       bool
	WaitRemaining float64

	// HasTarget is the hysteresis latch: set inside DetectRange, cleared beyond LoseRange.
	HasTarget         bool
	AttackRemaining   float64
	CooldownRemaining float64
	Grounded          bool
}

var AIStateComponent = NewComponent[AIState]()
