package component

// Movement is the locomotion tuning of a character.
type Movement struct {
	MoveSpeed       float64
	JumpForce       float64
	AirControlForce float64
	AirMaxSpeed     float64
	Gravity         float64

	WallSlideSpeed            float64
	WallJumpForce             float64
	WallJumpDirectionForce    float64
	WallJumpBoostSpeed        float64
	MomentumDuration          float64
	MomentumControlMultiplier float64
	WallKeyDisableTime        float64
	// UpwardWallJump launches straight up when jumping while facing away from the wall.
	UpwardWallJump bool

	FastFallMultiplier float64
	BhopMultiplier     float64

	DashSpeed       float64
	DashDuration    float64
	DashCooldown    float64
	DashEnemyRadius float64
	DashExitBlend   float64
}

var MovementComponent = NewComponent[Movement]()

func DefaultMovement() Movement {
	return Movement{
		MoveSpeed:       7,
		JumpForce:       10,
		AirControlForce: 40,
		AirMaxSpeed:     8,
		Gravity:         25,

		WallSlideSpeed:            2,
		WallJumpForce:             10,
		WallJumpDirectionForce:    8,
		WallJumpBoostSpeed:        10,
		MomentumDuration:          0.2,
		MomentumControlMultiplier: 0.3,
		WallKeyDisableTime:        0.5,

		FastFallMultiplier: 2,
		BhopMultiplier:     1,

		DashSpeed:       20,
		DashDuration:    0.2,
		DashCooldown:    1,
		DashEnemyRadius: 0.5,
		DashExitBlend:   0.3,
	}
}

// MovementState is the runtime bookkeeping of the movement rules.
type MovementState struct {
	CanWallJump      bool
	PreservedSpeed   float64
	LastAirVelocityX float64
	Momentum         MomentumWindow
	Lockout          KeyLockout
}

var MovementStateComponent = NewComponent[MovementState]()
