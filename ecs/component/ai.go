package component

// AI is the enemy behaviour tuning.
type AI struct {
	PatrolSpeed     float64
	ChaseSpeed      float64
	PatrolOffset    float64
	WaitTime        float64
	ArriveThreshold float64

	DetectRange    float64
	LoseRange      float64
	AttackRange    float64
	AttackCooldown float64
	AttackDuration float64
	AttackDamage   float64

	Rays        int
	ConeAngle   float64 // degrees
	GroundProbe float64
}

var AIComponent = NewComponent[AI]()

func DefaultAI() AI {
	return AI{
		PatrolSpeed:     3,
		ChaseSpeed:      5,
		PatrolOffset:    3,
		WaitTime:        2,
		ArriveThreshold: 0.1,

		DetectRange:    8,
		LoseRange:      12,
		AttackRange:    2,
		AttackCooldown: 1.5,
		AttackDuration: 0.5,
		AttackDamage:   10,

		Rays:        8,
		ConeAngle:   90,
		GroundProbe: 0.3,
	}
}
