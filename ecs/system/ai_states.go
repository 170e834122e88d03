package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/common"
	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
)

// enemyState is one node of the enemy state machine.
type enemyState interface {
	ID() component.StateID
	Enter(ctx *enemyContext)
	Update(ctx *enemyContext)
	Exit(ctx *enemyContext)
}

// Enemy state singletons (avoid allocations on transitions).
var (
	enemyStatePatrol enemyState = enemyPatrolState{}
	enemyStateChase  enemyState = enemyChaseState{}
	enemyStateAttack enemyState = enemyAttackState{}
	enemyStateDead   enemyState = enemyDeadState{}
)

var enemyStates = map[component.StateID]enemyState{
	component.StatePatrol: enemyStatePatrol,
	component.StateChase:  enemyStateChase,
	component.StateAttack: enemyStateAttack,
	component.StateDead:   enemyStateDead,
}

// StateChange is the payload of EventEnemyState.
type StateChange struct {
	From component.StateID
	To   component.StateID
}

type enemyContext struct {
	w   *ecs.World
	e   ecs.Entity
	dt  float64
	cfg *component.AI
	st  *component.AIState
	k   *component.Kinematic

	hasTarget bool
	target    cp.Vector
	distance  float64
	sees      func() bool

	destroy bool
}

func (ctx *enemyContext) ChangeState(next enemyState) {
	cur, ok := enemyStates[ctx.st.Current]
	if ok && cur.ID() == next.ID() {
		return
	}
	if ok {
		cur.Exit(ctx)
	}
	ctx.w.Events().Push(ecs.Event{
		Type:   ecs.EventEnemyState,
		Entity: ctx.e,
		Data:   StateChange{From: ctx.st.Current, To: next.ID()},
	})
	ctx.st.Current = next.ID()
	next.Enter(ctx)
}

func (ctx *enemyContext) moveTowards(x, speed float64) {
	dx := x - ctx.k.Position.X
	if dx == 0 {
		ctx.k.Velocity.X = 0
		return
	}
	ctx.k.Facing = common.Sign(dx)
	ctx.k.Velocity.X = ctx.k.Facing * speed
}

func (ctx *enemyContext) inAttackRange() bool {
	return ctx.hasTarget && ctx.distance <= ctx.cfg.AttackRange && ctx.sees()
}

type enemyPatrolState struct{}

type enemyChaseState struct{}

type enemyAttackState struct{}

type enemyDeadState struct{}

func (enemyPatrolState) ID() component.StateID { return component.StatePatrol }
func (enemyPatrolState) Enter(ctx *enemyContext) {
	ctx.st.Waiting = false
	ctx.st.WaitRemaining = 0
}
func (enemyPatrolState) Exit(ctx *enemyContext) {}
func (enemyPatrolState) Update(ctx *enemyContext) {
	st := ctx.st
	if st.HasTarget {
		ctx.ChangeState(enemyStateChase)
		return
	}

	if st.Waiting {
		ctx.k.Velocity.X = 0
		st.WaitRemaining -= ctx.dt
		if st.WaitRemaining <= component.TimerEpsilon {
			st.Waiting = false
			st.HeadingToB = !st.HeadingToB
		}
		return
	}

	point := st.PatrolA
	if st.HeadingToB {
		point = st.PatrolB
	}
	if math.Abs(point.X-ctx.k.Position.X) <= ctx.cfg.ArriveThreshold {
		ctx.k.Velocity.X = 0
		st.Waiting = true
		st.WaitRemaining = ctx.cfg.WaitTime
		return
	}
	ctx.moveTowards(point.X, ctx.cfg.PatrolSpeed)
}

func (enemyChaseState) ID() component.StateID { return component.StateChase }
func (enemyChaseState) Enter(ctx *enemyContext) {}
func (enemyChaseState) Exit(ctx *enemyContext)  {}
func (enemyChaseState) Update(ctx *enemyContext) {
	if !ctx.st.HasTarget {
		ctx.ChangeState(enemyStatePatrol)
		return
	}
	if ctx.distance <= ctx.cfg.AttackRange {
		ctx.k.Velocity.X = 0
		if ctx.st.CooldownRemaining <= 0 && ctx.inAttackRange() {
			ctx.ChangeState(enemyStateAttack)
		}
		return
	}
	ctx.moveTowards(ctx.target.X, ctx.cfg.ChaseSpeed)
}

func (enemyAttackState) ID() component.StateID { return component.StateAttack }
func (enemyAttackState) Enter(ctx *enemyContext) {
	ctx.k.Velocity.X = 0
	ctx.st.AttackRemaining = ctx.cfg.AttackDuration
	ctx.st.CooldownRemaining = ctx.cfg.AttackCooldown
	ctx.w.Events().Push(ecs.Event{Type: ecs.EventEnemyAttack, Entity: ctx.e, Data: ctx.cfg.AttackDamage})
}
func (enemyAttackState) Exit(ctx *enemyContext) {
	ctx.st.AttackRemaining = 0
}
func (enemyAttackState) Update(ctx *enemyContext) {
	ctx.k.Velocity.X = 0
	ctx.st.AttackRemaining -= ctx.dt
	if ctx.st.AttackRemaining > component.TimerEpsilon {
		return
	}
	if ctx.st.HasTarget {
		ctx.ChangeState(enemyStateChase)
		return
	}
	ctx.ChangeState(enemyStatePatrol)
}

func (enemyDeadState) ID() component.StateID { return component.StateDead }
func (enemyDeadState) Enter(ctx *enemyContext) {
	ctx.k.Velocity = cp.Vector{}
	ctx.st.HasTarget = false
	ctx.w.Events().Emit(ecs.EventEnemyDied, ctx.e)
	ctx.destroy = true
}
func (enemyDeadState) Exit(ctx *enemyContext)   {}
func (enemyDeadState) Update(ctx *enemyContext) {}
