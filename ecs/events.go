package ecs

// EventType names a one-shot simulation event.
type EventType string

const (
	EventJump          EventType = "jump"
	EventLand          EventType = "land"
	EventDash          EventType = "dash"
	EventDashCancel    EventType = "dash_cancel"
	EventWallJump      EventType = "wall_jump"
	EventWallLeave     EventType = "wall_leave"
	EventPunch         EventType = "punch"
	EventUppercut      EventType = "uppercut"
	EventShoot         EventType = "shoot"
	EventChargeStart   EventType = "charge_start"
	EventFullyCharged  EventType = "fully_charged"
	EventHeavyPunch    EventType = "heavy_punch"
	EventHit           EventType = "hit"
	EventProjectileHit EventType = "projectile_hit"
	EventEnemyState    EventType = "enemy_state"
	EventEnemyAttack   EventType = "enemy_attack"
	EventEnemyDied     EventType = "enemy_died"
)

// Event is a one-shot notification for presentation collaborators.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Emit is shorthand for Push with no payload.
func (q *EventQueue) Emit(t EventType, e Entity) {
	q.Push(Event{Type: t, Entity: e})
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
