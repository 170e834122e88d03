// Package physics resolves character bodies against level geometry with
// Chipmunk and reports the contact normals the collision classifier reads.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
	"github.com/milk9111/winnerpov/ecs/system"
)

const (
	collisionTypeStatic cp.CollisionType = iota + 1
	collisionTypeBody
)

// separatingSpeed is the largest speed along a contact normal, away from the
// surface, at which the contact still counts as touching.
const separatingSpeed = 0.01

var staticQuery = cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: component.CategoryStatic}

// World owns the cp space. It is an ecs.System that runs last in a tick:
// it applies gravity, steps the space, commits positions and velocities, and
// writes the contacts each body touched into its Contacts component.
type World struct {
	space         *cp.Space
	gravity       float64
	handlersReady bool

	bodies   map[ecs.Entity]*component.PhysicsBody
	owners   map[*cp.Shape]ecs.Entity
	contacts map[ecs.Entity][]component.Contact
}

func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	// Gravity is applied per body in Update so a gravity scale of zero is exact.
	space.SetGravity(cp.Vector{})

	pw := &World{
		space:    space,
		gravity:  gravity,
		bodies:   make(map[ecs.Entity]*component.PhysicsBody),
		owners:   make(map[*cp.Shape]ecs.Entity),
		contacts: make(map[ecs.Entity][]component.Contact),
	}
	pw.ensureHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *World) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddStaticBox adds a solid axis-aligned box centred on center.
func (pw *World) AddStaticBox(center cp.Vector, width, height float64) *cp.Shape {
	bb := cp.BB{
		L: center.X - width/2,
		B: center.Y - height/2,
		R: center.X + width/2,
		T: center.Y + height/2,
	}
	return pw.addStatic(cp.NewBox2(pw.space.StaticBody, bb, 0))
}

// AddStaticSegment adds a solid segment with the given radius.
func (pw *World) AddStaticSegment(a, b cp.Vector, radius float64) *cp.Shape {
	return pw.addStatic(cp.NewSegment(pw.space.StaticBody, a, b, radius))
}

func (pw *World) addStatic(shape *cp.Shape) *cp.Shape {
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeStatic)
	shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: component.CategoryStatic, Mask: cp.ALL_CATEGORIES})
	pw.space.AddShape(shape)
	return shape
}

// Raycast returns the first static hit on the segment from -> to.
func (pw *World) Raycast(from, to cp.Vector) (cp.Vector, bool) {
	if pw == nil || pw.space == nil {
		return cp.Vector{}, false
	}
	info := pw.space.SegmentQueryFirst(from, to, 0, staticQuery)
	if info.Shape == nil {
		return cp.Vector{}, false
	}
	return info.Point, true
}

var _ system.Raycaster = (*World)(nil)

func (pw *World) ensureHandlers() {
	if pw.handlersReady {
		return
	}

	handler := pw.space.NewCollisionHandler(collisionTypeBody, collisionTypeStatic)
	handler.UserData = pw
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		owner, bodyIsA := world.owners[shapeA]
		if !bodyIsA {
			var okB bool
			owner, okB = world.owners[shapeB]
			if !okB {
				return true
			}
		}

		// The arbiter normal points from A to B; flip it so it pushes out of
		// the surface toward the body.
		n := arb.Normal().Neg()
		if !bodyIsA {
			n = n.Neg()
		}
		// A body leaving the surface, such as on the step of a jump, is not touching it.
		if body, ok := world.bodies[owner]; ok && body.Body != nil && body.Body.Velocity().Dot(n) > separatingSpeed {
			return true
		}
		world.contacts[owner] = append(world.contacts[owner], component.Contact{Normal: n})
		return true
	}

	pw.handlersReady = true
}

func (pw *World) Update(w *ecs.World, dt float64) {
	if pw == nil || w == nil || dt <= 0 {
		return
	}

	pw.cleanupEntities(w)
	pw.syncEntities(w, dt)

	for e := range pw.contacts {
		delete(pw.contacts, e)
	}
	pw.space.Step(dt)

	pw.syncKinematics(w)
	pw.flushContacts(w)
}

func (pw *World) syncEntities(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.KinematicComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, k *component.Kinematic) {
		if body.Body == nil {
			pw.createBody(e, body, k)
		}

		v := k.Velocity
		v.Y -= pw.gravity * system.GravityScaleOf(w, e) * dt
		body.Body.SetPosition(k.Position)
		body.Body.SetVelocityVector(v)

		mask := cp.ALL_CATEGORIES
		if k.Dashing {
			mask &^= component.CategoryEnemy
		}
		body.Shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: body.Category, Mask: mask})
	})
}

func (pw *World) createBody(e ecs.Entity, body *component.PhysicsBody, k *component.Kinematic) {
	// Infinite moment keeps characters upright.
	cpBody := cp.NewBody(1, math.Inf(1))
	cpBody.SetPosition(k.Position)
	cpBody.SetAngle(0)
	cpBody.SetAngularVelocity(0)

	shape := cp.NewBox(cpBody, body.Width, body.Height, 0)
	shape.SetFriction(body.Friction)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeBody)
	if body.Category == 0 {
		body.Category = component.CategoryEnemy
	}

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)

	body.Body = cpBody
	body.Shape = shape
	pw.bodies[e] = body
	pw.owners[shape] = e
}

func (pw *World) syncKinematics(w *ecs.World) {
	for e, body := range pw.bodies {
		k, ok := ecs.Get(w, e, component.KinematicComponent.Kind())
		if !ok {
			continue
		}
		k.Position = body.Body.Position()
		k.Velocity = body.Body.Velocity()
	}
}

func (pw *World) flushContacts(w *ecs.World) {
	for e := range pw.bodies {
		contacts, ok := ecs.Get(w, e, component.ContactsComponent.Kind())
		if !ok {
			continue
		}
		contacts.Items = append(contacts.Items, pw.contacts[e]...)
	}
}

func (pw *World) cleanupEntities(w *ecs.World) {
	for e, body := range pw.bodies {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if body.Shape != nil {
			pw.space.RemoveShape(body.Shape)
			delete(pw.owners, body.Shape)
		}
		if body.Body != nil {
			pw.space.RemoveBody(body.Body)
		}
		delete(pw.bodies, e)
		delete(pw.contacts, e)
	}
}
