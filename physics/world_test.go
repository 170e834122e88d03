package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func addBody(t *testing.T, w *ecs.World, at, vel cp.Vector, category uint, gravityScale float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.KinematicComponent.Kind(), &component.Kinematic{Position: at, Velocity: vel, Facing: 1}))
	require.NoError(t, ecs.Add(w, e, component.ContactsComponent.Kind(), &component.Contacts{}))
	require.NoError(t, ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: gravityScale}))
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 0.8, Height: 1.6, Category: category}))
	return e
}

func kinematicOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Kinematic {
	t.Helper()
	k, ok := ecs.Get(w, e, component.KinematicComponent.Kind())
	require.True(t, ok)
	return k
}

func contactsOf(t *testing.T, w *ecs.World, e ecs.Entity) []component.Contact {
	t.Helper()
	c, ok := ecs.Get(w, e, component.ContactsComponent.Kind())
	require.True(t, ok)
	return c.Items
}

func TestBodyRestsOnFloor(t *testing.T) {
	w := ecs.NewWorld()
	pw := NewWorld(25)
	pw.AddStaticBox(cp.Vector{Y: -0.5}, 20, 1)
	w.AddSystem(pw)

	e := addBody(t, w, cp.Vector{Y: 1.5}, cp.Vector{}, component.CategoryPlayer, 1)
	for i := 0; i < 90; i++ {
		w.Update(dt)
	}

	k := kinematicOf(t, w, e)
	assert.InDelta(t, 0.8, k.Position.Y, 0.1, "the body settles on top of the floor")

	var ground bool
	for _, c := range contactsOf(t, w, e) {
		if c.Normal.Y > 0.5 {
			ground = true
		}
	}
	assert.True(t, ground, "floor contacts push up")
}

func TestLeavingFloorRecordsNoContact(t *testing.T) {
	w := ecs.NewWorld()
	pw := NewWorld(25)
	pw.AddStaticBox(cp.Vector{Y: -0.5}, 20, 1)
	w.AddSystem(pw)

	e := addBody(t, w, cp.Vector{Y: 1.5}, cp.Vector{}, component.CategoryPlayer, 1)
	for i := 0; i < 90; i++ {
		w.Update(dt)
	}
	c, _ := ecs.Get(w, e, component.ContactsComponent.Kind())
	require.NotEmpty(t, c.Items, "resting on the floor")
	c.Items = nil

	kinematicOf(t, w, e).Velocity.Y = 10
	for i := 0; i < 3; i++ {
		w.Update(dt)
		for _, contact := range contactsOf(t, w, e) {
			assert.LessOrEqual(t, contact.Normal.Y, 0.5, "tick %d: the floor is not reported while lifting off", i)
		}
	}
	assert.Greater(t, kinematicOf(t, w, e).Velocity.Y, 8.0)
}

func TestWallContactNormal(t *testing.T) {
	w := ecs.NewWorld()
	pw := NewWorld(25)
	pw.AddStaticBox(cp.Vector{X: 2, Y: 5}, 1, 10)
	w.AddSystem(pw)

	e := addBody(t, w, cp.Vector{X: 1, Y: 5}, cp.Vector{X: 5}, component.CategoryPlayer, 0)
	for i := 0; i < 10; i++ {
		kinematicOf(t, w, e).Velocity.X = 5
		w.Update(dt)
	}

	var wall bool
	for _, c := range contactsOf(t, w, e) {
		if c.Normal.X < -0.8 {
			wall = true
		}
	}
	assert.True(t, wall, "a wall on the right pushes toward -X")
	assert.Less(t, kinematicOf(t, w, e).Position.X, 1.5)
}

func TestDashPassesThroughEnemies(t *testing.T) {
	w := ecs.NewWorld()
	pw := NewWorld(25)
	w.AddSystem(pw)

	player := addBody(t, w, cp.Vector{Y: 5}, cp.Vector{X: 20}, component.CategoryPlayer, 0)
	enemy := addBody(t, w, cp.Vector{X: 2, Y: 5}, cp.Vector{}, component.CategoryEnemy, 0)
	kinematicOf(t, w, player).Dashing = true

	for i := 0; i < 10; i++ {
		w.Update(dt)
	}

	assert.Greater(t, kinematicOf(t, w, player).Position.X, 2.8)
	assert.InDelta(t, 2, kinematicOf(t, w, enemy).Position.X, 1e-6)
}

func TestRaycast(t *testing.T) {
	pw := NewWorld(25)
	pw.AddStaticBox(cp.Vector{Y: -0.5}, 20, 1)

	hit, ok := pw.Raycast(cp.Vector{Y: 5}, cp.Vector{Y: -5})
	require.True(t, ok)
	assert.InDelta(t, 0, hit.Y, 1e-6)

	_, ok = pw.Raycast(cp.Vector{Y: 5}, cp.Vector{Y: 3})
	assert.False(t, ok)
}

func TestDestroyedEntityLeavesSpace(t *testing.T) {
	w := ecs.NewWorld()
	pw := NewWorld(25)
	w.AddSystem(pw)

	e := addBody(t, w, cp.Vector{Y: 5}, cp.Vector{}, component.CategoryEnemy, 1)
	w.Update(dt)
	require.Len(t, pw.bodies, 1)

	ecs.DestroyEntity(w, e)
	w.Update(dt)
	assert.Empty(t, pw.bodies)
	assert.Empty(t, pw.owners)
}
