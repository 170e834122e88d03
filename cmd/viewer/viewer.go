package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/ecs/component"
	"github.com/milk9111/winnerpov/level"
	"github.com/milk9111/winnerpov/logging"
	"github.com/milk9111/winnerpov/sim"
	"golang.org/x/image/colornames"
)

const (
	screenWidth   = 1280
	screenHeight  = 720
	pixelsPerUnit = 32
	tickRate      = 60
)

var (
	colorLevel      = colornames.Slategray
	colorPlayer     = colornames.Mediumseagreen
	colorDashing    = colornames.Lightskyblue
	colorEnemy      = colornames.Indianred
	colorProjectile = colornames.Gold
)

type viewer struct {
	sim    *sim.Simulation
	layout level.Layout
	camera cp.Vector
	last   []ecs.Event
}

func newViewer(s *sim.Simulation, layout level.Layout) *viewer {
	return &viewer{sim: s, layout: layout, camera: layout.PlayerSpawn}
}

func (v *viewer) Update() error {
	in := v.readInput()
	events := v.sim.Tick(in, nil, 1.0/tickRate)
	for _, ev := range events {
		logging.Sim().Debug("event", "type", string(ev.Type), "entity", ev.Entity.String())
	}
	if len(events) > 0 {
		v.last = events
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		v.sim.CancelActions()
	}

	// ease the camera toward the player
	target := v.sim.Kinematic().Position
	v.camera = v.camera.Lerp(target, 0.1)
	return nil
}

func (v *viewer) readInput() component.Input {
	var in component.Input
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX++
	}
	in.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.DashPressed = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft)
	in.FastFall = ebiten.IsKeyPressed(ebiten.KeyS)
	in.Punch = inpututil.IsKeyJustPressed(ebiten.KeyJ)
	in.Uppercut = inpututil.IsKeyJustPressed(ebiten.KeyK)
	in.Shoot = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.Heavy = ebiten.IsKeyPressed(ebiten.KeyL)
	in.HeavyPressed = inpututil.IsKeyJustPressed(ebiten.KeyL)
	in.HeavyReleased = inpututil.IsKeyJustReleased(ebiten.KeyL)

	mx, my := ebiten.CursorPosition()
	player := v.toScreen(v.sim.Kinematic().Position)
	aim := cp.Vector{X: float64(mx) - player.X, Y: player.Y - float64(my)}
	if aim.LengthSq() > 1 {
		in.Aim = aim.Normalize()
	}
	return in
}

func (v *viewer) toScreen(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: (p.X-v.camera.X)*pixelsPerUnit + screenWidth/2,
		Y: screenHeight/2 - (p.Y-v.camera.Y)*pixelsPerUnit,
	}
}

func (v *viewer) drawBox(screen *ebiten.Image, center cp.Vector, w, h float64, clr color.Color) {
	tl := v.toScreen(cp.Vector{X: center.X - w/2, Y: center.Y + h/2})
	vector.DrawFilledRect(screen, float32(tl.X), float32(tl.Y), float32(w*pixelsPerUnit), float32(h*pixelsPerUnit), clr, false)
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1e, 0x1e, 0x24, 0xff})

	for _, b := range v.layout.Boxes {
		v.drawBox(screen, b.Center, b.Width, b.Height, colorLevel)
	}

	w := v.sim.World()
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.KinematicComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, k *component.Kinematic) {
		clr := colorEnemy
		if e == v.sim.Player() {
			clr = colorPlayer
			if k.Dashing {
				clr = colorDashing
			}
		}
		v.drawBox(screen, k.Position, body.Width, body.Height, clr)
	})
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.KinematicComponent.Kind(), func(_ ecs.Entity, p *component.Projectile, k *component.Kinematic) {
		c := v.toScreen(k.Position)
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(p.Radius*pixelsPerUnit), colorProjectile, true)
	})

	k := v.sim.Kinematic()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS %.0f  t=%.2f\npos (%.2f, %.2f) vel (%.2f, %.2f)\ngrounded=%v wall=%s dashing=%v charge=%.2f\nlast events: %s",
		ebiten.ActualFPS(), v.sim.Time(),
		k.Position.X, k.Position.Y, k.Velocity.X, k.Velocity.Y,
		k.Grounded, k.Wall, k.Dashing, v.sim.Charge().Intensity(),
		eventNames(v.last),
	))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func eventNames(events []ecs.Event) string {
	out := ""
	for i, ev := range events {
		if i > 0 {
			out += ", "
		}
		out += string(ev.Type)
	}
	return out
}
