// Package level turns a level spec into static physics geometry.
package level

import (
	"fmt"
	"math"

	perlin "github.com/aquilax/go-perlin"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/physics"
	"github.com/milk9111/winnerpov/prefabs"
)

// Box is an axis-aligned solid block, centred on Center.
type Box struct {
	Center cp.Vector
	Width  float64
	Height float64
}

// Layout is a level after generation: solid boxes and spawn points.
type Layout struct {
	Name        string
	PlayerSpawn cp.Vector
	Boxes       []Box
	EnemySpawns []cp.Vector
}

// Generate expands a level spec, including any noise terrain, into boxes.
func Generate(spec prefabs.LevelSpec) (Layout, error) {
	out := Layout{
		Name:        spec.Name,
		PlayerSpawn: cp.Vector{X: spec.PlayerSpawn.X, Y: spec.PlayerSpawn.Y},
	}
	for i, b := range spec.Boxes {
		if b.Width <= 0 || b.Height <= 0 {
			return Layout{}, fmt.Errorf("level %q: box %d has non-positive size %vx%v", spec.Name, i, b.Width, b.Height)
		}
		out.Boxes = append(out.Boxes, Box{Center: cp.Vector{X: b.X, Y: b.Y}, Width: b.Width, Height: b.Height})
	}
	if spec.Terrain != nil {
		cols, err := Terrain(*spec.Terrain)
		if err != nil {
			return Layout{}, fmt.Errorf("level %q: %w", spec.Name, err)
		}
		out.Boxes = append(out.Boxes, cols...)
	}
	for _, e := range spec.Enemies {
		out.EnemySpawns = append(out.EnemySpawns, cp.Vector{X: e.X, Y: e.Y})
	}
	return out, nil
}

// Terrain builds a strip of ground columns whose tops follow 1D perlin noise.
// Column bottoms sit at y = 0. The same seed always yields the same strip.
func Terrain(t prefabs.TerrainSpec) ([]Box, error) {
	if t.Columns <= 0 {
		return nil, nil
	}
	if t.ColumnWidth <= 0 {
		return nil, fmt.Errorf("terrain column_width must be positive, got %v", t.ColumnWidth)
	}

	p := perlin.NewPerlin(2, 2, 3, t.Seed)
	boxes := make([]Box, 0, t.Columns)
	for i := 0; i < t.Columns; i++ {
		h := t.BaseHeight + p.Noise1D(float64(i)*t.Frequency)*t.Amplitude
		// snap to quarter units so neighbouring tops form clean steps
		h = math.Max(0.25, math.Round(h*4)/4)
		x := t.StartX + (float64(i)+0.5)*t.ColumnWidth
		boxes = append(boxes, Box{
			Center: cp.Vector{X: x, Y: h / 2},
			Width:  t.ColumnWidth,
			Height: h,
		})
	}
	return boxes, nil
}

// Build adds every box of the layout to the physics world.
func (l Layout) Build(pw *physics.World) {
	for _, b := range l.Boxes {
		pw.AddStaticBox(b.Center, b.Width, b.Height)
	}
}

// Load reads a level spec by name and generates its layout.
func Load(name string) (Layout, error) {
	spec, err := prefabs.LoadLevelSpec(name)
	if err != nil {
		return Layout{}, err
	}
	return Generate(spec)
}
