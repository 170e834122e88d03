package scenario

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/ecs/component"
	"github.com/milk9111/winnerpov/prefabs"
)

// A scenario script defines `input := func(tick, state) { ... }` returning a
// map of input fields, plus optional `name` and `duration` (ticks) globals.
const dispatchScript = `
__out := undefined
if __tick >= 0 {
	__out = input(__tick, __state)
}
`

const defaultDuration = 120

// State is the view of the player a script may branch on.
type State struct {
	Position cp.Vector
	Velocity cp.Vector
	Grounded bool
	Wall     component.WallSide
	Dashing  bool
	Charge   float64
}

// Script is a compiled scenario. It is not safe for concurrent use.
type Script struct {
	Name     string
	Duration int

	compiled *tengo.Compiled
}

// Load compiles the named scenario from the prefab scenarios directory.
func Load(name string) (*Script, error) {
	src, err := prefabs.LoadScenario(name)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", name, err)
	}
	s, err := Compile(name, src)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func Compile(name string, src []byte) (*Script, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = script.Add("__tick", -1)
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scenario: compile %s: %w", name, err)
	}

	s := &Script{Name: name, Duration: defaultDuration, compiled: compiled}
	// A run with a negative tick only evaluates the globals.
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("scenario: init %s: %w", name, err)
	}
	if !compiled.IsDefined("input") {
		return nil, fmt.Errorf("scenario: %s does not define input", name)
	}
	if compiled.IsDefined("name") {
		if n := strings.TrimSpace(compiled.Get("name").String()); n != "" {
			s.Name = n
		}
	}
	if compiled.IsDefined("duration") {
		if d := compiled.Get("duration").Int(); d > 0 {
			s.Duration = d
		}
	}
	return s, nil
}

// Input runs the script for one tick and returns the input snapshot it produced.
func (s *Script) Input(tick int, st State) (component.Input, error) {
	if s == nil || s.compiled == nil {
		return component.Input{}, fmt.Errorf("scenario: nil script")
	}
	if err := s.compiled.Set("__tick", tick); err != nil {
		return component.Input{}, err
	}
	if err := s.compiled.Set("__state", stateMap(st)); err != nil {
		return component.Input{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return component.Input{}, fmt.Errorf("scenario: %s tick %d: %w", s.Name, tick, err)
	}
	return inputFromMap(s.compiled.Get("__out").Map()), nil
}

func stateMap(st State) map[string]any {
	return map[string]any{
		"x":        st.Position.X,
		"y":        st.Position.Y,
		"vx":       st.Velocity.X,
		"vy":       st.Velocity.Y,
		"grounded": st.Grounded,
		"wall":     st.Wall.String(),
		"dashing":  st.Dashing,
		"charge":   st.Charge,
	}
}

func inputFromMap(m map[string]any) component.Input {
	in := component.Input{
		MoveX:         number(m["move_x"]),
		Jump:          flag(m["jump"]),
		JumpPressed:   flag(m["jump_pressed"]),
		DashPressed:   flag(m["dash_pressed"]),
		FastFall:      flag(m["fast_fall"]),
		Punch:         flag(m["punch"]),
		Uppercut:      flag(m["uppercut"]),
		Shoot:         flag(m["shoot"]),
		Heavy:         flag(m["heavy"]),
		HeavyPressed:  flag(m["heavy_pressed"]),
		HeavyReleased: flag(m["heavy_released"]),
	}
	if aim, ok := m["aim"].(map[string]any); ok {
		in.Aim = cp.Vector{X: number(aim["x"]), Y: number(aim["y"])}
	}
	if in.MoveX > 1 {
		in.MoveX = 1
	} else if in.MoveX < -1 {
		in.MoveX = -1
	}
	return in
}

func number(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

func flag(v any) bool {
	b, _ := v.(bool)
	return b
}
