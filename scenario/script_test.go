package scenario

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/winnerpov/ecs/component"
	"github.com/milk9111/winnerpov/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inlineScript = `
name := "inline"
duration := 30

input := func(tick, state) {
	if tick < 5 {
		return {move_x: 2, jump: true, aim: {x: 1, y: -1}}
	}
	if state.grounded {
		return {dash_pressed: true, move_x: -0.5}
	}
	if state.wall == "left" {
		return {jump_pressed: true}
	}
	return {}
}
`

func TestCompileReadsGlobals(t *testing.T) {
	s, err := Compile("inline.tengo", []byte(inlineScript))
	require.NoError(t, err)
	assert.Equal(t, "inline", s.Name)
	assert.Equal(t, 30, s.Duration)
}

func TestCompileDefaults(t *testing.T) {
	s, err := Compile("bare", []byte(`input := func(tick, state) { return {} }`))
	require.NoError(t, err)
	assert.Equal(t, "bare", s.Name)
	assert.Equal(t, defaultDuration, s.Duration)
}

func TestScriptInput(t *testing.T) {
	s, err := Compile("inline.tengo", []byte(inlineScript))
	require.NoError(t, err)

	tests := []struct {
		name  string
		tick  int
		state State
		want  component.Input
	}{
		{
			name: "early_ticks_clamp_move",
			tick: 0,
			want: component.Input{MoveX: 1, Jump: true, Aim: cp.Vector{X: 1, Y: -1}},
		},
		{
			name:  "grounded_branch",
			tick:  6,
			state: State{Grounded: true},
			want:  component.Input{MoveX: -0.5, DashPressed: true},
		},
		{
			name:  "wall_branch",
			tick:  6,
			state: State{Wall: component.WallLeft},
			want:  component.Input{JumpPressed: true},
		},
		{
			name: "empty_map",
			tick: 6,
			want: component.Input{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Input(tt.tick, tt.state)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"missing_input", `x := 1`, "does not define input"},
		{"syntax", `input := func(tick, state) {`, "scenario: compile"},
		{"runtime", `input := func(tick, state) { return {} }; y := 1 / 0`, "scenario: init"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.name, []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScriptRuntimeErrorIsReported(t *testing.T) {
	s, err := Compile("boom", []byte(`input := func(tick, state) { return {move_x: 1 / (tick - 3)} }`))
	require.NoError(t, err)

	_, err = s.Input(0, State{})
	require.NoError(t, err)
	_, err = s.Input(3, State{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick 3")
}

func TestEmbeddedScenariosCompile(t *testing.T) {
	names := prefabs.Scenarios()
	require.NotEmpty(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			s, err := Load(name)
			require.NoError(t, err)
			assert.Positive(t, s.Duration)
			for tick := 0; tick < s.Duration; tick += 7 {
				_, err := s.Input(tick, State{Grounded: tick%2 == 0})
				require.NoError(t, err)
			}
		})
	}
}

func TestNilScript(t *testing.T) {
	var s *Script
	_, err := s.Input(0, State{})
	assert.Error(t, err)
}
