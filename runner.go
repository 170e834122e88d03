package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/milk9111/winnerpov/ecs"
	"github.com/milk9111/winnerpov/level"
	"github.com/milk9111/winnerpov/logging"
	"github.com/milk9111/winnerpov/physics"
	"github.com/milk9111/winnerpov/prefabs"
	"github.com/milk9111/winnerpov/scenario"
	"github.com/milk9111/winnerpov/sim"
)

type runnerConfig struct {
	Level    string
	Player   string
	Enemy    string
	Scenario string
	Ticks    int
	Hz       float64
}

// runner drives a simulation headlessly from a scenario script.
type runner struct {
	cfg    runnerConfig
	dt     float64
	sim    *sim.Simulation
	script *scenario.Script
	log    *slog.Logger
}

func newRunner(cfg runnerConfig) (*runner, error) {
	if cfg.Hz <= 0 {
		return nil, &sim.ConfigurationError{Field: "hz", Err: fmt.Errorf("must be positive, got %v", cfg.Hz)}
	}

	playerSpec, err := prefabs.LoadPlayerSpec(cfg.Player)
	if err != nil {
		return nil, err
	}
	enemySpec, err := prefabs.LoadEnemySpec(cfg.Enemy)
	if err != nil {
		return nil, err
	}
	layout, err := level.Load(cfg.Level)
	if err != nil {
		return nil, err
	}
	script, err := scenario.Load(cfg.Scenario)
	if err != nil {
		return nil, err
	}

	pw := physics.NewWorld(playerSpec.Gravity)
	layout.Build(pw)

	s, err := sim.New(sim.Config{Player: playerSpec, Enemy: enemySpec, Spawn: layout.PlayerSpawn}, sim.Deps{Physics: pw})
	if err != nil {
		return nil, err
	}
	for _, at := range layout.EnemySpawns {
		s.SpawnEnemy(at)
	}

	logging.G().Info("level loaded", "level", layout.Name, "boxes", len(layout.Boxes), "enemies", len(layout.EnemySpawns), "scenario", script.Name)
	return &runner{cfg: cfg, dt: 1 / cfg.Hz, sim: s, script: script, log: logging.Sim()}, nil
}

func (r *runner) ticks() int {
	if r.cfg.Ticks > 0 {
		return r.cfg.Ticks
	}
	return r.script.Duration
}

// run executes the scenario as fast as possible.
func (r *runner) run(ctx context.Context) error {
	n := r.ticks()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := r.step(i); err != nil {
			return err
		}
	}
	k := r.sim.Kinematic()
	r.log.Info("scenario finished", "ticks", n, "time", r.sim.Time(), "x", k.Position.X, "y", k.Position.Y, "vx", k.Velocity.X, "vy", k.Velocity.Y)
	return nil
}

// watch loops the scenario in real time and applies player tuning edits.
func (r *runner) watch(ctx context.Context) error {
	w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scenarios"))
	if err != nil {
		return fmt.Errorf("watch %s: %w", prefabs.Dir, err)
	}
	defer w.Close()

	ticker := time.NewTicker(time.Duration(r.dt * float64(time.Second)))
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			r.reload(change)
		case err, ok := <-w.Errors:
			if ok {
				r.log.Warn("watcher error", "err", err)
			}
		case <-ticker.C:
			if err := r.step(tick); err != nil {
				return err
			}
			tick = (tick + 1) % r.ticks()
		}
	}
}

func (r *runner) reload(change prefabs.Change) {
	base := change.Name()
	if change.Removed {
		r.log.Warn("prefab removed, keeping loaded copy", "kind", change.Kind.String(), "file", base)
		return
	}
	switch {
	case change.Kind == prefabs.SpecChanged && base == filepath.Base(r.cfg.Player):
		spec, err := prefabs.LoadPlayerSpec(r.cfg.Player)
		if err == nil {
			err = r.sim.ApplyPlayerSpec(spec)
		}
		var cfgErr *sim.ConfigurationError
		if errors.As(err, &cfgErr) {
			r.log.Warn("rejected player tuning", "field", cfgErr.Field, "err", cfgErr.Err)
			return
		}
		if err != nil {
			r.log.Warn("reload player tuning", "err", err)
		}
	case change.Kind == prefabs.ScenarioChanged:
		script, err := scenario.Load(base)
		if err != nil {
			r.log.Warn("reload scenario", "file", base, "err", err)
			return
		}
		if script.Name == r.script.Name {
			r.script = script
			r.log.Info("scenario reloaded", "name", script.Name)
		}
	}
}

func (r *runner) step(tick int) error {
	k := r.sim.Kinematic()
	in, err := r.script.Input(tick, scenario.State{
		Position: k.Position,
		Velocity: k.Velocity,
		Grounded: k.Grounded,
		Wall:     k.Wall,
		Dashing:  k.Dashing,
		Charge:   r.sim.Charge().Intensity(),
	})
	if err != nil {
		return err
	}

	for _, ev := range r.sim.Tick(in, nil, r.dt) {
		r.logEvent(tick, ev)
	}
	return nil
}

func (r *runner) logEvent(tick int, ev ecs.Event) {
	attrs := []any{"tick", tick, "event", string(ev.Type), "entity", ev.Entity.String()}
	if ev.Data != nil {
		attrs = append(attrs, "data", fmt.Sprintf("%+v", ev.Data))
	}
	r.log.Info("event", attrs...)
}
