package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/milk9111/winnerpov/logging"
	"github.com/milk9111/winnerpov/prefabs"
)

func main() {
	levelName := flag.String("level", "level.yaml", "level spec in prefabs/")
	playerName := flag.String("player", "player.yaml", "player spec in prefabs/")
	enemyName := flag.String("enemy", "enemy.yaml", "enemy spec in prefabs/")
	scenarioName := flag.String("scenario", "run_jump", "scenario script in prefabs/scenarios/")
	ticks := flag.Int("ticks", 0, "ticks to run (0 uses the scenario duration)")
	hz := flag.Float64("hz", 60, "fixed tick rate")
	watch := flag.Bool("watch", false, "loop the scenario in real time and reload tuning on change")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	list := flag.Bool("list", false, "list embedded scenarios and exit")
	flag.Parse()

	logger := logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(*logLevel),
		Format: *logFormat,
	})
	logging.SetDefault(logger)

	if *list {
		for _, name := range prefabs.Scenarios() {
			fmt.Println(name)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r, err := newRunner(runnerConfig{
		Level:    *levelName,
		Player:   *playerName,
		Enemy:    *enemyName,
		Scenario: *scenarioName,
		Ticks:    *ticks,
		Hz:       *hz,
	})
	if err != nil {
		logger.Error("setup failed", "err", err)
		os.Exit(1)
	}

	if *watch {
		err = r.watch(ctx)
	} else {
		err = r.run(ctx)
	}
	if err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}
