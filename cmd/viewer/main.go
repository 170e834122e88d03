package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/winnerpov/level"
	"github.com/milk9111/winnerpov/logging"
	"github.com/milk9111/winnerpov/physics"
	"github.com/milk9111/winnerpov/prefabs"
	"github.com/milk9111/winnerpov/sim"
)

func main() {
	levelName := flag.String("level", "level.yaml", "level spec in prefabs/")
	playerName := flag.String("player", "player.yaml", "player spec in prefabs/")
	enemyName := flag.String("enemy", "enemy.yaml", "enemy spec in prefabs/")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logLevel := "info"
	if *debug {
		logLevel = "debug"
	}
	logging.SetDefault(logging.NewLogger(&logging.Config{Level: logging.ParseLevel(logLevel)}))

	playerSpec, err := prefabs.LoadPlayerSpec(*playerName)
	if err != nil {
		log.Fatal(err)
	}
	enemySpec, err := prefabs.LoadEnemySpec(*enemyName)
	if err != nil {
		log.Fatal(err)
	}
	layout, err := level.Load(*levelName)
	if err != nil {
		log.Fatal(err)
	}

	pw := physics.NewWorld(playerSpec.Gravity)
	layout.Build(pw)
	s, err := sim.New(sim.Config{Player: playerSpec, Enemy: enemySpec, Spawn: layout.PlayerSpawn}, sim.Deps{Physics: pw})
	if err != nil {
		log.Fatal(err)
	}
	for _, at := range layout.EnemySpawns {
		s.SpawnEnemy(at)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("winnerpov viewer")
	if err := ebiten.RunGame(newViewer(s, layout)); err != nil {
		log.Fatal(err)
	}
}
