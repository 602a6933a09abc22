package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isowalk/logging"
)

func main() {
	debug := flag.Bool("debug", false, "draw the planned path and a status line")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	worldName := flag.String("world", "world.yaml", "world spec in prefabs/ (embedded copy used when missing on disk)")
	watch := flag.Bool("watch", true, "reload prefabs/ on change")
	logLevel := flag.String("log-level", "", "log level (defaults to LOG_LEVEL or info)")
	flag.Parse()

	log := logging.New(logging.Config{Level: *logLevel})

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("isowalk")

	game, err := NewGame(*worldName, *debug, *watch, log)
	if err != nil {
		log.WithError(err).Fatal("failed to start")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("game exited")
	}
}
