package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ratswarm/common"
)

func main() {
	debug := flag.Bool("debug", false, "draw steering gizmos and stats")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	rats := flag.Int("rats", 0, "population override (0 uses prefabs/swarm.yaml)")
	ramp := flag.String("ramp", "", "ramp prefab in prefabs/ramps/ (basename, .yaml optional)")
	targetSource := flag.String("target", "", "target source: cursor, script, noise or fixed")
	script := flag.String("script", "", "tengo script in prefabs/scripts/ for -target=script")
	workers := flag.Int("workers", 0, "goroutines for the steering phase (0 uses prefabs/swarm.yaml)")
	dbPath := flag.String("db", "", "record agent failures to this sqlite file")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("ratswarm")
	ebiten.SetTPS(common.TickRate)

	game, err := NewGame(gameOptions{
		Debug:   *debug,
		Rats:    *rats,
		Ramp:    *ramp,
		Target:  *targetSource,
		Script:  *script,
		Workers: *workers,
		DBPath:  *dbPath,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
