package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/ratswarm/common"
	"github.com/milk9111/ratswarm/diagnostics"
	"github.com/milk9111/ratswarm/ecs"
	"github.com/milk9111/ratswarm/ecs/entity"
	"github.com/milk9111/ratswarm/ecs/render"
	"github.com/milk9111/ratswarm/ecs/system"
	"github.com/milk9111/ratswarm/prefabs"
	"github.com/milk9111/ratswarm/target"
)

type gameOptions struct {
	Debug   bool
	Rats    int
	Ramp    string
	Target  string
	Script  string
	Workers int
	DBPath  string
}

type Game struct {
	frames int
	debug  bool
	showUI bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	renderer  *render.RenderSystem
	tuning    *system.TuningSystem
	targets   *system.TargetSystem
	swarm     *system.SwarmSystem

	targetSpec prefabs.TargetSpec
	cursor     *cursorSource
	watcher    *prefabs.Watcher
	store      *diagnostics.SQLite
	ui         *ebitenui.UI
}

func NewGame(opts gameOptions) (*Game, error) {
	swarmSpec, err := prefabs.LoadSwarmSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	ratSpec, err := prefabs.LoadRatSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if opts.Target != "" {
		swarmSpec.Target.Source = opts.Target
	}
	if opts.Script != "" {
		swarmSpec.Target.Script = opts.Script
	}
	if opts.Workers > 0 {
		swarmSpec.Workers = opts.Workers
	}

	g := &Game{
		debug:      opts.Debug,
		showUI:     true,
		world:      ecs.NewWorld(),
		targetSpec: swarmSpec.Target,
		cursor:     &cursorSource{},
	}

	rats, err := entity.LoadSwarmToWorld(g.world, *swarmSpec, ratSpec, opts.Ramp, opts.Rats)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	log.Printf("game: spawned %d rats", len(rats))

	src, err := target.FromSpec(g.targetSpec, g.cursor)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	var rec diagnostics.Recorder = diagnostics.Log{}
	if opts.DBPath != "" {
		store, err := diagnostics.OpenSQLite(opts.DBPath, "game")
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		g.store = store
		rec = diagnostics.Multi{diagnostics.Log{}, store}
		log.Printf("game: recording run %s to %s", store.RunID(), opts.DBPath)
	}

	g.tuning = system.NewTuningSystem()
	g.targets = system.NewTargetSystem(src)
	g.swarm = system.NewSwarmSystem(swarmSpec.GridCell, swarmSpec.Workers, rec)
	g.renderer = render.NewRenderSystem(opts.Debug)

	reload := system.NewHotReloadSystem(nil)
	if w, err := prefabs.NewWatcher(prefabs.DefaultDirs()...); err != nil {
		log.Printf("game: prefab hot reload disabled: %v", err)
	} else {
		g.watcher = w
		reload.Changes = w
		reload.OnScript = g.reloadScript
	}

	// Tuning applies before the swarm reads params; physics consumes the
	// velocities the swarm commits.
	g.scheduler = ecs.NewScheduler(
		reload,
		g.tuning,
		g.targets,
		g.swarm,
		system.NewPhysicsSystem(),
	)
	g.ui = NewTuningUI(g.tuning, ratSpec.Rat.Params)

	return g, nil
}

// reloadScript swaps in a recompiled target script when the one in use
// changes on disk.
func (g *Game) reloadScript(name string) {
	if g.targetSpec.Source != "script" || name != g.targetSpec.Script {
		return
	}
	src, err := target.FromSpec(g.targetSpec, g.cursor)
	if err != nil {
		log.Printf("game: script %s rejected: %v", name, err)
		return
	}
	g.targets.Source = src
	log.Printf("game: script %s reloaded", name)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.store != nil {
		_ = g.store.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showUI = !g.showUI
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
		g.renderer.Debug = g.debug
	}

	// UI runs before the world so slider changes land in this frame's
	// tuning pass.
	if g.showUI {
		g.ui.Update()
	}
	g.scheduler.Update(g.world)

	for _, evt := range g.world.Events().Drain() {
		if g.debug && evt.Type == ecs.EventAgentFailed {
			log.Printf("game: frame %d: %s failed", g.frames, evt.Data)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	if g.showUI {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
