// Command swarmsim runs the rat swarm without a window, driving the target
// from a script or noise path, and records per-tick stats and per-agent
// failures to sqlite.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/milk9111/ratswarm/diagnostics"
	"github.com/milk9111/ratswarm/ecs"
	"github.com/milk9111/ratswarm/ecs/entity"
	"github.com/milk9111/ratswarm/ecs/system"
	"github.com/milk9111/ratswarm/prefabs"
	"github.com/milk9111/ratswarm/target"
)

func main() {
	ticks := flag.Int("ticks", 3600, "ticks to simulate")
	rats := flag.Int("rats", 0, "population override (0 uses prefabs/swarm.yaml)")
	ramp := flag.String("ramp", "", "ramp prefab in prefabs/ramps/")
	targetSource := flag.String("target", "script", "target source: script, noise or fixed")
	script := flag.String("script", "", "tengo script in prefabs/scripts/")
	workers := flag.Int("workers", 0, "goroutines for the steering phase (0 uses prefabs/swarm.yaml)")
	dbPath := flag.String("db", "swarmsim.db", "sqlite file for run diagnostics")
	label := flag.String("label", "", "free-form run label stored with the run")
	every := flag.Int("every", 600, "log a progress line every N ticks (0 disables)")
	flag.Parse()

	swarmSpec, err := prefabs.LoadSwarmSpec()
	if err != nil {
		log.Fatal(err)
	}
	ratSpec, err := prefabs.LoadRatSpec()
	if err != nil {
		log.Fatal(err)
	}
	swarmSpec.Target.Source = *targetSource
	if *script != "" {
		swarmSpec.Target.Script = *script
	}
	if *workers > 0 {
		swarmSpec.Workers = *workers
	}

	src, err := target.FromSpec(swarmSpec.Target, nil)
	if err != nil {
		log.Fatal(err)
	}

	store, err := diagnostics.OpenSQLite(*dbPath, *label)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	w := ecs.NewWorld()
	spawned, err := entity.LoadSwarmToWorld(w, *swarmSpec, ratSpec, *ramp, *rats)
	if err != nil {
		log.Fatal(err)
	}

	latest := &diagnostics.Latest{}
	swarmSys := system.NewSwarmSystem(swarmSpec.GridCell, swarmSpec.Workers, diagnostics.Multi{store, latest})
	scheduler := ecs.NewScheduler(
		system.NewTargetSystem(src),
		swarmSys,
		system.NewPhysicsSystem(),
	)

	log.Printf("swarmsim: run %s: %s rats, %s ticks, target %s, %d workers",
		store.RunID(), humanize.Comma(int64(len(spawned))), humanize.Comma(int64(*ticks)), src.Name(), swarmSpec.Workers)

	start := time.Now()
	failures := 0
	for i := 1; i <= *ticks; i++ {
		scheduler.Update(w)
		for _, evt := range w.Events().Drain() {
			if evt.Type == ecs.EventAgentFailed {
				failures++
			}
		}
		if *every <= 0 || i%*every != 0 {
			continue
		}
		if last, ok := latest.Last(); ok {
			log.Printf("swarmsim: tick %s: mean speed %.2f, mean ramp %.2f, %s failures",
				humanize.Comma(int64(i)), last.MeanSpeed, last.MeanRamp, humanize.Comma(int64(failures)))
		}
	}

	elapsed := time.Since(start)
	agentTicks := int64(len(spawned)) * int64(*ticks)
	perSec := float64(agentTicks) / elapsed.Seconds()
	log.Printf("swarmsim: done in %s: %s agent-ticks (%s/s), %s failures, written to %s",
		elapsed.Round(time.Millisecond), humanize.Comma(agentTicks), humanize.SIWithDigits(perSec, 1, ""), humanize.Comma(int64(failures)), *dbPath)
}
