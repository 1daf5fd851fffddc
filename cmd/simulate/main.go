// Command simulate runs the reference agent against the stub host and writes
// the host calls it made to a trace parquet file.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/brensch/snekarena/agent"
	"github.com/brensch/snekarena/agentlog"
	"github.com/brensch/snekarena/hoststub"
	"github.com/brensch/snekarena/sdk"
	"github.com/brensch/snekarena/trace"
)

func main() {
	width := flag.Uint("width", 15, "Arena width")
	height := flag.Uint("height", 15, "Arena height")
	ticks := flag.Int("ticks", 200, "Maximum number of ticks to play")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for food spawning and rand")
	minFood := flag.Int("food", 3, "Minimum food on the arena")
	cycles := flag.Uint("cycles", 1000, "CPU cycles per tick")
	autoMove := flag.Bool("auto-move", false, "Move snakes that end a tick without moving instead of killing them")
	outDir := flag.String("out-dir", "traces", "Output directory for trace files")
	verbose := flag.Bool("v", false, "Print the arena after every tick")
	flag.Parse()

	rec := trace.NewRecorder()
	cfg := hoststub.DefaultConfig()
	cfg.Width = uint32(*width)
	cfg.Height = uint32(*height)
	cfg.CyclesPerTick = uint32(*cycles)
	cfg.Seed = *seed
	cfg.Start = hoststub.Point{X: int32(*width / 2), Y: int32(*height / 2)}
	cfg.AutoMove = *autoMove
	cfg.SpawnFood = true
	cfg.Food.MinimumFood = *minFood
	cfg.Sink = rec
	host := hoststub.New(cfg)

	client := sdk.New(host)
	logger := slog.New(agentlog.NewHandler(client, &slog.HandlerOptions{Level: slog.LevelInfo}))
	greedy := agent.New(client, agent.DefaultConfig(), logger)

	log.Printf("Simulating %dx%d arena for up to %d ticks (seed=%d)", *width, *height, *ticks, *seed)

	played := 0
	for played < *ticks && !host.Dead() {
		d := greedy.Step()
		played++
		if *verbose {
			fmt.Printf("Tick %3d | %-5s safe=%v leap=%v split=%v\n", d.Tick, d.Direction, d.Safe, d.Leapt, d.Split)
			fmt.Print(host.Render())
		}
	}

	self := host.Self()
	if host.Dead() {
		log.Printf("Snake %d died after %d ticks: %s (%s)", self.ID, played, host.Death(), host.DeathNote())
	} else {
		log.Printf("Snake %d survived %d ticks: health=%d length=%d", self.ID, played, self.Health, len(self.Body))
	}
	for _, m := range host.Messages() {
		log.Printf("  [tick %d] snake %d: %s", m.Tick, m.SnakeID, m.Text)
	}

	path, err := trace.WriteGame(*outDir, fmt.Sprintf("%d", *seed), rec.Events())
	if err != nil {
		log.Fatalf("Failed to write trace: %v", err)
	}
	log.Printf("Trace written to: %s (%d calls)", path, rec.Len())

	if host.Dead() && host.Death() != hoststub.DeathCollision && host.Death() != hoststub.DeathStarved {
		os.Exit(1)
	}
}
