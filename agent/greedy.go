// Package agent is a reference snake built on the sdk: each tick it moves
// toward the best adjacent cell, leaps onto food when the rules allow, and
// splits when long enough.
package agent

import (
	"errors"
	"log/slog"

	"github.com/brensch/snekarena/sdk"
)

type Config struct {
	// SpeakEvery logs a status line every N ticks. 0 disables it.
	SpeakEvery uint64
	// LeapHealth is the minimum health for leaping onto food. 0 disables leaping.
	LeapHealth uint32
	Split      bool
}

func DefaultConfig() Config {
	return Config{SpeakEvery: 10, LeapHealth: 50, Split: true}
}

// Decision is what one Step did.
type Decision struct {
	Tick      uint64
	Direction sdk.Direction
	Safe      bool
	Leapt     bool
	Split     bool
	SplitAs   sdk.SplitResult
}

type Greedy struct {
	cfg Config
	c   *sdk.Client
	log *slog.Logger

	leaped   bool
	lastLeap uint64
}

func New(c *sdk.Client, cfg Config, logger *slog.Logger) *Greedy {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Greedy{cfg: cfg, c: c, log: logger}
}

// Run plays until the host stops the program.
func (g *Greedy) Run() {
	for {
		g.Step()
	}
}

// Step plays exactly one tick and yields the rest of its budget.
func (g *Greedy) Step() Decision {
	d := Decision{Tick: g.c.CurrentTick()}

	d.Direction, d.Safe = g.choose()
	g.c.SetDirection(d.Direction)
	g.c.Move()

	if g.shouldLeap(d.Tick, d.Direction) {
		g.c.Leap()
		g.leaped = true
		g.lastLeap = d.Tick
		d.Leapt = true
	}

	if g.cfg.Split && g.c.CanSplit() {
		res, err := g.c.Split()
		switch {
		case errors.Is(err, sdk.ErrCoolDown):
			g.log.Debug("split cooling down", "tick", d.Tick)
		case err != nil:
			g.log.Warn("split failed", "err", err)
		default:
			d.Split = true
			d.SplitAs = res
			g.log.Info("split", "as", res.String(), "id", g.c.ID())
		}
	}

	if g.cfg.SpeakEvery > 0 && d.Tick%g.cfg.SpeakEvery == 0 {
		g.log.Info("status", "tick", d.Tick, "hp", g.c.Health(), "len", g.c.Length())
	}

	g.c.SleepRemainingTick()
	return d
}

// choose scores the in-arena neighbours and returns the best safe one.
// Ties are broken with the host's random stream. With no safe cell left it
// still returns a direction, since a tick without a move is fatal anyway.
func (g *Greedy) choose() (sdk.Direction, bool) {
	var best []sdk.Direction
	bestScore := 0
	for _, n := range g.c.Neighbors() {
		score, ok := cellScore(n.Obs)
		if !ok {
			continue
		}
		switch {
		case len(best) == 0 || score > bestScore:
			best = append(best[:0], n.Dir)
			bestScore = score
		case score == bestScore:
			best = append(best, n.Dir)
		}
	}
	if len(best) == 0 {
		return sdk.North, false
	}
	if len(best) == 1 {
		return best[0], true
	}
	return best[g.c.Rand(0, uint32(len(best)))], true
}

func cellScore(obs sdk.Observation) (int, bool) {
	if _, isSnake := obs.Item.Snake(); isSnake {
		return 0, false
	}
	score := -2 * int(obs.Poison)
	if f, ok := obs.Item.Food(); ok {
		score += 10 + int(f.HealthValue)
	}
	return score, true
}

func (g *Greedy) shouldLeap(tick uint64, dir sdk.Direction) bool {
	if g.cfg.LeapHealth == 0 {
		return false
	}
	if g.leaped && tick-g.lastLeap < 2 {
		return false
	}
	if g.c.Length() < 2 || g.c.Health() < g.cfg.LeapHealth {
		return false
	}
	w, h := g.c.ArenaSize()
	next, ok := g.c.CurrentPos().Step(dir, w, h)
	if !ok {
		return false
	}
	obs := g.c.ObserveAt(next)
	f, isFood := obs.Item.Food()
	return isFood && f.HealthValue > 0 && obs.Poison == 0
}
