package hoststub

import (
	"math/rand"

	"github.com/brensch/snekarena/raw"
	"github.com/brensch/snekarena/trace"
)

const (
	MaxMessageLength   = 64
	MaxMessagesPerTick = 4
	MinSplitLength     = 9
	MaxHealth          = 100
)

// DeathCause explains why the controlled snake stopped. The empty value
// means it is alive.
type DeathCause string

const (
	Alive             DeathCause = ""
	DeathExhaustion   DeathCause = "exhaustion"
	DeathCollision    DeathCause = "collision"
	DeathStarved      DeathCause = "starved"
	DeathIllegalSplit DeathCause = "illegal_split"
	DeathInvalidCall  DeathCause = "invalid_call"
	DeathSuicide      DeathCause = "suicide"
)

type EffectKind string

const (
	EffectLostMiddle EffectKind = "lost_middle"
	EffectSpawned    EffectKind = "spawned"
	EffectLeapDrop   EffectKind = "leap_drop"
	EffectCorpse     EffectKind = "corpse"
)

// Effect is a change to the arena caused by an action.
type Effect struct {
	Tick    uint64
	Kind    EffectKind
	SnakeID uint32
	Cells   []Point
}

type Message struct {
	Tick    uint64
	SnakeID uint32
	Text    string
}

type Config struct {
	Width         uint32
	Height        uint32
	CyclesPerTick uint32
	// CallCost is charged for every host call.
	CallCost uint32
	Seed     uint64

	SnakeID uint32
	TeamID  uint32
	Start   Point
	Length  uint32
	Health  uint32
	// Body, when set, replaces the stacked Start x Length layout. Body[0] is
	// the head.
	Body []Point

	// DefaultHeading applies until SetDirection is called.
	DefaultHeading uint32
	// AutoMove moves the snake at the end of a tick it did not move in,
	// instead of killing it.
	AutoMove bool
	// ContinueAsBack makes the controlled process continue as the back half
	// after a split.
	ContinueAsBack bool
	// SplitCoolDown is the number of ticks after a split or leap during which
	// Split reports raw.ErrCoolDown.
	SplitCoolDown uint64

	PoisonFoodHealth int32
	LeapFoodHealth   int32
	SpawnFood        bool
	Food             FoodSettings

	Sink trace.Sink
}

func DefaultConfig() Config {
	return Config{
		Width:            10,
		Height:           10,
		CyclesPerTick:    1000,
		CallCost:         1,
		Seed:             1,
		SnakeID:          1,
		TeamID:           1,
		Start:            Point{X: 5, Y: 5},
		Length:           3,
		Health:           MaxHealth,
		DefaultHeading:   raw.DirectionNorth,
		SplitCoolDown:    2,
		PoisonFoodHealth: -10,
		LeapFoodHealth:   5,
		Food:             DefaultFoodSettings,
	}
}

// Host is a single-snake stub of the arena host. It is not safe for
// concurrent use; a snake program is single threaded.
type Host struct {
	cfg   Config
	arena *Arena

	selfID  uint32
	heading uint32
	tick    uint64
	cycle   uint64
	moved   bool

	leaped   bool
	leapTick uint64
	cooled   bool
	coolTick uint64

	spoken    int
	dropped   int
	messages  []Message
	effects   []Effect
	randCalls uint64
	nextID    uint32

	death    DeathCause
	deathMsg string

	rawCells map[Point][raw.ObservationSlots]uint32
	rng      *rand.Rand
}

var _ raw.Host = (*Host)(nil)

func New(cfg Config) *Host {
	if cfg.Width == 0 || cfg.Height == 0 {
		d := DefaultConfig()
		cfg.Width, cfg.Height = d.Width, d.Height
	}
	if cfg.CyclesPerTick == 0 {
		cfg.CyclesPerTick = DefaultConfig().CyclesPerTick
	}
	if cfg.Length == 0 {
		cfg.Length = 1
	}
	if cfg.Health == 0 || cfg.Health > MaxHealth {
		cfg.Health = MaxHealth
	}

	body := append([]Point(nil), cfg.Body...)
	if len(body) == 0 {
		body = make([]Point, cfg.Length)
		for i := range body {
			body[i] = cfg.Start
		}
	}

	return &Host{
		cfg: cfg,
		arena: &Arena{
			Width:  int32(cfg.Width),
			Height: int32(cfg.Height),
			Snakes: []Snake{{ID: cfg.SnakeID, TeamID: cfg.TeamID, Health: int32(cfg.Health), Body: body}},
			Poison: make(map[Point]uint32),
		},
		selfID:   cfg.SnakeID,
		heading:  cfg.DefaultHeading,
		nextID:   cfg.SnakeID + 1,
		rawCells: make(map[Point][raw.ObservationSlots]uint32),
		rng:      rand.New(rand.NewSource(int64(cfg.Seed))),
	}
}

// Arena setup, used before the snake program starts.

func (h *Host) PlaceFood(p Point, health int32) {
	if i := h.arena.foodAt(p); i >= 0 {
		h.arena.Food[i].Health = health
		return
	}
	h.arena.Food = append(h.arena.Food, Food{Pos: p, Health: health})
}

func (h *Host) SetPoison(p Point, damage uint32) {
	if damage == 0 {
		delete(h.arena.Poison, p)
		return
	}
	h.arena.Poison[p] = damage
}

// PlaceSnake adds an uncontrolled snake. It never moves.
func (h *Host) PlaceSnake(s Snake) {
	s.Body = append([]Point(nil), s.Body...)
	h.arena.Snakes = append(h.arena.Snakes, s)
	if s.ID >= h.nextID {
		h.nextID = s.ID + 1
	}
}

// SetRawCell overrides what observe reports for p, bypassing the arena.
func (h *Host) SetRawCell(p Point, slots [raw.ObservationSlots]uint32) {
	h.rawCells[p] = slots
}

// Inspection. None of these charge cycles.

func (h *Host) Death() DeathCause   { return h.death }
func (h *Host) DeathNote() string   { return h.deathMsg }
func (h *Host) Dead() bool          { return h.death != Alive }
func (h *Host) Heading() uint32     { return h.heading }
func (h *Host) Moved() bool         { return h.moved }
func (h *Host) Messages() []Message { return append([]Message(nil), h.messages...) }
func (h *Host) Dropped() int        { return h.dropped }
func (h *Host) Effects() []Effect   { return append([]Effect(nil), h.effects...) }
func (h *Host) Snapshot() *Arena    { return h.arena.Clone() }

// Now returns the tick and the cycle within it.
func (h *Host) Now() (tick, cycle uint64) { return h.tick, h.cycle }

// Self returns a copy of the controlled snake.
func (h *Host) Self() Snake {
	s := h.self()
	out := *s
	out.Body = append([]Point(nil), s.Body...)
	return out
}

func (h *Host) self() *Snake {
	return &h.arena.Snakes[h.arena.snakeIndex(h.selfID)]
}

func (h *Host) record(call string, result int64, note string, args ...int64) {
	if h.cfg.Sink == nil {
		return
	}
	h.cfg.Sink.Record(trace.Event{
		Tick:    int64(h.tick),
		Cycle:   int64(h.cycle),
		SnakeID: int64(h.selfID),
		Call:    call,
		Args:    args,
		Result:  result,
		Note:    note,
	})
}

// charge spends cycles, ending as many ticks as the budget overflows.
func (h *Host) charge(cycles uint64) {
	h.cycle += cycles
	for h.cycle >= uint64(h.cfg.CyclesPerTick) {
		rest := h.cycle - uint64(h.cfg.CyclesPerTick)
		h.endTick()
		h.cycle = rest
	}
}

func (h *Host) call() { h.charge(uint64(h.cfg.CallCost)) }

func (h *Host) endTick() {
	if h.death == Alive && !h.moved {
		if h.cfg.AutoMove {
			h.record("auto_move", 0, "")
			h.step()
		} else {
			h.die(DeathExhaustion, "tick ended without a move")
		}
	}

	if h.death == Alive {
		s := h.self()
		s.Health--
		if dmg, ok := h.arena.Poison[s.Head()]; ok {
			s.Health -= int32(dmg)
		}
		if s.Health <= 0 {
			h.die(DeathStarved, "health reached zero")
		}
	}

	if h.cfg.SpawnFood {
		applyFoodRules(h.arena, h.tick, h.rng, h.cfg.Food, h.cfg.Seed)
	}

	h.tick++
	h.cycle = 0
	h.moved = false
	h.spoken = 0
}

func (h *Host) die(cause DeathCause, note string) {
	if h.death != Alive {
		return
	}
	h.death = cause
	h.deathMsg = note
	h.self().Health = 0
	h.record("death", 0, string(cause)+": "+note)
}

func clampHealth(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > MaxHealth {
		return MaxHealth
	}
	return v
}
