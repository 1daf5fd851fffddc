// Package sdk is the typed interface a snake program uses to act on and
// observe the arena.
//
// A tick is the game's time step. Within a tick the host grants a fixed
// budget of CPU cycles; actions take effect on the exact cycle they are
// called, so a snake chooses when during its budget to move. Every snake must
// move exactly once per tick. Running out of cycles without moving, or
// misusing Leap, kills the snake ("exhaustion"). The host enforces these rules;
// the client only exposes the clock needed to respect them.
//
// Nothing is cached. Every query goes to the host and reflects its state at
// the instant of the call.
package sdk

import (
	"fmt"
	"log/slog"

	"github.com/brensch/snekarena/raw"
)

const (
	// MinSplitLength is the shortest snake that may split.
	MinSplitLength = 9

	// MaxMessageLength bounds a single Speak payload.
	MaxMessageLength = 64
)

// SplitResult tells a process which half of a split it continues as.
type SplitResult uint32

const (
	SplitFront = SplitResult(raw.SplitResultFront)
	SplitBack  = SplitResult(raw.SplitResultBack)
)

func (r SplitResult) String() string {
	switch r {
	case SplitFront:
		return "front"
	case SplitBack:
		return "back"
	default:
		return fmt.Sprintf("split_result(%d)", uint32(r))
	}
}

// ArenaMetadata holds values that are constant for one game.
type ArenaMetadata struct {
	Width            uint32
	Height           uint32
	CPUCyclesPerTick uint32
}

// Identity is a snapshot of who the calling snake is. ID changes once, in the
// process that continues as the back half of a split; re-query after Split.
type Identity struct {
	ID     uint32
	TeamID uint32
}

// SelfState is a snapshot of the calling snake.
type SelfState struct {
	Length      uint32
	Health      uint32
	Pos         Position
	Tick        uint64
	CycleInTick uint64
}

// Neighbor is a cell adjacent to the head.
type Neighbor struct {
	Dir Direction
	Pos Position
	Obs Observation
}

type Client struct {
	host raw.Host
	log  *slog.Logger
}

type Option func(*Client)

// WithLogger logs every action at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(host raw.Host, opts ...Option) *Client {
	c := &Client{
		host: host,
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetDirection sets the heading used by the next Move or Leap. Until it is
// called the host's default heading applies.
func (c *Client) SetDirection(d Direction) {
	c.log.Debug("set_direction", "direction", d.String())
	c.host.SetDirection(uint32(d))
}

// Move moves the head one cell in the current heading, on the cycle it is
// called. Call it exactly once per tick.
func (c *Client) Move() {
	c.log.Debug("move")
	c.host.Move()
}

// Leap is an extra move. It may only be called in a tick that has already
// moved, and never in the tick after a leap, so at most once per two ticks.
// The tail segment is consumed and dropped as food. Misuse is fatal.
func (c *Client) Leap() {
	c.log.Debug("leap")
	c.host.Leap()
}

// SleepRemainingTick yields the rest of the current tick's cycle budget.
func (c *Client) SleepRemainingTick() {
	c.log.Debug("sleep_remaining_tick")
	c.host.SleepRemainingTick()
}

// Sleep yields for the given number of host-metered CPU cycles.
func (c *Client) Sleep(cycles uint32) {
	c.log.Debug("sleep", "cycles", cycles)
	c.host.Sleep(cycles)
}

// Split divides the snake in three: the front stays, the middle is lost as
// poisonous food, and the back becomes a new snake. The caller must hold
// Length() >= MinSplitLength; the host kills snakes that split shorter.
//
// Both halves keep running this program. The result is derived by comparing
// the snake id before and after the call. A split attempted too soon after a
// split or leap returns an error matching ErrCoolDown.
func (c *Client) Split() (SplitResult, error) {
	before := c.host.ID()
	c.log.Debug("split", "id", before)
	if err := statusError("split", c.host.Split()); err != nil {
		return SplitFront, err
	}
	if c.host.ID() == before {
		return SplitFront, nil
	}
	return SplitBack, nil
}

// Suicide kills the snake. Every occupied cell turns into poisonous food.
func (c *Client) Suicide() {
	c.log.Debug("suicide")
	c.host.Suicide()
}

// Speak emits a short diagnostic message. Long messages are truncated and
// messages beyond the per-tick allowance are dropped; neither is reported.
func (c *Client) Speak(msg []byte) {
	if len(msg) > MaxMessageLength {
		msg = msg[:MaxMessageLength]
	}
	c.host.Speak(msg)
}

func (c *Client) Speakf(format string, args ...any) {
	c.Speak(fmt.Appendf(nil, format, args...))
}

func (c *Client) ArenaWidth() uint32  { return c.host.ArenaWidth() }
func (c *Client) ArenaHeight() uint32 { return c.host.ArenaHeight() }

// ArenaSize returns (width, height).
func (c *Client) ArenaSize() (uint32, uint32) {
	return c.ArenaWidth(), c.ArenaHeight()
}

func (c *Client) CPUCyclesPerTick() uint32 { return c.host.CPUCyclesPerTick() }

func (c *Client) Arena() ArenaMetadata {
	return ArenaMetadata{
		Width:            c.host.ArenaWidth(),
		Height:           c.host.ArenaHeight(),
		CPUCyclesPerTick: c.host.CPUCyclesPerTick(),
	}
}

// CurrentPos returns the position of the head.
func (c *Client) CurrentPos() Position {
	x, y := c.host.CurrentPos()
	return Position{X: x, Y: y}
}

// CurrentTick starts at 0.
func (c *Client) CurrentTick() uint64 { return c.host.CurrentTick() }

// CurrentCPUCycleInTick is the number of cycles already spent this tick.
func (c *Client) CurrentCPUCycleInTick() uint64 { return c.host.CurrentCPUCycleInTick() }

func (c *Client) CyclesRemainingInTick() uint64 {
	budget := uint64(c.host.CPUCyclesPerTick())
	used := c.host.CurrentCPUCycleInTick()
	if used >= budget {
		return 0
	}
	return budget - used
}

func (c *Client) ID() uint32     { return c.host.ID() }
func (c *Client) TeamID() uint32 { return c.host.TeamID() }

func (c *Client) Identity() Identity {
	return Identity{ID: c.host.ID(), TeamID: c.host.TeamID()}
}

func (c *Client) Length() uint32 { return c.host.Length() }

// Health is in [0,100] and drops by one each tick; zero is death.
func (c *Client) Health() uint32 { return c.host.Health() }

// CanSplit reports whether the snake is long enough to split.
func (c *Client) CanSplit() bool { return c.host.Length() >= MinSplitLength }

func (c *Client) Self() SelfState {
	x, y := c.host.CurrentPos()
	return SelfState{
		Length:      c.host.Length(),
		Health:      c.host.Health(),
		Pos:         Position{X: x, Y: y},
		Tick:        c.host.CurrentTick(),
		CycleInTick: c.host.CurrentCPUCycleInTick(),
	}
}

// Rand returns a value in [min, max) that is deterministic in the game seed
// and the current game state.
func (c *Client) Rand(min, max uint32) uint32 { return c.host.Rand(min, max) }

// TryObserve reads one cell and reports host data that does not decode.
func (c *Client) TryObserve(x, y uint32) (Observation, error) {
	var slots [raw.ObservationSlots]uint32
	c.host.Observe(x, y, &slots)
	return DecodeObservation(slots)
}

// Observe reads one cell. It panics with a *DecodeError if the host reports
// a value that does not decode.
func (c *Client) Observe(x, y uint32) Observation {
	obs, err := c.TryObserve(x, y)
	if err != nil {
		panic(err)
	}
	return obs
}

func (c *Client) ObserveAt(p Position) Observation {
	return c.Observe(p.X, p.Y)
}

// Neighbors observes the in-arena cells adjacent to the head, in direction
// order.
func (c *Client) Neighbors() []Neighbor {
	w, h := c.ArenaSize()
	head := c.CurrentPos()
	out := make([]Neighbor, 0, len(Directions))
	for _, d := range Directions {
		p, ok := head.Step(d, w, h)
		if !ok {
			continue
		}
		out = append(out, Neighbor{Dir: d, Pos: p, Obs: c.ObserveAt(p)})
	}
	return out
}
