package hoststub

import (
	"github.com/brensch/snekarena/raw"
)

func delta(heading uint32) (Point, bool) {
	switch heading {
	case raw.DirectionNorth:
		return Point{X: 0, Y: -1}, true
	case raw.DirectionEast:
		return Point{X: 1, Y: 0}, true
	case raw.DirectionSouth:
		return Point{X: 0, Y: 1}, true
	case raw.DirectionWest:
		return Point{X: -1, Y: 0}, true
	}
	return Point{}, false
}

// step moves the controlled snake one cell in the current heading. It
// reports whether the snake survived.
func (h *Host) step() bool {
	s := h.self()
	d, ok := delta(h.heading)
	if !ok {
		h.die(DeathInvalidCall, "invalid heading")
		return false
	}
	head := s.Head()
	next := Point{X: head.X + d.X, Y: head.Y + d.Y}
	if !h.arena.inBounds(next) {
		h.die(DeathCollision, "left the arena")
		return false
	}

	ate := false
	if i := h.arena.foodAt(next); i >= 0 {
		s.Health = clampHealth(s.Health + h.arena.Food[i].Health)
		h.arena.Food = append(h.arena.Food[:i], h.arena.Food[i+1:]...)
		ate = true
	}

	body := make([]Point, 0, len(s.Body)+1)
	body = append(body, next)
	body = append(body, s.Body...)
	if !ate {
		body = body[:len(body)-1]
	}
	s.Body = body

	if h.collides(s) {
		h.die(DeathCollision, "hit a snake")
		return false
	}
	if s.Health <= 0 {
		h.die(DeathStarved, "ate poisonous food")
		return false
	}
	return true
}

func (h *Host) collides(s *Snake) bool {
	head := s.Head()
	for i := range h.arena.Snakes {
		other := &h.arena.Snakes[i]
		for j, p := range other.Body {
			if other.ID == s.ID && j == 0 {
				continue
			}
			if p == head {
				return true
			}
		}
	}
	return false
}

func (h *Host) dropFood(cells []Point, health int32) {
	for _, p := range cells {
		if h.arena.foodAt(p) >= 0 {
			continue
		}
		h.arena.Food = append(h.arena.Food, Food{Pos: p, Health: health})
	}
}

func (h *Host) ArenaWidth() uint32 {
	h.record("get_arena_width", int64(h.cfg.Width), "")
	h.call()
	return h.cfg.Width
}

func (h *Host) ArenaHeight() uint32 {
	h.record("get_arena_height", int64(h.cfg.Height), "")
	h.call()
	return h.cfg.Height
}

func (h *Host) CPUCyclesPerTick() uint32 {
	h.record("get_cpu_cycles_per_tick", int64(h.cfg.CyclesPerTick), "")
	h.call()
	return h.cfg.CyclesPerTick
}

func (h *Host) SetDirection(direction uint32) {
	h.record("set_direction", 0, "", int64(direction))
	if h.death == Alive {
		if _, ok := delta(direction); !ok {
			h.die(DeathInvalidCall, "invalid direction")
		} else {
			h.heading = direction
		}
	}
	h.call()
}

// Move is fatal when called twice in one tick.
func (h *Host) Move() {
	h.record("move", 0, "")
	if h.death == Alive {
		if h.moved {
			h.die(DeathExhaustion, "moved twice in one tick")
		} else {
			h.moved = true
			h.step()
		}
	}
	h.call()
}

// Leap is fatal unless this tick has moved and neither this tick nor the
// previous one leapt. The tail segment drops as food.
func (h *Host) Leap() {
	h.record("leap", 0, "")
	if h.death == Alive {
		h.leap()
	}
	h.call()
}

func (h *Host) leap() {
	switch {
	case !h.moved:
		h.die(DeathExhaustion, "leap before move")
		return
	case h.leaped && h.tick-h.leapTick <= 1:
		h.die(DeathExhaustion, "leap within two ticks")
		return
	case len(h.self().Body) < 2:
		h.die(DeathExhaustion, "leap with no body to spend")
		return
	}

	h.leaped = true
	h.leapTick = h.tick
	h.cooled = true
	h.coolTick = h.tick

	if !h.step() {
		return
	}
	s := h.self()
	tail := s.Body[len(s.Body)-1]
	s.Body = s.Body[:len(s.Body)-1]
	h.dropFood([]Point{tail}, h.cfg.LeapFoodHealth)
	h.effects = append(h.effects, Effect{Tick: h.tick, Kind: EffectLeapDrop, SnakeID: s.ID, Cells: []Point{tail}})
}

func (h *Host) SleepRemainingTick() {
	h.record("sleep_remaining_tick", 0, "")
	h.endTick()
}

func (h *Host) Sleep(cycles uint32) {
	h.record("sleep", 0, "", int64(cycles))
	h.charge(uint64(cycles) + uint64(h.cfg.CallCost))
}

// Split follows the front/middle/back rule: the middle part is rounded up,
// the outer parts down. The middle becomes poisonous food and the back a new
// snake of the same team.
func (h *Host) Split() int32 {
	status := h.split()
	h.record("split", int64(status), "")
	h.call()
	return status
}

func (h *Host) split() int32 {
	if h.death != Alive {
		return raw.ErrOK
	}
	s := h.self()
	n := len(s.Body)
	if n < MinSplitLength {
		h.die(DeathIllegalSplit, "split below minimum length")
		return raw.ErrOK
	}
	if h.cooled && h.tick-h.coolTick < h.cfg.SplitCoolDown {
		return raw.ErrCoolDown
	}

	part := n / 3
	mid := n - 2*part
	front := append([]Point(nil), s.Body[:part]...)
	middle := append([]Point(nil), s.Body[part:part+mid]...)
	back := make([]Point, 0, part)
	for i := n - 1; i >= part+mid; i-- {
		back = append(back, s.Body[i])
	}

	spawned := Snake{ID: h.nextID, TeamID: s.TeamID, Health: s.Health, Body: back}
	h.nextID++
	s.Body = front
	h.arena.Snakes = append(h.arena.Snakes, spawned)

	h.dropFood(middle, h.cfg.PoisonFoodHealth)
	h.effects = append(h.effects,
		Effect{Tick: h.tick, Kind: EffectLostMiddle, SnakeID: h.selfID, Cells: middle},
		Effect{Tick: h.tick, Kind: EffectSpawned, SnakeID: spawned.ID, Cells: append([]Point(nil), back...)},
	)

	if h.cfg.ContinueAsBack {
		h.selfID = spawned.ID
	}
	h.cooled = true
	h.coolTick = h.tick
	return raw.ErrOK
}

func (h *Host) Suicide() {
	h.record("suicide", 0, "")
	if h.death == Alive {
		s := h.self()
		corpse := append([]Point(nil), s.Body...)
		s.Body = nil
		h.dropFood(corpse, h.cfg.PoisonFoodHealth)
		h.effects = append(h.effects, Effect{Tick: h.tick, Kind: EffectCorpse, SnakeID: s.ID, Cells: corpse})
		h.die(DeathSuicide, "suicide")
	}
	h.call()
}

// Speak truncates long messages and drops those beyond the per-tick bound.
func (h *Host) Speak(msg []byte) {
	if len(msg) > MaxMessageLength {
		msg = msg[:MaxMessageLength]
	}
	switch {
	case h.death != Alive:
	case h.spoken >= MaxMessagesPerTick:
		h.dropped++
		h.record("speak", 0, "dropped", int64(len(msg)))
	default:
		h.spoken++
		h.messages = append(h.messages, Message{Tick: h.tick, SnakeID: h.selfID, Text: string(msg)})
		h.record("speak", 0, string(msg), int64(len(msg)))
	}
	h.call()
}

func (h *Host) CurrentPos() (x, y uint32) {
	s := h.self()
	if len(s.Body) > 0 {
		head := s.Head()
		x, y = uint32(head.X), uint32(head.Y)
	}
	h.record("get_current_pos", 0, "", int64(x), int64(y))
	h.call()
	return x, y
}

// Observe reports snakes before food. Cells outside the arena are empty.
func (h *Host) Observe(x, y uint32, out *[raw.ObservationSlots]uint32) {
	*out = h.cell(Point{X: int32(x), Y: int32(y)})
	h.record("observe", int64(out[raw.SlotType]), "", int64(x), int64(y))
	h.call()
}

func (h *Host) cell(p Point) [raw.ObservationSlots]uint32 {
	if slots, ok := h.rawCells[p]; ok {
		return slots
	}
	var out [raw.ObservationSlots]uint32
	if !h.arena.inBounds(p) {
		return out
	}
	out[raw.SlotPoison] = h.arena.Poison[p]

	for _, s := range h.arena.Snakes {
		for i, bp := range s.Body {
			if bp != p {
				continue
			}
			out[raw.SlotType] = raw.TypeSnakeBody
			if i == 0 {
				out[raw.SlotType] = raw.TypeSnakeHead
			}
			out[raw.SlotAux0] = s.TeamID
			out[raw.SlotAux1] = s.ID
			out[raw.SlotAux2] = uint32(clampHealth(s.Health))
			return out
		}
	}

	if i := h.arena.foodAt(p); i >= 0 {
		out[raw.SlotType] = raw.TypeFood
		out[raw.SlotAux0] = uint32(h.arena.Food[i].Health)
	}
	return out
}

func (h *Host) ID() uint32 {
	h.record("get_id", int64(h.selfID), "")
	h.call()
	return h.selfID
}

func (h *Host) TeamID() uint32 {
	id := h.self().TeamID
	h.record("get_team_id", int64(id), "")
	h.call()
	return id
}

func (h *Host) Length() uint32 {
	n := uint32(len(h.self().Body))
	h.record("get_length", int64(n), "")
	h.call()
	return n
}

func (h *Host) Health() uint32 {
	v := uint32(clampHealth(h.self().Health))
	h.record("get_health", int64(v), "")
	h.call()
	return v
}

func (h *Host) CurrentTick() uint64 {
	t := h.tick
	h.record("get_current_tick", int64(t), "")
	h.call()
	return t
}

func (h *Host) CurrentCPUCycleInTick() uint64 {
	c := h.cycle
	h.record("get_current_cpu_cycle_in_tick", int64(c), "")
	h.call()
	return c
}

// Rand is deterministic in the seed, the tick and the number of draws.
func (h *Host) Rand(min, max uint32) uint32 {
	h.randCalls++
	v := min
	if max > min {
		x := deterministicU64Fast(h.cfg.Seed^h.tick<<32, h.randCalls)
		v = min + uint32(x%uint64(max-min))
	}
	h.record("rand", int64(v), "", int64(min), int64(max))
	h.call()
	return v
}
