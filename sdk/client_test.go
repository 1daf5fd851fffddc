package sdk

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/brensch/snekarena/hoststub"
	"github.com/brensch/snekarena/raw"
)

// recordingHost captures raw calls and answers sensors from fixed values.
type recordingHost struct {
	directions []uint32
	spoken     [][]byte
	splitCode  int32
	ids        []uint32
	slots      [raw.ObservationSlots]uint32
	moves      int
}

func (h *recordingHost) ArenaWidth() uint32            { return 10 }
func (h *recordingHost) ArenaHeight() uint32           { return 8 }
func (h *recordingHost) CPUCyclesPerTick() uint32      { return 100 }
func (h *recordingHost) SetDirection(direction uint32) { h.directions = append(h.directions, direction) }
func (h *recordingHost) Move()                         { h.moves++ }
func (h *recordingHost) Leap()                         {}
func (h *recordingHost) SleepRemainingTick()           {}
func (h *recordingHost) Sleep(cycles uint32)           {}
func (h *recordingHost) Split() int32                  { return h.splitCode }
func (h *recordingHost) Suicide()                      {}
func (h *recordingHost) Speak(msg []byte)              { h.spoken = append(h.spoken, append([]byte(nil), msg...)) }
func (h *recordingHost) CurrentPos() (x, y uint32)     { return 0, 0 }
func (h *recordingHost) TeamID() uint32                { return 1 }
func (h *recordingHost) Length() uint32                { return 3 }
func (h *recordingHost) Health() uint32                { return 100 }
func (h *recordingHost) CurrentTick() uint64           { return 0 }
func (h *recordingHost) CurrentCPUCycleInTick() uint64 { return 140 }
func (h *recordingHost) Rand(min, max uint32) uint32   { return min }

func (h *recordingHost) Observe(x, y uint32, out *[raw.ObservationSlots]uint32) {
	*out = h.slots
}

// ID answers from ids in order, repeating the last one.
func (h *recordingHost) ID() uint32 {
	if len(h.ids) == 0 {
		return 1
	}
	id := h.ids[0]
	if len(h.ids) > 1 {
		h.ids = h.ids[1:]
	}
	return id
}

func TestClient_ArenaSizeMatchesIndividualQueries(t *testing.T) {
	cfg := hoststub.DefaultConfig()
	cfg.Width, cfg.Height = 17, 11
	c := New(hoststub.New(cfg))

	w, h := c.ArenaSize()
	if w != c.ArenaWidth() || h != c.ArenaHeight() {
		t.Errorf("ArenaSize() = (%d,%d), individual queries = (%d,%d)", w, h, c.ArenaWidth(), c.ArenaHeight())
	}
	meta := c.Arena()
	if meta.Width != 17 || meta.Height != 11 || meta.CPUCyclesPerTick != cfg.CyclesPerTick {
		t.Errorf("Arena() = %+v", meta)
	}
}

func TestClient_ObserveSnakeHeadScenario(t *testing.T) {
	cfg := hoststub.DefaultConfig()
	cfg.Width, cfg.Height = 10, 10
	host := hoststub.New(cfg)
	host.PlaceSnake(hoststub.Snake{ID: 42, TeamID: 7, Health: 55, Body: []hoststub.Point{{X: 3, Y: 3}, {X: 3, Y: 4}}})
	c := New(host)

	obs := c.Observe(3, 3)
	info, ok := obs.Item.Snake()
	if !ok || obs.Item.Kind() != ItemSnakeHead {
		t.Fatalf("Observe(3,3) = %v, want a snake head", obs)
	}
	if info != (SnakeInfo{TeamID: 7, SnakeID: 42, Health: 55}) {
		t.Errorf("Observe(3,3) = %+v", info)
	}

	body := c.Observe(3, 4)
	if body.Item.Kind() != ItemSnakeBody {
		t.Errorf("Observe(3,4) = %v, want a snake body", body)
	}
}

func TestClient_ObservePanicsOnUnknownTag(t *testing.T) {
	host := hoststub.New(hoststub.DefaultConfig())
	host.SetRawCell(hoststub.Point{X: 2, Y: 2}, [raw.ObservationSlots]uint32{17, 0, 0, 0, 0})
	c := New(host)

	if _, err := c.TryObserve(2, 2); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("TryObserve err = %v, want ErrUnknownTag", err)
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrUnknownTag) {
			t.Errorf("recovered %v, want an ErrUnknownTag error", r)
		}
	}()
	obs := c.Observe(2, 2)
	t.Errorf("Observe returned %v for an unknown tag", obs)
}

func TestClient_MoveUsesHostDefaultHeading(t *testing.T) {
	tests := []struct {
		name    string
		heading uint32
		want    Position
	}{
		{"north default", raw.DirectionNorth, Position{5, 4}},
		{"east default", raw.DirectionEast, Position{6, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := hoststub.DefaultConfig()
			cfg.DefaultHeading = tt.heading
			c := New(hoststub.New(cfg))

			if tick := c.CurrentTick(); tick != 0 {
				t.Fatalf("CurrentTick() at start = %d", tick)
			}
			c.Move()
			if got := c.CurrentPos(); got != tt.want {
				t.Errorf("head after Move = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_SetDirectionThenMove(t *testing.T) {
	host := hoststub.New(hoststub.DefaultConfig())
	c := New(host)

	c.SetDirection(West)
	c.Move()
	c.SleepRemainingTick()

	if got := c.CurrentPos(); got != (Position{4, 5}) {
		t.Errorf("head = %v, want (4,5)", got)
	}
	if got := c.CurrentTick(); got != 1 {
		t.Errorf("tick = %d, want 1", got)
	}
	if got := c.Health(); got != 99 {
		t.Errorf("health = %d, want 99", got)
	}
	if host.Dead() {
		t.Fatalf("snake died: %s\n%s", host.Death(), host.Render())
	}
}

func TestClient_SplitOutcome(t *testing.T) {
	row := func(n int) []hoststub.Point {
		body := make([]hoststub.Point, n)
		for i := range body {
			body[i] = hoststub.Point{X: int32(i + 1), Y: 1}
		}
		return body
	}

	t.Run("front keeps its id", func(t *testing.T) {
		cfg := hoststub.DefaultConfig()
		cfg.Width, cfg.Height = 12, 4
		cfg.Body = row(9)
		c := New(hoststub.New(cfg))

		if !c.CanSplit() {
			t.Fatal("CanSplit() false at length 9")
		}
		res, err := c.Split()
		if err != nil {
			t.Fatal(err)
		}
		if res != SplitFront || c.ID() != cfg.SnakeID {
			t.Errorf("Split() = %s with id %d", res, c.ID())
		}
	})

	t.Run("back gets a new id", func(t *testing.T) {
		cfg := hoststub.DefaultConfig()
		cfg.Width, cfg.Height = 12, 4
		cfg.Body = row(9)
		cfg.ContinueAsBack = true
		c := New(hoststub.New(cfg))

		before := c.Identity()
		res, err := c.Split()
		if err != nil {
			t.Fatal(err)
		}
		after := c.Identity()
		if res != SplitBack {
			t.Errorf("Split() = %s, want back", res)
		}
		if after.ID == before.ID || after.TeamID != before.TeamID {
			t.Errorf("identity %+v -> %+v", before, after)
		}
	})

	t.Run("cool down is reported", func(t *testing.T) {
		cfg := hoststub.DefaultConfig()
		cfg.Width, cfg.Height = 30, 4
		cfg.Body = row(27)
		c := New(hoststub.New(cfg))

		if _, err := c.Split(); err != nil {
			t.Fatal(err)
		}
		_, err := c.Split()
		if !errors.Is(err, ErrCoolDown) {
			t.Fatalf("second Split() err = %v, want ErrCoolDown", err)
		}
		var se *StatusError
		if !errors.As(err, &se) || se.Code != raw.ErrCoolDown {
			t.Errorf("err = %#v, want StatusError with the host code", err)
		}
	})
}

func TestClient_SplitSurfacesUnknownStatusVerbatim(t *testing.T) {
	c := New(&recordingHost{splitCode: -7})
	_, err := c.Split()
	var se *StatusError
	if !errors.As(err, &se) || se.Code != -7 {
		t.Fatalf("err = %v, want StatusError{-7}", err)
	}
	if errors.Is(err, ErrCoolDown) {
		t.Errorf("status -7 matched ErrCoolDown")
	}
}

func TestClient_SplitDerivesResultFromIdentity(t *testing.T) {
	c := New(&recordingHost{ids: []uint32{4, 9}})
	res, err := c.Split()
	if err != nil || res != SplitBack {
		t.Errorf("Split() = %s, %v; want back", res, err)
	}
}

func TestClient_SpeakTruncates(t *testing.T) {
	host := &recordingHost{}
	c := New(host)
	c.Speak(bytes.Repeat([]byte("a"), MaxMessageLength+20))
	c.Speakf("tick %d", 3)

	if len(host.spoken) != 2 {
		t.Fatalf("spoke %d messages", len(host.spoken))
	}
	if len(host.spoken[0]) != MaxMessageLength {
		t.Errorf("first message length %d", len(host.spoken[0]))
	}
	if string(host.spoken[1]) != "tick 3" {
		t.Errorf("second message %q", host.spoken[1])
	}
}

func TestClient_CyclesRemainingInTick(t *testing.T) {
	// recordingHost reports 140 cycles used of a 100 cycle budget.
	if got := New(&recordingHost{}).CyclesRemainingInTick(); got != 0 {
		t.Errorf("CyclesRemainingInTick() = %d, want 0", got)
	}

	host := hoststub.New(hoststub.DefaultConfig())
	c := New(host)
	c.Sleep(100)
	if got := c.CyclesRemainingInTick(); got >= 900 || got < 890 {
		t.Errorf("CyclesRemainingInTick() = %d after sleeping 100", got)
	}
}

func TestClient_NeighborsSkipsOffArenaCells(t *testing.T) {
	cfg := hoststub.DefaultConfig()
	cfg.Start = hoststub.Point{X: 0, Y: 0}
	host := hoststub.New(cfg)
	host.PlaceFood(hoststub.Point{X: 1, Y: 0}, 12)
	c := New(host)

	ns := c.Neighbors()
	if len(ns) != 2 {
		t.Fatalf("got %d neighbours at the corner, want 2", len(ns))
	}
	if ns[0].Dir != East || ns[1].Dir != South {
		t.Errorf("neighbour order %s,%s", ns[0].Dir, ns[1].Dir)
	}
	if f, ok := ns[0].Obs.Item.Food(); !ok || f.HealthValue != 12 {
		t.Errorf("east neighbour = %v", ns[0].Obs)
	}
}

func TestClient_SelfAndRand(t *testing.T) {
	cfg := hoststub.DefaultConfig()
	cfg.Length = 4
	c := New(hoststub.New(cfg))

	s := c.Self()
	if s.Length != 4 || s.Health != 100 || s.Pos != (Position{5, 5}) || s.Tick != 0 {
		t.Errorf("Self() = %+v", s)
	}
	for i := 0; i < 100; i++ {
		v := c.Rand(3, 8)
		if v < 3 || v >= 8 {
			t.Fatalf("Rand(3,8) = %d", v)
		}
	}
}

func TestClient_WithLoggerLogsActions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := New(&recordingHost{}, WithLogger(logger))

	c.SetDirection(South)
	c.Move()

	out := buf.String()
	if !strings.Contains(out, "set_direction") || !strings.Contains(out, "direction=south") || !strings.Contains(out, "msg=move") {
		t.Errorf("log output:\n%s", out)
	}
}
