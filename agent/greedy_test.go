package agent

import (
	"testing"

	"github.com/brensch/snekarena/hoststub"
	"github.com/brensch/snekarena/sdk"
)

func newGreedy(t *testing.T, cfg hoststub.Config, acfg Config) (*Greedy, *hoststub.Host) {
	t.Helper()
	host := hoststub.New(cfg)
	return New(sdk.New(host), acfg, nil), host
}

func TestStep_MovesTowardFood(t *testing.T) {
	g, host := newGreedy(t, hoststub.DefaultConfig(), Config{})
	host.PlaceFood(hoststub.Point{X: 6, Y: 5}, 10)

	d := g.Step()
	if d.Direction != sdk.East || !d.Safe {
		t.Errorf("decision = %+v, want a safe move east", d)
	}
	if host.Dead() {
		t.Fatalf("died: %s\n%s", host.Death(), host.Render())
	}
	s := host.Self()
	if s.Body[0] != (hoststub.Point{X: 6, Y: 5}) || len(s.Body) != 4 {
		t.Errorf("snake after step = %+v", s)
	}
	if tick, _ := host.Now(); tick != 1 {
		t.Errorf("tick = %d, want 1", tick)
	}
}

func TestStep_AvoidsSnakesAndPoison(t *testing.T) {
	g, host := newGreedy(t, hoststub.DefaultConfig(), Config{})
	host.PlaceSnake(hoststub.Snake{ID: 9, TeamID: 2, Health: 80, Body: []hoststub.Point{{X: 5, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 5}}})
	host.SetPoison(hoststub.Point{X: 5, Y: 6}, 5)

	d := g.Step()
	if d.Direction != sdk.East {
		t.Errorf("direction = %s, want east (north/west blocked, south poisoned)", d.Direction)
	}
	if host.Dead() {
		t.Fatalf("died: %s\n%s", host.Death(), host.Render())
	}
}

func TestStep_LeapsOntoFoodRespectingWindow(t *testing.T) {
	cfg := hoststub.DefaultConfig()
	cfg.Start = hoststub.Point{X: 5, Y: 9}
	cfg.Length = 4
	g, host := newGreedy(t, cfg, Config{LeapHealth: 50})
	for y := int32(8); y >= 4; y-- {
		host.PlaceFood(hoststub.Point{X: 5, Y: y}, 5)
	}

	var leaps []bool
	for i := 0; i < 3; i++ {
		d := g.Step()
		if d.Direction != sdk.North {
			t.Fatalf("step %d went %s\n%s", i, d.Direction, host.Render())
		}
		leaps = append(leaps, d.Leapt)
		if host.Dead() {
			t.Fatalf("step %d died: %s (%s)\n%s", i, host.Death(), host.DeathNote(), host.Render())
		}
	}
	if !leaps[0] || leaps[1] || !leaps[2] {
		t.Errorf("leaps = %v, want [true false true]", leaps)
	}
}

func TestStep_SplitsWhenLong(t *testing.T) {
	cfg := hoststub.DefaultConfig()
	cfg.Width = 20
	body := make([]hoststub.Point, 10)
	for i := range body {
		body[i] = hoststub.Point{X: int32(i + 5), Y: 5}
	}
	cfg.Body = body
	g, host := newGreedy(t, cfg, Config{Split: true})

	d := g.Step()
	if !d.Split || d.SplitAs != sdk.SplitFront {
		t.Errorf("decision = %+v, want a front split", d)
	}
	lost := 0
	for _, e := range host.Effects() {
		if e.Kind == hoststub.EffectLostMiddle {
			lost++
		}
	}
	if lost != 1 {
		t.Errorf("lost middle effects = %d, want 1", lost)
	}
	if host.Dead() {
		t.Fatalf("died: %s\n%s", host.Death(), host.Render())
	}

	// Now length 3: a conforming agent must not split again.
	d = g.Step()
	if d.Split || host.Death() == hoststub.DeathIllegalSplit {
		t.Errorf("split below minimum length")
	}
}

func TestStep_SpeaksStatus(t *testing.T) {
	host := hoststub.New(hoststub.DefaultConfig())
	client := sdk.New(host)
	g := New(client, Config{SpeakEvery: 2}, nil)
	g.Step()
	if len(host.Messages()) != 0 {
		t.Errorf("nil logger spoke: %v", host.Messages())
	}
}

func TestRun_NoProtocolViolations(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		cfg := hoststub.DefaultConfig()
		cfg.Width, cfg.Height = 15, 15
		cfg.Start = hoststub.Point{X: 7, Y: 7}
		cfg.Seed = seed
		cfg.SpawnFood = true
		cfg.Food.MinimumFood = 4
		g, host := newGreedy(t, cfg, DefaultConfig())

		for i := 0; i < 150 && !host.Dead(); i++ {
			g.Step()
		}
		switch host.Death() {
		case hoststub.Alive, hoststub.DeathCollision, hoststub.DeathStarved:
		default:
			t.Errorf("seed %d: protocol violation %s (%s)\n%s", seed, host.Death(), host.DeathNote(), host.Render())
		}
	}
}
