package hoststub

import (
	"math/rand"
)

// FoodSettings controls food spawning at the end of each tick.
type FoodSettings struct {
	MinimumFood     int   // Guaranteed minimum on the arena at all times
	FoodSpawnChance int   // Percentage chance (0–100) to spawn extra food each tick
	HealthValue     int32 // Health granted by spawned food
}

var DefaultFoodSettings = FoodSettings{MinimumFood: 1, FoodSpawnChance: 15, HealthValue: 20}

// applyFoodRules spawns food after a tick. If rng is nil, spawn positions are
// derived from the tick and salt.
func applyFoodRules(a *Arena, tick uint64, rng *rand.Rand, settings FoodSettings, salt uint64) {
	occupied := make(map[Point]bool)
	for _, s := range a.Snakes {
		for _, p := range s.Body {
			occupied[p] = true
		}
	}
	for _, f := range a.Food {
		occupied[f.Pos] = true
	}

	spawn := func() bool {
		free := make([]Point, 0, max(0, int(a.Width*a.Height)-len(occupied)))
		for y := int32(0); y < a.Height; y++ {
			for x := int32(0); x < a.Width; x++ {
				if !occupied[Point{X: x, Y: y}] {
					free = append(free, Point{X: x, Y: y})
				}
			}
		}
		if len(free) == 0 {
			return false
		}
		var idx int
		if rng != nil {
			idx = rng.Intn(len(free))
		} else {
			idx = int(deterministicU64Fast(tick, salt) % uint64(len(free)))
		}
		p := free[idx]
		a.Food = append(a.Food, Food{Pos: p, Health: settings.HealthValue})
		occupied[p] = true
		return true
	}

	for len(a.Food) < settings.MinimumFood {
		if !spawn() {
			break
		}
	}

	if settings.FoodSpawnChance > 0 {
		var roll int
		if rng != nil {
			roll = rng.Intn(100)
		} else {
			roll = int(deterministicU64Fast(tick, salt^0xF00D) % 100)
		}
		if roll < settings.FoodSpawnChance {
			spawn()
		}
	}
}

// deterministicU64Fast is a splitmix64 finaliser over a+b.
func deterministicU64Fast(a, b uint64) uint64 {
	x := a + b
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
