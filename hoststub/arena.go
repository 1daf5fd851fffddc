// Package hoststub is an in-process stand-in for the arena host.
//
// It implements raw.Host over a small in-memory arena and enforces the
// client-visible rules of the protocol: one move per tick, the leap window,
// the split length and cool-down, bounded diagnostics. Violations are
// recorded as a death cause instead of terminating a process. Other snakes
// are static; it is not a game engine.
package hoststub

// Point is an arena cell. Coordinates follow screen conventions: (0,0) is
// top-left and y grows downward.
type Point struct {
	X int32
	Y int32
}

type Snake struct {
	ID     uint32
	TeamID uint32
	Health int32
	Body   []Point
}

func (s *Snake) Head() Point { return s.Body[0] }

type Food struct {
	Pos    Point
	Health int32
}

// Arena is the mutable world the stub simulates.
type Arena struct {
	Width  int32
	Height int32
	Snakes []Snake
	Food   []Food
	Poison map[Point]uint32
}

func (a *Arena) inBounds(p Point) bool {
	return p.X >= 0 && p.X < a.Width && p.Y >= 0 && p.Y < a.Height
}

func (a *Arena) foodAt(p Point) int {
	for i, f := range a.Food {
		if f.Pos == p {
			return i
		}
	}
	return -1
}

func (a *Arena) snakeIndex(id uint32) int {
	for i := range a.Snakes {
		if a.Snakes[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone performs a deep copy of the arena.
func (a *Arena) Clone() *Arena {
	if a == nil {
		return nil
	}

	out := &Arena{
		Width:  a.Width,
		Height: a.Height,
	}

	if len(a.Food) > 0 {
		out.Food = make([]Food, len(a.Food))
		copy(out.Food, a.Food)
	}

	if len(a.Poison) > 0 {
		out.Poison = make(map[Point]uint32, len(a.Poison))
		for p, v := range a.Poison {
			out.Poison[p] = v
		}
	}

	if len(a.Snakes) > 0 {
		out.Snakes = make([]Snake, len(a.Snakes))
		for i := range a.Snakes {
			out.Snakes[i] = a.Snakes[i]
			if len(a.Snakes[i].Body) > 0 {
				out.Snakes[i].Body = make([]Point, len(a.Snakes[i].Body))
				copy(out.Snakes[i].Body, a.Snakes[i].Body)
			}
		}
	}

	return out
}
