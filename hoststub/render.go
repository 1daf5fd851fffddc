package hoststub

import (
	"fmt"
	"sort"
	"strings"
)

// Render draws the arena top row first.
//
//	H/o  controlled snake head/body
//	S/s  other snakes
//	F    food, x poisonous food
//	~    poisoned cell
func (h *Host) Render() string {
	a := h.arena
	var b strings.Builder
	fmt.Fprintf(&b, "Tick=%d Cycle=%d Size=%dx%d Self=%d Heading=%d", h.tick, h.cycle, a.Width, a.Height, h.selfID, h.heading)
	if h.death != Alive {
		fmt.Fprintf(&b, " Dead=%s", h.death)
	}
	b.WriteString("\n")

	snakes := make([]Snake, len(a.Snakes))
	copy(snakes, a.Snakes)
	sort.Slice(snakes, func(i, j int) bool { return snakes[i].ID < snakes[j].ID })
	for _, s := range snakes {
		fmt.Fprintf(&b, "Snake %d Team=%d Health=%d Len=%d Body:", s.ID, s.TeamID, s.Health, len(s.Body))
		for _, p := range s.Body {
			fmt.Fprintf(&b, " (%d,%d)", p.X, p.Y)
		}
		b.WriteString("\n")
	}

	w, hgt := int(a.Width), int(a.Height)
	if w <= 0 || hgt <= 0 || w > 60 || hgt > 60 {
		return b.String()
	}

	grid := make([][]byte, hgt)
	for y := range grid {
		grid[y] = make([]byte, w)
		for x := range grid[y] {
			grid[y][x] = '.'
			if a.Poison[Point{X: int32(x), Y: int32(y)}] > 0 {
				grid[y][x] = '~'
			}
		}
	}
	for _, f := range a.Food {
		if !a.inBounds(f.Pos) {
			continue
		}
		c := byte('F')
		if f.Health < 0 {
			c = 'x'
		}
		grid[f.Pos.Y][f.Pos.X] = c
	}
	for _, s := range a.Snakes {
		head, body := byte('S'), byte('s')
		if s.ID == h.selfID {
			head, body = 'H', 'o'
		}
		for i := len(s.Body) - 1; i >= 0; i-- {
			p := s.Body[i]
			if !a.inBounds(p) {
				continue
			}
			if i == 0 {
				grid[p.Y][p.X] = head
			} else {
				grid[p.Y][p.X] = body
			}
		}
	}

	b.WriteString("Arena:\n")
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
