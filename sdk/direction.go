package sdk

import (
	"fmt"

	"github.com/brensch/snekarena/raw"
)

// Direction is a movement heading. The numeric values are the host's wire
// codes and must not be remapped.
type Direction uint32

const (
	North = Direction(raw.DirectionNorth)
	East  = Direction(raw.DirectionEast)
	South = Direction(raw.DirectionSouth)
	West  = Direction(raw.DirectionWest)
)

// Directions lists every heading in wire order.
var Directions = [4]Direction{North, East, South, West}

// ParseDirection converts a wire code into a Direction.
func ParseDirection(code uint32) (Direction, error) {
	d := Direction(code)
	if !d.Valid() {
		return 0, fmt.Errorf("invalid direction code %d", code)
	}
	return d, nil
}

func (d Direction) Valid() bool {
	return d <= West
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("direction(%d)", uint32(d))
	}
}

func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the coordinate change of one step. y grows downward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Position is an arena cell in screen coordinates: (0,0) is top-left, x grows
// rightward and y grows downward.
type Position struct {
	X uint32
	Y uint32
}

// Step returns the neighbouring cell in direction d, or false if it falls
// outside a width x height arena.
func (p Position) Step(d Direction, width, height uint32) (Position, bool) {
	dx, dy := d.Delta()
	x := int64(p.X) + int64(dx)
	y := int64(p.Y) + int64(dy)
	if x < 0 || y < 0 || x >= int64(width) || y >= int64(height) {
		return Position{}, false
	}
	return Position{X: uint32(x), Y: uint32(y)}, true
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
