// Package raw declares the host-exported surface a snake program is linked
// against.
//
// Every value crossing this boundary is a fixed-width integer or a buffer in
// guest memory. Nothing here interprets those values; see package sdk for the
// typed layer.
package raw

const (
	DirectionNorth uint32 = 0
	DirectionEast  uint32 = 1
	DirectionSouth uint32 = 2
	DirectionWest  uint32 = 3
)

const (
	SpeedNormal uint32 = 0
	SpeedFast   uint32 = 1
)

const (
	TypeEmpty     uint32 = 0
	TypeFood      uint32 = 1
	TypeSnakeHead uint32 = 2
	TypeSnakeBody uint32 = 3
)

const (
	SplitResultFront uint32 = 0
	SplitResultBack  uint32 = 1
)

const (
	ErrOK       int32 = 0
	ErrCoolDown int32 = -1
)

// Observation slot layout written by observe.
const (
	SlotType   = 0
	SlotAux0   = 1 // team id, or signed food health value
	SlotAux1   = 2 // snake id
	SlotAux2   = 3 // snake health
	SlotPoison = 4

	ObservationSlots = 5
)

// Host is the set of functions the host runtime exports to a snake.
//
// Sensor calls reflect host state at the instant of the call. Only Sleep and
// SleepRemainingTick suspend the caller.
type Host interface {
	// constants
	ArenaWidth() uint32
	ArenaHeight() uint32
	CPUCyclesPerTick() uint32

	// actions
	SetDirection(direction uint32)
	Move()
	Leap()
	SleepRemainingTick()
	Sleep(cycles uint32)
	Split() int32
	Suicide()
	Speak(msg []byte)

	// sensors

	// CurrentPos uses screen coordinates: (0,0) is top-left.
	CurrentPos() (x, y uint32)
	Observe(x, y uint32, out *[ObservationSlots]uint32)
	ID() uint32
	TeamID() uint32
	Length() uint32
	Health() uint32
	CurrentTick() uint64
	CurrentCPUCycleInTick() uint64
	Rand(min, max uint32) uint32
}
