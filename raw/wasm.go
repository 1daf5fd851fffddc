//go:build wasip1

package raw

import "unsafe"

//go:wasmimport env get_arena_width
func getArenaWidth() uint32

//go:wasmimport env get_arena_height
func getArenaHeight() uint32

//go:wasmimport env get_cpu_cycles_per_tick
func getCPUCyclesPerTick() uint32

//go:wasmimport env set_direction
func setDirection(direction uint32)

//go:wasmimport env move
func move()

//go:wasmimport env leap
func leap()

//go:wasmimport env sleep_remaining_tick
func sleepRemainingTick()

//go:wasmimport env sleep
func sleep(cycles uint32)

//go:wasmimport env split
func split() int32

//go:wasmimport env suicide
func suicide()

//go:wasmimport env speak
func speak(msg unsafe.Pointer, length uint32)

//go:wasmimport env get_current_pos
func getCurrentPos(xOut unsafe.Pointer, yOut unsafe.Pointer)

//go:wasmimport env observe
func observe(x, y uint32, out unsafe.Pointer)

//go:wasmimport env get_id
func getID() uint32

//go:wasmimport env get_team_id
func getTeamID() uint32

//go:wasmimport env get_length
func getLength() uint32

//go:wasmimport env get_health
func getHealth() uint32

//go:wasmimport env get_current_tick
func getCurrentTick() uint64

//go:wasmimport env get_current_cpu_cycle_in_tick
func getCurrentCPUCycleInTick() uint64

//go:wasmimport env rand
func hostRand(min, max uint32) uint32

// Imports binds Host to the functions imported from the "env" module.
type Imports struct{}

var _ Host = Imports{}

func (Imports) ArenaWidth() uint32       { return getArenaWidth() }
func (Imports) ArenaHeight() uint32      { return getArenaHeight() }
func (Imports) CPUCyclesPerTick() uint32 { return getCPUCyclesPerTick() }

func (Imports) SetDirection(direction uint32) { setDirection(direction) }
func (Imports) Move()                         { move() }
func (Imports) Leap()                         { leap() }
func (Imports) SleepRemainingTick()           { sleepRemainingTick() }
func (Imports) Sleep(cycles uint32)           { sleep(cycles) }
func (Imports) Split() int32                  { return split() }
func (Imports) Suicide()                      { suicide() }

func (Imports) Speak(msg []byte) {
	if len(msg) == 0 {
		return
	}
	speak(unsafe.Pointer(unsafe.SliceData(msg)), uint32(len(msg)))
}

func (Imports) CurrentPos() (x, y uint32) {
	getCurrentPos(unsafe.Pointer(&x), unsafe.Pointer(&y))
	return x, y
}

func (Imports) Observe(x, y uint32, out *[ObservationSlots]uint32) {
	observe(x, y, unsafe.Pointer(out))
}

func (Imports) ID() uint32                    { return getID() }
func (Imports) TeamID() uint32                { return getTeamID() }
func (Imports) Length() uint32                { return getLength() }
func (Imports) Health() uint32                { return getHealth() }
func (Imports) CurrentTick() uint64           { return getCurrentTick() }
func (Imports) CurrentCPUCycleInTick() uint64 { return getCurrentCPUCycleInTick() }
func (Imports) Rand(min, max uint32) uint32   { return hostRand(min, max) }
