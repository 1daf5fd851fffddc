package sdk

import (
	"errors"
	"fmt"

	"github.com/brensch/snekarena/raw"
)

// MaxHealth is the health ceiling of every snake.
const MaxHealth = 100

type ItemKind uint8

const (
	ItemEmpty ItemKind = iota
	ItemFood
	ItemSnakeHead
	ItemSnakeBody
)

func (k ItemKind) String() string {
	switch k {
	case ItemEmpty:
		return "empty"
	case ItemFood:
		return "food"
	case ItemSnakeHead:
		return "snake_head"
	case ItemSnakeBody:
		return "snake_body"
	default:
		return fmt.Sprintf("item(%d)", uint8(k))
	}
}

// FoodInfo describes a piece of food.
type FoodInfo struct {
	// HealthValue is the health gained (or lost, if negative) by eating it.
	HealthValue int32
}

// SnakeInfo describes the snake occupying a cell, head or body.
type SnakeInfo struct {
	TeamID  uint32
	SnakeID uint32
	Health  uint32
}

// Item is the tagged content of a single cell. The zero value is empty.
type Item struct {
	kind  ItemKind
	food  FoodInfo
	snake SnakeInfo
}

func FoodItem(f FoodInfo) Item       { return Item{kind: ItemFood, food: f} }
func SnakeHeadItem(s SnakeInfo) Item { return Item{kind: ItemSnakeHead, snake: s} }
func SnakeBodyItem(s SnakeInfo) Item { return Item{kind: ItemSnakeBody, snake: s} }

func (it Item) Kind() ItemKind { return it.kind }
func (it Item) IsEmpty() bool  { return it.kind == ItemEmpty }

func (it Item) Food() (FoodInfo, bool) {
	return it.food, it.kind == ItemFood
}

// Snake reports the occupying snake for both head and body cells.
func (it Item) Snake() (SnakeInfo, bool) {
	return it.snake, it.kind == ItemSnakeHead || it.kind == ItemSnakeBody
}

func (it Item) String() string {
	switch it.kind {
	case ItemFood:
		return fmt.Sprintf("food{health=%d}", it.food.HealthValue)
	case ItemSnakeHead, ItemSnakeBody:
		return fmt.Sprintf("%s{team=%d snake=%d health=%d}", it.kind, it.snake.TeamID, it.snake.SnakeID, it.snake.Health)
	default:
		return it.kind.String()
	}
}

// Observation is the decoded content of one arena cell. Poison is the
// per-tick damage dealt to a head resting on the cell and is independent of
// Item.
type Observation struct {
	Item   Item
	Poison uint32
}

var (
	ErrUnknownTag    = errors.New("unknown observation tag")
	ErrHealthOutside = errors.New("snake health outside [0,100]")
)

// DecodeError reports raw observation slots that do not match the host
// contract.
type DecodeError struct {
	Slots [raw.ObservationSlots]uint32
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode observation %v: %v", e.Slots, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeObservation interprets the five observe slots: type, aux0, aux1,
// aux2 and poison.
func DecodeObservation(slots [raw.ObservationSlots]uint32) (Observation, error) {
	item, err := decodeItem(slots[raw.SlotType], slots[raw.SlotAux0], slots[raw.SlotAux1], slots[raw.SlotAux2])
	if err != nil {
		return Observation{}, &DecodeError{Slots: slots, Err: err}
	}
	return Observation{Item: item, Poison: slots[raw.SlotPoison]}, nil
}

// DecodeLegacy interprets the four-slot layout used before poison became a
// separate scalar. Poisonous food is expressed by a negative health value.
func DecodeLegacy(slots [4]uint32) (Observation, error) {
	var full [raw.ObservationSlots]uint32
	copy(full[:], slots[:])
	return DecodeObservation(full)
}

func decodeItem(tag, aux0, aux1, aux2 uint32) (Item, error) {
	switch tag {
	case raw.TypeEmpty:
		return Item{}, nil
	case raw.TypeFood:
		return FoodItem(FoodInfo{HealthValue: int32(aux0)}), nil
	case raw.TypeSnakeHead, raw.TypeSnakeBody:
		if aux2 > MaxHealth {
			return Item{}, fmt.Errorf("%w: %d", ErrHealthOutside, aux2)
		}
		info := SnakeInfo{TeamID: aux0, SnakeID: aux1, Health: aux2}
		if tag == raw.TypeSnakeHead {
			return SnakeHeadItem(info), nil
		}
		return SnakeBodyItem(info), nil
	default:
		return Item{}, fmt.Errorf("%w %d", ErrUnknownTag, tag)
	}
}
