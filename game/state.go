package game

import "github.com/plus3/dotfall/input"

//go:generate stringer -type=State,Action -output=state_string.go

// State is the phase of the active piece.
type State uint8

const (
	// Spawning means no piece is active and the next tick spawns one.
	Spawning State = iota
	Falling
	// Landed means the last piece locked into the board this tick.
	Landed
	// OutOfBounds means the last piece left the field and was discarded.
	OutOfBounds
	GameOver
)

// Action is a queued player command.
type Action uint8

const (
	MoveLeft Action = iota
	MoveRight
	RotateCW
	RotateCCW
	SoftDrop
	HardDrop
	Reset
)

var eventActions = map[input.Event]Action{
	input.Left:      MoveLeft,
	input.Right:     MoveRight,
	input.RotateCW:  RotateCW,
	input.RotateCCW: RotateCCW,
	input.SoftDrop:  SoftDrop,
	input.HardDrop:  HardDrop,
	input.Reset:     Reset,
}

// ActionFor maps an input event onto the action it triggers.
func ActionFor(e input.Event) (Action, bool) {
	a, ok := eventActions[e]
	return a, ok
}
