package game

import (
	"fmt"
	"time"

	"github.com/milk9111/jumanping/obj"
)

// State is the coarse game state. WIN and QUIT are terminal.
type State int

const (
	StatePlay State = iota
	StateWin
	StateQuit
)

func (s State) String() string {
	switch s {
	case StatePlay:
		return "PLAY"
	case StateWin:
		return "WIN"
	case StateQuit:
		return "QUIT"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) Terminal() bool { return s != StatePlay }

// Clock supplies wall time for variable-dt stepping.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type EventKind int

const (
	EventInput EventKind = iota
	EventQuit
)

// Event is what the platform layer hands to the loop each frame.
type Event struct {
	Kind  EventKind
	Input obj.InputEvent
}

func Quit() Event { return Event{Kind: EventQuit} }

func KeyDown(a obj.Action) Event {
	return Event{Kind: EventInput, Input: obj.InputEvent{Kind: obj.KeyDown, Action: a}}
}

func KeyUp(a obj.Action) Event {
	return Event{Kind: EventInput, Input: obj.InputEvent{Kind: obj.KeyUp, Action: a}}
}

func MouseDown(a obj.Action, x, y float64) Event {
	return Event{Kind: EventInput, Input: obj.InputEvent{Kind: obj.MouseDown, Action: a, X: x, Y: y}}
}

// WinCondition decides whether the level is complete after a tick.
type WinCondition interface {
	Won(snap obj.Snapshot, levelWidth, levelHeight float64) (bool, error)
}

type WinFunc func(snap obj.Snapshot, levelWidth, levelHeight float64) (bool, error)

func (f WinFunc) Won(snap obj.Snapshot, levelWidth, levelHeight float64) (bool, error) {
	return f(snap, levelWidth, levelHeight)
}
