package obj

// Action is one logical control the player responds to.
type Action uint8

const (
	ActionJump Action = 1 << iota
	ActionLeft
	ActionRight
	ActionSpawnPlatform
)

func (a Action) String() string {
	switch a {
	case ActionJump:
		return "jump"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionSpawnPlatform:
		return "spawn_platform"
	}
	return "none"
}

// ParseAction maps a config/script name onto an action.
func ParseAction(name string) (Action, bool) {
	for _, a := range []Action{ActionJump, ActionLeft, ActionRight, ActionSpawnPlatform} {
		if a.String() == name {
			return a, true
		}
	}
	return 0, false
}

// InputEventKind is the kind of a raw device event already mapped to an action.
type InputEventKind int

const (
	KeyDown InputEventKind = iota
	KeyUp
	MouseDown
)

// InputEvent is delivered by the input provider. X/Y carry the cursor in
// world pixels for MouseDown.
type InputEvent struct {
	Kind   InputEventKind
	Action Action
	X, Y   float64
}

// Input holds the current logical input state for the player.
type Input struct {
	held    Action
	pressed Action
	// CursorX/CursorY is the world position of the last mouse event.
	CursorX, CursorY float64
}

// Apply folds a device event into the input state.
func (i *Input) Apply(ev InputEvent) {
	switch ev.Kind {
	case KeyDown:
		i.Press(ev.Action)
	case KeyUp:
		i.Release(ev.Action)
	case MouseDown:
		i.CursorX, i.CursorY = ev.X, ev.Y
		// mouse actions are edge-only; nothing keeps them held
		i.pressed |= ev.Action
	}
}

// Press marks a held and records the press edge for this frame.
func (i *Input) Press(a Action) {
	if i.held&a == 0 {
		i.pressed |= a
	}
	i.held |= a
}

func (i *Input) Release(a Action) {
	i.held &^= a
}

// Held reports whether a is currently down.
func (i Input) Held(a Action) bool {
	return i.held&a != 0
}

// JustPressed reports whether a went down since the last EndFrame.
func (i Input) JustPressed(a Action) bool {
	return i.pressed&a != 0
}

// Direction nets left and right together: both held cancel to 0.
func (i Input) Direction() int {
	dir := 0
	if i.Held(ActionLeft) {
		dir--
	}
	if i.Held(ActionRight) {
		dir++
	}
	return dir
}

// EndFrame clears the press edges once a tick has consumed them.
func (i *Input) EndFrame() {
	i.pressed = 0
}
