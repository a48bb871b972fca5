package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/jumanping/common"
	"github.com/milk9111/jumanping/game"
	"github.com/milk9111/jumanping/obj"
)

const stickDeadzone = 0.2

type binding struct {
	action obj.Action
	keys   []ebiten.Key
	pad    []ebiten.StandardGamepadButton
}

var bindings = []binding{
	{action: obj.ActionLeft, keys: []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft}},
	{action: obj.ActionRight, keys: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight}},
	{action: obj.ActionJump, keys: []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom}},
}

// InputPoller turns device state into game events. Several keys can map to
// one action, so key-down/key-up events are emitted when the action's combined
// state changes rather than per key.
type InputPoller struct {
	held obj.Action
}

// Poll reads the devices once. The camera maps the cursor into world space.
func (p *InputPoller) Poll(cam *common.Camera) []game.Event {
	var events []game.Event

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		events = append(events, game.Quit())
	}

	var held obj.Action
	for _, b := range bindings {
		if bindingHeld(b) {
			held |= b.action
		}
	}
	if pads := ebiten.AppendGamepadIDs(nil); len(pads) > 0 {
		x := ebiten.StandardGamepadAxisValue(pads[0], ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(x) > stickDeadzone {
			if x < 0 {
				held |= obj.ActionLeft
			} else {
				held |= obj.ActionRight
			}
		}
	}

	for _, b := range bindings {
		was, is := p.held&b.action != 0, held&b.action != 0
		switch {
		case is && !was:
			events = append(events, game.KeyDown(b.action))
		case was && !is:
			events = append(events, game.KeyUp(b.action))
		}
	}
	p.held = held

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		cx, cy := ebiten.CursorPosition()
		x, y := cam.ScreenToWorld(float64(cx), float64(cy))
		events = append(events, game.MouseDown(obj.ActionSpawnPlatform, x, y))
	}
	return events
}

func bindingHeld(b binding) bool {
	for _, k := range b.keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		for _, btn := range b.pad {
			if ebiten.IsStandardGamepadButtonPressed(id, btn) {
				return true
			}
		}
	}
	return false
}
