package obj

import "fmt"

// PlatformState is the lifecycle of a player-spawned platform.
type PlatformState int

const (
	PlatformSolid PlatformState = iota
	PlatformFalling
	PlatformRemoved
)

func (s PlatformState) String() string {
	switch s {
	case PlatformSolid:
		return "solid"
	case PlatformFalling:
		return "falling"
	case PlatformRemoved:
		return "removed"
	}
	return fmt.Sprintf("platform_state(%d)", int(s))
}

// platformMask lets the player rise through a platform and walk through its
// sides, but land on its top.
var platformMask = Passthrough{Bot: true, Left: true, Right: true}

// Platform is a block spawned by the player. It starts solid, starts falling
// the first time it is landed on, and is removed once it drops out of the level.
type Platform struct {
	Block
	state PlatformState
}

// NewPlatform centres a w×h platform horizontally on cx with its top at y.
func NewPlatform(cx, y, w, h float64) (*Platform, error) {
	body, err := NewBody(cx-w/2, y, w, h)
	if err != nil {
		return nil, fmt.Errorf("new platform: %w", err)
	}
	return &Platform{
		Block: Block{
			Body:   body,
			mask:   platformMask,
			kind:   KindPlatform,
			sprite: "platform",
			order:  -1,
		},
	}, nil
}

func (p *Platform) State() PlatformState { return p.state }
func (p *Platform) Falling() bool        { return p.state == PlatformFalling }
func (p *Platform) Speed() float64       { return p.Vel.Y }

// Sprite swaps to the broken art once the platform gives way.
func (p *Platform) Sprite() string {
	if p.state == PlatformSolid {
		return "platform"
	}
	return "platform_broken"
}

// Collide starts the fall. Only a solid platform changes state.
func (p *Platform) Collide() {
	if p.state == PlatformSolid {
		p.state = PlatformFalling
	}
}

// Advance integrates one tick of falling and reports whether the platform has
// left the level through the bottom.
func (p *Platform) Advance(dt float64, t Tuning, levelHeight float64) bool {
	if p.state != PlatformFalling {
		return p.state == PlatformRemoved
	}
	p.AccelerateByGravity(dt, t.Gravity, t.TerminalVelocity)
	p.Y += p.Vel.Y * dt
	if p.Top() >= levelHeight {
		p.state = PlatformRemoved
		return true
	}
	return false
}

func (p *Platform) remove() {
	p.state = PlatformRemoved
}
