package obj

import (
	"fmt"
	"math"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumanping/common"
)

// Player is the actor driven by input. It owns the platforms it spawns: an
// ordered queue of live platforms capped at Tuning.MaxPlatforms, and the set
// of platforms that are falling out of the level.
type Player struct {
	Body

	tuning      Tuning
	levelWidth  float64
	levelHeight float64

	onGround        bool
	coyoteTimer     float64
	jumpBufferTimer float64
	facingRight     bool

	live    []*Platform
	falling []*Platform
	events  EventQueue
}

// NewPlayer places a player with its top-left at x, y inside a level of the given size.
func NewPlayer(x, y float64, t Tuning, levelWidth, levelHeight float64) (*Player, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("new player: %w", err)
	}
	body, err := NewBody(x, y, t.PlayerWidth, t.PlayerHeight)
	if err != nil {
		return nil, fmt.Errorf("new player: %w", err)
	}
	return &Player{
		Body:        body,
		tuning:      t,
		levelWidth:  levelWidth,
		levelHeight: levelHeight,
		facingRight: true,
	}, nil
}

func (p *Player) OnGround() bool           { return p.onGround }
func (p *Player) CoyoteTimer() float64     { return p.coyoteTimer }
func (p *Player) JumpBufferTimer() float64 { return p.jumpBufferTimer }
func (p *Player) FacingRight() bool        { return p.facingRight }
func (p *Player) Tuning() Tuning           { return p.tuning }

// Platforms returns the live platforms, oldest first. Callers must not modify it.
func (p *Player) Platforms() []*Platform { return p.live }

// FallingPlatforms returns platforms that gave way and have not left the level yet.
func (p *Player) FallingPlatforms() []*Platform { return p.falling }

// Events exposes what happened during recent ticks.
func (p *Player) Events() *EventQueue { return &p.events }

// SetTuning swaps the movement constants between ticks. Live platforms beyond
// a lowered cap are evicted oldest first.
func (p *Player) SetTuning(t Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("set tuning: %w", err)
	}
	p.tuning = t
	for len(p.live) > t.MaxPlatforms {
		p.evictOldest()
	}
	return nil
}

// Reach returns the area the player can cover during a tick of dt, so a
// terrain query over it holds every block the tick can run into.
func (p *Player) Reach(dt float64) common.Rect {
	dt = math.Max(dt, 0)
	dx := math.Max(math.Abs(p.Vel.X), p.tuning.MovementSpeed) * dt
	dy := max(math.Abs(p.Vel.Y), p.tuning.TerminalVelocity, p.tuning.JumpStrength) * dt
	r := p.Bounds()
	return common.NewRect(r.X-dx, r.Y-dy, r.W+2*dx, r.H+2*dy)
}

// Move advances the player by one tick: platform spawning, horizontal motion
// and collisions, vertical motion and collisions, then the falling sweep.
func (p *Player) Move(in Input, near []*Block, dt float64) {
	if in.JustPressed(ActionSpawnPlatform) {
		p.AddPlatform(in.CursorX, in.CursorY)
	}

	p.horizontalMove(in.Direction(), dt)
	p.horizontalCollisions(near)

	jump := in.JustPressed(ActionJump)
	if p.tuning.HoldToJump {
		jump = in.Held(ActionJump)
	}
	p.verticalMove(jump, dt)
	p.verticalCollisions(near)

	p.sweepFalling(dt)
}

func (p *Player) horizontalMove(direction int, dt float64) {
	control := 1.0
	if !p.onGround {
		control = p.tuning.AirborneMovementFactor
	}

	if direction != 0 {
		target := float64(direction) * p.tuning.MovementSpeed
		p.Vel.X = common.Approach(p.Vel.X, target, p.tuning.Acceleration*control*dt)
		p.facingRight = direction > 0
	} else {
		p.Vel.X = common.Approach(p.Vel.X, 0, p.tuning.Deceleration*control*dt)
	}

	p.X += p.Vel.X * dt
}

func (p *Player) verticalMove(jumpPressed bool, dt float64) {
	if p.onGround {
		p.coyoteTimer = p.tuning.CoyoteTime
	} else {
		p.coyoteTimer = math.Max(0, p.coyoteTimer-dt)
	}
	if p.jumpBufferTimer > 0 {
		p.jumpBufferTimer = math.Max(0, p.jumpBufferTimer-dt)
	}

	p.AccelerateByGravity(dt, p.tuning.Gravity, p.tuning.TerminalVelocity)

	if jumpPressed || p.jumpBufferTimer > 0 {
		if p.canJump() {
			p.jump()
		} else if jumpPressed {
			p.jumpBufferTimer = p.tuning.JumpBufferTime
		}
	}

	p.Y += p.Vel.Y * dt
}

func (p *Player) canJump() bool {
	return p.onGround || p.coyoteTimer > 0
}

func (p *Player) jump() {
	p.Vel.Y = -p.tuning.JumpStrength
	p.onGround = false
	p.coyoteTimer = 0
	p.jumpBufferTimer = 0
	p.events.Push(Event{Kind: EventJumped})
}

// ground marks the player as standing on something this tick.
func (p *Player) ground() {
	p.onGround = true
	p.Vel.Y = 0
	p.coyoteTimer = p.tuning.CoyoteTime
}

// AddPlatform spawns a platform centred horizontally on x with its top at y.
// It returns false when platforms are disabled or the platform would overlap
// the player. At capacity the oldest live platform is evicted first.
func (p *Player) AddPlatform(x, y float64) bool {
	if p.tuning.MaxPlatforms <= 0 {
		p.events.Push(Event{Kind: EventPlatformRejected})
		return false
	}
	pl, err := NewPlatform(x, y, p.tuning.PlatformWidth, p.tuning.PlatformHeight)
	if err != nil || pl.Bounds().Intersects(p.Bounds()) {
		p.events.Push(Event{Kind: EventPlatformRejected, Platform: pl})
		return false
	}
	for len(p.live) >= p.tuning.MaxPlatforms {
		p.evictOldest()
	}
	p.live = append(p.live, pl)
	p.events.Push(Event{Kind: EventPlatformSpawned, Platform: pl})
	return true
}

func (p *Player) evictOldest() {
	if len(p.live) == 0 {
		return
	}
	oldest := p.live[0]
	p.live[0] = nil
	p.live = p.live[1:]
	oldest.remove()
	p.events.Push(Event{Kind: EventPlatformEvicted, Platform: oldest})
}

// sweepFalling advances falling platforms and drops the ones that left the level.
func (p *Player) sweepFalling(dt float64) {
	kept := p.falling[:0]
	for _, pl := range p.falling {
		if pl.Advance(dt, p.tuning, p.levelHeight) {
			p.events.Push(Event{Kind: EventPlatformRemoved, Platform: pl})
			continue
		}
		kept = append(kept, pl)
	}
	clear(p.falling[len(kept):])
	p.falling = kept
}

// startFalling moves pl from the live queue into the falling set.
func (p *Player) startFalling(pl *Platform) {
	pl.Collide()
	p.live = slices.DeleteFunc(p.live, func(x *Platform) bool { return x == pl })
	p.falling = append(p.falling, pl)
	p.events.Push(Event{Kind: EventPlatformFalling, Platform: pl})
}

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Player      common.Rect
	Vel         cp.Vector
	OnGround    bool
	CoyoteTimer float64
	FacingRight bool
	Platforms   []common.Rect
	Falling     []common.Rect
}

func (p *Player) Snapshot() Snapshot {
	s := Snapshot{
		Player:      p.Bounds(),
		Vel:         p.Vel,
		OnGround:    p.onGround,
		CoyoteTimer: p.coyoteTimer,
		FacingRight: p.facingRight,
		Platforms:   make([]common.Rect, 0, len(p.live)),
		Falling:     make([]common.Rect, 0, len(p.falling)),
	}
	for _, pl := range p.live {
		s.Platforms = append(s.Platforms, pl.Bounds())
	}
	for _, pl := range p.falling {
		s.Falling = append(s.Falling, pl.Bounds())
	}
	return s
}
