package obj

import (
	"math"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumanping/common"
)

// contactEpsilon keeps float rounding after a snap from registering as overlap.
const contactEpsilon = 1e-6

func penetrates(a, b common.Rect) bool {
	return a.X < b.Right()-contactEpsilon &&
		a.Right() > b.X+contactEpsilon &&
		a.Y < b.Bottom()-contactEpsilon &&
		a.Bottom() > b.Y+contactEpsilon
}

// horizontalCollisions resolves the x move already applied by horizontalMove.
func (p *Player) horizontalCollisions(near []*Block) {
	dir := common.Sign(p.Vel.X)
	if dir != 0 {
		for _, b := range near {
			p.resolveX(b, dir)
		}
		for _, pl := range p.live {
			p.resolveX(pl, dir)
		}
		for _, pl := range p.falling {
			p.resolveX(pl, dir)
		}
	}

	maxX := math.Max(p.levelWidth-p.W, 0)
	if p.X < 0 || p.X > maxX {
		p.X = cp.Clamp(p.X, 0, maxX)
		p.Vel.X = 0
	}
}

func (p *Player) resolveX(c Collider, dir int) {
	r := c.Bounds()
	if !penetrates(p.Rect, r) || c.Mask().AllowsX(float64(dir)) {
		return
	}
	p.Vel.X = 0
	if dir > 0 {
		p.SetRight(r.Left())
	} else {
		p.SetLeft(r.Right())
	}
}

// verticalCollisions resolves the y move: terrain, live platforms, falling
// platforms, then the level floor.
func (p *Player) verticalCollisions(near []*Block) {
	wasGrounded := p.onGround
	p.onGround = false

	dir := common.Sign(p.Vel.Y)
	if dir != 0 {
		for _, b := range near {
			p.resolveY(b, dir)
		}

		// a platform that gives way this tick must not be resolved again as a
		// falling one, so take the falling set before the live pass.
		falling := slices.Clone(p.falling)
		for _, pl := range slices.Clone(p.live) {
			r := pl.Bounds()
			if !penetrates(p.Rect, r) || pl.Mask().AllowsY(float64(dir)) {
				continue
			}
			p.Vel.Y = 0
			if dir > 0 {
				p.SetBottom(r.Top() + 1)
				p.ground()
				p.startFalling(pl)
			} else {
				p.SetTop(r.Bottom())
			}
		}
		for _, pl := range falling {
			p.resolveY(pl, dir)
		}
	}

	if p.Bottom() > p.levelHeight {
		p.SetBottom(p.levelHeight)
		p.ground()
	}

	if p.onGround && !wasGrounded {
		p.events.Push(Event{Kind: EventLanded})
	}
}

func (p *Player) resolveY(c Collider, dir int) {
	r := c.Bounds()
	if !penetrates(p.Rect, r) || c.Mask().AllowsY(float64(dir)) {
		return
	}
	p.Vel.Y = 0
	if dir > 0 {
		p.SetBottom(r.Top())
		p.ground()
	} else {
		p.SetTop(r.Bottom())
	}
}
