package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Camera keeps a view-sized window over the world centred on a followed
// point. It only does the math; drawing offsets by ViewTopLeft is up to the
// renderer.
type Camera struct {
	X, Y float64

	viewW, viewH   float64
	worldW, worldH float64

	// smoothing factor (0..1]. higher -> faster follow; 0 snaps.
	smooth float64
}

func NewCamera(viewW, viewH float64) *Camera {
	return &Camera{X: viewW / 2, Y: viewH / 2, viewW: viewW, viewH: viewH, smooth: 0.15}
}

// SetWorldBounds sets the world size for clamping. 0 leaves an axis unbounded.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW, c.worldH = w, h
	c.clamp()
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = cp.Clamp(f, 0, 1)
}

func (c *Camera) ViewSize() (float64, float64) {
	return c.viewW, c.viewH
}

// Follow moves the camera toward the target. Call once per tick.
func (c *Camera) Follow(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.X, c.Y = targetX, targetY
	} else {
		c.X = Lerp(c.X, targetX, c.smooth)
		c.Y = Lerp(c.Y, targetY, c.smooth)
	}
	c.clamp()
}

// SnapTo centres the camera immediately, e.g. after a level load.
func (c *Camera) SnapTo(x, y float64) {
	c.X, c.Y = x, y
	c.clamp()
}

// ViewTopLeft returns the world-space top-left of the view, rounded to whole
// pixels so blocks don't shimmer while scrolling.
func (c *Camera) ViewTopLeft() (float64, float64) {
	return math.Round(c.X - c.viewW/2), math.Round(c.Y - c.viewH/2)
}

func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	ox, oy := c.ViewTopLeft()
	return x - ox, y - oy
}

func (c *Camera) ScreenToWorld(x, y float64) (float64, float64) {
	ox, oy := c.ViewTopLeft()
	return x + ox, y + oy
}

func (c *Camera) clamp() {
	c.X = clampAxis(c.X, c.viewW, c.worldW)
	c.Y = clampAxis(c.Y, c.viewH, c.worldH)
}

func clampAxis(pos, view, world float64) float64 {
	if world <= 0 {
		return pos
	}
	half := view / 2
	if world-half < half {
		// world smaller than view: center on world
		return world / 2
	}
	return cp.Clamp(pos, half, world-half)
}
