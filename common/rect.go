package common

// Rect is an axis-aligned box in world pixels. Y grows downward.
type Rect struct {
	X, Y float64
	W, H float64
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }

// Center returns the midpoint of the rect.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// SetBottom moves the rect so its bottom edge sits at y.
func (r *Rect) SetBottom(y float64) { r.Y = y - r.H }

// SetTop moves the rect so its top edge sits at y.
func (r *Rect) SetTop(y float64) { r.Y = y }

// SetRight moves the rect so its right edge sits at x.
func (r *Rect) SetRight(x float64) { r.X = x - r.W }

// SetLeft moves the rect so its left edge sits at x.
func (r *Rect) SetLeft(x float64) { r.X = x }

// Intersects reports whether the two rects overlap. Shared edges do not count.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W &&
		r.X+r.W > other.X &&
		r.Y < other.Y+other.H &&
		r.Y+r.H > other.Y
}

// Inflate grows the rect by m on every side.
func (r Rect) Inflate(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}
