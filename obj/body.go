package obj

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumanping/common"
)

var ErrNegativeSize = errors.New("obj: negative size")

// Body is the shared physics body: a positioned rect plus a velocity.
type Body struct {
	common.Rect
	Vel cp.Vector
}

// NewBody builds a body. Negative coordinates are clamped to zero; negative
// sizes are rejected.
func NewBody(x, y, w, h float64) (Body, error) {
	if w < 0 || h < 0 {
		return Body{}, fmt.Errorf("%w: %gx%g", ErrNegativeSize, w, h)
	}
	return Body{Rect: common.NewRect(math.Max(x, 0), math.Max(y, 0), w, h)}, nil
}

func (b *Body) Bounds() common.Rect {
	return b.Rect
}

func (b *Body) Velocity() cp.Vector {
	return b.Vel
}

// AccelerateByGravity adds gravity*dt to the vertical velocity, capped at terminal.
func (b *Body) AccelerateByGravity(dt, gravity, terminal float64) {
	b.Vel.Y = math.Min(b.Vel.Y+gravity*dt, terminal)
}
