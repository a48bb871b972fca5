package obj

import (
	"errors"
	"fmt"

	"github.com/milk9111/jumanping/common"
)

// DefaultBlockSize is used for a block that names a sprite but carries no geometry.
const DefaultBlockSize = 32

var ErrMissingGeometry = errors.New("obj: block needs a sprite or a size")

// Kind tags what a collider is so callers can branch without type switches.
type Kind int

const (
	KindStatic Kind = iota
	KindOneWay
	KindPlatform
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindOneWay:
		return "oneway"
	case KindPlatform:
		return "platform"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Passthrough marks which sides of a block an actor may enter from. The zero
// value is solid on every side.
type Passthrough struct {
	Top   bool `json:"top" yaml:"top"`
	Bot   bool `json:"bot" yaml:"bot"`
	Left  bool `json:"left" yaml:"left"`
	Right bool `json:"right" yaml:"right"`
}

// AllowsX reports whether an actor moving horizontally with velocity vx may overlap the block.
func (p Passthrough) AllowsX(vx float64) bool {
	return (vx > 0 && p.Left) || (vx < 0 && p.Right)
}

// AllowsY reports whether an actor moving vertically with velocity vy may overlap the block.
func (p Passthrough) AllowsY(vy float64) bool {
	return (vy > 0 && p.Top) || (vy < 0 && p.Bot)
}

func (p Passthrough) Solid() bool {
	return !p.Top && !p.Bot && !p.Left && !p.Right
}

// Collider is anything the player resolves against.
type Collider interface {
	Bounds() common.Rect
	Mask() Passthrough
	Kind() Kind
	// Collide is called when the player lands on the collider from above.
	Collide()
}

// BlockSpec describes a block handed over by a level provider.
type BlockSpec struct {
	X, Y, W, H  float64
	Sprite      string
	Passthrough Passthrough
}

// Block is a static rectangle of terrain.
type Block struct {
	Body
	mask   Passthrough
	kind   Kind
	sprite string
	order  int
}

// NewBlock validates spec and builds a block that owns its own copy of the mask.
func NewBlock(spec BlockSpec) (*Block, error) {
	w, h := spec.W, spec.H
	if w == 0 || h == 0 {
		if spec.Sprite == "" {
			return nil, fmt.Errorf("%w at (%g,%g)", ErrMissingGeometry, spec.X, spec.Y)
		}
		w, h = DefaultBlockSize, DefaultBlockSize
	}
	body, err := NewBody(spec.X, spec.Y, w, h)
	if err != nil {
		return nil, fmt.Errorf("new block: %w", err)
	}
	kind := KindStatic
	if !spec.Passthrough.Solid() {
		kind = KindOneWay
	}
	return &Block{
		Body:   body,
		mask:   spec.Passthrough,
		kind:   kind,
		sprite: spec.Sprite,
		order:  -1,
	}, nil
}

func (b *Block) Mask() Passthrough { return b.mask }
func (b *Block) Kind() Kind        { return b.kind }
func (b *Block) Sprite() string    { return b.sprite }

// Collide does nothing for terrain.
func (b *Block) Collide() {}
