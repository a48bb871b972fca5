package obj

import (
	"errors"
	"fmt"

	"github.com/milk9111/jumanping/common"
)

var ErrUnknownIndex = errors.New("obj: unknown terrain index")

// IndexStrategy selects how the terrain answers proximity queries.
type IndexStrategy string

const (
	IndexScan  IndexStrategy = "scan"
	IndexGrid  IndexStrategy = "grid"
	IndexSpace IndexStrategy = "space"
)

func ParseIndexStrategy(s string) (IndexStrategy, error) {
	switch IndexStrategy(s) {
	case IndexScan, IndexGrid, IndexSpace:
		return IndexStrategy(s), nil
	case "":
		return IndexGrid, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIndex, s)
}

// Index answers "which blocks overlap this rect". Results are in terrain order.
type Index interface {
	Near(r common.Rect) []*Block
}

// TerrainOptions configures NewTerrain. Zero values pick defaults.
type TerrainOptions struct {
	Strategy IndexStrategy
	// CellSize is the grid/space cell edge in pixels.
	CellSize float64
	// Margin grows every query. Callers cover the tick's motion themselves
	// through Player.Reach; the margin only adds slack around it.
	Margin float64
}

// Terrain owns the level's blocks and answers proximity queries.
type Terrain struct {
	blocks []*Block
	index  Index
	width  float64
	height float64
	margin float64
}

// NewTerrain takes ownership of blocks. width/height are the level bounds.
func NewTerrain(blocks []*Block, width, height float64, opts TerrainOptions) (*Terrain, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new terrain: invalid level bounds %gx%g", width, height)
	}
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultBlockSize
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	} else if opts.Margin == 0 {
		opts.Margin = opts.CellSize
	}

	owned := make([]*Block, 0, len(blocks))
	for _, b := range blocks {
		if b == nil {
			continue
		}
		b.order = len(owned)
		owned = append(owned, b)
	}

	t := &Terrain{
		blocks: owned,
		width:  width,
		height: height,
		margin: opts.Margin,
	}

	strategy, err := ParseIndexStrategy(string(opts.Strategy))
	if err != nil {
		return nil, fmt.Errorf("new terrain: %w", err)
	}
	switch strategy {
	case IndexScan:
		t.index = NewScanIndex(owned)
	case IndexGrid:
		t.index = NewGridIndex(owned, width, height, opts.CellSize)
	case IndexSpace:
		t.index = NewSpaceIndex(owned, width, height, opts.CellSize)
	}
	return t, nil
}

// FindNearBlocks returns every block overlapping r grown by the margin. Pass
// Player.Reach to cover everything a tick can touch.
func (t *Terrain) FindNearBlocks(r common.Rect) []*Block {
	if t == nil || t.index == nil {
		return nil
	}
	return t.index.Near(r.Inflate(t.margin))
}

// Blocks returns all terrain blocks in load order.
func (t *Terrain) Blocks() []*Block {
	if t == nil {
		return nil
	}
	return t.blocks
}

// Bounds returns the level size in pixels.
func (t *Terrain) Bounds() (float64, float64) {
	if t == nil {
		return 0, 0
	}
	return t.width, t.height
}
