package obj

import (
	"cmp"
	"math"
	"slices"

	"github.com/milk9111/jumanping/common"
)

func byOrder(a, b *Block) int {
	return cmp.Compare(a.order, b.order)
}

// ScanIndex tests every block. Simplest and always correct.
type ScanIndex struct {
	blocks []*Block
}

func NewScanIndex(blocks []*Block) *ScanIndex {
	return &ScanIndex{blocks: blocks}
}

func (s *ScanIndex) Near(r common.Rect) []*Block {
	var out []*Block
	for _, b := range s.blocks {
		if r.Intersects(b.Bounds()) {
			out = append(out, b)
		}
	}
	return out
}

// GridIndex buckets blocks into fixed cells covering the level. A block is
// stored in every cell it touches; anything outside the level is clamped onto
// the edge cells so it can never be missed.
type GridIndex struct {
	cell       float64
	cols, rows int
	cells      [][]*Block
}

func NewGridIndex(blocks []*Block, width, height, cell float64) *GridIndex {
	g := &GridIndex{
		cell: cell,
		cols: max(1, int(math.Ceil(width/cell))),
		rows: max(1, int(math.Ceil(height/cell))),
	}
	g.cells = make([][]*Block, g.cols*g.rows)
	for _, b := range blocks {
		minX, minY, maxX, maxY := g.cellRange(b.Bounds())
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				idx := y*g.cols + x
				g.cells[idx] = append(g.cells[idx], b)
			}
		}
	}
	return g
}

// cellRange returns the inclusive cell span covering r, clamped to the grid.
func (g *GridIndex) cellRange(r common.Rect) (int, int, int, int) {
	minX := int(math.Floor(r.Left() / g.cell))
	minY := int(math.Floor(r.Top() / g.cell))
	maxX := int(math.Floor(r.Right() / g.cell))
	maxY := int(math.Floor(r.Bottom() / g.cell))

	clamp := func(v, hi int) int {
		if v < 0 {
			return 0
		}
		if v > hi {
			return hi
		}
		return v
	}
	return clamp(minX, g.cols-1), clamp(minY, g.rows-1), clamp(maxX, g.cols-1), clamp(maxY, g.rows-1)
}

func (g *GridIndex) Near(r common.Rect) []*Block {
	minX, minY, maxX, maxY := g.cellRange(r)
	seen := make(map[*Block]struct{})
	var out []*Block
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for _, b := range g.cells[y*g.cols+x] {
				if _, ok := seen[b]; ok {
					continue
				}
				seen[b] = struct{}{}
				if r.Intersects(b.Bounds()) {
					out = append(out, b)
				}
			}
		}
	}
	slices.SortFunc(out, byOrder)
	return out
}
