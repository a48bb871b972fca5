package obj

import (
	"math"
	"slices"

	"github.com/milk9111/jumanping/common"
	"github.com/solarlune/resolv"
)

const (
	tagBlock = "block"
	tagProbe = "probe"
)

// SpaceIndex keeps the blocks in a resolv spatial hash. Each block is mirrored
// by a resolv.Object whose Data points back at it; a single probe object is
// moved around to run queries.
type SpaceIndex struct {
	space *resolv.Space
	probe *resolv.Object
}

func NewSpaceIndex(blocks []*Block, width, height, cell float64) *SpaceIndex {
	// size the space to cover every block so none fall outside the hash
	w, h := width, height
	for _, b := range blocks {
		w = math.Max(w, b.Right())
		h = math.Max(h, b.Bottom())
	}
	cellSize := max(1, int(math.Ceil(cell)))
	space := resolv.NewSpace(int(math.Ceil(w))+cellSize, int(math.Ceil(h))+cellSize, cellSize, cellSize)

	for _, b := range blocks {
		r := b.Bounds()
		obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tagBlock, b.Kind().String())
		obj.Data = b
		space.Add(obj)
	}

	probe := resolv.NewObject(0, 0, 1, 1, tagProbe)
	space.Add(probe)

	return &SpaceIndex{space: space, probe: probe}
}

func (s *SpaceIndex) Near(r common.Rect) []*Block {
	s.probe.X, s.probe.Y = r.X, r.Y
	s.probe.W, s.probe.H = r.W, r.H
	s.probe.Update()

	collision := s.probe.Check(0, 0, tagBlock)
	if collision == nil {
		return nil
	}
	var out []*Block
	for _, o := range collision.Objects {
		b, ok := o.Data.(*Block)
		if !ok || !r.Intersects(b.Bounds()) {
			continue
		}
		out = append(out, b)
	}
	slices.SortFunc(out, byOrder)
	return out
}
