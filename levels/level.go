package levels

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumanping/obj"
)

var (
	ErrEmptyLevel  = errors.New("levels: level has no terrain and no size")
	ErrUnknownTile = errors.New("levels: unknown tile kind")
	ErrRaggedRows  = errors.New("levels: terrain rows differ in length")
)

// Tile kinds used in the terrain grid.
const (
	TileEmpty = iota
	TileSolid
	// TileOneWay can be jumped through from below and from the sides.
	TileOneWay
	// TileDropThrough is only solid from below.
	TileDropThrough
)

const DefaultCellSize = 32

// Level is a level as stored on disk. Terrain rows are top to bottom.
type Level struct {
	Name     string      `json:"name,omitempty"`
	CellSize float64     `json:"cell_size,omitempty"`
	Terrain  [][]int     `json:"terrain"`
	Blocks   []BlockDesc `json:"blocks,omitempty"`
	// Start is the [col,row] cell the player's feet rest on the bottom of.
	Start  [2]int  `json:"start"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	// Win is an inline win-condition script; WinScript names a prefab script.
	Win       string `json:"win,omitempty"`
	WinScript string `json:"win_script,omitempty"`
	// NoMerge keeps one block per tile instead of merging runs.
	NoMerge bool `json:"no_merge,omitempty"`
}

// BlockDesc is an explicit rectangle placed in pixels.
type BlockDesc struct {
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
	W           float64         `json:"w,omitempty"`
	H           float64         `json:"h,omitempty"`
	Sprite      string          `json:"sprite,omitempty"`
	Passthrough obj.Passthrough `json:"passthrough"`
}

func (l *Level) cell() float64 {
	if l.CellSize > 0 {
		return l.CellSize
	}
	return DefaultCellSize
}

// Bounds returns the level size in pixels. Explicit width/height win over the
// size of the terrain grid.
func (l *Level) Bounds() (float64, float64) {
	cols := 0
	if len(l.Terrain) > 0 {
		cols = len(l.Terrain[0])
	}
	w, h := float64(cols)*l.cell(), float64(len(l.Terrain))*l.cell()
	if l.Width > 0 {
		w = l.Width
	}
	if l.Height > 0 {
		h = l.Height
	}
	return w, h
}

// StartPosition converts the start cell to the top-left of an actor of the
// given height standing on the bottom of that cell.
func (l *Level) StartPosition(actorHeight float64) (float64, float64) {
	cell := l.cell()
	x := float64(l.Start[0]) * cell
	y := float64(l.Start[1]+1)*cell - actorHeight
	return math.Max(x, 0), math.Max(y, 0)
}

func (l *Level) Validate() error {
	w, h := l.Bounds()
	if w <= 0 || h <= 0 {
		return ErrEmptyLevel
	}
	for row, tiles := range l.Terrain {
		if len(tiles) != len(l.Terrain[0]) {
			return fmt.Errorf("%w: row %d has %d tiles, want %d", ErrRaggedRows, row, len(tiles), len(l.Terrain[0]))
		}
		for col, kind := range tiles {
			if _, ok := tileMask(kind); !ok && kind != TileEmpty {
				return fmt.Errorf("%w: %d at row %d col %d", ErrUnknownTile, kind, row, col)
			}
		}
	}
	return nil
}

// tileMask returns the passthrough mask for a non-empty tile kind.
func tileMask(kind int) (obj.Passthrough, bool) {
	switch kind {
	case TileSolid:
		return obj.Passthrough{}, true
	case TileOneWay:
		return obj.Passthrough{Bot: true, Left: true, Right: true}, true
	case TileDropThrough:
		return obj.Passthrough{Top: true, Left: true, Right: true}, true
	}
	return obj.Passthrough{}, false
}

// BlockSpecs returns the terrain grid as block specs followed by the explicit
// blocks, in that order.
func (l *Level) BlockSpecs() ([]obj.BlockSpec, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	var specs []obj.BlockSpec
	cell := l.cell()
	for _, run := range mergeTiles(l.Terrain, !l.NoMerge) {
		mask, _ := tileMask(run.kind)
		specs = append(specs, obj.BlockSpec{
			X:           run.bb.L * cell,
			Y:           run.bb.B * cell,
			W:           (run.bb.R - run.bb.L) * cell,
			H:           (run.bb.T - run.bb.B) * cell,
			Sprite:      tileSprite(run.kind),
			Passthrough: mask,
		})
	}
	for _, b := range l.Blocks {
		specs = append(specs, obj.BlockSpec{
			X:           b.X,
			Y:           b.Y,
			W:           b.W,
			H:           b.H,
			Sprite:      b.Sprite,
			Passthrough: b.Passthrough,
		})
	}
	return specs, nil
}

func tileSprite(kind int) string {
	switch kind {
	case TileOneWay:
		return "oneway"
	case TileDropThrough:
		return "dropthrough"
	}
	return "block"
}

// Build creates the blocks and the terrain index for the level.
func (l *Level) Build(opts obj.TerrainOptions) (*obj.Terrain, error) {
	specs, err := l.BlockSpecs()
	if err != nil {
		return nil, fmt.Errorf("build level %q: %w", l.Name, err)
	}
	blocks := make([]*obj.Block, 0, len(specs))
	for i, s := range specs {
		b, err := obj.NewBlock(s)
		if err != nil {
			return nil, fmt.Errorf("build level %q: block %d: %w", l.Name, i, err)
		}
		blocks = append(blocks, b)
	}
	if opts.CellSize <= 0 {
		opts.CellSize = l.cell()
	}
	w, h := l.Bounds()
	terrain, err := obj.NewTerrain(blocks, w, h, opts)
	if err != nil {
		return nil, fmt.Errorf("build level %q: %w", l.Name, err)
	}
	return terrain, nil
}

type tileRun struct {
	kind int
	// bb is in cell units: L/R columns, B/T rows (B is the top row, T one past the bottom).
	bb cp.BB
}

// mergeTiles greedily grows rectangles of equal kind, first along the row and
// then downwards. One-way kinds only merge along rows so every tile keeps its
// own top edge.
func mergeTiles(terrain [][]int, merge bool) []tileRun {
	rows := len(terrain)
	if rows == 0 {
		return nil
	}
	cols := len(terrain[0])
	processed := make([]bool, rows*cols)

	var runs []tileRun
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			idx := y*cols + x
			kind := terrain[y][x]
			if processed[idx] || kind == TileEmpty {
				processed[idx] = true
				continue
			}

			w, h := 1, 1
			if merge {
				for x+w < cols && !processed[y*cols+x+w] && terrain[y][x+w] == kind {
					w++
				}
			heightLoop:
				for kind == TileSolid && y+h < rows {
					for xi := x; xi < x+w; xi++ {
						if processed[(y+h)*cols+xi] || terrain[y+h][xi] != kind {
							break heightLoop
						}
					}
					h++
				}
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*cols+xx] = true
				}
			}
			runs = append(runs, tileRun{
				kind: kind,
				bb:   cp.BB{L: float64(x), B: float64(y), R: float64(x + w), T: float64(y + h)},
			})
		}
	}
	return runs
}
