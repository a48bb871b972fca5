package obj

import (
	"math/rand"
	"testing"

	"github.com/milk9111/jumanping/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlocks(t *testing.T) []*Block {
	t.Helper()
	specs := []BlockSpec{
		{X: 0, Y: 736, W: 1500, H: 64},
		{X: 300, Y: 650, W: 128, H: 32},
		{X: 500, Y: 500, W: 32, H: 32, Passthrough: Passthrough{Bot: true, Left: true, Right: true}},
		{X: 900, Y: 400, W: 64, H: 336},
		{X: 1450, Y: 100, W: 96, H: 32},
	}
	var blocks []*Block
	for _, s := range specs {
		b, err := NewBlock(s)
		require.NoError(t, err)
		blocks = append(blocks, b)
	}
	return blocks
}

func TestNewTerrainRejectsBadInput(t *testing.T) {
	_, err := NewTerrain(nil, 0, 100, TerrainOptions{})
	require.Error(t, err)

	_, err = NewTerrain(nil, 100, 100, TerrainOptions{Strategy: "quadtree"})
	require.ErrorIs(t, err, ErrUnknownIndex)
}

func TestParseIndexStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    IndexStrategy
		wantErr bool
	}{
		{in: "", want: IndexGrid},
		{in: "scan", want: IndexScan},
		{in: "grid", want: IndexGrid},
		{in: "space", want: IndexSpace},
		{in: "bvh", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIndexStrategy(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownIndex)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindNearBlocks(t *testing.T) {
	for _, strategy := range []IndexStrategy{IndexScan, IndexGrid, IndexSpace} {
		t.Run(string(strategy), func(t *testing.T) {
			blocks := testBlocks(t)
			terrain, err := NewTerrain(blocks, 1500, 800, TerrainOptions{Strategy: strategy})
			require.NoError(t, err)

			// standing on the floor next to the raised ledge
			near := terrain.FindNearBlocks(common.NewRect(260, 672, 32, 64))
			assert.Equal(t, []*Block{blocks[0], blocks[1]}, near)

			// far up in empty sky
			assert.Empty(t, terrain.FindNearBlocks(common.NewRect(100, 0, 32, 64)))

			// a block extending past the level edge is still found
			assert.Equal(t, []*Block{blocks[4]}, terrain.FindNearBlocks(common.NewRect(1450, 40, 32, 64)))
		})
	}
}

func TestIndexesAgreeWithScan(t *testing.T) {
	blocks := testBlocks(t)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 60; i++ {
		b, err := NewBlock(BlockSpec{
			X: float64(rng.Intn(1400)),
			Y: float64(rng.Intn(760)),
			W: float64(8 + rng.Intn(120)),
			H: float64(8 + rng.Intn(60)),
		})
		require.NoError(t, err)
		blocks = append(blocks, b)
	}

	scan, err := NewTerrain(blocks, 1500, 800, TerrainOptions{Strategy: IndexScan})
	require.NoError(t, err)
	grid, err := NewTerrain(blocks, 1500, 800, TerrainOptions{Strategy: IndexGrid})
	require.NoError(t, err)
	space, err := NewTerrain(blocks, 1500, 800, TerrainOptions{Strategy: IndexSpace})
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		r := common.NewRect(float64(rng.Intn(1500)), float64(rng.Intn(800)), 32, 64)
		want := scan.FindNearBlocks(r)
		assert.Equal(t, want, grid.FindNearBlocks(r), "grid query %v", r)
		assert.Equal(t, want, space.FindNearBlocks(r), "space query %v", r)
	}
}

func TestTerrainSkipsNilBlocks(t *testing.T) {
	b, err := NewBlock(BlockSpec{X: 0, Y: 0, W: 10, H: 10})
	require.NoError(t, err)
	terrain, err := NewTerrain([]*Block{nil, b, nil}, 100, 100, TerrainOptions{})
	require.NoError(t, err)

	assert.Equal(t, []*Block{b}, terrain.Blocks())
	w, h := terrain.Bounds()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 100.0, h)
}
