package obj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDT          = 0.016
	testLevelWidth  = 1500.0
	testLevelHeight = 800.0
)

func newTestPlayer(t *testing.T, x, y float64, tn Tuning) *Player {
	t.Helper()
	p, err := NewPlayer(x, y, tn, testLevelWidth, testLevelHeight)
	require.NoError(t, err)
	return p
}

func mustBlock(t *testing.T, x, y, w, h float64, mask Passthrough) *Block {
	t.Helper()
	b, err := NewBlock(BlockSpec{X: x, Y: y, W: w, H: h, Passthrough: mask})
	require.NoError(t, err)
	return b
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewPlayerRejectsInvalidTuning(t *testing.T) {
	tn := DefaultTuning()
	tn.AirborneMovementFactor = 2
	_, err := NewPlayer(0, 0, tn, testLevelWidth, testLevelHeight)
	require.ErrorIs(t, err, ErrInvalidTuning)
}

func TestJumpFromGround(t *testing.T) {
	floor := mustBlock(t, 0, 736, testLevelWidth, 64, Passthrough{})
	p := newTestPlayer(t, 100, 672, DefaultTuning())
	p.onGround = true
	p.coyoteTimer = 0.1

	var in Input
	in.Press(ActionJump)
	p.Move(in, []*Block{floor}, testDT)

	assert.Equal(t, -600.0, p.Vel.Y)
	assert.False(t, p.OnGround())
	assert.Zero(t, p.CoyoteTimer())
	assert.Zero(t, p.JumpBufferTimer())
	assert.Equal(t, 1, countEvents(p.Events().Drain(), EventJumped))
}

func TestAirborneDeceleration(t *testing.T) {
	p := newTestPlayer(t, 100, 100, DefaultTuning())
	p.Vel.X = 300

	p.Move(Input{}, nil, testDT)

	assert.InDelta(t, 298.0, p.Vel.X, 1e-9)
	assert.InDelta(t, 100+298.0*testDT, p.X, 1e-9)
}

func TestGroundAcceleration(t *testing.T) {
	floor := mustBlock(t, 0, 736, testLevelWidth, 64, Passthrough{})
	p := newTestPlayer(t, 1000, 672, DefaultTuning())
	p.onGround = true

	var in Input
	in.Press(ActionRight)
	p.Move(in, []*Block{floor}, testDT)

	assert.InDelta(t, 20.0, p.Vel.X, 1e-9)
	assert.True(t, p.FacingRight())
	assert.True(t, p.OnGround())

	in.Release(ActionRight)
	in.Press(ActionLeft)
	in.EndFrame()
	for i := 0; i < 100; i++ {
		p.Move(in, []*Block{floor}, testDT)
		in.EndFrame()
	}
	assert.Equal(t, -300.0, p.Vel.X, "speed never exceeds the movement speed")
	assert.False(t, p.FacingRight())
}

func TestBothDirectionsDecelerate(t *testing.T) {
	p := newTestPlayer(t, 100, 100, DefaultTuning())
	p.Vel.X = -300

	var in Input
	in.Press(ActionLeft)
	in.Press(ActionRight)
	p.Move(in, nil, testDT)

	assert.InDelta(t, -298.0, p.Vel.X, 1e-9)
}

func TestGravityIsCapped(t *testing.T) {
	p, err := NewPlayer(100, 0, DefaultTuning(), testLevelWidth, 1e7)
	require.NoError(t, err)

	for i := 0; i < 300; i++ {
		p.Move(Input{}, nil, testDT)
		require.LessOrEqual(t, p.Vel.Y, p.Tuning().TerminalVelocity)
	}
	assert.Equal(t, p.Tuning().TerminalVelocity, p.Vel.Y)
}

func TestSolidBlocksContainThePlayer(t *testing.T) {
	tests := []struct {
		name  string
		block *Block
		x, y  float64
		vx    float64
		vy    float64
		held  Action
		check func(t *testing.T, p *Player, b *Block)
	}{
		{
			name:  "landing_on_floor",
			block: mustBlock(t, 0, 400, 640, 32, Passthrough{}),
			x:     100, y: 334, vy: 600,
			check: func(t *testing.T, p *Player, b *Block) {
				assert.Equal(t, b.Top(), p.Bottom())
				assert.True(t, p.OnGround())
				assert.Zero(t, p.Vel.Y)
			},
		},
		{
			name:  "running_into_wall_from_left",
			block: mustBlock(t, 200, 0, 32, 400, Passthrough{}),
			x:     167, y: 300, vx: 300, held: ActionRight,
			check: func(t *testing.T, p *Player, b *Block) {
				assert.Equal(t, b.Left(), p.Right())
				assert.Zero(t, p.Vel.X)
			},
		},
		{
			name:  "running_into_wall_from_right",
			block: mustBlock(t, 200, 0, 32, 400, Passthrough{}),
			x:     233, y: 300, vx: -300, held: ActionLeft,
			check: func(t *testing.T, p *Player, b *Block) {
				assert.Equal(t, b.Right(), p.Left())
				assert.Zero(t, p.Vel.X)
			},
		},
		{
			name:  "head_against_ceiling",
			block: mustBlock(t, 0, 0, 640, 100, Passthrough{}),
			x:     100, y: 102, vy: -600,
			check: func(t *testing.T, p *Player, b *Block) {
				assert.Equal(t, b.Bottom(), p.Top())
				assert.Zero(t, p.Vel.Y)
				assert.False(t, p.OnGround())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer(t, tt.x, tt.y, DefaultTuning())
			p.Vel.X, p.Vel.Y = tt.vx, tt.vy

			var in Input
			if tt.held != 0 {
				in.Press(tt.held)
			}
			p.Move(in, []*Block{tt.block}, testDT)

			assert.False(t, penetrates(p.Bounds(), tt.block.Bounds()), "player %v overlaps %v", p.Bounds(), tt.block.Bounds())
			tt.check(t, p, tt.block)
		})
	}
}

func TestPassthroughFollowsVelocitySign(t *testing.T) {
	tests := []struct {
		name     string
		mask     Passthrough
		vy       float64
		wantPass bool
	}{
		{name: "rising_through_open_bottom", mask: Passthrough{Bot: true}, vy: -600, wantPass: true},
		{name: "rising_into_top_only", mask: Passthrough{Top: true}, vy: -600, wantPass: false},
		{name: "falling_through_open_top", mask: Passthrough{Top: true}, vy: 600, wantPass: true},
		{name: "falling_onto_open_bottom", mask: Passthrough{Bot: true}, vy: 600, wantPass: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the player starts straddling the block's edge in the direction of travel
			b := mustBlock(t, 0, 300, 640, 32, tt.mask)
			y := 300.0 - 64 + 4
			if tt.vy < 0 {
				y = 332 - 4
			}
			p := newTestPlayer(t, 100, y, DefaultTuning())
			p.Vel.Y = tt.vy

			p.Move(Input{}, []*Block{b}, testDT)

			if tt.wantPass {
				assert.NotZero(t, p.Vel.Y)
				assert.True(t, penetrates(p.Bounds(), b.Bounds()))
			} else {
				assert.Zero(t, p.Vel.Y)
				assert.False(t, penetrates(p.Bounds(), b.Bounds()))
			}
		})
	}
}

func TestCoyoteTime(t *testing.T) {
	ledge := mustBlock(t, 0, 400, 200, 32, Passthrough{})
	near := []*Block{ledge}

	walkOff := func(t *testing.T) *Player {
		p := newTestPlayer(t, 199, 336, DefaultTuning())
		p.onGround = true
		p.Vel.X = 300
		var in Input
		in.Press(ActionRight)
		p.Move(in, near, testDT)
		require.False(t, p.OnGround())
		require.InDelta(t, 0.1, p.CoyoteTimer(), 1e-12)
		return p
	}

	t.Run("jump_inside_window", func(t *testing.T) {
		p := walkOff(t)
		var in Input
		in.Press(ActionJump)
		p.Move(in, near, testDT)
		assert.Equal(t, -600.0, p.Vel.Y)
	})

	t.Run("jump_after_window", func(t *testing.T) {
		p := walkOff(t)
		for i := 0; i < 7; i++ {
			p.Move(Input{}, near, testDT)
		}
		require.Zero(t, p.CoyoteTimer())

		var in Input
		in.Press(ActionJump)
		p.Move(in, near, testDT)
		assert.Positive(t, p.Vel.Y)
		assert.InDelta(t, p.Tuning().JumpBufferTime, p.JumpBufferTimer(), 1e-12)
	})
}

func TestJumpBuffer(t *testing.T) {
	floor := mustBlock(t, 0, 400, 640, 32, Passthrough{})
	near := []*Block{floor}

	tests := []struct {
		name       string
		bufferTime float64
		wantJump   bool
	}{
		{name: "buffered_press_jumps_after_landing", bufferTime: 0.1, wantJump: true},
		{name: "buffering_disabled", bufferTime: 0, wantJump: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tn := DefaultTuning()
			tn.JumpBufferTime = tt.bufferTime
			p := newTestPlayer(t, 100, 334, tn)
			p.Vel.Y = 200

			var in Input
			in.Press(ActionJump)
			p.Move(in, near, testDT)
			require.True(t, p.OnGround(), "landed on the press tick")
			in.EndFrame()

			p.Move(in, near, testDT)
			if tt.wantJump {
				assert.Equal(t, -600.0, p.Vel.Y)
				assert.False(t, p.OnGround())
			} else {
				assert.Zero(t, p.Vel.Y)
				assert.True(t, p.OnGround())
			}
		})
	}
}

func TestHoldToJump(t *testing.T) {
	floor := mustBlock(t, 0, 400, 640, 32, Passthrough{})
	near := []*Block{floor}

	tests := []struct {
		name     string
		hold     bool
		wantJump bool
	}{
		{name: "press_only", hold: false, wantJump: false},
		{name: "held_key_jumps_on_landing", hold: true, wantJump: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tn := DefaultTuning()
			tn.JumpBufferTime = 0
			tn.HoldToJump = tt.hold
			p := newTestPlayer(t, 100, 334, tn)
			p.Vel.Y = 200

			var in Input
			in.Press(ActionJump)
			p.Move(in, near, testDT)
			require.True(t, p.OnGround(), "landed while the key was down")
			in.EndFrame()

			// key still held, no new press
			p.Move(in, near, testDT)
			if tt.wantJump {
				assert.Equal(t, -600.0, p.Vel.Y)
				assert.False(t, p.OnGround())
			} else {
				assert.Zero(t, p.Vel.Y)
				assert.True(t, p.OnGround())
			}
		})
	}
}

func TestReach(t *testing.T) {
	p := newTestPlayer(t, 100, 100, DefaultTuning())

	r := p.Reach(0.05)
	assert.InDelta(t, 85.0, r.X, 1e-9)
	assert.InDelta(t, 55.0, r.Y, 1e-9)
	assert.InDelta(t, 62.0, r.W, 1e-9)
	assert.InDelta(t, 154.0, r.H, 1e-9)

	p.Vel.X = -500
	assert.InDelta(t, 75.0, p.Reach(0.05).X, 1e-9)
	assert.Equal(t, p.Bounds(), p.Reach(0))
}

func TestFastFallLandsThroughTerrainQuery(t *testing.T) {
	const dt = 0.05
	for _, strategy := range []IndexStrategy{IndexScan, IndexGrid, IndexSpace} {
		t.Run(string(strategy), func(t *testing.T) {
			floor := mustBlock(t, 0, 500, 640, 32, Passthrough{})
			terrain, err := NewTerrain([]*Block{floor}, 640, 800, TerrainOptions{
				Strategy: strategy,
				CellSize: 32,
				Margin:   32,
			})
			require.NoError(t, err)

			// 40px above the floor, covering 45px this tick
			p := newTestPlayer(t, 100, 396, DefaultTuning())
			p.Vel.Y = 900
			require.Empty(t, terrain.FindNearBlocks(p.Bounds()))

			near := terrain.FindNearBlocks(p.Reach(dt))
			require.Equal(t, []*Block{floor}, near)
			p.Move(Input{}, near, dt)

			assert.True(t, p.OnGround())
			assert.Equal(t, 500.0, p.Bottom())
			assert.Zero(t, p.Vel.Y)
		})
	}
}

func TestPlatformQueueIsFIFO(t *testing.T) {
	p := newTestPlayer(t, 0, 0, DefaultTuning())

	require.True(t, p.AddPlatform(300, 300))
	require.True(t, p.AddPlatform(500, 300))
	first, second := p.Platforms()[0], p.Platforms()[1]

	require.True(t, p.AddPlatform(700, 300))
	live := p.Platforms()
	require.Len(t, live, 2)
	assert.Same(t, second, live[0])
	assert.Equal(t, 652.0, live[1].X)
	assert.Equal(t, PlatformRemoved, first.State())

	events := p.Events().Drain()
	assert.Equal(t, 3, countEvents(events, EventPlatformSpawned))
	assert.Equal(t, 1, countEvents(events, EventPlatformEvicted))
}

func TestAddPlatformRejected(t *testing.T) {
	t.Run("overlapping_player", func(t *testing.T) {
		p := newTestPlayer(t, 100, 100, DefaultTuning())
		assert.False(t, p.AddPlatform(116, 120))
		assert.Empty(t, p.Platforms())
		assert.Equal(t, 1, countEvents(p.Events().Drain(), EventPlatformRejected))
	})
	t.Run("platforms_disabled", func(t *testing.T) {
		tn := DefaultTuning()
		tn.MaxPlatforms = 0
		p := newTestPlayer(t, 100, 100, tn)
		assert.False(t, p.AddPlatform(500, 500))
		assert.Empty(t, p.Platforms())
	})
}

func TestSpawnFromInput(t *testing.T) {
	p := newTestPlayer(t, 100, 100, DefaultTuning())
	var in Input
	in.Apply(InputEvent{Kind: MouseDown, Action: ActionSpawnPlatform, X: 400, Y: 500})
	p.Move(in, nil, testDT)

	require.Len(t, p.Platforms(), 1)
	assert.Equal(t, 352.0, p.Platforms()[0].X)
	assert.Equal(t, 500.0, p.Platforms()[0].Y)
}

func TestLandingOnPlatformStartsItFalling(t *testing.T) {
	p := newTestPlayer(t, 100, 104, DefaultTuning())
	p.Vel.Y = 300
	require.True(t, p.AddPlatform(116, 170))
	pl := p.Platforms()[0]

	p.Move(Input{}, nil, testDT)

	assert.True(t, p.OnGround())
	assert.Equal(t, 171.0, p.Bottom())
	assert.Empty(t, p.Platforms())
	require.Len(t, p.FallingPlatforms(), 1)
	assert.Same(t, pl, p.FallingPlatforms()[0])
	assert.Equal(t, PlatformFalling, pl.State())

	// touching it again while it falls does not trigger it twice
	for i := 0; i < 5; i++ {
		p.Move(Input{}, nil, testDT)
	}
	assert.Equal(t, PlatformFalling, pl.State())
	assert.Equal(t, 1, countEvents(p.Events().Drain(), EventPlatformFalling))
}

func TestFallingPlatformLeavesTheLevel(t *testing.T) {
	p := newTestPlayer(t, 0, 0, DefaultTuning())
	require.True(t, p.AddPlatform(800, 700))
	pl := p.Platforms()[0]
	p.startFalling(pl)

	for i := 0; i < 200 && len(p.FallingPlatforms()) > 0; i++ {
		p.sweepFalling(testDT)
	}
	assert.Empty(t, p.FallingPlatforms())
	assert.Equal(t, PlatformRemoved, pl.State())
	assert.GreaterOrEqual(t, pl.Top(), testLevelHeight)
	assert.Equal(t, 1, countEvents(p.Events().Drain(), EventPlatformRemoved))
}

func TestLevelBoundsClampThePlayer(t *testing.T) {
	t.Run("left_edge", func(t *testing.T) {
		p := newTestPlayer(t, 1, 100, DefaultTuning())
		p.Vel.X = -300
		var in Input
		in.Press(ActionLeft)
		p.Move(in, nil, testDT)
		assert.Zero(t, p.X)
		assert.Zero(t, p.Vel.X)
	})
	t.Run("right_edge", func(t *testing.T) {
		p := newTestPlayer(t, testLevelWidth-33, 100, DefaultTuning())
		p.Vel.X = 300
		var in Input
		in.Press(ActionRight)
		p.Move(in, nil, testDT)
		assert.Equal(t, testLevelWidth, p.Right())
		assert.Zero(t, p.Vel.X)
	})
	t.Run("bottom_edge_grounds", func(t *testing.T) {
		p := newTestPlayer(t, 100, testLevelHeight-65, DefaultTuning())
		p.Vel.Y = 600
		p.Move(Input{}, nil, testDT)
		assert.Equal(t, testLevelHeight, p.Bottom())
		assert.True(t, p.OnGround())
	})
}

func TestSetTuningEvictsExtraPlatforms(t *testing.T) {
	p := newTestPlayer(t, 0, 0, DefaultTuning())
	require.True(t, p.AddPlatform(300, 300))
	require.True(t, p.AddPlatform(500, 300))
	second := p.Platforms()[1]

	tn := DefaultTuning()
	tn.MaxPlatforms = 1
	require.NoError(t, p.SetTuning(tn))
	require.Len(t, p.Platforms(), 1)
	assert.Same(t, second, p.Platforms()[0])

	tn.Gravity = -1
	require.ErrorIs(t, p.SetTuning(tn), ErrInvalidTuning)
	assert.Equal(t, 1, p.Tuning().MaxPlatforms)
}

func TestSnapshot(t *testing.T) {
	p := newTestPlayer(t, 10, 20, DefaultTuning())
	require.True(t, p.AddPlatform(300, 300))

	s := p.Snapshot()
	assert.Equal(t, p.Bounds(), s.Player)
	assert.Len(t, s.Platforms, 1)
	assert.Empty(t, s.Falling)
	assert.True(t, s.FacingRight)
}
