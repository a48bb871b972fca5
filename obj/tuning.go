package obj

import (
	"errors"
	"fmt"
)

var ErrInvalidTuning = errors.New("obj: invalid tuning")

// Tuning holds every externally settable movement constant. Distances are in
// pixels, times in seconds.
type Tuning struct {
	MovementSpeed          float64
	Acceleration           float64
	Deceleration           float64
	AirborneMovementFactor float64
	JumpStrength           float64
	CoyoteTime             float64
	// JumpBufferTime is how long an early jump press is remembered. 0 disables buffering.
	JumpBufferTime float64
	// HoldToJump makes a held jump key jump again on every landing instead of
	// only on the press.
	HoldToJump       bool
	Gravity          float64
	TerminalVelocity float64

	PlayerWidth  float64
	PlayerHeight float64

	MaxPlatforms   int
	PlatformWidth  float64
	PlatformHeight float64
}

func DefaultTuning() Tuning {
	return Tuning{
		MovementSpeed:          300,
		Acceleration:           1250,
		Deceleration:           1250,
		AirborneMovementFactor: 0.1,
		JumpStrength:           600,
		CoyoteTime:             0.1,
		JumpBufferTime:         0.1,
		Gravity:                1800,
		TerminalVelocity:       900,
		PlayerWidth:            32,
		PlayerHeight:           64,
		MaxPlatforms:           2,
		PlatformWidth:          96,
		PlatformHeight:         24,
	}
}

// Validate reports the first out-of-range field.
func (t Tuning) Validate() error {
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"movement_speed", t.MovementSpeed},
		{"acceleration", t.Acceleration},
		{"deceleration", t.Deceleration},
		{"jump_strength", t.JumpStrength},
		{"coyote_time", t.CoyoteTime},
		{"jump_buffer_time", t.JumpBufferTime},
		{"gravity", t.Gravity},
	}
	for _, f := range nonNegative {
		if f.v < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %g", ErrInvalidTuning, f.name, f.v)
		}
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"terminal_velocity", t.TerminalVelocity},
		{"player_width", t.PlayerWidth},
		{"player_height", t.PlayerHeight},
		{"platform_width", t.PlatformWidth},
		{"platform_height", t.PlatformHeight},
	}
	for _, f := range positive {
		if f.v <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %g", ErrInvalidTuning, f.name, f.v)
		}
	}

	if t.AirborneMovementFactor < 0 || t.AirborneMovementFactor > 1 {
		return fmt.Errorf("%w: airborne_movement_factor must be in [0,1], got %g", ErrInvalidTuning, t.AirborneMovementFactor)
	}
	if t.MaxPlatforms < 0 {
		return fmt.Errorf("%w: max_platforms must be >= 0, got %d", ErrInvalidTuning, t.MaxPlatforms)
	}
	return nil
}
