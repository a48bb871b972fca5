package prefabs

import (
	"fmt"

	"github.com/milk9111/jumanping/obj"
	"gopkg.in/yaml.v3"
)

const (
	PhysicsFile  = "physics.yaml"
	PlayerFile   = "player.yaml"
	PlatformFile = "platform.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type MovementSpec struct {
	Speed          float64 `yaml:"speed"`
	Acceleration   float64 `yaml:"acceleration"`
	Deceleration   float64 `yaml:"deceleration"`
	AirborneFactor float64 `yaml:"airborne_factor"`
}

type JumpSpec struct {
	Strength   float64 `yaml:"strength"`
	CoyoteTime float64 `yaml:"coyote_time"`
	BufferTime float64 `yaml:"buffer_time"`
	HoldToJump bool    `yaml:"hold_to_jump"`
}

type TerrainSpec struct {
	Index    string  `yaml:"index"`
	CellSize float64 `yaml:"cell_size"`
	Margin   float64 `yaml:"margin"`
}

type PhysicsSpec struct {
	Name             string       `yaml:"name"`
	Movement         MovementSpec `yaml:"movement"`
	Jump             JumpSpec     `yaml:"jump"`
	Gravity          float64      `yaml:"gravity"`
	TerminalVelocity float64      `yaml:"terminal_velocity"`
	MaxFrameDelta    float64      `yaml:"max_frame_delta"`
	Terrain          TerrainSpec  `yaml:"terrain"`
}

type PlayerSpec struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlatformSpec struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Max    int     `yaml:"max"`
}

// Config is everything the simulation reads from prefabs.
type Config struct {
	Tuning        obj.Tuning
	Terrain       obj.TerrainOptions
	MaxFrameDelta float64
}

// LoadConfig reads the physics, player and platform specs and validates the
// resulting tuning.
func LoadConfig() (Config, error) {
	physics, err := LoadSpec[PhysicsSpec](PhysicsFile)
	if err != nil {
		return Config{}, err
	}
	player, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return Config{}, err
	}
	platform, err := LoadSpec[PlatformSpec](PlatformFile)
	if err != nil {
		return Config{}, err
	}
	return NewConfig(physics, player, platform)
}

// NewConfig combines already-parsed specs.
func NewConfig(physics PhysicsSpec, player PlayerSpec, platform PlatformSpec) (Config, error) {
	t := obj.Tuning{
		MovementSpeed:          physics.Movement.Speed,
		Acceleration:           physics.Movement.Acceleration,
		Deceleration:           physics.Movement.Deceleration,
		AirborneMovementFactor: physics.Movement.AirborneFactor,
		JumpStrength:           physics.Jump.Strength,
		CoyoteTime:             physics.Jump.CoyoteTime,
		JumpBufferTime:         physics.Jump.BufferTime,
		HoldToJump:             physics.Jump.HoldToJump,
		Gravity:                physics.Gravity,
		TerminalVelocity:       physics.TerminalVelocity,
		PlayerWidth:            player.Width,
		PlayerHeight:           player.Height,
		MaxPlatforms:           platform.Max,
		PlatformWidth:          platform.Width,
		PlatformHeight:         platform.Height,
	}
	if err := t.Validate(); err != nil {
		return Config{}, fmt.Errorf("prefabs: %w", err)
	}
	if physics.MaxFrameDelta < 0 {
		return Config{}, fmt.Errorf("prefabs: %w: max_frame_delta must be >= 0, got %g", obj.ErrInvalidTuning, physics.MaxFrameDelta)
	}

	strategy, err := obj.ParseIndexStrategy(physics.Terrain.Index)
	if err != nil {
		return Config{}, fmt.Errorf("prefabs: %w", err)
	}

	return Config{
		Tuning: t,
		Terrain: obj.TerrainOptions{
			Strategy: strategy,
			CellSize: physics.Terrain.CellSize,
			Margin:   physics.Terrain.Margin,
		},
		MaxFrameDelta: physics.MaxFrameDelta,
	}, nil
}
