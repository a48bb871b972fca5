// Package rules evaluates level win conditions written in tengo.
package rules

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/jumanping/obj"
)

var ErrNoResult = errors.New("rules: script does not define win")

// inputs are the globals every script can read.
var inputs = []string{"x", "y", "width", "height", "vx", "vy", "grounded", "level_width", "level_height"}

// Script is a compiled win condition. A script reads the player state and
// assigns a boolean to win.
type Script struct {
	name     string
	compiled *tengo.Compiled
}

// Compile prepares src. name is only used in errors.
func Compile(name string, src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	for _, in := range inputs {
		var zero any = 0.0
		if in == "grounded" {
			zero = false
		}
		if err := script.Add(in, zero); err != nil {
			return nil, fmt.Errorf("rules: %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("rules: compile %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

func (s *Script) Name() string { return s.name }

// Won runs the script against a snapshot of the player.
func (s *Script) Won(snap obj.Snapshot, levelWidth, levelHeight float64) (bool, error) {
	values := map[string]any{
		"x":            snap.Player.X,
		"y":            snap.Player.Y,
		"width":        snap.Player.W,
		"height":       snap.Player.H,
		"vx":           snap.Vel.X,
		"vy":           snap.Vel.Y,
		"grounded":     snap.OnGround,
		"level_width":  levelWidth,
		"level_height": levelHeight,
	}
	for _, in := range inputs {
		if err := s.compiled.Set(in, values[in]); err != nil {
			return false, fmt.Errorf("rules: %s: set %s: %w", s.name, in, err)
		}
	}
	if err := s.compiled.Run(); err != nil {
		return false, fmt.Errorf("rules: run %s: %w", s.name, err)
	}
	if !s.compiled.IsDefined("win") {
		return false, fmt.Errorf("%w: %s", ErrNoResult, s.name)
	}
	return s.compiled.Get("win").Bool(), nil
}
