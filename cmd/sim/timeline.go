package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/milk9111/jumanping/game"
	"github.com/milk9111/jumanping/obj"
	"gopkg.in/yaml.v3"
)

var ErrBadTimeline = errors.New("sim: bad timeline")

const defaultDT = 1.0 / 60

// Timeline is a scripted input run loaded from YAML.
type Timeline struct {
	Level  string  `yaml:"level"`
	Index  string  `yaml:"index"`
	DT     float64 `yaml:"dt"`
	Frames int     `yaml:"frames"`
	Steps  []Step  `yaml:"steps"`
}

// Step is what happens at the start of one frame.
type Step struct {
	Frame   int      `yaml:"frame"`
	Press   []string `yaml:"press"`
	Release []string `yaml:"release"`
	Spawn   *Point   `yaml:"spawn"`
	Quit    bool     `yaml:"quit"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func LoadTimeline(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sim: read timeline: %w", err)
	}
	return ParseTimeline(data)
}

func ParseTimeline(data []byte) (*Timeline, error) {
	var tl Timeline
	if err := yaml.Unmarshal(data, &tl); err != nil {
		return nil, fmt.Errorf("sim: unmarshal timeline: %w", err)
	}
	if tl.DT == 0 {
		tl.DT = defaultDT
	}
	if tl.DT < 0 {
		return nil, fmt.Errorf("%w: dt must be > 0, got %g", ErrBadTimeline, tl.DT)
	}
	for _, s := range tl.Steps {
		if s.Frame < 0 {
			return nil, fmt.Errorf("%w: negative frame %d", ErrBadTimeline, s.Frame)
		}
		for _, name := range append(append([]string{}, s.Press...), s.Release...) {
			if _, ok := obj.ParseAction(name); !ok {
				return nil, fmt.Errorf("%w: frame %d: unknown action %q", ErrBadTimeline, s.Frame, name)
			}
		}
		tl.Frames = max(tl.Frames, s.Frame+1)
	}
	sort.SliceStable(tl.Steps, func(i, j int) bool { return tl.Steps[i].Frame < tl.Steps[j].Frame })
	return &tl, nil
}

// EventsAt returns the events scheduled for frame, in file order.
func (tl *Timeline) EventsAt(frame int) []game.Event {
	var events []game.Event
	for _, s := range tl.Steps {
		if s.Frame != frame {
			continue
		}
		for _, name := range s.Press {
			a, _ := obj.ParseAction(name)
			events = append(events, game.KeyDown(a))
		}
		for _, name := range s.Release {
			a, _ := obj.ParseAction(name)
			events = append(events, game.KeyUp(a))
		}
		if s.Spawn != nil {
			events = append(events, game.MouseDown(obj.ActionSpawnPlatform, s.Spawn.X, s.Spawn.Y))
		}
		if s.Quit {
			events = append(events, game.Quit())
		}
	}
	return events
}

// Result summarises a replay.
type Result struct {
	Frames int
	State  game.State
	Final  obj.Snapshot
}

// Replay steps loop with the timeline's fixed dt until the timeline ends or
// the game reaches a terminal state. With trace set every frame is logged.
func Replay(loop *game.Loop, tl *Timeline, logger *log.Logger, trace bool) Result {
	res := Result{State: loop.State()}
	for frame := 0; frame < tl.Frames; frame++ {
		res.State = loop.Step(tl.DT, tl.EventsAt(frame))
		res.Frames = frame + 1
		if trace {
			s := loop.Snapshot()
			logger.Info("frame",
				"n", frame,
				"x", s.Player.X,
				"y", s.Player.Y,
				"vx", s.Vel.X,
				"vy", s.Vel.Y,
				"ground", s.OnGround,
				"platforms", len(s.Platforms),
				"falling", len(s.Falling),
			)
		}
		if res.State.Terminal() {
			break
		}
	}
	res.Final = loop.Snapshot()
	return res
}
