package game

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/jumanping/obj"
)

var ErrNilWorld = errors.New("game: player and terrain are required")

type Options struct {
	Clock Clock
	// MaxFrameDelta caps dt in seconds. 0 disables the cap.
	MaxFrameDelta float64
	Win           WinCondition
	Logger        *log.Logger
}

// Loop drives one level: it turns frame events into player input, advances
// the player against the terrain and tracks the game state.
type Loop struct {
	player  *obj.Player
	terrain *obj.Terrain
	input   obj.Input

	state    State
	clock    Clock
	last     time.Time
	maxDelta float64
	win      WinCondition
	logger   *log.Logger

	pending *obj.Tuning
	frame   uint64
}

func NewLoop(player *obj.Player, terrain *obj.Terrain, opts Options) (*Loop, error) {
	if player == nil || terrain == nil {
		return nil, ErrNilWorld
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.MaxFrameDelta < 0 {
		return nil, fmt.Errorf("game: max frame delta must be >= 0, got %g", opts.MaxFrameDelta)
	}
	return &Loop{
		player:   player,
		terrain:  terrain,
		state:    StatePlay,
		clock:    opts.Clock,
		last:     opts.Clock.Now(),
		maxDelta: opts.MaxFrameDelta,
		win:      opts.Win,
		logger:   opts.Logger,
	}, nil
}

func (l *Loop) State() State            { return l.state }
func (l *Loop) Player() *obj.Player     { return l.player }
func (l *Loop) Terrain() *obj.Terrain   { return l.terrain }
func (l *Loop) Snapshot() obj.Snapshot  { return l.player.Snapshot() }
func (l *Loop) Frame() uint64           { return l.frame }
func (l *Loop) SetWin(win WinCondition) { l.win = win }

// Tick measures dt since the previous tick and steps once.
func (l *Loop) Tick(events []Event) State {
	now := l.clock.Now()
	dt := now.Sub(l.last).Seconds()
	l.last = now
	return l.Step(dt, events)
}

// Resume restarts dt measurement, so time spent paused is not simulated.
func (l *Loop) Resume() {
	l.last = l.clock.Now()
}

// ApplyTuning queues new movement constants; they take effect at the start
// of the next step.
func (l *Loop) ApplyTuning(t obj.Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("game: apply tuning: %w", err)
	}
	l.pending = &t
	return nil
}

// SetMaxFrameDelta changes the dt cap. 0 disables it.
func (l *Loop) SetMaxFrameDelta(d float64) {
	l.maxDelta = max(d, 0)
}

// Step advances the simulation by dt seconds after folding in events.
func (l *Loop) Step(dt float64, events []Event) State {
	if l.state.Terminal() {
		return l.state
	}

	if l.pending != nil {
		if err := l.player.SetTuning(*l.pending); err != nil {
			l.logger.Error("tuning rejected", "err", err)
		} else {
			l.logger.Info("tuning applied")
		}
		l.pending = nil
	}

	for _, ev := range events {
		switch ev.Kind {
		case EventQuit:
			l.setState(StateQuit)
			return l.state
		case EventInput:
			l.input.Apply(ev.Input)
		}
	}

	if dt < 0 {
		dt = 0
	}
	if l.maxDelta > 0 && dt > l.maxDelta {
		l.logger.Debug("frame delta clamped", "dt", dt, "max", l.maxDelta)
		dt = l.maxDelta
	}

	near := l.terrain.FindNearBlocks(l.player.Reach(dt))
	l.player.Move(l.input, near, dt)
	l.input.EndFrame()
	l.frame++

	for _, ev := range l.player.Events().Drain() {
		if ev.Platform != nil {
			l.logger.Debug(string(ev.Kind), "frame", l.frame, "x", ev.Platform.X, "y", ev.Platform.Y)
			continue
		}
		l.logger.Debug(string(ev.Kind), "frame", l.frame)
	}

	l.checkWin()
	return l.state
}

func (l *Loop) checkWin() {
	if l.win == nil {
		return
	}
	w, h := l.terrain.Bounds()
	won, err := l.win.Won(l.player.Snapshot(), w, h)
	if err != nil {
		// a broken script should not end the game; stop evaluating it
		l.logger.Error("win condition failed", "err", err)
		l.win = nil
		return
	}
	if won {
		l.setState(StateWin)
	}
}

func (l *Loop) setState(s State) {
	if s == l.state {
		return
	}
	l.logger.Info("state change", "from", l.state, "to", s, "frame", l.frame)
	l.state = s
}
