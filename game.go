package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/jumanping/common"
	"github.com/milk9111/jumanping/game"
	"github.com/milk9111/jumanping/levels"
	"github.com/milk9111/jumanping/obj"
	"github.com/milk9111/jumanping/prefabs"
	"github.com/milk9111/jumanping/rules"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type gameOptions struct {
	level  string
	index  string
	debug  bool
	watch  bool
	logger *log.Logger
}

// Game adapts the simulation loop to ebiten: it polls devices, applies
// prefab reloads between ticks and draws the world.
type Game struct {
	loop    *game.Loop
	level   *levels.Level
	logger  *log.Logger
	watcher *prefabs.Watcher
	debug   bool

	camera *common.Camera
	input  InputPoller
	paused bool
	quit   bool

	pauseUI  *ebitenui.UI
	resultUI *ebitenui.UI
}

func NewGame(opts gameOptions) (*Game, error) {
	cfg, err := prefabs.LoadConfig()
	if err != nil {
		return nil, err
	}
	if opts.index != "" {
		strategy, err := obj.ParseIndexStrategy(opts.index)
		if err != nil {
			return nil, err
		}
		cfg.Terrain.Strategy = strategy
	}

	lvl, err := loadLevel(opts.level)
	if err != nil {
		return nil, err
	}
	terrain, err := lvl.Build(cfg.Terrain)
	if err != nil {
		return nil, err
	}

	w, h := terrain.Bounds()
	x, y := lvl.StartPosition(cfg.Tuning.PlayerHeight)
	player, err := obj.NewPlayer(x, y, cfg.Tuning, w, h)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
	}

	win, err := compileWin(lvl)
	if err != nil {
		return nil, err
	}
	loopOpts := game.Options{
		MaxFrameDelta: cfg.MaxFrameDelta,
		Logger:        opts.logger.WithPrefix("loop"),
	}
	if win != nil {
		loopOpts.Win = win
	}
	loop, err := game.NewLoop(player, terrain, loopOpts)
	if err != nil {
		return nil, err
	}

	g := &Game{
		loop:   loop,
		level:  lvl,
		logger: opts.logger,
		debug:  opts.debug,
		camera: common.NewCamera(math.Min(w, baseWidth), math.Min(h, baseHeight)),
	}
	g.camera.SetWorldBounds(w, h)
	g.camera.SnapTo(player.Bounds().Center())
	g.pauseUI = NewPauseUI(g)
	g.resultUI = NewResultUI(g)

	if opts.watch {
		g.startWatcher()
	}

	opts.logger.Info("level loaded",
		"level", lvl.Name,
		"blocks", len(terrain.Blocks()),
		"index", cfg.Terrain.Strategy,
		"win", win != nil,
	)
	return g, nil
}

func loadLevel(name string) (*levels.Level, error) {
	if strings.HasSuffix(name, ".json") && strings.ContainsRune(name, filepath.Separator) {
		return levels.LoadFile(name)
	}
	return levels.Load(name)
}

func compileWin(lvl *levels.Level) (*rules.Script, error) {
	src, err := lvl.WinSource()
	if err != nil || src == nil {
		return nil, err
	}
	return rules.Compile(lvl.Name, src)
}

func (g *Game) startWatcher() {
	dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
	var existing []string
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			existing = append(existing, d)
		}
	}
	if len(existing) == 0 {
		g.logger.Debug("no prefabs directory on disk; hot reload disabled")
		return
	}
	w, err := prefabs.NewWatcher(existing...)
	if err != nil {
		g.logger.Warn("hot reload disabled", "err", err)
		return
	}
	g.watcher = w
	g.logger.Info("watching prefabs", "dirs", existing)
}

// drainWatcher applies any pending reloads. It never blocks.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ch, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(ch)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("watcher error", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(ch prefabs.Change) {
	switch ch.Kind {
	case prefabs.ChangeSpec:
		cfg, err := prefabs.LoadConfig()
		if err != nil {
			g.logger.Error("reload specs", "path", ch.Path, "err", err)
			return
		}
		if err := g.loop.ApplyTuning(cfg.Tuning); err != nil {
			g.logger.Error("reload specs", "path", ch.Path, "err", err)
			return
		}
		g.loop.SetMaxFrameDelta(cfg.MaxFrameDelta)
		g.logger.Info("specs reloaded", "path", ch.Path)
	case prefabs.ChangeScript:
		if g.level.WinScript == "" || filepath.Base(ch.Path) != filepath.Base(g.level.WinScript) {
			return
		}
		win, err := compileWin(g.level)
		if err != nil {
			g.logger.Error("reload win script", "path", ch.Path, "err", err)
			return
		}
		g.loop.SetWin(win)
		g.logger.Info("win script reloaded", "path", ch.Path)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if !paused {
		g.loop.Resume()
	}
}

func (g *Game) Update() error {
	g.drainWatcher()

	if g.quit {
		return ebiten.Termination
	}

	switch g.loop.State() {
	case game.StateQuit:
		return ebiten.Termination
	case game.StateWin:
		g.resultUI.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.setPaused(false)
		}
		return nil
	}

	state := g.loop.Tick(g.input.Poll(g.camera))
	g.camera.Follow(g.loop.Player().Bounds().Center())
	if state == game.StateQuit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.loop, g.camera)
	if g.debug {
		drawDebug(screen, g.loop, g.camera)
	}

	switch {
	case g.loop.State() == game.StateWin:
		g.resultUI.Draw(screen)
	case g.paused:
		g.pauseUI.Draw(screen)
	}
}

// LayoutF is the camera view; levels larger than the base resolution scroll.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.camera.ViewSize()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
