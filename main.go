package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	flagLevel  string
	flagIndex  string
	flagDebug  bool
	flagWatch  bool
	flagTPS    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jumanping",
	Short: "Platformer where you build your own footholds",
	Long: `Run, jump and drop platforms under your feet to reach the goal.

Controls:
  A/D or arrows   move
  Space/W/Up      jump
  right mouse     spawn a platform at the cursor
  P               pause
  Escape          quit`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagLevel, "level", "l", "tutorial", "level name in levels/ (.json optional) or a path to a level file")
	rootCmd.Flags().StringVar(&flagIndex, "index", "", "terrain index override: scan, grid or space")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "debug logging and overlay")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", true, "reload prefabs/ when files change")
	rootCmd.Flags().IntVar(&flagTPS, "tps", ebiten.DefaultTPS, "ticks per second")
}

func run(cmd *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "jumanping",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	g, err := NewGame(gameOptions{
		level:  flagLevel,
		index:  flagIndex,
		debug:  flagDebug,
		watch:  flagWatch,
		logger: logger,
	})
	if err != nil {
		return err
	}
	defer g.Close()

	w, h := g.LayoutF(0, 0)
	ebiten.SetWindowSize(int(w), int(h))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Juman Ping")
	ebiten.SetTPS(flagTPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	logger.Info("bye", "state", g.loop.State())
	return nil
}
