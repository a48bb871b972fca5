// Command sim replays a scripted input timeline against a level without a
// window, for tuning movement constants and checking regressions.
//
// Usage:
//
//	sim run <timeline.yaml> [--level name] [--trace]
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/milk9111/jumanping/game"
	"github.com/milk9111/jumanping/levels"
	"github.com/milk9111/jumanping/obj"
	"github.com/milk9111/jumanping/prefabs"
	"github.com/milk9111/jumanping/rules"
	"github.com/spf13/cobra"
)

var (
	flagLevel string
	flagTrace bool
	flagNoWin bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sim",
	Short: "Headless replay of input timelines",
}

var runCmd = &cobra.Command{
	Use:          "run <timeline.yaml>",
	Short:        "Replay a timeline and print the final state",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "sim",
		})

		tl, err := LoadTimeline(args[0])
		if err != nil {
			return err
		}
		if flagLevel != "" {
			tl.Level = flagLevel
		}
		loop, err := buildLoop(tl, logger, !flagNoWin)
		if err != nil {
			return err
		}

		res := Replay(loop, tl, logger, flagTrace)
		logger.Info("done",
			"frames", res.Frames,
			"state", res.State,
			"x", res.Final.Player.X,
			"y", res.Final.Player.Y,
			"ground", res.Final.OnGround,
		)
		return nil
	},
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List embedded levels",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range levels.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	runCmd.Flags().StringVarP(&flagLevel, "level", "l", "", "override the timeline's level")
	runCmd.Flags().BoolVar(&flagTrace, "trace", false, "log every frame")
	runCmd.Flags().BoolVar(&flagNoWin, "no-win", false, "ignore the level's win condition")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(levelsCmd)
}

func buildLoop(tl *Timeline, logger *log.Logger, withWin bool) (*game.Loop, error) {
	cfg, err := prefabs.LoadConfig()
	if err != nil {
		return nil, err
	}
	if tl.Index != "" {
		if cfg.Terrain.Strategy, err = obj.ParseIndexStrategy(tl.Index); err != nil {
			return nil, err
		}
	}
	name := tl.Level
	if name == "" {
		name = "tutorial"
	}
	lvl, err := levels.Load(name)
	if err != nil {
		return nil, err
	}
	return newLoop(lvl, cfg, logger, withWin)
}

func newLoop(lvl *levels.Level, cfg prefabs.Config, logger *log.Logger, withWin bool) (*game.Loop, error) {
	terrain, err := lvl.Build(cfg.Terrain)
	if err != nil {
		return nil, err
	}
	w, h := terrain.Bounds()
	x, y := lvl.StartPosition(cfg.Tuning.PlayerHeight)
	player, err := obj.NewPlayer(x, y, cfg.Tuning, w, h)
	if err != nil {
		return nil, err
	}

	// fixed dt replays never clamp
	opts := game.Options{Logger: logger.WithPrefix("loop")}
	if withWin {
		src, err := lvl.WinSource()
		if err != nil {
			return nil, err
		}
		if src != nil {
			script, err := rules.Compile(lvl.Name, src)
			if err != nil {
				return nil, err
			}
			opts.Win = script
		}
	}
	return game.NewLoop(player, terrain, opts)
}
