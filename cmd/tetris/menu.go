package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant and speed from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant, then pick
a speed. Leaving a game with B returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Esc/B        - Back
  Q            - Quit

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --config ./my-tetris.yaml`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runMenu(_ *cobra.Command, _ []string) error {
	gameCfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return err
	}
	current := ""
	if p, ok := gameCfg.DefaultPreset(); ok {
		current = p.Name
	}

	store := openStore()
	defer closeStore(store)

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			return err
		}

		preset, quit, updated, err := tui.RunDifficultySelector(game.Title(), gameCfg.Difficulty.Presets, current, cfg)
		if err != nil {
			return err
		}
		cfg = updated
		if quit {
			return nil
		}
		if preset == nil {
			continue
		}
		current = preset.Name

		if c, ok := game.(registry.Configurable); ok {
			if err := c.Configure(flagConfig, preset.Name); err != nil {
				return fmt.Errorf("configuring %s: %w", game.ID(), err)
			}
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := tui.Run(game, store, cfg, logger)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !back {
			return nil
		}
	}
}
