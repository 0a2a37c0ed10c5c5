package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a variant",
	Long: `Display the best scores recorded for the specified variant.

Examples:
  tetris scores tetris
  tetris scores tetris_classic --limit 25
  tetris scores tetris --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the variant")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'tetris list' to see available games", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer closeStore(store)

	if flagClear {
		n, err := store.ClearScores(gameID)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d scores for %s.\n", n, game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %-8s  %s\n", "Rank", "Score", "Lines", "Level", "Speed", "When")
	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %-8s  %s\n", "----", "-----", "-----", "-----", "-----", "----")
	for i, e := range scores {
		speed := e.Difficulty
		if speed == "" {
			speed = "-"
		}
		fmt.Printf("  %-4d  %-10s  %-6d  %-5d  %-8s  %s\n",
			i+1, humanize.Comma(int64(e.Score)), e.Lines, e.Level, speed, humanize.Time(e.CreatedAt))
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %s over %s games (avg %s, %s lines total)\n",
		humanize.Comma(int64(stats.HighScore)),
		humanize.Comma(int64(stats.GamesCount)),
		humanize.Comma(int64(stats.AvgScore)),
		humanize.Comma(stats.TotalLines),
	)
	return nil
}
