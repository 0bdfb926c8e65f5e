package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/games/tower"
	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs for a mode",
	Long: `Display the best runs for the given mode (default: tower),
with the height and longest combo of each.

Examples:
  tower scores
  tower scores tower_chaos --limit 25`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := tower.ModeClassic
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tower list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No climbs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tower play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-5s  %-20s  %s\n", "Rank", "Score", "Height", "Combo", "Seed", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-5s  %-20s  %s\n", "----", "-----", "------", "-----", "----", "----")

	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-8d  x%-4d  %-20d  %s\n", i+1, r.Score, r.Height, r.MaxCombo, r.Seed, dateStr)
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Avg: %.0f  Best height: %d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestHeight)
	}
}
