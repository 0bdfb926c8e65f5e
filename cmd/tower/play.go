package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/games/tower"
	"github.com/vovakirdan/tui-tower/internal/platform/tui"
	"github.com/vovakirdan/tui-tower/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Start a climb",
	Long: `Start climbing in the given mode (default: tower).

Controls:
  A/D, Left/Right  - Steer
  Space/W/Up       - Jump (again in mid-air for the air jump)
  P/Esc            - Pause
  F1/Backtick      - Debug overlay
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot to ~/.tower/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at the first phase, progresses to max
  normal - Start at 30% progress, progresses to max
  hard   - Start at 70% progress, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  tower play
  tower play tower_chaos
  tower play --difficulty hard
  tower play --seed 42 --difficulty fixed
  tower play --config ./my-tower.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tower config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tower config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyGameFlags hands the game flags to the tower factories.
func applyGameFlags() {
	tower.SetConfigPath(flagConfig)
	tower.SetDifficultyPreset(flagDifficulty)
	openHighScores()
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := tower.ModeClassic
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tower list' to see available modes.")
		os.Exit(1)
	}

	applyGameFlags()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	store := openStore()

	logger.Info("starting climb", "mode", gameID, "seed", cfg.Seed, "difficulty", flagDifficulty)
	_, runErr := tui.Run(game, store, cfg, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
