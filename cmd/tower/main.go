// tower is an endless vertical climber for the terminal.
//
// Usage:
//
//	tower list              - List available modes
//	tower play [mode]       - Start climbing (default mode: tower)
//	tower menu              - Pick a mode interactively
//	tower serve             - Start SSH server for remote play
//	tower scores [mode]     - Show the best runs for a mode
//	tower config            - Print or install the default config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible climbs
//	--db <path>          - Set database path (default: ~/.tower/scores.db)
//	--log-file <path>    - Write logs to a file instead of discarding them
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/games/tower"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

// logger is replaced by setupLogging before any command runs.
var logger = log.New(io.Discard)

// logSink is the open --log-file, closed on exit.
var logSink *os.File

func main() {
	err := rootCmd.Execute()
	if logSink != nil {
		logSink.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tower",
	Short: "Tower Climb - an endless vertical climber in your terminal",
	Long: `Tower Climb is an endless platform climber played in the terminal.
Bounce from ledge to ledge, chain quick landings into combos and see how
high you can get before a fall sends you off the bottom of the screen.

Available commands:
  list     - Show all available modes
  play     - Start a climb directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View the best runs
  config   - Print or install the default config

Examples:
  tower play
  tower play tower_chaos --difficulty hard
  tower menu
  tower serve --ssh :2222
  tower scores tower`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tower/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging builds the shared logger. The TUI owns the terminal, so
// logs go to --log-file or nowhere; serve logs to stderr.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = io.Discard
	switch {
	case flagLogFile != "":
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logSink = f
		out = f
	case cmd == serveCmd:
		out = os.Stderr
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "tower",
	})
	log.SetDefault(logger)
	tower.SetLogger(logger)
	return nil
}

// openHighScores wires the per-user high score file into new games.
// Games still run without it.
func openHighScores() {
	kv, err := storage.OpenKV(storage.AppName)
	if err != nil {
		logger.Warn("high score file unavailable", "err", err)
		return
	}
	tower.SetHighScoreStore(kv)
}

// openStore opens the scores database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the simulation to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
