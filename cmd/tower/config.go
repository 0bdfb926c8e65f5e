package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/games/tower"
)

var (
	flagConfigWrite bool
	flagConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or install the default tower config",
	Long: `Print the built-in tower configuration as YAML.

With --write the file is installed at ~/.tower/configs/tower.yaml, where
'tower play' picks it up. Edit it to tune physics, platform weights and
difficulty phases. Only the fields you change need to stay in the file.

Examples:
  tower config > my-tower.yaml
  tower config --write
  tower play --config my-tower.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Install the default config in ~/.tower/configs")
	configCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing config with --write")
}

func runConfig(_ *cobra.Command, _ []string) error {
	data := config.GetDefaultYAML(tower.ModeClassic)
	if !flagConfigWrite {
		_, err := os.Stdout.Write(data)
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot get home directory: %w", err)
	}
	path := filepath.Join(home, ".tower", "configs", "tower.yaml")

	if _, err := os.Stat(path); err == nil && !flagConfigForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}

	logger.Info("config installed", "path", path)
	fmt.Printf("Wrote %s\n", path)
	return nil
}
