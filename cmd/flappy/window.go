package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/window"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a desktop window sized to the game board.

Controls:
  Enter/Space or click Play     - Play
  Space/Up/W or left click      - Flap
  R or click Restart            - Restart (after game over)
  Q/Esc or click Exit           - Exit

Examples:
  flappy window
  flappy window --seed 42`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func runWindow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := newLogger("flappy", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ledger, err := storage.OpenMemory()
	if err != nil {
		return fmt.Errorf("opening run ledger: %w", err)
	}
	defer ledger.Close()

	if err := window.Run(window.Options{
		Game:   cfg,
		Seed:   seed(),
		Ledger: ledger,
		Logger: logger,
	}); err != nil {
		return err
	}

	best, err := ledger.Best()
	if err != nil {
		return err
	}
	logger.Info("session finished", "best", best)
	return nil
}
