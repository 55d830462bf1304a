package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// causeTimeout marks a run that was still alive when its time ran out.
const causeTimeout = "timeout"

var (
	flagRuns     int
	flagDuration time.Duration
	flagTop      int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the autopilot play headless runs",
	Long: `Play runs without a display, flapping with a simple autopilot, and print
the best results. Time is simulated, so runs finish as fast as the CPU allows.

Each run uses --seed plus its index, so a fixed --seed reproduces the table.

Examples:
  flappy simulate
  flappy simulate --runs 100 --duration 2m --seed 7`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRuns, "runs", 10, "Number of runs to play")
	simulateCmd.Flags().DurationVar(&flagDuration, "duration", time.Minute, "Simulated time limit per run")
	simulateCmd.Flags().IntVar(&flagTop, "top", 10, "Number of best runs to print")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := newLogger("flappy-sim", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ledger, err := storage.OpenMemory()
	if err != nil {
		return fmt.Errorf("opening run ledger: %w", err)
	}
	defer ledger.Close()

	if err := simulate(cfg, seed(), flagRuns, flagDuration, ledger, logger); err != nil {
		return err
	}
	return printLeaderboard(cmd.OutOrStdout(), ledger, flagTop)
}

// simulate plays runs headless sessions with the autopilot and records each
// result in the ledger.
func simulate(cfg config.FlappyConfig, seed int64, runs int, limit time.Duration, ledger *storage.Ledger, logger *log.Logger) error {
	if runs <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", runs)
	}
	if limit <= 0 {
		return fmt.Errorf("--duration must be positive, got %s", limit)
	}

	pilot := flappy.NewAutopilot()
	frame := cfg.TickInterval()

	for i := range runs {
		s := flappy.NewSession(cfg, seed+int64(i))
		var result *flappy.RunResult
		s.OnGameOver(func(r flappy.RunResult) { result = &r })

		s.Submit(core.CommandStart)
		for elapsed := time.Duration(0); result == nil && elapsed < limit; elapsed += frame {
			if pilot.Decide(s.Snapshot()) {
				s.Submit(core.CommandFlap)
			}
			s.Advance(frame)
		}

		rec := storage.RunRecord{Player: "autopilot"}
		if result != nil {
			rec.Score, rec.Ticks, rec.PipesPassed, rec.Cause = result.Score, result.Ticks, result.PipesPassed, string(result.Cause)
		} else {
			snap := s.Snapshot()
			rec.Score, rec.Ticks, rec.PipesPassed, rec.Cause = snap.Score, snap.Tick, snap.PipesPassed, causeTimeout
		}

		if _, err := ledger.RecordRun(rec); err != nil {
			return err
		}
		logger.Debug("run finished", "run", i+1, "seed", seed+int64(i), "score", rec.Score, "cause", rec.Cause)
	}
	return nil
}

// printLeaderboard writes the best runs and the aggregate stats.
func printLeaderboard(w io.Writer, ledger *storage.Ledger, top int) error {
	runs, err := ledger.TopRuns(top)
	if err != nil {
		return err
	}
	stats, err := ledger.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Autopilot results")
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-7s  %-6s  %-8s  %s\n", "Rank", "Score", "Pipes", "Ticks", "Cause")
	fmt.Fprintf(w, "  %-4s  %-7s  %-6s  %-8s  %s\n", "----", "-----", "-----", "-----", "-----")
	for i, r := range runs {
		fmt.Fprintf(w, "  %-4d  %-7s  %-6d  %-8d  %s\n", i+1, flappy.FormatScore(r.Score), r.PipesPassed, r.Ticks, r.Cause)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Runs: %d  Best: %s  Average: %.1f\n", stats.Runs, flappy.FormatScore(stats.Best), stats.Average)
	fmt.Fprintf(w, "Deaths: %d pipe, %d floor\n", stats.PipeDeaths, stats.FloorDeaths)
	return nil
}
