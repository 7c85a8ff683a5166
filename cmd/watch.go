package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/conneroisu/chordlint/internal/config"
	"github.com/conneroisu/chordlint/internal/watcher"
)

var watchDebounce time.Duration

// watchCmd re-validates song files whenever they change on disk.
var watchCmd = &cobra.Command{
	Use:   "watch [path...]",
	Short: "Re-validate song files when they change",
	Long: `Watch song files or directories and re-run validation on every
write, printing findings as they appear. Rapid bursts of writes are
debounced into a single validation.

Examples:
  chordlint watch                 # Watch the current directory
  chordlint watch songs/ hymn.cho # Watch a directory and a file`,
	RunE: runWatchCommand,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().
		DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "Delay before re-validating after a change")
}

func runWatchCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)

	engine, err := buildValidator(cfg, logger)
	if err != nil {
		return err
	}

	fw, err := watcher.New(watchDebounce)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, path := range paths {
		if err := fw.AddPath(path); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "watching %d path(s) for changes\n", len(paths))

	err = fw.Watch(ctx, func(changed []string) {
		for _, path := range changed {
			content, err := os.ReadFile(path)
			if err != nil {
				logger.Warn(ctx, err, "failed to read changed file", "path", path)

				continue
			}
			result := engine.Validate(string(content))
			summary := ValidationSummary{
				Files:    1,
				Errors:   len(result.Errors),
				Warnings: len(result.Warnings),
				Results:  []FileResult{{File: path, Result: result}},
			}
			printTextSummary(out, summary)
		}
	})
	if err != nil && ctx.Err() != nil {
		return nil // interrupted
	}

	return err
}
