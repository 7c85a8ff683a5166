package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/conneroisu/chordlint/internal/config"
	"github.com/conneroisu/chordlint/internal/locale"
	"github.com/conneroisu/chordlint/internal/validator"
)

// languagesCmd lists the available localization tables.
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List languages with localization tables",
	RunE:  runLanguagesCommand,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func runLanguagesCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	adapter := locale.NewAdapter(validator.DefaultConfig())
	langs := adapter.Languages()
	sort.Strings(langs)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "en (default, no rewrite tables)")
	for _, lang := range langs {
		active := ""
		if lang == cfg.Language {
			active = " (active)"
		}
		fmt.Fprintf(out, "%s%s\n", lang, active)
	}

	return nil
}
