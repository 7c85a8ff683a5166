package cmd

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/spf13/cobra"

	"github.com/conneroisu/chordlint/internal/chordpro"
	"github.com/conneroisu/chordlint/internal/config"
)

// rulesCmd groups rule inspection subcommands.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect built-in checks and custom rule files",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in checks, the directive vocabulary, and configured custom rules",
	RunE:  runRulesListCommand,
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check <rules.yml>",
	Short: "Check a custom-rules YAML file for problems",
	Long: `Load a custom-rules YAML file and report rules whose pattern does
not compile. Broken rules are skipped at validation time, so this is a
preflight for rule authors, not a gate.`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesCheckCommand,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
}

func runRulesListCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Built-in checks:")
	builtins := []struct{ name, desc string }{
		{"bracket", "open/close counts of [] and {} must match"},
		{"format", "bracket and brace pairs must not be empty"},
		{"chord", "bracketed tokens must be valid chord symbols"},
		{"directive", "brace tokens must use the known directive vocabulary (strict mode), with typo suggestions"},
		{"security", "no script/iframe/object/embed tags, event handlers, javascript: URLs, or excessive special characters"},
	}
	for _, b := range builtins {
		fmt.Fprintf(out, "  %-10s %s\n", b.name, b.desc)
	}

	names := chordpro.KnownDirectives()
	sort.Strings(names)
	fmt.Fprintf(out, "\nDirective vocabulary (%d):\n", len(names))
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", name)
	}

	if len(cfg.Validation.CustomRules) > 0 {
		fmt.Fprintf(out, "\nCustom rules (%d):\n", len(cfg.Validation.CustomRules))
		for _, rule := range cfg.Validation.CustomRules {
			state := "enabled"
			if !rule.Enabled {
				state = "disabled"
			}
			fmt.Fprintf(out, "  %-20s %-8s %-9s %s\n", rule.ID, rule.Severity, state, rule.Pattern)
		}
	}

	return nil
}

func runRulesCheckCommand(cmd *cobra.Command, args []string) error {
	rules, err := config.LoadRulesFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	broken := 0
	for _, rule := range rules {
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			broken++
			fmt.Fprintf(out, "%s: pattern does not compile: %v\n", rule.ID, err)
		}
	}
	fmt.Fprintf(out, "%d rule(s) loaded, %d broken\n", len(rules), broken)
	if broken > 0 {
		return fmt.Errorf("%d broken rule(s)", broken)
	}

	return nil
}
