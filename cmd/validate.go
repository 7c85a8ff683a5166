package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/conneroisu/chordlint/internal/config"
	"github.com/conneroisu/chordlint/internal/validator"
)

var validateFormat string

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate ChordPro song content for errors and warnings",
	Long: `Validate ChordPro song content for various issues including:

- Invalid chord symbols in square brackets
- Unknown or misspelled directives in curly braces
- Mismatched bracket and brace counts
- Empty bracket or brace pairs
- Dangerous embedded markup (script tags, event handlers)
- Custom rule matches

Reads from stdin when no files are given. The exit code is non-zero when
any file has errors; warnings are advisory.

Examples:
  chordlint validate song.cho              # Validate a file
  cat song.cho | chordlint validate        # Validate stdin
  chordlint validate --lang es song.cho    # Spanish notation and messages
  chordlint validate --format json *.cho   # Machine-readable output`,
	RunE: runValidateCommand,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().
		StringVarP(&validateFormat, "format", "f", "text", "Output format (text, json)")
}

// FileResult pairs a validated document with its result.
type FileResult struct {
	File   string           `json:"file"`
	Result validator.Result `json:"result"`
}

// ValidationSummary aggregates results across all validated documents.
type ValidationSummary struct {
	Files    int          `json:"files"`
	Errors   int          `json:"errors"`
	Warnings int          `json:"warnings"`
	Results  []FileResult `json:"results"`
}

func runValidateCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)

	engine, err := buildValidator(cfg, logger)
	if err != nil {
		return err
	}

	summary := ValidationSummary{Results: make([]FileResult, 0, len(args)+1)}

	validateOne := func(name, content string) {
		result := engine.Validate(content)
		summary.Files++
		summary.Errors += len(result.Errors)
		summary.Warnings += len(result.Warnings)
		summary.Results = append(summary.Results, FileResult{File: name, Result: result})
	}

	if len(args) == 0 {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		validateOne("<stdin>", string(content))
	}
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		validateOne(path, string(content))
	}

	switch validateFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return err
		}
	default:
		printTextSummary(cmd.OutOrStdout(), summary)
	}

	if summary.Errors > 0 {
		return fmt.Errorf("validation failed: %d error(s)", summary.Errors)
	}

	return nil
}

func printTextSummary(w io.Writer, summary ValidationSummary) {
	for _, fr := range summary.Results {
		for _, issue := range fr.Result.Findings() {
			fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n",
				fr.File, issue.Position.Line, issue.Position.Column,
				issue.Severity, issue.Message, issue.Type)
			if issue.Suggestion != "" {
				fmt.Fprintf(w, "%s:%d:%d: note: suggested fix: %s\n",
					fr.File, issue.Position.Line, issue.Position.Column, issue.Suggestion)
			}
		}
	}
	fmt.Fprintf(w, "%d file(s) checked: %d error(s), %d warning(s)\n",
		summary.Files, summary.Errors, summary.Warnings)
}
