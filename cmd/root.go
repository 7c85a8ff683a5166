// Package cmd provides the command-line interface for chordlint with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --lang, --strict, etc.) - highest priority
//	2. CHORDLINT_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (CHORDLINT_LANGUAGE, etc.)
//	4. Configuration files (.chordlint.yml) - lowest priority
//
// Environment Variables:
//
//	CHORDLINT_CONFIG_FILE: Path to custom configuration file
//	CHORDLINT_LANGUAGE: Active localization language
//	CHORDLINT_VALIDATION_STRICT_MODE: Enable strict mode
//	And more following the CHORDLINT_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/chordlint/internal/config"
	"github.com/conneroisu/chordlint/internal/locale"
	"github.com/conneroisu/chordlint/internal/logging"
	"github.com/conneroisu/chordlint/internal/validator"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chordlint",
	Short: "A validation engine for ChordPro song sheets",
	Long: `Chordlint validates ChordPro song content: inline bracketed chord
symbols and brace-delimited directives. It reports structural, semantic, and
security issues with precise source positions, under a configurable rule set,
with localization support for alternate chord notations.

Key Features:
  • Chord grammar and directive vocabulary checks
  • Bracket balance and empty element detection
  • Typo detection with did-you-mean suggestions
  • Security scanning for dangerous embedded markup
  • Custom regex rules loaded from YAML
  • Solfège and translated-directive localization (es, fr, de)

Quick Start:
  chordlint validate song.cho         Validate a song file
  chordlint validate --lang es        Validate with Spanish notation
  chordlint watch ./songs             Re-validate on file changes
  chordlint serve                     Live validation over WebSocket
  chordlint rules list                Show built-in checks`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .chordlint.yml, can also use CHORDLINT_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().String("lang", "", "localization language for notation and messages (e.g. es, fr, de)")
	rootCmd.PersistentFlags().Bool("strict", false, "report unknown directives")
	rootCmd.PersistentFlags().String("rules", "", "YAML file of custom validation rules")

	must(viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")))
	must(viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format")))
	must(viper.BindPFlag("language", rootCmd.PersistentFlags().Lookup("lang")))
	must(viper.BindPFlag("validation.strict_mode", rootCmd.PersistentFlags().Lookup("strict")))
	must(viper.BindPFlag("rules_file", rootCmd.PersistentFlags().Lookup("rules")))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. CHORDLINT_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .chordlint.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("CHORDLINT_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".chordlint")
	}

	viper.SetEnvPrefix("CHORDLINT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// If the file doesn't exist or has errors, viper falls back to the
	// defaults without failing.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the CLI logger from the loaded configuration.
func newLogger(cfg *config.Config) logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
}

// ContentValidator is what every command needs from the engine: a pure
// function from content to a validation result.
type ContentValidator interface {
	Validate(content string) validator.Result
}

// buildValidator constructs the engine for the configured language: the
// core validator for the default notation, or the localization adapter
// when a language with rewrite tables is active.
func buildValidator(cfg *config.Config, logger logging.Logger) (ContentValidator, error) {
	if cfg.Language == "" || cfg.Language == "en" {
		return validator.New(cfg.Validation, validator.WithLogger(logger)), nil
	}

	adapter := locale.NewAdapter(cfg.Validation, locale.WithLogger(logger))
	if err := adapter.SetLanguage(cfg.Language); err != nil {
		return nil, err
	}

	return adapter, nil
}
