// Package config provides configuration management for chordlint using
// Viper for flexible loading from files, environment variables, and
// command-line flags.
//
// The configuration system supports YAML files, environment variable
// overrides with the CHORDLINT_ prefix, and struct-level validation. It
// manages the validation engine's rule set, the active language, logging,
// and the live validation server settings. Partial configuration merges
// onto the defaults.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	engine "github.com/conneroisu/chordlint/internal/validator"
)

// Config is the application configuration.
type Config struct {
	Log        LogConfig     `yaml:"log"        mapstructure:"log"`
	Server     ServerConfig  `yaml:"server"     mapstructure:"server"`
	Validation engine.Config `yaml:"validation" mapstructure:"validation"`
	// Language selects the localization table used by validate/watch/serve.
	Language string `yaml:"language" mapstructure:"language"`
	// RulesFile optionally points at a YAML file of custom rules that is
	// merged into Validation.CustomRules at load time.
	RulesFile string `yaml:"rules_file" mapstructure:"rules_file"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  mapstructure:"level"  validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=text json"`
}

// ServerConfig holds the live validation server settings.
type ServerConfig struct {
	Host           string   `yaml:"host"            mapstructure:"host"`
	Port           int      `yaml:"port"            mapstructure:"port" validate:"gte=0,lte=65535"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// Default returns the configuration defaults: all checks on, strict mode
// off, info-level text logging, server on localhost:7331.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 7331,
		},
		Validation: engine.DefaultConfig(),
		Language:   "en",
	}
}

// Load merges viper's sources (config file, CHORDLINT_ environment
// variables, bound flags) onto the defaults and validates the result. A
// configured rules file is loaded and appended to the custom rules.
func Load() (*Config, error) {
	config := Default()
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Viper reports false/zero for bool and float keys it has not seen,
	// so flags whose default is true are applied only when actually set.
	if viper.IsSet("validation.check_security") {
		config.Validation.CheckSecurity = viper.GetBool("validation.check_security")
	}
	if viper.IsSet("validation.check_brackets") {
		config.Validation.CheckBrackets = viper.GetBool("validation.check_brackets")
	}
	if viper.IsSet("validation.check_empty_elements") {
		config.Validation.CheckEmptyElements = viper.GetBool("validation.check_empty_elements")
	}
	if viper.IsSet("validation.check_typos") {
		config.Validation.CheckTypos = viper.GetBool("validation.check_typos")
	}
	if viper.IsSet("validation.max_special_char_percent") {
		config.Validation.MaxSpecialCharPercent = viper.GetFloat64("validation.max_special_char_percent")
	}

	if config.RulesFile != "" {
		rules, err := LoadRulesFile(config.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("rules file %s: %w", config.RulesFile, err)
		}
		config.Validation.CustomRules = append(config.Validation.CustomRules, rules...)
	}

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks the configuration's struct constraints and the
// uniqueness of custom rule IDs.
func Validate(config *Config) error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(config); err != nil {
		return err
	}

	seen := make(map[string]bool, len(config.Validation.CustomRules))
	for _, rule := range config.Validation.CustomRules {
		if rule.ID == "" {
			continue
		}
		if seen[rule.ID] {
			return fmt.Errorf("duplicate custom rule id %q", rule.ID)
		}
		seen[rule.ID] = true
	}

	return nil
}
