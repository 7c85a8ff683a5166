package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	engine "github.com/conneroisu/chordlint/internal/validator"
)

// ruleSpec mirrors engine.Rule with optional fields so a rules file can
// omit enabled (default true) and id (generated).
type ruleSpec struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Pattern     string           `yaml:"pattern"`
	Severity    engine.Severity  `yaml:"severity"`
	Category    engine.IssueType `yaml:"category"`
	Message     string           `yaml:"message"`
	Enabled     *bool            `yaml:"enabled"`
}

// LoadRulesFile reads a YAML list of custom validation rules. Rules without
// an id get a generated UUID; duplicate ids are rejected. A rule with a
// pattern that does not compile is accepted here and skipped at validation
// time with a diagnostic, per the engine's isolation policy.
func LoadRulesFile(path string) ([]engine.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var specs []ruleSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	rules := make([]engine.Rule, 0, len(specs))
	seen := make(map[string]bool, len(specs))
	for i, spec := range specs {
		if spec.Pattern == "" {
			return nil, fmt.Errorf("rule %d: pattern is required", i)
		}
		if spec.Message == "" {
			return nil, fmt.Errorf("rule %d: message is required", i)
		}
		id := spec.ID
		if id == "" {
			id = uuid.NewString()
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate rule id %q", id)
		}
		seen[id] = true

		enabled := true
		if spec.Enabled != nil {
			enabled = *spec.Enabled
		}

		rules = append(rules, engine.Rule{
			ID:          id,
			Name:        spec.Name,
			Description: spec.Description,
			Pattern:     spec.Pattern,
			Severity:    spec.Severity,
			Category:    spec.Category,
			Message:     spec.Message,
			Enabled:     enabled,
		})
	}

	return rules, nil
}
