// Package config loads rewriter settings from YAML, for hosts that
// keep the pipe tokens in a project file instead of code.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/funpipe/internal/rewriter"
)

type Settings struct {
	Operator    string `yaml:"operator"`
	Placeholder string `yaml:"placeholder"`
	LambdaVar   string `yaml:"lambda_var"`
	Insert      string `yaml:"insert"` // "front" (default) or "back"
	Debug       bool   `yaml:"debug"`
}

func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return &s, nil
}

// RewriterConfig maps the settings onto a validated rewriter
// configuration, filling defaults for omitted fields.
func (s *Settings) RewriterConfig() (*rewriter.Config, error) {
	cfg := rewriter.DefaultConfig()
	if s.Operator != "" {
		cfg.Operator = s.Operator
	}
	if s.Placeholder != "" {
		cfg.Placeholder = s.Placeholder
	}
	if s.LambdaVar != "" {
		cfg.LambdaVar = s.LambdaVar
	}
	switch s.Insert {
	case "", "front":
		cfg.Insert = rewriter.InsertFront
	case "back":
		cfg.Insert = rewriter.InsertBack
	default:
		return nil, fmt.Errorf("unknown insert position %q (want front or back)", s.Insert)
	}
	cfg.Debug = s.Debug
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
