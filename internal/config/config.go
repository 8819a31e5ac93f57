// Package config loads house rules and session settings from HCL.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/game"
)

// DefaultLogFile is where interactive sessions log when nothing else is set
const DefaultLogFile = "blackjack.log"

// File mirrors the HCL layout. Every block and attribute is optional.
type File struct {
	Rules   *RulesBlock   `hcl:"rules,block"`
	Logging *LoggingBlock `hcl:"logging,block"`
	History *HistoryBlock `hcl:"history,block"`
}

// RulesBlock holds the house rules
type RulesBlock struct {
	Decks           int     `hcl:"decks,optional"`
	Penetration     float64 `hcl:"penetration,optional"`
	MaxResplits     *int    `hcl:"max_resplits,optional"`
	StartingBalance int     `hcl:"starting_balance,optional"`
}

// LoggingBlock configures the session log
type LoggingBlock struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// HistoryBlock configures the round history export
type HistoryBlock struct {
	File string `hcl:"file,optional"`
}

// Config is the resolved configuration with defaults applied
type Config struct {
	Rules       game.Rules
	LogLevel    log.Level
	LogFile     string
	HistoryFile string
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Rules:    game.DefaultRules(),
		LogLevel: log.InfoLevel,
		LogFile:  DefaultLogFile,
	}
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, fills in defaults for anything left out and
// validates the resulting rules.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw File
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if r := raw.Rules; r != nil {
		if r.Decks != 0 {
			cfg.Rules.NumDecks = r.Decks
		}
		if r.Penetration != 0 {
			cfg.Rules.Penetration = r.Penetration
		}
		if r.MaxResplits != nil {
			cfg.Rules.MaxResplits = *r.MaxResplits
		}
		if r.StartingBalance != 0 {
			cfg.Rules.StartingBalance = r.StartingBalance
		}
	}
	if l := raw.Logging; l != nil {
		if l.Level != "" {
			level, err := log.ParseLevel(l.Level)
			if err != nil {
				return nil, fmt.Errorf("invalid log level %q: %w", l.Level, err)
			}
			cfg.LogLevel = level
		}
		if l.File != "" {
			cfg.LogFile = l.File
		}
	}
	if h := raw.History; h != nil {
		cfg.HistoryFile = h.File
	}

	if err := cfg.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules in %s: %w", filename, err)
	}
	return cfg, nil
}
