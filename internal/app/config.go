package app

import (
	"errors"

	"github.com/specialistvlad/optsmigrate/internal/rewrite"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Dir        string // directory holding the registry documents
	Ext        string // document file extension
	Key        string // reserved key declaring the backend list
	OnConflict string // fail, keep or replace
	Check      bool   // report pending migrations without writing

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Dir == "" {
		return nil, errors.New("Dir is a required configuration field and cannot be empty")
	}
	if cfg.Ext == "" {
		cfg.Ext = ".toml"
	}
	if cfg.Key == "" {
		cfg.Key = rewrite.DefaultKey
	}
	if _, err := rewrite.ParsePolicy(cfg.OnConflict); err != nil {
		return nil, err
	}
	return &cfg, nil
}
