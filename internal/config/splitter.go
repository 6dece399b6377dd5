package config

import (
	"errors"

	gopackages "github.com/andrew-solarstorm/go-packages/common"

	"github.com/hxuan190/split-engine/internal/common"
)

type SplitterConfig struct {
	// DefaultSteps is used when a quote request omits the step count.
	DefaultSteps int

	// MaxSteps caps the DP cost per request. Hard ceiling is 255 (one byte
	// on the wire).
	MaxSteps int

	// MaxVenues bounds how many venues one split evaluates.
	MaxVenues int

	// DBPath is the BoltDB file for venue persistence.
	DBPath string

	// PersistenceEnabled controls whether venues are persisted to disk.
	PersistenceEnabled bool

	// PersistInterval is how often venues are batch-saved to disk (seconds).
	PersistInterval int
}

func (c *SplitterConfig) Key() string {
	return SPLITTER_CONFIG_KEY
}

func (c *SplitterConfig) Load() error {
	c.DefaultSteps = gopackages.GetEnvOrDefaultInt("SPLITTER_DEFAULT_STEPS", common.DefaultSplitSteps)
	c.MaxSteps = gopackages.GetEnvOrDefaultInt("SPLITTER_MAX_STEPS", 64)
	c.MaxVenues = gopackages.GetEnvOrDefaultInt("SPLITTER_MAX_VENUES", 16)
	c.DBPath = gopackages.GetEnvOrDefault("SPLITTER_DB_PATH", "./data/split-engine.db")
	c.PersistenceEnabled = gopackages.GetEnvOrDefault("SPLITTER_PERSISTENCE_ENABLED", "true") == "true"
	c.PersistInterval = gopackages.GetEnvOrDefaultInt("SPLITTER_PERSIST_INTERVAL", 30)
	return c.Validate()
}

func (c *SplitterConfig) Validate() error {
	if c.DefaultSteps < 1 || c.MaxSteps < 1 || c.MaxSteps > common.MaxSplitSteps {
		return errors.New("invalid splitter step bounds")
	}
	if c.DefaultSteps > c.MaxSteps {
		return errors.New("default steps exceeds max steps")
	}
	if c.MaxVenues < 1 {
		return errors.New("invalid venue bound")
	}
	return nil
}
