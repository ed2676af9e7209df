package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/a64doc"
	"gopkg.in/yaml.v3"
)

// defaultDir is the XML directory used when nothing else names one.
const defaultDir = "xml"

// Config is the optional YAML configuration file. Every field is a default
// that the matching command-line flag overrides.
type Config struct {
	Dir  string   `yaml:"dir"`
	DB   string   `yaml:"db"`
	Sets []string `yaml:"sets"`
}

// Settings are the effective values after flags, environment and config
// have been merged.
type Settings struct {
	Dir  string
	DB   string
	Sets []a64doc.SetID
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve merges the config with explicit flag values. Empty flags fall back
// to the config. An unset DB is left empty; the default database location
// is only created when a command needs it.
func (c *Config) Resolve(dir, db string) (*Settings, error) {
	s := &Settings{Dir: dir, DB: db}
	if s.Dir == "" {
		s.Dir = c.Dir
	}
	if s.Dir == "" {
		s.Dir = defaultDir
	}
	if s.DB == "" {
		s.DB = c.DB
	}

	sets, err := parseSets(c.Sets, nil)
	if err != nil {
		return nil, err
	}
	s.Sets = sets
	return s, nil
}
