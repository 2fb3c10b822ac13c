// Package config composes the process's in-memory configuration using
// koanf, mirroring the teacher's koanf-based layering without reading any
// flag or environment provider: spec §6 rules out CLI flags and environment
// variables for these tools, so the only provider registered is an
// in-process default map.
package config

import (
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// LogConfig mirrors logger.Config's fields that are meaningful to load
// through koanf.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Output string `koanf:"output"`
}

// Config is the full in-process configuration tree.
type Config struct {
	Log LogConfig `koanf:"log"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"log.level":  "info",
		"log.format": "json",
		"log.output": "stderr",
	}
}

// Load builds the default Config by composing koanf providers. overrides,
// if non-nil, is merged on top of the built-in defaults — for embedders of
// this module; the CLI entry points always pass nil.
func Load(overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, err
	}
	if overrides != nil {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
