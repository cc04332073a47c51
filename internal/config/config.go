// Package config loads game settings from YAML files, falling back to
// embedded defaults. A user file only needs the keys it wants to change;
// everything else keeps its default value.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MemoryConfig holds the tunable parameters of the memory game. All
// durations are in seconds; the game converts to ticks at its tick rate.
type MemoryConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Preview PreviewConfig `yaml:"preview"`
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// BoardConfig describes the grid shape.
type BoardConfig struct {
	Rows      int `yaml:"rows"`
	Cols      int `yaml:"cols"`
	GroupSize int `yaml:"group_size"`
}

// PreviewConfig controls the memorization phase at game start.
type PreviewConfig struct {
	Enabled         bool    `yaml:"enabled"`
	DurationSeconds float64 `yaml:"duration_seconds"`
}

// TimingConfig controls the visual delays around comparisons.
type TimingConfig struct {
	MismatchDelaySeconds float64 `yaml:"mismatch_delay_seconds"`
	SettleDelaySeconds   float64 `yaml:"settle_delay_seconds"`
}

// ScoringConfig controls scoring.
type ScoringConfig struct {
	BaseScore int `yaml:"base_score"`
}

// LoadMemory returns the memory game config. Search order:
//
//  1. customPath, when non-empty (missing/unreadable file is an error)
//  2. ~/.memoria/configs/memory.yaml
//  3. ./configs/memory.yaml
//  4. embedded defaults
//
// A found file is layered over the defaults, so partial files work.
func LoadMemory(customPath string) (MemoryConfig, error) {
	cfg := DefaultMemoryConfig()

	if customPath != "" {
		if err := overlay(&cfg, customPath); err != nil {
			return MemoryConfig{}, err
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := overlay(&cfg, path); err != nil {
			return MemoryConfig{}, err
		}
		break
	}
	return cfg, nil
}

// overlay merges the YAML file at path into cfg.
func overlay(cfg *MemoryConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".memoria", "configs", "memory.yaml"))
	}
	paths = append(paths, filepath.Join("configs", "memory.yaml"))
	return paths
}
