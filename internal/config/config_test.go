package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMemoryConfig(t *testing.T) {
	cfg := DefaultMemoryConfig()

	if cfg.Board.Rows != 4 || cfg.Board.Cols != 4 || cfg.Board.GroupSize != 2 {
		t.Errorf("default board = %dx%d/%d, want 4x4/2",
			cfg.Board.Rows, cfg.Board.Cols, cfg.Board.GroupSize)
	}
	if !cfg.Preview.Enabled {
		t.Error("preview should default to enabled")
	}
	if cfg.Preview.DurationSeconds <= 0 {
		t.Error("preview duration must be positive")
	}
	if cfg.Timing.MismatchDelaySeconds <= 0 {
		t.Error("mismatch delay must be positive")
	}
	if cfg.Scoring.BaseScore <= 0 {
		t.Error("base score must be positive")
	}
}

func TestLoadMemoryCustomPathOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memory.yaml")
	partial := "board:\n  rows: 6\n  cols: 6\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMemory(path)
	if err != nil {
		t.Fatalf("LoadMemory: %v", err)
	}
	if cfg.Board.Rows != 6 || cfg.Board.Cols != 6 {
		t.Errorf("board = %dx%d, want 6x6", cfg.Board.Rows, cfg.Board.Cols)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Board.GroupSize != 2 {
		t.Errorf("group size = %d, want default 2", cfg.Board.GroupSize)
	}
	if cfg.Scoring.BaseScore != 100 {
		t.Errorf("base score = %d, want default 100", cfg.Scoring.BaseScore)
	}
}

func TestLoadMemoryMissingCustomPathFails(t *testing.T) {
	if _, err := LoadMemory(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadMemory should fail for an explicit missing path")
	}
}

func TestLoadMemoryMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.yaml")
	if err := os.WriteFile(path, []byte("board: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMemory(path); err == nil {
		t.Fatal("LoadMemory should fail on malformed YAML")
	}
}

func TestApplyMemoryPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		rows      int
		cols      int
		groupSize int
	}{
		{DifficultyEasy, 3, 4, 2},
		{DifficultyNormal, 4, 4, 2},
		{DifficultyHard, 6, 6, 2},
		{DifficultyExpert, 6, 6, 3},
	}

	for _, tt := range tests {
		cfg := DefaultMemoryConfig()
		ApplyMemoryPreset(&cfg, tt.preset)
		if cfg.Board.Rows != tt.rows || cfg.Board.Cols != tt.cols || cfg.Board.GroupSize != tt.groupSize {
			t.Errorf("%s: board = %dx%d/%d, want %dx%d/%d", tt.preset,
				cfg.Board.Rows, cfg.Board.Cols, cfg.Board.GroupSize,
				tt.rows, tt.cols, tt.groupSize)
		}
		// Every preset board must be playable.
		total := cfg.Board.Rows * cfg.Board.Cols
		if total%cfg.Board.GroupSize != 0 {
			t.Errorf("%s: %d cells not divisible by group size %d", tt.preset, total, cfg.Board.GroupSize)
		}
	}
}

func TestApplyMemoryPresetUnknownIsNoop(t *testing.T) {
	cfg := DefaultMemoryConfig()
	want := cfg
	ApplyMemoryPreset(&cfg, "nightmare")
	if cfg != want {
		t.Error("unknown preset modified the config")
	}
}

func TestValidPreset(t *testing.T) {
	for _, name := range KnownPresets() {
		if !ValidPreset(name) {
			t.Errorf("ValidPreset(%q) = false", name)
		}
	}
	if !ValidPreset("") {
		t.Error("empty preset should be valid")
	}
	if ValidPreset("nightmare") {
		t.Error("unknown preset should be invalid")
	}
}
