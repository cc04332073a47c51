package config

// DifficultyPreset names a bundled board/timing combination.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyExpert DifficultyPreset = "expert"
)

// KnownPresets lists the preset names in ascending difficulty.
func KnownPresets() []string {
	return []string{
		string(DifficultyEasy),
		string(DifficultyNormal),
		string(DifficultyHard),
		string(DifficultyExpert),
	}
}

// ValidPreset reports whether name is a known preset. The empty string is
// valid and means "use the config file as-is".
func ValidPreset(name string) bool {
	switch DifficultyPreset(name) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert:
		return true
	}
	return false
}

// ApplyMemoryPreset overwrites the board shape and preview/mismatch timing
// with the preset's values. Unknown or empty presets leave cfg unchanged.
func ApplyMemoryPreset(cfg *MemoryConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board = BoardConfig{Rows: 3, Cols: 4, GroupSize: 2}
		cfg.Preview.DurationSeconds = 4.0
	case DifficultyNormal:
		cfg.Board = BoardConfig{Rows: 4, Cols: 4, GroupSize: 2}
		cfg.Preview.DurationSeconds = 3.0
	case DifficultyHard:
		cfg.Board = BoardConfig{Rows: 6, Cols: 6, GroupSize: 2}
		cfg.Preview.DurationSeconds = 3.0
		cfg.Timing.MismatchDelaySeconds = 0.8
	case DifficultyExpert:
		cfg.Board = BoardConfig{Rows: 6, Cols: 6, GroupSize: 3}
		cfg.Preview.DurationSeconds = 2.5
		cfg.Timing.MismatchDelaySeconds = 0.7
	}
}
