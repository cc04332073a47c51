// Package savefile implements the durable encoding of a mid-game memory
// session. Snapshots are stored as human-inspectable YAML and written
// atomically so a failed save never corrupts an existing file.
package savefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Version is the current snapshot schema version.
const Version = 1

// ErrCorrupt is returned when save data exists but cannot be decoded or
// fails schema validation. Wrapped errors carry the detail.
var ErrCorrupt = errors.New("savefile: corrupt save data")

// Snapshot is a positional capture of a session: the card list order
// corresponds to the grid's cell order at capture time, which is the only
// correlation key across save and restore.
type Snapshot struct {
	Version   int          `yaml:"version"`
	Rows      int          `yaml:"rows"`
	Cols      int          `yaml:"cols"`
	GroupSize int          `yaml:"group_size"`
	Score     int          `yaml:"score"`
	Combo     int          `yaml:"combo"`
	Cards     []CardRecord `yaml:"cards"`
}

// CardRecord is one card's persisted identity and phase flags.
type CardRecord struct {
	GroupID  int  `yaml:"group_id"`
	Matched  bool `yaml:"matched"`
	Revealed bool `yaml:"revealed"`
}

// wireSnapshot mirrors Snapshot with pointer fields so that missing keys
// can be distinguished from zero values. Field presence is mandatory.
type wireSnapshot struct {
	Version   *int         `yaml:"version"`
	Rows      *int         `yaml:"rows"`
	Cols      *int         `yaml:"cols"`
	GroupSize *int         `yaml:"group_size"`
	Score     *int         `yaml:"score"`
	Combo     *int         `yaml:"combo"`
	Cards     []wireRecord `yaml:"cards"`
}

type wireRecord struct {
	GroupID  *int  `yaml:"group_id"`
	Matched  *bool `yaml:"matched"`
	Revealed *bool `yaml:"revealed"`
}

// Encode serializes a snapshot to YAML after validating it.
func Encode(s Snapshot) ([]byte, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("savefile: cannot encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses and validates snapshot YAML. Absent fields and type
// mismatches are parse failures, never silently defaulted.
func Decode(data []byte) (Snapshot, error) {
	var w wireSnapshot
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if w.Version == nil || w.Rows == nil || w.Cols == nil ||
		w.GroupSize == nil || w.Score == nil || w.Combo == nil {
		return Snapshot{}, fmt.Errorf("%w: missing required field", ErrCorrupt)
	}

	s := Snapshot{
		Version:   *w.Version,
		Rows:      *w.Rows,
		Cols:      *w.Cols,
		GroupSize: *w.GroupSize,
		Score:     *w.Score,
		Combo:     *w.Combo,
		Cards:     make([]CardRecord, len(w.Cards)),
	}
	for i, r := range w.Cards {
		if r.GroupID == nil || r.Matched == nil || r.Revealed == nil {
			return Snapshot{}, fmt.Errorf("%w: card %d missing required field", ErrCorrupt, i)
		}
		s.Cards[i] = CardRecord{
			GroupID:  *r.GroupID,
			Matched:  *r.Matched,
			Revealed: *r.Revealed,
		}
	}

	if err := Validate(s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Validate checks the structural invariants of a snapshot: positive
// dimensions, divisibility, exact card count, group ids in range with exact
// multiplicity, and non-negative counters.
func Validate(s Snapshot) error {
	if s.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrCorrupt, s.Version)
	}
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("%w: non-positive dimensions %dx%d", ErrCorrupt, s.Rows, s.Cols)
	}
	if s.GroupSize < 2 {
		return fmt.Errorf("%w: group size %d", ErrCorrupt, s.GroupSize)
	}
	total := s.Rows * s.Cols
	if total%s.GroupSize != 0 {
		return fmt.Errorf("%w: %d cards not divisible by group size %d", ErrCorrupt, total, s.GroupSize)
	}
	if len(s.Cards) != total {
		return fmt.Errorf("%w: %d cards recorded for a %dx%d grid", ErrCorrupt, len(s.Cards), s.Rows, s.Cols)
	}
	if s.Score < 0 || s.Combo < 0 {
		return fmt.Errorf("%w: negative score or combo", ErrCorrupt)
	}

	groups := total / s.GroupSize
	counts := make([]int, groups)
	for i, c := range s.Cards {
		if c.GroupID < 0 || c.GroupID >= groups {
			return fmt.Errorf("%w: card %d has group id %d out of range [0, %d)", ErrCorrupt, i, c.GroupID, groups)
		}
		counts[c.GroupID]++
		if c.Matched && !c.Revealed {
			return fmt.Errorf("%w: card %d is matched but not revealed", ErrCorrupt, i)
		}
	}
	for id, n := range counts {
		if n != s.GroupSize {
			return fmt.Errorf("%w: group %d appears %d times, expected %d", ErrCorrupt, id, n, s.GroupSize)
		}
	}
	return nil
}

// Store reads and writes the save file at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for the given path, expanding a leading ~.
func NewStore(path string) (*Store, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("savefile: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return &Store{path: path}, nil
}

// Path returns the resolved save file path.
func (st *Store) Path() string {
	return st.path
}

// Exists reports whether a save file is present on disk.
func (st *Store) Exists() bool {
	info, err := os.Stat(st.path)
	return err == nil && !info.IsDir()
}

// Write persists encoded snapshot data atomically: the bytes go to a temp
// file in the same directory which is then renamed over the target, so a
// crash mid-write leaves the previous save intact.
func (st *Store) Write(data []byte) error {
	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("savefile: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(st.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("savefile: cannot create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("savefile: cannot write save data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("savefile: cannot close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, st.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("savefile: cannot replace save file: %w", err)
	}
	return nil
}

// Read loads the raw save data. found is false when no save exists; an
// error is returned only for actual I/O failures.
func (st *Store) Read() (data []byte, found bool, err error) {
	data, err = os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("savefile: cannot read save file: %w", err)
	}
	return data, true, nil
}

// Remove deletes the save file. Missing files are not an error.
func (st *Store) Remove() error {
	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("savefile: cannot remove save file: %w", err)
	}
	return nil
}
