package memory

import (
	"errors"
	"math/rand"
	"testing"
)

func TestValidateBoard(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		cols      int
		groupSize int
		wantErr   error
	}{
		{"classic 4x4 pairs", 4, 4, 2, nil},
		{"triplets 6x6", 6, 6, 3, nil},
		{"smallest board", 2, 2, 2, nil},
		{"zero rows", 0, 4, 2, ErrBadDimensions},
		{"negative cols", 4, -1, 2, ErrBadDimensions},
		{"group of one", 4, 4, 1, ErrGroupSize},
		{"group of zero", 4, 4, 0, ErrGroupSize},
		{"uneven 3x3 pairs", 3, 3, 2, ErrUnevenGrid},
		{"uneven 4x4 triplets", 4, 4, 3, ErrUnevenGrid},
		{"single group 1x2", 1, 2, 2, ErrGridTooSmall},
		{"single group 1x3 triplets", 1, 3, 3, ErrGridTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBoard(tt.rows, tt.cols, tt.groupSize)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateBoard(%d, %d, %d) = %v, want nil",
						tt.rows, tt.cols, tt.groupSize, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateBoard(%d, %d, %d) = %v, want %v",
					tt.rows, tt.cols, tt.groupSize, err, tt.wantErr)
			}
		})
	}
}

func TestLayoutMultiplicity(t *testing.T) {
	tests := []struct {
		rows, cols, groupSize int
	}{
		{4, 4, 2},
		{6, 6, 2},
		{6, 6, 3},
		{2, 3, 2},
		{3, 4, 4},
	}

	rng := rand.New(rand.NewSource(42))
	for _, tt := range tests {
		ids, err := Layout(tt.rows, tt.cols, tt.groupSize, rng)
		if err != nil {
			t.Fatalf("Layout(%d, %d, %d): %v", tt.rows, tt.cols, tt.groupSize, err)
		}
		if len(ids) != tt.rows*tt.cols {
			t.Fatalf("got %d ids, want %d", len(ids), tt.rows*tt.cols)
		}

		groups := tt.rows * tt.cols / tt.groupSize
		counts := make(map[int]int)
		for _, id := range ids {
			counts[id]++
		}
		if len(counts) != groups {
			t.Fatalf("got %d distinct groups, want %d", len(counts), groups)
		}
		for id, n := range counts {
			if id < 0 || id >= groups {
				t.Errorf("group id %d out of range [0, %d)", id, groups)
			}
			if n != tt.groupSize {
				t.Errorf("group %d appears %d times, want %d", id, n, tt.groupSize)
			}
		}
	}
}

func TestLayoutRejectsInvalidBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := Layout(3, 3, 2, rng); !errors.Is(err, ErrUnevenGrid) {
		t.Fatalf("Layout(3, 3, 2) = %v, want %v", err, ErrUnevenGrid)
	}
}

func TestLayoutDeterministicForSeed(t *testing.T) {
	a, err := Layout(4, 4, 2, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Layout(4, 4, 2, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different layouts at index %d: %d vs %d", i, a[i], b[i])
		}
	}
}

// Every cell should be roughly equally likely to hold any given group id.
// With 2000 shuffles of a 4x4 board, each (cell, id) pair is expected 250
// times; a wide tolerance keeps the test stable while still catching a
// broken shuffle that pins ids to their initial positions.
func TestLayoutPositionalUniformity(t *testing.T) {
	const (
		trials             = 2000
		rows, cols, groups = 4, 4, 8
	)
	rng := rand.New(rand.NewSource(99))

	counts := make([][]int, rows*cols)
	for i := range counts {
		counts[i] = make([]int, groups)
	}

	for trial := 0; trial < trials; trial++ {
		ids, err := Layout(rows, cols, 2, rng)
		if err != nil {
			t.Fatal(err)
		}
		for cell, id := range ids {
			counts[cell][id]++
		}
	}

	expected := float64(trials) * 2 / float64(groups) // 2 cards per group
	for cell := range counts {
		for id, n := range counts[cell] {
			ratio := float64(n) / expected
			if ratio < 0.7 || ratio > 1.3 {
				t.Errorf("cell %d saw group %d in %d/%d trials (ratio %.2f), expected ~%.0f",
					cell, id, n, trials, ratio, expected)
			}
		}
	}
}
