package memory

import (
	"errors"
	"fmt"
	"math/rand"
)

// Board validation errors. Invalid configurations are rejected outright;
// the generator never truncates or pads a partial group.
var (
	ErrBadDimensions = errors.New("memory: rows and cols must be positive")
	ErrGroupSize     = errors.New("memory: group size must be at least 2")
	ErrUnevenGrid    = errors.New("memory: board size must be divisible by group size")
	ErrGridTooSmall  = errors.New("memory: board must hold at least two full groups")
)

// ValidateBoard checks that a rows/cols/groupSize combination describes a
// playable board: every cell belongs to a full group and there are at least
// two groups to match against each other.
func ValidateBoard(rows, cols, groupSize int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w (got %dx%d)", ErrBadDimensions, rows, cols)
	}
	if groupSize < 2 {
		return fmt.Errorf("%w (got %d)", ErrGroupSize, groupSize)
	}
	total := rows * cols
	if total%groupSize != 0 {
		return fmt.Errorf("%w (%dx%d = %d cells, group size %d)", ErrUnevenGrid, rows, cols, total, groupSize)
	}
	if total < 2*groupSize {
		return fmt.Errorf("%w (%d cells, group size %d)", ErrGridTooSmall, total, groupSize)
	}
	return nil
}

// Layout produces one group identifier per cell: each of the
// rows*cols/groupSize contiguous 0-based ids appears exactly groupSize
// times, in uniformly random order.
func Layout(rows, cols, groupSize int, rng *rand.Rand) ([]int, error) {
	if err := ValidateBoard(rows, cols, groupSize); err != nil {
		return nil, err
	}

	n := rows * cols
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i / groupSize
	}

	// Fisher–Yates: every permutation equally likely.
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}

	return ids, nil
}
