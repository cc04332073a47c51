package memory

// Events receives fire-and-forget notifications from a session: sound cues,
// score display updates, and the game-over banner all hang off these. The
// session never blocks on an Events implementation and ignores its results.
type Events interface {
	// ScoreChanged fires after every processed comparison group.
	ScoreChanged(score, combo int)

	// GroupResolved fires once per evaluated group: matched with the points
	// awarded, or a mismatch with zero points.
	GroupResolved(matched bool, points int)

	// GameWon fires when the last card matches.
	GameWon(finalScore int)
}

// NopEvents discards all notifications. Used when no presentation layer is
// attached, e.g. in tests.
type NopEvents struct{}

func (NopEvents) ScoreChanged(score, combo int)       {}
func (NopEvents) GroupResolved(matched bool, pts int) {}
func (NopEvents) GameWon(finalScore int)              {}
