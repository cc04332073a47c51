package memory

// compareEngine owns the FIFO queue of revealed-but-uncompared cards and
// drains it in exact groups of groupSize, oldest first. At most one group
// is "settling" (waiting out the visual-settle delay) at a time, so group
// evaluations never interleave.
type compareEngine struct {
	groupSize   int
	settleTicks int

	queue    []*Card
	pending  []*Card // group waiting out the settle delay
	settleAt uint64
}

// enqueue appends a freshly revealed card. Cards that are not currently
// revealed (or already matched) are never queued.
func (e *compareEngine) enqueue(c *Card) bool {
	if c.Phase() != CardRevealed {
		return false
	}
	e.queue = append(e.queue, c)
	return true
}

// depth returns the number of cards awaiting comparison, including any
// group currently settling.
func (e *compareEngine) depth() int {
	return len(e.queue) + len(e.pending)
}

// reset discards the queue and cancels any settling group. Used when a
// session is torn down, restored, or its preview ends.
func (e *compareEngine) reset() {
	e.queue = nil
	e.pending = nil
	e.settleAt = 0
}

// step advances the drain by one tick and returns a group ready for
// evaluation, if any. Stale groups (a member no longer revealed, e.g. after
// an instant hide or a prior match) are discarded without scoring and the
// drain continues to the next group.
func (e *compareEngine) step(now uint64) (group []*Card, ready bool) {
	if e.pending != nil {
		if now < e.settleAt {
			return nil, false
		}
		g := e.pending
		e.pending = nil
		e.settleAt = 0
		return g, true
	}

	for len(e.queue) >= e.groupSize {
		g := make([]*Card, e.groupSize)
		copy(g, e.queue)
		e.queue = e.queue[e.groupSize:]

		if groupStale(g) {
			continue
		}

		if e.settleTicks <= 0 {
			return g, true
		}
		e.pending = g
		e.settleAt = now + uint64(e.settleTicks)
		return nil, false
	}

	return nil, false
}

// groupStale reports whether any member has left the Revealed phase since
// it was enqueued. Such groups are dropped without scoring.
func groupStale(group []*Card) bool {
	for _, c := range group {
		if c.Phase() != CardRevealed {
			return true
		}
	}
	return false
}

// groupMatches reports whether all members share one group id.
func groupMatches(group []*Card) bool {
	for _, c := range group[1:] {
		if c.GroupID() != group[0].GroupID() {
			return false
		}
	}
	return true
}
