// Package memory implements the memory-matching card game: grid generation,
// the card state machine, the comparison/scoring engine, session lifecycle,
// and snapshot capture/restore. All timing is expressed in simulation ticks
// on a single logical thread; there is no real clock anywhere in this
// package, so delayed transitions are fully deterministic under test.
package memory

import (
	"errors"
	"fmt"
	"math/rand"
)

// SessionPhase is the controller's lifecycle state.
type SessionPhase int

const (
	SessionNotStarted SessionPhase = iota
	SessionPreviewing              // all cards shown, input blocked
	SessionActive                  // accepting flips
	SessionEnded                   // every card matched
)

// String returns a human-readable phase name.
func (p SessionPhase) String() string {
	switch p {
	case SessionNotStarted:
		return "not_started"
	case SessionPreviewing:
		return "previewing"
	case SessionActive:
		return "active"
	case SessionEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Rules holds the externally supplied session parameters. Durations are in
// ticks; the platform converts from seconds using its tick rate.
type Rules struct {
	Rows      int
	Cols      int
	GroupSize int

	PreviewEnabled bool
	PreviewTicks   int // how long the memorization preview lasts

	MismatchDelayTicks int // how long mismatched faces stay visible
	SettleTicks        int // pause between dequeue and evaluation

	BaseScore int // points for a combo-1 match
}

// DefaultRules returns the classic 4x4 pairs game at 60 ticks/second.
func DefaultRules() Rules {
	return Rules{
		Rows:               4,
		Cols:               4,
		GroupSize:          2,
		PreviewEnabled:     true,
		PreviewTicks:       180,
		MismatchDelayTicks: 60,
		SettleTicks:        20,
		BaseScore:          100,
	}
}

// ErrCardCountMismatch is returned when a snapshot's card list does not
// line up with the freshly rebuilt grid. Restore aborts loudly rather than
// applying partial state.
var ErrCardCountMismatch = errors.New("memory: restored card count does not match grid")

// ErrNotStarted is returned when capturing a session that has no cards yet.
var ErrNotStarted = errors.New("memory: session not started")

// ErrPreviewCapture is returned when capturing during the memorization
// preview, where every card is temporarily face up.
var ErrPreviewCapture = errors.New("memory: cannot save during the preview")

// Session aggregates one grid of cards, the comparison engine, and the
// score/combo counters. All mutation happens through Flip and Advance on a
// single logical thread.
type Session struct {
	rules  Rules
	rng    *rand.Rand
	events Events

	tick  uint64
	phase SessionPhase
	cards []*Card

	engine    compareEngine
	score     int
	combo     int
	bestCombo int

	previewEndsAt uint64
}

// NewSession validates the rules and creates an idle session. Start (or
// Restore) must be called before the session accepts flips.
func NewSession(rules Rules, rng *rand.Rand, events Events) (*Session, error) {
	if err := ValidateBoard(rules.Rows, rules.Cols, rules.GroupSize); err != nil {
		return nil, err
	}
	if rules.BaseScore <= 0 {
		rules.BaseScore = 100
	}
	if events == nil {
		events = NopEvents{}
	}
	if rng == nil {
		return nil, fmt.Errorf("memory: nil rng")
	}

	return &Session{
		rules:  rules,
		rng:    rng,
		events: events,
		engine: compareEngine{
			groupSize:   rules.GroupSize,
			settleTicks: rules.SettleTicks,
		},
	}, nil
}

// Start begins a fresh game: score and combo reset, queue cleared, grid
// rebuilt from a new shuffle. With preview enabled the session shows every
// card face up and blocks input until the preview deadline passes.
func (s *Session) Start(withPreview bool) error {
	layout, err := Layout(s.rules.Rows, s.rules.Cols, s.rules.GroupSize, s.rng)
	if err != nil {
		return err
	}

	s.cards = make([]*Card, len(layout))
	for i, id := range layout {
		s.cards[i] = newCard(id)
	}

	s.score = 0
	s.combo = 0
	s.bestCombo = 0
	s.engine.reset()

	if withPreview && s.rules.PreviewEnabled && s.rules.PreviewTicks > 0 {
		for _, c := range s.cards {
			c.reveal()
		}
		s.phase = SessionPreviewing
		s.previewEndsAt = s.tick + uint64(s.rules.PreviewTicks)
	} else {
		s.phase = SessionActive
	}
	return nil
}

// Flip requests that the card at the given cell be revealed. Returns false
// when the session is not accepting input, the index is out of range, or
// the card cannot transition (already revealed or matched). A successful
// flip enqueues the card for comparison in strict arrival order.
func (s *Session) Flip(index int) bool {
	if s.phase != SessionActive {
		return false
	}
	if index < 0 || index >= len(s.cards) {
		return false
	}

	c := s.cards[index]
	if !c.reveal() {
		return false
	}
	s.engine.enqueue(c)
	return true
}

// Advance moves the session clock one tick: preview expiry, per-card hide
// countdowns, and comparison draining all run here, in that order.
func (s *Session) Advance() {
	s.tick++

	switch s.phase {
	case SessionPreviewing:
		if s.tick >= s.previewEndsAt {
			s.endPreview()
		}
	case SessionActive:
		for _, c := range s.cards {
			c.tickHide(s.tick)
		}
		s.drain()
	}
}

// endPreview instantly hides every non-matched card and opens the session
// for input.
func (s *Session) endPreview() {
	for _, c := range s.cards {
		if !c.Matched() {
			c.hide()
		}
	}
	s.engine.reset()
	s.phase = SessionActive
}

// drain processes every comparison group that is ready on this tick. It
// stops as soon as the engine has no ready group or the session ends.
func (s *Session) drain() {
	for {
		group, ready := s.engine.step(s.tick)
		if !ready {
			return
		}
		if s.resolve(group) {
			return
		}
	}
}

// resolve evaluates one dequeued group. Returns true when the session has
// ended and draining must stop; remaining queue entries are discarded.
func (s *Session) resolve(group []*Card) bool {
	// A group can go stale during its settle delay too, so the check
	// repeats after dequeue.
	if groupStale(group) {
		return false
	}

	if groupMatches(group) {
		for _, c := range group {
			c.match()
		}
		s.combo++
		if s.combo > s.bestCombo {
			s.bestCombo = s.combo
		}
		points := s.rules.BaseScore * s.combo
		s.score += points
		s.events.GroupResolved(true, points)
		s.events.ScoreChanged(s.score, s.combo)

		if s.allMatched() {
			s.phase = SessionEnded
			s.engine.reset()
			s.events.GameWon(s.score)
			return true
		}
		return false
	}

	s.combo = 0
	deadline := s.tick + uint64(s.rules.MismatchDelayTicks)
	// The stale check above guarantees every member is still Revealed.
	for _, c := range group {
		c.scheduleHide(deadline)
	}
	s.events.GroupResolved(false, 0)
	s.events.ScoreChanged(s.score, s.combo)
	return false
}

// allMatched reports whether every card has reached its terminal phase.
func (s *Session) allMatched() bool {
	for _, c := range s.cards {
		if !c.Matched() {
			return false
		}
	}
	return true
}

// Abandon tears the session down without saving: the queue is cleared, all
// pending countdowns cancelled, and the session stops accepting input.
func (s *Session) Abandon() {
	s.engine.reset()
	for _, c := range s.cards {
		c.cancelHide()
	}
	s.phase = SessionNotStarted
}

// --- Queries ---

// Phase returns the session lifecycle state.
func (s *Session) Phase() SessionPhase {
	return s.phase
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Combo returns the count of consecutive matches since the last mismatch.
func (s *Session) Combo() int {
	return s.combo
}

// BestCombo returns the highest combo reached this session.
func (s *Session) BestCombo() int {
	return s.bestCombo
}

// Rows returns the grid's row count.
func (s *Session) Rows() int {
	return s.rules.Rows
}

// Cols returns the grid's column count.
func (s *Session) Cols() int {
	return s.rules.Cols
}

// GroupSize returns the number of cards per match group.
func (s *Session) GroupSize() int {
	return s.rules.GroupSize
}

// CardCount returns the number of cards in the grid.
func (s *Session) CardCount() int {
	return len(s.cards)
}

// Card returns a read-only view of the card at the given cell.
func (s *Session) Card(index int) (groupID int, phase CardPhase) {
	c := s.cards[index]
	return c.groupID, c.phase
}

// MatchedGroups returns how many full groups have been matched.
func (s *Session) MatchedGroups() int {
	n := 0
	for _, c := range s.cards {
		if c.Matched() {
			n++
		}
	}
	return n / s.rules.GroupSize
}

// TotalGroups returns the number of match groups on the board.
func (s *Session) TotalGroups() int {
	return len(s.cards) / s.rules.GroupSize
}

// PendingCompares returns the number of cards awaiting comparison.
func (s *Session) PendingCompares() int {
	return s.engine.depth()
}

// PreviewRemaining returns the ticks left in the preview phase, or 0.
func (s *Session) PreviewRemaining() uint64 {
	if s.phase != SessionPreviewing || s.tick >= s.previewEndsAt {
		return 0
	}
	return s.previewEndsAt - s.tick
}
