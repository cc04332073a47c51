package memory

// CardPhase represents a card's lifecycle state.
type CardPhase int

const (
	CardHidden   CardPhase = iota // face down, flippable
	CardRevealed                  // face up, awaiting or past comparison
	CardMatched                   // terminal: never hides or re-reveals
)

// String returns the string representation of a CardPhase.
func (p CardPhase) String() string {
	switch p {
	case CardHidden:
		return "hidden"
	case CardRevealed:
		return "revealed"
	case CardMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// Card is one cell of the grid. Its position in the grid slice is its only
// identity across save and restore; the group id is shared by all members
// of a match group.
//
// A card holds at most one pending delayed transition: the mismatch-hide
// countdown, stored as an absolute tick deadline. Starting any new
// transition cancels it, so a card flipped right after its countdown fired
// can never hide itself out from under a fresh comparison.
type Card struct {
	groupID int
	phase   CardPhase
	hideAt  uint64 // tick at which a scheduled hide fires; 0 = none
}

func newCard(groupID int) *Card {
	return &Card{groupID: groupID, phase: CardHidden}
}

// GroupID returns the match-group identifier.
func (c *Card) GroupID() int {
	return c.groupID
}

// Phase returns the card's current lifecycle state.
func (c *Card) Phase() CardPhase {
	return c.phase
}

// Matched reports whether the card has reached its terminal state.
func (c *Card) Matched() bool {
	return c.phase == CardMatched
}

// Revealed reports whether the card is currently face up (including matched
// cards, which are always logically revealed).
func (c *Card) Revealed() bool {
	return c.phase == CardRevealed || c.phase == CardMatched
}

// reveal flips Hidden -> Revealed. Matched and already-revealed cards are
// rejected. Cancels any pending hide countdown.
func (c *Card) reveal() bool {
	if c.phase != CardHidden {
		return false
	}
	c.hideAt = 0
	c.phase = CardRevealed
	return true
}

// hide flips Revealed -> Hidden instantly. Matched cards never hide.
func (c *Card) hide() bool {
	if c.phase != CardRevealed {
		return false
	}
	c.hideAt = 0
	c.phase = CardHidden
	return true
}

// match promotes Revealed -> Matched. Terminal; cancels any countdown.
func (c *Card) match() bool {
	if c.phase != CardRevealed {
		return false
	}
	c.hideAt = 0
	c.phase = CardMatched
	return true
}

// scheduleHide arms the mismatch countdown, replacing any earlier deadline.
// Only a revealed card can be scheduled.
func (c *Card) scheduleHide(at uint64) {
	if c.phase == CardRevealed {
		c.hideAt = at
	}
}

// cancelHide drops a pending countdown without changing phase.
func (c *Card) cancelHide() {
	c.hideAt = 0
}

// tickHide fires the countdown once its deadline passes.
// Returns true if the card hid on this tick.
func (c *Card) tickHide(now uint64) bool {
	if c.hideAt == 0 || now < c.hideAt {
		return false
	}
	return c.hide()
}
