package memory

import (
	"fmt"

	"github.com/quietbit/memoria/internal/savefile"
)

// Capture produces a positional snapshot of the live session. Fails when
// the session has never started or holds no cards, so a save can never
// clobber an existing file with an empty state.
func (s *Session) Capture() (savefile.Snapshot, error) {
	if s.phase == SessionNotStarted || len(s.cards) == 0 {
		return savefile.Snapshot{}, ErrNotStarted
	}
	// The preview shows every card face up; a snapshot taken now would
	// restore to a board with nothing left to flip.
	if s.phase == SessionPreviewing {
		return savefile.Snapshot{}, ErrPreviewCapture
	}

	snap := savefile.Snapshot{
		Version:   savefile.Version,
		Rows:      s.rules.Rows,
		Cols:      s.rules.Cols,
		GroupSize: s.rules.GroupSize,
		Score:     s.score,
		Combo:     s.combo,
		Cards:     make([]savefile.CardRecord, len(s.cards)),
	}
	for i, c := range s.cards {
		snap.Cards[i] = savefile.CardRecord{
			GroupID:  c.groupID,
			Matched:  c.Matched(),
			Revealed: c.Revealed(),
		}
	}
	return snap, nil
}

// Restore replaces the session's state with a snapshot. The grid is rebuilt
// to the snapshot's declared dimensions via the generator (which reshuffles),
// then every generated card's identity and phase are overwritten positionally
// from the snapshot. Restore is a full identity overwrite, not a patch.
//
// The live session is only touched after the new grid is fully built and
// verified, so a failed restore leaves a playable session playable.
func (s *Session) Restore(snap savefile.Snapshot) error {
	if err := savefile.Validate(snap); err != nil {
		return err
	}
	if err := ValidateBoard(snap.Rows, snap.Cols, snap.GroupSize); err != nil {
		return err
	}

	layout, err := Layout(snap.Rows, snap.Cols, snap.GroupSize, s.rng)
	if err != nil {
		return err
	}

	cards := make([]*Card, len(layout))
	for i, id := range layout {
		cards[i] = newCard(id)
	}

	// Position is the only correlation key; any count drift means the
	// snapshot and grid no longer describe the same board.
	if len(cards) != len(snap.Cards) {
		return fmt.Errorf("%w: snapshot has %d cards, grid has %d",
			ErrCardCountMismatch, len(snap.Cards), len(cards))
	}

	for i, rec := range snap.Cards {
		c := cards[i]
		c.groupID = rec.GroupID
		switch {
		case rec.Matched:
			// A matched card is driven through the reveal transition
			// first; it must never surface with a hidden face.
			c.reveal()
			c.match()
		case rec.Revealed:
			c.reveal()
		}
	}

	s.rules.Rows = snap.Rows
	s.rules.Cols = snap.Cols
	s.rules.GroupSize = snap.GroupSize
	s.cards = cards
	s.score = snap.Score
	s.combo = snap.Combo
	// The snapshot does not carry the combo history, so the restored combo
	// is the best known.
	s.bestCombo = snap.Combo
	s.engine.reset()
	s.engine.groupSize = snap.GroupSize

	// A card saved Revealed but unmatched was mid-comparison when the
	// snapshot was taken. It rejoins the queue in positional order so its
	// group can still assemble; left out it could never be flipped again.
	for _, c := range s.cards {
		if c.Phase() == CardRevealed {
			s.engine.enqueue(c)
		}
	}

	if s.allMatched() {
		s.phase = SessionEnded
	} else {
		s.phase = SessionActive
	}
	return nil
}
