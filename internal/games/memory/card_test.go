package memory

import "testing"

func TestCardLifecycle(t *testing.T) {
	c := newCard(3)

	if c.Phase() != CardHidden {
		t.Fatalf("new card phase = %v, want hidden", c.Phase())
	}
	if c.GroupID() != 3 {
		t.Fatalf("GroupID() = %d, want 3", c.GroupID())
	}

	if !c.reveal() {
		t.Fatal("reveal() from hidden should succeed")
	}
	if c.reveal() {
		t.Fatal("reveal() from revealed should fail")
	}
	if !c.Revealed() {
		t.Fatal("Revealed() should be true after reveal")
	}

	if !c.hide() {
		t.Fatal("hide() from revealed should succeed")
	}
	if c.hide() {
		t.Fatal("hide() from hidden should fail")
	}

	c.reveal()
	if !c.match() {
		t.Fatal("match() from revealed should succeed")
	}
	if !c.Matched() {
		t.Fatal("Matched() should be true after match")
	}
}

func TestMatchedCardIsTerminal(t *testing.T) {
	c := newCard(0)
	c.reveal()
	c.match()

	if c.hide() {
		t.Error("matched card must not hide")
	}
	if c.reveal() {
		t.Error("matched card must not re-reveal")
	}
	if c.match() {
		t.Error("matched card must not re-match")
	}
	if !c.Revealed() {
		t.Error("matched card is logically revealed")
	}
	if c.Phase() != CardMatched {
		t.Errorf("phase = %v, want matched", c.Phase())
	}
}

func TestMatchFromHiddenRejected(t *testing.T) {
	c := newCard(0)
	if c.match() {
		t.Fatal("match() from hidden should fail")
	}
}

func TestScheduledHideFiresAtDeadline(t *testing.T) {
	c := newCard(0)
	c.reveal()
	c.scheduleHide(10)

	if c.tickHide(9) {
		t.Fatal("hide fired before deadline")
	}
	if c.Phase() != CardRevealed {
		t.Fatal("card hid before deadline")
	}
	if !c.tickHide(10) {
		t.Fatal("hide did not fire at deadline")
	}
	if c.Phase() != CardHidden {
		t.Fatalf("phase = %v after countdown, want hidden", c.Phase())
	}
}

func TestRevealCancelsScheduledHide(t *testing.T) {
	c := newCard(0)
	c.reveal()
	c.scheduleHide(5)
	c.hide()

	// Re-reveal after an instant hide; the old deadline must be gone.
	c.reveal()
	if c.tickHide(100) {
		t.Fatal("stale countdown fired after re-reveal")
	}
	if c.Phase() != CardRevealed {
		t.Fatalf("phase = %v, want revealed", c.Phase())
	}
}

func TestScheduleHideIgnoredWhenNotRevealed(t *testing.T) {
	c := newCard(0)
	c.scheduleHide(5)
	if c.tickHide(5) {
		t.Fatal("countdown armed on a hidden card")
	}

	c.reveal()
	c.match()
	c.scheduleHide(5)
	if c.tickHide(5) {
		t.Fatal("countdown armed on a matched card")
	}
}

func TestCancelHide(t *testing.T) {
	c := newCard(0)
	c.reveal()
	c.scheduleHide(5)
	c.cancelHide()

	if c.tickHide(5) {
		t.Fatal("cancelled countdown fired")
	}
	if c.Phase() != CardRevealed {
		t.Fatalf("phase = %v, want revealed", c.Phase())
	}
}

func TestCardPhaseString(t *testing.T) {
	tests := []struct {
		phase CardPhase
		want  string
	}{
		{CardHidden, "hidden"},
		{CardRevealed, "revealed"},
		{CardMatched, "matched"},
		{CardPhase(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("CardPhase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
