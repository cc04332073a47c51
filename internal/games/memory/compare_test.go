package memory

import "testing"

func revealedCard(groupID int) *Card {
	c := newCard(groupID)
	c.reveal()
	return c
}

func TestEnqueueRequiresRevealed(t *testing.T) {
	e := compareEngine{groupSize: 2}

	if e.enqueue(newCard(0)) {
		t.Error("hidden card must not enqueue")
	}

	m := revealedCard(0)
	m.match()
	if e.enqueue(m) {
		t.Error("matched card must not enqueue")
	}

	if !e.enqueue(revealedCard(0)) {
		t.Error("revealed card should enqueue")
	}
	if e.depth() != 1 {
		t.Errorf("depth() = %d, want 1", e.depth())
	}
}

func TestStepWaitsForFullGroup(t *testing.T) {
	e := compareEngine{groupSize: 3}
	e.enqueue(revealedCard(0))
	e.enqueue(revealedCard(0))

	if _, ready := e.step(1); ready {
		t.Fatal("partial group must not dequeue")
	}

	e.enqueue(revealedCard(0))
	group, ready := e.step(2)
	if !ready {
		t.Fatal("full group should dequeue")
	}
	if len(group) != 3 {
		t.Fatalf("group size = %d, want 3", len(group))
	}
}

func TestStepDequeuesOldestFirst(t *testing.T) {
	e := compareEngine{groupSize: 2}
	a, b := revealedCard(0), revealedCard(0)
	c, d := revealedCard(1), revealedCard(1)
	for _, card := range []*Card{a, b, c, d} {
		e.enqueue(card)
	}

	first, ready := e.step(1)
	if !ready {
		t.Fatal("first group should be ready")
	}
	if first[0] != a || first[1] != b {
		t.Fatal("first dequeue did not return the oldest pair")
	}

	second, ready := e.step(1)
	if !ready {
		t.Fatal("second group should be ready")
	}
	if second[0] != c || second[1] != d {
		t.Fatal("second dequeue did not return the next pair")
	}
}

// Adjacent groups must never interleave: with four queued cards the engine
// hands back exactly [0,1] then [2,3], never a mix.
func TestGroupsAreAtomicAcrossBoundaries(t *testing.T) {
	e := compareEngine{groupSize: 2}
	a := revealedCard(0)
	b := revealedCard(1) // mismatched with a
	c := revealedCard(1)
	d := revealedCard(0)
	for _, card := range []*Card{a, b, c, d} {
		e.enqueue(card)
	}

	first, _ := e.step(1)
	second, _ := e.step(1)
	if first[0] != a || first[1] != b {
		t.Fatal("group boundary drifted: first group is not the first two arrivals")
	}
	if second[0] != c || second[1] != d {
		t.Fatal("group boundary drifted: second group is not the next two arrivals")
	}
	if groupMatches(first) {
		t.Error("a/b should mismatch")
	}
	if !groupMatches(second) {
		t.Error("c/d should match")
	}
}

func TestStaleGroupDiscarded(t *testing.T) {
	e := compareEngine{groupSize: 2}
	a, b := revealedCard(0), revealedCard(0)
	c, d := revealedCard(1), revealedCard(1)
	for _, card := range []*Card{a, b, c, d} {
		e.enqueue(card)
	}

	// b goes back face-down before its group is evaluated; the whole
	// group is dropped and the drain moves on to the next one.
	b.hide()

	group, ready := e.step(1)
	if !ready {
		t.Fatal("expected the next fresh group after discarding the stale one")
	}
	if group[0] != c || group[1] != d {
		t.Fatal("stale group was not skipped")
	}
	if e.depth() != 0 {
		t.Errorf("depth() = %d after drain, want 0", e.depth())
	}
}

func TestSettleDelayDefersEvaluation(t *testing.T) {
	e := compareEngine{groupSize: 2, settleTicks: 5}
	e.enqueue(revealedCard(0))
	e.enqueue(revealedCard(0))

	if _, ready := e.step(10); ready {
		t.Fatal("group returned before settle delay")
	}
	if _, ready := e.step(14); ready {
		t.Fatal("group returned mid-settle")
	}

	group, ready := e.step(15)
	if !ready {
		t.Fatal("group not returned at settle deadline")
	}
	if len(group) != 2 {
		t.Fatalf("group size = %d, want 2", len(group))
	}
}

// Only one group settles at a time; the second group stays queued until the
// first one is handed back.
func TestSingleSettlingGroup(t *testing.T) {
	e := compareEngine{groupSize: 2, settleTicks: 5}
	for i := 0; i < 4; i++ {
		e.enqueue(revealedCard(i / 2))
	}

	if _, ready := e.step(0); ready {
		t.Fatal("first group should be settling")
	}
	if len(e.queue) != 2 {
		t.Fatalf("queue length = %d while settling, want 2", len(e.queue))
	}

	if _, ready := e.step(5); !ready {
		t.Fatal("first group should resolve at its deadline")
	}
	if _, ready := e.step(5); ready {
		t.Fatal("second group must start its own settle delay")
	}
	if _, ready := e.step(10); !ready {
		t.Fatal("second group should resolve after its own delay")
	}
}

func TestResetDiscardsQueueAndSettlingGroup(t *testing.T) {
	e := compareEngine{groupSize: 2, settleTicks: 5}
	for i := 0; i < 3; i++ {
		e.enqueue(revealedCard(0))
	}
	e.step(0) // first pair starts settling

	e.reset()
	if e.depth() != 0 {
		t.Fatalf("depth() = %d after reset, want 0", e.depth())
	}
	if _, ready := e.step(100); ready {
		t.Fatal("reset engine returned a group")
	}
}

func TestGroupMatches(t *testing.T) {
	match := []*Card{revealedCard(2), revealedCard(2), revealedCard(2)}
	if !groupMatches(match) {
		t.Error("identical group ids should match")
	}

	mismatch := []*Card{revealedCard(2), revealedCard(2), revealedCard(3)}
	if groupMatches(mismatch) {
		t.Error("differing group ids should not match")
	}
}
