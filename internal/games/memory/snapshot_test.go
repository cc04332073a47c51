package memory

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/quietbit/memoria/internal/savefile"
)

func TestCaptureRequiresStartedSession(t *testing.T) {
	s, err := NewSession(instantRules(4, 4, 2), rand.New(rand.NewSource(1)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Capture(); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("Capture() on idle session = %v, want %v", err, ErrNotStarted)
	}
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	rules := instantRules(4, 4, 2)
	rules.MismatchDelayTicks = 50
	src := newTestSession(t, rules, 7)

	// Build mid-game state: two matched groups, one revealed mismatch pair.
	flipGroup(t, src, 0)
	flipGroup(t, src, 1)
	a := indicesOf(src, 2)[0]
	b := indicesOf(src, 3)[0]
	src.Flip(a)
	src.Flip(b)
	src.Advance()

	snap, err := src.Capture()
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if snap.Score != src.Score() || snap.Combo != src.Combo() {
		t.Fatalf("snapshot score/combo = %d/%d, session has %d/%d",
			snap.Score, snap.Combo, src.Score(), src.Combo())
	}

	// Restore into a session built with a different seed and board shape.
	dst := newTestSession(t, instantRules(2, 3, 2), 99)
	if err := dst.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if dst.Rows() != 4 || dst.Cols() != 4 || dst.GroupSize() != 2 {
		t.Fatalf("restored board = %dx%d/%d, want 4x4/2",
			dst.Rows(), dst.Cols(), dst.GroupSize())
	}
	if dst.Score() != src.Score() || dst.Combo() != src.Combo() {
		t.Fatalf("restored score/combo = %d/%d, want %d/%d",
			dst.Score(), dst.Combo(), src.Score(), src.Combo())
	}
	if dst.Phase() != SessionActive {
		t.Fatalf("restored phase = %v, want active", dst.Phase())
	}
	for i := 0; i < src.CardCount(); i++ {
		srcID, srcPhase := src.Card(i)
		dstID, dstPhase := dst.Card(i)
		if srcID != dstID {
			t.Fatalf("cell %d group id = %d, want %d", i, dstID, srcID)
		}
		if srcPhase != dstPhase {
			t.Fatalf("cell %d phase = %v, want %v", i, dstPhase, srcPhase)
		}
	}
	// The revealed mismatch pair was mid-comparison when captured; it is
	// back in the queue after restore.
	if dst.PendingCompares() != 2 {
		t.Errorf("PendingCompares() = %d after restore, want 2", dst.PendingCompares())
	}
}

// A card saved in the middle of a comparison must stay playable: after
// restore it re-enters the queue and its group can still be completed.
func TestRestoredRevealedCardCanStillMatch(t *testing.T) {
	snap := savefile.Snapshot{
		Version:   savefile.Version,
		Rows:      2,
		Cols:      2,
		GroupSize: 2,
		Cards: []savefile.CardRecord{
			{GroupID: 0, Revealed: true},
			{GroupID: 0},
			{GroupID: 1},
			{GroupID: 1},
		},
	}

	s := newTestSession(t, instantRules(2, 2, 2), 1)
	if err := s.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := s.PendingCompares(); got != 1 {
		t.Fatalf("PendingCompares() after restore = %d, want 1", got)
	}

	// Completing the interrupted group matches it.
	if !s.Flip(1) {
		t.Fatal("Flip(1) rejected")
	}
	s.Advance()
	if got := s.MatchedGroups(); got != 1 {
		t.Fatalf("MatchedGroups() = %d after completing the saved group, want 1", got)
	}
	if got := s.Score(); got != 100 {
		t.Fatalf("score = %d, want 100", got)
	}

	// The rest of the board plays out to a win.
	s.Flip(2)
	s.Flip(3)
	s.Advance()
	if s.Phase() != SessionEnded {
		t.Fatalf("phase = %v after matching every group, want ended", s.Phase())
	}
	if got := s.Score(); got != 300 {
		t.Fatalf("final score = %d, want 300 (100x1 + 100x2)", got)
	}
}

func TestCaptureRejectedDuringPreview(t *testing.T) {
	rules := instantRules(2, 2, 2)
	rules.PreviewEnabled = true
	rules.PreviewTicks = 120
	s := newTestSession(t, rules, 1)

	if s.Phase() != SessionPreviewing {
		t.Fatalf("phase = %v, want previewing", s.Phase())
	}
	if _, err := s.Capture(); !errors.Is(err, ErrPreviewCapture) {
		t.Fatalf("Capture() during preview = %v, want %v", err, ErrPreviewCapture)
	}
}

// The shuffled identities the generator produced during the rebuild must be
// fully overwritten; the snapshot's layout wins at every position.
func TestRestoreOverwritesGeneratedLayout(t *testing.T) {
	snap := savefile.Snapshot{
		Version:   savefile.Version,
		Rows:      2,
		Cols:      2,
		GroupSize: 2,
		Cards: []savefile.CardRecord{
			{GroupID: 1}, {GroupID: 0}, {GroupID: 1}, {GroupID: 0},
		},
	}

	for seed := int64(0); seed < 10; seed++ {
		s := newTestSession(t, instantRules(2, 2, 2), seed)
		if err := s.Restore(snap); err != nil {
			t.Fatalf("seed %d: Restore: %v", seed, err)
		}
		want := []int{1, 0, 1, 0}
		for i, w := range want {
			if id, _ := s.Card(i); id != w {
				t.Fatalf("seed %d: cell %d group id = %d, want %d", seed, i, id, w)
			}
		}
	}
}

func TestRestoreMatchedCardsNeverHidden(t *testing.T) {
	snap := savefile.Snapshot{
		Version:   savefile.Version,
		Rows:      2,
		Cols:      2,
		GroupSize: 2,
		Score:     100,
		Combo:     1,
		Cards: []savefile.CardRecord{
			{GroupID: 0, Matched: true, Revealed: true},
			{GroupID: 0, Matched: true, Revealed: true},
			{GroupID: 1},
			{GroupID: 1, Revealed: true},
		},
	}

	s := newTestSession(t, instantRules(2, 2, 2), 1)
	if err := s.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	wantPhases := []CardPhase{CardMatched, CardMatched, CardHidden, CardRevealed}
	for i, want := range wantPhases {
		if _, phase := s.Card(i); phase != want {
			t.Fatalf("cell %d phase = %v, want %v", i, phase, want)
		}
	}

	// Matched cards are terminal after restore too.
	if s.Flip(0) {
		t.Error("restored matched card accepted a flip")
	}
	if !s.Flip(2) {
		t.Error("restored hidden card rejected a flip")
	}
}

func TestRestoreFullyMatchedSnapshotEndsSession(t *testing.T) {
	snap := savefile.Snapshot{
		Version:   savefile.Version,
		Rows:      2,
		Cols:      2,
		GroupSize: 2,
		Score:     300,
		Cards: []savefile.CardRecord{
			{GroupID: 0, Matched: true, Revealed: true},
			{GroupID: 1, Matched: true, Revealed: true},
			{GroupID: 0, Matched: true, Revealed: true},
			{GroupID: 1, Matched: true, Revealed: true},
		},
	}

	s := newTestSession(t, instantRules(2, 2, 2), 1)
	if err := s.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s.Phase() != SessionEnded {
		t.Fatalf("phase = %v for a fully matched snapshot, want ended", s.Phase())
	}
}

func TestRestoreFailureLeavesSessionUntouched(t *testing.T) {
	s := newTestSession(t, instantRules(4, 4, 2), 1)
	flipGroup(t, s, 0)
	score, combo := s.Score(), s.Combo()
	before := make([]CardPhase, s.CardCount())
	for i := range before {
		_, before[i] = s.Card(i)
	}

	bad := savefile.Snapshot{
		Version:   savefile.Version,
		Rows:      4,
		Cols:      4,
		GroupSize: 2,
		// Card list does not cover the declared board.
		Cards: []savefile.CardRecord{{GroupID: 0}, {GroupID: 0}},
	}
	if err := s.Restore(bad); err == nil {
		t.Fatal("Restore accepted a snapshot with a short card list")
	}

	if s.Score() != score || s.Combo() != combo {
		t.Error("failed restore changed score/combo")
	}
	if s.Phase() != SessionActive {
		t.Errorf("failed restore changed phase to %v", s.Phase())
	}
	for i := range before {
		if _, phase := s.Card(i); phase != before[i] {
			t.Fatalf("failed restore changed cell %d phase", i)
		}
	}
	if !s.Flip(indicesOf(s, 1)[0]) {
		t.Error("session unplayable after failed restore")
	}
}

func TestRestoreRejectsInvalidBoardShape(t *testing.T) {
	bad := savefile.Snapshot{
		Version:   savefile.Version,
		Rows:      1,
		Cols:      2,
		GroupSize: 2,
		Cards:     []savefile.CardRecord{{GroupID: 0}, {GroupID: 0}},
	}

	s := newTestSession(t, instantRules(4, 4, 2), 1)
	if err := s.Restore(bad); err == nil {
		t.Fatal("Restore accepted a single-group board")
	}
	if s.Rows() != 4 || s.Cols() != 4 {
		t.Error("failed restore changed the board shape")
	}
}

func TestEncodeDecodeCapture(t *testing.T) {
	src := newTestSession(t, instantRules(4, 4, 2), 3)
	flipGroup(t, src, 5)

	snap, err := src.Capture()
	if err != nil {
		t.Fatal(err)
	}
	data, err := savefile.Encode(snap)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := savefile.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	dst := newTestSession(t, instantRules(4, 4, 2), 77)
	if err := dst.Restore(got); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if dst.Score() != src.Score() {
		t.Fatalf("score = %d after encode/decode/restore, want %d", dst.Score(), src.Score())
	}
	if dst.MatchedGroups() != 1 {
		t.Fatalf("MatchedGroups() = %d, want 1", dst.MatchedGroups())
	}
}
