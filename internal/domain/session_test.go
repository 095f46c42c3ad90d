package domain

import (
	"testing"
	"time"
)

func sessionFixture(t *testing.T) (*Session, *Group, *Catalog) {
	t.Helper()
	g := mustGroup(t, "Coven")
	s, err := NewSession(g.ID, "Ann", 2025, 0)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	catalog := NewCatalog([]Card{
		{ID: "Fool", Name: "Fool"},
		{ID: "Magician", Name: "Magician"},
		{ID: "Priestess", Name: "Priestess"},
		{ID: "Empress", Name: "Empress"},
		{ID: "Emperor", Name: "Emperor"},
		{ID: "Hierophant", Name: "Hierophant"},
	})
	return s, g, catalog
}

func pickAll(t *testing.T, s *Session, g *Group, cards ...Card) {
	t.Helper()
	for _, c := range cards {
		if err := s.Pick(g, c); err != nil {
			t.Fatalf("Pick(%s): %v", c.ID, err)
		}
	}
}

func TestSessionInvalidMonth(t *testing.T) {
	t.Parallel()
	g := mustGroup(t, "Coven")
	if _, err := NewSession(g.ID, "Ann", 2025, 12); err != ErrInvalidMonth {
		t.Errorf("Expected ErrInvalidMonth, got %v", err)
	}
}

func TestSessionStateTransitions(t *testing.T) {
	t.Parallel()
	s, g, catalog := sessionFixture(t)
	cards := catalog.Cards()

	if s.State() != SessionAwaitingSelection {
		t.Fatalf("Expected awaiting_selection, got %s", s.State())
	}

	pickAll(t, s, g, cards[0], cards[1], cards[2])
	if s.State() != SessionAwaitingSelection {
		t.Errorf("Expected awaiting_selection with 3 picks, got %s", s.State())
	}

	pickAll(t, s, g, cards[3])
	if s.State() != SessionReadyToCommit {
		t.Errorf("Expected ready_to_commit with 4 picks, got %s", s.State())
	}

	// Removing the fourth pick returns to awaiting.
	if err := s.Remove(cards[3].ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s.State() != SessionAwaitingSelection {
		t.Errorf("Expected awaiting_selection after remove, got %s", s.State())
	}
}

func TestSessionPickGuards(t *testing.T) {
	t.Parallel()
	s, g, catalog := sessionFixture(t)
	cards := catalog.Cards()

	pickAll(t, s, g, cards[0])

	// Double pick of the same card is refused.
	if err := s.Pick(g, cards[0]); err != ErrCardUnavailable {
		t.Errorf("Expected ErrCardUnavailable on double pick, got %v", err)
	}

	pickAll(t, s, g, cards[1], cards[2], cards[3])

	// A fifth pick is refused.
	if err := s.Pick(g, cards[4]); err != ErrPickLimit {
		t.Errorf("Expected ErrPickLimit, got %v", err)
	}
}

func TestSessionPickRefusesUsedCard(t *testing.T) {
	t.Parallel()
	s, g, catalog := sessionFixture(t)
	cards := catalog.Cards()

	// Ann drew the Fool in month 0; a session for month 1 cannot pick it.
	g2, _, err := g.CommitMonth("Ann", 2025, 0, cards[:4], time.Now())
	if err != nil {
		t.Fatalf("CommitMonth: %v", err)
	}
	s, err = NewSession(g2.ID, "Ann", 2025, 1)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if err := s.Pick(g2, cards[0]); err != ErrCardUnavailable {
		t.Errorf("Expected ErrCardUnavailable for used card, got %v", err)
	}
	if err := s.Pick(g2, cards[4]); err != nil {
		t.Errorf("Expected unused card to be pickable, got %v", err)
	}
}

func TestSessionCandidates(t *testing.T) {
	t.Parallel()
	s, g, catalog := sessionFixture(t)
	cards := catalog.Cards()

	g2, _, err := g.CommitMonth("Ann", 2025, 0, cards[:4], time.Now())
	if err != nil {
		t.Fatalf("CommitMonth: %v", err)
	}
	s, err = NewSession(g2.ID, "Ann", 2025, 1)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	pickAll(t, s, g2, cards[4])

	// Used in month 0: cards 0-3. Picked: card 4. Only card 5 remains.
	candidates := s.Candidates(catalog, g2)
	if len(candidates) != 1 || candidates[0].ID != cards[5].ID {
		t.Errorf("Expected only %s as candidate, got %+v", cards[5].ID, candidates)
	}
}

func TestSessionCommitNotReady(t *testing.T) {
	t.Parallel()
	s, g, catalog := sessionFixture(t)
	pickAll(t, s, g, catalog.Cards()[0])

	if _, _, err := s.Commit(g, time.Now()); err != ErrSessionNotReady {
		t.Errorf("Expected ErrSessionNotReady, got %v", err)
	}
}

func TestSessionCommitAdvances(t *testing.T) {
	t.Parallel()
	s, g, catalog := sessionFixture(t)
	cards := catalog.Cards()

	pickAll(t, s, g, cards[0], cards[1], cards[2], cards[3])
	g2, reading, err := s.Commit(g, time.Now())
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if reading.FilledMonths() != 1 {
		t.Errorf("Expected 1 filled month, got %d", reading.FilledMonths())
	}
	if s.MonthIndex != 1 {
		t.Errorf("Expected session to advance to month 1, got %d", s.MonthIndex)
	}
	if len(s.Picks) != 0 {
		t.Errorf("Expected picks cleared after commit, got %d", len(s.Picks))
	}
	if s.State() != SessionAwaitingSelection {
		t.Errorf("Expected awaiting_selection, got %s", s.State())
	}
	_ = g2
}

func TestSessionYearComplete(t *testing.T) {
	t.Parallel()
	g := mustGroup(t, "Coven")

	// Fill months 0-10 directly, then commit month 11 through a session.
	now := time.Now()
	var err error
	for month := 0; month <= 10; month++ {
		g, _, err = g.CommitMonth("Ann", 2025, month, fourCards("c", month*CardsPerReading), now)
		if err != nil {
			t.Fatalf("Month %d: %v", month, err)
		}
	}

	s, err := NewSession(g.ID, "Ann", 2025, 11)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	pickAll(t, s, g, fourCards("c", 11*CardsPerReading)...)

	g, reading, err := s.Commit(g, now)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !reading.Completed() {
		t.Error("Expected year completion after month 11")
	}
	if s.State() != SessionYearComplete {
		t.Errorf("Expected year_complete, got %s", s.State())
	}

	// The terminal session refuses further work.
	if err := s.Pick(g, Card{ID: "late"}); err != ErrSessionComplete {
		t.Errorf("Expected ErrSessionComplete on pick, got %v", err)
	}
	if _, _, err := s.Commit(g, now); err != ErrSessionComplete {
		t.Errorf("Expected ErrSessionComplete on commit, got %v", err)
	}
}

func TestSessionCancel(t *testing.T) {
	t.Parallel()
	s, g, catalog := sessionFixture(t)
	cards := catalog.Cards()

	pickAll(t, s, g, cards[0], cards[1])
	s.Cancel()

	if len(s.Picks) != 0 {
		t.Errorf("Expected picks discarded, got %d", len(s.Picks))
	}
	if s.State() != SessionAwaitingSelection {
		t.Errorf("Expected awaiting_selection after cancel, got %s", s.State())
	}
	if s.MonthIndex != 0 {
		t.Errorf("Expected month unchanged after cancel, got %d", s.MonthIndex)
	}
}

func TestSessionRemoveUnpicked(t *testing.T) {
	t.Parallel()
	s, _, _ := sessionFixture(t)
	if err := s.Remove("Fool"); err != ErrCardNotPicked {
		t.Errorf("Expected ErrCardNotPicked, got %v", err)
	}
}
