package domain

import (
	"fmt"
	"testing"
	"time"
)

// fourCards builds four distinct cards with ids derived from the base and
// offset, so successive calls never collide.
func fourCards(base string, offset int) []Card {
	cards := make([]Card, CardsPerReading)
	for i := range cards {
		id := fmt.Sprintf("%s-%d", base, offset+i)
		cards[i] = Card{ID: id, Name: id}
	}
	return cards
}

func mustGroup(t *testing.T, name string) *Group {
	t.Helper()
	g, err := NewGroup(name)
	if err != nil {
		t.Fatalf("NewGroup(%q): %v", name, err)
	}
	return g
}

func TestCommitMonthWrongCardCount(t *testing.T) {
	t.Parallel()
	g := mustGroup(t, "Coven")
	now := time.Now()

	for _, n := range []int{0, 3, 5} {
		cards := make([]Card, n)
		for i := range cards {
			cards[i] = Card{ID: fmt.Sprintf("c-%d", i)}
		}
		_, _, err := g.CommitMonth("Ann", 2025, 0, cards, now)
		if err != ErrWrongCardCount {
			t.Errorf("%d cards: expected ErrWrongCardCount, got %v", n, err)
		}
	}

	// The failed commits left the ledger untouched.
	if g.Reading("Ann", 2025) != nil {
		t.Error("Expected no reading after rejected commits")
	}
}

func TestCommitMonthInvalidMonth(t *testing.T) {
	t.Parallel()
	g := mustGroup(t, "Coven")
	for _, m := range []int{-1, 12, 40} {
		_, _, err := g.CommitMonth("Ann", 2025, m, fourCards("c", 0), time.Now())
		if err != ErrInvalidMonth {
			t.Errorf("Month %d: expected ErrInvalidMonth, got %v", m, err)
		}
	}
}

func TestCommitMonthDuplicateReuse(t *testing.T) {
	t.Parallel()
	// Scenario B: month 0 holds C1-C4; a month 1 commit including C2 fails
	// and the ledger still shows only month 0 filled.
	g := mustGroup(t, "Coven")
	now := time.Now()

	g2, _, err := g.CommitMonth("Ann", 2025, 0, fourCards("C", 1), now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	retry := []Card{{ID: "C-2"}, {ID: "C-9"}, {ID: "C-10"}, {ID: "C-11"}}
	_, _, err = g2.CommitMonth("Ann", 2025, 1, retry, now)
	if err != ErrDuplicateCardReuse {
		t.Fatalf("Expected ErrDuplicateCardReuse, got %v", err)
	}

	reading := g2.Reading("Ann", 2025)
	if reading.FilledMonths() != 1 {
		t.Errorf("Expected only month 0 filled, got %d filled", reading.FilledMonths())
	}
	if reading.Months[1] != nil {
		t.Error("Expected month 1 empty after rejected commit")
	}
}

func TestCommitMonthNoDuplicateAcrossFilledYear(t *testing.T) {
	t.Parallel()
	// Invariant 1: the union of card ids across filled slots has no
	// duplicates when commits happen in forward order.
	g := mustGroup(t, "Coven")
	now := time.Now()

	var err error
	for month := 0; month < MonthsPerYear; month++ {
		g, _, err = g.CommitMonth("Ann", 2025, month, fourCards("c", month*CardsPerReading), now)
		if err != nil {
			t.Fatalf("Month %d: %v", month, err)
		}
	}

	reading := g.Reading("Ann", 2025)
	seen := map[string]bool{}
	for _, m := range reading.Months {
		for _, card := range m.Cards {
			if seen[card.ID] {
				t.Fatalf("Duplicate card id %q across filled slots", card.ID)
			}
			seen[card.ID] = true
		}
	}
	if len(seen) != MonthsPerYear*CardsPerReading {
		t.Errorf("Expected %d distinct ids, got %d", MonthsPerYear*CardsPerReading, len(seen))
	}
}

func TestCompletionDetection(t *testing.T) {
	t.Parallel()
	// Scenario A: completedAt stays unset through month 10 and is set by
	// the month 11 commit.
	g := mustGroup(t, "Coven")
	now := time.Now()

	var err error
	for month := 0; month <= 10; month++ {
		g, _, err = g.CommitMonth("Ann", 2025, month, fourCards("c", month*CardsPerReading), now)
		if err != nil {
			t.Fatalf("Month %d: %v", month, err)
		}
	}

	if g.Reading("Ann", 2025).Completed() {
		t.Fatal("Expected completedAt unset after 11 filled months")
	}

	g, reading, err := g.CommitMonth("Ann", 2025, 11, fourCards("c", 11*CardsPerReading), now)
	if err != nil {
		t.Fatalf("Month 11: %v", err)
	}
	if !reading.Completed() {
		t.Fatal("Expected completedAt set after the 12th month")
	}
	if !reading.CompletedAt.Equal(now.UTC()) {
		t.Errorf("Expected completedAt %v, got %v", now.UTC(), reading.CompletedAt)
	}

	// Overwriting a month afterwards never clears completion, and keeps
	// the original timestamp.
	later := now.Add(48 * time.Hour)
	_, overwritten, err := g.CommitMonth("Ann", 2025, 0, fourCards("fresh", 0), later)
	if err != nil {
		t.Fatalf("Overwrite: %v", err)
	}
	if !overwritten.Completed() {
		t.Fatal("Expected completedAt to survive an overwrite")
	}
	if !overwritten.CompletedAt.Equal(now.UTC()) {
		t.Errorf("Expected completedAt unchanged, got %v", overwritten.CompletedAt)
	}
}

func TestCommitMonthOverwrite(t *testing.T) {
	t.Parallel()
	g := mustGroup(t, "Coven")
	now := time.Now()

	g, _, err := g.CommitMonth("Ann", 2025, 0, fourCards("a", 0), now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Re-committing the same month replaces its contents; the reuse check
	// only looks at months before index 0, so even the same cards pass.
	g, reading, err := g.CommitMonth("Ann", 2025, 0, fourCards("b", 0), now)
	if err != nil {
		t.Fatalf("Expected overwrite to succeed, got %v", err)
	}
	if reading.Months[0].Cards[0].ID != "b-0" {
		t.Errorf("Expected replaced contents, got %+v", reading.Months[0].Cards)
	}
	if reading.FilledMonths() != 1 {
		t.Errorf("Expected 1 filled month, got %d", reading.FilledMonths())
	}
	_ = g
}

func TestCommitMonthCopyOnWrite(t *testing.T) {
	t.Parallel()
	g := mustGroup(t, "Coven")
	now := time.Now()

	g2, _, err := g.CommitMonth("Ann", 2025, 0, fourCards("a", 0), now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	g3, _, err := g2.CommitMonth("Ann", 2025, 1, fourCards("a", 4), now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Each commit produced a new structure; the prior values still show
	// their complete, never-partial state.
	if g.Reading("Ann", 2025) != nil {
		t.Error("Expected the original group to have no readings")
	}
	if got := g2.Reading("Ann", 2025).FilledMonths(); got != 1 {
		t.Errorf("Expected the first snapshot to keep 1 filled month, got %d", got)
	}
	if got := g3.Reading("Ann", 2025).FilledMonths(); got != 2 {
		t.Errorf("Expected the second snapshot to hold 2 filled months, got %d", got)
	}
}

func TestUsedCardIDs(t *testing.T) {
	t.Parallel()
	g := mustGroup(t, "Coven")
	now := time.Now()

	g, _, err := g.CommitMonth("Ann", 2025, 0, fourCards("a", 0), now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	g, _, err = g.CommitMonth("Ann", 2025, 2, fourCards("b", 0), now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Only months strictly before the cutoff count.
	used := g.UsedCardIDs("Ann", 2025, 2)
	if len(used) != CardsPerReading {
		t.Errorf("Expected 4 used ids before month 2, got %d", len(used))
	}
	if _, ok := used["a-0"]; !ok {
		t.Error("Expected a-0 in used set")
	}
	if _, ok := used["b-0"]; ok {
		t.Error("Did not expect month 2 cards before cutoff 2")
	}

	used = g.UsedCardIDs("Ann", 2025, 12)
	if len(used) != 2*CardsPerReading {
		t.Errorf("Expected 8 used ids before month 12, got %d", len(used))
	}

	// Unknown person and year yield empty sets, not errors.
	if len(g.UsedCardIDs("Bob", 2025, 12)) != 0 {
		t.Error("Expected empty set for unknown person")
	}
	if len(g.UsedCardIDs("Ann", 2031, 12)) != 0 {
		t.Error("Expected empty set for unknown year")
	}
}
