package domain

import (
	"testing"
	"time"
)

// rankFixture commits a small ledger across two groups and two years:
//
//	Coven / 2024 / Ann month 0: Fool Magician Priestess Empress
//	Coven / 2025 / Ann month 0: Fool Tower Star Moon
//	Coven / 2025 / Bob month 1: Fool Magician Sun Judgement
//	Circle / 2025 / Cara month 0: Tower Sun World Hermit
func rankFixture(t *testing.T) []*Group {
	t.Helper()
	now := time.Now()

	cards := func(ids ...string) []Card {
		out := make([]Card, len(ids))
		for i, id := range ids {
			out[i] = Card{ID: id, Name: id}
		}
		return out
	}

	coven := mustGroup(t, "Coven")
	var err error
	coven, _, err = coven.CommitMonth("Ann", 2024, 0, cards("Fool", "Magician", "Priestess", "Empress"), now)
	if err != nil {
		t.Fatalf("Fixture: %v", err)
	}
	coven, _, err = coven.CommitMonth("Ann", 2025, 0, cards("Fool", "Tower", "Star", "Moon"), now)
	if err != nil {
		t.Fatalf("Fixture: %v", err)
	}
	coven, _, err = coven.CommitMonth("Bob", 2025, 1, cards("Fool", "Magician", "Sun", "Judgement"), now)
	if err != nil {
		t.Fatalf("Fixture: %v", err)
	}

	circle := mustGroup(t, "Circle")
	circle, _, err = circle.CommitMonth("Cara", 2025, 0, cards("Tower", "Sun", "World", "Hermit"), now)
	if err != nil {
		t.Fatalf("Fixture: %v", err)
	}

	return []*Group{coven, circle}
}

func countOf(entries []RankEntry, id string) int {
	for _, e := range entries {
		if e.Card.ID == id {
			return e.Count
		}
	}
	return 0
}

func TestRankAll(t *testing.T) {
	t.Parallel()
	groups := rankFixture(t)

	entries := Rank(groups, FilterAll{})

	// A card's count equals the number of month slots containing it.
	if got := countOf(entries, "Fool"); got != 3 {
		t.Errorf("Expected Fool count 3, got %d", got)
	}
	if got := countOf(entries, "Tower"); got != 2 {
		t.Errorf("Expected Tower count 2, got %d", got)
	}
	if got := countOf(entries, "Hermit"); got != 1 {
		t.Errorf("Expected Hermit count 1, got %d", got)
	}

	// Fool leads, and ties keep first-encountered traversal order:
	// Magician (2) before Tower and Sun (2 each), Tower before Sun.
	if entries[0].Card.ID != "Fool" {
		t.Errorf("Expected Fool first, got %s", entries[0].Card.ID)
	}
	if entries[1].Card.ID != "Magician" || entries[2].Card.ID != "Tower" ||
		entries[3].Card.ID != "Sun" {
		t.Errorf("Unexpected tie order: %s %s %s",
			entries[1].Card.ID, entries[2].Card.ID, entries[3].Card.ID)
	}
}

func TestRankByYear(t *testing.T) {
	t.Parallel()
	groups := rankFixture(t)

	entries := Rank(groups, FilterYear{Year: 2024})
	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries for 2024, got %d", len(entries))
	}
	if got := countOf(entries, "Fool"); got != 1 {
		t.Errorf("Expected Fool count 1 in 2024, got %d", got)
	}
	if got := countOf(entries, "Tower"); got != 0 {
		t.Errorf("Expected no Tower in 2024, got %d", got)
	}
}

func TestRankByMonth(t *testing.T) {
	t.Parallel()
	groups := rankFixture(t)

	// Only Bob's reading sits in month index 1.
	entries := Rank(groups, FilterMonth{MonthIndex: 1})
	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries for February, got %d", len(entries))
	}
	if got := countOf(entries, "Judgement"); got != 1 {
		t.Errorf("Expected Judgement count 1, got %d", got)
	}
	if got := countOf(entries, "Tower"); got != 0 {
		t.Errorf("Expected no Tower in February, got %d", got)
	}
}

func TestRankByPerson(t *testing.T) {
	t.Parallel()
	// A card drawn by the same person in three distinct month slots ranks
	// ahead of anything drawn fewer times. The slots span three years since
	// the ledger forbids drawing the same card twice within one year.
	now := time.Now()
	g := mustGroup(t, "Coven")
	var err error
	g, _, err = g.CommitMonth("Ann", 2023, 0, []Card{{ID: "C1"}, {ID: "a"}, {ID: "b"}, {ID: "c"}}, now)
	if err != nil {
		t.Fatalf("Fixture: %v", err)
	}
	g, _, err = g.CommitMonth("Ann", 2024, 0, []Card{{ID: "C1"}, {ID: "d"}, {ID: "e"}, {ID: "f"}}, now)
	if err != nil {
		t.Fatalf("Fixture: %v", err)
	}
	g, _, err = g.CommitMonth("Ann", 2025, 5, []Card{{ID: "C1"}, {ID: "g"}, {ID: "h"}, {ID: "i"}}, now)
	if err != nil {
		t.Fatalf("Fixture: %v", err)
	}
	g, _, err = g.CommitMonth("Bob", 2025, 0, []Card{{ID: "C1"}, {ID: "j"}, {ID: "k"}, {ID: "l"}}, now)
	if err != nil {
		t.Fatalf("Fixture: %v", err)
	}

	entries := Rank([]*Group{g}, FilterPerson{Name: "Ann"})
	if entries[0].Card.ID != "C1" || entries[0].Count != 3 {
		t.Fatalf("Expected C1 with count 3 first, got %s with %d",
			entries[0].Card.ID, entries[0].Count)
	}
	for _, e := range entries[1:] {
		if e.Count >= 3 {
			t.Errorf("Expected every other card below C1, got %s with %d", e.Card.ID, e.Count)
		}
	}
}

func TestRankByGroup(t *testing.T) {
	t.Parallel()
	groups := rankFixture(t)

	entries := Rank(groups, FilterGroup{ID: groups[1].ID})
	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries for Circle, got %d", len(entries))
	}
	if got := countOf(entries, "Hermit"); got != 1 {
		t.Errorf("Expected Hermit in Circle ranking, got %d", got)
	}
	if got := countOf(entries, "Fool"); got != 0 {
		t.Errorf("Expected no Fool in Circle ranking, got %d", got)
	}
}

func TestRankEmptyMatch(t *testing.T) {
	t.Parallel()
	groups := rankFixture(t)

	if got := Rank(groups, FilterYear{Year: 1999}); len(got) != 0 {
		t.Errorf("Expected empty result, got %d entries", len(got))
	}
	if got := Rank(nil, FilterAll{}); len(got) != 0 {
		t.Errorf("Expected empty result for empty ledger, got %d entries", len(got))
	}
}

func TestRankTruncation(t *testing.T) {
	t.Parallel()
	// Two full years of distinct cards is 96 ids; the ranking keeps 20.
	now := time.Now()
	g := mustGroup(t, "Coven")
	var err error
	for month := 0; month < MonthsPerYear; month++ {
		g, _, err = g.CommitMonth("Ann", 2025, month, fourCards("a", month*CardsPerReading), now)
		if err != nil {
			t.Fatalf("Month %d: %v", month, err)
		}
		g, _, err = g.CommitMonth("Ann", 2026, month, fourCards("b", month*CardsPerReading), now)
		if err != nil {
			t.Fatalf("Month %d: %v", month, err)
		}
	}

	entries := Rank([]*Group{g}, FilterAll{})
	if len(entries) != MaxRankEntries {
		t.Errorf("Expected %d entries, got %d", MaxRankEntries, len(entries))
	}
}
