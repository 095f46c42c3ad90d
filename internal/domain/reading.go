package domain

import (
	"time"
)

// MonthsPerYear is the number of reading slots in a person's year.
const MonthsPerYear = 12

// CardsPerReading is the number of cards in one committed month reading.
// A slot is either filled with exactly this many cards or entirely absent.
const CardsPerReading = 4

// MonthReading is one committed drawing: four cards assigned to a person for
// one month of a year.
type MonthReading struct {
	MonthIndex int    `json:"month_index"`
	Cards      []Card `json:"cards"`
}

// PersonYearReading is the full drawing history of one person for one year
// within a group. Months holds up to twelve slots indexed 0-11; a nil slot
// has not been committed. CompletedAt is set exactly once, the first time
// the twelfth slot fills, and never cleared.
type PersonYearReading struct {
	PersonName  string                       `json:"person_name"`
	Year        int                          `json:"year"`
	Months      [MonthsPerYear]*MonthReading `json:"months"`
	CompletedAt *time.Time                   `json:"completed_at,omitempty"`
}

// FilledMonths returns the number of committed slots.
func (r *PersonYearReading) FilledMonths() int {
	n := 0
	for _, m := range r.Months {
		if m != nil {
			n++
		}
	}
	return n
}

// Completed reports whether all twelve slots have been committed at least
// once.
func (r *PersonYearReading) Completed() bool {
	return r.CompletedAt != nil
}

// UsedCardIDs returns the set of card ids appearing in any slot with index
// strictly less than beforeMonth. A card drawn in a later month does not
// block an earlier overwrite; cards repeat freely across years and people.
func (r *PersonYearReading) UsedCardIDs(beforeMonth int) map[string]struct{} {
	used := make(map[string]struct{})
	if r == nil {
		return used
	}
	for i := 0; i < beforeMonth && i < MonthsPerYear; i++ {
		m := r.Months[i]
		if m == nil {
			continue
		}
		for _, card := range m.Cards {
			used[card.ID] = struct{}{}
		}
	}
	return used
}

// YearBook holds every person's readings for one year of a group, preserving
// the order people first committed a reading. That order is what breaks ties
// in frequency rankings, so it is part of the persisted shape.
type YearBook struct {
	Year   int                  `json:"year"`
	People []*PersonYearReading `json:"people"`
}

// Person returns the reading history for the named person, or nil when the
// person has no committed readings this year.
func (b *YearBook) Person(name string) *PersonYearReading {
	if b == nil {
		return nil
	}
	for _, r := range b.People {
		if r.PersonName == name {
			return r
		}
	}
	return nil
}

// UsedCardIDs is the ledger's core reuse query: the set of card ids the named
// person has drawn in months strictly before beforeMonth of the given year.
func (g *Group) UsedCardIDs(person string, year, beforeMonth int) map[string]struct{} {
	return g.Readings[year].Person(person).UsedCardIDs(beforeMonth)
}

// Reading returns the person's history for a year, or nil when absent.
func (g *Group) Reading(person string, year int) *PersonYearReading {
	return g.Readings[year].Person(person)
}

// CommitMonth writes a four-card reading into the person's slot for
// monthIndex, creating the person's year history on first commit. Validation
// happens strictly before any mutation:
//
//   - ErrInvalidMonth when monthIndex is outside 0-11.
//   - ErrWrongCardCount unless cards has exactly four entries.
//   - ErrDuplicateCardReuse when any card id already appears in a month
//     strictly before monthIndex. Re-committing an already filled month is
//     legal and replaces its contents; the reuse check deliberately inspects
//     only earlier months (see DESIGN.md).
//
// On success the returned group is a copy-on-write update of the receiver
// and the returned reading is the person's updated history. CompletedAt is
// set to now (UTC) the first time the twelfth slot fills.
func (g *Group) CommitMonth(
	person string,
	year, monthIndex int,
	cards []Card,
	now time.Time,
) (*Group, *PersonYearReading, error) {
	if monthIndex < 0 || monthIndex >= MonthsPerYear {
		return nil, nil, ErrInvalidMonth
	}
	if len(cards) != CardsPerReading {
		return nil, nil, ErrWrongCardCount
	}

	prev := g.Reading(person, year)
	used := prev.UsedCardIDs(monthIndex)
	for _, card := range cards {
		if _, reused := used[card.ID]; reused {
			return nil, nil, ErrDuplicateCardReuse
		}
	}

	// Validation passed; build the new reading without touching the old one.
	next := &PersonYearReading{PersonName: person, Year: year}
	if prev != nil {
		next.Months = prev.Months
		next.CompletedAt = prev.CompletedAt
	}
	committed := make([]Card, CardsPerReading)
	copy(committed, cards)
	next.Months[monthIndex] = &MonthReading{MonthIndex: monthIndex, Cards: committed}

	if next.CompletedAt == nil && next.FilledMonths() == MonthsPerYear {
		completedAt := now.UTC()
		next.CompletedAt = &completedAt
	}

	updated := g.clone()
	updated.Readings[year] = g.Readings[year].withPerson(year, next)
	return updated, next, nil
}

// withPerson returns a year book with the person's history replaced, or
// appended on first commit. The receiver may be nil.
func (b *YearBook) withPerson(year int, reading *PersonYearReading) *YearBook {
	if b == nil {
		return &YearBook{Year: year, People: []*PersonYearReading{reading}}
	}
	people := make([]*PersonYearReading, len(b.People))
	copy(people, b.People)
	for i, r := range people {
		if r.PersonName == reading.PersonName {
			people[i] = reading
			return &YearBook{Year: b.Year, People: people}
		}
	}
	people = append(people, reading)
	return &YearBook{Year: b.Year, People: people}
}
