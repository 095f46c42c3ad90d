package domain

import (
	"sort"

	"github.com/google/uuid"
)

// MaxRankEntries caps the number of entries a ranking returns.
const MaxRankEntries = 20

// Filter selects the slice of the ledger a ranking aggregates over. It is a
// closed sum type: exactly the five variants below implement it.
type Filter interface {
	isFilter()
}

// FilterAll aggregates over every committed reading.
type FilterAll struct{}

// FilterYear restricts the aggregation to one year across all groups.
type FilterYear struct {
	Year int
}

// FilterMonth restricts the aggregation to one month index (0-11) across all
// groups and years.
type FilterMonth struct {
	MonthIndex int
}

// FilterPerson restricts the aggregation to people with the given name
// across all groups and years.
type FilterPerson struct {
	Name string
}

// FilterGroup restricts the aggregation to one group.
type FilterGroup struct {
	ID uuid.UUID
}

func (FilterAll) isFilter()    {}
func (FilterYear) isFilter()   {}
func (FilterMonth) isFilter()  {}
func (FilterPerson) isFilter() {}
func (FilterGroup) isFilter()  {}

// RankEntry is one row of a frequency ranking: a card and the number of
// matching month readings containing it.
type RankEntry struct {
	Card  Card `json:"card"`
	Count int  `json:"count"`
}

// Rank traverses every committed reading matching the filter and counts card
// occurrences by id, recording the Card value on first sight. The result is
// sorted by count descending; ties keep first-encountered order (groups in
// registry order, years ascending, people in year-book insertion order,
// months 0-11, cards in stored order). The result is truncated to
// MaxRankEntries; an empty match yields an empty result.
func Rank(groups []*Group, filter Filter) []RankEntry {
	counts := make(map[string]int)
	var order []RankEntry // first-encountered order, Count updated via index
	index := make(map[string]int)

	for _, g := range groups {
		if f, ok := filter.(FilterGroup); ok && f.ID != g.ID {
			continue
		}
		for _, year := range sortedYears(g.Readings) {
			if f, ok := filter.(FilterYear); ok && f.Year != year {
				continue
			}
			for _, reading := range g.Readings[year].People {
				if f, ok := filter.(FilterPerson); ok && f.Name != reading.PersonName {
					continue
				}
				for monthIndex, month := range reading.Months {
					if month == nil {
						continue
					}
					if f, ok := filter.(FilterMonth); ok && f.MonthIndex != monthIndex {
						continue
					}
					for _, card := range month.Cards {
						counts[card.ID]++
						if _, seen := index[card.ID]; !seen {
							index[card.ID] = len(order)
							order = append(order, RankEntry{Card: card})
						}
					}
				}
			}
		}
	}

	for i := range order {
		order[i].Count = counts[order[i].Card.ID]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Count > order[j].Count
	})
	if len(order) > MaxRankEntries {
		order = order[:MaxRankEntries]
	}
	return order
}

func sortedYears(readings map[int]*YearBook) []int {
	years := make([]int, 0, len(readings))
	for y := range readings {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
