package domain

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Member is one person on a group's roster together with the years they
// participate in. Names are not unique within a group; two members sharing a
// name appear as separate selectable people (and, because the ledger is keyed
// by name, share one reading history — see DESIGN.md).
type Member struct {
	Name        string `json:"name"`
	JoinedYears []int  `json:"joined_years"`
}

// Joined reports whether the member participates in the given year.
func (m Member) Joined(year int) bool {
	for _, y := range m.JoinedYears {
		if y == year {
			return true
		}
	}
	return false
}

// Group is a named circle of members with its own partition of the reading
// ledger. The ID is assigned at creation and immutable. Group values are
// copy-on-write: mutating operations return a new Group sharing unchanged
// substructure with the receiver.
type Group struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Members  []Member          `json:"members"`
	Readings map[int]*YearBook `json:"readings"`
}

// NewGroup creates an empty group with a fresh id.
// Returns ErrEmptyName when the name is blank after trimming.
func NewGroup(name string) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Group{
		ID:       uuid.New(),
		Name:     name,
		Members:  []Member{},
		Readings: map[int]*YearBook{},
	}, nil
}

// AddMember appends a member with a single joined year to the roster.
// Returns ErrEmptyName when the name is blank after trimming. No uniqueness
// check is performed on the name.
func (g *Group) AddMember(name string, startYear int) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	next := g.clone()
	next.Members = append(next.Members, Member{
		Name:        name,
		JoinedYears: []int{startYear},
	})
	return next, nil
}

// JoinYear adds a participation year to the member at the given roster
// position. Members are addressed by position because names may repeat.
// Adding a year the member already has is a no-op.
func (g *Group) JoinYear(memberIndex, year int) (*Group, error) {
	if memberIndex < 0 || memberIndex >= len(g.Members) {
		return nil, ErrMemberNotFound
	}
	if g.Members[memberIndex].Joined(year) {
		return g, nil
	}
	next := g.clone()
	m := next.Members[memberIndex]
	years := make([]int, len(m.JoinedYears), len(m.JoinedYears)+1)
	copy(years, m.JoinedYears)
	years = append(years, year)
	sort.Ints(years)
	next.Members[memberIndex].JoinedYears = years
	return next, nil
}

// MembersForYear returns the roster positions of members participating in
// the given year, in roster order.
func (g *Group) MembersForYear(year int) []int {
	var indices []int
	for i, m := range g.Members {
		if m.Joined(year) {
			indices = append(indices, i)
		}
	}
	return indices
}

// clone copies the group with a fresh roster slice and readings map. The
// nested year books are shared; callers mutating a year book must replace it.
func (g *Group) clone() *Group {
	members := make([]Member, len(g.Members))
	copy(members, g.Members)
	readings := make(map[int]*YearBook, len(g.Readings))
	for year, book := range g.Readings {
		readings[year] = book
	}
	return &Group{
		ID:       g.ID,
		Name:     g.Name,
		Members:  members,
		Readings: readings,
	}
}
