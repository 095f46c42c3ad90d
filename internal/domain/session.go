package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session errors.
var (
	// ErrSessionComplete is returned when an operation is attempted on a
	// session that already finished month index 11.
	ErrSessionComplete = errors.New("selection session finished for the year")

	// ErrSessionNotReady is returned when Commit is called with fewer than
	// four cards picked.
	ErrSessionNotReady = errors.New("four cards must be picked before committing")

	// ErrPickLimit is returned when a fifth card is picked.
	ErrPickLimit = errors.New("four cards already picked")

	// ErrCardUnavailable is returned when a picked card is already in the
	// session or was drawn earlier in the same year.
	ErrCardUnavailable = errors.New("card not available for this month")

	// ErrCardNotPicked is returned when removing a card that is not in the
	// session's pick set.
	ErrCardNotPicked = errors.New("card is not picked in this session")
)

// SessionState describes where a selection session is in its workflow.
type SessionState string

// Possible session states.
const (
	// SessionAwaitingSelection means fewer than four cards are picked.
	SessionAwaitingSelection SessionState = "awaiting_selection"
	// SessionReadyToCommit means exactly four cards are picked.
	SessionReadyToCommit SessionState = "ready_to_commit"
	// SessionYearComplete means month index 11 was committed; the session
	// is terminal.
	SessionYearComplete SessionState = "year_complete"
)

// Session is the transient workflow that assembles one person's reading for
// one month. It accumulates up to four candidate cards, validates them
// against the person's year history, and commits them to the ledger. A
// session is short-lived, never persisted, and after a successful commit
// advances to the next month of the same person and year (or terminates
// after month index 11).
//
// The candidate filtering in Candidates, not the commit-time check, is what
// prevents most invalid commits from ever reaching the ledger.
type Session struct {
	ID         uuid.UUID `json:"id"`
	GroupID    uuid.UUID `json:"group_id"`
	Person     string    `json:"person"`
	Year       int       `json:"year"`
	MonthIndex int       `json:"month_index"`
	Picks      []Card    `json:"picks"`

	done bool
}

// NewSession starts a selection session for one (group, year, person, month)
// entry attempt.
func NewSession(groupID uuid.UUID, person string, year, monthIndex int) (*Session, error) {
	if monthIndex < 0 || monthIndex >= MonthsPerYear {
		return nil, ErrInvalidMonth
	}
	return &Session{
		ID:         uuid.New(),
		GroupID:    groupID,
		Person:     person,
		Year:       year,
		MonthIndex: monthIndex,
	}, nil
}

// State returns the session's current workflow state.
func (s *Session) State() SessionState {
	switch {
	case s.done:
		return SessionYearComplete
	case len(s.Picks) == CardsPerReading:
		return SessionReadyToCommit
	default:
		return SessionAwaitingSelection
	}
}

// Candidates filters the catalog down to the cards pickable right now:
// everything except ids drawn in months strictly before the current one and
// ids already picked in this session.
func (s *Session) Candidates(catalog *Catalog, group *Group) []Card {
	used := group.UsedCardIDs(s.Person, s.Year, s.MonthIndex)
	for _, p := range s.Picks {
		used[p.ID] = struct{}{}
	}
	var out []Card
	for _, card := range catalog.Cards() {
		if _, taken := used[card.ID]; taken {
			continue
		}
		out = append(out, card)
	}
	return out
}

// Pick adds a card to the session's pick set. The card must not already be
// picked nor drawn earlier in the year, and at most four cards can be held.
func (s *Session) Pick(group *Group, card Card) error {
	if s.done {
		return ErrSessionComplete
	}
	if len(s.Picks) >= CardsPerReading {
		return ErrPickLimit
	}
	for _, p := range s.Picks {
		if p.ID == card.ID {
			return ErrCardUnavailable
		}
	}
	if _, used := group.UsedCardIDs(s.Person, s.Year, s.MonthIndex)[card.ID]; used {
		return ErrCardUnavailable
	}
	s.Picks = append(s.Picks, card)
	return nil
}

// Remove drops a previously picked card, returning the session to
// AwaitingSelection when it held four.
func (s *Session) Remove(cardID string) error {
	if s.done {
		return ErrSessionComplete
	}
	for i, p := range s.Picks {
		if p.ID == cardID {
			s.Picks = append(s.Picks[:i], s.Picks[i+1:]...)
			return nil
		}
	}
	return ErrCardNotPicked
}

// Cancel discards the in-progress picks. The session stays on the same
// month in AwaitingSelection.
func (s *Session) Cancel() {
	if !s.done {
		s.Picks = nil
	}
}

// Commit writes the four picked cards to the ledger. Allowed only in
// ReadyToCommit. On success the picks are cleared and the session advances
// to the next month, or terminates in YearComplete after month index 11.
// The group returned is the copy-on-write ledger update.
func (s *Session) Commit(group *Group, now time.Time) (*Group, *PersonYearReading, error) {
	if s.done {
		return nil, nil, ErrSessionComplete
	}
	if len(s.Picks) != CardsPerReading {
		return nil, nil, ErrSessionNotReady
	}

	updated, reading, err := group.CommitMonth(s.Person, s.Year, s.MonthIndex, s.Picks, now)
	if err != nil {
		return nil, nil, err
	}

	s.Picks = nil
	if s.MonthIndex == MonthsPerYear-1 {
		s.done = true
	} else {
		s.MonthIndex++
	}
	return updated, reading, nil
}
