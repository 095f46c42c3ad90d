package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ninthhouse/arcana-api/internal/domain"
	"github.com/ninthhouse/arcana-api/internal/platform/logger"
)

// ReadingService drives the card selection workflow: it manages the
// short-lived selection sessions and commits completed picks to the ledger.
// Sessions live in memory only and are never persisted.
type ReadingService interface {
	// StartSession opens a selection session for one (group, year, person,
	// month) entry attempt.
	StartSession(ctx context.Context, groupID uuid.UUID, person string, year, monthIndex int) (*domain.Session, error)

	// GetSession retrieves an active session.
	GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error)

	// Candidates returns the cards pickable right now: the catalog minus
	// ids used earlier in the year and ids already picked.
	Candidates(ctx context.Context, id uuid.UUID) ([]domain.Card, error)

	// Pick adds the card with the given id to the session.
	Pick(ctx context.Context, id uuid.UUID, cardID string) (*domain.Session, error)

	// Unpick removes a previously picked card.
	Unpick(ctx context.Context, id uuid.UUID, cardID string) (*domain.Session, error)

	// Commit writes the four picked cards to the ledger and advances the
	// session to the next month (or terminates it after month index 11).
	Commit(ctx context.Context, id uuid.UUID) (*domain.PersonYearReading, *domain.Session, error)

	// Cancel discards the session's in-progress picks.
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Session, error)

	// End removes the session entirely.
	End(ctx context.Context, id uuid.UUID) error

	// GetReading returns a person's committed history for a year, or nil
	// when nothing has been committed yet.
	GetReading(ctx context.Context, groupID uuid.UUID, person string, year int) (*domain.PersonYearReading, error)
}

// readingServiceImpl implements the ReadingService interface.
type readingServiceImpl struct {
	state    *AppState
	logger   *slog.Logger
	timeFunc func() time.Time // Injectable for testing

	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session
}

// NewReadingService creates a new ReadingService over the given state.
func NewReadingService(state *AppState, log *slog.Logger) (ReadingService, error) {
	if state == nil {
		return nil, NewServiceError("new_reading_service", "state cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}
	return &readingServiceImpl{
		state:    state,
		logger:   log.With(slog.String("component", "reading_service")),
		timeFunc: time.Now,
		sessions: make(map[uuid.UUID]*domain.Session),
	}, nil
}

// StartSession implements ReadingService.StartSession.
func (s *readingServiceImpl) StartSession(
	ctx context.Context,
	groupID uuid.UUID,
	person string,
	year, monthIndex int,
) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	person = strings.TrimSpace(person)
	if person == "" {
		return nil, domain.ErrEmptyName
	}
	if _, err := s.state.Group(groupID); err != nil {
		return nil, err
	}

	session, err := domain.NewSession(groupID, person, year, monthIndex)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	log.Debug("selection session started",
		slog.String("session_id", session.ID.String()),
		slog.String("person", person),
		slog.Int("year", year),
		slog.Int("month", monthIndex))
	return session, nil
}

// session looks up an active session under the service lock.
func (s *readingServiceImpl) session(id uuid.UUID) (*domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// GetSession implements ReadingService.GetSession.
func (s *readingServiceImpl) GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(id)
}

// Candidates implements ReadingService.Candidates.
func (s *readingServiceImpl) Candidates(ctx context.Context, id uuid.UUID) ([]domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	group, err := s.state.Group(session.GroupID)
	if err != nil {
		return nil, err
	}
	return session.Candidates(s.state.Catalog(), group), nil
}

// Pick implements ReadingService.Pick.
func (s *readingServiceImpl) Pick(
	ctx context.Context,
	id uuid.UUID,
	cardID string,
) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	card, err := s.state.Catalog().Lookup(cardID)
	if err != nil {
		return nil, err
	}
	group, err := s.state.Group(session.GroupID)
	if err != nil {
		return nil, err
	}
	if err := session.Pick(group, card); err != nil {
		return nil, err
	}
	return session, nil
}

// Unpick implements ReadingService.Unpick.
func (s *readingServiceImpl) Unpick(
	ctx context.Context,
	id uuid.UUID,
	cardID string,
) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if err := session.Remove(cardID); err != nil {
		return nil, err
	}
	return session, nil
}

// Commit implements ReadingService.Commit.
func (s *readingServiceImpl) Commit(
	ctx context.Context,
	id uuid.UUID,
) (*domain.PersonYearReading, *domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(id)
	if err != nil {
		return nil, nil, err
	}

	var reading *domain.PersonYearReading
	_, err = s.state.UpdateGroup(session.GroupID, func(g *domain.Group) (*domain.Group, error) {
		updated, r, err := session.Commit(g, s.timeFunc())
		if err != nil {
			return nil, err
		}
		reading = r
		return updated, nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.Info("month reading committed",
		slog.String("session_id", session.ID.String()),
		slog.String("person", session.Person),
		slog.Int("year", session.Year),
		slog.Int("filled_months", reading.FilledMonths()),
		slog.Bool("year_complete", reading.Completed()))
	return reading, session, nil
}

// Cancel implements ReadingService.Cancel.
func (s *readingServiceImpl) Cancel(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	session.Cancel()
	return session, nil
}

// End implements ReadingService.End.
func (s *readingServiceImpl) End(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.session(id); err != nil {
		return err
	}
	delete(s.sessions, id)
	return nil
}

// GetReading implements ReadingService.GetReading.
func (s *readingServiceImpl) GetReading(
	ctx context.Context,
	groupID uuid.UUID,
	person string,
	year int,
) (*domain.PersonYearReading, error) {
	group, err := s.state.Group(groupID)
	if err != nil {
		return nil, err
	}
	return group.Reading(person, year), nil
}
