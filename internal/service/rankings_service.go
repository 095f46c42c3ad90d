package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/ninthhouse/arcana-api/internal/domain"
)

// Filter kind names accepted by ParseFilter, matching the five dimensions
// of the rankings aggregation.
const (
	FilterKindAll    = "all"
	FilterKindYear   = "year"
	FilterKindMonth  = "month"
	FilterKindPerson = "person"
	FilterKindGroup  = "group"
)

// RankingsService is the read-only query layer over the ledger producing
// card-frequency rankings.
type RankingsService interface {
	// Rank aggregates card frequencies over the slice of the ledger the
	// filter selects. An empty match yields an empty result, not an error.
	Rank(ctx context.Context, filter domain.Filter) []domain.RankEntry
}

// rankingsServiceImpl implements the RankingsService interface.
type rankingsServiceImpl struct {
	state  *AppState
	logger *slog.Logger
}

// NewRankingsService creates a new RankingsService over the given state.
func NewRankingsService(state *AppState, log *slog.Logger) (RankingsService, error) {
	if state == nil {
		return nil, NewServiceError("new_rankings_service", "state cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}
	return &rankingsServiceImpl{
		state:  state,
		logger: log.With(slog.String("component", "rankings_service")),
	}, nil
}

// Rank implements RankingsService.Rank.
func (s *rankingsServiceImpl) Rank(ctx context.Context, filter domain.Filter) []domain.RankEntry {
	return domain.Rank(s.state.Groups(), filter)
}

// ParseFilter builds a domain.Filter from the loosely-typed request
// parameters of the rankings endpoint. The value parameter is interpreted
// per kind: a year number, a month name, a person name, or a group id.
func ParseFilter(kind, value string) (domain.Filter, error) {
	switch kind {
	case FilterKindAll, "":
		return domain.FilterAll{}, nil
	case FilterKindYear:
		year, err := parseYear(value)
		if err != nil {
			return nil, err
		}
		return domain.FilterYear{Year: year}, nil
	case FilterKindMonth:
		monthIndex, err := domain.MonthIndexOf(value)
		if err != nil {
			return nil, err
		}
		return domain.FilterMonth{MonthIndex: monthIndex}, nil
	case FilterKindPerson:
		if value == "" {
			return nil, domain.ErrEmptyName
		}
		return domain.FilterPerson{Name: value}, nil
	case FilterKindGroup:
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, ErrGroupNotFound
		}
		return domain.FilterGroup{ID: id}, nil
	default:
		return nil, ErrUnknownFilter
	}
}

func parseYear(value string) (int, error) {
	year, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a year", ErrUnknownFilter, value)
	}
	return year, nil
}
