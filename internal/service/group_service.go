package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ninthhouse/arcana-api/internal/domain"
	"github.com/ninthhouse/arcana-api/internal/platform/logger"
)

// GroupService provides group and roster operations. Groups only grow:
// members are appended and years joined; the core defines no removal.
type GroupService interface {
	// CreateGroup allocates a group with a fresh id and an empty roster
	// and ledger partition. Returns domain.ErrEmptyName for blank names.
	CreateGroup(ctx context.Context, name string) (*domain.Group, error)

	// GetGroup retrieves a group by id.
	GetGroup(ctx context.Context, id uuid.UUID) (*domain.Group, error)

	// ListGroups returns the groups in registry order.
	ListGroups(ctx context.Context) []*domain.Group

	// AddMember appends a member joining in startYear. Duplicate names are
	// permitted and become separate selectable people.
	AddMember(ctx context.Context, groupID uuid.UUID, name string, startYear int) (*domain.Group, error)

	// JoinYear adds a participation year to the member at the given roster
	// position.
	JoinYear(ctx context.Context, groupID uuid.UUID, memberIndex, year int) (*domain.Group, error)
}

// groupServiceImpl implements the GroupService interface.
type groupServiceImpl struct {
	state  *AppState
	logger *slog.Logger
}

// NewGroupService creates a new GroupService over the given state.
func NewGroupService(state *AppState, log *slog.Logger) (GroupService, error) {
	if state == nil {
		return nil, NewServiceError("new_group_service", "state cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}
	return &groupServiceImpl{
		state:  state,
		logger: log.With(slog.String("component", "group_service")),
	}, nil
}

// CreateGroup implements GroupService.CreateGroup.
func (s *groupServiceImpl) CreateGroup(ctx context.Context, name string) (*domain.Group, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	group, err := domain.NewGroup(name)
	if err != nil {
		return nil, err
	}

	s.state.AppendGroup(group)
	log.Info("group created",
		slog.String("group_id", group.ID.String()),
		slog.String("name", group.Name))
	return group, nil
}

// GetGroup implements GroupService.GetGroup.
func (s *groupServiceImpl) GetGroup(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	return s.state.Group(id)
}

// ListGroups implements GroupService.ListGroups.
func (s *groupServiceImpl) ListGroups(ctx context.Context) []*domain.Group {
	return s.state.Groups()
}

// AddMember implements GroupService.AddMember.
func (s *groupServiceImpl) AddMember(
	ctx context.Context,
	groupID uuid.UUID,
	name string,
	startYear int,
) (*domain.Group, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	updated, err := s.state.UpdateGroup(groupID, func(g *domain.Group) (*domain.Group, error) {
		return g.AddMember(name, startYear)
	})
	if err != nil {
		return nil, err
	}

	log.Info("member added",
		slog.String("group_id", groupID.String()),
		slog.Int("roster_size", len(updated.Members)))
	return updated, nil
}

// JoinYear implements GroupService.JoinYear.
func (s *groupServiceImpl) JoinYear(
	ctx context.Context,
	groupID uuid.UUID,
	memberIndex, year int,
) (*domain.Group, error) {
	updated, err := s.state.UpdateGroup(groupID, func(g *domain.Group) (*domain.Group, error) {
		return g.JoinYear(memberIndex, year)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
