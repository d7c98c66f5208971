package profile

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kezzyngotho/aura/internal/scoring"
	"github.com/kezzyngotho/aura/internal/squad"
)

// ErrUserRequired is returned for a blank user id
var ErrUserRequired = errors.New("user id is required")

const fetchLimit = 8

// Squads is the part of the squad service profiles read from
type Squads interface {
	ListUserSquads(ctx context.Context, userID string) ([]*squad.Squad, error)
	GetContributions(ctx context.Context, squadID, userID string) ([]squad.Contribution, error)
}

// Service builds user profiles
type Service struct {
	squads Squads
	logger *zap.Logger
}

// NewService creates a new profile service
func NewService(squads Squads, logger *zap.Logger) *Service {
	return &Service{squads: squads, logger: logger}
}

// GetProfile gathers userID's contributions from all their squads and scores them
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserRequired
	}

	squads, err := s.squads.ListUserSquads(ctx, userID)
	if err != nil {
		return nil, err
	}

	perSquad := make([][]squad.Contribution, len(squads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	for i, sq := range squads {
		g.Go(func() error {
			entries, err := s.squads.GetContributions(gctx, sq.ID, userID)
			if errors.Is(err, squad.ErrSquadNotFound) {
				return nil
			}
			perSquad[i] = entries
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var history []squad.Contribution
	for _, entries := range perSquad {
		history = append(history, entries...)
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.Before(history[j].Timestamp)
	})

	leading := 0
	for _, sq := range squads {
		if sq.LeaderID == userID {
			leading++
		}
	}

	s.logger.Debug("profile built",
		zap.String("user_id", userID),
		zap.Int("squads", len(squads)),
		zap.Int("contributions", len(history)),
	)

	return &Profile{
		UserID:        userID,
		SquadCount:    len(squads),
		Leading:       leading,
		MemberProfile: scoring.BuildProfile(squad.ContributionInputs(history)),
	}, nil
}

// ListSquads summarizes userID's place in each of their squads
func (s *Service) ListSquads(ctx context.Context, userID string) ([]SquadSummary, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserRequired
	}

	squads, err := s.squads.ListUserSquads(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]SquadSummary, 0, len(squads))
	for _, sq := range squads {
		m := sq.Member(userID)
		if m == nil {
			continue
		}
		out = append(out, SquadSummary{
			SquadID:           sq.ID,
			Name:              sq.Name,
			Status:            string(sq.Status),
			Role:              m.Role,
			EarningsShare:     m.EarningsShare,
			ContributionScore: m.ContributionScore,
		})
	}
	return out, nil
}
