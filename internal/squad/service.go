package squad

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kezzyngotho/aura/internal/kv"
	"github.com/kezzyngotho/aura/internal/scoring"
)

// Common errors
var (
	ErrSquadNotFound       = errors.New("squad not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("user is already a member of this squad")
	ErrInvalidRole         = errors.New("role must be assistant or contributor")
	ErrCannotRemoveLeader  = errors.New("the squad leader cannot be removed")
	ErrNameRequired        = errors.New("squad name is required")
	ErrInvalidStatus       = errors.New("invalid squad status")
	ErrInvalidContribution = errors.New("invalid contribution")
	ErrInvalidAmount       = errors.New("amount must be a finite, non-negative number")
	ErrNotLeader           = errors.New("only the squad leader can do this")
)

// Service handles squad business logic
type Service struct {
	repo   *Repository
	logger *zap.Logger
	pool   []scoring.Candidate
	now    func() time.Time
}

// NewService creates a new squad service
func NewService(repo *Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		pool:   scoring.DefaultCandidatePool(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateSquad creates a new squad led by leaderID
func (s *Service) CreateSquad(ctx context.Context, leaderID string, req *CreateSquadRequest) (*Squad, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	now := s.now()
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	squad := &Squad{
		ID:          uuid.NewString(),
		Name:        name,
		Description: req.Description,
		LeaderID:    leaderID,
		Tags:        tags,
		Members: []Member{{
			UserID:        leaderID,
			Role:          RoleLeader,
			JoinedAt:      now,
			EarningsShare: leaderShare,
		}},
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Index first so a stored squad is always reachable from its leader's list.
	listKey := kv.SquadListKey(leaderID)
	if _, err := s.repo.AddToIndex(ctx, listKey, squad.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, squad); err != nil {
		s.unindex(ctx, listKey, squad.ID)
		return nil, err
	}

	s.logger.Info("squad created", zap.String("squad_id", squad.ID), zap.String("leader_id", leaderID))
	return squad, nil
}

// GetSquad retrieves a squad by its ID
func (s *Service) GetSquad(ctx context.Context, id string) (*Squad, error) {
	squad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if squad == nil {
		return nil, ErrSquadNotFound
	}
	return squad, nil
}

// ListUserSquads returns the squads a user leads followed by those they joined
func (s *Service) ListUserSquads(ctx context.Context, userID string) ([]*Squad, error) {
	led, err := s.repo.ListIndex(ctx, kv.SquadListKey(userID))
	if err != nil {
		return nil, err
	}
	joined, err := s.repo.ListIndex(ctx, kv.SquadMemberKey(userID))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(led)+len(joined))
	squads := []*Squad{}
	for _, id := range append(led, joined...) {
		if seen[id] {
			continue
		}
		seen[id] = true

		squad, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if squad == nil || !squad.HasMember(userID) {
			s.logger.Warn("dangling squad index entry", zap.String("squad_id", id), zap.String("user_id", userID))
			continue
		}
		squads = append(squads, squad)
	}
	return squads, nil
}

// UpdateStatus moves a squad to a new lifecycle status on behalf of its leader
func (s *Service) UpdateStatus(ctx context.Context, id, actorID string, status Status) (*Squad, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	squad, err := s.repo.Update(ctx, id, func(sq *Squad) error {
		if actorID != sq.LeaderID {
			return ErrNotLeader
		}
		sq.Status = status
		sq.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if squad == nil {
		return nil, ErrSquadNotFound
	}
	return squad, nil
}

// AddMember lets the squad leader add a user and rebalances earnings shares
func (s *Service) AddMember(ctx context.Context, squadID, actorID string, req *AddMemberRequest) (*Member, error) {
	role := req.Role
	if role == "" {
		role = RoleContributor
	}

	memberKey := kv.SquadMemberKey(req.UserID)
	indexed, err := s.repo.AddToIndex(ctx, memberKey, squadID)
	if err != nil {
		return nil, err
	}

	var (
		added  Member
		listed bool
	)
	squad, err := s.repo.Update(ctx, squadID, func(sq *Squad) error {
		listed = sq.HasMember(req.UserID) && req.UserID != sq.LeaderID
		if actorID != sq.LeaderID {
			return ErrNotLeader
		}
		if sq.HasMember(req.UserID) {
			return ErrMemberAlreadyExists
		}

		share := contributorShare
		switch role {
		case RoleAssistant:
			share = assistantShare
		case RoleContributor:
		default:
			return ErrInvalidRole
		}

		now := s.now()
		sq.Members = append(sq.Members, Member{
			UserID:        req.UserID,
			Role:          role,
			JoinedAt:      now,
			EarningsShare: share,
		})
		sq.rebalance()
		sq.UpdatedAt = now
		added = sq.Members[len(sq.Members)-1]
		listed = true
		return nil
	})
	if err == nil && squad == nil {
		err = ErrSquadNotFound
	}
	if err != nil {
		if indexed && !listed {
			s.unindex(ctx, memberKey, squadID)
		}
		return nil, err
	}

	s.logger.Info("member added",
		zap.String("squad_id", squadID),
		zap.String("user_id", req.UserID),
		zap.String("role", string(role)),
	)
	return &added, nil
}

// RemoveMember removes a non-leader member and rebalances earnings shares.
// The leader may remove anyone else; other members may only remove themselves.
func (s *Service) RemoveMember(ctx context.Context, squadID, actorID, userID string) error {
	squad, err := s.repo.Update(ctx, squadID, func(sq *Squad) error {
		if actorID != sq.LeaderID && actorID != userID {
			return ErrNotLeader
		}
		if userID == sq.LeaderID {
			return ErrCannotRemoveLeader
		}

		kept := sq.Members[:0:0]
		for _, m := range sq.Members {
			if m.UserID != userID {
				kept = append(kept, m)
			}
		}
		if len(kept) == len(sq.Members) {
			return ErrMemberNotFound
		}

		sq.Members = kept
		sq.rebalance()
		sq.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return err
	}
	if squad == nil {
		return ErrSquadNotFound
	}

	// The roster is authoritative; a stale entry is filtered out by ListUserSquads.
	s.unindex(ctx, kv.SquadMemberKey(userID), squadID)

	s.logger.Info("member removed", zap.String("squad_id", squadID), zap.String("user_id", userID))
	return nil
}

func (s *Service) unindex(ctx context.Context, key, squadID string) {
	if err := s.repo.RemoveFromIndex(ctx, key, squadID); err != nil {
		s.logger.Warn("failed to unindex squad", zap.String("key", key), zap.String("squad_id", squadID), zap.Error(err))
	}
}

// LogContribution appends to the member's contribution log and raises their score
func (s *Service) LogContribution(ctx context.Context, squadID, userID string, req *LogContributionRequest) (*Contribution, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidContribution, req.Type)
	}
	if req.Points < 0 {
		return nil, fmt.Errorf("%w: points must not be negative", ErrInvalidContribution)
	}

	squad, err := s.GetSquad(ctx, squadID)
	if err != nil {
		return nil, err
	}
	if !squad.HasMember(userID) {
		return nil, ErrMemberNotFound
	}

	entry := &Contribution{
		SquadID:     squadID,
		UserID:      userID,
		Type:        req.Type,
		Points:      req.Points,
		Timestamp:   s.now(),
		Description: req.Description,
	}
	if err := s.repo.AppendContribution(ctx, entry); err != nil {
		return nil, err
	}

	squad, err = s.repo.Update(ctx, squadID, func(sq *Squad) error {
		m := sq.Member(userID)
		if m == nil {
			return ErrMemberNotFound
		}
		m.ContributionScore += req.Points
		sq.UpdatedAt = entry.Timestamp
		return nil
	})
	if err != nil {
		return nil, err
	}
	if squad == nil {
		return nil, ErrSquadNotFound
	}

	return entry, nil
}

// GetContributions returns a member's contribution log
func (s *Service) GetContributions(ctx context.Context, squadID, userID string) ([]Contribution, error) {
	if _, err := s.GetSquad(ctx, squadID); err != nil {
		return nil, err
	}
	return s.repo.ListContributions(ctx, squadID, userID)
}

// CalculateRewards splits totalAmount by earnings share, boosted by contribution score
func (s *Service) CalculateRewards(ctx context.Context, squadID string, totalAmount float64) ([]scoring.MemberReward, error) {
	if !validAmount(totalAmount) {
		return nil, ErrInvalidAmount
	}

	squad, err := s.GetSquad(ctx, squadID)
	if err != nil {
		return nil, err
	}
	return scoring.DistributeRewards(totalAmount, squad.memberInputs(nil)), nil
}

// OptimizeRewards splits totalReward by logged contribution points
func (s *Service) OptimizeRewards(ctx context.Context, squadID string, totalReward float64) (*scoring.RewardOptimization, error) {
	if !validAmount(totalReward) {
		return nil, ErrInvalidAmount
	}

	squad, err := s.GetSquad(ctx, squadID)
	if err != nil {
		return nil, err
	}

	history := make(map[string][]Contribution, len(squad.Members))
	for _, m := range squad.Members {
		entries, err := s.repo.ListContributions(ctx, squadID, m.UserID)
		if err != nil {
			return nil, err
		}
		history[m.UserID] = entries
	}

	result := scoring.OptimizeRewards(totalReward, squad.memberInputs(history))
	return &result, nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// AddEarnings credits a paid-out task to the squad
func (s *Service) AddEarnings(ctx context.Context, squadID string, amount float64) (*Squad, error) {
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}

	squad, err := s.repo.Update(ctx, squadID, func(sq *Squad) error {
		sq.TotalEarnings += amount
		sq.TaskCount++
		sq.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if squad == nil {
		return nil, ErrSquadNotFound
	}
	return squad, nil
}

// Health assesses the squad's roster and participation
func (s *Service) Health(ctx context.Context, squadID string) (*scoring.HealthReport, error) {
	squad, err := s.GetSquad(ctx, squadID)
	if err != nil {
		return nil, err
	}
	report := scoring.AssessHealth(squad.memberInputs(nil))
	return &report, nil
}

// PredictSuccess estimates the squad's chance of delivering
func (s *Service) PredictSuccess(ctx context.Context, squadID string) (float64, error) {
	squad, err := s.GetSquad(ctx, squadID)
	if err != nil {
		return 0, err
	}
	return scoring.PredictSuccess(squad.memberInputs(nil), squad.CreatedAt, s.now()), nil
}

// MatchCandidates ranks the candidate pool against the required skills
func (s *Service) MatchCandidates(requiredSkills []string) []scoring.CandidateMatch {
	return scoring.MatchCandidates(requiredSkills, s.pool)
}
