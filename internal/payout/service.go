package payout

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kezzyngotho/aura/internal/scoring"
	"github.com/kezzyngotho/aura/internal/squad"
)

// Common errors
var (
	ErrPayoutNotFound = errors.New("payout not found")
	ErrNotLeader      = errors.New("only the squad leader can pay out")
	ErrInvalidAmount  = errors.New("total amount must be positive")
)

// Squads is the part of the squad service payouts depend on
type Squads interface {
	GetSquad(ctx context.Context, id string) (*squad.Squad, error)
	CalculateRewards(ctx context.Context, squadID string, totalAmount float64) ([]scoring.MemberReward, error)
	OptimizeRewards(ctx context.Context, squadID string, totalReward float64) (*scoring.RewardOptimization, error)
	AddEarnings(ctx context.Context, squadID string, amount float64) (*squad.Squad, error)
}

// Minter mints AURA rewards. An empty hash means the mint did not land.
type Minter interface {
	MintReward(ctx context.Context, to string, amount decimal.Decimal) (string, error)
}

// TokenRecorder tracks tokens earned for analytics
type TokenRecorder interface {
	RecordTokens(ctx context.Context, earned, spent float64) error
}

// Service handles payout business logic
type Service struct {
	repo       *Repository
	squads     Squads
	strategies *Factory
	minter     Minter
	tokens     TokenRecorder
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates a new payout service
func NewService(repo *Repository, squads Squads, minter Minter, tokens TokenRecorder, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		squads:     squads,
		strategies: NewStrategyFactory(squads),
		minter:     minter,
		tokens:     tokens,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Payout splits req.TotalAmount across the squad, credits the squad's
// earnings and mints every line. Only the leader may request it.
func (s *Service) Payout(ctx context.Context, squadID, requestedBy string, req *CreatePayoutRequest) (*Payout, error) {
	if req.TotalAmount <= 0 || math.IsNaN(req.TotalAmount) || math.IsInf(req.TotalAmount, 0) {
		return nil, ErrInvalidAmount
	}

	sq, err := s.squads.GetSquad(ctx, squadID)
	if err != nil {
		return nil, err
	}
	if sq.LeaderID != requestedBy {
		return nil, ErrNotLeader
	}

	strategy, err := s.strategies.Create(req.strategy())
	if err != nil {
		return nil, err
	}
	lines, err := strategy.Split(ctx, sq, req.TotalAmount)
	if err != nil {
		return nil, err
	}

	// Nothing is minted until the record and the earnings credit are stored.
	p := &Payout{
		ID:          uuid.NewString(),
		SquadID:     squadID,
		RequestedBy: requestedBy,
		TotalAmount: req.TotalAmount,
		Strategy:    strategy.Type(),
		Lines:       lines,
		Status:      StatusPending,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if _, err := s.squads.AddEarnings(ctx, squadID, req.TotalAmount); err != nil {
		s.save(ctx, p.ID, func(stored *Payout) { stored.Status = StatusFailed })
		return nil, err
	}

	for i := range p.Lines {
		txHash := s.mint(ctx, squadID, p.Lines[i])
		if txHash == "" {
			continue
		}
		p.Lines[i].TxHash = txHash
		s.save(ctx, p.ID, func(stored *Payout) {
			if i < len(stored.Lines) {
				stored.Lines[i].TxHash = txHash
			}
		})
	}

	p.Status = StatusCompleted
	s.save(ctx, p.ID, func(stored *Payout) { stored.Status = StatusCompleted })

	if err := s.tokens.RecordTokens(ctx, req.TotalAmount, 0); err != nil {
		s.logger.Warn("failed to record earned tokens",
			zap.String("payout_id", p.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("squad paid out",
		zap.String("squad_id", squadID),
		zap.String("payout_id", p.ID),
		zap.String("strategy", string(p.Strategy)),
		zap.Float64("total", p.TotalAmount),
		zap.Int("minted", p.Minted()),
		zap.Int("lines", len(p.Lines)),
	)
	return p, nil
}

// save applies fn to the stored payout. Failures are logged, not returned.
func (s *Service) save(ctx context.Context, id string, fn func(*Payout)) {
	_, err := s.repo.Update(ctx, id, func(p *Payout) error {
		fn(p)
		return nil
	})
	if err != nil {
		s.logger.Error("failed to record payout progress",
			zap.String("payout_id", id),
			zap.Error(err),
		)
	}
}

// mint returns the tx hash for line, or "" when nothing was minted
func (s *Service) mint(ctx context.Context, squadID string, line Line) string {
	if line.Amount <= 0 {
		return ""
	}
	txHash, err := s.minter.MintReward(ctx, line.UserID, decimal.NewFromFloat(line.Amount))
	if err != nil {
		s.logger.Warn("skipping payout line",
			zap.String("squad_id", squadID),
			zap.String("user_id", line.UserID),
			zap.Error(err),
		)
		return ""
	}
	return txHash
}

// GetPayout retrieves a payout by ID
func (s *Service) GetPayout(ctx context.Context, id string) (*Payout, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPayoutNotFound
	}
	return p, nil
}

// ListPayouts returns a squad's payouts, newest first
func (s *Service) ListPayouts(ctx context.Context, squadID string) ([]*Payout, error) {
	if _, err := s.squads.GetSquad(ctx, squadID); err != nil {
		return nil, err
	}
	return s.repo.ListBySquad(ctx, squadID)
}
