package payout

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/kezzyngotho/aura/internal/squad"
)

// StrategyType names a way of splitting a reward pool
type StrategyType string

const (
	StrategyShares    StrategyType = "shares"
	StrategyOptimized StrategyType = "optimized"
	StrategyEven      StrategyType = "even"
)

var (
	ErrUnknownStrategy = errors.New("unknown payout strategy")
	ErrNoMembers       = errors.New("squad has no members")
)

// Strategy computes the payout lines for a squad
type Strategy interface {
	Type() StrategyType
	Split(ctx context.Context, sq *squad.Squad, total float64) ([]Line, error)
}

// Factory creates payout strategies by type
type Factory struct {
	squads Squads
}

// NewStrategyFactory creates a factory whose strategies read from squads
func NewStrategyFactory(squads Squads) *Factory {
	return &Factory{squads: squads}
}

// Create returns the strategy for t. An empty type means StrategyShares.
func (f *Factory) Create(t StrategyType) (Strategy, error) {
	switch t {
	case "", StrategyShares:
		return &sharesStrategy{squads: f.squads}, nil
	case StrategyOptimized:
		return &optimizedStrategy{squads: f.squads}, nil
	case StrategyEven:
		return &evenStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, t)
	}
}

// sharesStrategy pays each member their earnings share boosted by contribution
type sharesStrategy struct {
	squads Squads
}

func (s *sharesStrategy) Type() StrategyType { return StrategyShares }

func (s *sharesStrategy) Split(ctx context.Context, sq *squad.Squad, total float64) ([]Line, error) {
	rewards, err := s.squads.CalculateRewards(ctx, sq.ID, total)
	if err != nil {
		return nil, err
	}
	lines := make([]Line, len(rewards))
	for i, r := range rewards {
		lines[i] = Line{UserID: r.UserID, Amount: r.Amount}
	}
	return lines, nil
}

// optimizedStrategy pays in proportion to logged contribution points
type optimizedStrategy struct {
	squads Squads
}

func (s *optimizedStrategy) Type() StrategyType { return StrategyOptimized }

func (s *optimizedStrategy) Split(ctx context.Context, sq *squad.Squad, total float64) ([]Line, error) {
	opt, err := s.squads.OptimizeRewards(ctx, sq.ID, total)
	if err != nil {
		return nil, err
	}
	lines := make([]Line, len(sq.Members))
	for i, m := range sq.Members {
		lines[i] = Line{UserID: m.UserID, Amount: opt.OptimizedDistribution[m.UserID]}
	}
	return lines, nil
}

// evenStrategy divides the pool equally to the cent. Leftover cents go to
// the first member, who is always the leader.
type evenStrategy struct{}

func (s *evenStrategy) Type() StrategyType { return StrategyEven }

func (s *evenStrategy) Split(_ context.Context, sq *squad.Squad, total float64) ([]Line, error) {
	if len(sq.Members) == 0 {
		return nil, ErrNoMembers
	}

	per := roundToTwoDecimals(total / float64(len(sq.Members)))
	diff := roundToTwoDecimals(total - per*float64(len(sq.Members)))

	lines := make([]Line, len(sq.Members))
	for i, m := range sq.Members {
		amount := per
		if i == 0 && diff != 0 {
			amount = roundToTwoDecimals(amount + diff)
		}
		lines[i] = Line{UserID: m.UserID, Amount: amount}
	}
	return lines, nil
}

func roundToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
