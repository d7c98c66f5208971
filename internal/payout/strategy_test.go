package payout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kezzyngotho/aura/internal/squad"
)

func members(ids ...string) *squad.Squad {
	sq := &squad.Squad{ID: "sq-1", LeaderID: ids[0]}
	for _, id := range ids {
		sq.Members = append(sq.Members, squad.Member{UserID: id})
	}
	return sq
}

func TestEvenStrategy(t *testing.T) {
	tests := []struct {
		name  string
		squad *squad.Squad
		total float64
		want  []float64
	}{
		{"divides exactly", members("a", "b"), 50, []float64{25, 25}},
		{"leftover cent to leader", members("a", "b", "c"), 100, []float64{33.34, 33.33, 33.33}},
		{"shortfall taken from leader", members("a", "b", "c"), 0.05, []float64{0.01, 0.02, 0.02}},
		{"single member", members("a"), 12.5, []float64{12.5}},
	}

	strategy, err := NewStrategyFactory(nil).Create(StrategyEven)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := strategy.Split(context.Background(), tt.squad, tt.total)
			require.NoError(t, err)

			got := make([]float64, len(lines))
			for i, l := range lines {
				got[i] = l.Amount
			}
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = strategy.Split(context.Background(), &squad.Squad{}, 10)
	assert.ErrorIs(t, err, ErrNoMembers)
}

func TestFactory_Create(t *testing.T) {
	f := NewStrategyFactory(nil)

	for _, typ := range []StrategyType{"", StrategyShares, StrategyOptimized, StrategyEven} {
		s, err := f.Create(typ)
		require.NoError(t, err)
		if typ == "" {
			typ = StrategyShares
		}
		assert.Equal(t, typ, s.Type())
	}

	_, err := f.Create("EXACT")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
