package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeContribution(t *testing.T) {
	tests := []struct {
		name           string
		typ            ContributionType
		points         int
		wantEffort     Level
		wantImpact     Level
		wantScore      float64
		wantMultiplier float64
	}{
		{"big solution", ContributionSolution, 10, LevelHigh, LevelHigh, 100, 1.8},
		{"medium review", ContributionReview, 5, LevelMedium, LevelMedium, 100, 1.65},
		{"small edit", ContributionEdit, 2, LevelLow, LevelLow, 89, 1.445},
		{"empty message", ContributionMessage, 0, LevelLow, LevelLow, 85, 1.425},
		{"small solution", ContributionSolution, 1, LevelLow, LevelHigh, 100, 1.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeContribution(tt.typ, tt.points)
			assert.Equal(t, tt.wantEffort, got.Effort)
			assert.Equal(t, tt.wantImpact, got.Impact)
			assert.InDelta(t, tt.wantScore, got.Score, 0.001)
			assert.InDelta(t, tt.wantMultiplier, got.RewardMultiplier, 0.01)
		})
	}
}

func TestAnalyzeContribution_MultiplierCap(t *testing.T) {
	for points := 0; points < 200; points += 7 {
		got := AnalyzeContribution(ContributionSolution, points)
		assert.LessOrEqual(t, got.RewardMultiplier, 2.5)
		assert.LessOrEqual(t, got.Score, 100.0)
	}
}
