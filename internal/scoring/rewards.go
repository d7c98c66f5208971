package scoring

import "math"

// =============================================================================
// EARNINGS SHARES
// =============================================================================

// RebalanceShares scales shares down proportionally when they add up to more
// than 100. Each share is rounded; if rounding still overshoots, the excess is
// taken one point at a time from the largest share.
func RebalanceShares(shares []int) []int {
	out := make([]int, len(shares))
	copy(out, shares)

	total := 0
	for _, s := range shares {
		total += s
	}
	if total <= 100 {
		return out
	}

	sum := 0
	for i, s := range shares {
		out[i] = int(math.Round(float64(s) * 100 / float64(total)))
		sum += out[i]
	}

	for excess := sum - 100; excess > 0; excess-- {
		largest := 0
		for i := range out {
			if out[i] > out[largest] {
				largest = i
			}
		}
		out[largest]--
	}

	return out
}

// =============================================================================
// REWARD DISTRIBUTION
// Base allocation from earnings shares, boosted by contribution share
// =============================================================================

// MemberReward is one member's cut of a reward pool.
type MemberReward struct {
	UserID     string  `json:"user_id"`
	Base       float64 `json:"base"`
	Multiplier float64 `json:"multiplier"`
	Amount     float64 `json:"amount"`
}

// DistributeRewards gives every member totalAmount*share/100, multiplied by
// min(2, 1 + score/totalScore*0.5). The multiplier is 1 when nobody has
// contributed yet.
func DistributeRewards(totalAmount float64, members []MemberInput) []MemberReward {
	totalScore := 0
	for _, m := range members {
		totalScore += m.ContributionScore
	}

	rewards := make([]MemberReward, len(members))
	for i, m := range members {
		base := totalAmount * float64(m.EarningsShare) / 100
		multiplier := 1.0
		if totalScore > 0 {
			multiplier = math.Min(2, 1+float64(m.ContributionScore)/float64(totalScore)*0.5)
		}
		rewards[i] = MemberReward{
			UserID:     m.UserID,
			Base:       base,
			Multiplier: multiplier,
			Amount:     math.Round(base * multiplier),
		}
	}

	return rewards
}

// =============================================================================
// REWARD OPTIMIZATION
// Redistributes the pool by logged contribution points
// =============================================================================

const (
	activeContributorThreshold = 5
	activeContributorBonus     = 1.15
)

// RewardOptimization compares share-based and contribution-based allocations.
type RewardOptimization struct {
	TotalReward           float64            `json:"total_reward"`
	OriginalDistribution  map[string]float64 `json:"original_distribution"`
	OptimizedDistribution map[string]float64 `json:"optimized_distribution"`
	Improvements          map[string]float64 `json:"improvements"`
	EfficiencyGain        float64            `json:"efficiency_gain"`
}

// OptimizeRewards splits totalReward proportionally to each member's summed
// contribution points (x1.15 for more than five contributions). Rounding
// leftovers go to the top scorer so the optimized amounts add up to
// totalReward exactly. When nobody has points, earnings shares act as scores.
func OptimizeRewards(totalReward float64, members []MemberInput) RewardOptimization {
	result := RewardOptimization{
		TotalReward:           totalReward,
		OriginalDistribution:  make(map[string]float64, len(members)),
		OptimizedDistribution: make(map[string]float64, len(members)),
		Improvements:          make(map[string]float64, len(members)),
	}
	if len(members) == 0 {
		return result
	}

	scores := make([]float64, len(members))
	var totalScore float64
	for i, m := range members {
		var points int
		for _, c := range m.Contributions {
			points += c.Points
		}
		scores[i] = float64(points)
		if len(m.Contributions) > activeContributorThreshold {
			scores[i] *= activeContributorBonus
		}
		totalScore += scores[i]
	}
	if totalScore == 0 {
		for i, m := range members {
			scores[i] = float64(m.EarningsShare)
			totalScore += scores[i]
		}
	}
	if totalScore == 0 {
		for i := range scores {
			scores[i] = 1
		}
		totalScore = float64(len(scores))
	}

	top := 0
	var distributed float64
	optimized := make([]float64, len(members))
	for i := range members {
		optimized[i] = math.Round(totalReward * scores[i] / totalScore)
		distributed += optimized[i]
		if scores[i] > scores[top] {
			top = i
		}
	}
	optimized[top] += totalReward - distributed

	var totalImprovement float64
	for i, m := range members {
		original := totalReward * float64(m.EarningsShare) / 100
		improvement := 0.0
		switch {
		case original > 0:
			improvement = (optimized[i] - original) / original * 100
		case optimized[i] > 0:
			improvement = 100
		}
		improvement = roundToTwoDecimals(improvement)

		result.OriginalDistribution[m.UserID] = roundToTwoDecimals(original)
		result.OptimizedDistribution[m.UserID] = optimized[i]
		result.Improvements[m.UserID] = improvement
		totalImprovement += math.Abs(improvement)
	}
	result.EfficiencyGain = roundToTwoDecimals(totalImprovement / float64(len(members)))

	return result
}
