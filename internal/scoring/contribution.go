package scoring

import "math"

// ContributionAnalysis rates a single contribution.
type ContributionAnalysis struct {
	Effort           Level   `json:"effort"`
	Impact           Level   `json:"impact"`
	Score            float64 `json:"score"`
	RewardMultiplier float64 `json:"reward_multiplier"`
}

// AnalyzeContribution derives effort from points and impact from the type.
func AnalyzeContribution(t ContributionType, points int) ContributionAnalysis {
	effort := LevelLow
	switch {
	case points >= 10:
		effort = LevelHigh
	case points >= 5:
		effort = LevelMedium
	}

	impact := LevelLow
	bonus := 0.0
	switch t {
	case ContributionSolution:
		impact = LevelHigh
		bonus = 0.3
	case ContributionReview:
		impact = LevelMedium
		bonus = 0.15
	}

	score := math.Min(100, 50+
		levelWeights[effort]*30+
		levelWeights[impact]*40+
		float64(points)/10*20)
	multiplier := math.Min(2.5, 1.0+score/100*0.5+bonus)

	return ContributionAnalysis{
		Effort:           effort,
		Impact:           impact,
		Score:            roundToTwoDecimals(score),
		RewardMultiplier: roundToTwoDecimals(multiplier),
	}
}
