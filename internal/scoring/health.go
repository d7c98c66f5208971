package scoring

import (
	"fmt"
	"math"
)

const (
	issuePenalty            = 10
	zeroContributionPenalty = 15
	maxShareSpread          = 30
)

// HealthReport is the composition and activity risk summary of a squad.
type HealthReport struct {
	Score           int      `json:"score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Productivity    int      `json:"productivity"`
}

// AssessHealth starts from 100 and takes 10 points per detected issue plus an
// extra 15 per member without contributions.
func AssessHealth(members []MemberInput) HealthReport {
	issues := []string{}
	recommendations := []string{}

	var leaders, assistants, contributors, idle int
	minShare, maxShare := math.MaxInt, math.MinInt
	for _, m := range members {
		switch m.Role {
		case RoleLeader:
			leaders++
		case RoleAssistant:
			assistants++
		case RoleContributor:
			contributors++
		}
		minShare = min(minShare, m.EarningsShare)
		maxShare = max(maxShare, m.EarningsShare)
	}

	if leaders == 0 {
		issues = append(issues, "missing leader")
		recommendations = append(recommendations, "Assign a leader to coordinate the squad")
	}
	if len(members) == 1 {
		issues = append(issues, "single-member squad")
		recommendations = append(recommendations, "Invite more members to spread the work")
	}
	for _, m := range members {
		if m.ContributionScore == 0 {
			idle++
			issues = append(issues, fmt.Sprintf("member %s has no contributions", m.UserID))
		}
	}
	if idle > 0 {
		recommendations = append(recommendations, "Encourage inactive members to make a first contribution")
	}
	if len(members) > 1 && maxShare-minShare > maxShareSpread {
		issues = append(issues, "unbalanced earnings distribution")
		recommendations = append(recommendations, "Review earnings shares so they track responsibilities")
	}

	score := 100 - issuePenalty*len(issues) - zeroContributionPenalty*idle
	score = max(0, min(100, score))

	productivity := min(100, 50+10*leaders+8*assistants+5*contributors)

	return HealthReport{
		Score:           score,
		Issues:          issues,
		Recommendations: recommendations,
		Productivity:    productivity,
	}
}
