package scoring

import "time"

// PredictSuccess estimates on a 0-100 scale how likely a squad is to deliver,
// from its size, role mix, participation and age.
func PredictSuccess(members []MemberInput, createdAt, now time.Time) float64 {
	score := 50.0

	n := len(members)
	switch {
	case n >= 3 && n <= 10:
		score += 15
	case n < 3:
		score -= 10
	}

	var hasLeader, hasAssistant bool
	var contributors, active int
	for _, m := range members {
		switch m.Role {
		case RoleLeader:
			hasLeader = true
		case RoleAssistant:
			hasAssistant = true
		case RoleContributor:
			contributors++
		}
		if m.ContributionScore > 0 {
			active++
		}
	}
	if hasLeader && hasAssistant && contributors > 0 {
		score += 15
	}
	if n > 0 {
		score += 20 * float64(active) / float64(n)
	}

	age := now.Sub(createdAt)
	switch {
	case age > 30*24*time.Hour:
		score += 15
	case age > 7*24*time.Hour:
		score += 10
	}

	return roundToTwoDecimals(clamp(0, 100, score))
}
