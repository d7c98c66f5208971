package scoring

import (
	"math"
	"sort"
)

// skillByType maps contribution types to the skill they demonstrate.
var skillByType = map[ContributionType]string{
	ContributionSolution: "problem-solving",
	ContributionReview:   "quality-assurance",
	ContributionMessage:  "communication",
	ContributionEdit:     "editing",
}

const (
	SpecializationSpecialist = "specialist"
	SpecializationGeneralist = "generalist"
)

// MemberProfile summarizes a user's contribution history.
type MemberProfile struct {
	ContributionCount int      `json:"contribution_count"`
	AverageQuality    float64  `json:"average_quality"`
	Skills            []string `json:"skills"`
	Availability      float64  `json:"availability"`
	Reliability       float64  `json:"reliability"`
	Specialization    string   `json:"specialization"`
	RecommendedRole   Role     `json:"recommended_role"`
}

// BuildProfile derives quality, skills, availability and a role
// recommendation from a user's contributions.
func BuildProfile(history []ContributionInput) MemberProfile {
	count := len(history)

	var totalPoints int
	seen := make(map[string]bool)
	skills := []string{}
	for _, c := range history {
		totalPoints += c.Points
		if skill, ok := skillByType[c.Type]; ok && !seen[skill] {
			seen[skill] = true
			skills = append(skills, skill)
		}
	}
	sort.Strings(skills)

	var averageQuality float64
	if count > 0 {
		averageQuality = math.Min(100, float64(totalPoints)/float64(count)*5)
	}
	availability := clamp(20, 100, float64(count)/100*100)
	reliability := math.Round(0.7*averageQuality + 0.3*availability)

	specialization := SpecializationGeneralist
	if len(skills) == 1 {
		specialization = SpecializationSpecialist
	}

	role := RoleContributor
	switch {
	case reliability > 85 && count > 10:
		role = RoleLeader
	case reliability > 70 && count > 5:
		role = RoleAssistant
	}

	return MemberProfile{
		ContributionCount: count,
		AverageQuality:    roundToTwoDecimals(averageQuality),
		Skills:            skills,
		Availability:      availability,
		Reliability:       reliability,
		Specialization:    specialization,
		RecommendedRole:   role,
	}
}
