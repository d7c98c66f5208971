package scoring

import (
	"sort"
	"strings"
)

// Experience is a candidate's seniority.
type Experience string

const (
	ExperienceJunior Experience = "junior"
	ExperienceMid    Experience = "mid"
	ExperienceSenior Experience = "senior"
)

var experienceWeights = map[Experience]float64{
	ExperienceJunior: 30,
	ExperienceMid:    70,
	ExperienceSenior: 100,
}

// minMatchScore is the exclusive lower bound for a match to be returned.
const minMatchScore = 60

// Candidate is a potential squad member.
type Candidate struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Skills       []string   `json:"skills"`
	Availability float64    `json:"availability"`
	Experience   Experience `json:"experience"`
}

// CandidateMatch is a candidate scored against a skill requirement.
type CandidateMatch struct {
	Candidate
	Score         float64  `json:"score"`
	MatchedSkills []string `json:"matched_skills"`
}

// DefaultCandidatePool is the fixed pool squads are matched against.
func DefaultCandidatePool() []Candidate {
	return []Candidate{
		{ID: "cand-001", Name: "Amara", Skills: []string{"problem-solving", "planning", "research"}, Availability: 90, Experience: ExperienceSenior},
		{ID: "cand-002", Name: "Kofi", Skills: []string{"communication", "marketing", "content"}, Availability: 75, Experience: ExperienceMid},
		{ID: "cand-003", Name: "Wanjiru", Skills: []string{"fitness", "nutrition", "coaching"}, Availability: 60, Experience: ExperienceMid},
		{ID: "cand-004", Name: "Jomo", Skills: []string{"editing", "writing", "content"}, Availability: 40, Experience: ExperienceJunior},
		{ID: "cand-005", Name: "Zuri", Skills: []string{"quality-assurance", "testing", "review"}, Availability: 85, Experience: ExperienceSenior},
		{ID: "cand-006", Name: "Baraka", Skills: []string{"finance", "strategy", "planning"}, Availability: 50, Experience: ExperienceJunior},
	}
}

// MatchCandidates scores every candidate as 50 + 30*matched skill fraction +
// 20*availability/100 + 20*experience weight/100 and keeps those above 60,
// best first.
func MatchCandidates(requiredSkills []string, pool []Candidate) []CandidateMatch {
	required := make(map[string]bool, len(requiredSkills))
	for _, s := range requiredSkills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			required[s] = true
		}
	}

	matches := []CandidateMatch{}
	for _, c := range pool {
		matched := []string{}
		for _, s := range c.Skills {
			if required[strings.ToLower(s)] {
				matched = append(matched, s)
			}
		}

		var fraction float64
		if len(required) > 0 {
			fraction = float64(len(matched)) / float64(len(required))
		}

		score := 50 +
			30*fraction +
			20*c.Availability/100 +
			20*experienceWeights[c.Experience]/100
		score = roundToTwoDecimals(score)

		if score > minMatchScore {
			matches = append(matches, CandidateMatch{
				Candidate:     c,
				Score:         score,
				MatchedSkills: matched,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})

	return matches
}
