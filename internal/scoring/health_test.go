package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessHealth(t *testing.T) {
	tests := []struct {
		name             string
		members          []MemberInput
		wantScore        int
		wantIssues       []string
		wantProductivity int
	}{
		{
			name: "single idle leader",
			members: []MemberInput{
				{UserID: "lead", Role: RoleLeader, EarningsShare: 40},
			},
			wantScore:        65,
			wantIssues:       []string{"single-member squad", "member lead has no contributions"},
			wantProductivity: 60,
		},
		{
			name: "healthy squad",
			members: []MemberInput{
				{UserID: "lead", Role: RoleLeader, EarningsShare: 40, ContributionScore: 10},
				{UserID: "asst", Role: RoleAssistant, EarningsShare: 30, ContributionScore: 5},
				{UserID: "dev", Role: RoleContributor, EarningsShare: 20, ContributionScore: 3},
			},
			wantScore:        100,
			wantIssues:       []string{},
			wantProductivity: 73,
		},
		{
			name: "leaderless idle pair",
			members: []MemberInput{
				{UserID: "a", Role: RoleContributor, EarningsShare: 20},
				{UserID: "b", Role: RoleContributor, EarningsShare: 20},
			},
			wantScore:        40,
			wantIssues:       []string{"missing leader", "member a has no contributions", "member b has no contributions"},
			wantProductivity: 60,
		},
		{
			name: "unbalanced shares",
			members: []MemberInput{
				{UserID: "lead", Role: RoleLeader, EarningsShare: 40, ContributionScore: 5},
				{UserID: "dev", Role: RoleContributor, EarningsShare: 5, ContributionScore: 5},
			},
			wantScore:        90,
			wantIssues:       []string{"unbalanced earnings distribution"},
			wantProductivity: 65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := AssessHealth(tt.members)
			assert.Equal(t, tt.wantScore, report.Score)
			assert.Equal(t, tt.wantIssues, report.Issues)
			assert.Equal(t, tt.wantProductivity, report.Productivity)
		})
	}
}

func TestAssessHealth_ClampsAtZero(t *testing.T) {
	members := make([]MemberInput, 6)
	for i := range members {
		members[i] = MemberInput{UserID: string(rune('a' + i)), Role: RoleContributor, EarningsShare: 10}
	}

	report := AssessHealth(members)
	assert.Equal(t, 0, report.Score)
	assert.Equal(t, 80, report.Productivity)
	assert.NotEmpty(t, report.Recommendations)
}

func TestAssessHealth_ProductivityCapped(t *testing.T) {
	members := []MemberInput{{UserID: "lead", Role: RoleLeader, ContributionScore: 1}}
	for i := 0; i < 10; i++ {
		members = append(members, MemberInput{UserID: "x", Role: RoleAssistant, ContributionScore: 1})
	}
	assert.Equal(t, 100, AssessHealth(members).Productivity)
}
