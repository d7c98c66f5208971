package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPredictSuccess(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name    string
		members []MemberInput
		age     time.Duration
		want    float64
	}{
		{
			name: "balanced mature squad caps at 100",
			members: []MemberInput{
				{Role: RoleLeader, ContributionScore: 4},
				{Role: RoleAssistant, ContributionScore: 2},
				{Role: RoleContributor, ContributionScore: 1},
			},
			age:  40 * day,
			want: 100,
		},
		{
			name:    "lone new leader",
			members: []MemberInput{{Role: RoleLeader}},
			age:     0,
			want:    40,
		},
		{
			name: "small week-old pair",
			members: []MemberInput{
				{Role: RoleLeader, ContributionScore: 3},
				{Role: RoleContributor},
			},
			age:  10 * day,
			want: 60,
		},
		{
			name: "full roster half active",
			members: []MemberInput{
				{Role: RoleLeader, ContributionScore: 3},
				{Role: RoleAssistant, ContributionScore: 1},
				{Role: RoleContributor},
				{Role: RoleContributor},
			},
			age:  day,
			want: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PredictSuccess(tt.members, now.Add(-tt.age), now), 0.001)
		})
	}
}
