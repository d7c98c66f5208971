package profile

import "github.com/kezzyngotho/aura/internal/scoring"

// Profile is a user's scoring profile across every squad they belong to
type Profile struct {
	UserID     string `json:"user_id"`
	SquadCount int    `json:"squad_count"`
	Leading    int    `json:"leading"`
	scoring.MemberProfile
}

// SquadSummary is a user's standing in one squad
type SquadSummary struct {
	SquadID           string       `json:"squad_id"`
	Name              string       `json:"name"`
	Status            string       `json:"status"`
	Role              scoring.Role `json:"role"`
	EarningsShare     int          `json:"earnings_share"`
	ContributionScore int          `json:"contribution_score"`
}
