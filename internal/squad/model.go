package squad

import (
	"time"

	"github.com/kezzyngotho/aura/internal/scoring"
)

// Role is a member's role inside a squad
type Role = scoring.Role

const (
	RoleLeader      = scoring.RoleLeader
	RoleAssistant   = scoring.RoleAssistant
	RoleContributor = scoring.RoleContributor
)

// ContributionType classifies a logged contribution
type ContributionType = scoring.ContributionType

// Status represents the lifecycle of a squad
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusCompleted:
		return true
	}
	return false
}

// Default earnings shares by role
const (
	leaderShare      = 40
	assistantShare   = 30
	contributorShare = 20
)

// Squad represents a squad in the system
type Squad struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	LeaderID      string    `json:"leader_id"`
	Tags          []string  `json:"tags"`
	Members       []Member  `json:"members"`
	Status        Status    `json:"status"`
	TotalEarnings float64   `json:"total_earnings"`
	TaskCount     int       `json:"task_count"`
	Rating        float64   `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Member represents a user's membership in a squad
type Member struct {
	UserID            string    `json:"user_id"`
	Role              Role      `json:"role"`
	JoinedAt          time.Time `json:"joined_at"`
	ContributionScore int       `json:"contribution_score"`
	EarningsShare     int       `json:"earnings_share"`
}

// Contribution is one entry of the append-only per-member contribution log
type Contribution struct {
	SquadID     string           `json:"squad_id"`
	UserID      string           `json:"user_id"`
	Type        ContributionType `json:"type"`
	Points      int              `json:"points"`
	Timestamp   time.Time        `json:"timestamp"`
	Description string           `json:"description"`
}

// Member returns the membership of userID, or nil
func (s *Squad) Member(userID string) *Member {
	for i := range s.Members {
		if s.Members[i].UserID == userID {
			return &s.Members[i]
		}
	}
	return nil
}

// HasMember reports whether userID belongs to the squad
func (s *Squad) HasMember(userID string) bool {
	return s.Member(userID) != nil
}

func (s *Squad) rebalance() {
	shares := make([]int, len(s.Members))
	for i, m := range s.Members {
		shares[i] = m.EarningsShare
	}
	for i, share := range scoring.RebalanceShares(shares) {
		s.Members[i].EarningsShare = share
	}
}

// memberInputs snapshots the roster for the scoring engine. history may be nil.
func (s *Squad) memberInputs(history map[string][]Contribution) []scoring.MemberInput {
	inputs := make([]scoring.MemberInput, len(s.Members))
	for i, m := range s.Members {
		inputs[i] = scoring.MemberInput{
			UserID:            m.UserID,
			Role:              m.Role,
			ContributionScore: m.ContributionScore,
			EarningsShare:     m.EarningsShare,
			Contributions:     ContributionInputs(history[m.UserID]),
		}
	}
	return inputs
}

// ContributionInputs converts logged contributions for the scoring engine
func ContributionInputs(entries []Contribution) []scoring.ContributionInput {
	if len(entries) == 0 {
		return nil
	}
	out := make([]scoring.ContributionInput, len(entries))
	for i, c := range entries {
		out[i] = scoring.ContributionInput{
			Type:      c.Type,
			Points:    c.Points,
			Timestamp: c.Timestamp,
		}
	}
	return out
}
