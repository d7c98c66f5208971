// Package scoring holds the pure heuristics behind squad health, contribution
// analysis, reward distribution, success prediction and member matching.
// Nothing here performs I/O; callers pass snapshots and persist the results.
package scoring

import (
	"math"
	"time"
)

// Role is a member's role inside a squad.
type Role string

const (
	RoleLeader      Role = "leader"
	RoleAssistant   Role = "assistant"
	RoleContributor Role = "contributor"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleLeader, RoleAssistant, RoleContributor:
		return true
	}
	return false
}

// ContributionType classifies a logged unit of work.
type ContributionType string

const (
	ContributionMessage  ContributionType = "message"
	ContributionSolution ContributionType = "solution"
	ContributionReview   ContributionType = "review"
	ContributionEdit     ContributionType = "edit"
)

// Valid reports whether t is a known contribution type.
func (t ContributionType) Valid() bool {
	switch t {
	case ContributionMessage, ContributionSolution, ContributionReview, ContributionEdit:
		return true
	}
	return false
}

// Level is a coarse low/medium/high rating.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

var levelWeights = map[Level]float64{
	LevelLow:    0.5,
	LevelMedium: 0.75,
	LevelHigh:   1.0,
}

// ContributionInput is one logged contribution as seen by the engine.
type ContributionInput struct {
	Type      ContributionType
	Points    int
	Timestamp time.Time
}

// MemberInput is a squad member snapshot.
// Contributions is only consulted by OptimizeRewards.
type MemberInput struct {
	UserID            string
	Role              Role
	ContributionScore int
	EarningsShare     int
	Contributions     []ContributionInput
}

func clamp(lo, hi, v float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// roundToTwoDecimals rounds a float to 2 decimal places
func roundToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
