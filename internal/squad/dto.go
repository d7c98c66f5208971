package squad

import "time"

// CreateSquadRequest represents the request to create a new squad
type CreateSquadRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// AddMemberRequest represents the request to add a member to a squad
type AddMemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Role   Role   `json:"role"`
}

// UpdateStatusRequest represents the request to change a squad's status
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

// LogContributionRequest represents a unit of work to log for a member
type LogContributionRequest struct {
	Type        ContributionType `json:"type" validate:"required"`
	Points      int              `json:"points" validate:"min=0"`
	Description string           `json:"description"`
}

// SquadResponse represents the response for a squad
type SquadResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	LeaderID      string            `json:"leader_id"`
	Tags          []string          `json:"tags"`
	Status        Status            `json:"status"`
	TotalEarnings float64           `json:"total_earnings"`
	TaskCount     int               `json:"task_count"`
	Rating        float64           `json:"rating"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
	Members       []*MemberResponse `json:"members"`
}

// MemberResponse represents a member in a squad response
type MemberResponse struct {
	UserID            string `json:"user_id"`
	Role              Role   `json:"role"`
	JoinedAt          string `json:"joined_at"`
	ContributionScore int    `json:"contribution_score"`
	EarningsShare     int    `json:"earnings_share"`
}

// PredictionResponse wraps a success probability
type PredictionResponse struct {
	SquadID     string  `json:"squad_id"`
	Probability float64 `json:"probability"`
}

// ToResponse converts a Squad model to a SquadResponse DTO
func (s *Squad) ToResponse() *SquadResponse {
	resp := &SquadResponse{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		LeaderID:      s.LeaderID,
		Tags:          s.Tags,
		Status:        s.Status,
		TotalEarnings: s.TotalEarnings,
		TaskCount:     s.TaskCount,
		Rating:        s.Rating,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
		Members:       make([]*MemberResponse, len(s.Members)),
	}
	for i := range s.Members {
		resp.Members[i] = s.Members[i].ToResponse()
	}
	return resp
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		UserID:            m.UserID,
		Role:              m.Role,
		JoinedAt:          m.JoinedAt.Format(time.RFC3339),
		ContributionScore: m.ContributionScore,
		EarningsShare:     m.EarningsShare,
	}
}
