package payout

import "time"

// CreatePayoutRequest represents the request to pay out a squad
type CreatePayoutRequest struct {
	TotalAmount float64      `json:"total_amount" validate:"required,gt=0"`
	Strategy    StrategyType `json:"strategy,omitempty" validate:"omitempty,oneof=shares optimized even"`
	Optimize    bool         `json:"optimize"` // shorthand for strategy "optimized"
}

func (r *CreatePayoutRequest) strategy() StrategyType {
	if r.Strategy == "" && r.Optimize {
		return StrategyOptimized
	}
	return r.Strategy
}

// PayoutResponse represents the response for a payout
type PayoutResponse struct {
	ID          string       `json:"id"`
	SquadID     string       `json:"squad_id"`
	RequestedBy string       `json:"requested_by"`
	TotalAmount float64      `json:"total_amount"`
	Strategy    StrategyType `json:"strategy"`
	Lines       []Line       `json:"lines"`
	Minted      int          `json:"minted"`
	Status      Status       `json:"status"`
	CreatedAt   string       `json:"created_at"`
}

// ToResponse converts a Payout to a PayoutResponse
func (p *Payout) ToResponse() *PayoutResponse {
	return &PayoutResponse{
		ID:          p.ID,
		SquadID:     p.SquadID,
		RequestedBy: p.RequestedBy,
		TotalAmount: p.TotalAmount,
		Strategy:    p.Strategy,
		Lines:       p.Lines,
		Minted:      p.Minted(),
		Status:      p.Status,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
