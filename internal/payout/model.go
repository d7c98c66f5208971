package payout

import "time"

// Status tracks how far a payout got
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Payout records one distribution of a reward pool across a squad
type Payout struct {
	ID          string       `json:"id"`
	SquadID     string       `json:"squad_id"`
	RequestedBy string       `json:"requested_by"`
	TotalAmount float64      `json:"total_amount"`
	Strategy    StrategyType `json:"strategy"`
	Lines       []Line       `json:"lines"`
	Status      Status       `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Line is a single member's cut of a payout. TxHash is empty when the
// mint did not go through.
type Line struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
	TxHash string  `json:"tx_hash"`
}

// Minted counts lines that carry a transaction hash
func (p *Payout) Minted() int {
	n := 0
	for _, l := range p.Lines {
		if l.TxHash != "" {
			n++
		}
	}
	return n
}
