package payout

import (
	"context"
	"errors"
	"fmt"

	"github.com/kezzyngotho/aura/internal/kv"
)

var errPayoutMissing = errors.New("payout missing")

// Repository handles payout persistence
type Repository struct {
	store kv.Store
}

// NewRepository creates a new payout repository
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// Create stores p and indexes it under its squad
func (r *Repository) Create(ctx context.Context, p *Payout) error {
	if err := r.store.Put(ctx, kv.PayoutKey(p.ID), p, kv.IfRevision(0)); err != nil {
		return fmt.Errorf("failed to create payout: %w", err)
	}
	if err := kv.Append(ctx, r.store, kv.SquadPayoutsKey(p.SquadID), p.ID); err != nil {
		return fmt.Errorf("failed to index payout: %w", err)
	}
	return nil
}

// Update applies fn to the stored payout. A missing payout yields nil, nil.
func (r *Repository) Update(ctx context.Context, id string, fn func(*Payout) error) (*Payout, error) {
	p, err := kv.Update(ctx, r.store, kv.PayoutKey(id), func(p *Payout, exists bool) error {
		if !exists {
			return errPayoutMissing
		}
		return fn(p)
	})
	if errors.Is(err, errPayoutMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update payout: %w", err)
	}
	return &p, nil
}

// GetByID retrieves a payout by ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Payout, error) {
	p := &Payout{}
	if _, err := r.store.Get(ctx, kv.PayoutKey(id), p); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payout: %w", err)
	}
	return p, nil
}

// ListBySquad retrieves a squad's payouts, newest first
func (r *Repository) ListBySquad(ctx context.Context, squadID string) ([]*Payout, error) {
	var ids []string
	if _, err := r.store.Get(ctx, kv.SquadPayoutsKey(squadID), &ids); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []*Payout{}, nil
		}
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}

	payouts := make([]*Payout, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		p, err := r.GetByID(ctx, ids[i])
		if err != nil {
			return nil, err
		}
		if p != nil {
			payouts = append(payouts, p)
		}
	}
	return payouts, nil
}
