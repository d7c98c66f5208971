package squad

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/kezzyngotho/aura/internal/kv"
)

var errSquadMissing = errors.New("squad missing")

// Repository handles squad data persistence
type Repository struct {
	store kv.Store
}

// NewRepository creates a new squad repository
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// Create stores a new squad. It fails with kv.ErrConflict if the id is taken.
func (r *Repository) Create(ctx context.Context, squad *Squad) error {
	if err := r.store.Put(ctx, kv.SquadKey(squad.ID), squad, kv.IfRevision(0)); err != nil {
		return fmt.Errorf("failed to create squad: %w", err)
	}
	return nil
}

// GetByID retrieves a squad by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Squad, error) {
	squad := &Squad{}
	if _, err := r.store.Get(ctx, kv.SquadKey(id), squad); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get squad: %w", err)
	}
	return squad, nil
}

// Update applies fn to the stored squad under optimistic concurrency.
// It returns nil, nil when the squad does not exist. Errors from fn are
// returned untouched and nothing is written.
func (r *Repository) Update(ctx context.Context, id string, fn func(*Squad) error) (*Squad, error) {
	squad, err := kv.Update(ctx, r.store, kv.SquadKey(id), func(s *Squad, exists bool) error {
		if !exists {
			return errSquadMissing
		}
		return fn(s)
	})
	if errors.Is(err, errSquadMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &squad, nil
}

// AddToIndex records squadID under a user index key and reports whether it was absent
func (r *Repository) AddToIndex(ctx context.Context, key, squadID string) (bool, error) {
	var added bool
	_, err := kv.Update(ctx, r.store, key, func(ids *[]string, _ bool) error {
		added = !slices.Contains(*ids, squadID)
		if added {
			*ids = append(*ids, squadID)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to index squad: %w", err)
	}
	return added, nil
}

// RemoveFromIndex drops squadID from a user index key, deleting the key once empty
func (r *Repository) RemoveFromIndex(ctx context.Context, key, squadID string) error {
	ids, err := kv.Update(ctx, r.store, key, func(ids *[]string, _ bool) error {
		*ids = slices.DeleteFunc(*ids, func(id string) bool { return id == squadID })
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to unindex squad: %w", err)
	}

	if len(ids) == 0 {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete squad index: %w", err)
		}
	}
	return nil
}

// ListIndex returns the squad ids stored under a user index key
func (r *Repository) ListIndex(ctx context.Context, key string) ([]string, error) {
	var ids []string
	if _, err := r.store.Get(ctx, key, &ids); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list squad index: %w", err)
	}
	return ids, nil
}

// AppendContribution appends an entry to the member's contribution log
func (r *Repository) AppendContribution(ctx context.Context, c *Contribution) error {
	if err := kv.Append(ctx, r.store, kv.ContributionKey(c.SquadID, c.UserID), *c); err != nil {
		return fmt.Errorf("failed to log contribution: %w", err)
	}
	return nil
}

// ListContributions returns a member's contribution log, oldest first
func (r *Repository) ListContributions(ctx context.Context, squadID, userID string) ([]Contribution, error) {
	var entries []Contribution
	if _, err := r.store.Get(ctx, kv.ContributionKey(squadID, userID), &entries); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []Contribution{}, nil
		}
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	return entries, nil
}
