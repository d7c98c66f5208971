package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/kezzyngotho/aura/internal/kv"
)

var errMessageMissing = errors.New("message missing")

// Repository handles chat message persistence
type Repository struct {
	store kv.Store
}

// NewRepository creates a new chat repository
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// Create stores msg and appends it to its squad's message list
func (r *Repository) Create(ctx context.Context, msg *Message) error {
	if err := r.store.Put(ctx, kv.ChatMessageKey(msg.ID), msg, kv.IfRevision(0)); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	if err := kv.Append(ctx, r.store, kv.SquadChatKey(msg.SquadID), msg.ID); err != nil {
		return fmt.Errorf("failed to index message: %w", err)
	}
	return nil
}

// GetByID retrieves a message by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Message, error) {
	msg := &Message{}
	if _, err := r.store.Get(ctx, kv.ChatMessageKey(id), msg); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return msg, nil
}

// Update applies fn to the stored message. It returns nil, nil when the
// message does not exist.
func (r *Repository) Update(ctx context.Context, id string, fn func(*Message) error) (*Message, error) {
	msg, err := kv.Update(ctx, r.store, kv.ChatMessageKey(id), func(m *Message, exists bool) error {
		if !exists {
			return errMessageMissing
		}
		return fn(m)
	})
	if errors.Is(err, errMessageMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListIDs returns a squad's message ids in posting order
func (r *Repository) ListIDs(ctx context.Context, squadID string) ([]string, error) {
	var ids []string
	if _, err := r.store.Get(ctx, kv.SquadChatKey(squadID), &ids); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return ids, nil
}
