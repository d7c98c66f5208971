package chat

import (
	"slices"
	"time"
)

// Message represents a chat message posted to a squad
type Message struct {
	ID        string              `json:"id"`
	SquadID   string              `json:"squad_id"`
	AuthorID  string              `json:"author_id"`
	Content   string              `json:"content"`
	Reactions map[string][]string `json:"reactions"` // emoji -> sorted user ids
	Edited    bool                `json:"edited"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// addReaction records userID under emoji and reports whether anything changed
func (m *Message) addReaction(emoji, userID string) bool {
	if m.Reactions == nil {
		m.Reactions = make(map[string][]string)
	}
	users := m.Reactions[emoji]
	i, found := slices.BinarySearch(users, userID)
	if found {
		return false
	}
	m.Reactions[emoji] = slices.Insert(users, i, userID)
	return true
}

// removeReaction drops userID from emoji and reports whether anything changed
func (m *Message) removeReaction(emoji, userID string) bool {
	users := m.Reactions[emoji]
	i, found := slices.BinarySearch(users, userID)
	if !found {
		return false
	}
	users = slices.Delete(users, i, i+1)
	if len(users) == 0 {
		delete(m.Reactions, emoji)
	} else {
		m.Reactions[emoji] = users
	}
	return true
}
