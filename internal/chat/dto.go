package chat

import "time"

// PostMessageRequest represents the request to post a chat message
type PostMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// EditMessageRequest represents the request to edit a chat message
type EditMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// ReactionRequest represents the request to react to a message
type ReactionRequest struct {
	Emoji string `json:"emoji" validate:"required"`
}

// MessageResponse represents the response for a chat message
type MessageResponse struct {
	ID        string              `json:"id"`
	SquadID   string              `json:"squad_id"`
	AuthorID  string              `json:"author_id"`
	Content   string              `json:"content"`
	Reactions map[string][]string `json:"reactions"`
	Edited    bool                `json:"edited"`
	CreatedAt string              `json:"created_at"`
	UpdatedAt string              `json:"updated_at"`
}

// ToResponse converts a Message to MessageResponse
func (m *Message) ToResponse() *MessageResponse {
	reactions := m.Reactions
	if reactions == nil {
		reactions = map[string][]string{}
	}
	return &MessageResponse{
		ID:        m.ID,
		SquadID:   m.SquadID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
		Reactions: reactions,
		Edited:    m.Edited,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
		UpdatedAt: m.UpdatedAt.Format(time.RFC3339),
	}
}
