package chat

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kezzyngotho/aura/internal/scoring"
	"github.com/kezzyngotho/aura/internal/squad"
)

// Common errors
var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotMember       = errors.New("only squad members can post")
	ErrNotAuthor       = errors.New("only the author can edit this message")
	ErrEmptyContent    = errors.New("message content is required")
	ErrContentTooLong  = errors.New("message content is too long")
	ErrInvalidEmoji    = errors.New("emoji is required")
)

const (
	DefaultLimit     = 50
	MaxLimit         = 200
	maxContentLength = 4000
	maxEmojiLength   = 16
	messagePoints    = 1
)

// Squads is the part of the squad service chat depends on
type Squads interface {
	GetSquad(ctx context.Context, id string) (*squad.Squad, error)
	LogContribution(ctx context.Context, squadID, userID string, req *squad.LogContributionRequest) (*squad.Contribution, error)
}

// Service handles chat business logic
type Service struct {
	repo   *Repository
	squads Squads
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new chat service
func NewService(repo *Repository, squads Squads, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		squads: squads,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}

func validateEmoji(emoji string) (string, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" || utf8.RuneCountInString(emoji) > maxEmojiLength {
		return "", ErrInvalidEmoji
	}
	return emoji, nil
}

// AddMessage posts content to a squad and credits the author one message point
func (s *Service) AddMessage(ctx context.Context, squadID, authorID, content string) (*Message, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	sq, err := s.squads.GetSquad(ctx, squadID)
	if err != nil {
		return nil, err
	}
	if !sq.HasMember(authorID) {
		return nil, ErrNotMember
	}

	now := s.now()
	msg := &Message{
		ID:        uuid.NewString(),
		SquadID:   squadID,
		AuthorID:  authorID,
		Content:   content,
		Reactions: map[string][]string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	_, err = s.squads.LogContribution(ctx, squadID, authorID, &squad.LogContributionRequest{
		Type:        scoring.ContributionMessage,
		Points:      messagePoints,
		Description: "chat message " + msg.ID,
	})
	if err != nil {
		s.logger.Warn("failed to credit chat message",
			zap.String("squad_id", squadID),
			zap.String("message_id", msg.ID),
			zap.Error(err),
		)
	}

	return msg, nil
}

// GetMessage retrieves a message by its ID
func (s *Service) GetMessage(ctx context.Context, id string) (*Message, error) {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	return msg, nil
}

// EditMessage replaces the content of a message. Only its author may edit it.
func (s *Service) EditMessage(ctx context.Context, messageID, userID, content string) (*Message, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	msg, err := s.repo.Update(ctx, messageID, func(m *Message) error {
		if m.AuthorID != userID {
			return ErrNotAuthor
		}
		m.Content = content
		m.Edited = true
		m.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	return msg, nil
}

// AddReaction records userID reacting with emoji. Repeating it is a no-op.
func (s *Service) AddReaction(ctx context.Context, messageID, emoji, userID string) (*Message, error) {
	emoji, err := validateEmoji(emoji)
	if err != nil {
		return nil, err
	}

	msg, err := s.repo.Update(ctx, messageID, func(m *Message) error {
		m.addReaction(emoji, userID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	return msg, nil
}

// RemoveReaction takes back userID's emoji reaction, if any
func (s *Service) RemoveReaction(ctx context.Context, messageID, emoji, userID string) (*Message, error) {
	emoji, err := validateEmoji(emoji)
	if err != nil {
		return nil, err
	}

	msg, err := s.repo.Update(ctx, messageID, func(m *Message) error {
		m.removeReaction(emoji, userID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	return msg, nil
}

// GetSquadChat returns the last limit messages of a squad, oldest first
func (s *Service) GetSquadChat(ctx context.Context, squadID string, limit int) ([]*Message, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	if _, err := s.squads.GetSquad(ctx, squadID); err != nil {
		return nil, err
	}

	ids, err := s.repo.ListIDs(ctx, squadID)
	if err != nil {
		return nil, err
	}
	if len(ids) > limit {
		ids = ids[len(ids)-limit:]
	}

	messages := make([]*Message, 0, len(ids))
	for _, id := range ids {
		msg, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if msg == nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
