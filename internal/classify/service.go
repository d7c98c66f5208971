// Package classify routes free-text queries through the language model and
// answers with a greeting, a conversational reply or a matched squad template.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kezzyngotho/aura/internal/llm"
)

// Common errors
var (
	ErrEmptyQuery     = errors.New("query must not be empty")
	ErrMalformedReply = errors.New("model reply is not a valid classification")
)

// Kind is the branch a query ends in
type Kind string

const (
	KindGreeting       Kind = "greeting"
	KindConversational Kind = "conversational"
	KindSquadMatch     Kind = "squad_match"
)

// Result is the answer to a dispatched query
type Result struct {
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	SquadType SquadType `json:"squad_type,omitempty"`
	Template  *Template `json:"template,omitempty"`
	Intent    string    `json:"intent,omitempty"`
	// Personalized is false when the fallback invitation was used
	Personalized bool `json:"personalized"`
}

// Recorder counts dispatched queries
type Recorder interface {
	RecordQuery(ctx context.Context, userID, category string) error
}

type classification struct {
	Type      string `json:"type"`
	Reply     string `json:"reply"`
	SquadType string `json:"squad_type"`
	Intent    string `json:"intent"`
}

// Service classifies queries and dispatches them to templates
type Service struct {
	llm      llm.Client
	recorder Recorder
	logger   *zap.Logger
}

// NewService creates a new classification service
func NewService(client llm.Client, recorder Recorder, logger *zap.Logger) *Service {
	return &Service{llm: client, recorder: recorder, logger: logger}
}

// Dispatch classifies query and builds the reply for its branch
func (s *Service) Dispatch(ctx context.Context, userID, query string) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	raw, err := s.llm.Complete(ctx, buildClassificationPrompt(query))
	if err != nil {
		return nil, fmt.Errorf("failed to classify query: %w", err)
	}

	c, err := parseClassification(raw)
	if err != nil {
		s.logger.Warn("unparseable classification", zap.String("reply", raw), zap.Error(err))
		return nil, err
	}

	var result *Result
	switch Kind(c.Type) {
	case KindGreeting, KindConversational:
		if strings.TrimSpace(c.Reply) == "" {
			return nil, fmt.Errorf("%w: %s without reply", ErrMalformedReply, c.Type)
		}
		result = &Result{Kind: Kind(c.Type), Message: c.Reply, Personalized: true}
	case KindSquadMatch:
		result = s.matchSquad(ctx, c)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrMalformedReply, c.Type)
	}

	s.record(ctx, userID, result)
	return result, nil
}

func (s *Service) matchSquad(ctx context.Context, c classification) *Result {
	squadType := ParseSquadType(c.SquadType)
	tmpl := TemplateFor(squadType)
	intent := strings.TrimSpace(c.Intent)

	result := &Result{
		Kind:      KindSquadMatch,
		SquadType: squadType,
		Template:  &tmpl,
		Intent:    intent,
	}

	message, err := s.llm.Complete(ctx, buildPersonalizationPrompt(tmpl, intent))
	if err != nil || strings.TrimSpace(message) == "" {
		s.logger.Info("personalization failed, using fallback",
			zap.String("squad_type", string(squadType)),
			zap.Error(err),
		)
		result.Message = FallbackMessage(tmpl)
		return result
	}

	result.Message = strings.TrimSpace(message)
	result.Personalized = true
	return result
}

func (s *Service) record(ctx context.Context, userID string, result *Result) {
	if s.recorder == nil {
		return
	}
	category := string(result.Kind)
	if result.Kind == KindSquadMatch {
		category = string(result.SquadType)
	}
	if err := s.recorder.RecordQuery(ctx, userID, category); err != nil {
		s.logger.Warn("failed to record query", zap.String("category", category), zap.Error(err))
	}
}

// parseClassification decodes the model reply, tolerating a markdown code fence
func parseClassification(raw string) (classification, error) {
	var c classification
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &c); err != nil {
		return c, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	c.Type = strings.ToLower(strings.TrimSpace(c.Type))
	return c, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
