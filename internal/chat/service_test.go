package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kezzyngotho/aura/internal/kv"
	"github.com/kezzyngotho/aura/internal/squad"
)

func newTestService(t *testing.T) (*Service, *squad.Service, string) {
	t.Helper()
	store := kv.NewMemoryStore()
	squads := squad.NewService(squad.NewRepository(store), zap.NewNop())

	sq, err := squads.CreateSquad(context.Background(), "lead", &squad.CreateSquadRequest{Name: "Study Circle"})
	require.NoError(t, err)
	_, err = squads.AddMember(context.Background(), sq.ID, "lead", &squad.AddMemberRequest{UserID: "ana"})
	require.NoError(t, err)

	svc := NewService(NewRepository(store), squads, zap.NewNop())
	tick := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return svc, squads, sq.ID
}

func TestAddMessage(t *testing.T) {
	svc, squads, squadID := newTestService(t)
	ctx := context.Background()

	msg, err := svc.AddMessage(ctx, squadID, "ana", "  hello team  ")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "hello team", msg.Content)
	assert.Equal(t, "ana", msg.AuthorID)
	assert.False(t, msg.Edited)

	got, err := svc.GetMessage(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, msg.Content, got.Content)

	entries, err := squads.GetContributions(ctx, squadID, "ana")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Points)
	assert.EqualValues(t, "message", entries[0].Type)

	sq, err := squads.GetSquad(ctx, squadID)
	require.NoError(t, err)
	assert.Equal(t, 1, sq.Member("ana").ContributionScore)
}

func TestAddMessage_Rejections(t *testing.T) {
	svc, _, squadID := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		squadID string
		author  string
		content string
		want    error
	}{
		{"unknown squad", "missing", "ana", "hi", squad.ErrSquadNotFound},
		{"not a member", squadID, "stranger", "hi", ErrNotMember},
		{"blank content", squadID, "ana", "   ", ErrEmptyContent},
		{"too long", squadID, "ana", strings.Repeat("x", maxContentLength+1), ErrContentTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddMessage(ctx, tt.squadID, tt.author, tt.content)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

type failingSquads struct {
	squad *squad.Squad
}

func (f failingSquads) GetSquad(context.Context, string) (*squad.Squad, error) {
	return f.squad, nil
}

func (f failingSquads) LogContribution(context.Context, string, string, *squad.LogContributionRequest) (*squad.Contribution, error) {
	return nil, errors.New("store offline")
}

func TestAddMessage_CreditFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sq := &squad.Squad{ID: "sq-1", LeaderID: "lead", Members: []squad.Member{{UserID: "lead"}}}
	svc := NewService(NewRepository(kv.NewMemoryStore()), failingSquads{squad: sq}, zap.New(core))

	msg, err := svc.AddMessage(context.Background(), "sq-1", "lead", "still posted")
	require.NoError(t, err)
	assert.Equal(t, "still posted", msg.Content)
	assert.Equal(t, 1, logs.FilterMessage("failed to credit chat message").Len())
}

func TestEditMessage(t *testing.T) {
	svc, _, squadID := newTestService(t)
	ctx := context.Background()

	msg, err := svc.AddMessage(ctx, squadID, "ana", "frist")
	require.NoError(t, err)

	_, err = svc.EditMessage(ctx, msg.ID, "lead", "hijack")
	assert.ErrorIs(t, err, ErrNotAuthor)

	edited, err := svc.EditMessage(ctx, msg.ID, "ana", "first")
	require.NoError(t, err)
	assert.Equal(t, "first", edited.Content)
	assert.True(t, edited.Edited)
	assert.True(t, edited.UpdatedAt.After(edited.CreatedAt))

	_, err = svc.EditMessage(ctx, "missing", "ana", "x")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestReactions(t *testing.T) {
	svc, _, squadID := newTestService(t)
	ctx := context.Background()

	msg, err := svc.AddMessage(ctx, squadID, "lead", "we shipped")
	require.NoError(t, err)

	_, err = svc.AddReaction(ctx, msg.ID, "🔥", "ana")
	require.NoError(t, err)
	_, err = svc.AddReaction(ctx, msg.ID, "🔥", "bo")
	require.NoError(t, err)
	got, err := svc.AddReaction(ctx, msg.ID, "🔥", "ana")
	require.NoError(t, err)
	assert.Equal(t, []string{"ana", "bo"}, got.Reactions["🔥"])

	got, err = svc.RemoveReaction(ctx, msg.ID, "🔥", "ana")
	require.NoError(t, err)
	assert.Equal(t, []string{"bo"}, got.Reactions["🔥"])

	got, err = svc.RemoveReaction(ctx, msg.ID, "🔥", "bo")
	require.NoError(t, err)
	assert.NotContains(t, got.Reactions, "🔥")

	_, err = svc.AddReaction(ctx, msg.ID, " ", "ana")
	assert.ErrorIs(t, err, ErrInvalidEmoji)
	_, err = svc.AddReaction(ctx, "missing", "👍", "ana")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestGetSquadChat(t *testing.T) {
	svc, _, squadID := newTestService(t)
	ctx := context.Background()

	messages, err := svc.GetSquadChat(ctx, squadID, 0)
	require.NoError(t, err)
	assert.Empty(t, messages)

	for i := 1; i <= 5; i++ {
		_, err := svc.AddMessage(ctx, squadID, "ana", fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	messages, err = svc.GetSquadChat(ctx, squadID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 5)
	assert.Equal(t, "msg 1", messages[0].Content)

	messages, err = svc.GetSquadChat(ctx, squadID, 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "msg 4", messages[0].Content)
	assert.Equal(t, "msg 5", messages[1].Content)

	_, err = svc.GetSquadChat(ctx, "missing", 10)
	assert.ErrorIs(t, err, squad.ErrSquadNotFound)
}
