package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kezzyngotho/aura/internal/kv"
	"github.com/kezzyngotho/aura/internal/scoring"
	"github.com/kezzyngotho/aura/internal/squad"
	"github.com/kezzyngotho/aura/pkg/middleware"
	"github.com/kezzyngotho/aura/pkg/response"
)

func newTestService(t *testing.T) (*Service, *squad.Service) {
	t.Helper()
	squads := squad.NewService(squad.NewRepository(kv.NewMemoryStore()), zap.NewNop())
	return NewService(squads, zap.NewNop()), squads
}

func TestGetProfile_AcrossSquads(t *testing.T) {
	svc, squads := newTestService(t)
	ctx := context.Background()

	own, err := squads.CreateSquad(ctx, "ana", &squad.CreateSquadRequest{Name: "Study Circle"})
	require.NoError(t, err)
	other, err := squads.CreateSquad(ctx, "lead", &squad.CreateSquadRequest{Name: "Launch Crew"})
	require.NoError(t, err)
	_, err = squads.AddMember(ctx, other.ID, "lead", &squad.AddMemberRequest{UserID: "ana", Role: squad.RoleAssistant})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err = squads.LogContribution(ctx, own.ID, "ana", &squad.LogContributionRequest{Type: "solution", Points: 10})
		require.NoError(t, err)
	}
	_, err = squads.LogContribution(ctx, other.ID, "ana", &squad.LogContributionRequest{Type: "review", Points: 10})
	require.NoError(t, err)
	_, err = squads.LogContribution(ctx, other.ID, "lead", &squad.LogContributionRequest{Type: "edit", Points: 20})
	require.NoError(t, err)

	p, err := svc.GetProfile(ctx, "ana")
	require.NoError(t, err)

	assert.Equal(t, "ana", p.UserID)
	assert.Equal(t, 2, p.SquadCount)
	assert.Equal(t, 1, p.Leading)
	assert.Equal(t, 5, p.ContributionCount)
	assert.Equal(t, 50.0, p.AverageQuality)
	assert.Equal(t, []string{"problem-solving", "quality-assurance"}, p.Skills)
	assert.Equal(t, scoring.SpecializationGeneralist, p.Specialization)
	assert.Equal(t, scoring.RoleContributor, p.RecommendedRole)
}

func TestGetProfile_NoSquads(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.GetProfile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, p.SquadCount)
	assert.Equal(t, 0, p.ContributionCount)
	assert.Equal(t, 20.0, p.Availability)

	_, err = svc.GetProfile(context.Background(), " ")
	assert.ErrorIs(t, err, ErrUserRequired)
}

func TestListSquads(t *testing.T) {
	svc, squads := newTestService(t)
	ctx := context.Background()

	sq, err := squads.CreateSquad(ctx, "lead", &squad.CreateSquadRequest{Name: "Trail Crew"})
	require.NoError(t, err)
	_, err = squads.AddMember(ctx, sq.ID, "lead", &squad.AddMemberRequest{UserID: "ana"})
	require.NoError(t, err)

	summaries, err := svc.ListSquads(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Trail Crew", summaries[0].Name)
	assert.Equal(t, squad.RoleContributor, summaries[0].Role)
	assert.Equal(t, "active", summaries[0].Status)
}

func TestHandler_Profiles(t *testing.T) {
	svc, squads := newTestService(t)
	_, err := squads.CreateSquad(context.Background(), "ana", &squad.CreateSquadRequest{Name: "Study Circle"})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.DevUserMiddleware)
	r.Mount("/profiles", NewHandler(svc).Routes())

	for _, path := range []string{"/profiles/me", "/profiles/ana", "/profiles/ana/squads"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set(middleware.DevUserHeader, "ana")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var resp response.APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
		})
	}
}
