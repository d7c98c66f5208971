package squad

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kezzyngotho/aura/pkg/middleware"
	"github.com/kezzyngotho/aura/pkg/response"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, _ := newTestService(t)
	r := chi.NewRouter()
	r.Use(middleware.DevUserMiddleware)
	r.Mount("/squads", NewHandler(svc).Routes())
	return r
}

func do(t *testing.T, h http.Handler, method, path, userID string, body any) (*httptest.ResponseRecorder, response.APIResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(middleware.DevUserHeader, userID)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandler_SquadLifecycle(t *testing.T) {
	h := newTestRouter(t)

	rec, resp := do(t, h, http.MethodPost, "/squads", "lead", CreateSquadRequest{Name: "Launch Pad"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := resp.Data.(map[string]any)["id"].(string)

	rec, _ = do(t, h, http.MethodPost, "/squads/"+id+"/members", "lead", AddMemberRequest{UserID: "ana", Role: RoleAssistant})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, resp = do(t, h, http.MethodPost, "/squads/"+id+"/members", "lead", AddMemberRequest{UserID: "ana"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", resp.Error.Code)

	rec, _ = do(t, h, http.MethodDelete, "/squads/"+id+"/members/lead", "lead", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/squads/"+id+"/contributions", "ana", LogContributionRequest{Type: "solution", Points: 10})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, resp = do(t, h, http.MethodGet, "/squads/"+id+"/rewards?total=1000", "lead", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rewards := resp.Data.([]any)
	require.Len(t, rewards, 2)
	assert.Equal(t, 400.0, rewards[0].(map[string]any)["amount"])
	assert.Equal(t, 450.0, rewards[1].(map[string]any)["amount"])

	rec, resp = do(t, h, http.MethodGet, "/squads", "ana", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, resp.Meta.Total)

	rec, _ = do(t, h, http.MethodGet, "/squads/"+id+"/health", "lead", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Errors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{"missing squad", http.MethodGet, "/squads/nope", nil, http.StatusNotFound},
		{"blank name", http.MethodPost, "/squads", CreateSquadRequest{}, http.StatusBadRequest},
		{"bad total", http.MethodGet, "/squads/nope/rewards?total=lots", nil, http.StatusBadRequest},
		{"missing user id", http.MethodPost, "/squads/nope/members", AddMemberRequest{}, http.StatusBadRequest},
		{"bad status", http.MethodPut, "/squads/nope/status", UpdateStatusRequest{Status: "paused"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := do(t, h, tt.method, tt.path, "lead", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestHandler_NonFiniteTotalIsRejected(t *testing.T) {
	h := newTestRouter(t)
	rec, resp := do(t, h, http.MethodPost, "/squads", "lead", CreateSquadRequest{Name: "Launch Pad"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := resp.Data.(map[string]any)["id"].(string)

	for _, path := range []string{
		"/squads/" + id + "/rewards?total=NaN",
		"/squads/" + id + "/rewards?total=Inf",
		"/squads/" + id + "/rewards/optimized?total=NaN",
		"/squads/" + id + "/rewards/optimized?total=-Inf",
	} {
		rec, resp := do(t, h, http.MethodGet, path, "lead", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, path)
		require.NotNil(t, resp.Error, path)
		assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code, path)
	}
}

func TestHandler_MembershipRequiresLeader(t *testing.T) {
	h := newTestRouter(t)
	rec, resp := do(t, h, http.MethodPost, "/squads", "lead", CreateSquadRequest{Name: "Launch Pad"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := resp.Data.(map[string]any)["id"].(string)

	rec, _ = do(t, h, http.MethodPost, "/squads/"+id+"/members", "lead", AddMemberRequest{UserID: "ana"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, resp = do(t, h, http.MethodPost, "/squads/"+id+"/members", "mallory", AddMemberRequest{UserID: "mallory"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	rec, _ = do(t, h, http.MethodPut, "/squads/"+id+"/status", "ana", UpdateStatusRequest{Status: StatusCompleted})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(t, h, http.MethodDelete, "/squads/"+id+"/members/lead", "ana", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(t, h, http.MethodDelete, "/squads/"+id+"/members/ana", "ana", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = do(t, h, http.MethodGet, "/squads/"+id, "lead", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data.(map[string]any)["members"], 1)
}

func TestHandler_MatchCandidates(t *testing.T) {
	h := newTestRouter(t)

	rec, resp := do(t, h, http.MethodGet, "/squads/candidates?skills=fitness,coaching", "lead", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	first := resp.Data.([]any)[0].(map[string]any)
	assert.Equal(t, "cand-003", first["id"])
	assert.Equal(t, 106.0, first["score"])
}
