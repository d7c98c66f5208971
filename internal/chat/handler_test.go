package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kezzyngotho/aura/pkg/middleware"
	"github.com/kezzyngotho/aura/pkg/response"
)

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

func TestHandler_ChatFlow(t *testing.T) {
	svc, _, squadID := newTestService(t)
	r := chi.NewRouter()
	r.Use(middleware.DevUserMiddleware)
	r.Mount("/chat", NewHandler(svc).Routes())

	rec, resp := do(t, r, http.MethodPost, "/chat/squads/"+squadID, "ana", PostMessageRequest{Content: "hi all"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := resp.Data.(map[string]any)["id"].(string)

	rec, _ = do(t, r, http.MethodPost, "/chat/squads/"+squadID, "stranger", PostMessageRequest{Content: "let me in"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(t, r, http.MethodPost, "/chat/squads/"+squadID, "ana", PostMessageRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, http.MethodPut, "/chat/messages/"+id, "lead", EditMessageRequest{Content: "nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(t, r, http.MethodPost, "/chat/messages/"+id+"/reactions", "lead", ReactionRequest{Emoji: "🎉"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = do(t, r, http.MethodDelete, "/chat/messages/"+id+"/reactions/"+url.PathEscape("🎉"), "lead", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Data.(map[string]any)["reactions"])

	rec, resp = do(t, r, http.MethodGet, "/chat/squads/"+squadID+"?limit=10", "lead", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)

	rec, _ = do(t, r, http.MethodGet, "/chat/messages/missing", "lead", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
