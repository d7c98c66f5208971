package classify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kezzyngotho/aura/pkg/middleware"
	"github.com/kezzyngotho/aura/pkg/response"
)

func serve(t *testing.T, client *fakeLLM, method, path, body string) (*httptest.ResponseRecorder, response.APIResponse) {
	t.Helper()
	svc, _ := newTestService(client)
	r := chi.NewRouter()
	r.Use(middleware.DevUserMiddleware)
	r.Mount("/queries", NewHandler(svc).Routes())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandler_Dispatch(t *testing.T) {
	client := &fakeLLM{replies: []string{`{"type":"greeting","reply":"Hello!"}`}}

	rec, resp := serve(t, client, http.MethodPost, "/queries", `{"query":"hey"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "greeting", data["kind"])
	assert.Equal(t, "Hello!", data["message"])
}

func TestHandler_DispatchErrors(t *testing.T) {
	rec, _ := serve(t, &fakeLLM{}, http.MethodPost, "/queries", `{"query":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serve(t, &fakeLLM{}, http.MethodPost, "/queries", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp := serve(t, &fakeLLM{replies: []string{"nope"}}, http.MethodPost, "/queries", `{"query":"hey"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "UPSTREAM_ERROR", resp.Error.Code)
}

func TestHandler_ListTemplates(t *testing.T) {
	rec, resp := serve(t, &fakeLLM{}, http.MethodGet, "/queries/templates", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data, 6)
}
