package payout

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

func TestHandler_Payouts(t *testing.T) {
	f := newFixture(t)
	r := chi.NewRouter()
	r.Use(middleware.DevUserMiddleware)
	r.Mount("/payouts", NewHandler(f.svc).Routes())

	do := func(method, path, userID string, body any) (*httptest.ResponseRecorder, response.APIResponse) {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set(middleware.DevUserHeader, userID)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return rec, resp
	}

	rec, _ := do(http.MethodPost, "/payouts/squads/"+f.squadID, "dev", CreatePayoutRequest{TotalAmount: 50})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(http.MethodPost, "/payouts/squads/"+f.squadID, "lead", CreatePayoutRequest{TotalAmount: -5})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, resp := do(http.MethodPost, "/payouts/squads/"+f.squadID, "lead", CreatePayoutRequest{TotalAmount: 50})
	require.Equal(t, http.StatusCreated, rec.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(2), data["minted"])
	assert.Equal(t, "completed", data["status"])
	id := data["id"].(string)

	rec, _ = do(http.MethodGet, "/payouts/"+id, "lead", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = do(http.MethodGet, "/payouts/squads/"+f.squadID, "dev", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, resp.Meta.Total)

	rec, _ = do(http.MethodGet, "/payouts/squads/missing", "dev", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
