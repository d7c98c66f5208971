package response

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONWithMeta(rec, http.StatusOK, []string{"a", "b"}, &Meta{Total: 2, Limit: 50})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, []any{"a", "b"}, resp.Data)
	assert.Equal(t, &Meta{Total: 2, Limit: 50}, resp.Meta)
	assert.Nil(t, resp.Error)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name       string
		write      func(http.ResponseWriter, string)
		wantStatus int
		wantCode   string
	}{
		{"bad request", BadRequest, http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NotFound, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", Conflict, http.StatusConflict, "CONFLICT"},
		{"unprocessable", UnprocessableEntity, http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"bad gateway", BadGateway, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"forbidden", Forbidden, http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec, "boom")

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "boom", resp.Error.Message)
		})
	}
}

func TestJSON_UnencodablePayload(t *testing.T) {
	tests := []struct {
		name  string
		write func(http.ResponseWriter)
	}{
		{"nan", func(w http.ResponseWriter) { JSON(w, http.StatusOK, math.NaN()) }},
		{"inf in list", func(w http.ResponseWriter) {
			JSONWithMeta(w, http.StatusOK, []float64{1, math.Inf(1)}, &Meta{Total: 2})
		}},
		{"channel", func(w http.ResponseWriter) { JSON(w, http.StatusCreated, make(chan int)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			assert.Nil(t, resp.Data)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
		})
	}
}
