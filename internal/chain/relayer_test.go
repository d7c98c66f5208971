package chain

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayerLedger_Submit(t *testing.T) {
	var got relayRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tx", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"tx_hash":"0xfeed"}`))
	}))
	defer srv.Close()

	ledger := NewRelayerLedger(srv.URL+"/", "secret")
	txHash, err := ledger.Mint(context.Background(), "0xabc", big.NewInt(7))

	require.NoError(t, err)
	assert.Equal(t, "0xfeed", txHash)
	assert.Equal(t, "mint", got.Method)
	assert.Equal(t, map[string]any{"to": "0xabc", "amount": "7"}, got.Args)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestRelayerLedger_Balance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/balance/0xabc", r.URL.Path)
		w.Write([]byte(`{"balance":"1500000000000000000"}`))
	}))
	defer srv.Close()

	balance, err := NewRelayerLedger(srv.URL, "").BalanceOf(context.Background(), "0xabc")

	require.NoError(t, err)
	assert.Equal(t, "1.5", FromBaseUnits(balance).String())
}

func TestRelayerLedger_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"reverted", http.StatusUnprocessableEntity, `{"error":"execution reverted"}`},
		{"no hash", http.StatusOK, `{}`},
		{"garbage", http.StatusOK, `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewRelayerLedger(srv.URL, "").Purchase(context.Background(), "0xabc", "item-1")
			assert.Error(t, err)
		})
	}
}
