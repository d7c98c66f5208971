package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RelayerLedger submits contract calls to an HTTP transaction relayer that
// signs, broadcasts and waits for the receipt.
type RelayerLedger struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type relayRequest struct {
	Method string         `json:"method"`
	Args   map[string]any `json:"args"`
}

type relayResponse struct {
	TxHash  string `json:"tx_hash"`
	Balance string `json:"balance"`
	Error   string `json:"error"`
}

// NewRelayerLedger creates a relayer-backed ledger
func NewRelayerLedger(baseURL, apiKey string) *RelayerLedger {
	return &RelayerLedger{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// BalanceOf queries the AURA balance of address
func (l *RelayerLedger) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	var out relayResponse
	if err := l.do(ctx, http.MethodGet, "/balance/"+url.PathEscape(address), nil, &out); err != nil {
		return nil, err
	}

	balance, ok := new(big.Int).SetString(out.Balance, 10)
	if !ok {
		return nil, fmt.Errorf("invalid balance %q", out.Balance)
	}
	return balance, nil
}

func (l *RelayerLedger) Mint(ctx context.Context, to string, amount *big.Int) (string, error) {
	return l.submit(ctx, "mint", map[string]any{"to": to, "amount": amount.String()})
}

func (l *RelayerLedger) ConvertAuraToUSDC(ctx context.Context, from string, amount *big.Int) (string, error) {
	return l.submit(ctx, "convertAuraToUsdc", map[string]any{"from": from, "amount": amount.String()})
}

func (l *RelayerLedger) ConvertUSDCToAura(ctx context.Context, from string, amount *big.Int) (string, error) {
	return l.submit(ctx, "convertUsdcToAura", map[string]any{"from": from, "amount": amount.String()})
}

func (l *RelayerLedger) ListItem(ctx context.Context, seller, itemID string, price *big.Int) (string, error) {
	return l.submit(ctx, "listItem", map[string]any{"seller": seller, "item_id": itemID, "price": price.String()})
}

func (l *RelayerLedger) Purchase(ctx context.Context, buyer, itemID string) (string, error) {
	return l.submit(ctx, "purchaseItem", map[string]any{"buyer": buyer, "item_id": itemID})
}

func (l *RelayerLedger) Rate(ctx context.Context, rater, itemID string, rating int) (string, error) {
	return l.submit(ctx, "rateItem", map[string]any{"rater": rater, "item_id": itemID, "rating": rating})
}

func (l *RelayerLedger) submit(ctx context.Context, method string, args map[string]any) (string, error) {
	var out relayResponse
	if err := l.do(ctx, http.MethodPost, "/tx", relayRequest{Method: method, Args: args}, &out); err != nil {
		return "", err
	}
	if out.TxHash == "" {
		return "", fmt.Errorf("relayer returned no transaction hash for %s", method)
	}
	return out.TxHash, nil
}

func (l *RelayerLedger) do(ctx context.Context, method, path string, body any, out *relayResponse) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, l.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if l.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+l.apiKey)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relayer request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse relayer response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("relayer returned %d: %s", resp.StatusCode, out.Error)
	}
	return nil
}
