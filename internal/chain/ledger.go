// Package chain wraps the token and marketplace contracts behind a Ledger
// collaborator. Ledger calls submit a transaction and wait for its hash.
package chain

import (
	"context"
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// Decimals is the fixed-point precision of AURA and USDC amounts on chain
const Decimals = 18

// ErrLedgerUnavailable is returned by NopLedger
var ErrLedgerUnavailable = errors.New("ledger not configured")

// Ledger is the contract collaborator. Amounts are in base units.
type Ledger interface {
	BalanceOf(ctx context.Context, address string) (*big.Int, error)
	Mint(ctx context.Context, to string, amount *big.Int) (string, error)
	ConvertAuraToUSDC(ctx context.Context, from string, amount *big.Int) (string, error)
	ConvertUSDCToAura(ctx context.Context, from string, amount *big.Int) (string, error)
	ListItem(ctx context.Context, seller, itemID string, price *big.Int) (string, error)
	Purchase(ctx context.Context, buyer, itemID string) (string, error)
	Rate(ctx context.Context, rater, itemID string, rating int) (string, error)
}

// ToBaseUnits converts a token amount to 18-decimal base units, truncating
// anything below the smallest unit.
func ToBaseUnits(amount decimal.Decimal) *big.Int {
	return amount.Shift(Decimals).Truncate(0).BigInt()
}

// FromBaseUnits converts 18-decimal base units to a token amount
func FromBaseUnits(units *big.Int) decimal.Decimal {
	if units == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(units, -Decimals)
}

// NopLedger fails every call. It stands in when no relayer is configured.
type NopLedger struct{}

func (NopLedger) BalanceOf(context.Context, string) (*big.Int, error) {
	return nil, ErrLedgerUnavailable
}

func (NopLedger) Mint(context.Context, string, *big.Int) (string, error) {
	return "", ErrLedgerUnavailable
}

func (NopLedger) ConvertAuraToUSDC(context.Context, string, *big.Int) (string, error) {
	return "", ErrLedgerUnavailable
}

func (NopLedger) ConvertUSDCToAura(context.Context, string, *big.Int) (string, error) {
	return "", ErrLedgerUnavailable
}

func (NopLedger) ListItem(context.Context, string, string, *big.Int) (string, error) {
	return "", ErrLedgerUnavailable
}

func (NopLedger) Purchase(context.Context, string, string) (string, error) {
	return "", ErrLedgerUnavailable
}

func (NopLedger) Rate(context.Context, string, string, int) (string, error) {
	return "", ErrLedgerUnavailable
}
