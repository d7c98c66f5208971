package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Validation errors. Ledger failures are never returned; they are logged and
// degrade to an empty hash or a zero balance.
var (
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrInvalidAddress = errors.New("address is required")
	ErrInvalidItem    = errors.New("item id is required")
)

const (
	minRating = 1
	maxRating = 5
)

// Service is the best-effort front of the ledger
type Service struct {
	ledger Ledger
	rate   decimal.Decimal
	logger *zap.Logger
}

// NewService creates a chain service. rate is the USDC price of one AURA.
func NewService(ledger Ledger, rate decimal.Decimal, logger *zap.Logger) *Service {
	return &Service{ledger: ledger, rate: rate, logger: logger}
}

// Balance returns the AURA balance of address, or zero when the ledger fails
func (s *Service) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	if strings.TrimSpace(address) == "" {
		return decimal.Zero, ErrInvalidAddress
	}

	units, err := s.ledger.BalanceOf(ctx, address)
	if err != nil {
		s.logger.Warn("balance query failed", zap.String("address", address), zap.Error(err))
		return decimal.Zero, nil
	}
	return FromBaseUnits(units), nil
}

// MintReward mints amount AURA to address
func (s *Service) MintReward(ctx context.Context, to string, amount decimal.Decimal) (string, error) {
	units, err := validateTransfer(to, amount)
	if err != nil {
		return "", err
	}
	return s.bestEffort("mint", to, func() (string, error) {
		return s.ledger.Mint(ctx, to, units)
	}), nil
}

// ConvertAuraToUSDC swaps amount AURA held by from into USDC
func (s *Service) ConvertAuraToUSDC(ctx context.Context, from string, amount decimal.Decimal) (string, error) {
	units, err := validateTransfer(from, amount)
	if err != nil {
		return "", err
	}
	return s.bestEffort("convert_aura_to_usdc", from, func() (string, error) {
		return s.ledger.ConvertAuraToUSDC(ctx, from, units)
	}), nil
}

// ConvertUSDCToAura swaps amount USDC held by from into AURA
func (s *Service) ConvertUSDCToAura(ctx context.Context, from string, amount decimal.Decimal) (string, error) {
	units, err := validateTransfer(from, amount)
	if err != nil {
		return "", err
	}
	return s.bestEffort("convert_usdc_to_aura", from, func() (string, error) {
		return s.ledger.ConvertUSDCToAura(ctx, from, units)
	}), nil
}

// ListItem puts itemID on the marketplace at price AURA
func (s *Service) ListItem(ctx context.Context, seller, itemID string, price decimal.Decimal) (string, error) {
	units, err := validateTransfer(seller, price)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(itemID) == "" {
		return "", ErrInvalidItem
	}
	return s.bestEffort("list_item", seller, func() (string, error) {
		return s.ledger.ListItem(ctx, seller, itemID, units)
	}), nil
}

// Purchase buys a listed item
func (s *Service) Purchase(ctx context.Context, buyer, itemID string) (string, error) {
	if strings.TrimSpace(buyer) == "" {
		return "", ErrInvalidAddress
	}
	if strings.TrimSpace(itemID) == "" {
		return "", ErrInvalidItem
	}
	return s.bestEffort("purchase", buyer, func() (string, error) {
		return s.ledger.Purchase(ctx, buyer, itemID)
	}), nil
}

// Rate rates a purchased item from 1 to 5
func (s *Service) Rate(ctx context.Context, rater, itemID string, rating int) (string, error) {
	if rating < minRating || rating > maxRating {
		return "", fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	if strings.TrimSpace(rater) == "" {
		return "", ErrInvalidAddress
	}
	if strings.TrimSpace(itemID) == "" {
		return "", ErrInvalidItem
	}
	return s.bestEffort("rate", rater, func() (string, error) {
		return s.ledger.Rate(ctx, rater, itemID, rating)
	}), nil
}

// QuoteAuraToUSDC prices amount AURA in USDC at the configured rate
func (s *Service) QuoteAuraToUSDC(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(s.rate).Truncate(Decimals)
}

// QuoteUSDCToAura prices amount USDC in AURA at the configured rate
func (s *Service) QuoteUSDCToAura(amount decimal.Decimal) decimal.Decimal {
	if s.rate.IsZero() {
		return decimal.Zero
	}
	return amount.DivRound(s.rate, Decimals)
}

func (s *Service) bestEffort(op, address string, call func() (string, error)) string {
	txHash, err := call()
	if err != nil {
		s.logger.Warn("chain operation failed",
			zap.String("op", op),
			zap.String("address", address),
			zap.Error(err),
		)
		return ""
	}

	s.logger.Info("chain operation confirmed",
		zap.String("op", op),
		zap.String("address", address),
		zap.String("tx_hash", txHash),
	)
	return txHash
}

func validateTransfer(address string, amount decimal.Decimal) (*big.Int, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrInvalidAddress
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	units := ToBaseUnits(amount)
	if units.Sign() == 0 {
		return nil, ErrInvalidAmount
	}
	return units, nil
}
