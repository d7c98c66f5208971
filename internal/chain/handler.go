package chain

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kezzyngotho/aura/pkg/middleware"
	"github.com/kezzyngotho/aura/pkg/response"
)

// Conversion directions
const (
	DirectionAuraToUSDC = "aura_to_usdc"
	DirectionUSDCToAura = "usdc_to_aura"
)

// ConvertRequest swaps between AURA and USDC
type ConvertRequest struct {
	Direction string          `json:"direction" validate:"required,oneof=aura_to_usdc usdc_to_aura"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
}

// ListItemRequest puts an item on the marketplace
type ListItemRequest struct {
	ItemID string          `json:"item_id" validate:"required"`
	Price  decimal.Decimal `json:"price" swaggertype:"string"`
}

// RateRequest rates a purchased item
type RateRequest struct {
	Rating int `json:"rating" validate:"min=1,max=5"`
}

// BalanceResponse is a wallet balance with its USDC value
type BalanceResponse struct {
	Address string          `json:"address"`
	Aura    decimal.Decimal `json:"aura" swaggertype:"string"`
	USDC    decimal.Decimal `json:"usdc_value" swaggertype:"string"`
}

// TxResponse carries the hash of a confirmed transaction
type TxResponse struct {
	TxHash string `json:"tx_hash"`
}

// Handler handles HTTP requests for wallet and marketplace operations
type Handler struct {
	service *Service
}

// NewHandler creates a new chain handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for chain endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/balance", h.Balance)
	r.Post("/convert", h.Convert)
	r.Post("/items", h.ListItem)
	r.Post("/items/{itemId}/purchase", h.Purchase)
	r.Post("/items/{itemId}/rating", h.Rate)

	return r
}

func writeTx(w http.ResponseWriter, txHash string, err error) {
	switch {
	case err == nil && txHash == "":
		response.BadGateway(w, "Transaction failed")
	case err == nil:
		response.JSON(w, http.StatusOK, TxResponse{TxHash: txHash})
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrInvalidAddress),
		errors.Is(err, ErrInvalidItem):
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalError(w, "Transaction failed")
	}
}

// Balance handles GET /wallet/balance
// @Summary      Wallet balance
// @Tags         wallet
// @Produce      json
// @Success      200 {object} response.APIResponse{data=BalanceResponse}
// @Router       /wallet/balance [get]
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	balance, err := h.service.Balance(r.Context(), userID)
	if err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, BalanceResponse{
		Address: userID,
		Aura:    balance,
		USDC:    h.service.QuoteAuraToUSDC(balance),
	})
}

// Convert handles POST /wallet/convert
// @Summary      Convert between AURA and USDC
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request body ConvertRequest true "Conversion"
// @Success      200 {object} response.APIResponse{data=TxResponse}
// @Failure      422 {object} response.APIResponse
// @Failure      502 {object} response.APIResponse
// @Router       /wallet/convert [post]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	var txHash string
	var err error
	switch req.Direction {
	case DirectionAuraToUSDC:
		txHash, err = h.service.ConvertAuraToUSDC(r.Context(), userID, req.Amount)
	case DirectionUSDCToAura:
		txHash, err = h.service.ConvertUSDCToAura(r.Context(), userID, req.Amount)
	default:
		response.BadRequest(w, "direction must be aura_to_usdc or usdc_to_aura")
		return
	}

	writeTx(w, txHash, err)
}

// ListItem handles POST /wallet/items
// @Summary      List a marketplace item
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request body ListItemRequest true "Listing"
// @Success      200 {object} response.APIResponse{data=TxResponse}
// @Router       /wallet/items [post]
func (h *Handler) ListItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req ListItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	txHash, err := h.service.ListItem(r.Context(), userID, req.ItemID, req.Price)
	writeTx(w, txHash, err)
}

// Purchase handles POST /wallet/items/{itemId}/purchase
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	txHash, err := h.service.Purchase(r.Context(), userID, chi.URLParam(r, "itemId"))
	writeTx(w, txHash, err)
}

// Rate handles POST /wallet/items/{itemId}/rating
// @Summary      Rate a purchased item
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        itemId path string true "Item ID"
// @Param        request body RateRequest true "Rating"
// @Success      200 {object} response.APIResponse{data=TxResponse}
// @Failure      422 {object} response.APIResponse
// @Router       /wallet/items/{itemId}/rating [post]
func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	txHash, err := h.service.Rate(r.Context(), userID, chi.URLParam(r, "itemId"), req.Rating)
	writeTx(w, txHash, err)
}
