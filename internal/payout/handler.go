package payout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kezzyngotho/aura/internal/squad"
	"github.com/kezzyngotho/aura/pkg/middleware"
	"github.com/kezzyngotho/aura/pkg/response"
)

// Handler handles HTTP requests for payouts
type Handler struct {
	service *Service
}

// NewHandler creates a new payout handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for payout endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/squads/{squadId}", h.Create)
	r.Get("/squads/{squadId}", h.ListBySquad)
	r.Get("/{id}", h.GetByID)

	return r
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPayoutNotFound), errors.Is(err, squad.ErrSquadNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotLeader):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrUnknownStrategy),
		errors.Is(err, ErrNoMembers),
		errors.Is(err, squad.ErrInvalidAmount):
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}

// Create handles POST /payouts/squads/{squadId}
// @Summary      Pay out a squad
// @Description  Split a reward pool across squad members and mint each share
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        squadId path string true "Squad ID"
// @Param        request body CreatePayoutRequest true "Payout request"
// @Success      201 {object} response.APIResponse{data=PayoutResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /payouts/squads/{squadId} [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req CreatePayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, err := h.service.Payout(r.Context(), chi.URLParam(r, "squadId"), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to pay out squad")
		return
	}

	response.JSON(w, http.StatusCreated, p.ToResponse())
}

// ListBySquad handles GET /payouts/squads/{squadId}
// @Summary      List squad payouts
// @Tags         payouts
// @Produce      json
// @Param        squadId path string true "Squad ID"
// @Success      200 {object} response.APIResponse{data=[]PayoutResponse}
// @Router       /payouts/squads/{squadId} [get]
func (h *Handler) ListBySquad(w http.ResponseWriter, r *http.Request) {
	payouts, err := h.service.ListPayouts(r.Context(), chi.URLParam(r, "squadId"))
	if err != nil {
		writeError(w, err, "Failed to list payouts")
		return
	}

	out := make([]*PayoutResponse, len(payouts))
	for i, p := range payouts {
		out[i] = p.ToResponse()
	}
	response.JSONWithMeta(w, http.StatusOK, out, &response.Meta{Total: len(out)})
}

// GetByID handles GET /payouts/{id}
// @Summary      Get payout by ID
// @Tags         payouts
// @Produce      json
// @Param        id path string true "Payout ID"
// @Success      200 {object} response.APIResponse{data=PayoutResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /payouts/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetPayout(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Failed to get payout")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}
