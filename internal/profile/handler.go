package profile

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kezzyngotho/aura/pkg/middleware"
	"github.com/kezzyngotho/aura/pkg/response"
)

// Handler handles HTTP requests for profiles
type Handler struct {
	service *Service
}

// NewHandler creates a new profile handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for profile endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.GetMe)
	r.Get("/{userId}", h.GetByID)
	r.Get("/{userId}/squads", h.ListSquads)

	return r
}

func (h *Handler) writeProfile(w http.ResponseWriter, r *http.Request, userID string) {
	p, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserRequired) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to build profile")
		return
	}

	response.JSON(w, http.StatusOK, p)
}

// GetMe handles GET /profiles/me
// @Summary      Get my profile
// @Tags         profiles
// @Produce      json
// @Success      200 {object} response.APIResponse{data=Profile}
// @Router       /profiles/me [get]
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}
	h.writeProfile(w, r, userID)
}

// GetByID handles GET /profiles/{userId}
// @Summary      Get a user's profile
// @Description  Skills, reliability and recommended role derived from contributions
// @Tags         profiles
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} response.APIResponse{data=Profile}
// @Router       /profiles/{userId} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	h.writeProfile(w, r, chi.URLParam(r, "userId"))
}

// ListSquads handles GET /profiles/{userId}/squads
// @Summary      List a user's squads
// @Tags         profiles
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} response.APIResponse{data=[]SquadSummary}
// @Router       /profiles/{userId}/squads [get]
func (h *Handler) ListSquads(w http.ResponseWriter, r *http.Request) {
	squads, err := h.service.ListSquads(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		response.InternalError(w, "Failed to list squads")
		return
	}

	response.JSONWithMeta(w, http.StatusOK, squads, &response.Meta{Total: len(squads)})
}
