package classify

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kezzyngotho/aura/pkg/middleware"
	"github.com/kezzyngotho/aura/pkg/response"
)

// QueryRequest is a free-text query from the user
type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}

// Handler handles HTTP requests for query dispatch
type Handler struct {
	service *Service
}

// NewHandler creates a new classification handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for query endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Dispatch)
	r.Get("/templates", h.ListTemplates)

	return r
}

// Dispatch handles POST /queries
// @Summary      Dispatch a query
// @Description  Classify a free-text query and answer with a greeting, a reply or a squad template
// @Tags         queries
// @Accept       json
// @Produce      json
// @Param        request body QueryRequest true "Query"
// @Success      200 {object} response.APIResponse{data=Result}
// @Failure      400 {object} response.APIResponse
// @Failure      502 {object} response.APIResponse
// @Router       /queries [post]
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.Dispatch(r.Context(), userID, req.Query)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyQuery):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrMalformedReply):
			response.BadGateway(w, err.Error())
		default:
			response.BadGateway(w, "Language model unavailable")
		}
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// ListTemplates handles GET /queries/templates
// @Summary      List squad templates
// @Tags         queries
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]Template}
// @Router       /queries/templates [get]
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, Templates())
}
