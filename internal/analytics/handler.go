package analytics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kezzyngotho/aura/pkg/response"
)

// Handler handles HTTP requests for analytics
type Handler struct {
	service *Service
}

// NewHandler creates a new analytics handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for analytics endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetMetrics)
	return r
}

// GetMetrics handles GET /analytics?days=
// @Summary      Usage metrics
// @Description  Query and token totals over the last days (max 30)
// @Tags         analytics
// @Produce      json
// @Param        days query int false "Window in days" default(30)
// @Success      200 {object} response.APIResponse{data=Metrics}
// @Router       /analytics [get]
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	days := MaxDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid days")
			return
		}
		days = n
	}

	metrics, err := h.service.GetMetrics(r.Context(), days)
	if err != nil {
		response.InternalError(w, "Failed to load metrics")
		return
	}

	response.JSON(w, http.StatusOK, metrics)
}
