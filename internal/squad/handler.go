package squad

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kezzyngotho/aura/pkg/middleware"
	"github.com/kezzyngotho/aura/pkg/response"
)

// Handler handles HTTP requests for squad operations
type Handler struct {
	service *Service
}

// NewHandler creates a new squad handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for squad endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/candidates", h.MatchCandidates)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}/status", h.UpdateStatus)

	// Member management
	r.Post("/{id}/members", h.AddMember)
	r.Delete("/{id}/members/{userId}", h.RemoveMember)

	// Contributions
	r.Post("/{id}/contributions", h.LogContribution)
	r.Get("/{id}/members/{userId}/contributions", h.GetContributions)

	// Scoring
	r.Get("/{id}/rewards", h.CalculateRewards)
	r.Get("/{id}/rewards/optimized", h.OptimizeRewards)
	r.Get("/{id}/health", h.Health)
	r.Get("/{id}/prediction", h.PredictSuccess)

	return r
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrSquadNotFound), errors.Is(err, ErrMemberNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrMemberAlreadyExists):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrNotLeader):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrCannotRemoveLeader),
		errors.Is(err, ErrInvalidContribution),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidAmount):
		response.UnprocessableEntity(w, err.Error())
	case errors.Is(err, ErrNameRequired):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}

func parseAmount(r *http.Request) (float64, bool) {
	amount, err := strconv.ParseFloat(r.URL.Query().Get("total"), 64)
	return amount, err == nil
}

// Create handles POST /squads
// @Summary      Create a new squad
// @Description  Create a new squad with the caller as leader
// @Tags         squads
// @Accept       json
// @Produce      json
// @Param        request body CreateSquadRequest true "Squad creation request"
// @Success      201 {object} response.APIResponse{data=SquadResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /squads [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	leaderID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req CreateSquadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	squad, err := h.service.CreateSquad(r.Context(), leaderID, &req)
	if err != nil {
		writeError(w, err, "Failed to create squad")
		return
	}

	response.JSON(w, http.StatusCreated, squad.ToResponse())
}

// GetByID handles GET /squads/{id}
// @Summary      Get squad by ID
// @Tags         squads
// @Produce      json
// @Param        id path string true "Squad ID"
// @Success      200 {object} response.APIResponse{data=SquadResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /squads/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	squad, err := h.service.GetSquad(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Failed to get squad")
		return
	}

	response.JSON(w, http.StatusOK, squad.ToResponse())
}

// List handles GET /squads
// @Summary      List my squads
// @Description  Squads the current user leads or belongs to
// @Tags         squads
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]SquadResponse}
// @Router       /squads [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	squads, err := h.service.ListUserSquads(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list squads")
		return
	}

	squadResponses := make([]*SquadResponse, len(squads))
	for i, squad := range squads {
		squadResponses[i] = squad.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, squadResponses, &response.Meta{Total: len(squads)})
}

// UpdateStatus handles PUT /squads/{id}/status
// @Summary      Change squad status
// @Tags         squads
// @Accept       json
// @Produce      json
// @Param        id path string true "Squad ID"
// @Param        request body UpdateStatusRequest true "New status"
// @Success      200 {object} response.APIResponse{data=SquadResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /squads/{id}/status [put]
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	squad, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), actorID, req.Status)
	if err != nil {
		writeError(w, err, "Failed to update squad")
		return
	}

	response.JSON(w, http.StatusOK, squad.ToResponse())
}

// AddMember handles POST /squads/{id}/members
// @Summary      Add member to squad
// @Description  Add an assistant or contributor and rebalance earnings shares
// @Tags         squads
// @Accept       json
// @Produce      json
// @Param        id path string true "Squad ID"
// @Param        request body AddMemberRequest true "Member to add"
// @Success      201 {object} response.APIResponse{data=MemberResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /squads/{id}/members [post]
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		response.BadRequest(w, "user_id is required")
		return
	}

	member, err := h.service.AddMember(r.Context(), chi.URLParam(r, "id"), actorID, &req)
	if err != nil {
		writeError(w, err, "Failed to add member")
		return
	}

	response.JSON(w, http.StatusCreated, member.ToResponse())
}

// RemoveMember handles DELETE /squads/{id}/members/{userId}
// @Summary      Remove member from squad
// @Tags         squads
// @Param        id path string true "Squad ID"
// @Param        userId path string true "User ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /squads/{id}/members/{userId} [delete]
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	if err := h.service.RemoveMember(r.Context(), chi.URLParam(r, "id"), actorID, chi.URLParam(r, "userId")); err != nil {
		writeError(w, err, "Failed to remove member")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Member removed successfully"})
}

// LogContribution handles POST /squads/{id}/contributions
// @Summary      Log a contribution
// @Description  Log work by the current user and raise their contribution score
// @Tags         squads
// @Accept       json
// @Produce      json
// @Param        id path string true "Squad ID"
// @Param        request body LogContributionRequest true "Contribution"
// @Success      201 {object} response.APIResponse{data=Contribution}
// @Failure      404 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /squads/{id}/contributions [post]
func (h *Handler) LogContribution(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req LogContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	entry, err := h.service.LogContribution(r.Context(), chi.URLParam(r, "id"), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to log contribution")
		return
	}

	response.JSON(w, http.StatusCreated, entry)
}

// GetContributions handles GET /squads/{id}/members/{userId}/contributions
func (h *Handler) GetContributions(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.GetContributions(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err, "Failed to get contributions")
		return
	}

	response.JSONWithMeta(w, http.StatusOK, entries, &response.Meta{Total: len(entries)})
}

// CalculateRewards handles GET /squads/{id}/rewards?total=
// @Summary      Preview reward split
// @Tags         squads
// @Produce      json
// @Param        id path string true "Squad ID"
// @Param        total query number true "Reward pool"
// @Success      200 {object} response.APIResponse{data=[]scoring.MemberReward}
// @Failure      404 {object} response.APIResponse
// @Router       /squads/{id}/rewards [get]
func (h *Handler) CalculateRewards(w http.ResponseWriter, r *http.Request) {
	total, ok := parseAmount(r)
	if !ok {
		response.BadRequest(w, "Invalid total")
		return
	}

	rewards, err := h.service.CalculateRewards(r.Context(), chi.URLParam(r, "id"), total)
	if err != nil {
		writeError(w, err, "Failed to calculate rewards")
		return
	}

	response.JSON(w, http.StatusOK, rewards)
}

// OptimizeRewards handles GET /squads/{id}/rewards/optimized?total=
// @Summary      Contribution-weighted reward split
// @Tags         squads
// @Produce      json
// @Param        id path string true "Squad ID"
// @Param        total query number true "Reward pool"
// @Success      200 {object} response.APIResponse{data=scoring.RewardOptimization}
// @Failure      404 {object} response.APIResponse
// @Router       /squads/{id}/rewards/optimized [get]
func (h *Handler) OptimizeRewards(w http.ResponseWriter, r *http.Request) {
	total, ok := parseAmount(r)
	if !ok {
		response.BadRequest(w, "Invalid total")
		return
	}

	result, err := h.service.OptimizeRewards(r.Context(), chi.URLParam(r, "id"), total)
	if err != nil {
		writeError(w, err, "Failed to optimize rewards")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Health handles GET /squads/{id}/health
// @Summary      Squad health report
// @Tags         squads
// @Produce      json
// @Param        id path string true "Squad ID"
// @Success      200 {object} response.APIResponse{data=scoring.HealthReport}
// @Failure      404 {object} response.APIResponse
// @Router       /squads/{id}/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Health(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Failed to assess squad")
		return
	}

	response.JSON(w, http.StatusOK, report)
}

// PredictSuccess handles GET /squads/{id}/prediction
func (h *Handler) PredictSuccess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	probability, err := h.service.PredictSuccess(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to predict success")
		return
	}

	response.JSON(w, http.StatusOK, PredictionResponse{SquadID: id, Probability: probability})
}

// MatchCandidates handles GET /squads/candidates?skills=a,b
// @Summary      Match candidates
// @Description  Rank the candidate pool against a comma-separated skill list
// @Tags         squads
// @Produce      json
// @Param        skills query string false "Required skills"
// @Success      200 {object} response.APIResponse{data=[]scoring.CandidateMatch}
// @Router       /squads/candidates [get]
func (h *Handler) MatchCandidates(w http.ResponseWriter, r *http.Request) {
	var skills []string
	if raw := r.URL.Query().Get("skills"); raw != "" {
		skills = strings.Split(raw, ",")
	}

	matches := h.service.MatchCandidates(skills)
	response.JSONWithMeta(w, http.StatusOK, matches, &response.Meta{Total: len(matches)})
}
