package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kezzyngotho/aura/internal/squad"
	"github.com/kezzyngotho/aura/pkg/middleware"
	"github.com/kezzyngotho/aura/pkg/response"
)

// Handler handles HTTP requests for squad chat
type Handler struct {
	service *Service
}

// NewHandler creates a new chat handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for chat endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/squads/{squadId}", h.GetSquadChat)
	r.Post("/squads/{squadId}", h.PostMessage)
	r.Get("/messages/{id}", h.GetMessage)
	r.Put("/messages/{id}", h.EditMessage)
	r.Post("/messages/{id}/reactions", h.AddReaction)
	r.Delete("/messages/{id}/reactions/{emoji}", h.RemoveReaction)

	return r
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMessageNotFound), errors.Is(err, squad.ErrSquadNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotMember), errors.Is(err, ErrNotAuthor):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrEmptyContent), errors.Is(err, ErrInvalidEmoji):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrContentTooLong):
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}

func toResponses(messages []*Message) []*MessageResponse {
	out := make([]*MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = m.ToResponse()
	}
	return out
}

// GetSquadChat handles GET /chat/squads/{squadId}
// @Summary      Get squad chat
// @Description  Most recent messages of a squad, oldest first
// @Tags         chat
// @Produce      json
// @Param        squadId path string true "Squad ID"
// @Param        limit query int false "Maximum messages (default 50, max 200)"
// @Success      200 {object} response.APIResponse{data=[]MessageResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /chat/squads/{squadId} [get]
func (h *Handler) GetSquadChat(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	messages, err := h.service.GetSquadChat(r.Context(), chi.URLParam(r, "squadId"), limit)
	if err != nil {
		writeError(w, err, "Failed to get chat")
		return
	}

	response.JSONWithMeta(w, http.StatusOK, toResponses(messages), &response.Meta{
		Total: len(messages),
	})
}

// PostMessage handles POST /chat/squads/{squadId}
// @Summary      Post a message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        squadId path string true "Squad ID"
// @Param        request body PostMessageRequest true "Message"
// @Success      201 {object} response.APIResponse{data=MessageResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /chat/squads/{squadId} [post]
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	msg, err := h.service.AddMessage(r.Context(), chi.URLParam(r, "squadId"), userID, req.Content)
	if err != nil {
		writeError(w, err, "Failed to post message")
		return
	}

	response.JSON(w, http.StatusCreated, msg.ToResponse())
}

// GetMessage handles GET /chat/messages/{id}
// @Summary      Get a message
// @Tags         chat
// @Produce      json
// @Param        id path string true "Message ID"
// @Success      200 {object} response.APIResponse{data=MessageResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /chat/messages/{id} [get]
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := h.service.GetMessage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Failed to get message")
		return
	}

	response.JSON(w, http.StatusOK, msg.ToResponse())
}

// EditMessage handles PUT /chat/messages/{id}
// @Summary      Edit a message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        id path string true "Message ID"
// @Param        request body EditMessageRequest true "New content"
// @Success      200 {object} response.APIResponse{data=MessageResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /chat/messages/{id} [put]
func (h *Handler) EditMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req EditMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	msg, err := h.service.EditMessage(r.Context(), chi.URLParam(r, "id"), userID, req.Content)
	if err != nil {
		writeError(w, err, "Failed to edit message")
		return
	}

	response.JSON(w, http.StatusOK, msg.ToResponse())
}

// AddReaction handles POST /chat/messages/{id}/reactions
// @Summary      React to a message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        id path string true "Message ID"
// @Param        request body ReactionRequest true "Reaction"
// @Success      200 {object} response.APIResponse{data=MessageResponse}
// @Router       /chat/messages/{id}/reactions [post]
func (h *Handler) AddReaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	msg, err := h.service.AddReaction(r.Context(), chi.URLParam(r, "id"), req.Emoji, userID)
	if err != nil {
		writeError(w, err, "Failed to add reaction")
		return
	}

	response.JSON(w, http.StatusOK, msg.ToResponse())
}

// RemoveReaction handles DELETE /chat/messages/{id}/reactions/{emoji}
// @Summary      Remove a reaction
// @Tags         chat
// @Produce      json
// @Param        id path string true "Message ID"
// @Param        emoji path string true "Emoji"
// @Success      200 {object} response.APIResponse{data=MessageResponse}
// @Router       /chat/messages/{id}/reactions/{emoji} [delete]
func (h *Handler) RemoveReaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	emoji, err := url.PathUnescape(chi.URLParam(r, "emoji"))
	if err != nil {
		response.BadRequest(w, "Invalid emoji")
		return
	}

	msg, err := h.service.RemoveReaction(r.Context(), chi.URLParam(r, "id"), emoji, userID)
	if err != nil {
		writeError(w, err, "Failed to remove reaction")
		return
	}

	response.JSON(w, http.StatusOK, msg.ToResponse())
}
