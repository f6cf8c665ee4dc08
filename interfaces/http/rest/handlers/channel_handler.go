package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"forum-backend/application/services"
	"forum-backend/pkg/auth"
	"forum-backend/pkg/common"
	"forum-backend/pkg/utils"
)

// ChannelHandler handles channel-related HTTP requests
type ChannelHandler struct {
	channels *services.ChannelService
	logger   *zap.Logger
}

// NewChannelHandler creates a new channel handler
func NewChannelHandler(channels *services.ChannelService, logger *zap.Logger) *ChannelHandler {
	return &ChannelHandler{channels: channels, logger: logger}
}

// CreateChannelRequest represents the request body for creating a channel
type CreateChannelRequest struct {
	Name       string `json:"name" validate:"required,max=40"`
	Visibility string `json:"visibility" validate:"required"`
	CreatedBy  string `json:"createdBy" validate:"required"`
}

// CreateChannelResponse represents the response for creating a channel
type CreateChannelResponse struct {
	ChannelID string `json:"channelId"`
	Name      string `json:"name"`
}

// AddParticipantRequest represents the request body for adding a participant
type AddParticipantRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create handles POST /channels
func (h *ChannelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	channel, err := h.channels.Create(r.Context(), claims, req.Name, req.CreatedBy, req.Visibility)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateChannelResponse{
		ChannelID: channel.ChannelID,
		Name:      channel.Name,
	})
}

// Get handles GET /channels/{channelId}
func (h *ChannelHandler) Get(w http.ResponseWriter, r *http.Request) {
	channel, err := h.channels.Get(r.Context(), chi.URLParam(r, "channelId"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, channel)
}

// List handles GET /channels
func (h *ChannelHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest, "count must be an integer")
			return
		}
		limit = parsed
	}

	page, err := h.channels.List(r.Context(), limit, r.URL.Query().Get("nextEvaluationKey"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"data": page.Items,
		"pagination": map[string]interface{}{
			"count":             len(page.Items),
			"nextEvaluationKey": page.NextCursor,
		},
	})
}

// Members handles GET /channels/{channelId}/members
func (h *ChannelHandler) Members(w http.ResponseWriter, r *http.Request) {
	members, err := h.channels.Members(r.Context(), chi.URLParam(r, "channelId"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, members)
}

// AddParticipant handles PUT /channels/{channelId}
func (h *ChannelHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req AddParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.channels.AddParticipant(r.Context(), claims, chi.URLParam(r, "channelId"), req.Name); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondNoContent(w)
}

// Delete handles DELETE /channels/{channelId}
func (h *ChannelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.channels.Delete(r.Context(), chi.URLParam(r, "channelId")); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondNoContent(w)
}
