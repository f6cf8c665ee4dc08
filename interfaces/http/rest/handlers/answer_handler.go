package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"forum-backend/application/services"
	"forum-backend/pkg/common"
	"forum-backend/pkg/utils"
)

// AnswerHandler handles answer-related HTTP requests
type AnswerHandler struct {
	answers *services.AnswerService
	logger  *zap.Logger
}

// NewAnswerHandler creates a new answer handler
func NewAnswerHandler(answers *services.AnswerService, logger *zap.Logger) *AnswerHandler {
	return &AnswerHandler{answers: answers, logger: logger}
}

// CreateAnswerRequest represents the request body for posting an answer
type CreateAnswerRequest struct {
	ChannelID  string `json:"channelId" validate:"required"`
	QuestionID string `json:"questionId" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	PostedBy   string `json:"postedBy" validate:"required"`
}

// CreateAnswerResponse represents the response for posting an answer
type CreateAnswerResponse struct {
	AnswerID  string `json:"answerId"`
	CreatedAt int64  `json:"createdAt"`
}

// UpdateAnswerRequest represents the request body for editing an answer
type UpdateAnswerRequest struct {
	ChannelID  string `json:"channelId" validate:"required"`
	QuestionID string `json:"questionId" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	UpdatedBy  string `json:"updatedBy" validate:"required"`
}

// DeleteAnswerRequest represents the request body for deleting an answer
type DeleteAnswerRequest struct {
	ChannelID   string `json:"channelId" validate:"required"`
	QuestionID  string `json:"questionId" validate:"required"`
	RequestedBy string `json:"requestedBy" validate:"required"`
}

// VoteAnswerRequest represents the request body for voting on an answer
type VoteAnswerRequest struct {
	ChannelID  string `json:"channelId" validate:"required"`
	QuestionID string `json:"questionId" validate:"required"`
	Voter      string `json:"voter" validate:"required"`
	Operation  string `json:"operation" validate:"required"`
}

// AcceptAnswerRequest represents the request body for accepting an answer
type AcceptAnswerRequest struct {
	ChannelID  string `json:"channelId" validate:"required"`
	QuestionID string `json:"questionId" validate:"required"`
	AcceptedBy string `json:"acceptedBy" validate:"required"`
}

// Create handles POST /answers
func (h *AnswerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	answer, err := h.answers.Create(r.Context(), req.ChannelID, req.QuestionID, req.Answer, req.PostedBy)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateAnswerResponse{
		AnswerID:  answer.AnswerID,
		CreatedAt: answer.CreatedAt,
	})
}

// List handles GET /answers
func (h *AnswerHandler) List(w http.ResponseWriter, r *http.Request) {
	questionID := r.URL.Query().Get("questionId")
	if questionID == "" {
		common.RespondError(w, http.StatusBadRequest, "required parameter questionId is missing")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest, "count must be an integer")
			return
		}
		limit = parsed
	}

	page, err := h.answers.List(r.Context(), questionID, limit, r.URL.Query().Get("nextEvaluationKey"))
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

// Update handles PUT /answers/{answerId}
func (h *AnswerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.answers.Update(r.Context(), req.ChannelID, req.QuestionID, chi.URLParam(r, "answerId"), req.Answer, req.UpdatedBy); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondNoContent(w)
}

// Delete handles DELETE /answers/{answerId}
func (h *AnswerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.answers.Delete(r.Context(), req.ChannelID, req.QuestionID, chi.URLParam(r, "answerId"), req.RequestedBy); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondNoContent(w)
}

// Vote handles PUT /answers/{answerId}/vote
func (h *AnswerHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req VoteAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.answers.Vote(r.Context(), req.ChannelID, req.QuestionID, chi.URLParam(r, "answerId"), req.Voter, req.Operation); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondNoContent(w)
}

// Accept handles PUT /answers/{answerId}/accept
func (h *AnswerHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req AcceptAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.answers.Accept(r.Context(), req.ChannelID, req.QuestionID, chi.URLParam(r, "answerId"), req.AcceptedBy, true); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondNoContent(w)
}
