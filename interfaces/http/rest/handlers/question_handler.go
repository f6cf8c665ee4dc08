package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"forum-backend/application/ports"
	"forum-backend/application/services"
	"forum-backend/pkg/common"
	appErrors "forum-backend/pkg/errors"
	"forum-backend/pkg/utils"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	questions *services.QuestionService
	channels  *services.ChannelService
	logger    *zap.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questions *services.QuestionService, channels *services.ChannelService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{questions: questions, channels: channels, logger: logger}
}

// CreateQuestionRequest represents the request body for posting a question
type CreateQuestionRequest struct {
	ChannelID string `json:"channelId" validate:"required"`
	Question  string `json:"question" validate:"required"`
	PostedBy  string `json:"postedBy" validate:"required"`
}

// CreateQuestionResponse represents the response for posting a question
type CreateQuestionResponse struct {
	QuestionID string `json:"questionId"`
	CreatedAt  int64  `json:"createdAt"`
}

// DeleteQuestionRequest identifies the question and the caller claiming
// to own it. Ownership is verified against stored state, not this body.
type DeleteQuestionRequest struct {
	ChannelID   string `json:"channelId" validate:"required"`
	RequestedBy string `json:"requestedBy" validate:"required"`
}

// VoteQuestionRequest represents the request body for voting on a question
type VoteQuestionRequest struct {
	ChannelID string `json:"channelId" validate:"required"`
	Voter     string `json:"voter" validate:"required"`
	Operation string `json:"operation" validate:"required"`
}

// Create handles POST /questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.questions.Create(r.Context(), req.ChannelID, req.Question, req.PostedBy)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateQuestionResponse{
		QuestionID: question.QuestionID,
		CreatedAt:  question.CreatedAt,
	})
}

// Get handles GET /questions/{questionId}
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	channelID := r.URL.Query().Get("channelId")
	if channelID == "" {
		common.RespondError(w, http.StatusBadRequest, "required parameter channelId is missing")
		return
	}

	question, err := h.questions.Get(r.Context(), channelID, chi.URLParam(r, "questionId"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, question)
}

// List handles GET /questions
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseListQuery(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	page, err := h.questions.List(r.Context(), query)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	// The channel's denormalized counter serves as the page total.
	total := 0
	if channel, err := h.channels.Get(r.Context(), query.ChannelID); err == nil {
		total = channel.TotalQuestions
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"data": page.Items,
		"pagination": map[string]interface{}{
			"count":             len(page.Items),
			"total":             total,
			"nextEvaluationKey": page.NextCursor,
		},
	})
}

func (h *QuestionHandler) parseListQuery(r *http.Request) (ports.ListQuestionsQuery, error) {
	params := r.URL.Query()
	query := ports.ListQuestionsQuery{
		ChannelID: params.Get("channelId"),
		Limit:     50,
		Cursor:    params.Get("nextEvaluationKey"),
	}

	if raw := params.Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return query, appErrors.NewValidationError("count must be an integer")
		}
		query.Limit = parsed
	}
	if raw := params.Get("startDateTime"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return query, appErrors.NewValidationError("startDateTime must be epoch milliseconds")
		}
		query.Start = parsed
	}
	if raw := params.Get("endDateTime"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return query, appErrors.NewValidationError("endDateTime must be epoch milliseconds")
		}
		query.End = parsed
	}
	return query, nil
}

// Delete handles DELETE /questions/{questionId}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.questions.Delete(r.Context(), req.ChannelID, chi.URLParam(r, "questionId"), req.RequestedBy); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondNoContent(w)
}

// DeleteAll handles DELETE /questions. It only enqueues the purge job;
// the cascade worker does the actual deletion asynchronously.
func (h *QuestionHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	channelID := r.URL.Query().Get("channelId")
	if channelID == "" {
		common.RespondError(w, http.StatusBadRequest, "required parameter channelId is missing")
		return
	}

	if err := h.questions.RequestPurge(r.Context(), channelID); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondNoContent(w)
}

// Vote handles PUT /questions/{questionId}/vote
func (h *QuestionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req VoteQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.questions.Vote(r.Context(), req.ChannelID, chi.URLParam(r, "questionId"), req.Voter, req.Operation); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondNoContent(w)
}
