package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lhajoosten/studdit-api/internal/dto"
	apierrors "github.com/lhajoosten/studdit-api/internal/errors"
	"github.com/lhajoosten/studdit-api/internal/middleware"
	"github.com/lhajoosten/studdit-api/internal/models"
	"github.com/lhajoosten/studdit-api/internal/services"
	"github.com/lhajoosten/studdit-api/internal/utils"
)

// QuestionHandler coordinates question HTTP handlers.
type QuestionHandler struct {
	questionService *services.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// CreateQuestion asks a new question.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateQuestionRequest struct {
		Title   string   `json:"title" binding:"required"`
		Content string   `json:"content" binding:"required"`
		Tags    []string `json:"tags"`
	}

	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	question, err := h.questionService.CreateQuestion(services.CreateQuestionInput{
		Title:    req.Title,
		Content:  req.Content,
		TagNames: req.Tags,
		AuthorID: userID,
	})
	if err != nil {
		respondQuestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToQuestionDTO(*question))
}

// ListQuestions returns questions matching the query filters.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListQuestionsInput{
		Search:     c.Query("search"),
		TagName:    c.Query("tag"),
		Unanswered: c.Query("unanswered") == "true",
		Page:       params.Page,
		PageSize:   params.PageSize,
	}
	if authorStr := c.Query("author_id"); authorStr != "" {
		authorID, err := strconv.ParseUint(authorStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid author_id parameter")
			return
		}
		input.AuthorID = &authorID
	}

	questions, total, err := h.questionService.ListQuestions(input)
	if err != nil {
		respondQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionListResponse(questions, params.Page, params.PageSize, total))
}

// GetQuestion returns a question with its author, tags and answers. Each
// fetch counts as a view.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	question, err := h.questionService.GetQuestion(id)
	if err != nil {
		respondQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionDTO(*question))
}

// UpdateQuestion edits the title and content of an open question.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateQuestionRequest struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}

	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	question, err := h.questionService.UpdateQuestion(id, userID, req.Title, req.Content)
	if err != nil {
		respondQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionDTO(*question))
}

// CloseQuestion closes an open question with a reason.
func (h *QuestionHandler) CloseQuestion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CloseQuestionRequest struct {
		Reason string `json:"reason" binding:"required"`
	}

	var req CloseQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	question, err := h.questionService.CloseQuestion(id, userID, req.Reason)
	if err != nil {
		respondQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionDTO(*question))
}

// ReopenQuestion reopens a closed question.
func (h *QuestionHandler) ReopenQuestion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	question, err := h.questionService.ReopenQuestion(id, userID)
	if err != nil {
		respondQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionDTO(*question))
}

// DeleteQuestion removes a question together with its answers and votes.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.questionService.DeleteQuestion(id, userID); err != nil {
		respondQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Question deleted successfully",
	})
}

func respondQuestionError(c *gin.Context, err error) {
	var repErr *services.InsufficientReputationError
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		apierrors.BadRequest(c, err.Error())
	case errors.As(err, &repErr):
		apierrors.InsufficientReputation(c, err.Error())
	case errors.Is(err, models.ErrUserInactive),
		errors.Is(err, models.ErrNotQuestionAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTagNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, models.ErrQuestionClosed),
		errors.Is(err, models.ErrQuestionNotClosed),
		errors.Is(err, models.ErrTagLimitReached):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
