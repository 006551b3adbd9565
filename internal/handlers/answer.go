package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lhajoosten/studdit-api/internal/dto"
	apierrors "github.com/lhajoosten/studdit-api/internal/errors"
	"github.com/lhajoosten/studdit-api/internal/middleware"
	"github.com/lhajoosten/studdit-api/internal/models"
	"github.com/lhajoosten/studdit-api/internal/services"
	"github.com/lhajoosten/studdit-api/internal/utils"
)

// AnswerHandler coordinates answer HTTP handlers.
type AnswerHandler struct {
	answerService *services.AnswerService
}

// NewAnswerHandler creates a new AnswerHandler.
func NewAnswerHandler(answerService *services.AnswerService) *AnswerHandler {
	return &AnswerHandler{
		answerService: answerService,
	}
}

// CreateAnswer posts a new answer to an open question.
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	questionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateAnswerRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	answer, err := h.answerService.CreateAnswer(services.CreateAnswerInput{
		Content:    req.Content,
		QuestionID: questionID,
		AuthorID:   userID,
	})
	if err != nil {
		respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAnswerDTO(*answer))
}

// ListAnswers returns the answers for a question, accepted first, then by
// score.
func (h *AnswerHandler) ListAnswers(c *gin.Context) {
	questionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	answers, err := h.answerService.ListByQuestion(questionID)
	if err != nil {
		respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answers": dto.ToAnswerDTOs(answers),
	})
}

// ListAllAnswers returns answers across all questions with pagination.
func (h *AnswerHandler) ListAllAnswers(c *gin.Context) {
	h.listAll(c, false)
}

// ListAcceptedAnswers returns accepted answers across all questions with
// pagination.
func (h *AnswerHandler) ListAcceptedAnswers(c *gin.Context) {
	h.listAll(c, true)
}

func (h *AnswerHandler) listAll(c *gin.Context, acceptedOnly bool) {
	params := utils.GetPaginationParams(c)

	answers, total, err := h.answerService.ListAnswers(params.Page, params.PageSize, acceptedOnly)
	if err != nil {
		respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answers":     dto.ToAnswerDTOs(answers),
		"page":        params.Page,
		"page_size":   params.PageSize,
		"total_count": total,
	})
}

// GetAnswer returns a single answer.
func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	answer, err := h.answerService.GetAnswer(id)
	if err != nil {
		respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnswerDTO(*answer))
}

// UpdateAnswer edits the content of an answer on an open question.
func (h *AnswerHandler) UpdateAnswer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateAnswerRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req UpdateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	answer, err := h.answerService.UpdateAnswer(id, userID, req.Content)
	if err != nil {
		respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnswerDTO(*answer))
}

// AcceptAnswer marks an answer as the accepted one for its question,
// unmarking any sibling.
func (h *AnswerHandler) AcceptAnswer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	answer, err := h.answerService.AcceptAnswer(id, userID)
	if err != nil {
		respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnswerDTO(*answer))
}

// DeleteAnswer removes an answer and its votes.
func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.answerService.DeleteAnswer(id, userID); err != nil {
		respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Answer deleted successfully",
	})
}

func respondAnswerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, models.ErrUserInactive),
		errors.Is(err, services.ErrNotAnswerAuthor),
		errors.Is(err, models.ErrNotQuestionAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAnswerNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyAccepted):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, models.ErrQuestionClosed):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
