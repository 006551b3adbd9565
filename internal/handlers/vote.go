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

// VoteHandler coordinates vote HTTP handlers.
type VoteHandler struct {
	voteService *services.VoteService
}

// NewVoteHandler creates a new VoteHandler.
func NewVoteHandler(voteService *services.VoteService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
	}
}

type voteRequest struct {
	Type string `json:"type" binding:"required"`
}

// ListVotes returns votes with pagination, optionally filtered to one
// user's votes via the user_id query parameter.
func (h *VoteHandler) ListVotes(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var userID *uint64
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user_id parameter")
			return
		}
		userID = &parsed
	}

	votes, total, err := h.voteService.ListVotes(userID, params.Page, params.PageSize)
	if err != nil {
		respondVoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"votes":       dto.ToVoteDTOs(votes),
		"page":        params.Page,
		"page_size":   params.PageSize,
		"total_count": total,
	})
}

// GetVote returns a single vote.
func (h *VoteHandler) GetVote(c *gin.Context) {
	voteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vote, err := h.voteService.GetVote(voteID)
	if err != nil {
		respondVoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVoteDTO(*vote))
}

// CastQuestionVote records a vote on a question.
func (h *VoteHandler) CastQuestionVote(c *gin.Context) {
	questionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	voteType, err := models.ParseVoteType(req.Type)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	vote, err := h.voteService.CastQuestionVote(questionID, userID, voteType)
	if err != nil {
		respondVoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVoteDTO(*vote))
}

// CastAnswerVote records a vote on an answer.
func (h *VoteHandler) CastAnswerVote(c *gin.Context) {
	answerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	voteType, err := models.ParseVoteType(req.Type)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	vote, err := h.voteService.CastAnswerVote(answerID, userID, voteType)
	if err != nil {
		respondVoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVoteDTO(*vote))
}

// ChangeVote flips an existing vote to the other type.
func (h *VoteHandler) ChangeVote(c *gin.Context) {
	voteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	voteType, err := models.ParseVoteType(req.Type)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	vote, err := h.voteService.ChangeVote(voteID, userID, voteType)
	if err != nil {
		respondVoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVoteDTO(*vote))
}

// RetractVote removes a vote and rolls its weight out of the target's score.
func (h *VoteHandler) RetractVote(c *gin.Context) {
	voteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.voteService.RetractVote(voteID, userID); err != nil {
		respondVoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vote retracted successfully",
	})
}

func respondVoteError(c *gin.Context, err error) {
	var repErr *services.InsufficientReputationError
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		apierrors.BadRequest(c, err.Error())
	case errors.As(err, &repErr):
		apierrors.InsufficientReputation(c, err.Error())
	case errors.Is(err, models.ErrUserInactive),
		errors.Is(err, services.ErrNotVoteOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrVoteNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrAnswerNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDuplicateVote),
		errors.Is(err, models.ErrAlreadyVoted):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrSelfVote),
		errors.Is(err, models.ErrQuestionClosed),
		errors.Is(err, models.ErrSameVoteType):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
