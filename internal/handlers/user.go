package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/lhajoosten/studdit-api/internal/dto"
	apierrors "github.com/lhajoosten/studdit-api/internal/errors"
	"github.com/lhajoosten/studdit-api/internal/middleware"
	"github.com/lhajoosten/studdit-api/internal/models"
	"github.com/lhajoosten/studdit-api/internal/services"
	"github.com/lhajoosten/studdit-api/internal/utils"
)

// UserHandler coordinates user account HTTP handlers.
type UserHandler struct {
	userService   *services.UserService
	answerService *services.AnswerService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, answerService *services.AnswerService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		answerService: answerService,
	}
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// ListUsers returns users with pagination.
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(params.Page, params.PageSize)
	if err != nil {
		respondUserError(c, err)
		return
	}

	userDTOs := make([]dto.UserDTO, len(users))
	for i, user := range users {
		userDTOs[i] = dto.ToUserDTO(user)
	}

	c.JSON(http.StatusOK, gin.H{
		"users":       userDTOs,
		"page":        params.Page,
		"page_size":   params.PageSize,
		"total_count": total,
	})
}

// GetUser returns public information about a user.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetProfile returns a user with their authored counts.
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserProfileDTO(profile.User, profile.QuestionCount, profile.AnswerCount))
}

// ListUserAnswers returns the answers authored by a user.
func (h *UserHandler) ListUserAnswers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	answers, total, err := h.answerService.ListByAuthor(id, params.Page, params.PageSize)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answers":     dto.ToAnswerDTOs(answers),
		"page":        params.Page,
		"page_size":   params.PageSize,
		"total_count": total,
	})
}

// UpdateUser applies profile changes to the authenticated user's account.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateUserRequest struct {
		DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
		Bio         *string `json:"bio"`
		Email       *string `json:"email"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(id, actorID, services.UpdateUserInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Email:       req.Email,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser deactivates the account and purges authored content.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.userService.DeleteUser(id, actorID); err != nil {
		respondUserError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to clear session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account deleted successfully",
	})
}

// GrantReputation adds reputation points to a user. Restricted to
// curator-level actors; self-grants are rejected.
func (h *UserHandler) GrantReputation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type GrantReputationRequest struct {
		Points int `json:"points" binding:"required"`
	}

	var req GrantReputationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.GrantReputation(id, actorID, req.Points)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondUserError(c *gin.Context, err error) {
	var repErr *services.InsufficientReputationError
	switch {
	case errors.Is(err, models.ErrInvalidArgument),
		errors.Is(err, models.ErrNegativeReputation):
		apierrors.BadRequest(c, err.Error())
	case errors.As(err, &repErr):
		apierrors.InsufficientReputation(c, err.Error())
	case errors.Is(err, services.ErrNotSelf),
		errors.Is(err, services.ErrSelfGrant):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, models.ErrUserInactive):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
