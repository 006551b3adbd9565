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

// TagHandler coordinates tag HTTP handlers.
type TagHandler struct {
	tagService *services.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// ListTags returns tags ordered by usage.
func (h *TagHandler) ListTags(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tags, total, err := h.tagService.ListTags(params.Page, params.PageSize)
	if err != nil {
		respondTagError(c, err)
		return
	}

	tagDTOs := make([]dto.TagDTO, len(tags))
	for i, tag := range tags {
		tagDTOs[i] = dto.ToTagDTO(tag)
	}

	c.JSON(http.StatusOK, gin.H{
		"tags":        tagDTOs,
		"page":        params.Page,
		"page_size":   params.PageSize,
		"total_count": total,
	})
}

// GetTag returns a single tag.
func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.GetTag(id)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTagDTO(*tag))
}

// UpdateTag rewrites a tag's description. Gated on the tag curation
// reputation threshold.
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateTagRequest struct {
		Description string `json:"description" binding:"required"`
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := h.tagService.UpdateDescription(id, userID, req.Description)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTagDTO(*tag))
}

func respondTagError(c *gin.Context, err error) {
	var repErr *services.InsufficientReputationError
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		apierrors.BadRequest(c, err.Error())
	case errors.As(err, &repErr):
		apierrors.InsufficientReputation(c, err.Error())
	case errors.Is(err, models.ErrUserInactive):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
