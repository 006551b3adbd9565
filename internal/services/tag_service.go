package services

import (
	"errors"
	"fmt"

	"github.com/lhajoosten/studdit-api/internal/constants"
	"github.com/lhajoosten/studdit-api/internal/models"
	"github.com/lhajoosten/studdit-api/internal/repository"
	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("tag not found")

// TagService handles tag browsing and curation.
type TagService struct {
	tagRepo  repository.TagRepository
	userRepo repository.UserRepository
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repository.TagRepository, userRepo repository.UserRepository) *TagService {
	return &TagService{
		tagRepo:  tagRepo,
		userRepo: userRepo,
	}
}

// ListTags returns tags with pagination, most used first.
func (s *TagService) ListTags(page, pageSize int) ([]models.Tag, int64, error) {
	tags, total, err := s.tagRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, total, nil
}

// GetTag retrieves a tag by ID.
func (s *TagService) GetTag(id uint64) (*models.Tag, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return tag, nil
}

// UpdateDescription rewrites a tag's description. Curation is gated by the
// same reputation threshold as tag creation.
func (s *TagService) UpdateDescription(tagID, actorID uint64, description string) (*models.Tag, error) {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := actor.CanCreateTag()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &InsufficientReputationError{
			Action:   "edit tags",
			Required: constants.CreateTagReputation,
			Current:  actor.Reputation,
		}
	}

	tag, err := s.GetTag(tagID)
	if err != nil {
		return nil, err
	}

	if err := tag.UpdateDescription(description); err != nil {
		return nil, err
	}

	tag.UpdatedByID = &actorID
	if err := s.tagRepo.Update(tag); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return tag, nil
}
