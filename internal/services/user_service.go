package services

import (
	"errors"
	"fmt"

	"github.com/lhajoosten/studdit-api/internal/constants"
	"github.com/lhajoosten/studdit-api/internal/models"
	"github.com/lhajoosten/studdit-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotSelf   = errors.New("users can only modify their own account")
	ErrSelfGrant = errors.New("users cannot grant reputation to themselves")
)

// UserService handles user profile and lifecycle business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// UserProfile bundles a user with their authored counts.
type UserProfile struct {
	User          models.User
	QuestionCount int64
	AnswerCount   int64
}

// ListUsers returns users with pagination.
func (s *UserService) ListUsers(page, pageSize int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetProfile retrieves a user together with authored counts.
func (s *UserService) GetProfile(id uint64) (*UserProfile, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	questions, answers, err := s.userRepo.CountAuthored(id)
	if err != nil {
		return nil, fmt.Errorf("failed to count authored posts: %w", err)
	}

	return &UserProfile{
		User:          *user,
		QuestionCount: questions,
		AnswerCount:   answers,
	}, nil
}

// UpdateUserInput carries optional profile changes; nil fields are left
// untouched.
type UpdateUserInput struct {
	DisplayName *string
	Bio         *string
	Email       *string
}

// UpdateUser applies profile changes. Only the account owner may update.
func (s *UserService) UpdateUser(userID, actorID uint64, input UpdateUserInput) (*models.User, error) {
	if userID != actorID {
		return nil, ErrNotSelf
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	displayName := user.DisplayName
	if input.DisplayName != nil {
		displayName = *input.DisplayName
	}
	bio := user.Bio
	if input.Bio != nil {
		bio = input.Bio
	}
	if err := user.UpdateProfile(displayName, bio); err != nil {
		return nil, err
	}

	if input.Email != nil {
		normalized, err := models.NormalizeEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		if normalized != user.Email {
			if _, err := s.userRepo.FindByEmail(normalized); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if err := user.UpdateEmail(normalized); err != nil {
				return nil, err
			}
		}
	}

	user.UpdatedByID = &actorID
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser soft-deactivates the account and purges everything it authored
// or voted on. Only the account owner may delete.
func (s *UserService) DeleteUser(userID, actorID uint64) error {
	if userID != actorID {
		return ErrNotSelf
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}

	if err := user.Deactivate(); err != nil {
		return err
	}
	user.UpdatedByID = &actorID

	if err := s.userRepo.DeactivateAndPurge(user); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// GrantReputation adds reputation points to a user. Awarding is a curator
// action: the actor must be active, hold curator-level reputation, and
// cannot award points to their own account. Negative deltas are rejected by
// the entity.
func (s *UserService) GrantReputation(userID, actorID uint64, points int) (*models.User, error) {
	actor, err := s.GetUser(actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsActive {
		return nil, models.ErrUserInactive
	}
	if actor.Reputation < constants.AwardReputation {
		return nil, &InsufficientReputationError{
			Action:   "award reputation",
			Required: constants.AwardReputation,
			Current:  actor.Reputation,
		}
	}
	if userID == actorID {
		return nil, ErrSelfGrant
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if err := user.AddReputation(points); err != nil {
		return nil, err
	}
	user.UpdatedByID = &actorID

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update reputation: %w", err)
	}

	return user, nil
}
