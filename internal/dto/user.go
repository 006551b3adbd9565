package dto

import (
	"time"

	"github.com/lhajoosten/studdit-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Reputation  int    `json:"reputation"`
}

// UserProfileDTO represents detailed user information
type UserProfileDTO struct {
	UserDTO
	Email         string     `json:"email"`
	Bio           *string    `json:"bio,omitempty"`
	IsActive      bool       `json:"is_active"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	QuestionCount int64      `json:"question_count"`
	AnswerCount   int64      `json:"answer_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Reputation:  user.Reputation,
	}
}

// ToUserProfileDTO converts a user with authored counts to a profile DTO
func ToUserProfileDTO(user models.User, questionCount, answerCount int64) UserProfileDTO {
	return UserProfileDTO{
		UserDTO:       ToUserDTO(user),
		Email:         user.Email,
		Bio:           user.Bio,
		IsActive:      user.IsActive,
		LastLoginAt:   user.LastLoginAt,
		QuestionCount: questionCount,
		AnswerCount:   answerCount,
		CreatedAt:     user.CreatedAt,
	}
}
