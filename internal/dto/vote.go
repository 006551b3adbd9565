package dto

import (
	"time"

	"github.com/lhajoosten/studdit-api/internal/models"
)

// VoteDTO represents a vote in API responses
type VoteDTO struct {
	ID         uint64          `json:"id"`
	Type       models.VoteType `json:"type"`
	UserID     uint64          `json:"user_id"`
	QuestionID *uint64         `json:"question_id,omitempty"`
	AnswerID   *uint64         `json:"answer_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToVoteDTOs converts a slice of votes
func ToVoteDTOs(votes []models.Vote) []VoteDTO {
	dtos := make([]VoteDTO, len(votes))
	for i, vote := range votes {
		dtos[i] = ToVoteDTO(vote)
	}
	return dtos
}

// ToVoteDTO converts a Vote model to VoteDTO
func ToVoteDTO(vote models.Vote) VoteDTO {
	return VoteDTO{
		ID:         vote.ID,
		Type:       vote.Type,
		UserID:     vote.UserID,
		QuestionID: vote.QuestionID,
		AnswerID:   vote.AnswerID,
		CreatedAt:  vote.CreatedAt,
		UpdatedAt:  vote.UpdatedAt,
	}
}
