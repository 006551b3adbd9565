package dto

import (
	"time"

	"github.com/lhajoosten/studdit-api/internal/models"
)

// AnswerDTO represents an answer in API responses
type AnswerDTO struct {
	ID         uint64    `json:"id"`
	Content    string    `json:"content"`
	AuthorID   uint64    `json:"author_id"`
	QuestionID uint64    `json:"question_id"`
	VoteScore  int       `json:"vote_score"`
	IsAccepted bool      `json:"is_accepted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Author     *UserDTO  `json:"author,omitempty"`
}

// ToAnswerDTO converts an Answer model to AnswerDTO
func ToAnswerDTO(answer models.Answer) AnswerDTO {
	dto := AnswerDTO{
		ID:         answer.ID,
		Content:    answer.Content,
		AuthorID:   answer.AuthorID,
		QuestionID: answer.QuestionID,
		VoteScore:  answer.VoteScore,
		IsAccepted: answer.IsAccepted,
		CreatedAt:  answer.CreatedAt,
		UpdatedAt:  answer.UpdatedAt,
	}

	// Include author if preloaded
	if answer.Author.ID != 0 {
		author := ToUserDTO(answer.Author)
		dto.Author = &author
	}

	return dto
}

// ToAnswerDTOs converts a slice of answers
func ToAnswerDTOs(answers []models.Answer) []AnswerDTO {
	dtos := make([]AnswerDTO, len(answers))
	for i, answer := range answers {
		dtos[i] = ToAnswerDTO(answer)
	}
	return dtos
}
