package dto

import (
	"time"

	"github.com/lhajoosten/studdit-api/internal/models"
)

// TagDTO represents a tag in API responses
type TagDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UsageCount  int    `json:"usage_count"`
}

// QuestionDTO represents a question in API responses
type QuestionDTO struct {
	ID            uint64      `json:"id"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	AuthorID      uint64      `json:"author_id"`
	VoteScore     int         `json:"vote_score"`
	ViewCount     int         `json:"view_count"`
	IsAnswered    bool        `json:"is_answered"`
	IsClosed      bool        `json:"is_closed"`
	ClosedAt      *time.Time  `json:"closed_at,omitempty"`
	ClosureReason *string     `json:"closure_reason,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Author        *UserDTO    `json:"author,omitempty"`
	Tags          []TagDTO    `json:"tags,omitempty"`
	Answers       []AnswerDTO `json:"answers,omitempty"`
}

// QuestionListItemDTO represents a question in list responses (minimal data)
type QuestionListItemDTO struct {
	ID         uint64    `json:"id"`
	Title      string    `json:"title"`
	AuthorID   uint64    `json:"author_id"`
	VoteScore  int       `json:"vote_score"`
	ViewCount  int       `json:"view_count"`
	IsAnswered bool      `json:"is_answered"`
	IsClosed   bool      `json:"is_closed"`
	CreatedAt  time.Time `json:"created_at"`
	Author     *UserDTO  `json:"author,omitempty"`
	Tags       []TagDTO  `json:"tags,omitempty"`
}

// QuestionListResponse represents a paginated list of questions
type QuestionListResponse struct {
	Questions  []QuestionListItemDTO `json:"questions"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalCount int64                 `json:"total_count"`
	TotalPages int                   `json:"total_pages"`
}

// ToTagDTO converts a Tag model to TagDTO
func ToTagDTO(tag models.Tag) TagDTO {
	return TagDTO{
		ID:          tag.ID,
		Name:        tag.Name,
		Description: tag.Description,
		UsageCount:  tag.UsageCount,
	}
}

// ToQuestionDTO converts a Question model to QuestionDTO
func ToQuestionDTO(question models.Question) QuestionDTO {
	dto := QuestionDTO{
		ID:            question.ID,
		Title:         question.Title,
		Content:       question.Content,
		AuthorID:      question.AuthorID,
		VoteScore:     question.VoteScore,
		ViewCount:     question.ViewCount,
		IsAnswered:    question.IsAnswered,
		IsClosed:      question.IsClosed,
		ClosedAt:      question.ClosedAt,
		ClosureReason: question.ClosureReason,
		CreatedAt:     question.CreatedAt,
		UpdatedAt:     question.UpdatedAt,
	}

	// Include author if preloaded
	if question.Author.ID != 0 {
		author := ToUserDTO(question.Author)
		dto.Author = &author
	}

	if len(question.Tags) > 0 {
		dto.Tags = make([]TagDTO, len(question.Tags))
		for i, tag := range question.Tags {
			dto.Tags[i] = ToTagDTO(tag)
		}
	}

	if len(question.Answers) > 0 {
		dto.Answers = make([]AnswerDTO, len(question.Answers))
		for i, answer := range question.Answers {
			dto.Answers[i] = ToAnswerDTO(answer)
		}
	}

	return dto
}

// ToQuestionListItemDTO converts a Question model to QuestionListItemDTO
func ToQuestionListItemDTO(question models.Question) QuestionListItemDTO {
	dto := QuestionListItemDTO{
		ID:         question.ID,
		Title:      question.Title,
		AuthorID:   question.AuthorID,
		VoteScore:  question.VoteScore,
		ViewCount:  question.ViewCount,
		IsAnswered: question.IsAnswered,
		IsClosed:   question.IsClosed,
		CreatedAt:  question.CreatedAt,
	}

	if question.Author.ID != 0 {
		author := ToUserDTO(question.Author)
		dto.Author = &author
	}

	if len(question.Tags) > 0 {
		dto.Tags = make([]TagDTO, len(question.Tags))
		for i, tag := range question.Tags {
			dto.Tags[i] = ToTagDTO(tag)
		}
	}

	return dto
}

// ToQuestionListResponse converts a slice of questions to QuestionListResponse
func ToQuestionListResponse(questions []models.Question, page, pageSize int, totalCount int64) QuestionListResponse {
	items := make([]QuestionListItemDTO, len(questions))
	for i, question := range questions {
		items[i] = ToQuestionListItemDTO(question)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return QuestionListResponse{
		Questions:  items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
