package models

import (
	"strings"
	"time"

	"github.com/lhajoosten/studdit-api/internal/constants"
)

// Answer belongs to exactly one question and owns its votes plus the cached
// vote score. IsAccepted only says whether this answer is accepted;
// exclusivity across siblings is enforced by the accept orchestration.
//
// Guards that depend on the owning question (closed state, authorship)
// require Question to be loaded.
type Answer struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	AuthorID    uint64    `gorm:"not null" json:"author_id"`
	QuestionID  uint64    `gorm:"not null" json:"question_id"`
	VoteScore   int       `gorm:"not null;default:0" json:"vote_score"`
	IsAccepted  bool      `gorm:"not null;default:false" json:"is_accepted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedByID *uint64   `json:"-"`

	// Relations
	Author   User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Question Question `gorm:"foreignKey:QuestionID" json:"-"`
	Votes    []Vote   `gorm:"foreignKey:AnswerID" json:"-"`
}

func validateAnswerContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return invalidArgf("content cannot be empty")
	}
	if len(content) < constants.MinAnswerContent {
		return invalidArgf("content must be at least %d characters", constants.MinAnswerContent)
	}
	return nil
}

// NewAnswer validates and builds an answer. Closed questions reject new
// answers.
func NewAnswer(content string, author *User, question *Question) (*Answer, error) {
	if author == nil {
		return nil, invalidArgf("author cannot be nil")
	}
	if question == nil {
		return nil, invalidArgf("question cannot be nil")
	}
	if question.IsClosed {
		return nil, ErrQuestionClosed
	}
	if err := validateAnswerContent(content); err != nil {
		return nil, err
	}

	return &Answer{
		Content:    content,
		AuthorID:   author.ID,
		QuestionID: question.ID,
	}, nil
}

// Update replaces the content. Rejected while the owning question is closed.
func (a *Answer) Update(content string) error {
	if a.Question.IsClosed {
		return ErrQuestionClosed
	}
	if err := validateAnswerContent(content); err != nil {
		return err
	}
	a.Content = content
	return nil
}

// MarkAccepted flags this answer as the accepted one. Only the owning
// question's author may accept; the caller passes the acting user.
// There is no already-accepted guard here; the orchestration checks that
// before invoking.
func (a *Answer) MarkAccepted(actorID uint64) error {
	if !SameIdentity(a.Question.AuthorID, actorID) {
		return ErrNotQuestionAuthor
	}
	a.IsAccepted = true
	a.UpdatedByID = &actorID
	return nil
}

// UnmarkAccepted clears the accepted flag.
func (a *Answer) UnmarkAccepted() error {
	if !a.IsAccepted {
		return ErrAnswerNotAccepted
	}
	a.IsAccepted = false
	return nil
}

// AddVote appends a vote and recomputes the cached score. Unlike questions,
// the answer itself carries no duplicate-vote check; the caller pre-checks
// against the vote store.
func (a *Answer) AddVote(vote *Vote) error {
	if vote == nil {
		return invalidArgf("vote cannot be nil")
	}
	a.Votes = append(a.Votes, *vote)
	a.RecalculateVoteScore()
	return nil
}

// RecalculateVoteScore re-derives the cached score from the vote
// collection: upvotes minus downvotes.
func (a *Answer) RecalculateVoteScore() {
	score := 0
	for i := range a.Votes {
		if a.Votes[i].Type == VoteTypeUpvote {
			score++
		} else {
			score--
		}
	}
	a.VoteScore = score
}
