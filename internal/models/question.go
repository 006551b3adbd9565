package models

import (
	"strings"
	"time"

	"github.com/lhajoosten/studdit-api/internal/constants"
)

// Question owns its answers, votes and tag associations, and is the
// consistency boundary for the cached vote score and the open/closed state
// machine. IsAnswered is an independent dimension: set by the first answer,
// never cleared automatically.
type Question struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	Title         string     `gorm:"type:varchar(150);not null" json:"title"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	AuthorID      uint64     `gorm:"not null" json:"author_id"`
	VoteScore     int        `gorm:"not null;default:0" json:"vote_score"`
	ViewCount     int        `gorm:"not null;default:0" json:"view_count"`
	IsAnswered    bool       `gorm:"not null;default:false" json:"is_answered"`
	IsClosed      bool       `gorm:"not null;default:false" json:"is_closed"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	ClosureReason *string    `gorm:"type:varchar(255)" json:"closure_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	UpdatedByID   *uint64    `json:"-"`

	// Relations
	Author  User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Answers []Answer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
	Votes   []Vote   `gorm:"foreignKey:QuestionID" json:"-"`
	Tags    []Tag    `gorm:"many2many:question_tags" json:"tags,omitempty"`
}

func validateQuestionBody(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return invalidArgf("title cannot be empty")
	}
	if len(title) > constants.MaxQuestionTitleLength {
		return invalidArgf("title cannot exceed %d characters", constants.MaxQuestionTitleLength)
	}
	if strings.TrimSpace(content) == "" {
		return invalidArgf("content cannot be empty")
	}
	if len(content) < constants.MinQuestionContent {
		return invalidArgf("content must be at least %d characters", constants.MinQuestionContent)
	}
	return nil
}

// NewQuestion validates and builds an open, unanswered question with zero
// score and zero views.
func NewQuestion(title, content string, author *User) (*Question, error) {
	if author == nil {
		return nil, invalidArgf("author cannot be nil")
	}
	if err := validateQuestionBody(title, content); err != nil {
		return nil, err
	}

	return &Question{
		Title:    title,
		Content:  content,
		AuthorID: author.ID,
		Author:   *author,
	}, nil
}

// Update re-validates and replaces the title and content. Closed questions
// reject updates.
func (q *Question) Update(title, content string) error {
	if q.IsClosed {
		return ErrQuestionClosed
	}
	if err := validateQuestionBody(title, content); err != nil {
		return err
	}
	q.Title = title
	q.Content = content
	return nil
}

// AddAnswer attaches an answer and marks the question answered. Legal only
// while open.
func (q *Question) AddAnswer(answer *Answer) error {
	if answer == nil {
		return invalidArgf("answer cannot be nil")
	}
	if q.IsClosed {
		return ErrQuestionClosed
	}
	q.Answers = append(q.Answers, *answer)
	q.IsAnswered = true
	return nil
}

// AddVote appends a vote and recomputes the cached score. If the casting
// user already voted on this question: same type is rejected, a different
// type replaces the prior vote in one step. The replaced vote, if any, is
// returned so the caller can remove its persisted row in the same
// transaction.
func (q *Question) AddVote(vote *Vote) (*Vote, error) {
	if vote == nil {
		return nil, invalidArgf("vote cannot be nil")
	}

	var replaced *Vote
	for i := range q.Votes {
		if SameIdentity(q.Votes[i].UserID, vote.UserID) {
			if q.Votes[i].Type == vote.Type {
				return nil, ErrAlreadyVoted
			}
			prior := q.Votes[i]
			replaced = &prior
			q.Votes = append(q.Votes[:i], q.Votes[i+1:]...)
			break
		}
	}

	q.Votes = append(q.Votes, *vote)
	q.RecalculateVoteScore()
	return replaced, nil
}

// RecalculateVoteScore re-derives the cached score from the vote
// collection: upvotes minus downvotes.
func (q *Question) RecalculateVoteScore() {
	score := 0
	for i := range q.Votes {
		if q.Votes[i].Type == VoteTypeUpvote {
			score++
		} else {
			score--
		}
	}
	q.VoteScore = score
}

// AddTag associates a tag and bumps its usage counter. At most five tags,
// no duplicates.
func (q *Question) AddTag(tag *Tag) error {
	if tag == nil {
		return invalidArgf("tag cannot be nil")
	}
	if len(q.Tags) >= constants.MaxQuestionTags {
		return ErrTagLimitReached
	}
	for i := range q.Tags {
		if q.Tags[i].Name == tag.Name {
			return nil
		}
	}
	tag.IncrementUsage()
	q.Tags = append(q.Tags, *tag)
	return nil
}

// RemoveTag detaches a tag and drops its usage counter.
func (q *Question) RemoveTag(tag *Tag) error {
	if tag == nil {
		return invalidArgf("tag cannot be nil")
	}
	for i := range q.Tags {
		if q.Tags[i].Name == tag.Name {
			if err := tag.DecrementUsage(); err != nil {
				return err
			}
			q.Tags = append(q.Tags[:i], q.Tags[i+1:]...)
			return nil
		}
	}
	return ErrTagNotAttached
}

// IncrementViewCount is called on every read; no state restriction.
func (q *Question) IncrementViewCount() {
	q.ViewCount++
}

// Close moves an open question to closed with a mandatory reason.
func (q *Question) Close(reason string, at time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return invalidArgf("closure reason cannot be empty")
	}
	if q.IsClosed {
		return ErrQuestionClosed
	}
	q.IsClosed = true
	q.ClosedAt = &at
	q.ClosureReason = &reason
	return nil
}

// Reopen returns a closed question to open, clearing the closure record.
// Answered state, score and tags are untouched.
func (q *Question) Reopen() error {
	if !q.IsClosed {
		return ErrQuestionNotClosed
	}
	q.IsClosed = false
	q.ClosedAt = nil
	q.ClosureReason = nil
	return nil
}
