package models

import (
	"time"
)

// Vote links one user to exactly one target: a question or an answer,
// never both, never neither. The constraint is enforced at construction by
// the two factories. The only mutation is a type change, which re-stamps
// the modification metadata; re-deriving the owning target's score is the
// caller's responsibility.
type Vote struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Type        VoteType  `gorm:"type:varchar(10);not null" json:"type"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	QuestionID  *uint64   `gorm:"index" json:"question_id,omitempty"`
	AnswerID    *uint64   `gorm:"index" json:"answer_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedByID *uint64   `json:"-"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Question *Question `gorm:"foreignKey:QuestionID" json:"-"`
	Answer   *Answer   `gorm:"foreignKey:AnswerID" json:"-"`
}

func newVote(voteType VoteType, user *User) (*Vote, error) {
	if !voteType.Castable() {
		return nil, invalidArgf("vote type must be %s or %s", VoteTypeUpvote, VoteTypeDownvote)
	}
	if user == nil {
		return nil, invalidArgf("user cannot be nil")
	}
	actorID := user.ID
	return &Vote{
		Type:        voteType,
		UserID:      user.ID,
		UpdatedByID: &actorID,
	}, nil
}

// NewQuestionVote builds a vote bound to a question.
func NewQuestionVote(voteType VoteType, user *User, question *Question) (*Vote, error) {
	if question == nil {
		return nil, invalidArgf("question cannot be nil")
	}
	vote, err := newVote(voteType, user)
	if err != nil {
		return nil, err
	}
	questionID := question.ID
	vote.QuestionID = &questionID
	return vote, nil
}

// NewAnswerVote builds a vote bound to an answer.
func NewAnswerVote(voteType VoteType, user *User, answer *Answer) (*Vote, error) {
	if answer == nil {
		return nil, invalidArgf("answer cannot be nil")
	}
	vote, err := newVote(voteType, user)
	if err != nil {
		return nil, err
	}
	answerID := answer.ID
	vote.AnswerID = &answerID
	return vote, nil
}

// ChangeType flips the vote to a different type and stamps the modification
// metadata. Changing to the current type is rejected. The caller must
// recompute the owning target's score before persisting.
func (v *Vote) ChangeType(actorID uint64, newType VoteType) error {
	if !newType.Castable() {
		return invalidArgf("vote type must be %s or %s", VoteTypeUpvote, VoteTypeDownvote)
	}
	if v.Type == newType {
		return ErrSameVoteType
	}
	v.Type = newType
	v.UpdatedByID = &actorID
	return nil
}
