package repository

import (
	"github.com/lhajoosten/studdit-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users with pagination, newest first
	List(page, pageSize int) ([]models.User, int64, error)

	// Update persists user column changes
	Update(user *models.User) error

	// DeactivateAndPurge saves the deactivated user and hard-deletes their
	// authored questions, answers and cast votes in one transaction.
	DeactivateAndPurge(user *models.User) error

	// CountAuthored returns the number of questions and answers a user wrote
	CountAuthored(userID uint64) (questions int64, answers int64, err error)
}

// QuestionFilter holds filtering options for listing questions
type QuestionFilter struct {
	Search     string
	TagName    string
	AuthorID   *uint64
	Unanswered bool
	Page       int
	PageSize   int
}

// QuestionRepository defines the interface for question data access
type QuestionRepository interface {
	// Create persists a new question together with its tag associations and
	// the updated usage counters of existing tags, in one transaction.
	Create(question *models.Question) error

	// FindByID finds a question by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Question, error)

	// List retrieves questions with filtering and pagination
	List(filter QuestionFilter) ([]models.Question, int64, error)

	// Update persists question column changes (not associations)
	Update(question *models.Question) error

	// Delete removes the question, its answers and all attached votes, and
	// persists the already-decremented usage counters of question.Tags,
	// in one transaction.
	Delete(question *models.Question) error
}

// AnswerRepository defines the interface for answer data access
type AnswerRepository interface {
	// Create persists a new answer and the owning question's answered flag
	// in one transaction.
	Create(answer *models.Answer, question *models.Question) error

	// FindByID finds an answer by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Answer, error)

	// ListByQuestion lists a question's answers, accepted and score first
	ListByQuestion(questionID uint64) ([]models.Answer, error)

	// List lists answers across all questions with pagination, newest first;
	// acceptedOnly restricts the listing to accepted answers.
	List(page, pageSize int, acceptedOnly bool) ([]models.Answer, int64, error)

	// ListByAuthor lists a user's answers with pagination
	ListByAuthor(authorID uint64, page, pageSize int) ([]models.Answer, int64, error)

	// FindAcceptedByQuestion returns all currently accepted answers of a question
	FindAcceptedByQuestion(questionID uint64) ([]models.Answer, error)

	// Update persists answer column changes
	Update(answer *models.Answer) error

	// Delete removes the answer and its votes in one transaction
	Delete(id uint64) error

	// Accept persists the unmarked siblings and the newly accepted answer
	// in one transaction.
	Accept(answer *models.Answer, unmarked []models.Answer) error
}

// VoteRepository defines the interface for vote data access. Every write
// also persists the owning target's recomputed score in the same
// transaction.
type VoteRepository interface {
	// FindByID finds a vote by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Vote, error)

	// List lists votes with pagination, newest first; a non-nil userID
	// restricts the listing to that user's votes.
	List(userID *uint64, page, pageSize int) ([]models.Vote, int64, error)

	// FindByUserAndQuestion finds a user's vote on a question
	FindByUserAndQuestion(userID, questionID uint64) (*models.Vote, error)

	// FindByUserAndAnswer finds a user's vote on an answer
	FindByUserAndAnswer(userID, answerID uint64) (*models.Vote, error)

	// CreateQuestionVote inserts the vote, deletes the replaced vote if the
	// cast displaced an earlier one, and writes back the question score.
	CreateQuestionVote(vote *models.Vote, question *models.Question, replaced *models.Vote) error

	// CreateAnswerVote inserts the vote and writes back the answer score
	CreateAnswerVote(vote *models.Vote, answer *models.Answer) error

	// UpdateQuestionVote saves a type change and the question score
	UpdateQuestionVote(vote *models.Vote, question *models.Question) error

	// UpdateAnswerVote saves a type change and the answer score
	UpdateAnswerVote(vote *models.Vote, answer *models.Answer) error

	// DeleteQuestionVote removes the vote and writes back the question score
	DeleteQuestionVote(vote *models.Vote, question *models.Question) error

	// DeleteAnswerVote removes the vote and writes back the answer score
	DeleteAnswerVote(vote *models.Vote, answer *models.Answer) error
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// Create creates a new tag
	Create(tag *models.Tag) error

	// FindByID finds a tag by ID
	FindByID(id uint64) (*models.Tag, error)

	// FindByName finds a tag by its normalized name
	FindByName(name string) (*models.Tag, error)

	// FindByNames finds all tags whose normalized names are in the list
	FindByNames(names []string) ([]models.Tag, error)

	// List retrieves tags with pagination, most used first
	List(page, pageSize int) ([]models.Tag, int64, error)

	// Update persists tag column changes
	Update(tag *models.Tag) error
}
