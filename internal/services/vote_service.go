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
	ErrVoteNotFound  = errors.New("vote not found")
	ErrNotVoteOwner  = errors.New("you can only modify your own votes")
	ErrSelfVote      = errors.New("you cannot vote on your own post")
	ErrDuplicateVote = errors.New("you have already voted on this post")
)

// VoteService mediates legal vote creation and mutation, keeping each
// target's cached score in sync with its vote collection. Every write goes
// through the vote repository, which persists the score in the same
// transaction as the vote row.
type VoteService struct {
	voteRepo     repository.VoteRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	userRepo     repository.UserRepository
}

// NewVoteService creates a new VoteService.
func NewVoteService(voteRepo repository.VoteRepository, questionRepo repository.QuestionRepository, answerRepo repository.AnswerRepository, userRepo repository.UserRepository) *VoteService {
	return &VoteService{
		voteRepo:     voteRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		userRepo:     userRepo,
	}
}

func (s *VoteService) loadActiveUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive {
		return nil, models.ErrUserInactive
	}
	return user, nil
}

// GetVote retrieves a vote by ID.
func (s *VoteService) GetVote(voteID uint64) (*models.Vote, error) {
	vote, err := s.voteRepo.FindByID(voteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}
	return vote, nil
}

// ListVotes returns votes with pagination, newest first. A non-nil userID
// restricts the listing to votes cast by that user.
func (s *VoteService) ListVotes(userID *uint64, page, pageSize int) ([]models.Vote, int64, error) {
	votes, total, err := s.voteRepo.List(userID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, total, nil
}

// checkCapability verifies the reputation gate matching the vote type.
func checkCapability(user *models.User, voteType models.VoteType) error {
	switch voteType {
	case models.VoteTypeUpvote:
		ok, err := user.CanUpvote()
		if err != nil {
			return err
		}
		if !ok {
			return &InsufficientReputationError{
				Action:   "upvote",
				Required: constants.UpvoteReputation,
				Current:  user.Reputation,
			}
		}
	case models.VoteTypeDownvote:
		ok, err := user.CanDownvote()
		if err != nil {
			return err
		}
		if !ok {
			return &InsufficientReputationError{
				Action:   "downvote",
				Required: constants.DownvoteReputation,
				Current:  user.Reputation,
			}
		}
	}
	return nil
}

// CastQuestionVote creates a vote on a question. Closed questions and the
// author's own question reject votes; a second vote from the same user is
// rejected here regardless of type; switching types goes through ChangeVote.
func (s *VoteService) CastQuestionVote(questionID, userID uint64, voteType models.VoteType) (*models.Vote, error) {
	user, err := s.loadActiveUser(userID)
	if err != nil {
		return nil, err
	}
	if err := checkCapability(user, voteType); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.FindByID(questionID, "Votes")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}

	if models.SameIdentity(question.AuthorID, user.ID) {
		return nil, ErrSelfVote
	}
	if question.IsClosed {
		return nil, models.ErrQuestionClosed
	}

	if _, err := s.voteRepo.FindByUserAndQuestion(user.ID, question.ID); err == nil {
		return nil, ErrDuplicateVote
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}

	vote, err := models.NewQuestionVote(voteType, user, question)
	if err != nil {
		return nil, err
	}

	replaced, err := question.AddVote(vote)
	if err != nil {
		return nil, err
	}

	if err := s.voteRepo.CreateQuestionVote(vote, question, replaced); err != nil {
		return nil, fmt.Errorf("failed to create vote: %w", err)
	}

	return vote, nil
}

// CastAnswerVote creates a vote on an answer. Answers of closed questions
// and the author's own answer reject votes; duplicates are rejected via the
// vote store since the answer entity carries no duplicate check.
func (s *VoteService) CastAnswerVote(answerID, userID uint64, voteType models.VoteType) (*models.Vote, error) {
	user, err := s.loadActiveUser(userID)
	if err != nil {
		return nil, err
	}
	if err := checkCapability(user, voteType); err != nil {
		return nil, err
	}

	answer, err := s.answerRepo.FindByID(answerID, "Question", "Votes")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to find answer: %w", err)
	}

	if models.SameIdentity(answer.AuthorID, user.ID) {
		return nil, ErrSelfVote
	}
	if answer.Question.IsClosed {
		return nil, models.ErrQuestionClosed
	}

	if _, err := s.voteRepo.FindByUserAndAnswer(user.ID, answer.ID); err == nil {
		return nil, ErrDuplicateVote
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}

	vote, err := models.NewAnswerVote(voteType, user, answer)
	if err != nil {
		return nil, err
	}

	if err := answer.AddVote(vote); err != nil {
		return nil, err
	}

	if err := s.voteRepo.CreateAnswerVote(vote, answer); err != nil {
		return nil, fmt.Errorf("failed to create vote: %w", err)
	}

	return vote, nil
}

// ChangeVote flips an existing vote to a different type and re-derives the
// owning target's score from its mutated vote collection.
func (s *VoteService) ChangeVote(voteID, actorID uint64, newType models.VoteType) (*models.Vote, error) {
	user, err := s.loadActiveUser(actorID)
	if err != nil {
		return nil, err
	}
	if err := checkCapability(user, newType); err != nil {
		return nil, err
	}

	vote, err := s.voteRepo.FindByID(voteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}

	if !models.SameIdentity(vote.UserID, actorID) {
		return nil, ErrNotVoteOwner
	}

	if err := vote.ChangeType(actorID, newType); err != nil {
		return nil, err
	}

	switch {
	case vote.QuestionID != nil:
		question, err := s.questionRepo.FindByID(*vote.QuestionID, "Votes")
		if err != nil {
			return nil, fmt.Errorf("failed to find question: %w", err)
		}
		applyTypeChange(question.Votes, vote)
		question.RecalculateVoteScore()
		if err := s.voteRepo.UpdateQuestionVote(vote, question); err != nil {
			return nil, fmt.Errorf("failed to update vote: %w", err)
		}
	case vote.AnswerID != nil:
		answer, err := s.answerRepo.FindByID(*vote.AnswerID, "Votes")
		if err != nil {
			return nil, fmt.Errorf("failed to find answer: %w", err)
		}
		applyTypeChange(answer.Votes, vote)
		answer.RecalculateVoteScore()
		if err := s.voteRepo.UpdateAnswerVote(vote, answer); err != nil {
			return nil, fmt.Errorf("failed to update vote: %w", err)
		}
	}

	return vote, nil
}

// RetractVote removes a vote and re-derives the owning target's score.
func (s *VoteService) RetractVote(voteID, actorID uint64) error {
	vote, err := s.voteRepo.FindByID(voteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVoteNotFound
		}
		return fmt.Errorf("failed to find vote: %w", err)
	}

	if !models.SameIdentity(vote.UserID, actorID) {
		return ErrNotVoteOwner
	}

	switch {
	case vote.QuestionID != nil:
		question, err := s.questionRepo.FindByID(*vote.QuestionID, "Votes")
		if err != nil {
			return fmt.Errorf("failed to find question: %w", err)
		}
		question.Votes = removeVote(question.Votes, vote.ID)
		question.RecalculateVoteScore()
		if err := s.voteRepo.DeleteQuestionVote(vote, question); err != nil {
			return fmt.Errorf("failed to delete vote: %w", err)
		}
	case vote.AnswerID != nil:
		answer, err := s.answerRepo.FindByID(*vote.AnswerID, "Votes")
		if err != nil {
			return fmt.Errorf("failed to find answer: %w", err)
		}
		answer.Votes = removeVote(answer.Votes, vote.ID)
		answer.RecalculateVoteScore()
		if err := s.voteRepo.DeleteAnswerVote(vote, answer); err != nil {
			return fmt.Errorf("failed to delete vote: %w", err)
		}
	}

	return nil
}

// applyTypeChange mirrors a vote's new type into a freshly loaded vote
// collection so the score recompute sees the mutation.
func applyTypeChange(votes []models.Vote, changed *models.Vote) {
	for i := range votes {
		if votes[i].ID == changed.ID {
			votes[i].Type = changed.Type
			return
		}
	}
}

func removeVote(votes []models.Vote, voteID uint64) []models.Vote {
	for i := range votes {
		if votes[i].ID == voteID {
			return append(votes[:i], votes[i+1:]...)
		}
	}
	return votes
}
