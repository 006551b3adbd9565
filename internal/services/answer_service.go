package services

import (
	"errors"
	"fmt"

	"github.com/lhajoosten/studdit-api/internal/models"
	"github.com/lhajoosten/studdit-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAnswerNotFound  = errors.New("answer not found")
	ErrNotAnswerAuthor = errors.New("only the author can modify this answer")
	ErrAlreadyAccepted = errors.New("answer is already accepted")
)

// AnswerService handles answer business logic, including the acceptance
// orchestration that keeps at most one accepted answer per question.
type AnswerService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(answerRepo repository.AnswerRepository, questionRepo repository.QuestionRepository, userRepo repository.UserRepository) *AnswerService {
	return &AnswerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
	}
}

func (s *AnswerService) loadActiveUser(id uint64) (*models.User, error) {
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

// CreateAnswerInput represents input for answering a question.
type CreateAnswerInput struct {
	Content    string
	QuestionID uint64
	AuthorID   uint64
}

// CreateAnswer attaches a new answer to an open question, marking the
// question answered.
func (s *AnswerService) CreateAnswer(input CreateAnswerInput) (*models.Answer, error) {
	author, err := s.loadActiveUser(input.AuthorID)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.FindByID(input.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}

	answer, err := models.NewAnswer(input.Content, author, question)
	if err != nil {
		return nil, err
	}

	if err := question.AddAnswer(answer); err != nil {
		return nil, err
	}

	if err := s.answerRepo.Create(answer, question); err != nil {
		return nil, fmt.Errorf("failed to create answer: %w", err)
	}

	return answer, nil
}

// GetAnswer returns an answer with its author and owning question.
func (s *AnswerService) GetAnswer(answerID uint64) (*models.Answer, error) {
	answer, err := s.answerRepo.FindByID(answerID, "Author", "Question")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to find answer: %w", err)
	}
	return answer, nil
}

// ListByQuestion returns a question's answers, accepted and highest scored
// first.
func (s *AnswerService) ListByQuestion(questionID uint64) ([]models.Answer, error) {
	if _, err := s.questionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}

	answers, err := s.answerRepo.ListByQuestion(questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	return answers, nil
}

// ListAnswers returns answers across all questions with pagination, newest
// first. acceptedOnly restricts the listing to accepted answers.
func (s *AnswerService) ListAnswers(page, pageSize int, acceptedOnly bool) ([]models.Answer, int64, error) {
	answers, total, err := s.answerRepo.List(page, pageSize, acceptedOnly)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list answers: %w", err)
	}
	return answers, total, nil
}

// ListByAuthor returns a user's answers with pagination.
func (s *AnswerService) ListByAuthor(authorID uint64, page, pageSize int) ([]models.Answer, int64, error) {
	answers, total, err := s.answerRepo.ListByAuthor(authorID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list answers: %w", err)
	}
	return answers, total, nil
}

// UpdateAnswer replaces the content. Author only; rejected while the owning
// question is closed.
func (s *AnswerService) UpdateAnswer(answerID, actorID uint64, content string) (*models.Answer, error) {
	answer, err := s.answerRepo.FindByID(answerID, "Question")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to find answer: %w", err)
	}

	if !models.SameIdentity(answer.AuthorID, actorID) {
		return nil, ErrNotAnswerAuthor
	}

	if err := answer.Update(content); err != nil {
		return nil, err
	}

	answer.UpdatedByID = &actorID
	if err := s.answerRepo.Update(answer); err != nil {
		return nil, fmt.Errorf("failed to update answer: %w", err)
	}

	return answer, nil
}

// DeleteAnswer removes an answer and its votes. Author only. The owning
// question's answered flag stays set even when the last answer goes.
func (s *AnswerService) DeleteAnswer(answerID, actorID uint64) error {
	answer, err := s.answerRepo.FindByID(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnswerNotFound
		}
		return fmt.Errorf("failed to find answer: %w", err)
	}

	if !models.SameIdentity(answer.AuthorID, actorID) {
		return ErrNotAnswerAuthor
	}

	if err := s.answerRepo.Delete(answerID); err != nil {
		return fmt.Errorf("failed to delete answer: %w", err)
	}

	return nil
}

// AcceptAnswer marks an answer as the accepted one for its question. Only
// the question's author may accept, the question must be open and the
// answer not already accepted. Any previously accepted siblings are
// unmarked in the same transaction.
func (s *AnswerService) AcceptAnswer(answerID, actorID uint64) (*models.Answer, error) {
	if _, err := s.loadActiveUser(actorID); err != nil {
		return nil, err
	}

	answer, err := s.answerRepo.FindByID(answerID, "Question")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to find answer: %w", err)
	}

	if !models.SameIdentity(answer.Question.AuthorID, actorID) {
		return nil, models.ErrNotQuestionAuthor
	}
	if answer.Question.IsClosed {
		return nil, models.ErrQuestionClosed
	}
	if answer.IsAccepted {
		return nil, ErrAlreadyAccepted
	}

	siblings, err := s.answerRepo.FindAcceptedByQuestion(answer.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find accepted answers: %w", err)
	}

	for i := range siblings {
		if err := siblings[i].UnmarkAccepted(); err != nil {
			return nil, err
		}
	}

	if err := answer.MarkAccepted(actorID); err != nil {
		return nil, err
	}

	if err := s.answerRepo.Accept(answer, siblings); err != nil {
		return nil, fmt.Errorf("failed to accept answer: %w", err)
	}

	return answer, nil
}
