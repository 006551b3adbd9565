package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lhajoosten/studdit-api/internal/constants"
	"github.com/lhajoosten/studdit-api/internal/models"
	"github.com/lhajoosten/studdit-api/internal/repository"
	"gorm.io/gorm"
)

var ErrQuestionNotFound = errors.New("question not found")

// InsufficientReputationError reports how many reputation points the actor
// is short of for a gated action.
type InsufficientReputationError struct {
	Action   string
	Required int
	Current  int
}

func (e *InsufficientReputationError) Error() string {
	return fmt.Sprintf("you need %d more reputation points to %s", e.Required-e.Current, e.Action)
}

// QuestionService handles question business logic.
type QuestionService struct {
	questionRepo repository.QuestionRepository
	tagRepo      repository.TagRepository
	userRepo     repository.UserRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo repository.QuestionRepository, tagRepo repository.TagRepository, userRepo repository.UserRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		tagRepo:      tagRepo,
		userRepo:     userRepo,
	}
}

func (s *QuestionService) loadActiveUser(id uint64) (*models.User, error) {
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

// CreateQuestionInput represents input for asking a question.
type CreateQuestionInput struct {
	Title    string
	Content  string
	TagNames []string
	AuthorID uint64
}

// CreateQuestion validates the body, resolves tags (creating unknown ones
// when the author's reputation allows) and persists the question.
func (s *QuestionService) CreateQuestion(input CreateQuestionInput) (*models.Question, error) {
	author, err := s.loadActiveUser(input.AuthorID)
	if err != nil {
		return nil, err
	}

	question, err := models.NewQuestion(input.Title, input.Content, author)
	if err != nil {
		return nil, err
	}

	names := normalizeTagNames(input.TagNames)
	existing, err := s.tagRepo.FindByNames(names)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tags: %w", err)
	}

	known := make(map[string]struct{}, len(existing))
	for _, tag := range existing {
		known[tag.Name] = struct{}{}
	}
	var missing []string
	for _, name := range names {
		if _, ok := known[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		ok, err := author.CanCreateTag()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &InsufficientReputationError{
				Action:   "create new tags",
				Required: constants.CreateTagReputation,
				Current:  author.Reputation,
			}
		}
	}

	for i := range existing {
		if err := question.AddTag(&existing[i]); err != nil {
			return nil, err
		}
	}
	for _, name := range missing {
		tag, err := models.NewTag(name, fmt.Sprintf("Description for %s", name))
		if err != nil {
			return nil, err
		}
		if err := question.AddTag(tag); err != nil {
			return nil, err
		}
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return question, nil
}

// GetQuestion returns a question with related data and bumps its view
// count. The increment is read-modify-write without protection; concurrent
// reads may lose counts, which is accepted.
func (s *QuestionService) GetQuestion(questionID uint64) (*models.Question, error) {
	question, err := s.questionRepo.FindByID(questionID, "Author", "Tags", "Answers", "Answers.Author")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}

	question.IncrementViewCount()
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to update view count: %w", err)
	}

	return question, nil
}

// ListQuestionsInput represents filters for listing questions.
type ListQuestionsInput struct {
	Search     string
	TagName    string
	AuthorID   *uint64
	Unanswered bool
	Page       int
	PageSize   int
}

// ListQuestions returns questions matching the filters, newest first.
func (s *QuestionService) ListQuestions(input ListQuestionsInput) ([]models.Question, int64, error) {
	filter := repository.QuestionFilter{
		Search:     input.Search,
		TagName:    strings.ToLower(strings.TrimSpace(input.TagName)),
		AuthorID:   input.AuthorID,
		Unanswered: input.Unanswered,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}

	questions, total, err := s.questionRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}

	return questions, total, nil
}

// UpdateQuestion re-validates and replaces title and content. Author only,
// open questions only.
func (s *QuestionService) UpdateQuestion(questionID, actorID uint64, title, content string) (*models.Question, error) {
	question, err := s.findQuestion(questionID)
	if err != nil {
		return nil, err
	}

	if !models.SameIdentity(question.AuthorID, actorID) {
		return nil, models.ErrNotQuestionAuthor
	}

	if err := question.Update(title, content); err != nil {
		return nil, err
	}

	question.UpdatedByID = &actorID
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	return question, nil
}

// DeleteQuestion removes a question with its answers and votes, releasing
// tag usage. Author only.
func (s *QuestionService) DeleteQuestion(questionID, actorID uint64) error {
	question, err := s.questionRepo.FindByID(questionID, "Tags")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to find question: %w", err)
	}

	if !models.SameIdentity(question.AuthorID, actorID) {
		return models.ErrNotQuestionAuthor
	}

	for i := range question.Tags {
		if err := question.Tags[i].DecrementUsage(); err != nil {
			return err
		}
	}

	if err := s.questionRepo.Delete(question); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	return nil
}

// CloseQuestion moves an open question to closed. Author only.
func (s *QuestionService) CloseQuestion(questionID, actorID uint64, reason string) (*models.Question, error) {
	question, err := s.findQuestion(questionID)
	if err != nil {
		return nil, err
	}

	if !models.SameIdentity(question.AuthorID, actorID) {
		return nil, models.ErrNotQuestionAuthor
	}

	if err := question.Close(reason, time.Now()); err != nil {
		return nil, err
	}

	question.UpdatedByID = &actorID
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to close question: %w", err)
	}

	return question, nil
}

// ReopenQuestion returns a closed question to open. Author only.
func (s *QuestionService) ReopenQuestion(questionID, actorID uint64) (*models.Question, error) {
	question, err := s.findQuestion(questionID)
	if err != nil {
		return nil, err
	}

	if !models.SameIdentity(question.AuthorID, actorID) {
		return nil, models.ErrNotQuestionAuthor
	}

	if err := question.Reopen(); err != nil {
		return nil, err
	}

	question.UpdatedByID = &actorID
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to reopen question: %w", err)
	}

	return question, nil
}

func (s *QuestionService) findQuestion(questionID uint64) (*models.Question, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}
	return question, nil
}

// normalizeTagNames lowercases, trims and de-duplicates tag names while
// preserving order.
func normalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}

	return result
}
