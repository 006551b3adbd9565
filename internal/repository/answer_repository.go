package repository

import (
	"github.com/lhajoosten/studdit-api/internal/database"
	"github.com/lhajoosten/studdit-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAnswerRepository is a GORM implementation of AnswerRepository
type GormAnswerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &GormAnswerRepository{db: db}
}

// Create persists the answer and the owning question's answered flag in one
// transaction.
func (r *GormAnswerRepository) Create(answer *models.Answer, question *models.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(answer).Error; err != nil {
			return err
		}

		return tx.Model(&models.Question{}).Where("id = ?", question.ID).
			Update("is_answered", question.IsAnswered).Error
	})
}

// FindByID finds an answer by ID with optional preloading
func (r *GormAnswerRepository) FindByID(id uint64, preload ...string) (*models.Answer, error) {
	var answer models.Answer
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&answer, id).Error; err != nil {
		return nil, err
	}

	return &answer, nil
}

// ListByQuestion lists a question's answers, accepted first then by score
func (r *GormAnswerRepository) ListByQuestion(questionID uint64) ([]models.Answer, error) {
	var answers []models.Answer
	if err := r.db.Preload("Author").
		Where("question_id = ?", questionID).
		Order("is_accepted DESC, vote_score DESC, created_at ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

// List lists answers across all questions with pagination, newest first
func (r *GormAnswerRepository) List(page, pageSize int, acceptedOnly bool) ([]models.Answer, int64, error) {
	var answers []models.Answer

	query := r.db.Model(&models.Answer{})
	if acceptedOnly {
		query = query.Where("is_accepted = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Author").Order("created_at DESC").
		Scopes(database.Paginate(page, pageSize)).
		Find(&answers).Error; err != nil {
		return nil, 0, err
	}

	return answers, total, nil
}

// ListByAuthor lists a user's answers with pagination, newest first
func (r *GormAnswerRepository) ListByAuthor(authorID uint64, page, pageSize int) ([]models.Answer, int64, error) {
	var answers []models.Answer

	query := r.db.Model(&models.Answer{}).Where("author_id = ?", authorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Scopes(database.Paginate(page, pageSize)).
		Find(&answers).Error; err != nil {
		return nil, 0, err
	}

	return answers, total, nil
}

// FindAcceptedByQuestion returns all currently accepted answers of a question
func (r *GormAnswerRepository) FindAcceptedByQuestion(questionID uint64) ([]models.Answer, error) {
	var answers []models.Answer
	if err := r.db.Where("question_id = ? AND is_accepted = ?", questionID, true).
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

// Update persists answer column changes
func (r *GormAnswerRepository) Update(answer *models.Answer) error {
	return r.db.Omit(clause.Associations).Save(answer).Error
}

// Delete removes the answer and its votes in one transaction
func (r *GormAnswerRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("answer_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Answer{}, id).Error
	})
}

// Accept persists the unmarked siblings and the newly accepted answer in one
// transaction, keeping at most one accepted answer per question.
func (r *GormAnswerRepository) Accept(answer *models.Answer, unmarked []models.Answer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range unmarked {
			if err := tx.Model(&models.Answer{}).Where("id = ?", unmarked[i].ID).
				Update("is_accepted", false).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Answer{}).Where("id = ?", answer.ID).
			Update("is_accepted", true).Error
	})
}
