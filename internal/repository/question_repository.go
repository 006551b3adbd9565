package repository

import (
	"github.com/lhajoosten/studdit-api/internal/database"
	"github.com/lhajoosten/studdit-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormQuestionRepository is a GORM implementation of QuestionRepository
type GormQuestionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &GormQuestionRepository{db: db}
}

// Create persists the question, creates brand-new tags, writes back the
// bumped usage counters of existing tags and inserts the join rows, all in
// one transaction.
func (r *GormQuestionRepository) Create(question *models.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tags := question.Tags
		question.Tags = nil

		if err := tx.Omit(clause.Associations).Create(question).Error; err != nil {
			return err
		}

		for i := range tags {
			if tags[i].ID == 0 {
				if err := tx.Create(&tags[i]).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(&models.Tag{}).Where("id = ?", tags[i].ID).
					Update("usage_count", tags[i].UsageCount).Error; err != nil {
					return err
				}
			}
		}

		if len(tags) > 0 {
			if err := tx.Model(question).Association("Tags").Append(&tags); err != nil {
				return err
			}
		}

		question.Tags = tags
		return nil
	})
}

// FindByID finds a question by ID with optional preloading
func (r *GormQuestionRepository) FindByID(id uint64, preload ...string) (*models.Question, error) {
	var question models.Question
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&question, id).Error; err != nil {
		return nil, err
	}

	return &question, nil
}

// List retrieves questions with filtering and pagination, newest first
func (r *GormQuestionRepository) List(filter QuestionFilter) ([]models.Question, int64, error) {
	var questions []models.Question

	query := r.db.Model(&models.Question{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("questions.title LIKE ? OR questions.content LIKE ?", pattern, pattern)
	}
	if filter.AuthorID != nil {
		query = query.Where("questions.author_id = ?", *filter.AuthorID)
	}
	if filter.Unanswered {
		query = query.Where("questions.is_answered = ?", false)
	}
	if filter.TagName != "" {
		tagSubQuery := r.db.Table("question_tags").
			Select("question_tags.question_id").
			Joins("JOIN tags ON tags.id = question_tags.tag_id").
			Where("tags.name = ?", filter.TagName)
		query = query.Where("questions.id IN (?)", tagSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("questions.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Page, filter.PageSize))
	}

	if err := listQuery.Preload("Author").Preload("Tags").Find(&questions).Error; err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

// Update persists question column changes (not associations)
func (r *GormQuestionRepository) Update(question *models.Question) error {
	return r.db.Omit(clause.Associations).Save(question).Error
}

// Delete removes the question with its answers and votes, and persists the
// already-decremented usage counters carried by question.Tags.
func (r *GormQuestionRepository) Delete(question *models.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}

		answerIDs := tx.Model(&models.Answer{}).Select("id").Where("question_id = ?", question.ID)
		if err := tx.Where("answer_id IN (?)", answerIDs).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}

		for i := range question.Tags {
			if err := tx.Model(&models.Tag{}).Where("id = ?", question.Tags[i].ID).
				Update("usage_count", question.Tags[i].UsageCount).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM question_tags WHERE question_id = ?", question.ID).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Question{}, question.ID).Error
	})
}
