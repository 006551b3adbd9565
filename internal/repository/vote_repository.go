package repository

import (
	"github.com/lhajoosten/studdit-api/internal/database"
	"github.com/lhajoosten/studdit-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVoteRepository is a GORM implementation of VoteRepository
type GormVoteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &GormVoteRepository{db: db}
}

// FindByID finds a vote by ID with optional preloading
func (r *GormVoteRepository) FindByID(id uint64, preload ...string) (*models.Vote, error) {
	var vote models.Vote
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&vote, id).Error; err != nil {
		return nil, err
	}

	return &vote, nil
}

// List lists votes with pagination, newest first
func (r *GormVoteRepository) List(userID *uint64, page, pageSize int) ([]models.Vote, int64, error) {
	var votes []models.Vote

	query := r.db.Model(&models.Vote{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").
		Scopes(database.Paginate(page, pageSize)).
		Find(&votes).Error; err != nil {
		return nil, 0, err
	}

	return votes, total, nil
}

// FindByUserAndQuestion finds a user's vote on a question
func (r *GormVoteRepository) FindByUserAndQuestion(userID, questionID uint64) (*models.Vote, error) {
	var vote models.Vote
	if err := r.db.Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

// FindByUserAndAnswer finds a user's vote on an answer
func (r *GormVoteRepository) FindByUserAndAnswer(userID, answerID uint64) (*models.Vote, error) {
	var vote models.Vote
	if err := r.db.Where("user_id = ? AND answer_id = ?", userID, answerID).
		First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

func writeQuestionScore(tx *gorm.DB, question *models.Question) error {
	return tx.Model(&models.Question{}).Where("id = ?", question.ID).
		Update("vote_score", question.VoteScore).Error
}

func writeAnswerScore(tx *gorm.DB, answer *models.Answer) error {
	return tx.Model(&models.Answer{}).Where("id = ?", answer.ID).
		Update("vote_score", answer.VoteScore).Error
}

// CreateQuestionVote inserts the vote, removes a replaced vote if the cast
// displaced one, and writes back the question's recomputed score.
func (r *GormVoteRepository) CreateQuestionVote(vote *models.Vote, question *models.Question, replaced *models.Vote) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if replaced != nil && replaced.ID != 0 {
			if err := tx.Delete(&models.Vote{}, replaced.ID).Error; err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Create(vote).Error; err != nil {
			return err
		}
		return writeQuestionScore(tx, question)
	})
}

// CreateAnswerVote inserts the vote and writes back the answer's score
func (r *GormVoteRepository) CreateAnswerVote(vote *models.Vote, answer *models.Answer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(vote).Error; err != nil {
			return err
		}
		return writeAnswerScore(tx, answer)
	})
}

// UpdateQuestionVote saves a type change and the question's score
func (r *GormVoteRepository) UpdateQuestionVote(vote *models.Vote, question *models.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(vote).Error; err != nil {
			return err
		}
		return writeQuestionScore(tx, question)
	})
}

// UpdateAnswerVote saves a type change and the answer's score
func (r *GormVoteRepository) UpdateAnswerVote(vote *models.Vote, answer *models.Answer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(vote).Error; err != nil {
			return err
		}
		return writeAnswerScore(tx, answer)
	})
}

// DeleteQuestionVote removes the vote and writes back the question's score
func (r *GormVoteRepository) DeleteQuestionVote(vote *models.Vote, question *models.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Vote{}, vote.ID).Error; err != nil {
			return err
		}
		return writeQuestionScore(tx, question)
	})
}

// DeleteAnswerVote removes the vote and writes back the answer's score
func (r *GormVoteRepository) DeleteAnswerVote(vote *models.Vote, answer *models.Answer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Vote{}, vote.ID).Error; err != nil {
			return err
		}
		return writeAnswerScore(tx, answer)
	})
}
