package repository

import (
	"github.com/lhajoosten/studdit-api/internal/database"
	"github.com/lhajoosten/studdit-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by normalized email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users with pagination, newest first
func (r *GormUserRepository) List(page, pageSize int) ([]models.User, int64, error) {
	var users []models.User

	query := r.db.Model(&models.User{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Scopes(database.Paginate(page, pageSize)).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update persists user column changes
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Omit(clause.Associations).Save(user).Error
}

// DeactivateAndPurge saves the deactivated user and hard-deletes everything
// they authored or voted on. Irreversible and audit-losing: scores of
// targets the purged votes pointed at are not recomputed.
func (r *GormUserRepository) DeactivateAndPurge(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Votes cast by the user
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}

		// Votes on the user's answers, then the answers themselves
		answerIDs := tx.Model(&models.Answer{}).Select("id").Where("author_id = ?", user.ID)
		if err := tx.Where("answer_id IN (?)", answerIDs).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", user.ID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}

		// Votes and answers under the user's questions, then the questions
		questionIDs := tx.Model(&models.Question{}).Select("id").Where("author_id = ?", user.ID)
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		nestedAnswerIDs := tx.Model(&models.Answer{}).Select("id").Where("question_id IN (?)", questionIDs)
		if err := tx.Where("answer_id IN (?)", nestedAnswerIDs).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM question_tags WHERE question_id IN (?)",
			tx.Model(&models.Question{}).Select("id").Where("author_id = ?", user.ID)).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", user.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Save(user).Error
	})
}

// CountAuthored returns the number of questions and answers a user wrote
func (r *GormUserRepository) CountAuthored(userID uint64) (int64, int64, error) {
	var questions, answers int64

	if err := r.db.Model(&models.Question{}).Where("author_id = ?", userID).Count(&questions).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&models.Answer{}).Where("author_id = ?", userID).Count(&answers).Error; err != nil {
		return 0, 0, err
	}

	return questions, answers, nil
}
