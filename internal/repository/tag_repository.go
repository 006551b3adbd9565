package repository

import (
	"github.com/lhajoosten/studdit-api/internal/database"
	"github.com/lhajoosten/studdit-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// Create creates a new tag
func (r *GormTagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// FindByID finds a tag by ID
func (r *GormTagRepository) FindByID(id uint64) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByName finds a tag by its normalized name
func (r *GormTagRepository) FindByName(name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByNames finds all tags whose normalized names are in the list
func (r *GormTagRepository) FindByNames(names []string) ([]models.Tag, error) {
	var tags []models.Tag
	if len(names) == 0 {
		return tags, nil
	}
	if err := r.db.Where("name IN ?", names).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// List retrieves tags with pagination, most used first
func (r *GormTagRepository) List(page, pageSize int) ([]models.Tag, int64, error) {
	var tags []models.Tag

	query := r.db.Model(&models.Tag{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("usage_count DESC, name ASC").Scopes(database.Paginate(page, pageSize)).
		Find(&tags).Error; err != nil {
		return nil, 0, err
	}

	return tags, total, nil
}

// Update persists tag column changes
func (r *GormTagRepository) Update(tag *models.Tag) error {
	return r.db.Omit(clause.Associations).Save(tag).Error
}
