package models

import (
	"strings"
	"time"

	"github.com/lhajoosten/studdit-api/internal/constants"
)

// Tag carries a normalized lowercase name and a usage counter driven by
// question associations. The counter never goes negative.
type Tag struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:varchar(200);not null" json:"description"`
	UsageCount  int       `gorm:"not null;default:0" json:"usage_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedByID *uint64   `json:"-"`

	// Relations
	Questions []Question `gorm:"many2many:question_tags" json:"-"`
}

func validateTagDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return invalidArgf("tag description cannot be empty")
	}
	if len(description) > constants.MaxTagDescriptionLength {
		return invalidArgf("tag description cannot exceed %d characters", constants.MaxTagDescriptionLength)
	}
	return nil
}

// NewTag validates both fields and normalizes the name to lowercase.
func NewTag(name, description string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidArgf("tag name cannot be empty")
	}
	if len(name) > constants.MaxTagNameLength {
		return nil, invalidArgf("tag name cannot exceed %d characters", constants.MaxTagNameLength)
	}
	if err := validateTagDescription(description); err != nil {
		return nil, err
	}

	return &Tag{
		Name:        strings.ToLower(name),
		Description: description,
	}, nil
}

// IncrementUsage bumps the usage counter.
func (t *Tag) IncrementUsage() {
	t.UsageCount++
}

// DecrementUsage drops the usage counter, failing at zero.
func (t *Tag) DecrementUsage() error {
	if t.UsageCount <= 0 {
		return ErrTagUsageUnderflow
	}
	t.UsageCount--
	return nil
}

// UpdateDescription replaces the description.
func (t *Tag) UpdateDescription(description string) error {
	if err := validateTagDescription(description); err != nil {
		return err
	}
	t.Description = description
	return nil
}
