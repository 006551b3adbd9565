package models

import (
	"strings"
	"time"

	"github.com/lhajoosten/studdit-api/internal/constants"
)

// User is the aggregate holding reputation and the privilege gates derived
// from it. Deactivation is the soft-delete marker; an inactive user is
// rejected loudly by every capability check.
type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(320);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName  string     `gorm:"type:varchar(100);not null" json:"display_name"`
	Bio          *string    `gorm:"type:text" json:"bio,omitempty"`
	Reputation   int        `gorm:"not null;default:1" json:"reputation"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	UpdatedByID  *uint64    `json:"-"`

	// Relations
	Questions []Question `gorm:"foreignKey:AuthorID" json:"-"`
	Answers   []Answer   `gorm:"foreignKey:AuthorID" json:"-"`
	Votes     []Vote     `gorm:"foreignKey:UserID" json:"-"`
}

// NewUser validates and builds a user with starting reputation.
// The password must already be hashed.
func NewUser(username, email, passwordHash, displayName string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalidArgf("username cannot be empty")
	}
	if passwordHash == "" {
		return nil, invalidArgf("password hash cannot be empty")
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, invalidArgf("display name cannot be empty")
	}

	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	return &User{
		Username:     username,
		Email:        normalized,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		Reputation:   constants.StartingReputation,
		IsActive:     true,
	}, nil
}

// UpdateProfile replaces the display name and bio.
func (u *User) UpdateProfile(displayName string, bio *string) error {
	if !u.IsActive {
		return ErrUserInactive
	}
	if strings.TrimSpace(displayName) == "" {
		return invalidArgf("display name cannot be empty")
	}
	u.DisplayName = displayName
	u.Bio = bio
	return nil
}

// UpdateEmail validates, normalizes and replaces the email address.
func (u *User) UpdateEmail(email string) error {
	if !u.IsActive {
		return ErrUserInactive
	}
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	u.Email = normalized
	return nil
}

// AddReputation grants points. Negative deltas are rejected; the only way
// reputation decreases is a full reset.
func (u *User) AddReputation(points int) error {
	if points < 0 {
		return ErrNegativeReputation
	}
	u.Reputation += points
	return nil
}

// ResetReputation drops the user back to starting reputation.
func (u *User) ResetReputation() error {
	if !u.IsActive {
		return ErrUserInactive
	}
	u.Reputation = constants.StartingReputation
	return nil
}

// Deactivate soft-deletes the user.
func (u *User) Deactivate() error {
	if !u.IsActive {
		return ErrUserInactive
	}
	u.IsActive = false
	return nil
}

// Activate restores a deactivated user.
func (u *User) Activate() error {
	if u.IsActive {
		return ErrUserAlreadyActive
	}
	u.IsActive = true
	return nil
}

// RecordLogin stamps the last successful login.
func (u *User) RecordLogin(at time.Time) error {
	if !u.IsActive {
		return ErrUserInactive
	}
	u.LastLoginAt = &at
	return nil
}

// Capability gates. Each is a predicate over reputation, except that an
// inactive user gets a hard error rather than a false answer.

func (u *User) CanUpvote() (bool, error) {
	if !u.IsActive {
		return false, ErrUserInactive
	}
	return u.Reputation >= constants.UpvoteReputation, nil
}

func (u *User) CanComment() (bool, error) {
	if !u.IsActive {
		return false, ErrUserInactive
	}
	return u.Reputation >= constants.CommentReputation, nil
}

func (u *User) CanDownvote() (bool, error) {
	if !u.IsActive {
		return false, ErrUserInactive
	}
	return u.Reputation >= constants.DownvoteReputation, nil
}

func (u *User) CanCreateTag() (bool, error) {
	if !u.IsActive {
		return false, ErrUserInactive
	}
	return u.Reputation >= constants.CreateTagReputation, nil
}
