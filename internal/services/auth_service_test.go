package services

import (
	"testing"

	"github.com/lhajoosten/studdit-api/internal/constants"
	"github.com/lhajoosten/studdit-api/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Signup(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewAuthService(env.userRepo)

	user, err := svc.Signup(SignupInput{
		Username:    "alice",
		Email:       "Alice@Example.com",
		Password:    "supersecret",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, constants.StartingReputation, user.Reputation)
	require.True(t, user.IsActive)

	// The password is stored hashed.
	require.NotEqual(t, "supersecret", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
}

func TestAuthService_Signup_ShortPassword(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewAuthService(env.userRepo)

	_, err := svc.Signup(SignupInput{
		Username:    "alice",
		Email:       "alice@example.com",
		Password:    "short",
		DisplayName: "Alice",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Signup_DuplicateUsernameAndEmail(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewAuthService(env.userRepo)

	_, err := svc.Signup(SignupInput{
		Username:    "alice",
		Email:       "alice@example.com",
		Password:    "supersecret",
		DisplayName: "Alice",
	})
	require.NoError(t, err)

	_, err = svc.Signup(SignupInput{
		Username:    "alice",
		Email:       "other@example.com",
		Password:    "supersecret",
		DisplayName: "Alice",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Signup(SignupInput{
		Username:    "alice2",
		Email:       "alice@example.com",
		Password:    "supersecret",
		DisplayName: "Alice",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Signup_InvalidEmail(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewAuthService(env.userRepo)

	_, err := svc.Signup(SignupInput{
		Username:    "alice",
		Email:       "not-an-email",
		Password:    "supersecret",
		DisplayName: "Alice",
	})
	require.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestAuthService_Login(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewAuthService(env.userRepo)

	_, err := svc.Signup(SignupInput{
		Username:    "alice",
		Email:       "alice@example.com",
		Password:    "supersecret",
		DisplayName: "Alice",
	})
	require.NoError(t, err)

	user, err := svc.Login(LoginInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)
	require.NotNil(t, user.LastLoginAt)

	_, err = svc.Login(LoginInput{Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginInput{Username: "nobody", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewAuthService(env.userRepo)

	user, err := svc.Signup(SignupInput{
		Username:    "alice",
		Email:       "alice@example.com",
		Password:    "supersecret",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	require.NoError(t, env.db.Model(user).Update("is_active", false).Error)

	_, err = svc.Login(LoginInput{Username: "alice", Password: "supersecret"})
	require.ErrorIs(t, err, models.ErrUserInactive)
}
