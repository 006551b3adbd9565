package services

import (
	"testing"

	"github.com/lhajoosten/studdit-api/internal/models"
	"github.com/lhajoosten/studdit-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	voteRepo     repository.VoteRepository
	tagRepo      repository.TagRepository
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Question{},
		&models.Answer{},
		&models.Vote{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		questionRepo: repository.NewQuestionRepository(db),
		answerRepo:   repository.NewAnswerRepository(db),
		voteRepo:     repository.NewVoteRepository(db),
		tagRepo:      repository.NewTagRepository(db),
	}
}

func (env testEnv) createUser(t *testing.T, username string, reputation int) *models.User {
	t.Helper()
	user, err := models.NewUser(username, username+"@example.com", "hashedpassword", username)
	require.NoError(t, err)
	user.Reputation = reputation
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env testEnv) createQuestion(t *testing.T, author *models.User) *models.Question {
	t.Helper()
	question, err := models.NewQuestion(
		"How do I keep a cached score consistent?",
		"I recompute an aggregate on every write and want it transactional.",
		author,
	)
	require.NoError(t, err)
	require.NoError(t, env.questionRepo.Create(question))
	return question
}

func (env testEnv) createAnswer(t *testing.T, author *models.User, question *models.Question) *models.Answer {
	t.Helper()
	answer, err := models.NewAnswer(
		"Recompute inside the same transaction that writes the vote row.",
		author,
		question,
	)
	require.NoError(t, err)
	require.NoError(t, env.answerRepo.Create(answer, question))
	return answer
}
