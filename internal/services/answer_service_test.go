package services

import (
	"testing"

	"github.com/lhajoosten/studdit-api/internal/models"
	"github.com/stretchr/testify/require"
)

func newAnswerService(env testEnv) *AnswerService {
	return NewAnswerService(env.answerRepo, env.questionRepo, env.userRepo)
}

const answerContent = "Recompute the score inside the transaction that writes the vote."

func TestAnswerService_CreateAnswer(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAnswerService(env)

	author := env.createUser(t, "author", 1)
	answerer := env.createUser(t, "answerer", 1)
	question := env.createQuestion(t, author)

	answer, err := svc.CreateAnswer(CreateAnswerInput{
		Content:    answerContent,
		QuestionID: question.ID,
		AuthorID:   answerer.ID,
	})
	require.NoError(t, err)
	require.NotZero(t, answer.ID)

	// Creating an answer flips the question's answered flag.
	reloaded, err := env.questionRepo.FindByID(question.ID)
	require.NoError(t, err)
	require.True(t, reloaded.IsAnswered)
}

func TestAnswerService_CreateAnswer_ClosedQuestionRejected(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAnswerService(env)

	author := env.createUser(t, "author", 1)
	answerer := env.createUser(t, "answerer", 1)
	question := env.createQuestion(t, author)
	require.NoError(t, env.db.Model(question).Update("is_closed", true).Error)

	_, err := svc.CreateAnswer(CreateAnswerInput{
		Content:    answerContent,
		QuestionID: question.ID,
		AuthorID:   answerer.ID,
	})
	require.ErrorIs(t, err, models.ErrQuestionClosed)
}

func TestAnswerService_CreateAnswer_QuestionNotFound(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAnswerService(env)

	answerer := env.createUser(t, "answerer", 1)

	_, err := svc.CreateAnswer(CreateAnswerInput{
		Content:    answerContent,
		QuestionID: 9999,
		AuthorID:   answerer.ID,
	})
	require.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestAnswerService_UpdateAnswer_AuthorOnly(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAnswerService(env)

	author := env.createUser(t, "author", 1)
	answerer := env.createUser(t, "answerer", 1)
	question := env.createQuestion(t, author)
	answer := env.createAnswer(t, answerer, question)

	_, err := svc.UpdateAnswer(answer.ID, author.ID, answerContent+" Edited.")
	require.ErrorIs(t, err, ErrNotAnswerAuthor)

	updated, err := svc.UpdateAnswer(answer.ID, answerer.ID, answerContent+" Edited.")
	require.NoError(t, err)
	require.Equal(t, answerContent+" Edited.", updated.Content)
}

func TestAnswerService_AcceptAnswer(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAnswerService(env)

	author := env.createUser(t, "author", 1)
	answerer := env.createUser(t, "answerer", 1)
	question := env.createQuestion(t, author)
	answer := env.createAnswer(t, answerer, question)

	accepted, err := svc.AcceptAnswer(answer.ID, author.ID)
	require.NoError(t, err)
	require.True(t, accepted.IsAccepted)

	_, err = svc.AcceptAnswer(answer.ID, author.ID)
	require.ErrorIs(t, err, ErrAlreadyAccepted)
}

func TestAnswerService_AcceptAnswer_ExclusivePerQuestion(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAnswerService(env)

	author := env.createUser(t, "author", 1)
	answerer := env.createUser(t, "answerer", 1)
	question := env.createQuestion(t, author)
	first := env.createAnswer(t, answerer, question)
	second := env.createAnswer(t, answerer, question)

	_, err := svc.AcceptAnswer(first.ID, author.ID)
	require.NoError(t, err)

	_, err = svc.AcceptAnswer(second.ID, author.ID)
	require.NoError(t, err)

	// Accepting the second unmarks the first in the same transaction.
	accepted, err := env.answerRepo.FindAcceptedByQuestion(question.ID)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	require.Equal(t, second.ID, accepted[0].ID)
}

func TestAnswerService_AcceptAnswer_OnlyQuestionAuthor(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAnswerService(env)

	author := env.createUser(t, "author", 1)
	answerer := env.createUser(t, "answerer", 1)
	question := env.createQuestion(t, author)
	answer := env.createAnswer(t, answerer, question)

	_, err := svc.AcceptAnswer(answer.ID, answerer.ID)
	require.ErrorIs(t, err, models.ErrNotQuestionAuthor)
}

func TestAnswerService_AcceptAnswer_ClosedQuestionRejected(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAnswerService(env)

	author := env.createUser(t, "author", 1)
	answerer := env.createUser(t, "answerer", 1)
	question := env.createQuestion(t, author)
	answer := env.createAnswer(t, answerer, question)
	require.NoError(t, env.db.Model(question).Update("is_closed", true).Error)

	_, err := svc.AcceptAnswer(answer.ID, author.ID)
	require.ErrorIs(t, err, models.ErrQuestionClosed)
}

func TestAnswerService_ListByQuestion_AcceptedFirst(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAnswerService(env)

	author := env.createUser(t, "author", 1)
	answerer := env.createUser(t, "answerer", 1)
	question := env.createQuestion(t, author)
	first := env.createAnswer(t, answerer, question)
	second := env.createAnswer(t, answerer, question)

	_, err := svc.AcceptAnswer(second.ID, author.ID)
	require.NoError(t, err)

	answers, err := svc.ListByQuestion(question.ID)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	require.Equal(t, second.ID, answers[0].ID)
	require.Equal(t, first.ID, answers[1].ID)
}

func TestAnswerService_DeleteAnswer_AuthorOnly(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAnswerService(env)

	author := env.createUser(t, "author", 1)
	answerer := env.createUser(t, "answerer", 1)
	question := env.createQuestion(t, author)
	answer := env.createAnswer(t, answerer, question)

	require.ErrorIs(t, svc.DeleteAnswer(answer.ID, author.ID), ErrNotAnswerAuthor)

	require.NoError(t, svc.DeleteAnswer(answer.ID, answerer.ID))

	_, err := svc.GetAnswer(answer.ID)
	require.ErrorIs(t, err, ErrAnswerNotFound)
}

func TestAnswerService_ListAnswers(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAnswerService(env)

	asker := env.createUser(t, "asker", 1)
	helper := env.createUser(t, "helper", 1)
	question := env.createQuestion(t, asker)
	first := env.createAnswer(t, helper, question)
	second := env.createAnswer(t, helper, question)

	_, err := svc.AcceptAnswer(second.ID, asker.ID)
	require.NoError(t, err)

	all, total, err := svc.ListAnswers(1, 20, false)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, all, 2)

	accepted, total, err := svc.ListAnswers(1, 20, true)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, accepted, 1)
	require.Equal(t, second.ID, accepted[0].ID)
	require.NotEqual(t, first.ID, accepted[0].ID)
}
