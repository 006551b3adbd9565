package services

import (
	"testing"

	"github.com/lhajoosten/studdit-api/internal/constants"
	"github.com/lhajoosten/studdit-api/internal/models"
	"github.com/stretchr/testify/require"
)

func newVoteService(env testEnv) *VoteService {
	return NewVoteService(env.voteRepo, env.questionRepo, env.answerRepo, env.userRepo)
}

func (env testEnv) questionScore(t *testing.T, id uint64) int {
	t.Helper()
	var question models.Question
	require.NoError(t, env.db.First(&question, id).Error)
	return question.VoteScore
}

func (env testEnv) answerScore(t *testing.T, id uint64) int {
	t.Helper()
	var answer models.Answer
	require.NoError(t, env.db.First(&answer, id).Error)
	return answer.VoteScore
}

func TestVoteService_CastQuestionVote(t *testing.T) {
	env := setupTestEnv(t)
	svc := newVoteService(env)

	author := env.createUser(t, "author", 1)
	voter := env.createUser(t, "voter", constants.UpvoteReputation)
	question := env.createQuestion(t, author)

	vote, err := svc.CastQuestionVote(question.ID, voter.ID, models.VoteTypeUpvote)
	require.NoError(t, err)
	require.NotZero(t, vote.ID)
	require.Equal(t, models.VoteTypeUpvote, vote.Type)

	require.Equal(t, 1, env.questionScore(t, question.ID))
}

func TestVoteService_CastQuestionVote_InsufficientReputation(t *testing.T) {
	env := setupTestEnv(t)
	svc := newVoteService(env)

	author := env.createUser(t, "author", 1)
	question := env.createQuestion(t, author)

	voter := env.createUser(t, "voter", constants.UpvoteReputation-1)
	_, err := svc.CastQuestionVote(question.ID, voter.ID, models.VoteTypeUpvote)

	var repErr *InsufficientReputationError
	require.ErrorAs(t, err, &repErr)
	require.Equal(t, "upvote", repErr.Action)
	require.Equal(t, "you need 1 more reputation points to upvote", err.Error())

	// Downvoting is gated separately, with a higher bar.
	downvoter := env.createUser(t, "downvoter", constants.DownvoteReputation-1)
	_, err = svc.CastQuestionVote(question.ID, downvoter.ID, models.VoteTypeDownvote)
	require.ErrorAs(t, err, &repErr)
	require.Equal(t, "downvote", repErr.Action)
}

func TestVoteService_CastQuestionVote_SelfVoteRejected(t *testing.T) {
	env := setupTestEnv(t)
	svc := newVoteService(env)

	author := env.createUser(t, "author", constants.DownvoteReputation)
	question := env.createQuestion(t, author)

	_, err := svc.CastQuestionVote(question.ID, author.ID, models.VoteTypeUpvote)
	require.ErrorIs(t, err, ErrSelfVote)
}

func TestVoteService_CastQuestionVote_ClosedRejected(t *testing.T) {
	env := setupTestEnv(t)
	svc := newVoteService(env)

	author := env.createUser(t, "author", 1)
	voter := env.createUser(t, "voter", constants.UpvoteReputation)
	question := env.createQuestion(t, author)
	require.NoError(t, env.db.Model(question).Update("is_closed", true).Error)

	_, err := svc.CastQuestionVote(question.ID, voter.ID, models.VoteTypeUpvote)
	require.ErrorIs(t, err, models.ErrQuestionClosed)
}

func TestVoteService_CastQuestionVote_DuplicateRejected(t *testing.T) {
	env := setupTestEnv(t)
	svc := newVoteService(env)

	author := env.createUser(t, "author", 1)
	voter := env.createUser(t, "voter", constants.DownvoteReputation)
	question := env.createQuestion(t, author)

	_, err := svc.CastQuestionVote(question.ID, voter.ID, models.VoteTypeUpvote)
	require.NoError(t, err)

	_, err = svc.CastQuestionVote(question.ID, voter.ID, models.VoteTypeUpvote)
	require.ErrorIs(t, err, ErrDuplicateVote)

	// A second vote of the other type is also a duplicate; switching goes
	// through ChangeVote.
	_, err = svc.CastQuestionVote(question.ID, voter.ID, models.VoteTypeDownvote)
	require.ErrorIs(t, err, ErrDuplicateVote)
}

func TestVoteService_CastQuestionVote_InactiveUserRejected(t *testing.T) {
	env := setupTestEnv(t)
	svc := newVoteService(env)

	author := env.createUser(t, "author", 1)
	question := env.createQuestion(t, author)

	voter := env.createUser(t, "voter", constants.UpvoteReputation)
	require.NoError(t, env.db.Model(voter).Update("is_active", false).Error)

	_, err := svc.CastQuestionVote(question.ID, voter.ID, models.VoteTypeUpvote)
	require.ErrorIs(t, err, models.ErrUserInactive)
}

func TestVoteService_CastAnswerVote(t *testing.T) {
	env := setupTestEnv(t)
	svc := newVoteService(env)

	author := env.createUser(t, "author", 1)
	answerer := env.createUser(t, "answerer", 1)
	voter := env.createUser(t, "voter", constants.UpvoteReputation)
	question := env.createQuestion(t, author)
	answer := env.createAnswer(t, answerer, question)

	vote, err := svc.CastAnswerVote(answer.ID, voter.ID, models.VoteTypeUpvote)
	require.NoError(t, err)
	require.NotNil(t, vote.AnswerID)

	require.Equal(t, 1, env.answerScore(t, answer.ID))

	// The answer author cannot vote on their own answer.
	_, err = svc.CastAnswerVote(answer.ID, answerer.ID, models.VoteTypeUpvote)
	require.ErrorIs(t, err, ErrSelfVote)
}

func TestVoteService_CastAnswerVote_ClosedQuestionRejected(t *testing.T) {
	env := setupTestEnv(t)
	svc := newVoteService(env)

	author := env.createUser(t, "author", 1)
	answerer := env.createUser(t, "answerer", 1)
	voter := env.createUser(t, "voter", constants.UpvoteReputation)
	question := env.createQuestion(t, author)
	answer := env.createAnswer(t, answerer, question)
	require.NoError(t, env.db.Model(question).Update("is_closed", true).Error)

	_, err := svc.CastAnswerVote(answer.ID, voter.ID, models.VoteTypeUpvote)
	require.ErrorIs(t, err, models.ErrQuestionClosed)
}

func TestVoteService_ChangeVote(t *testing.T) {
	env := setupTestEnv(t)
	svc := newVoteService(env)

	author := env.createUser(t, "author", 1)
	voter := env.createUser(t, "voter", constants.DownvoteReputation)
	question := env.createQuestion(t, author)

	vote, err := svc.CastQuestionVote(question.ID, voter.ID, models.VoteTypeUpvote)
	require.NoError(t, err)
	require.Equal(t, 1, env.questionScore(t, question.ID))

	changed, err := svc.ChangeVote(vote.ID, voter.ID, models.VoteTypeDownvote)
	require.NoError(t, err)
	require.Equal(t, models.VoteTypeDownvote, changed.Type)

	// A flipped vote swings the score by two.
	require.Equal(t, -1, env.questionScore(t, question.ID))

	_, err = svc.ChangeVote(vote.ID, voter.ID, models.VoteTypeDownvote)
	require.ErrorIs(t, err, models.ErrSameVoteType)
}

func TestVoteService_ChangeVote_ChecksGateForNewType(t *testing.T) {
	env := setupTestEnv(t)
	svc := newVoteService(env)

	author := env.createUser(t, "author", 1)
	voter := env.createUser(t, "voter", constants.UpvoteReputation)
	question := env.createQuestion(t, author)

	vote, err := svc.CastQuestionVote(question.ID, voter.ID, models.VoteTypeUpvote)
	require.NoError(t, err)

	// Enough reputation to upvote is not enough to downvote.
	var repErr *InsufficientReputationError
	_, err = svc.ChangeVote(vote.ID, voter.ID, models.VoteTypeDownvote)
	require.ErrorAs(t, err, &repErr)
	require.Equal(t, "downvote", repErr.Action)
}

func TestVoteService_ChangeVote_OnlyOwner(t *testing.T) {
	env := setupTestEnv(t)
	svc := newVoteService(env)

	author := env.createUser(t, "author", 1)
	voter := env.createUser(t, "voter", constants.DownvoteReputation)
	other := env.createUser(t, "other", constants.DownvoteReputation)
	question := env.createQuestion(t, author)

	vote, err := svc.CastQuestionVote(question.ID, voter.ID, models.VoteTypeUpvote)
	require.NoError(t, err)

	_, err = svc.ChangeVote(vote.ID, other.ID, models.VoteTypeDownvote)
	require.ErrorIs(t, err, ErrNotVoteOwner)
}

func TestVoteService_RetractVote(t *testing.T) {
	env := setupTestEnv(t)
	svc := newVoteService(env)

	author := env.createUser(t, "author", 1)
	voter := env.createUser(t, "voter", constants.UpvoteReputation)
	other := env.createUser(t, "other", constants.UpvoteReputation)
	question := env.createQuestion(t, author)

	vote, err := svc.CastQuestionVote(question.ID, voter.ID, models.VoteTypeUpvote)
	require.NoError(t, err)
	_, err = svc.CastQuestionVote(question.ID, other.ID, models.VoteTypeUpvote)
	require.NoError(t, err)
	require.Equal(t, 2, env.questionScore(t, question.ID))

	require.ErrorIs(t, svc.RetractVote(vote.ID, other.ID), ErrNotVoteOwner)

	require.NoError(t, svc.RetractVote(vote.ID, voter.ID))
	require.Equal(t, 1, env.questionScore(t, question.ID))

	require.ErrorIs(t, svc.RetractVote(vote.ID, voter.ID), ErrVoteNotFound)
}

func TestVoteService_RetractAnswerVote(t *testing.T) {
	env := setupTestEnv(t)
	svc := newVoteService(env)

	author := env.createUser(t, "author", 1)
	answerer := env.createUser(t, "answerer", 1)
	voter := env.createUser(t, "voter", constants.DownvoteReputation)
	question := env.createQuestion(t, author)
	answer := env.createAnswer(t, answerer, question)

	vote, err := svc.CastAnswerVote(answer.ID, voter.ID, models.VoteTypeDownvote)
	require.NoError(t, err)
	require.Equal(t, -1, env.answerScore(t, answer.ID))

	require.NoError(t, svc.RetractVote(vote.ID, voter.ID))
	require.Equal(t, 0, env.answerScore(t, answer.ID))
}
