package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVoteType(t *testing.T) {
	cases := map[string]VoteType{
		"upvote":   VoteTypeUpvote,
		"up":       VoteTypeUpvote,
		"Upvote":   VoteTypeUpvote,
		"downvote": VoteTypeDownvote,
		"down":     VoteTypeDownvote,
		" DOWN ":   VoteTypeDownvote,
	}
	for input, want := range cases {
		got, err := ParseVoteType(input)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	for _, input := range []string{"", "neutral", "sideways"} {
		_, err := ParseVoteType(input)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestNewQuestionVote(t *testing.T) {
	question := newTestQuestion(t)
	voter := newTestUser(t)
	voter.ID = 7

	vote, err := NewQuestionVote(VoteTypeUpvote, voter, question)
	require.NoError(t, err)
	require.Equal(t, VoteTypeUpvote, vote.Type)
	require.Equal(t, voter.ID, vote.UserID)
	require.NotNil(t, vote.QuestionID)
	require.Equal(t, question.ID, *vote.QuestionID)
	require.Nil(t, vote.AnswerID)
}

func TestNewAnswerVote(t *testing.T) {
	answer := newTestAnswer(t)
	voter := newTestUser(t)
	voter.ID = 7

	vote, err := NewAnswerVote(VoteTypeDownvote, voter, answer)
	require.NoError(t, err)
	require.NotNil(t, vote.AnswerID)
	require.Equal(t, answer.ID, *vote.AnswerID)
	require.Nil(t, vote.QuestionID)
}

func TestNewVote_Validation(t *testing.T) {
	question := newTestQuestion(t)
	voter := newTestUser(t)

	_, err := NewQuestionVote(VoteTypeNeutral, voter, question)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewQuestionVote(VoteTypeUpvote, nil, question)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewQuestionVote(VoteTypeUpvote, voter, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewAnswerVote(VoteTypeUpvote, voter, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestVote_ChangeType(t *testing.T) {
	question := newTestQuestion(t)
	voter := newTestUser(t)
	voter.ID = 7

	vote, err := NewQuestionVote(VoteTypeUpvote, voter, question)
	require.NoError(t, err)

	require.ErrorIs(t, vote.ChangeType(voter.ID, VoteTypeUpvote), ErrSameVoteType)
	require.ErrorIs(t, vote.ChangeType(voter.ID, VoteTypeNeutral), ErrInvalidArgument)

	require.NoError(t, vote.ChangeType(voter.ID, VoteTypeDownvote))
	require.Equal(t, VoteTypeDownvote, vote.Type)
	require.NotNil(t, vote.UpdatedByID)
	require.Equal(t, voter.ID, *vote.UpdatedByID)
}

func TestSameIdentity(t *testing.T) {
	require.True(t, SameIdentity(3, 3))
	require.False(t, SameIdentity(3, 4))
	// Unsaved entities never compare equal.
	require.False(t, SameIdentity(0, 0))
	require.False(t, SameIdentity(0, 3))
}
