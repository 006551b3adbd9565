package models

import (
	"strings"
	"testing"

	"github.com/lhajoosten/studdit-api/internal/constants"
	"github.com/stretchr/testify/require"
)

func TestNewTag(t *testing.T) {
	tag, err := NewTag("  GoLang  ", "Questions about the Go language")
	require.NoError(t, err)
	require.Equal(t, "golang", tag.Name)
	require.Equal(t, 0, tag.UsageCount)
}

func TestNewTag_Validation(t *testing.T) {
	_, err := NewTag("", "desc")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewTag(strings.Repeat("x", constants.MaxTagNameLength+1), "desc")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewTag("go", "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewTag("go", strings.Repeat("x", constants.MaxTagDescriptionLength+1))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTag_UsageCounter(t *testing.T) {
	tag, err := NewTag("go", "Questions about the Go language")
	require.NoError(t, err)

	require.ErrorIs(t, tag.DecrementUsage(), ErrTagUsageUnderflow)

	tag.IncrementUsage()
	tag.IncrementUsage()
	require.Equal(t, 2, tag.UsageCount)

	require.NoError(t, tag.DecrementUsage())
	require.NoError(t, tag.DecrementUsage())
	require.Equal(t, 0, tag.UsageCount)
	require.ErrorIs(t, tag.DecrementUsage(), ErrTagUsageUnderflow)
}

func TestTag_UpdateDescription(t *testing.T) {
	tag, err := NewTag("go", "old")
	require.NoError(t, err)

	require.NoError(t, tag.UpdateDescription("Questions about the Go language"))
	require.Equal(t, "Questions about the Go language", tag.Description)

	require.ErrorIs(t, tag.UpdateDescription("   "), ErrInvalidArgument)
}
