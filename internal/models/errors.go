package models

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks constructor and mutation calls with malformed
// arguments (empty required fields, out-of-range lengths). Handlers map it
// to a 400 response.
var ErrInvalidArgument = errors.New("invalid argument")

// Business-rule violations. These are expected, user-recoverable conditions
// and are reported as sentinel values rather than panics so the service
// layer can translate them without unwinding.
var (
	ErrUserInactive       = errors.New("user is inactive")
	ErrUserAlreadyActive  = errors.New("user is already active")
	ErrQuestionClosed     = errors.New("question is closed")
	ErrQuestionNotClosed  = errors.New("question is not closed")
	ErrAlreadyVoted       = errors.New("user already voted with the same vote type")
	ErrSameVoteType       = errors.New("vote already has this type")
	ErrTagLimitReached    = errors.New("question already has the maximum number of tags")
	ErrTagNotAttached     = errors.New("tag is not associated with this question")
	ErrTagUsageUnderflow  = errors.New("tag usage count cannot go negative")
	ErrNotQuestionAuthor  = errors.New("only the question author can perform this action")
	ErrAnswerNotAccepted  = errors.New("answer is not marked as accepted")
	ErrNegativeReputation = errors.New("reputation points cannot be negative")
)

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
