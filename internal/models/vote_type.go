package models

import "strings"

// VoteType is the closed set of vote kinds.
type VoteType string

const (
	VoteTypeUpvote   VoteType = "Upvote"
	VoteTypeDownvote VoteType = "Downvote"
	// VoteTypeNeutral is declared for schema completeness; no entry point
	// produces it.
	VoteTypeNeutral VoteType = "Neutral"
)

// ParseVoteType maps a request string to a castable vote type. Neutral is
// not accepted.
func ParseVoteType(s string) (VoteType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upvote", "up":
		return VoteTypeUpvote, nil
	case "downvote", "down":
		return VoteTypeDownvote, nil
	default:
		return "", invalidArgf("unknown vote type %q", s)
	}
}

// Castable reports whether the type may be attached to a new or changed vote.
func (t VoteType) Castable() bool {
	return t == VoteTypeUpvote || t == VoteTypeDownvote
}
