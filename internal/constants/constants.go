package constants

// Session
const (
	SessionCookieName = "studdit_session"
	ContextKeyUserID  = "user_id"
)

// Reputation privilege thresholds
const (
	UpvoteReputation    = 15
	CommentReputation   = 50
	DownvoteReputation  = 125
	CreateTagReputation = 1500
	AwardReputation     = 1500
)

// StartingReputation is assigned on signup and restored by a reputation reset.
const StartingReputation = 1

// Entity bounds
const (
	MaxQuestionTitleLength  = 150
	MinQuestionContent      = 30
	MaxQuestionTags         = 5
	MinAnswerContent        = 30
	MaxTagNameLength        = 50
	MaxTagDescriptionLength = 200
	MaxEmailLength          = 320
)

// Auth
const MinPasswordLength = 8

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
