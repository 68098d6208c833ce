package domain

import (
	"errors"
	"time"
)

var ErrInvalidUsername = errors.New("username is required")
var ErrDuplicateUsername = errors.New("username already exists")
var ErrInvalidID = errors.New("invalid user id")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidDescription = errors.New("description is required")
var ErrInvalidDuration = errors.New("duration must be a positive integer")
var ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")
var ErrInvalidFromDate = errors.New("invalid from date format, use YYYY-MM-DD")
var ErrInvalidToDate = errors.New("invalid to date format, use YYYY-MM-DD")

// Exercise is one logged activity. It is owned by exactly one user, is
// immutable once appended, and its Date always carries a valid calendar day
// (normalised to midnight UTC).
type Exercise struct {
	Description string    `json:"description" bson:"description"`
	Duration    int       `json:"duration" bson:"duration"`
	Date        time.Time `json:"date" bson:"date"`
}

// User is the aggregate root: an identity plus its append-only exercise log.
// Log preserves insertion order; presentation order is recomputed on read.
type User struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Username  string     `json:"username" bson:"username"`
	Log       []Exercise `json:"log" bson:"log"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}
