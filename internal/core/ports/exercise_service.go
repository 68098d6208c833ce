package ports

import "context"

// AddExerciseInput carries the raw request fields for an append. Duration and
// Date arrive as strings because the HTTP surface accepts form data; the
// service owns parsing and validation.
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    string
	Date        string // optional, YYYY-MM-DD
}

// ExerciseResult is the flattened append response.
type ExerciseResult struct {
	ID          string
	Username    string
	Description string
	Duration    int
	Date        string // rendered calendar string, e.g. "Mon Jan 1 2024"
}

// LogQueryInput carries the raw query parameters for a log retrieval.
// From, To and Limit are optional and arrive unparsed.
type LogQueryInput struct {
	UserID string
	From   string
	To     string
	Limit  string
}

// LogEntry is one rendered exercise in a log response.
type LogEntry struct {
	Description string
	Duration    int
	Date        string
}

// LogResult is the query response. Count is the number of date-filtered
// entries before the limit is applied; Log may be shorter when a limit
// truncated it.
type LogResult struct {
	ID       string
	Username string
	Count    int
	Log      []LogEntry
}

// ExerciseService defines the exercise-log use cases.
type ExerciseService interface {
	AddExercise(ctx context.Context, in AddExerciseInput) (*ExerciseResult, error)
	GetLog(ctx context.Context, in LogQueryInput) (*LogResult, error)
}
