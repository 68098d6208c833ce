package ports

import (
	"context"
	"time"
)

// ExerciseEvent is one audit-trail record of a successful append. It is
// written asynchronously and never affects the append result.
type ExerciseEvent struct {
	UserID      string
	Username    string
	Description string
	Duration    int
	Date        time.Time
	RecordedAt  time.Time
}

// AuditRepository persists append audit events.
type AuditRepository interface {
	Insert(ctx context.Context, ev *ExerciseEvent) error
}
