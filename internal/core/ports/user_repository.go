package ports

import (
	"context"

	"github.com/fittrack/exercise-tracker/internal/core/domain"
)

// UserRepository defines persistence operations for users and their embedded
// exercise logs. Implementations own the identifier format: lookups with a
// malformed id fail with domain.ErrInvalidID.
type UserRepository interface {
	// Create persists a new user and returns it with its assigned id.
	// A uniqueness violation surfaced at write time (e.g. by a unique index)
	// is reported as domain.ErrDuplicateUsername.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByID retrieves the full user, including the exercise log.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByUsername retrieves a user by username, matched case-insensitively.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns all users in creation order. Logs are not loaded.
	List(ctx context.Context) ([]*domain.User, error)
	// AppendExercise atomically appends one entry to the user's log. The
	// append must be a single storage-level push, not a read-then-write
	// round trip, so concurrent appends to the same user never lose updates.
	AppendExercise(ctx context.Context, userID string, ex domain.Exercise) error
}
