package ports

import (
	"context"

	"github.com/fittrack/exercise-tracker/internal/core/domain"
)

// UserSummary is the reduced {id, username} view used by creation and listing.
type UserSummary struct {
	ID       string
	Username string
}

// UserService defines the identity use cases.
type UserService interface {
	CreateUser(ctx context.Context, rawUsername string) (*UserSummary, error)
	GetAllUsers(ctx context.Context) ([]UserSummary, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}
