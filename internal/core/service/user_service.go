package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fittrack/exercise-tracker/internal/core/domain"
	"github.com/fittrack/exercise-tracker/internal/core/ports"
)

// UserListCache abstracts the optional read cache for the user listing (Redis).
// A miss is (nil, false, nil); errors are advisory and never fail the request.
type UserListCache interface {
	GetAll(ctx context.Context) ([]ports.UserSummary, bool, error)
	SetAll(ctx context.Context, users []ports.UserSummary) error
	Invalidate(ctx context.Context) error
}

// UserService implements the identity use cases.
type UserService struct {
	repo   ports.UserRepository
	cache  UserListCache
	logger zerolog.Logger
}

// NewUserService returns a UserService. cache may be nil.
func NewUserService(repo ports.UserRepository, cache UserListCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, logger: logger}
}

// CreateUser validates and persists a new user. Username uniqueness is
// checked case-insensitively before the insert; the repository's own
// constraint is the second line of defense under concurrent creation, and a
// late violation is still reported as ErrDuplicateUsername.
func (s *UserService) CreateUser(ctx context.Context, rawUsername string) (*ports.UserSummary, error) {
	username := strings.TrimSpace(rawUsername)
	if username == "" {
		return nil, domain.ErrInvalidUsername
	}

	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil, domain.ErrDuplicateUsername
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := &domain.User{
		Username:  username,
		Log:       []domain.Exercise{},
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, domain.ErrDuplicateUsername
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to create user")
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.invalidateCache(ctx)
	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user created")

	return &ports.UserSummary{ID: created.ID, Username: created.Username}, nil
}

// GetAllUsers returns every user reduced to {id, username}, in creation order.
func (s *UserService) GetAllUsers(ctx context.Context) ([]ports.UserSummary, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetAll(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("user list cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	summaries := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, ports.UserSummary{ID: u.ID, Username: u.Username})
	}

	if s.cache != nil {
		if err := s.cache.SetAll(ctx, summaries); err != nil {
			s.logger.Warn().Err(err).Msg("user list cache write failed")
		}
	}

	return summaries, nil
}

// GetUserByID returns the full user, including the exercise log.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("user list cache invalidation failed")
	}
}
