package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fittrack/exercise-tracker/internal/core/domain"
	"github.com/fittrack/exercise-tracker/internal/core/ports"
)

// AuditSink receives audit events for successful appends. Recording is
// fire-and-forget; a sink must never block the request path.
type AuditSink interface {
	Record(ev ports.ExerciseEvent)
}

// ExerciseService implements the exercise-log use cases: validated appends
// and the filter/sort/limit log query.
type ExerciseService struct {
	users  ports.UserRepository
	audit  AuditSink
	logger zerolog.Logger
}

// NewExerciseService returns an ExerciseService. audit may be nil.
func NewExerciseService(users ports.UserRepository, audit AuditSink, logger zerolog.Logger) *ExerciseService {
	return &ExerciseService{users: users, audit: audit, logger: logger}
}

// AddExercise validates the fields, resolves the user, and appends one entry
// to the user's log. Field validation runs before the user lookup, so invalid
// fields are reported even for a nonexistent user. On any failure no
// mutation occurs.
func (s *ExerciseService) AddExercise(ctx context.Context, in ports.AddExerciseInput) (*ports.ExerciseResult, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, domain.ErrInvalidDescription
	}

	duration, err := strconv.Atoi(strings.TrimSpace(in.Duration))
	if err != nil || duration <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	date := domain.Today()
	if in.Date != "" {
		date, err = domain.ParseDate(in.Date)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
	}

	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	ex := domain.Exercise{Description: desc, Duration: duration, Date: date}
	if err := s.users.AppendExercise(ctx, user.ID, ex); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to append exercise")
		return nil, err
	}

	if s.audit != nil {
		s.audit.Record(ports.ExerciseEvent{
			UserID:      user.ID,
			Username:    user.Username,
			Description: desc,
			Duration:    duration,
			Date:        date,
			RecordedAt:  time.Now().UTC(),
		})
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("description", desc).
		Int("duration", duration).
		Msg("exercise logged")

	return &ports.ExerciseResult{
		ID:          user.ID,
		Username:    user.Username,
		Description: desc,
		Duration:    duration,
		Date:        domain.RenderDate(date),
	}, nil
}

// GetLog resolves the user and runs the query engine over the embedded log.
// Count reports the date-filtered matches before the limit is applied; an
// unparsable or non-positive limit is silently ignored.
func (s *ExerciseService) GetLog(ctx context.Context, in ports.LogQueryInput) (*ports.LogResult, error) {
	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	var window domain.DateRange
	if in.From != "" {
		window.From, err = domain.ParseDate(in.From)
		if err != nil {
			return nil, domain.ErrInvalidFromDate
		}
	}
	if in.To != "" {
		window.To, err = domain.ParseDate(in.To)
		if err != nil {
			return nil, domain.ErrInvalidToDate
		}
	}

	entries, total := filterLog(user.Log, window, parseLimit(in.Limit))

	log := make([]ports.LogEntry, 0, len(entries))
	for _, ex := range entries {
		log = append(log, ports.LogEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        domain.RenderDate(ex.Date),
		})
	}

	return &ports.LogResult{
		ID:       user.ID,
		Username: user.Username,
		Count:    total,
		Log:      log,
	}, nil
}
