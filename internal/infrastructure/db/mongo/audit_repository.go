package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fittrack/exercise-tracker/internal/core/ports"
)

const collectionExerciseEvents = "exercise_events"

// AuditRepository persists append audit events to the exercise_events
// collection. Writes are insert-only; nothing in the request path reads them.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionExerciseEvents)}
}

func (r *AuditRepository) Insert(ctx context.Context, ev *ports.ExerciseEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"user_id":     ev.UserID,
		"username":    ev.Username,
		"description": ev.Description,
		"duration":    ev.Duration,
		"date":        ev.Date.UTC(),
		"recorded_at": ev.RecordedAt.UTC(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
