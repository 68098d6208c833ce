package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fittrack/exercise-tracker/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository on MongoDB with the
// embedded-array topology: each user document owns its full exercise log.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoExercise struct {
	Description string    `bson:"description"`
	Duration    int       `bson:"duration"`
	Date        time.Time `bson:"date"`
}

// username_fold carries the lowercased username; the unique index on it backs
// the case-insensitive uniqueness guarantee under concurrent creation.
type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	UsernameFold string             `bson:"username_fold"`
	Log          []mongoExercise    `bson:"log"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// Create inserts a new user document with an empty log.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Username:     user.Username,
		UsernameFold: strings.ToLower(user.Username),
		Log:          []mongoExercise{},
		CreatedAt:    user.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("mongo: unexpected inserted id type")
	}

	created := *user
	created.ID = oid.Hex()
	return &created, nil
}

// FindByID retrieves the full user document, including the embedded log.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toDomainUser(mu), nil
}

// FindByUsername matches the username case-insensitively via username_fold.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	err := r.col.FindOne(ctx, bson.M{"username_fold": strings.ToLower(username)}).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toDomainUser(mu), nil
}

// List returns all users in creation order. Logs are projected out; listing
// never needs them.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"log": 0})

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, err
		}
		users = append(users, toDomainUser(mu))
	}
	return users, cur.Err()
}

// AppendExercise pushes one entry onto the user's log in a single atomic
// update, so concurrent appends to the same user cannot lose entries.
func (r *UserRepository) AppendExercise(ctx context.Context, userID string, ex domain.Exercise) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$push": bson.M{"log": mongoExercise{
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        ex.Date.UTC(),
	}}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique username index and the listing sort index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username_fold", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDomainUser(mu mongoUser) *domain.User {
	log := make([]domain.Exercise, 0, len(mu.Log))
	for _, ex := range mu.Log {
		log = append(log, domain.Exercise{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        ex.Date.UTC(),
		})
	}
	return &domain.User{
		ID:        mu.ID.Hex(),
		Username:  mu.Username,
		Log:       log,
		CreatedAt: mu.CreatedAt,
	}
}
