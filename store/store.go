// Package store is the persistence layer: all document-store interaction
// for user accounts and their embedded exercise entries.
// File: store/store.go
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"irontrack/logger"
	"irontrack/models"
)

// database and collection names carried over from the first deployment
const (
	databaseName   = "exercise_db"
	collectionName = "user-data"
)

// Sentinel errors let callers tell "doesn't exist" apart from "store is
// down"; anything else returned by a store method is infrastructure.
var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Connect dials the document store and verifies the connection with a
// ping. The returned client is created once at startup and held for the
// process lifetime; there is no reconnect logic.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to document store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping document store: %w", err)
	}
	logger.Info.Println("Connect: connected to document store")
	return client, nil
}

// ----------------------- user store -----------------------

// UserStoreInterface is implemented by UserStore and by the test mock in
// the controllers package.
type UserStoreInterface interface {
	CreateUser(ctx context.Context, email, hashedPassword string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UserExists(ctx context.Context, email string) (bool, error)
	AddExercise(ctx context.Context, email string, entry models.Exercise) (*models.Exercise, error)
	GetAllExercises(ctx context.Context, email string) ([]models.Exercise, error)
	GetExerciseByID(ctx context.Context, id string) (*models.Exercise, error)
	UpdateExerciseByID(ctx context.Context, id string, req models.ExerciseRequest) (*models.Exercise, error)
	DeleteExerciseByID(ctx context.Context, id string) error
}

// UserStore performs all reads and writes against the user collection.
type UserStore struct {
	users *mongo.Collection
}

// NewUserStore creates a UserStore over the user collection.
func NewUserStore(client *mongo.Client) *UserStore {
	return &UserStore{users: client.Database(databaseName).Collection(collectionName)}
}

// EnsureIndexes creates the unique email index backing registration.
// Uniqueness is enforced by the store itself, not by a lookup-then-insert
// check, so two concurrent registrations cannot both succeed.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// CreateUser inserts a new user document with an empty exercise list.
// Returns ErrAlreadyExists when the email is taken.
func (s *UserStore) CreateUser(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	user := models.User{
		Email:     email,
		Password:  hashedPassword,
		Exercises: []models.Exercise{},
	}
	res, err := s.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return &user, nil
}

// GetUserByEmail returns the user document for an email, or ErrNotFound.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// UserExists reports whether a user document exists for the email.
func (s *UserStore) UserExists(ctx context.Context, email string) (bool, error) {
	count, err := s.users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return count > 0, nil
}

// AddExercise appends an entry to the owner's embedded sequence with a
// single atomic push, assigning the entry its document-wide id. Returns
// ErrNotFound when no user document matches the email.
func (s *UserStore) AddExercise(ctx context.Context, email string, entry models.Exercise) (*models.Exercise, error) {
	entry.ID = primitive.NewObjectID()
	res, err := s.users.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$push": bson.M{"exercises": entry}},
	)
	if err != nil {
		return nil, fmt.Errorf("push exercise: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &entry, nil
}

// GetAllExercises returns the owner's entries in insertion order.
func (s *UserStore) GetAllExercises(ctx context.Context, email string) ([]models.Exercise, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.Exercises == nil {
		return []models.Exercise{}, nil
	}
	return user.Exercises, nil
}

// GetExerciseByID finds an entry by its id, regardless of owner. A
// malformed id is treated as not-found rather than a distinct error.
func (s *UserStore) GetExerciseByID(ctx context.Context, id string) (*models.Exercise, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Debug.Printf("GetExerciseByID: malformed id %q: %v", id, err)
		return nil, ErrNotFound
	}

	// project only the matching array element
	opts := options.FindOne().SetProjection(bson.M{"exercises.$": 1})
	var user models.User
	err = s.users.FindOne(ctx, bson.M{"exercises._id": oid}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find exercise by id: %w", err)
	}
	if len(user.Exercises) == 0 {
		return nil, ErrNotFound
	}
	return &user.Exercises[0], nil
}

// UpdateExerciseByID overwrites the five entry fields in place with one
// positional update, keeping the entry's id. Returns the updated entry
// or ErrNotFound.
func (s *UserStore) UpdateExerciseByID(ctx context.Context, id string, req models.ExerciseRequest) (*models.Exercise, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Debug.Printf("UpdateExerciseByID: malformed id %q: %v", id, err)
		return nil, ErrNotFound
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"exercises.$": 1})
	var user models.User
	err = s.users.FindOneAndUpdate(ctx,
		bson.M{"exercises._id": oid},
		bson.M{"$set": bson.M{
			"exercises.$.name":   req.Name,
			"exercises.$.reps":   req.Reps,
			"exercises.$.weight": req.Weight,
			"exercises.$.unit":   req.Unit,
			"exercises.$.date":   req.Date,
		}},
		opts,
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update exercise by id: %w", err)
	}
	if len(user.Exercises) == 0 {
		return nil, ErrNotFound
	}
	return &user.Exercises[0], nil
}

// DeleteExerciseByID removes an entry by id with a single pull. Returns
// ErrNotFound when nothing matched.
func (s *UserStore) DeleteExerciseByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Debug.Printf("DeleteExerciseByID: malformed id %q: %v", id, err)
		return ErrNotFound
	}

	res, err := s.users.UpdateOne(ctx,
		bson.M{"exercises._id": oid},
		bson.M{"$pull": bson.M{"exercises": bson.M{"_id": oid}}},
	)
	if err != nil {
		return fmt.Errorf("pull exercise by id: %w", err)
	}
	if res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}
