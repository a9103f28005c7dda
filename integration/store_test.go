//go:build integration
// +build integration

// integration/store_test.go
// Exercises the persistence layer against a live document store.
// Run with: MONGODB_CONNECT_STRING=... go test -tags integration ./integration/
package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irontrack/models"
	"irontrack/store"
)

// newTestStore connects to the store named by the environment, skipping
// the test when no store is available.
func newTestStore(t *testing.T) (*store.UserStore, context.Context) {
	t.Helper()
	uri := os.Getenv("MONGODB_CONNECT_STRING")
	if uri == "" {
		t.Skip("MONGODB_CONNECT_STRING not set; skipping store integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	client, err := store.Connect(ctx, uri)
	require.NoError(t, err, "store must be reachable")
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	s := store.NewUserStore(client)
	require.NoError(t, s.EnsureIndexes(ctx))
	return s, ctx
}

// uniqueEmail keeps runs independent without needing cleanup of old docs.
func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@integration.test", prefix, time.Now().UnixNano())
}

// Test: registering the same email twice must not duplicate the document
func TestCreateUser_DuplicateEmail(t *testing.T) {
	s, ctx := newTestStore(t)
	email := uniqueEmail("dup")

	first, err := s.CreateUser(ctx, email, "hash-one")
	require.NoError(t, err)
	assert.False(t, first.ID.IsZero())
	assert.Empty(t, first.Exercises)

	_, err = s.CreateUser(ctx, email, "hash-two")
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	exists, err := s.UserExists(ctx, email)
	require.NoError(t, err)
	assert.True(t, exists)
}

// Test: create -> get by id -> update -> get -> delete -> 404 round trip
func TestExerciseRoundTrip(t *testing.T) {
	s, ctx := newTestStore(t)
	email := uniqueEmail("roundtrip")
	_, err := s.CreateUser(ctx, email, "hash")
	require.NoError(t, err)

	created, err := s.AddExercise(ctx, email, models.Exercise{
		Name: "Squat", Reps: 5, Weight: 225, Unit: "lbs", Date: "01-01-24",
	})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero(), "store must assign the entry id")

	// fields read back equal what was submitted
	got, err := s.GetExerciseByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Squat", got.Name)
	assert.Equal(t, float64(5), got.Reps)
	assert.Equal(t, float64(225), got.Weight)
	assert.Equal(t, "lbs", got.Unit)
	assert.Equal(t, "01-01-24", got.Date)

	// update reflects on the next read, id unchanged
	updated, err := s.UpdateExerciseByID(ctx, created.ID.Hex(), models.ExerciseRequest{
		Name: "Front Squat", Reps: 3, Weight: 185, Unit: "kgs", Date: "02-01-24",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Front Squat", updated.Name)

	got, err = s.GetExerciseByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Front Squat", got.Name)
	assert.Equal(t, float64(185), got.Weight)

	// delete, then every by-id operation reports not-found
	require.NoError(t, s.DeleteExerciseByID(ctx, created.ID.Hex()))

	_, err = s.GetExerciseByID(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, store.ErrNotFound)
	err = s.DeleteExerciseByID(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.UpdateExerciseByID(ctx, created.ID.Hex(), models.ExerciseRequest{
		Name: "x", Reps: 1, Weight: 1, Unit: "lbs", Date: "01-01-24",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// Test: entries come back in insertion order
func TestGetAllExercises_Order(t *testing.T) {
	s, ctx := newTestStore(t)
	email := uniqueEmail("order")
	_, err := s.CreateUser(ctx, email, "hash")
	require.NoError(t, err)

	names := []string{"Squat", "Bench", "Deadlift"}
	for i, name := range names {
		_, err := s.AddExercise(ctx, email, models.Exercise{
			Name: name, Reps: float64(i + 1), Weight: 100, Unit: "lbs", Date: "01-01-24",
		})
		require.NoError(t, err)
	}

	entries, err := s.GetAllExercises(ctx, email)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, name := range names {
		assert.Equal(t, name, entries[i].Name)
	}
}

// Test: a fresh user lists an empty, non-nil sequence
func TestGetAllExercises_Empty(t *testing.T) {
	s, ctx := newTestStore(t)
	email := uniqueEmail("empty")
	_, err := s.CreateUser(ctx, email, "hash")
	require.NoError(t, err)

	entries, err := s.GetAllExercises(ctx, email)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

// Test: malformed ids are not-found, never an error surface
func TestByID_MalformedID(t *testing.T) {
	s, ctx := newTestStore(t)

	_, err := s.GetExerciseByID(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.DeleteExerciseByID(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// Test: adding an entry for an unknown email is reported, not silently saved
func TestAddExercise_UnknownUser(t *testing.T) {
	s, ctx := newTestStore(t)

	_, err := s.AddExercise(ctx, uniqueEmail("nobody"), models.Exercise{
		Name: "Squat", Reps: 5, Weight: 225, Unit: "lbs", Date: "01-01-24",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}
