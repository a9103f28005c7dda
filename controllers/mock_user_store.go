//go:build unit
// +build unit

package controllers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"irontrack/models"
)

// MockUserStore implements store.UserStoreInterface for testing.
type MockUserStore struct {
	mock.Mock
}

// CreateUser records the call and returns the configured user or error.
func (m *MockUserStore) CreateUser(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	args := m.Called(ctx, email, hashedPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// GetUserByEmail returns the configured user document or error.
func (m *MockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// UserExists returns the configured presence flag.
func (m *MockUserStore) UserExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// AddExercise returns the configured stored entry or error.
func (m *MockUserStore) AddExercise(ctx context.Context, email string, entry models.Exercise) (*models.Exercise, error) {
	args := m.Called(ctx, email, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exercise), args.Error(1)
}

// GetAllExercises returns the configured entry list or error.
func (m *MockUserStore) GetAllExercises(ctx context.Context, email string) ([]models.Exercise, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exercise), args.Error(1)
}

// GetExerciseByID returns the configured entry or error.
func (m *MockUserStore) GetExerciseByID(ctx context.Context, id string) (*models.Exercise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exercise), args.Error(1)
}

// UpdateExerciseByID returns the configured updated entry or error.
func (m *MockUserStore) UpdateExerciseByID(ctx context.Context, id string, req models.ExerciseRequest) (*models.Exercise, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exercise), args.Error(1)
}

// DeleteExerciseByID returns the configured error.
func (m *MockUserStore) DeleteExerciseByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
