package services

import (
	"context"

	"poetry-share-backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockPoemStore struct {
	mock.Mock
}

func (m *MockPoemStore) Create(ctx context.Context, poem *models.Poem) error {
	args := m.Called(ctx, poem)
	return args.Error(0)
}

func (m *MockPoemStore) ListPublic(ctx context.Context) ([]*models.Poem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Poem), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileStore) GetProfileByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileStore) UpdateProfile(ctx context.Context, userID, name string, profile *models.UserProfile) error {
	args := m.Called(ctx, userID, name, profile)
	return args.Error(0)
}

type MockVisitorStore struct {
	mock.Mock
}

func (m *MockVisitorStore) Increment(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVisitorStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
