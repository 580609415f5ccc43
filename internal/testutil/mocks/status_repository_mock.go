package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStatusRepository is a mock implementation of repository.StatusRepository
type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) Get(ctx context.Context, userID, categoryID int64) (map[int64]string, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

func (m *MockStatusRepository) Put(ctx context.Context, userID, categoryID int64, statuses map[int64]string) error {
	args := m.Called(ctx, userID, categoryID, statuses)
	return args.Error(0)
}
