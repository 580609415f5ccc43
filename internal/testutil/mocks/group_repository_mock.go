package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kberg/flashdeck/internal/models"
)

// MockGroupRepository is a mock implementation of repository.GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) Get(ctx context.Context, id int64) (*models.StudyGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudyGroup), args.Error(1)
}

func (m *MockGroupRepository) GetByInviteCode(ctx context.Context, code string) (*models.StudyGroup, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudyGroup), args.Error(1)
}

func (m *MockGroupRepository) ListByUser(ctx context.Context, userID int64) ([]models.StudyGroup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StudyGroup), args.Error(1)
}

func (m *MockGroupRepository) Insert(ctx context.Context, g models.StudyGroup) (int64, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGroupRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupRepository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) InsertMessage(ctx context.Context, msg models.GroupMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockGroupRepository) GetMessage(ctx context.Context, id uuid.UUID) (*models.GroupMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GroupMessage), args.Error(1)
}

func (m *MockGroupRepository) ListMessages(ctx context.Context, filter models.MessageFilter) ([]models.GroupMessage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GroupMessage), args.Error(1)
}
