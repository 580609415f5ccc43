package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/kberg/flashdeck/internal/card"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueImport(userID, categoryID int64, filename string, data []byte) error {
	args := m.Called(userID, categoryID, filename, data)
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueGeneration(userID, categoryID int64, topic string, cardType card.Type, count int) error {
	args := m.Called(userID, categoryID, topic, cardType, count)
	return args.Error(0)
}
