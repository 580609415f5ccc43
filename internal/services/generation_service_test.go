package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/services"
	"github.com/kberg/flashdeck/internal/testutil/mocks"
)

type generationFixture struct {
	userRepo     *mocks.MockUserRepository
	categoryRepo *mocks.MockCategoryRepository
	queue        *mocks.MockJobQueue
	svc          services.GenerationService
}

func newGenerationFixture() *generationFixture {
	userRepo := new(mocks.MockUserRepository)
	categoryRepo := new(mocks.MockCategoryRepository)
	queue := new(mocks.MockJobQueue)
	return &generationFixture{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		queue:        queue,
		svc:          services.NewGenerationService(userRepo, categoryRepo, queue),
	}
}

func (f *generationFixture) expectUser(premium bool) {
	f.userRepo.On("Get", mock.Anything, int64(1)).
		Return(&models.User{ID: 1, Subject: "auth0|u", IsPremium: premium}, nil)
}

func TestGenerationRequiresPremium(t *testing.T) {
	f := newGenerationFixture()
	f.expectUser(false)

	err := f.svc.Enqueue(context.Background(), 1, 10, "roman history", card.TypeClassic, 5)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeForbidden, appErrCode(err))
	f.queue.AssertNotCalled(t, "EnqueueGeneration")
}

func TestGenerationEnqueuesForPremiumUser(t *testing.T) {
	f := newGenerationFixture()
	f.expectUser(true)
	f.categoryRepo.On("Get", mock.Anything, int64(10), int64(1)).
		Return(&models.Category{ID: 10, UserID: 1}, nil)
	f.queue.On("EnqueueGeneration", int64(1), int64(10), "roman history", card.TypeClassic, 5).
		Return(nil)

	err := f.svc.Enqueue(context.Background(), 1, 10, "roman history", card.TypeClassic, 5)
	require.NoError(t, err)
	f.queue.AssertExpectations(t)
}

func TestGenerationValidatesInput(t *testing.T) {
	f := newGenerationFixture()
	f.expectUser(true)

	err := f.svc.Enqueue(context.Background(), 1, 10, "   ", card.TypeClassic, 5)
	assert.Equal(t, errors.ErrCodeValidation, appErrCode(err))

	err = f.svc.Enqueue(context.Background(), 1, 10, "topic", card.TypeClassic, 0)
	assert.Equal(t, errors.ErrCodeValidation, appErrCode(err))

	err = f.svc.Enqueue(context.Background(), 1, 10, "topic", card.Type("essay"), 5)
	assert.Equal(t, errors.ErrCodeValidation, appErrCode(err))
}

func TestGenerationUnknownCategory(t *testing.T) {
	f := newGenerationFixture()
	f.expectUser(true)
	f.categoryRepo.On("Get", mock.Anything, int64(10), int64(1)).Return(nil, nil)

	err := f.svc.Enqueue(context.Background(), 1, 10, "topic", card.TypeTrueFalse, 5)
	assert.Equal(t, errors.ErrCodeNotFound, appErrCode(err))
}
