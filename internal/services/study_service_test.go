package services_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/services"
	"github.com/kberg/flashdeck/internal/session"
	"github.com/kberg/flashdeck/internal/testutil/mocks"
)

const (
	testUserID     = int64(1)
	testCategoryID = int64(10)
)

type StudyServiceSuite struct {
	suite.Suite
	store          *session.Store
	flashcardRepo  *mocks.MockFlashcardRepository
	categoryRepo   *mocks.MockCategoryRepository
	sessionRepo    *mocks.MockSessionRepository
	statusRepo     *mocks.MockStatusRepository
	achievementSvc *mocks.MockAchievementService
	svc            services.StudyService
}

func (s *StudyServiceSuite) SetupTest() {
	s.store = session.NewStore(time.Minute)
	s.flashcardRepo = new(mocks.MockFlashcardRepository)
	s.categoryRepo = new(mocks.MockCategoryRepository)
	s.sessionRepo = new(mocks.MockSessionRepository)
	s.statusRepo = new(mocks.MockStatusRepository)
	s.achievementSvc = new(mocks.MockAchievementService)
	s.svc = services.NewStudyService(
		s.store, s.flashcardRepo, s.categoryRepo, s.sessionRepo, s.statusRepo, s.achievementSvc,
	)
}

func (s *StudyServiceSuite) expectCategory() {
	s.categoryRepo.On("Get", mock.Anything, testCategoryID, testUserID).
		Return(&models.Category{ID: testCategoryID, UserID: testUserID, Name: "Biology"}, nil)
}

func classicDeck(n int) []models.Flashcard {
	deck := make([]models.Flashcard, 0, n)
	for i := 0; i < n; i++ {
		deck = append(deck, models.Flashcard{
			ID:         int64(i + 1),
			CategoryID: testCategoryID,
			UserID:     testUserID,
			Type:       card.TypeClassic,
			Content:    card.Classic{Term: "term", Definition: "definition"},
		})
	}
	return deck
}

func trueFalseDeck(n int) []models.Flashcard {
	deck := make([]models.Flashcard, 0, n)
	for i := 0; i < n; i++ {
		deck = append(deck, models.Flashcard{
			ID:         int64(i + 1),
			CategoryID: testCategoryID,
			UserID:     testUserID,
			Type:       card.TypeTrueFalse,
			Content:    card.TrueFalse{Statement: "statement", CorrectAnswer: "true"},
		})
	}
	return deck
}

func appErrCode(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func (s *StudyServiceSuite) TestStartClassicSeedsStatuses() {
	ctx := context.Background()
	s.expectCategory()
	s.flashcardRepo.On("Deck", mock.Anything, testUserID, testCategoryID, card.TypeClassic).
		Return(classicDeck(5), nil)
	s.statusRepo.On("Get", mock.Anything, testUserID, testCategoryID).
		Return(map[int64]string{1: "learned"}, nil)

	view, err := s.svc.Start(ctx, testUserID, testCategoryID, card.TypeClassic)
	s.Require().NoError(err)

	s.Assert().NotEmpty(view.Token)
	s.Assert().Equal(5, view.Progress.Total)
	s.Assert().Equal(session.StateActive, view.Progress.State)
	s.Assert().Equal(session.StatusLearned, view.Statuses[1])
	s.Assert().NotNil(view.Current)
	s.Assert().Equal(1, s.store.Len())
}

func (s *StudyServiceSuite) TestStartEmptyDeck() {
	ctx := context.Background()
	s.expectCategory()
	s.flashcardRepo.On("Deck", mock.Anything, testUserID, testCategoryID, card.TypeMultipleChoice).
		Return([]models.Flashcard{}, nil)

	_, err := s.svc.Start(ctx, testUserID, testCategoryID, card.TypeMultipleChoice)
	s.Require().Error(err)
	s.Assert().Equal(errors.ErrCodeEmptyDeck, appErrCode(err))
	s.Assert().Equal(0, s.store.Len())
}

func (s *StudyServiceSuite) TestStartDeckFetchFailure() {
	ctx := context.Background()
	s.expectCategory()
	s.flashcardRepo.On("Deck", mock.Anything, testUserID, testCategoryID, card.TypeMultipleChoice).
		Return(nil, stderrors.New("connection reset"))

	_, err := s.svc.Start(ctx, testUserID, testCategoryID, card.TypeMultipleChoice)
	s.Require().Error(err)
	// A failed fetch is an internal error, never the empty-deck state.
	s.Assert().Equal(errors.ErrCodeInternal, appErrCode(err))
	s.Assert().Equal(0, s.store.Len())
}

func (s *StudyServiceSuite) TestStartUnknownCategory() {
	ctx := context.Background()
	s.categoryRepo.On("Get", mock.Anything, testCategoryID, testUserID).
		Return(nil, nil)

	_, err := s.svc.Start(ctx, testUserID, testCategoryID, card.TypeClassic)
	s.Require().Error(err)
	s.Assert().Equal(errors.ErrCodeNotFound, appErrCode(err))
}

func (s *StudyServiceSuite) startTrueFalse(n int) *services.SessionView {
	s.expectCategory()
	s.flashcardRepo.On("Deck", mock.Anything, testUserID, testCategoryID, card.TypeTrueFalse).
		Return(trueFalseDeck(n), nil)

	view, err := s.svc.Start(context.Background(), testUserID, testCategoryID, card.TypeTrueFalse)
	s.Require().NoError(err)
	return view
}

func (s *StudyServiceSuite) TestSubmitAnswerScoresAndCompletes() {
	ctx := context.Background()
	view := s.startTrueFalse(2)

	s.flashcardRepo.On("RecordReview", mock.Anything, mock.Anything).Return(nil)
	s.sessionRepo.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	s.achievementSvc.On("EvaluateAfterSession", mock.Anything, testUserID, mock.Anything).
		Return([]models.Achievement{{Code: "first_session"}}, nil)

	first, err := s.svc.SubmitAnswer(ctx, testUserID, view.Token, "true")
	s.Require().NoError(err)
	s.Assert().True(first.Correct)
	s.Assert().False(first.Completed)
	s.Assert().Equal(1, first.Progress.Correct)

	second, err := s.svc.SubmitAnswer(ctx, testUserID, view.Token, "false")
	s.Require().NoError(err)
	s.Assert().False(second.Correct)
	s.Assert().Equal("true", second.CorrectAnswer)
	s.Require().True(second.Completed)
	s.Require().NotNil(second.Summary)
	s.Assert().Equal(2, second.Summary.CardsReviewed)
	s.Assert().Equal(50.0, second.Summary.Accuracy)
	s.Require().Len(second.Unlocked, 1)
	s.Assert().Equal("first_session", second.Unlocked[0].Code)

	s.sessionRepo.AssertNumberOfCalls(s.T(), "Insert", 1)
}

func (s *StudyServiceSuite) TestPersistFailureStillReturnsSummary() {
	ctx := context.Background()
	view := s.startTrueFalse(1)

	s.flashcardRepo.On("RecordReview", mock.Anything, mock.Anything).Return(nil)
	s.sessionRepo.On("Insert", mock.Anything, mock.Anything).
		Return(int64(0), stderrors.New("database is locked"))
	s.achievementSvc.On("EvaluateAfterSession", mock.Anything, testUserID, mock.Anything).
		Return(nil, nil)

	// Storing the session row fails; the summary reaches the client anyway.
	outcome, err := s.svc.SubmitAnswer(ctx, testUserID, view.Token, "true")
	s.Require().NoError(err)
	s.Require().True(outcome.Completed)
	s.Require().NotNil(outcome.Summary)
	s.Assert().Equal(1, outcome.Summary.CardsReviewed)
	s.sessionRepo.AssertNumberOfCalls(s.T(), "Insert", 1)

	// And the session is still usable for "study again".
	restarted, err := s.svc.Restart(ctx, testUserID, view.Token)
	s.Require().NoError(err)
	s.Assert().Equal(0, restarted.Progress.Index)
	s.Assert().Equal(session.StateActive, restarted.Progress.State)
}

func (s *StudyServiceSuite) TestSubmitAnswerRecordsScoredCard() {
	ctx := context.Background()
	view := s.startTrueFalse(2)
	answeredID := view.Current.ID

	s.flashcardRepo.On("RecordReview", mock.Anything, answeredID).Return(nil)

	outcome, err := s.svc.SubmitAnswer(ctx, testUserID, view.Token, "true")
	s.Require().NoError(err)
	s.Require().NotNil(outcome.Current)
	s.Assert().NotEqual(answeredID, outcome.Current.ID)

	// The review lands on the card that was answered, not the one shown next.
	s.flashcardRepo.AssertCalled(s.T(), "RecordReview", mock.Anything, answeredID)
}

func (s *StudyServiceSuite) TestSubmitAnswerClassicModeRejected() {
	ctx := context.Background()
	s.expectCategory()
	s.flashcardRepo.On("Deck", mock.Anything, testUserID, testCategoryID, card.TypeClassic).
		Return(classicDeck(2), nil)
	s.statusRepo.On("Get", mock.Anything, testUserID, testCategoryID).
		Return(map[int64]string{}, nil)

	view, err := s.svc.Start(ctx, testUserID, testCategoryID, card.TypeClassic)
	s.Require().NoError(err)

	_, err = s.svc.SubmitAnswer(ctx, testUserID, view.Token, "true")
	s.Require().Error(err)
	s.Assert().Equal(errors.ErrCodeBadRequest, appErrCode(err))
}

func (s *StudyServiceSuite) TestClassicFlipThroughWithStatuses() {
	ctx := context.Background()
	s.expectCategory()
	s.flashcardRepo.On("Deck", mock.Anything, testUserID, testCategoryID, card.TypeClassic).
		Return(classicDeck(2), nil)
	s.statusRepo.On("Get", mock.Anything, testUserID, testCategoryID).
		Return(map[int64]string{}, nil)
	s.statusRepo.On("Put", mock.Anything, testUserID, testCategoryID, mock.Anything).Return(nil)
	s.flashcardRepo.On("SetLearned", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.sessionRepo.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	s.achievementSvc.On("EvaluateAfterSession", mock.Anything, testUserID, mock.Anything).
		Return(nil, nil)

	view, err := s.svc.Start(ctx, testUserID, testCategoryID, card.TypeClassic)
	s.Require().NoError(err)

	// Tag both cards, one learned and one learning.
	_, err = s.svc.MarkStatus(ctx, testUserID, view.Token, 1, "learned")
	s.Require().NoError(err)
	_, err = s.svc.MarkStatus(ctx, testUserID, view.Token, 2, "learning")
	s.Require().NoError(err)

	// Going back from the first card is a quiet no-op.
	_, err = s.svc.Retreat(ctx, testUserID, view.Token)
	s.Require().NoError(err)

	step, err := s.svc.Advance(ctx, testUserID, view.Token)
	s.Require().NoError(err)
	s.Assert().False(step.Completed)

	step, err = s.svc.Advance(ctx, testUserID, view.Token)
	s.Require().NoError(err)
	s.Require().True(step.Completed)
	s.Require().NotNil(step.Summary)
	s.Assert().Equal(1, step.Summary.CorrectAnswers)
	s.Assert().Equal(1, step.Summary.IncorrectAnswers)
	s.Assert().Equal(50.0, step.Summary.Accuracy)

	s.statusRepo.AssertNumberOfCalls(s.T(), "Put", 2)
}

func (s *StudyServiceSuite) TestMarkStatusRejectsCardOutsideDeck() {
	ctx := context.Background()
	s.expectCategory()
	s.flashcardRepo.On("Deck", mock.Anything, testUserID, testCategoryID, card.TypeClassic).
		Return(classicDeck(2), nil)
	s.statusRepo.On("Get", mock.Anything, testUserID, testCategoryID).
		Return(map[int64]string{}, nil)

	view, err := s.svc.Start(ctx, testUserID, testCategoryID, card.TypeClassic)
	s.Require().NoError(err)

	_, err = s.svc.MarkStatus(ctx, testUserID, view.Token, 99, "learned")
	s.Require().Error(err)
	s.Assert().Equal(errors.ErrCodeValidation, appErrCode(err))
}

func (s *StudyServiceSuite) TestRestartKeepsStatusesResetsCounters() {
	ctx := context.Background()
	s.expectCategory()
	s.flashcardRepo.On("Deck", mock.Anything, testUserID, testCategoryID, card.TypeClassic).
		Return(classicDeck(3), nil)
	s.statusRepo.On("Get", mock.Anything, testUserID, testCategoryID).
		Return(map[int64]string{}, nil)
	s.statusRepo.On("Put", mock.Anything, testUserID, testCategoryID, mock.Anything).Return(nil)
	s.flashcardRepo.On("SetLearned", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	view, err := s.svc.Start(ctx, testUserID, testCategoryID, card.TypeClassic)
	s.Require().NoError(err)

	_, err = s.svc.MarkStatus(ctx, testUserID, view.Token, 1, "learned")
	s.Require().NoError(err)
	_, err = s.svc.Advance(ctx, testUserID, view.Token)
	s.Require().NoError(err)

	restarted, err := s.svc.Restart(ctx, testUserID, view.Token)
	s.Require().NoError(err)
	s.Assert().Equal(0, restarted.Progress.Index)
	s.Assert().Equal(session.StateActive, restarted.Progress.State)
	s.Assert().Equal(session.StatusLearned, restarted.Statuses[1])
}

func (s *StudyServiceSuite) TestSessionOwnership() {
	ctx := context.Background()
	view := s.startTrueFalse(1)

	_, err := s.svc.Get(ctx, testUserID+1, view.Token)
	s.Require().Error(err)
	s.Assert().Equal(errors.ErrCodeForbidden, appErrCode(err))
}

func (s *StudyServiceSuite) TestAbandonDiscardsWithoutPersisting() {
	ctx := context.Background()
	view := s.startTrueFalse(2)

	s.Require().NoError(s.svc.Abandon(ctx, testUserID, view.Token))
	s.Assert().Equal(0, s.store.Len())

	_, err := s.svc.Get(ctx, testUserID, view.Token)
	s.Require().Error(err)
	s.Assert().Equal(errors.ErrCodeNotFound, appErrCode(err))

	s.sessionRepo.AssertNotCalled(s.T(), "Insert")
}

func (s *StudyServiceSuite) TestInvalidToken() {
	_, err := s.svc.Get(context.Background(), testUserID, "not-a-token")
	s.Require().Error(err)
	s.Assert().Equal(errors.ErrCodeBadRequest, appErrCode(err))
}

func TestStudyServiceSuite(t *testing.T) {
	suite.Run(t, new(StudyServiceSuite))
}
