package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
	"github.com/kberg/flashdeck/internal/repository/sqlite"
	"github.com/kberg/flashdeck/internal/testutil"
)

type SessionRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.SessionRepository
}

func (s *SessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSessionRepository(s.db)
}

func (s *SessionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SessionRepositorySuite) setupUserAndCategory() (int64, int64) {
	ctx := context.Background()

	res, err := s.db.ExecContext(ctx, `INSERT INTO users (subject, nickname) VALUES (?, ?)`, "auth0|tester", "tester")
	s.Require().NoError(err)
	userID, err := res.LastInsertId()
	s.Require().NoError(err)

	res, err = s.db.ExecContext(ctx, `INSERT INTO categories (user_id, name, color) VALUES (?, ?, ?)`, userID, "History", "#f59e0b")
	s.Require().NoError(err)
	categoryID, err := res.LastInsertId()
	s.Require().NoError(err)

	return userID, categoryID
}

func (s *SessionRepositorySuite) insertSession(userID, categoryID int64, mode card.Type, endedAt time.Time, accuracy float64) int64 {
	id, err := s.repo.Insert(context.Background(), models.StudySession{
		UserID:           userID,
		CategoryID:       categoryID,
		Mode:             mode,
		StartedAt:        endedAt.Add(-3 * time.Minute),
		EndedAt:          endedAt,
		CardsReviewed:    10,
		CorrectAnswers:   7,
		IncorrectAnswers: 3,
		Accuracy:         accuracy,
		DurationSeconds:  180,
	})
	s.Require().NoError(err)
	return id
}

func (s *SessionRepositorySuite) TestInsertAndList() {
	ctx := context.Background()
	userID, categoryID := s.setupUserAndCategory()

	id := s.insertSession(userID, categoryID, card.TypeMultipleChoice, time.Now(), 70)
	s.Assert().Greater(id, int64(0))

	sessions, err := s.repo.List(ctx, models.SessionFilter{UserID: userID})
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Assert().Equal(card.TypeMultipleChoice, sessions[0].Mode)
	s.Assert().Equal(7, sessions[0].CorrectAnswers)
	s.Assert().Equal(70.0, sessions[0].Accuracy)
}

func (s *SessionRepositorySuite) TestListNewestFirst() {
	ctx := context.Background()
	userID, categoryID := s.setupUserAndCategory()

	now := time.Now()
	older := s.insertSession(userID, categoryID, card.TypeClassic, now.Add(-48*time.Hour), 50)
	newer := s.insertSession(userID, categoryID, card.TypeClassic, now, 80)

	sessions, err := s.repo.List(ctx, models.SessionFilter{UserID: userID})
	s.Require().NoError(err)
	s.Require().Len(sessions, 2)
	s.Assert().Equal(newer, sessions[0].ID)
	s.Assert().Equal(older, sessions[1].ID)
}

func (s *SessionRepositorySuite) TestListFilterByModeAndSince() {
	ctx := context.Background()
	userID, categoryID := s.setupUserAndCategory()

	now := time.Now()
	s.insertSession(userID, categoryID, card.TypeClassic, now.Add(-72*time.Hour), 60)
	recent := s.insertSession(userID, categoryID, card.TypeTrueFalse, now, 90)

	since := now.Add(-24 * time.Hour)
	sessions, err := s.repo.List(ctx, models.SessionFilter{
		UserID: userID,
		Mode:   card.TypeTrueFalse,
		Since:  &since,
	})
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Assert().Equal(recent, sessions[0].ID)
}

func (s *SessionRepositorySuite) TestCount() {
	ctx := context.Background()
	userID, categoryID := s.setupUserAndCategory()

	s.insertSession(userID, categoryID, card.TypeClassic, time.Now(), 40)
	s.insertSession(userID, categoryID, card.TypeClassic, time.Now(), 60)

	count, err := s.repo.Count(ctx, models.SessionFilter{UserID: userID})
	s.Require().NoError(err)
	s.Assert().Equal(2, count)

	count, err = s.repo.Count(ctx, models.SessionFilter{UserID: userID + 1})
	s.Require().NoError(err)
	s.Assert().Equal(0, count)
}

func TestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionRepositorySuite))
}
