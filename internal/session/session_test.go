package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/session"
)

func classicDeck(n int) []models.Flashcard {
	deck := make([]models.Flashcard, 0, n)
	for i := 0; i < n; i++ {
		deck = append(deck, models.Flashcard{
			ID:   int64(i + 1),
			Type: card.TypeClassic,
			Content: card.Classic{
				Term:       "term",
				Definition: "definition",
			},
		})
	}
	return deck
}

func trueFalseDeck(answers ...string) []models.Flashcard {
	deck := make([]models.Flashcard, 0, len(answers))
	for i, a := range answers {
		deck = append(deck, models.Flashcard{
			ID:   int64(i + 1),
			Type: card.TypeTrueFalse,
			Content: card.TrueFalse{
				Statement:     "statement",
				CorrectAnswer: a,
			},
		})
	}
	return deck
}

func choiceDeck(n int) []models.Flashcard {
	deck := make([]models.Flashcard, 0, n)
	for i := 0; i < n; i++ {
		deck = append(deck, models.Flashcard{
			ID:   int64(i + 1),
			Type: card.TypeMultipleChoice,
			Content: card.MultipleChoice{
				Question:      "Capital of France?",
				Options:       []string{"Paris", "London", "Berlin"},
				CorrectAnswer: "Paris",
			},
		})
	}
	return deck
}

func TestNew_EmptyDeckRejected(t *testing.T) {
	_, err := session.New(1, 1, card.TypeClassic, nil)
	assert.ErrorIs(t, err, session.ErrEmptyDeck)
}

func TestNew_ModeMismatchRejected(t *testing.T) {
	_, err := session.New(1, 1, card.TypeTrueFalse, classicDeck(2))
	assert.Error(t, err)
}

func TestAdvance_WalksDeckThenCompletes(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeClassic, classicDeck(3))
	require.NoError(t, err)

	summary, err := sess.Advance()
	require.NoError(t, err)
	assert.Nil(t, summary)
	assert.Equal(t, 1, sess.Progress().Index)

	summary, err = sess.Advance()
	require.NoError(t, err)
	assert.Nil(t, summary)
	assert.Equal(t, 2, sess.Progress().Index)

	// Advancing from the last card completes, never an out-of-range index.
	summary, err = sess.Advance()
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, session.StateComplete, sess.State())
	assert.Equal(t, 3, summary.CardsReviewed)
	assert.Equal(t, 2, sess.Progress().Index)
}

func TestAdvance_AfterCompleteIsAnError(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeClassic, classicDeck(1))
	require.NoError(t, err)

	_, err = sess.Advance()
	require.NoError(t, err)

	_, err = sess.Advance()
	assert.ErrorIs(t, err, session.ErrCompleted)
}

func TestRetreat_AtZeroIsNoOp(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeClassic, classicDeck(3))
	require.NoError(t, err)

	require.NoError(t, sess.Retreat())
	assert.Equal(t, 0, sess.Progress().Index)

	_, err = sess.Advance()
	require.NoError(t, err)
	require.NoError(t, sess.Retreat())
	assert.Equal(t, 0, sess.Progress().Index)
}

func TestRetreat_OnlyInClassicMode(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeTrueFalse, trueFalseDeck("true", "false"))
	require.NoError(t, err)

	assert.ErrorIs(t, sess.Retreat(), session.ErrWrongMode)
}

func TestMarkStatus_DoesNotTouchCounters(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeClassic, classicDeck(3))
	require.NoError(t, err)

	require.NoError(t, sess.MarkStatus(1, session.StatusLearned))
	require.NoError(t, sess.MarkStatus(2, session.StatusLearning))

	p := sess.Progress()
	assert.Equal(t, 0, p.Correct)
	assert.Equal(t, 0, p.Incorrect)
}

func TestMarkStatus_Validation(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeClassic, classicDeck(2))
	require.NoError(t, err)

	assert.ErrorIs(t, sess.MarkStatus(99, session.StatusLearned), session.ErrCardNotInDeck)
	assert.Error(t, sess.MarkStatus(1, session.Status("mastered")))

	tf, err := session.New(1, 1, card.TypeTrueFalse, trueFalseDeck("true"))
	require.NoError(t, err)
	assert.ErrorIs(t, tf.MarkStatus(1, session.StatusLearned), session.ErrWrongMode)
}

func TestClassicSummary_DerivedFromStatuses(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeClassic, classicDeck(4))
	require.NoError(t, err)

	require.NoError(t, sess.MarkStatus(1, session.StatusLearned))
	require.NoError(t, sess.MarkStatus(2, session.StatusLearned))
	require.NoError(t, sess.MarkStatus(3, session.StatusLearning))
	// card 4 left unmarked: counts toward cards reviewed, not accuracy

	var summary *session.Summary
	for summary == nil {
		summary, err = sess.Advance()
		require.NoError(t, err)
	}

	assert.Equal(t, 4, summary.CardsReviewed)
	assert.Equal(t, 2, summary.CorrectAnswers)
	assert.Equal(t, 1, summary.IncorrectAnswers)
	assert.InDelta(t, 66.66, summary.Accuracy, 0.01)
}

func TestSubmitAnswer_TrueFalse(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeTrueFalse, trueFalseDeck("true", "false"))
	require.NoError(t, err)

	res, err := sess.SubmitAnswer("true")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.False(t, res.Completed)
	assert.Equal(t, 1, sess.Progress().Index, "answer auto-advances")

	res, err = sess.SubmitAnswer("true")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, "false", res.CorrectAnswer)
	assert.True(t, res.Completed)
	require.NotNil(t, res.Summary)
	assert.Equal(t, 1, res.Summary.CorrectAnswers)
	assert.Equal(t, 1, res.Summary.IncorrectAnswers)
	assert.Equal(t, 50.0, res.Summary.Accuracy)
}

func TestSubmitAnswer_MultipleChoice(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeMultipleChoice, choiceDeck(3))
	require.NoError(t, err)

	res, err := sess.SubmitAnswer("Paris")
	require.NoError(t, err)
	assert.True(t, res.Correct)

	res, err = sess.SubmitAnswer("London")
	require.NoError(t, err)
	assert.False(t, res.Correct)

	// A value not in the options is incorrect, never an error.
	res, err = sess.SubmitAnswer("Madrid")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.True(t, res.Completed)
	assert.Equal(t, 1, res.Summary.CorrectAnswers)
	assert.Equal(t, 2, res.Summary.IncorrectAnswers)
}

func TestSubmitAnswer_ReportsScoredCard(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeTrueFalse, trueFalseDeck("true", "false"))
	require.NoError(t, err)

	// The result must carry the card that was scored, not the card the
	// session advanced to.
	res, err := sess.SubmitAnswer("true")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.CardID)

	res, err = sess.SubmitAnswer("false")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.CardID)
}

func TestSubmitAnswer_CardCannotBeAnsweredTwice(t *testing.T) {
	deck := trueFalseDeck("true", "true")
	// Put the same card ID at both positions to simulate a stale retry.
	deck[1].ID = deck[0].ID

	sess, err := session.New(1, 1, card.TypeTrueFalse, deck)
	require.NoError(t, err)

	_, err = sess.SubmitAnswer("true")
	require.NoError(t, err)

	_, err = sess.SubmitAnswer("true")
	assert.ErrorIs(t, err, session.ErrAlreadyAnswered)
}

func TestSubmitAnswer_NotInClassicMode(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeClassic, classicDeck(1))
	require.NoError(t, err)

	_, err = sess.SubmitAnswer("whatever")
	assert.ErrorIs(t, err, session.ErrWrongMode)
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 70.0, session.Accuracy(7, 3))
	assert.Equal(t, 0.0, session.Accuracy(0, 0), "no division by zero")
	assert.Equal(t, 100.0, session.Accuracy(5, 0))
	assert.Equal(t, 0.0, session.Accuracy(0, 5))
}

func TestRestart_ResetsCountersKeepsStatuses(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeClassic, classicDeck(2))
	require.NoError(t, err)

	require.NoError(t, sess.MarkStatus(1, session.StatusLearned))
	_, err = sess.Advance()
	require.NoError(t, err)
	summary, err := sess.Advance()
	require.NoError(t, err)
	require.NotNil(t, summary)

	require.NoError(t, sess.Restart(session.Shuffle(classicDeck(2))))

	p := sess.Progress()
	assert.Equal(t, session.StateActive, p.State)
	assert.Equal(t, 0, p.Index)
	assert.Equal(t, 0, p.Correct)
	assert.Equal(t, 0, p.Incorrect)
	assert.Nil(t, sess.Summary())
	assert.Equal(t, session.StatusLearned, sess.Statuses()[1], "learned statuses survive restart")
}

func TestSeedStatuses(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeClassic, classicDeck(2))
	require.NoError(t, err)

	sess.SeedStatuses(map[int64]session.Status{1: session.StatusLearned, 42: session.StatusLearning})

	statuses := sess.Statuses()
	assert.Equal(t, session.StatusLearned, statuses[1])
	// Statuses for cards outside the deck are kept but never scored.
	assert.Equal(t, session.StatusLearning, statuses[42])
}

func TestSummary_DurationNonNegative(t *testing.T) {
	sess, err := session.New(1, 1, card.TypeTrueFalse, trueFalseDeck("true"))
	require.NoError(t, err)

	res, err := sess.SubmitAnswer("true")
	require.NoError(t, err)
	require.NotNil(t, res.Summary)
	assert.GreaterOrEqual(t, res.Summary.DurationSeconds, 0)
	assert.False(t, res.Summary.EndedAt.Before(res.Summary.StartedAt))
}
