package services

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
	"github.com/kberg/flashdeck/internal/session"
)

// SessionView is the client-facing snapshot of a study session.
type SessionView struct {
	Token      string                   `json:"token"`
	CategoryID int64                    `json:"category_id"`
	Mode       card.Type                `json:"mode"`
	Current    *models.Flashcard        `json:"current,omitempty"`
	Progress   session.Progress         `json:"progress"`
	Statuses   map[int64]session.Status `json:"statuses,omitempty"`
	Summary    *session.Summary         `json:"summary,omitempty"`
}

// AdvanceResult reports a flip-through step. Summary and Unlocked are set only
// when the step completed the session.
type AdvanceResult struct {
	Completed bool                 `json:"completed"`
	Current   *models.Flashcard    `json:"current,omitempty"`
	Progress  session.Progress     `json:"progress"`
	Summary   *session.Summary     `json:"summary,omitempty"`
	Unlocked  []models.Achievement `json:"unlocked,omitempty"`
}

// AnswerOutcome reports a scored answer, plus completion payload on the last
// card.
type AnswerOutcome struct {
	Correct       bool                 `json:"correct"`
	CorrectAnswer string               `json:"correct_answer"`
	Completed     bool                 `json:"completed"`
	Current       *models.Flashcard    `json:"current,omitempty"`
	Progress      session.Progress     `json:"progress"`
	Summary       *session.Summary     `json:"summary,omitempty"`
	Unlocked      []models.Achievement `json:"unlocked,omitempty"`
}

// StudyService drives study sessions end to end
type StudyService interface {
	Start(ctx context.Context, userID, categoryID int64, mode card.Type) (*SessionView, error)
	Get(ctx context.Context, userID int64, token string) (*SessionView, error)
	Advance(ctx context.Context, userID int64, token string) (*AdvanceResult, error)
	Retreat(ctx context.Context, userID int64, token string) (*SessionView, error)
	MarkStatus(ctx context.Context, userID int64, token string, cardID int64, status string) (*SessionView, error)
	SubmitAnswer(ctx context.Context, userID int64, token string, answer string) (*AnswerOutcome, error)
	Restart(ctx context.Context, userID int64, token string) (*SessionView, error)
	Abandon(ctx context.Context, userID int64, token string) error
}

type studyService struct {
	store          *session.Store
	flashcardRepo  repository.FlashcardRepository
	categoryRepo   repository.CategoryRepository
	sessionRepo    repository.SessionRepository
	statusRepo     repository.StatusRepository
	achievementSvc AchievementService
}

// NewStudyService creates a new StudyService
func NewStudyService(
	store *session.Store,
	flashcardRepo repository.FlashcardRepository,
	categoryRepo repository.CategoryRepository,
	sessionRepo repository.SessionRepository,
	statusRepo repository.StatusRepository,
	achievementSvc AchievementService,
) StudyService {
	return &studyService{
		store:          store,
		flashcardRepo:  flashcardRepo,
		categoryRepo:   categoryRepo,
		sessionRepo:    sessionRepo,
		statusRepo:     statusRepo,
		achievementSvc: achievementSvc,
	}
}

func (s *studyService) Start(ctx context.Context, userID, categoryID int64, mode card.Type) (*SessionView, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting study session: user_id=%d category_id=%d mode=%s", userID, categoryID, mode)

	category, err := s.categoryRepo.Get(ctx, categoryID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if category == nil {
		return nil, errors.NewNotFoundError("category", categoryID)
	}

	deck, err := s.flashcardRepo.Deck(ctx, userID, categoryID, mode)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if len(deck) == 0 {
		return nil, errors.NewEmptyDeckError(categoryID, string(mode))
	}

	sess, err := session.New(userID, categoryID, mode, session.Shuffle(deck))
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	if mode == card.TypeClassic {
		persisted, err := s.statusRepo.Get(ctx, userID, categoryID)
		if err != nil {
			log.Warn("failed to load learned statuses: %v", err)
		} else {
			seeded := make(map[int64]session.Status, len(persisted))
			for id, st := range persisted {
				seeded[id] = session.Status(st)
			}
			sess.SeedStatuses(seeded)
		}
	}

	s.store.Put(sess)
	log.Info("study session started: token=%s cards=%d mode=%s", sess.Token, len(deck), mode)
	return s.view(sess), nil
}

func (s *studyService) Get(ctx context.Context, userID int64, token string) (*SessionView, error) {
	sess, err := s.resolve(userID, token)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *studyService) Advance(ctx context.Context, userID int64, token string) (*AdvanceResult, error) {
	sess, err := s.resolve(userID, token)
	if err != nil {
		return nil, err
	}

	summary, err := sess.Advance()
	if err != nil {
		return nil, mapSessionError(err)
	}

	result := &AdvanceResult{Progress: sess.Progress()}
	if summary != nil {
		result.Completed = true
		result.Summary = summary
		result.Unlocked = s.finish(ctx, sess, *summary)
	} else {
		result.Current = currentOf(sess)
	}
	return result, nil
}

func (s *studyService) Retreat(ctx context.Context, userID int64, token string) (*SessionView, error) {
	sess, err := s.resolve(userID, token)
	if err != nil {
		return nil, err
	}
	if err := sess.Retreat(); err != nil {
		return nil, mapSessionError(err)
	}
	return s.view(sess), nil
}

// MarkStatus tags a card learning/learned and writes the whole status map
// through to storage, keeping the per-card learned flag in step.
func (s *studyService) MarkStatus(ctx context.Context, userID int64, token string, cardID int64, status string) (*SessionView, error) {
	log := logger.FromContext(ctx)

	sess, err := s.resolve(userID, token)
	if err != nil {
		return nil, err
	}

	st := session.Status(status)
	if st != session.StatusLearning && st != session.StatusLearned {
		return nil, errors.NewValidationError("status", "must be 'learning' or 'learned'")
	}
	if err := sess.MarkStatus(cardID, st); err != nil {
		return nil, mapSessionError(err)
	}

	statuses := sess.Statuses()
	persisted := make(map[int64]string, len(statuses))
	for id, v := range statuses {
		persisted[id] = string(v)
	}
	if err := s.statusRepo.Put(ctx, userID, sess.CategoryID, persisted); err != nil {
		log.Warn("failed to persist learned statuses: %v", err)
	}
	if err := s.flashcardRepo.SetLearned(ctx, cardID, st == session.StatusLearned); err != nil {
		log.Warn("failed to sync learned flag: %v", err)
	}
	return s.view(sess), nil
}

func (s *studyService) SubmitAnswer(ctx context.Context, userID int64, token string, answer string) (*AnswerOutcome, error) {
	log := logger.FromContext(ctx)

	sess, err := s.resolve(userID, token)
	if err != nil {
		return nil, err
	}

	result, err := sess.SubmitAnswer(answer)
	if err != nil {
		return nil, mapSessionError(err)
	}

	if err := s.flashcardRepo.RecordReview(ctx, result.CardID); err != nil {
		log.Warn("failed to record review: %v", err)
	}

	outcome := &AnswerOutcome{
		Correct:       result.Correct,
		CorrectAnswer: result.CorrectAnswer,
		Completed:     result.Completed,
		Progress:      sess.Progress(),
		Summary:       result.Summary,
	}
	if result.Completed {
		outcome.Unlocked = s.finish(ctx, sess, *result.Summary)
	} else {
		outcome.Current = currentOf(sess)
	}
	return outcome, nil
}

func (s *studyService) Restart(ctx context.Context, userID int64, token string) (*SessionView, error) {
	log := logger.FromContext(ctx)

	sess, err := s.resolve(userID, token)
	if err != nil {
		return nil, err
	}
	if err := sess.Restart(session.Shuffle(sess.Deck())); err != nil {
		return nil, mapSessionError(err)
	}
	log.Info("study session restarted: token=%s", sess.Token)
	return s.view(sess), nil
}

// Abandon drops the session without recording anything.
func (s *studyService) Abandon(ctx context.Context, userID int64, token string) error {
	sess, err := s.resolve(userID, token)
	if err != nil {
		return err
	}
	s.store.Delete(sess.Token)
	logger.FromContext(ctx).Info("study session abandoned: token=%s", sess.Token)
	return nil
}

// finish persists the completed session and evaluates achievements. Both are
// best effort: the client still gets its summary if storage hiccups.
func (s *studyService) finish(ctx context.Context, sess *session.Session, summary session.Summary) []models.Achievement {
	log := logger.FromContext(ctx)

	_, err := s.sessionRepo.Insert(ctx, models.StudySession{
		UserID:           sess.UserID,
		CategoryID:       sess.CategoryID,
		Mode:             sess.Mode,
		StartedAt:        summary.StartedAt,
		EndedAt:          summary.EndedAt,
		CardsReviewed:    summary.CardsReviewed,
		CorrectAnswers:   summary.CorrectAnswers,
		IncorrectAnswers: summary.IncorrectAnswers,
		Accuracy:         summary.Accuracy,
		DurationSeconds:  summary.DurationSeconds,
	})
	if err != nil {
		log.Error("failed to persist completed session: %v", err)
	}

	unlocked, err := s.achievementSvc.EvaluateAfterSession(ctx, sess.UserID, summary)
	if err != nil {
		log.Warn("achievement evaluation failed: %v", err)
	}
	log.Info("study session completed: token=%s accuracy=%.1f", sess.Token, summary.Accuracy)
	return unlocked
}

func (s *studyService) resolve(userID int64, token string) (*session.Session, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, errors.NewBadRequestError("invalid session token")
	}
	sess, ok := s.store.Get(parsed)
	if !ok {
		return nil, errors.NewNotFoundError("study session", token)
	}
	if sess.UserID != userID {
		return nil, errors.NewForbiddenError("session does not belong to user")
	}
	return sess, nil
}

func (s *studyService) view(sess *session.Session) *SessionView {
	view := &SessionView{
		Token:      sess.Token.String(),
		CategoryID: sess.CategoryID,
		Mode:       sess.Mode,
		Current:    currentOf(sess),
		Progress:   sess.Progress(),
		Summary:    sess.Summary(),
	}
	if sess.Mode == card.TypeClassic {
		view.Statuses = sess.Statuses()
	}
	return view
}

func currentOf(sess *session.Session) *models.Flashcard {
	current, err := sess.Current()
	if err != nil {
		return nil
	}
	return &current
}

func mapSessionError(err error) error {
	switch {
	case stderrors.Is(err, session.ErrCompleted):
		return errors.NewConflictError("session is already complete")
	case stderrors.Is(err, session.ErrWrongMode):
		return errors.NewBadRequestError("operation not supported in this study mode")
	case stderrors.Is(err, session.ErrAlreadyAnswered):
		return errors.NewConflictError("card already answered")
	case stderrors.Is(err, session.ErrCardNotInDeck):
		return errors.NewValidationError("card_id", "card is not part of this deck")
	case stderrors.Is(err, session.ErrEmptyDeck):
		return errors.NewBadRequestError("deck has no cards")
	default:
		return errors.NewInternalError(err)
	}
}
