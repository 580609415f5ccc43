package services

import (
	"context"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
)

// FlashcardService handles flashcard-related business logic
type FlashcardService interface {
	Create(ctx context.Context, userID, categoryID int64, content card.Content) (*models.Flashcard, error)
	Get(ctx context.Context, id, userID int64) (*models.Flashcard, error)
	List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error)
	Update(ctx context.Context, id, userID int64, content card.Content) (*models.Flashcard, error)
	Delete(ctx context.Context, id, userID int64) error
	SetLearned(ctx context.Context, id, userID int64, learned bool) (*models.Flashcard, error)
}

type flashcardService struct {
	flashcardRepo repository.FlashcardRepository
	categoryRepo  repository.CategoryRepository
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(flashcardRepo repository.FlashcardRepository, categoryRepo repository.CategoryRepository) FlashcardService {
	return &flashcardService{
		flashcardRepo: flashcardRepo,
		categoryRepo:  categoryRepo,
	}
}

func (s *flashcardService) Create(ctx context.Context, userID, categoryID int64, content card.Content) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating flashcard: user_id=%d category_id=%d type=%s", userID, categoryID, content.CardType())

	if err := content.Validate(); err != nil {
		return nil, errors.NewValidationError("content", err.Error())
	}

	category, err := s.categoryRepo.Get(ctx, categoryID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if category == nil {
		return nil, errors.NewNotFoundError("category", categoryID)
	}

	id, err := s.flashcardRepo.Insert(ctx, models.Flashcard{
		CategoryID: categoryID,
		UserID:     userID,
		Type:       content.CardType(),
		Content:    content,
	})
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("flashcard created: id=%d type=%s", id, content.CardType())
	return s.Get(ctx, id, userID)
}

func (s *flashcardService) Get(ctx context.Context, id, userID int64) (*models.Flashcard, error) {
	flashcard, err := s.flashcardRepo.Get(ctx, id, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if flashcard == nil {
		return nil, errors.NewNotFoundError("flashcard", id)
	}
	return flashcard, nil
}

func (s *flashcardService) List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error) {
	cards, err := s.flashcardRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

// Update replaces a card's content. The card type may change with it; the
// variant is derived from the new content.
func (s *flashcardService) Update(ctx context.Context, id, userID int64, content card.Content) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)

	if err := content.Validate(); err != nil {
		return nil, errors.NewValidationError("content", err.Error())
	}

	flashcard, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	flashcard.Type = content.CardType()
	flashcard.Content = content
	if err := s.flashcardRepo.Update(ctx, *flashcard); err != nil {
		log.Error("failed to update flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.Get(ctx, id, userID)
}

func (s *flashcardService) Delete(ctx context.Context, id, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	if err := s.flashcardRepo.Delete(ctx, id, userID); err != nil {
		log.Error("failed to delete flashcard: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("flashcard deleted: id=%d", id)
	return nil
}

func (s *flashcardService) SetLearned(ctx context.Context, id, userID int64, learned bool) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)

	if _, err := s.Get(ctx, id, userID); err != nil {
		return nil, err
	}
	if err := s.flashcardRepo.SetLearned(ctx, id, learned); err != nil {
		log.Error("failed to set learned flag: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.Get(ctx, id, userID)
}
