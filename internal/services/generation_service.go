package services

import (
	"context"
	"strings"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/jobs"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/repository"
)

const maxGeneratedCards = 20

// GenerationService gates and enqueues AI card generation. Generation is a
// premium feature.
type GenerationService interface {
	Enqueue(ctx context.Context, userID, categoryID int64, topic string, cardType card.Type, count int) error
}

type generationService struct {
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	queue        jobs.JobQueue
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(userRepo repository.UserRepository, categoryRepo repository.CategoryRepository, queue jobs.JobQueue) GenerationService {
	return &generationService{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		queue:        queue,
	}
}

func (s *generationService) Enqueue(ctx context.Context, userID, categoryID int64, topic string, cardType card.Type, count int) error {
	log := logger.FromContext(ctx)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if user == nil {
		return errors.NewNotFoundError("user", userID)
	}
	if !user.IsPremium {
		return errors.NewForbiddenError("card generation requires a premium subscription")
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return errors.NewValidationError("topic", "must not be empty")
	}
	if len(topic) > 200 {
		return errors.NewValidationError("topic", "must be 200 characters or fewer")
	}
	if count < 1 || count > maxGeneratedCards {
		return errors.NewValidationError("count", "must be between 1 and 20")
	}
	if _, err := card.ParseType(string(cardType)); err != nil {
		return errors.NewValidationError("card_type", err.Error())
	}

	category, err := s.categoryRepo.Get(ctx, categoryID, userID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if category == nil {
		return errors.NewNotFoundError("category", categoryID)
	}

	if err := s.queue.EnqueueGeneration(userID, categoryID, topic, cardType, count); err != nil {
		log.Error("failed to enqueue generation: %v", err)
		return errors.NewConflictError("generation queue is full, try again shortly")
	}
	log.Info("card generation enqueued: user_id=%d category_id=%d topic=%s count=%d", userID, categoryID, topic, count)
	return nil
}
