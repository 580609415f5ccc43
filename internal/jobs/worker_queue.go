package jobs

import (
	"github.com/kberg/flashdeck/internal/ai"
	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/importer"
	"github.com/kberg/flashdeck/internal/realtime"
	"github.com/kberg/flashdeck/internal/repository"
	"github.com/kberg/flashdeck/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	importPool     *worker.Pool
	generationPool *worker.Pool
	flashcardRepo  repository.FlashcardRepository
	generator      ai.Generator
	hub            *realtime.Hub
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(
	importPool *worker.Pool,
	generationPool *worker.Pool,
	flashcardRepo repository.FlashcardRepository,
	generator ai.Generator,
	hub *realtime.Hub,
) JobQueue {
	return &WorkerQueue{
		importPool:     importPool,
		generationPool: generationPool,
		flashcardRepo:  flashcardRepo,
		generator:      generator,
		hub:            hub,
	}
}

func (q *WorkerQueue) EnqueueImport(userID, categoryID int64, filename string, data []byte) error {
	return q.importPool.Submit(&worker.ImportDeckJob{
		FlashcardRepo: q.flashcardRepo,
		Hub:           q.hub,
		UserID:        userID,
		CategoryID:    categoryID,
		Filename:      filename,
		Data:          data,
		Config:        importer.DefaultConfig(),
	})
}

func (q *WorkerQueue) EnqueueGeneration(userID, categoryID int64, topic string, cardType card.Type, count int) error {
	return q.generationPool.Submit(&worker.GenerateCardsJob{
		Generator:     q.generator,
		FlashcardRepo: q.flashcardRepo,
		Hub:           q.hub,
		UserID:        userID,
		CategoryID:    categoryID,
		Topic:         topic,
		CardType:      cardType,
		Count:         count,
	})
}
