package jobs

import "github.com/kberg/flashdeck/internal/card"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueImport(userID, categoryID int64, filename string, data []byte) error
	EnqueueGeneration(userID, categoryID int64, topic string, cardType card.Type, count int) error
}
