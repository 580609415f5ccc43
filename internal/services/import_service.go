package services

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/jobs"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/repository"
)

// maxImportBytes caps uploads at 5 MiB, plenty for any realistic deck.
const maxImportBytes = 5 << 20

// ImportService accepts deck uploads and hands them to the background queue
type ImportService interface {
	Enqueue(ctx context.Context, userID, categoryID int64, filename string, data []byte) error
}

type importService struct {
	categoryRepo repository.CategoryRepository
	queue        jobs.JobQueue
}

// NewImportService creates a new ImportService
func NewImportService(categoryRepo repository.CategoryRepository, queue jobs.JobQueue) ImportService {
	return &importService{
		categoryRepo: categoryRepo,
		queue:        queue,
	}
}

func (s *importService) Enqueue(ctx context.Context, userID, categoryID int64, filename string, data []byte) error {
	log := logger.FromContext(ctx)

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".csv" && ext != ".xlsx" {
		return errors.NewValidationError("file", "must be a .csv or .xlsx file")
	}
	if len(data) == 0 {
		return errors.NewValidationError("file", "must not be empty")
	}
	if len(data) > maxImportBytes {
		return errors.NewValidationError("file", "must be 5MB or smaller")
	}

	category, err := s.categoryRepo.Get(ctx, categoryID, userID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if category == nil {
		return errors.NewNotFoundError("category", categoryID)
	}

	if err := s.queue.EnqueueImport(userID, categoryID, filename, data); err != nil {
		log.Error("failed to enqueue import: %v", err)
		return errors.NewConflictError("import queue is full, try again shortly")
	}
	log.Info("deck import enqueued: user_id=%d category_id=%d file=%s", userID, categoryID, filename)
	return nil
}
