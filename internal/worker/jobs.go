package worker

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/kberg/flashdeck/internal/ai"
	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/importer"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/realtime"
	"github.com/kberg/flashdeck/internal/repository"
)

// UserTopic is the realtime topic jobs report progress on.
func UserTopic(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

// ImportDeckJob parses an uploaded spreadsheet and inserts the cards it
// contains into a category.
type ImportDeckJob struct {
	FlashcardRepo repository.FlashcardRepository
	Hub           *realtime.Hub
	UserID        int64
	CategoryID    int64
	Filename      string
	Data          []byte
	Config        importer.Config
}

func (j *ImportDeckJob) Name() string { return "import_deck" }

func (j *ImportDeckJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id":     j.UserID,
		"category_id": j.CategoryID,
		"filename":    j.Filename,
	})
	log.Info("starting deck import")

	result, err := importer.Parse(bytes.NewReader(j.Data), j.Filename, j.Config)
	if err != nil {
		j.publish("import.failed", map[string]any{"error": err.Error()})
		return err
	}

	created := 0
	for _, row := range result.Rows {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_, err := j.FlashcardRepo.Insert(ctx, models.Flashcard{
			CategoryID: j.CategoryID,
			UserID:     j.UserID,
			Type:       row.Type,
			Content:    row.Content,
		})
		if err != nil {
			log.Error("failed to insert imported card from row %d: %v", row.Line, err)
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row.Line, err))
			continue
		}
		created++
	}

	log.Info("deck import finished: processed=%d created=%d skipped=%d errors=%d",
		result.TotalProcessed, created, result.Skipped, len(result.Errors))

	j.publish("import.completed", map[string]any{
		"category_id":     j.CategoryID,
		"total_processed": result.TotalProcessed,
		"created":         created,
		"skipped":         result.Skipped,
		"errors":          result.Errors,
	})
	return nil
}

func (j *ImportDeckJob) publish(eventType string, data any) {
	if j.Hub == nil {
		return
	}
	j.Hub.Publish(realtime.Event{
		Topic: UserTopic(j.UserID),
		Type:  eventType,
		Data:  data,
		At:    time.Now(),
	})
}

// GenerateCardsJob asks the AI client for cards about a topic and inserts
// them into a category.
type GenerateCardsJob struct {
	Generator     ai.Generator
	FlashcardRepo repository.FlashcardRepository
	Hub           *realtime.Hub
	UserID        int64
	CategoryID    int64
	Topic         string
	CardType      card.Type
	Count         int
}

func (j *GenerateCardsJob) Name() string { return "generate_cards" }

func (j *GenerateCardsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id":     j.UserID,
		"category_id": j.CategoryID,
		"topic":       j.Topic,
	})
	log.Info("starting card generation")

	contents, err := j.Generator.GenerateCards(ctx, j.Topic, j.CardType, j.Count)
	if err != nil {
		j.publish("generation.failed", map[string]any{"error": err.Error()})
		return err
	}

	created := 0
	for _, content := range contents {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_, err := j.FlashcardRepo.Insert(ctx, models.Flashcard{
			CategoryID: j.CategoryID,
			UserID:     j.UserID,
			Type:       j.CardType,
			Content:    content,
		})
		if err != nil {
			log.Error("failed to insert generated card: %v", err)
			continue
		}
		created++
	}

	log.Info("card generation finished: requested=%d created=%d", j.Count, created)

	j.publish("generation.completed", map[string]any{
		"category_id": j.CategoryID,
		"topic":       j.Topic,
		"created":     created,
	})
	return nil
}

func (j *GenerateCardsJob) publish(eventType string, data any) {
	if j.Hub == nil {
		return
	}
	j.Hub.Publish(realtime.Event{
		Topic: UserTopic(j.UserID),
		Type:  eventType,
		Data:  data,
		At:    time.Now(),
	})
}
