package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/repository"
)

type statusRepository struct {
	db *sql.DB
}

// NewStatusRepository creates a new StatusRepository implementation
func NewStatusRepository(db *sql.DB) repository.StatusRepository {
	return &statusRepository{db: db}
}

// Get reads the learned-status map for one user and category. A missing row
// is an empty map.
func (r *statusRepository) Get(ctx context.Context, userID, categoryID int64) (map[int64]string, error) {
	log := logger.FromContext(ctx).WithPrefix("status_repo")

	var raw string
	err := r.db.QueryRowContext(ctx, `
SELECT statuses FROM card_statuses WHERE user_id = ? AND category_id = ?
`, userID, categoryID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return map[int64]string{}, nil
	}
	if err != nil {
		log.Error("failed to get card statuses: %v", err)
		return nil, err
	}

	// JSON object keys are strings; card IDs are numeric.
	var keyed map[string]string
	if err := json.Unmarshal([]byte(raw), &keyed); err != nil {
		log.Error("corrupt status map for user=%d category=%d: %v", userID, categoryID, err)
		return nil, err
	}
	statuses := make(map[int64]string, len(keyed))
	for k, v := range keyed {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		statuses[id] = v
	}
	return statuses, nil
}

// Put overwrites the status map wholesale, matching the single-writer
// read-once/write-all contract of the per-category blob.
func (r *statusRepository) Put(ctx context.Context, userID, categoryID int64, statuses map[int64]string) error {
	log := logger.FromContext(ctx).WithPrefix("status_repo")

	keyed := make(map[string]string, len(statuses))
	for id, st := range statuses {
		keyed[strconv.FormatInt(id, 10)] = st
	}
	raw, err := json.Marshal(keyed)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO card_statuses (user_id, category_id, statuses, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(user_id, category_id) DO UPDATE SET
    statuses = excluded.statuses,
    updated_at = CURRENT_TIMESTAMP
`, userID, categoryID, string(raw))
	if err != nil {
		log.Error("failed to put card statuses: %v", err)
	}
	return err
}
