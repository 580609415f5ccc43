package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
)

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository implementation
func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Get(ctx context.Context, id, userID int64) (*models.Category, error) {
	log := logger.FromContext(ctx).WithPrefix("category_repo")

	var c models.Category
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, color, created_at, updated_at
FROM categories
WHERE id = ? AND user_id = ?
`, id, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get category: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) ListByUser(ctx context.Context, userID int64) ([]models.Category, error) {
	log := logger.FromContext(ctx).WithPrefix("category_repo")
	log.Debug("listing categories: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, name, color, created_at, updated_at
FROM categories
WHERE user_id = ?
ORDER BY created_at ASC
`, userID)
	if err != nil {
		log.Error("failed to list categories: %v", err)
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) Insert(ctx context.Context, c models.Category) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("category_repo")
	log.Debug("inserting category: name=%s user_id=%d", c.Name, c.UserID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO categories (user_id, name, color)
VALUES (?, ?, ?)
`, c.UserID, c.Name, c.Color)
	if err != nil {
		log.Error("failed to insert category: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *categoryRepository) Update(ctx context.Context, c models.Category) error {
	log := logger.FromContext(ctx).WithPrefix("category_repo")
	log.Debug("updating category: id=%d", c.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE categories
SET name = ?, color = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND user_id = ?
`, c.Name, c.Color, c.ID, c.UserID)
	if err != nil {
		log.Error("failed to update category: %v", err)
	}
	return err
}

// Delete removes a category. Flashcards, study sessions and status maps under
// it go with it via ON DELETE CASCADE.
func (r *categoryRepository) Delete(ctx context.Context, id, userID int64) error {
	log := logger.FromContext(ctx).WithPrefix("category_repo")
	log.Debug("deleting category: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		log.Error("failed to delete category: %v", err)
	}
	return err
}
