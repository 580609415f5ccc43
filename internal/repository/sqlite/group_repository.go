package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
)

type groupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a new GroupRepository implementation
func NewGroupRepository(db *sql.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

const groupColumns = "id, name, invite_code, owner_id, created_at"

func (r *groupRepository) Get(ctx context.Context, id int64) (*models.StudyGroup, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")

	var g models.StudyGroup
	err := r.db.QueryRowContext(ctx, `
SELECT `+groupColumns+` FROM study_groups WHERE id = ?
`, id).Scan(&g.ID, &g.Name, &g.InviteCode, &g.OwnerID, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get group: %v", err)
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) GetByInviteCode(ctx context.Context, code string) (*models.StudyGroup, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")

	var g models.StudyGroup
	err := r.db.QueryRowContext(ctx, `
SELECT `+groupColumns+` FROM study_groups WHERE invite_code = ?
`, code).Scan(&g.ID, &g.Name, &g.InviteCode, &g.OwnerID, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get group by invite code: %v", err)
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) ListByUser(ctx context.Context, userID int64) ([]models.StudyGroup, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT g.id, g.name, g.invite_code, g.owner_id, g.created_at
FROM study_groups g
JOIN group_members m ON m.group_id = g.id
WHERE m.user_id = ?
ORDER BY g.created_at ASC
`, userID)
	if err != nil {
		log.Error("failed to list groups: %v", err)
		return nil, err
	}
	defer rows.Close()

	var groups []models.StudyGroup
	for rows.Next() {
		var g models.StudyGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.InviteCode, &g.OwnerID, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *groupRepository) Insert(ctx context.Context, g models.StudyGroup) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")
	log.Debug("inserting group: name=%s owner_id=%d", g.Name, g.OwnerID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO study_groups (name, invite_code, owner_id)
VALUES (?, ?, ?)
`, g.Name, g.InviteCode, g.OwnerID)
	if err != nil {
		log.Error("failed to insert group: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *groupRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	log := logger.FromContext(ctx).WithPrefix("group_repo")

	_, err := r.db.ExecContext(ctx, `
INSERT INTO group_members (group_id, user_id)
VALUES (?, ?)
ON CONFLICT(group_id, user_id) DO NOTHING
`, groupID, userID)
	if err != nil {
		log.Error("failed to add member: %v", err)
	}
	return err
}

func (r *groupRepository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	log := logger.FromContext(ctx).WithPrefix("group_repo")

	_, err := r.db.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = ? AND user_id = ?`, groupID, userID)
	if err != nil {
		log.Error("failed to remove member: %v", err)
	}
	return err
}

func (r *groupRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
SELECT 1 FROM group_members WHERE group_id = ? AND user_id = ?
`, groupID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *groupRepository) InsertMessage(ctx context.Context, m models.GroupMessage) error {
	log := logger.FromContext(ctx).WithPrefix("group_repo")

	_, err := r.db.ExecContext(ctx, `
INSERT INTO group_messages (id, group_id, user_id, body, created_at)
VALUES (?, ?, ?, ?, ?)
`, m.ID.String(), m.GroupID, m.UserID, m.Body, m.CreatedAt)
	if err != nil {
		log.Error("failed to insert message: %v", err)
	}
	return err
}

func (r *groupRepository) GetMessage(ctx context.Context, id uuid.UUID) (*models.GroupMessage, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")

	var m models.GroupMessage
	var rawID string
	err := r.db.QueryRowContext(ctx, `
SELECT gm.id, gm.group_id, gm.user_id, u.nickname, gm.body, gm.created_at
FROM group_messages gm
JOIN users u ON u.id = gm.user_id
WHERE gm.id = ?
`, id.String()).Scan(&rawID, &m.GroupID, &m.UserID, &m.Nickname, &m.Body, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get message: %v", err)
		return nil, err
	}
	m.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMessages returns a page of chat history, newest first.
func (r *groupRepository) ListMessages(ctx context.Context, filter models.MessageFilter) ([]models.GroupMessage, error) {
	log := logger.FromContext(ctx).WithPrefix("group_repo")

	query := sqlBuilder.Select("gm.id", "gm.group_id", "gm.user_id", "u.nickname", "gm.body", "gm.created_at").
		From("group_messages gm").
		Join("users u ON u.id = gm.user_id").
		Where(squirrel.Eq{"gm.group_id": filter.GroupID}).
		OrderBy("gm.created_at DESC")

	if filter.Before != nil {
		query = query.Where(squirrel.Lt{"gm.created_at": *filter.Before})
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query = query.Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list messages: %v", err)
		return nil, err
	}
	defer rows.Close()

	var messages []models.GroupMessage
	for rows.Next() {
		var m models.GroupMessage
		var rawID string
		if err := rows.Scan(&rawID, &m.GroupID, &m.UserID, &m.Nickname, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
