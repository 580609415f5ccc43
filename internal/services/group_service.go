package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/realtime"
	"github.com/kberg/flashdeck/internal/repository"
)

// inviteCodeAlphabet avoids ambiguous characters in codes users type by hand.
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const maxMessageLength = 2000

// GroupTopic is the realtime topic for a group's chat feed.
func GroupTopic(groupID int64) string {
	return "group:" + strconv.FormatInt(groupID, 10)
}

// GroupService handles study groups, membership and chat
type GroupService interface {
	Create(ctx context.Context, userID int64, name string) (*models.StudyGroup, error)
	Get(ctx context.Context, groupID, userID int64) (*models.StudyGroup, error)
	List(ctx context.Context, userID int64) ([]models.StudyGroup, error)
	Join(ctx context.Context, userID int64, inviteCode string) (*models.StudyGroup, error)
	Leave(ctx context.Context, groupID, userID int64) error
	PostMessage(ctx context.Context, groupID, userID int64, body string) (*models.GroupMessage, error)
	Messages(ctx context.Context, groupID, userID int64, before *time.Time, limit int) ([]models.GroupMessage, error)
	Subscribe(ctx context.Context, groupID, userID int64) (*realtime.Subscription, error)
}

type groupService struct {
	groupRepo repository.GroupRepository
	hub       *realtime.Hub
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo repository.GroupRepository, hub *realtime.Hub) GroupService {
	return &groupService{
		groupRepo: groupRepo,
		hub:       hub,
	}
}

func (s *groupService) Create(ctx context.Context, userID int64, name string) (*models.StudyGroup, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}
	if len(name) > 100 {
		return nil, errors.NewValidationError("name", "must be 100 characters or fewer")
	}

	code, err := gonanoid.Generate(inviteCodeAlphabet, 8)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	id, err := s.groupRepo.Insert(ctx, models.StudyGroup{
		Name:       name,
		InviteCode: code,
		OwnerID:    userID,
	})
	if err != nil {
		log.Error("failed to create group: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if err := s.groupRepo.AddMember(ctx, id, userID); err != nil {
		log.Error("failed to add owner as member: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("study group created: id=%d name=%s", id, name)
	group, err := s.groupRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return group, nil
}

func (s *groupService) Get(ctx context.Context, groupID, userID int64) (*models.StudyGroup, error) {
	group, err := s.requireMembership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) List(ctx context.Context, userID int64) ([]models.StudyGroup, error) {
	groups, err := s.groupRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return groups, nil
}

func (s *groupService) Join(ctx context.Context, userID int64, inviteCode string) (*models.StudyGroup, error) {
	log := logger.FromContext(ctx)

	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))
	if inviteCode == "" {
		return nil, errors.NewValidationError("invite_code", "must not be empty")
	}

	group, err := s.groupRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if group == nil {
		return nil, errors.NewNotFoundError("study group", inviteCode)
	}

	if err := s.groupRepo.AddMember(ctx, group.ID, userID); err != nil {
		log.Error("failed to join group: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.hub.Publish(realtime.Event{
		Topic: GroupTopic(group.ID),
		Type:  "member.joined",
		Data:  map[string]any{"group_id": group.ID, "user_id": userID},
	})
	log.Info("user joined group: group_id=%d user_id=%d", group.ID, userID)
	return group, nil
}

func (s *groupService) Leave(ctx context.Context, groupID, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.requireMembership(ctx, groupID, userID); err != nil {
		return err
	}
	if err := s.groupRepo.RemoveMember(ctx, groupID, userID); err != nil {
		log.Error("failed to leave group: %v", err)
		return errors.NewInternalError(err)
	}

	s.hub.Publish(realtime.Event{
		Topic: GroupTopic(groupID),
		Type:  "member.left",
		Data:  map[string]any{"group_id": groupID, "user_id": userID},
	})
	return nil
}

func (s *groupService) PostMessage(ctx context.Context, groupID, userID int64, body string) (*models.GroupMessage, error) {
	log := logger.FromContext(ctx)

	if _, err := s.requireMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.NewValidationError("body", "must not be empty")
	}
	if len(body) > maxMessageLength {
		return nil, errors.NewValidationError("body", "message is too long")
	}

	message := models.GroupMessage{
		ID:        uuid.New(),
		GroupID:   groupID,
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.groupRepo.InsertMessage(ctx, message); err != nil {
		log.Error("failed to insert message: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stored, err := s.groupRepo.GetMessage(ctx, message.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if stored == nil {
		return nil, errors.NewInternalError(nil)
	}

	s.hub.Publish(realtime.Event{
		Topic: GroupTopic(groupID),
		Type:  "message.created",
		Data:  stored,
	})
	return stored, nil
}

func (s *groupService) Messages(ctx context.Context, groupID, userID int64, before *time.Time, limit int) ([]models.GroupMessage, error) {
	if _, err := s.requireMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}
	messages, err := s.groupRepo.ListMessages(ctx, models.MessageFilter{
		GroupID: groupID,
		Before:  before,
		Limit:   limit,
	})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return messages, nil
}

// Subscribe attaches a live feed of group events for a member.
func (s *groupService) Subscribe(ctx context.Context, groupID, userID int64) (*realtime.Subscription, error) {
	if _, err := s.requireMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.hub.Subscribe(GroupTopic(groupID)), nil
}

func (s *groupService) requireMembership(ctx context.Context, groupID, userID int64) (*models.StudyGroup, error) {
	group, err := s.groupRepo.Get(ctx, groupID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if group == nil {
		return nil, errors.NewNotFoundError("study group", groupID)
	}
	member, err := s.groupRepo.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if !member {
		return nil, errors.NewForbiddenError("not a member of this group")
	}
	return group, nil
}
