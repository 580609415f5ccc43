package services

import (
	"context"

	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
)

// UserService handles the authenticated user's own account
type UserService interface {
	Get(ctx context.Context, userID int64) (*models.User, error)
	SetPremium(ctx context.Context, userID int64, premium bool) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Get(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}
	return user, nil
}

// SetPremium flips the premium flag. Billing lives elsewhere; this records
// the entitlement after the store purchase clears.
func (s *userService) SetPremium(ctx context.Context, userID int64, premium bool) (*models.User, error) {
	log := logger.FromContext(ctx)

	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.userRepo.SetPremium(ctx, userID, premium); err != nil {
		log.Error("failed to set premium flag: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("premium flag updated: user_id=%d premium=%v", userID, premium)
	return s.Get(ctx, userID)
}
