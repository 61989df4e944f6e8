package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/funify/funify-api/internal/auth"
	"github.com/funify/funify-api/internal/domain"
	"github.com/funify/funify-api/internal/events"
	"github.com/funify/funify-api/internal/repository"
	apperrors "github.com/funify/funify-api/pkg/util"
)

// UserService manages profiles and the creator directory.
type UserService struct {
	users  repository.UserRepository
	events publisher
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	return &UserService{users: users, events: newPublisher(dispatcher, logger)}
}

// Get returns any account by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

// UpdateProfile applies patch to targetID, which must be the caller's own account.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, targetID string, patch domain.UserPatch) (*domain.User, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name must not be empty", nil)
		}
		patch.Name = &name
	}

	before, err := auth.RequireOwner(ctx, "user", callerID, func(ctx context.Context) (*domain.User, error) {
		return s.users.GetByID(ctx, targetID)
	})
	if err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, targetID, patch)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if !before.IsCreator && user.IsCreator {
		s.creatorJoined(ctx, user)
	}
	return user, nil
}

// BecomeCreator flags the caller's account as a creator.
func (s *UserService) BecomeCreator(ctx context.Context, callerID string) (*domain.User, error) {
	before, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	user, err := s.users.SetCreator(ctx, callerID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if !before.IsCreator {
		s.creatorJoined(ctx, user)
	}
	return user, nil
}

// ListCreators pages through creator accounts, newest first.
func (s *UserService) ListCreators(ctx context.Context, page domain.Page) (*PageResult[domain.User], error) {
	creators, total, err := s.users.ListCreators(ctx, page)
	if err != nil {
		return nil, err
	}
	return newPageResult(creators, total, page), nil
}

// GetCreator finds a creator by username. Non-creator accounts are not found.
func (s *UserService) GetCreator(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetCreatorByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "creator")
	}
	return user, nil
}

func (s *UserService) creatorJoined(ctx context.Context, user *domain.User) {
	s.events.publish(ctx, events.Event{
		Type:       events.EventCreatorJoined,
		ActorID:    user.ID,
		ResourceID: user.ID,
		Payload:    events.CreatorJoinedPayload{Username: user.Username, Name: user.Name},
	})
}
