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

// PostInput is the writable part of a post. Updates replace every field.
type PostInput struct {
	Title     string
	Content   *string
	MediaURL  *string
	MediaType *string
	IsPremium bool
}

// PostService coordinates post workflows.
type PostService struct {
	posts  repository.PostRepository
	events publisher
}

// NewPostService builds the service.
func NewPostService(posts repository.PostRepository, dispatcher events.Dispatcher, logger *zap.Logger) *PostService {
	return &PostService{posts: posts, events: newPublisher(dispatcher, logger)}
}

// List pages through posts, optionally for one author.
func (s *PostService) List(ctx context.Context, userID *string, page domain.Page) (*PageResult[domain.Post], error) {
	posts, total, err := s.posts.List(ctx, repository.PostFilter{UserID: userID}, page)
	if err != nil {
		return nil, err
	}
	return newPageResult(posts, total, page), nil
}

// Get returns one post.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "post")
	}
	return post, nil
}

// Create stores a post owned by the caller.
func (s *PostService) Create(ctx context.Context, callerID string, in PostInput) (*domain.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	post := in.apply(&domain.Post{UserID: callerID})
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:       events.EventPostPublished,
		ActorID:    callerID,
		ResourceID: post.ID,
		Payload:    events.PostPublishedPayload{Title: post.Title, IsPremium: post.IsPremium},
	})
	return post, nil
}

// Update replaces a post the caller owns.
func (s *PostService) Update(ctx context.Context, callerID, id string, in PostInput) (*domain.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	post, err := auth.RequireOwner(ctx, "post", callerID, func(ctx context.Context) (*domain.Post, error) {
		return s.posts.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	post = in.apply(post)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, notFound(err, "post")
	}
	return post, nil
}

// Delete removes a post the caller owns.
func (s *PostService) Delete(ctx context.Context, callerID, id string) error {
	if _, err := auth.RequireOwner(ctx, "post", callerID, func(ctx context.Context) (*domain.Post, error) {
		return s.posts.GetByID(ctx, id)
	}); err != nil {
		return err
	}
	return notFound(s.posts.Delete(ctx, id, callerID), "post")
}

func (in PostInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return apperrors.NewValidationError("title is required", nil)
	}
	return nil
}

func (in PostInput) apply(post *domain.Post) *domain.Post {
	post.Title = strings.TrimSpace(in.Title)
	post.Content = in.Content
	post.MediaURL = in.MediaURL
	post.MediaType = in.MediaType
	post.IsPremium = in.IsPremium
	return post
}
