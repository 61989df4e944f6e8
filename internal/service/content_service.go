package service

import (
	"context"

	"github.com/funify/funify-api/internal/domain"
	"github.com/funify/funify-api/internal/repository"
)

// ContentService serves the read-only catalogues: events, articles, podcasts.
type ContentService struct {
	events   repository.EventRepository
	articles repository.ArticleRepository
	podcasts repository.PodcastRepository
}

// ContentDependencies bundles repositories for content service.
type ContentDependencies struct {
	EventRepo   repository.EventRepository
	ArticleRepo repository.ArticleRepository
	PodcastRepo repository.PodcastRepository
}

// NewContentService builds the service.
func NewContentService(deps ContentDependencies) *ContentService {
	return &ContentService{
		events:   deps.EventRepo,
		articles: deps.ArticleRepo,
		podcasts: deps.PodcastRepo,
	}
}

func (s *ContentService) ListEvents(ctx context.Context, filter repository.EventFilter, page domain.Page) (*PageResult[domain.Event], error) {
	items, total, err := s.events.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return newPageResult(items, total, page), nil
}

func (s *ContentService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "event")
	}
	return event, nil
}

func (s *ContentService) ListArticles(ctx context.Context, authorID *string, page domain.Page) (*PageResult[domain.Article], error) {
	items, total, err := s.articles.List(ctx, authorID, page)
	if err != nil {
		return nil, err
	}
	return newPageResult(items, total, page), nil
}

func (s *ContentService) GetArticle(ctx context.Context, slug string) (*domain.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err, "article")
	}
	return article, nil
}

func (s *ContentService) ListPodcasts(ctx context.Context, creatorID *string, page domain.Page) (*PageResult[domain.Podcast], error) {
	items, total, err := s.podcasts.List(ctx, creatorID, page)
	if err != nil {
		return nil, err
	}
	return newPageResult(items, total, page), nil
}
