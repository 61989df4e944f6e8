package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funify/funify-api/internal/domain"
	"github.com/funify/funify-api/internal/repository"
	"github.com/funify/funify-api/internal/repository/repotest"
)

func newContentService() (*ContentService, *repotest.Content) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &repotest.Content{
		Now: func() time.Time { return now },
		Events: []domain.Event{
			{ID: "past", HostID: "alice", StartTime: now.Add(-48 * time.Hour)},
			{ID: "soon", HostID: "alice", StartTime: now.Add(time.Hour)},
			{ID: "later", HostID: "bob", StartTime: now.Add(72 * time.Hour)},
		},
		Articles: []domain.Article{
			{ID: "a1", Slug: "hello", AuthorID: "alice", CreatedAt: now.Add(-time.Hour)},
			{ID: "a2", Slug: "again", AuthorID: "bob", CreatedAt: now},
		},
		Podcasts: []domain.Podcast{
			{ID: "p1", CreatorID: "alice", CreatedAt: now},
		},
	}
	return NewContentService(ContentDependencies{
		EventRepo:   store.EventRepo(),
		ArticleRepo: store.ArticleRepo(),
		PodcastRepo: store.PodcastRepo(),
	}), store
}

func TestContentService_Events(t *testing.T) {
	ctx := context.Background()
	svc, _ := newContentService()
	page := domain.Page{Number: 1, Limit: 12}

	all, err := svc.ListEvents(ctx, repository.EventFilter{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)

	upcoming, err := svc.ListEvents(ctx, repository.EventFilter{Upcoming: true}, page)
	require.NoError(t, err)
	require.Len(t, upcoming.Items, 2)
	assert.Equal(t, "soon", upcoming.Items[0].ID)

	hosted, err := svc.ListEvents(ctx, repository.EventFilter{Upcoming: true, HostID: strPtr("alice")}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hosted.Total)

	_, err = svc.GetEvent(ctx, "soon")
	require.NoError(t, err)
	_, err = svc.GetEvent(ctx, "nope")
	requireStatus(t, err, statusNotFound)
}

func TestContentService_ArticlesAndPodcasts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newContentService()
	page := domain.Page{Number: 1, Limit: 20}

	articles, err := svc.ListArticles(ctx, nil, page)
	require.NoError(t, err)
	require.Len(t, articles.Items, 2)
	assert.Equal(t, "again", articles.Items[0].Slug)

	byAlice, err := svc.ListArticles(ctx, strPtr("alice"), page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), byAlice.Total)

	a, err := svc.GetArticle(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
	_, err = svc.GetArticle(ctx, "missing")
	requireStatus(t, err, statusNotFound)

	podcasts, err := svc.ListPodcasts(ctx, strPtr("bob"), page)
	require.NoError(t, err)
	assert.NotNil(t, podcasts.Items)
	assert.Empty(t, podcasts.Items)
}
