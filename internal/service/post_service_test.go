package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funify/funify-api/internal/domain"
	"github.com/funify/funify-api/internal/events"
	"github.com/funify/funify-api/internal/repository/repotest"
)

func TestPostService_CRUDWithOwnership(t *testing.T) {
	ctx := context.Background()
	posts := repotest.NewPosts()
	dispatcher, rec := recordingDispatcher(events.EventPostPublished)
	svc := NewPostService(posts, dispatcher, nil)

	post, err := svc.Create(ctx, "alice", PostInput{Title: "Hello", Content: strPtr("body")})
	require.NoError(t, err)
	assert.Equal(t, "alice", post.UserID)
	assert.Equal(t, []events.EventType{events.EventPostPublished}, rec.types())

	t.Run("non-owner update is forbidden and leaves the row", func(t *testing.T) {
		_, err := svc.Update(ctx, "mallory", post.ID, PostInput{Title: "Defaced"})
		requireStatus(t, err, statusForbidden)
		got, _ := svc.Get(ctx, post.ID)
		assert.Equal(t, "Hello", got.Title)
	})

	t.Run("non-owner delete is forbidden", func(t *testing.T) {
		requireStatus(t, svc.Delete(ctx, "mallory", post.ID), statusForbidden)
	})

	t.Run("owner update replaces fields", func(t *testing.T) {
		got, err := svc.Update(ctx, "alice", post.ID, PostInput{Title: "Edited", IsPremium: true})
		require.NoError(t, err)
		assert.Equal(t, "Edited", got.Title)
		assert.Nil(t, got.Content)
		assert.True(t, got.IsPremium)
	})

	t.Run("owner delete then missing", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "alice", post.ID))
		_, err := svc.Get(ctx, post.ID)
		requireStatus(t, err, statusNotFound)
		requireStatus(t, svc.Delete(ctx, "alice", post.ID), statusNotFound)
		_, err = svc.Update(ctx, "alice", post.ID, PostInput{Title: "x"})
		requireStatus(t, err, statusNotFound)
	})
}

func TestPostService_CreateValidation(t *testing.T) {
	svc := NewPostService(repotest.NewPosts(), nil, nil)
	_, err := svc.Create(context.Background(), "alice", PostInput{Title: "  "})
	requireStatus(t, err, statusBadRequest)
}

func TestPostService_ListFiltersAndCounts(t *testing.T) {
	ctx := context.Background()
	svc := NewPostService(repotest.NewPosts(), nil, nil)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, "alice", PostInput{Title: "a"})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "bob", PostInput{Title: "b"})
	require.NoError(t, err)

	all, err := svc.List(ctx, nil, domain.Page{Number: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, int64(4), all.Total)

	mine, err := svc.List(ctx, strPtr("alice"), domain.Page{Number: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, mine.Items, 1)
	assert.Equal(t, int64(3), mine.Total)
}

func TestPostService_EventFailureDoesNotFailCreate(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	d.Subscribe(events.EventPostPublished, func(context.Context, events.Event) error { return errors.New("down") })
	svc := NewPostService(repotest.NewPosts(), d, nil)

	_, err := svc.Create(context.Background(), "alice", PostInput{Title: "ok"})
	assert.NoError(t, err)
}
