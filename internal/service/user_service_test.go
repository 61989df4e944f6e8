package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funify/funify-api/internal/domain"
	"github.com/funify/funify-api/internal/events"
	"github.com/funify/funify-api/internal/repository/repotest"
)

func seedUser(t *testing.T, users *repotest.Users, email, username string, creator bool) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, Name: username, Username: &username, IsCreator: creator}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestUserService_UpdateProfileOwnership(t *testing.T) {
	ctx := context.Background()
	users := repotest.NewUsers()
	alice := seedUser(t, users, "a@x.io", "alice", false)
	bob := seedUser(t, users, "b@x.io", "bob", false)
	svc := NewUserService(users, nil, nil)

	updated, err := svc.UpdateProfile(ctx, alice.ID, alice.ID, domain.UserPatch{Bio: strPtr("hi"), Name: strPtr("  Alice  ")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "hi", *updated.Bio)

	_, err = svc.UpdateProfile(ctx, alice.ID, bob.ID, domain.UserPatch{Bio: strPtr("pwned")})
	requireStatus(t, err, statusForbidden)
	untouched, _ := users.GetByID(ctx, bob.ID)
	assert.Nil(t, untouched.Bio)

	_, err = svc.UpdateProfile(ctx, alice.ID, "missing", domain.UserPatch{})
	requireStatus(t, err, statusNotFound)

	_, err = svc.UpdateProfile(ctx, alice.ID, alice.ID, domain.UserPatch{Name: strPtr("   ")})
	requireStatus(t, err, statusBadRequest)
}

func TestUserService_BecomeCreator(t *testing.T) {
	ctx := context.Background()
	users := repotest.NewUsers()
	alice := seedUser(t, users, "a@x.io", "alice", false)
	dispatcher, rec := recordingDispatcher(events.EventCreatorJoined)
	svc := NewUserService(users, dispatcher, nil)

	user, err := svc.BecomeCreator(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, user.IsCreator)

	_, err = svc.BecomeCreator(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []events.EventType{events.EventCreatorJoined}, rec.types(), "only the first promotion is announced")

	users.Delete(alice.ID)
	_, err = svc.BecomeCreator(ctx, alice.ID)
	requireStatus(t, err, statusNotFound)
}

func TestUserService_Creators(t *testing.T) {
	ctx := context.Background()
	users := repotest.NewUsers()
	seedUser(t, users, "a@x.io", "alice", true)
	seedUser(t, users, "b@x.io", "bob", false)
	seedUser(t, users, "c@x.io", "carol", true)
	svc := NewUserService(users, nil, nil)

	page, err := svc.ListCreators(ctx, domain.Page{Number: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "carol", *page.Items[0].Username)

	creator, err := svc.GetCreator(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", creator.Email)

	_, err = svc.GetCreator(ctx, "bob")
	requireStatus(t, err, statusNotFound)
}
