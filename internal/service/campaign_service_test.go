package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funify/funify-api/internal/domain"
	"github.com/funify/funify-api/internal/events"
	"github.com/funify/funify-api/internal/repository/repotest"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Save the Whales":         "save-the-whales",
		"  Trim me  ":             "trim-me",
		`Bob's "Big" Album!`:      "bobs-big-album",
		"Already-hyphenated 2026": "already-hyphenated-2026",
		"Café Crème":              "café-crème",
		"!!!":                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestCampaignService_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	dispatcher, rec := recordingDispatcher(events.EventCampaignCreated)
	svc := NewCampaignService(repotest.NewCampaigns(nil), dispatcher, nil)

	c, err := svc.Create(ctx, "alice", CampaignCreateInput{Title: "Save the Whales", Description: "Help", GoalAmount: 500})
	require.NoError(t, err)
	assert.Equal(t, "save-the-whales", c.Slug)
	assert.Equal(t, domain.CampaignStatusDraft, c.Status)
	assert.Equal(t, domain.DefaultCampaignCategory, c.Category)
	require.NotNil(t, c.Story)
	assert.Equal(t, "Help", *c.Story)
	assert.Equal(t, "alice", c.CreatorID)
	assert.Equal(t, []events.EventType{events.EventCampaignCreated}, rec.types())
}

func TestCampaignService_SlugsAreUnique(t *testing.T) {
	ctx := context.Background()
	svc := NewCampaignService(repotest.NewCampaigns(nil), nil, nil)

	first, err := svc.Create(ctx, "alice", CampaignCreateInput{Title: "Tour", Description: "d", GoalAmount: 1})
	require.NoError(t, err)
	second, err := svc.Create(ctx, "bob", CampaignCreateInput{Title: "Tour", Description: "d", GoalAmount: 1})
	require.NoError(t, err)
	symbols, err := svc.Create(ctx, "bob", CampaignCreateInput{Title: "???", Description: "d", GoalAmount: 1})
	require.NoError(t, err)

	assert.Equal(t, "tour", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "tour-"))
	assert.True(t, strings.HasPrefix(symbols.Slug, "campaign-"))
}

func TestCampaignService_CreateValidation(t *testing.T) {
	svc := NewCampaignService(repotest.NewCampaigns(nil), nil, nil)
	for _, in := range []CampaignCreateInput{
		{Description: "d", GoalAmount: 1},
		{Title: "t", GoalAmount: 1},
		{Title: "t", Description: "d"},
		{Title: "t", Description: "d", GoalAmount: -5},
	} {
		_, err := svc.Create(context.Background(), "alice", in)
		requireStatus(t, err, statusBadRequest)
	}
}

func TestCampaignService_UpdateDeleteOwnership(t *testing.T) {
	ctx := context.Background()
	svc := NewCampaignService(repotest.NewCampaigns(nil), nil, nil)
	c, err := svc.Create(ctx, "alice", CampaignCreateInput{Title: "Album", Description: "d", GoalAmount: 100})
	require.NoError(t, err)

	active := domain.CampaignStatusActive
	_, err = svc.Update(ctx, "bob", c.ID, CampaignUpdateInput{Status: &active})
	requireStatus(t, err, statusForbidden)

	bogus := domain.CampaignStatus("PAUSED")
	_, err = svc.Update(ctx, "alice", c.ID, CampaignUpdateInput{Status: &bogus})
	requireStatus(t, err, statusBadRequest)

	goal := 250.0
	updated, err := svc.Update(ctx, "alice", c.ID, CampaignUpdateInput{Status: &active, GoalAmount: &goal, Title: strPtr("Album II")})
	require.NoError(t, err)
	assert.Equal(t, active, updated.Status)
	assert.Equal(t, 250.0, updated.GoalAmount)
	assert.Equal(t, "album", updated.Slug, "slug stays fixed")

	_, err = svc.Update(ctx, "alice", "missing", CampaignUpdateInput{})
	requireStatus(t, err, statusNotFound)

	requireStatus(t, svc.Delete(ctx, "bob", c.ID), statusForbidden)
	require.NoError(t, svc.Delete(ctx, "alice", c.ID))
	requireStatus(t, svc.Delete(ctx, "alice", c.ID), statusNotFound)
}

func TestCampaignService_GetBySlugIncludesCreator(t *testing.T) {
	ctx := context.Background()
	users := repotest.NewUsers()
	alice := seedUser(t, users, "a@x.io", "alice", true)
	svc := NewCampaignService(repotest.NewCampaigns(users), nil, nil)

	_, err := svc.Create(ctx, alice.ID, CampaignCreateInput{Title: "Film", Description: "d", GoalAmount: 1})
	require.NoError(t, err)

	detail, err := svc.GetBySlug(ctx, "film")
	require.NoError(t, err)
	require.NotNil(t, detail.Creator)
	assert.Equal(t, "alice", *detail.Creator.Username)

	_, err = svc.GetBySlug(ctx, "nope")
	requireStatus(t, err, statusNotFound)

	mine, err := svc.ListByCreator(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	none, err := svc.ListByCreator(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCampaignService_ListPaginationTotals(t *testing.T) {
	ctx := context.Background()
	svc := NewCampaignService(repotest.NewCampaigns(nil), nil, nil)
	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, "alice", CampaignCreateInput{Title: "c", Description: "d", GoalAmount: 1})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, domain.Page{Number: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.Total)

	past, err := svc.List(ctx, domain.Page{Number: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, past.Items)
	assert.Equal(t, int64(5), past.Total)
}
