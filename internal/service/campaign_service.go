package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/funify/funify-api/internal/auth"
	"github.com/funify/funify-api/internal/domain"
	"github.com/funify/funify-api/internal/events"
	"github.com/funify/funify-api/internal/repository"
	apperrors "github.com/funify/funify-api/pkg/util"
)

const maxSlugAttempts = 5

// CampaignCreateInput starts a campaign. Story defaults to Description and
// Category to OTHER.
type CampaignCreateInput struct {
	Title       string
	Description string
	Story       *string
	GoalAmount  float64
	CoverImage  *string
	VideoURL    *string
	Category    *string
	EndDate     *time.Time
}

// CampaignUpdateInput changes only the fields that are set. The slug is
// fixed at creation.
type CampaignUpdateInput struct {
	Title       *string
	Description *string
	Story       *string
	GoalAmount  *float64
	Status      *domain.CampaignStatus
	CoverImage  *string
	VideoURL    *string
	Category    *string
	EndDate     *time.Time
}

// CampaignService coordinates crowdfunding campaigns.
type CampaignService struct {
	campaigns repository.CampaignRepository
	events    publisher
}

// NewCampaignService builds the service.
func NewCampaignService(campaigns repository.CampaignRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CampaignService {
	return &CampaignService{campaigns: campaigns, events: newPublisher(dispatcher, logger)}
}

// List pages through campaigns, newest first.
func (s *CampaignService) List(ctx context.Context, page domain.Page) (*PageResult[domain.Campaign], error) {
	campaigns, total, err := s.campaigns.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return newPageResult(campaigns, total, page), nil
}

// ListByCreator returns every campaign of one creator.
func (s *CampaignService) ListByCreator(ctx context.Context, creatorID string) ([]domain.Campaign, error) {
	campaigns, err := s.campaigns.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	return campaigns, nil
}

// GetBySlug returns a campaign with its creator summary.
func (s *CampaignService) GetBySlug(ctx context.Context, slug string) (*domain.CampaignDetail, error) {
	detail, err := s.campaigns.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err, "campaign")
	}
	return detail, nil
}

// Create starts a DRAFT campaign owned by the caller.
func (s *CampaignService) Create(ctx context.Context, callerID string, in CampaignCreateInput) (*domain.Campaign, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	switch {
	case title == "":
		return nil, apperrors.NewValidationError("title is required", nil)
	case description == "":
		return nil, apperrors.NewValidationError("description is required", nil)
	case in.GoalAmount <= 0:
		return nil, apperrors.NewValidationError("goal_amount must be positive", nil)
	}

	story := in.Story
	if story == nil || strings.TrimSpace(*story) == "" {
		story = &description
	}
	category := domain.DefaultCampaignCategory
	if in.Category != nil && strings.TrimSpace(*in.Category) != "" {
		category = strings.ToUpper(strings.TrimSpace(*in.Category))
	}

	campaign := &domain.Campaign{
		Title:       title,
		Description: description,
		Story:       story,
		GoalAmount:  in.GoalAmount,
		Status:      domain.CampaignStatusDraft,
		CreatorID:   callerID,
		CoverImage:  in.CoverImage,
		VideoURL:    in.VideoURL,
		Category:    category,
		EndDate:     in.EndDate,
	}

	if err := s.insertWithSlug(ctx, campaign); err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:       events.EventCampaignCreated,
		ActorID:    callerID,
		ResourceID: campaign.ID,
		Payload: events.CampaignCreatedPayload{
			Title:      campaign.Title,
			Slug:       campaign.Slug,
			GoalAmount: campaign.GoalAmount,
		},
	})
	return campaign, nil
}

// insertWithSlug derives the slug from the title and suffixes it until the
// insert no longer collides. The unique index decides races between callers.
func (s *CampaignService) insertWithSlug(ctx context.Context, campaign *domain.Campaign) error {
	base := Slugify(campaign.Title)
	slug := base
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		if slug == "" || attempt > 0 {
			slug = withSuffix(base)
		} else if taken, err := s.campaigns.SlugExists(ctx, slug); err != nil {
			return err
		} else if taken {
			slug = withSuffix(base)
		}

		campaign.Slug = slug
		err := s.campaigns.Create(ctx, campaign)
		if err == nil {
			return nil
		}
		if !repository.IsDuplicate(err) {
			return err
		}
	}
	return apperrors.NewValidationError("could not derive a unique slug from title", nil)
}

// Update changes a campaign the caller owns.
func (s *CampaignService) Update(ctx context.Context, callerID, id string, in CampaignUpdateInput) (*domain.Campaign, error) {
	campaign, err := auth.RequireOwner(ctx, "campaign", callerID, func(ctx context.Context) (*domain.Campaign, error) {
		return s.campaigns.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if err := in.apply(campaign); err != nil {
		return nil, err
	}
	if err := s.campaigns.Update(ctx, campaign); err != nil {
		return nil, notFound(err, "campaign")
	}
	return campaign, nil
}

// Delete removes a campaign the caller owns.
func (s *CampaignService) Delete(ctx context.Context, callerID, id string) error {
	if _, err := auth.RequireOwner(ctx, "campaign", callerID, func(ctx context.Context) (*domain.Campaign, error) {
		return s.campaigns.GetByID(ctx, id)
	}); err != nil {
		return err
	}
	return notFound(s.campaigns.Delete(ctx, id, callerID), "campaign")
}

func (in CampaignUpdateInput) apply(c *domain.Campaign) error {
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return apperrors.NewValidationError("title must not be empty", nil)
		}
		c.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return apperrors.NewValidationError("description must not be empty", nil)
		}
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.GoalAmount != nil {
		if *in.GoalAmount <= 0 {
			return apperrors.NewValidationError("goal_amount must be positive", nil)
		}
		c.GoalAmount = *in.GoalAmount
	}
	if in.Status != nil {
		if !validCampaignStatus(*in.Status) {
			return apperrors.NewValidationError("unknown campaign status", map[string]any{"status": *in.Status})
		}
		c.Status = *in.Status
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) != "" {
		c.Category = strings.ToUpper(strings.TrimSpace(*in.Category))
	}
	if in.Story != nil {
		c.Story = in.Story
	}
	if in.CoverImage != nil {
		c.CoverImage = in.CoverImage
	}
	if in.VideoURL != nil {
		c.VideoURL = in.VideoURL
	}
	if in.EndDate != nil {
		c.EndDate = in.EndDate
	}
	return nil
}

func validCampaignStatus(status domain.CampaignStatus) bool {
	switch status {
	case domain.CampaignStatusDraft, domain.CampaignStatusActive, domain.CampaignStatusCompleted, domain.CampaignStatusCancelled:
		return true
	}
	return false
}

// Slugify lowercases title, turns spaces into hyphens and drops every rune
// that is neither a letter, a digit nor a hyphen.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r == ' ':
			b.WriteRune('-')
		case r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

func withSuffix(base string) string {
	suffix := uuid.NewString()[:8]
	if base == "" {
		return "campaign-" + suffix
	}
	return base + "-" + suffix
}
