package domain

import "time"

// CampaignStatus enumerates campaign lifecycle states.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "DRAFT"
	CampaignStatusActive    CampaignStatus = "ACTIVE"
	CampaignStatusCompleted CampaignStatus = "COMPLETED"
	CampaignStatusCancelled CampaignStatus = "CANCELLED"
)

// DefaultCampaignCategory applies when none is supplied.
const DefaultCampaignCategory = "OTHER"

// Campaign is a crowdfunding goal run by a creator.
type Campaign struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Story         *string        `json:"story"`
	GoalAmount    float64        `json:"goal_amount"`
	CurrentAmount float64        `json:"current_amount"`
	Status        CampaignStatus `json:"status"`
	Slug          string         `json:"slug"`
	CreatorID     string         `json:"creator_id"`
	CoverImage    *string        `json:"cover_image"`
	VideoURL      *string        `json:"video_url"`
	Category      string         `json:"category"`
	EndDate       *time.Time     `json:"end_date"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (c *Campaign) OwnerID() string { return c.CreatorID }

// CampaignCreator is the public profile shown next to a campaign.
type CampaignCreator struct {
	ID       string  `json:"id"`
	Username *string `json:"username"`
	Name     string  `json:"name"`
	Avatar   *string `json:"avatar"`
	Bio      *string `json:"bio"`
}

// CampaignDetail is a campaign joined with its creator.
type CampaignDetail struct {
	Campaign
	Creator *CampaignCreator `json:"creator"`
}
