package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPostPublished   EventType = "post_published"
	EventProductCreated  EventType = "product_created"
	EventCampaignCreated EventType = "campaign_created"
	EventCreatorJoined   EventType = "creator_joined"
)

// PlatformEvents lists every event the services publish.
var PlatformEvents = []EventType{
	EventPostPublished,
	EventProductCreated,
	EventCampaignCreated,
	EventCreatorJoined,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ActorID    string      `json:"actor_id"`
	ResourceID string      `json:"resource_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// PostPublishedPayload payload.
type PostPublishedPayload struct {
	Title     string `json:"title"`
	IsPremium bool   `json:"is_premium"`
}

// ProductCreatedPayload payload.
type ProductCreatedPayload struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// CampaignCreatedPayload payload.
type CampaignCreatedPayload struct {
	Title      string  `json:"title"`
	Slug       string  `json:"slug"`
	GoalAmount float64 `json:"goal_amount"`
}

// CreatorJoinedPayload payload.
type CreatorJoinedPayload struct {
	Username *string `json:"username,omitempty"`
	Name     string  `json:"name"`
}
