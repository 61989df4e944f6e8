package domain

import "time"

// Event is a scheduled creator event.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    *string   `json:"location"`
	Price       *float64  `json:"price"`
	HostID      string    `json:"host_id"`
	HostName    *string   `json:"host_name"`
	HostAvatar  *string   `json:"host_avatar"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Article is a long-form blog entry.
type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     *string    `json:"content"`
	Slug        string     `json:"slug"`
	AuthorID    string     `json:"author_id"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Podcast is a creator's show.
type Podcast struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	CreatorID     string    `json:"creator_id"`
	EpisodeCount  int32     `json:"episode_count"`
	TotalDuration *int32    `json:"total_duration"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
