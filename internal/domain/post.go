package domain

import "time"

// Post is a piece of creator content.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	MediaURL  *string   `json:"media_url"`
	MediaType *string   `json:"media_type"`
	IsPremium bool      `json:"is_premium"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) OwnerID() string { return p.UserID }
