package domain

import "time"

// User is a platform account. Creators are users with IsCreator set.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Username     *string   `json:"username"`
	Avatar       *string   `json:"avatar"`
	Bio          *string   `json:"bio"`
	IsCreator    bool      `json:"is_creator"`
	PasswordHash *string   `json:"-"`
	GitHubID     *int64    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OwnerID returns the account id; a profile is owned by itself.
func (u *User) OwnerID() string { return u.ID }

// UserPatch carries the optional profile fields of an update.
type UserPatch struct {
	Name      *string
	Avatar    *string
	Bio       *string
	IsCreator *bool
}
