package models

import "time"

// User is the auth provider's user record. This service only reads it and
// patches the display name; account lifecycle lives with the auth provider.
type User struct {
	ID        string    `json:"id"`
	Name      *string   `json:"name"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Poem represents a published poem. Poems are immutable after creation;
// author_name and username are snapshots taken at creation time and are
// never resynced with later profile changes.
type Poem struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   *string   `json:"author_id,omitempty"`
	AuthorName string    `json:"author_name"`
	Username   string    `json:"username"`
	IsPublic   bool      `json:"is_public"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserProfile is the one-per-user profile extension. Created lazily on the
// first profile edit.
type UserProfile struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Bio            string    `json:"bio"`
	Instagram      string    `json:"instagram"`
	Twitter        string    `json:"twitter"`
	ProfilePicture *string   `json:"profile_picture"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProfileView is the merged User + UserProfile read model returned by the
// profile query. Profile fields default to empty string / null when the
// user has no profile row yet.
type ProfileView struct {
	ID             string  `json:"id"`
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Bio            string  `json:"bio"`
	Instagram      string  `json:"instagram"`
	Twitter        string  `json:"twitter"`
	ProfilePicture *string `json:"profile_picture"`
}
