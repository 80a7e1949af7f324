package model

import (
	"time"
)

type User struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"` // Not exposed
	CreatedAt      time.Time  `json:"created_at"`
	LastLogin      *time.Time `json:"last_login"`
}

// UserSummary is the /users listing projection: profile fields plus the
// number of posts the user has written.
type UserSummary struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
	PostCount int        `json:"post_count"`
}

// UserProfile is the /users/{id} view: the user joined with post aggregates.
type UserProfile struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
	TotalPosts   int        `json:"total_posts"`
	LastPostDate *time.Time `json:"last_post_date"`
}

// UserStats aggregates a user's posting activity. Date fields are nil and
// AvgContentLength is zero when the user has no posts.
type UserStats struct {
	UserID           string     `json:"user_id"`
	TotalPosts       int        `json:"total_posts"`
	PostsThisWeek    int        `json:"posts_this_week"`
	PostsThisMonth   int        `json:"posts_this_month"`
	LastPostDate     *time.Time `json:"last_post_date"`
	FirstPostDate    *time.Time `json:"first_post_date"`
	AvgContentLength int        `json:"avg_content_length"`
}
