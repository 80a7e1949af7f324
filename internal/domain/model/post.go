package model

import (
	"time"
)

type Post struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"` // Owner, immutable after creation
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"` // Nil until first edit
	Author    string     `json:"author,omitempty"`
}
