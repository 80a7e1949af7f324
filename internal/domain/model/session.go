package model

import (
	"time"
)

// Session is the server-side record behind an issued token. The token's sid
// claim must resolve to a live session for the token to be accepted; logout
// deletes the record, revoking the token before its expiry.
type Session struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name"`
	IssuedAt time.Time `json:"issued_at"`
}
