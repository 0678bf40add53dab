package model

import "time"

// Notification types stored in notifications.type.
const (
	NotificationAnswer = "answer" // someone answered your question
	NotificationAccept = "accept" // your answer was accepted
)

// Notification mirrors the `notifications` table. Rows are append-only
// from the engines' perspective; only the read endpoints flip IsRead.
type Notification struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"` // receiver
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
