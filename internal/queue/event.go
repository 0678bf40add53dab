// Package queue defines message payloads exchanged over the message
// broker, the publisher that emits them and the background consumer
// that drains them.
package queue

// NotificationCreatedEvent is published when a notification row is
// written. It carries enough for downstream consumers to log or fan out
// to other channels without querying the primary database.
type NotificationCreatedEvent struct {
	NotificationID uint64 `json:"notification_id"`
	UserID         uint64 `json:"user_id"`
	Type           string `json:"type"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Link           string `json:"link"`
	CreatedAt      string `json:"created_at"`
}
