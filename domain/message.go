// Package domain contains core concepts of the chat client.
// This file defines the Message entity and the room-wide limits.
// Messages are validated before they reach the store.
package domain

import "time"

const (
	// DefaultPageSize is the size of the live window and of each
	// paginated history fetch.
	DefaultPageSize = 25
	// DefaultMaxMessageLength bounds the trimmed message text.
	DefaultMaxMessageLength = 500
)

// Message represents one chat message as seen by the client.
type Message struct {
	ID         string // unique across the whole store, sole dedup key
	Text       string
	SenderID   string
	SenderName string     // snapshot taken at creation time
	CreatedAt  *time.Time // nil until the store has committed the record
	EditedAt   *time.Time // nil unless edited at least once
}
