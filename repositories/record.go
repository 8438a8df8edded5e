package repositories

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/pavelsokolov/yazen-chat-app/domain"
	"github.com/pavelsokolov/yazen-chat-app/errors"
)

// storedMessage is the JSON document persisted for each message.
// Timestamps serialize as RFC 3339 so the read side can treat them as
// plain strings.
type storedMessage struct {
	Text       string     `json:"text"`
	SenderID   string     `json:"senderId"`
	SenderName string     `json:"senderName"`
	CreatedAt  *time.Time `json:"createdAt"`
	EditedAt   *time.Time `json:"editedAt"`
}

// MapRecord converts one raw stored record into a domain Message.
//
// The read side is deliberately forgiving: malformed or missing fields
// fall back to safe defaults ("" for text, "Unknown" for the sender
// name, nil for timestamps the store has not committed). The only way
// to fail is a key without an extractable identity.
func MapRecord(key string, value []byte) (domain.Message, error) {
	id, err := idFromKey(key)
	if err != nil {
		return domain.Message{}, err
	}

	var doc map[string]any
	// A value that is not valid JSON leaves doc nil and every field at
	// its default, which is exactly the contract.
	_ = json.Unmarshal(value, &doc)

	message := domain.Message{ID: id, SenderName: "Unknown"}
	if text, ok := doc["text"].(string); ok {
		message.Text = text
	}
	if senderID, ok := doc["senderId"].(string); ok {
		message.SenderID = senderID
	}
	if senderName, ok := doc["senderName"].(string); ok {
		message.SenderName = senderName
	}
	message.CreatedAt = timeField(doc, "createdAt")
	message.EditedAt = timeField(doc, "editedAt")
	return message, nil
}

// idFromKey extracts the message id from a primary key shaped as
// "msg:{timestamp_padded}:{uuid}".
func idFromKey(key string) (string, error) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 || parts[2] == "" {
		return "", fmt.Errorf("%w: %q", errors.ErrNoIdentity, key)
	}
	return parts[2], nil
}

func timeField(doc map[string]any, field string) *time.Time {
	raw, ok := doc[field].(string)
	if !ok {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil
	}
	return lo.ToPtr(t.UTC())
}
