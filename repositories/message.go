// Package repositories persists chat data in BadgerDB and maps raw
// records to domain types. It plays the role of the managed document
// store: it assigns identity and timestamps, orders records by
// creation time, and answers cursor-bounded page queries.
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/pavelsokolov/yazen-chat-app/domain"
	"github.com/pavelsokolov/yazen-chat-app/errors"
)

const (
	// MessagePrefix is the keyspace holding message documents. Change
	// subscriptions match on it.
	MessagePrefix = "msg:"
	indexPrefix   = "id:"

	// maxTimestamp seeks past every possible message key.
	maxTimestamp = "9999999999999999999"
)

type IMessageRepository interface {
	CreateMessage(text, senderID, senderName string) (domain.Message, error)
	EditMessage(id, text string) error
	DeleteMessage(id string) error
	NewestPage(limit int) ([]domain.Message, *string, error)
	OlderPage(cursor string, limit int) (domain.Page, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
	now func() time.Time
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) *MessageRepository {
	return &MessageRepository{db: db, log: log, now: time.Now}
}

// messageKey is formatted as "msg:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Prevent data loss by using the UUID as a collision disconnector
//     if two messages arrive at the same nanosecond.
func messageKey(at time.Time, id string) []byte {
	return fmt.Appendf(nil, "%s%019d:%s", MessagePrefix, at.UnixNano(), id)
}

// CreateMessage commits a new message, assigning its id and creation
// timestamp. A secondary "id:{uuid}" key points back at the primary
// key so edits and deletes can resolve a message without scanning.
func (m *MessageRepository) CreateMessage(text, senderID, senderName string) (domain.Message, error) {
	id := uuid.New().String()
	createdAt := m.now().UTC()
	key := messageKey(createdAt, id)

	doc := storedMessage{
		Text:       text,
		SenderID:   senderID,
		SenderName: senderName,
		CreatedAt:  lo.ToPtr(createdAt),
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return domain.Message{}, fmt.Errorf("encode message: %w", err)
	}

	err = m.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set([]byte(indexPrefix+id), key)
	})
	if err != nil {
		return domain.Message{}, err
	}

	return domain.Message{
		ID:         id,
		Text:       text,
		SenderID:   senderID,
		SenderName: senderName,
		CreatedAt:  lo.ToPtr(createdAt),
	}, nil
}

// EditMessage replaces the text of an existing message and stamps
// editedAt. The primary key, and with it the creation timestamp and
// the message's position, never changes.
func (m *MessageRepository) EditMessage(id, text string) error {
	editedAt := m.now().UTC()
	return m.db.Update(func(txn *badger.Txn) error {
		key, doc, err := resolve(txn, id)
		if err != nil {
			return err
		}
		doc.Text = text
		doc.EditedAt = lo.ToPtr(editedAt)
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode message: %w", err)
		}
		return txn.Set(key, data)
	})
}

// DeleteMessage retires a message identity. Deleting an unknown id is
// a no-op.
func (m *MessageRepository) DeleteMessage(id string) error {
	return m.db.Update(func(txn *badger.Txn) error {
		key, _, err := resolve(txn, id)
		if err == errors.ErrUnknownMessage {
			return nil
		}
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete([]byte(indexPrefix + id))
	})
}

// resolve follows the secondary index to the primary key and decodes
// the current document.
func resolve(txn *badger.Txn, id string) ([]byte, storedMessage, error) {
	item, err := txn.Get([]byte(indexPrefix + id))
	if err == badger.ErrKeyNotFound {
		return nil, storedMessage{}, errors.ErrUnknownMessage
	}
	if err != nil {
		return nil, storedMessage{}, err
	}
	key, err := item.ValueCopy(nil)
	if err != nil {
		return nil, storedMessage{}, err
	}

	primary, err := txn.Get(key)
	if err != nil {
		return nil, storedMessage{}, err
	}
	var doc storedMessage
	err = primary.Value(func(val []byte) error {
		return json.Unmarshal(val, &doc)
	})
	if err != nil {
		return nil, storedMessage{}, err
	}
	return key, doc, nil
}

// NewestPage returns the current newest window, oldest first, and the
// window's oldest position as a pagination cursor. The cursor is nil
// when the store is empty.
func (m *MessageRepository) NewestPage(limit int) ([]domain.Message, *string, error) {
	messages, cursor, err := m.collect(maxTimestamp, false, limit)
	if err != nil {
		return nil, nil, err
	}
	return messages, cursor, nil
}

// OlderPage returns the page strictly before cursor, oldest first.
// HasMore is derived from whether the page filled the limit: a short
// page conclusively signals exhaustion.
func (m *MessageRepository) OlderPage(cursor string, limit int) (domain.Page, error) {
	messages, next, err := m.collect(cursor, true, limit)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.Page{
		Messages:   messages,
		NextCursor: next,
		HasMore:    len(messages) == limit,
	}, nil
}

// collect walks the message keyspace backwards from seek, optionally
// skipping the seek position itself, and returns up to limit messages
// reversed into oldest-first order. The second return value is the
// suffix of the oldest visited key, the next cursor.
func (m *MessageRepository) collect(seek string, skipSeek bool, limit int) ([]domain.Message, *string, error) {
	var messages []domain.Message
	var lastKey string

	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(MessagePrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		it.Seek(append(prefix, seek...))
		// Only skip the seek position when it still exists: after the
		// boundary message was deleted, the seek already lands on the
		// next older record.
		if skipSeek && it.ValidForPrefix(prefix) && string(it.Item().Key()) == MessagePrefix+seek {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if len(messages) == limit {
				break
			}
			item := it.Item()
			key := string(item.Key())
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			message, err := MapRecord(key, value)
			if err != nil {
				// A record we cannot identify cannot be displayed or
				// deduplicated; skip it rather than fail the page.
				m.log.Warn("Skipping unidentifiable record", "key", key, "error", err)
				continue
			}
			lastKey = key[len(MessagePrefix):]
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if len(messages) == 0 {
		return nil, nil, nil
	}

	return lo.Reverse(messages), lo.ToPtr(lastKey), nil
}
