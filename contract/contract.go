//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"github.com/pavelsokolov/yazen-chat-app/domain"
)

// MessageStore is the narrow surface of the backing document store.
// The store assigns identity and timestamps; the client never builds
// either itself.
type MessageStore interface {
	CreateMessage(text, senderID, senderName string) (domain.Message, error)
	EditMessage(id, text string) error
	DeleteMessage(id string) error
	// NewestPage returns the current newest window, oldest first,
	// together with the window's oldest position.
	NewestPage(limit int) ([]domain.Message, *string, error)
	// OlderPage returns the page strictly older than cursor.
	OlderPage(cursor string, limit int) (domain.Page, error)
}

// TailSubscriber maintains one standing subscription to the newest
// window of the store. Every onPage call carries the full current
// window, never a delta. After onError the subscription is dead and
// does not heal itself. The returned function releases the
// subscription; it is idempotent and must be called on teardown.
type TailSubscriber interface {
	Subscribe(onPage func(page []domain.Message, oldest *string), onError func(err error)) (unsubscribe func())
}

// DisplayNameStore persists the chosen display name across restarts.
type DisplayNameStore interface {
	SaveDisplayName(name string) error
	LoadDisplayName() (string, error)
	ClearDisplayName() error
}
