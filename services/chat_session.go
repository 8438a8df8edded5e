// Package services owns the chat session: the merge state machine,
// the mutation operations, and the user-facing error surface.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pavelsokolov/yazen-chat-app/contract"
	"github.com/pavelsokolov/yazen-chat-app/domain"
	"github.com/pavelsokolov/yazen-chat-app/errors"
	"github.com/pavelsokolov/yazen-chat-app/projection"
)

type IChatSession interface {
	Start()
	Close()
	Send(ctx context.Context, text string) error
	LoadMore(ctx context.Context) error
	DeleteMessage(ctx context.Context, id string) error
	SetEditing(id string)
	ClearEditing()
	Snapshot() Snapshot
}

// Snapshot is the read model handed to the presentation layer.
type Snapshot struct {
	Messages    []domain.Message
	Loading     bool
	LoadingMore bool
	EditingID   string // empty when not editing
	Err         string // user-facing, empty when healthy
}

// ChatSession reconciles the live tail with paginated history and
// exposes send/edit/delete on top of the merged list.
//
// The sender identity is fixed at construction (explicit context, no
// ambient globals). All state is guarded by one mutex; store calls are
// made outside of it.
type ChatSession struct {
	log        *slog.Logger
	store      contract.MessageStore
	tail       contract.TailSubscriber
	senderID   string
	senderName string
	pageSize   int
	maxLength  int

	mu       sync.Mutex
	timeline *projection.Timeline
	// liveCursor tracks the oldest member of the live window;
	// pagedCursor the oldest record reached through pagination. Once
	// pagination has run, pagedCursor permanently takes precedence.
	liveCursor  *string
	pagedCursor *string
	loading     bool
	loadingMore bool
	hasMore     bool
	sending     bool
	editingID   string
	errText     string
	unsubscribe func()
	onChange    func()
}

func NewChatSession(log *slog.Logger, store contract.MessageStore, tail contract.TailSubscriber,
	senderID, senderName string, pageSize, maxLength int) *ChatSession {
	return &ChatSession{
		log:        log,
		store:      store,
		tail:       tail,
		senderID:   senderID,
		senderName: senderName,
		pageSize:   pageSize,
		maxLength:  maxLength,
		timeline:   projection.NewTimeline(),
		loading:    true,
		hasMore:    true,
	}
}

// OnChange registers the presentation-layer callback invoked after
// every state transition. Must be set before Start.
func (s *ChatSession) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Start acquires the live tail subscription. Calling Start twice is a
// no-op; the session owns exactly one subscription for its lifetime.
func (s *ChatSession) Start() {
	s.mu.Lock()
	if s.unsubscribe != nil {
		s.mu.Unlock()
		return
	}
	// Reserve ownership before subscribing so a concurrent Start
	// cannot acquire a second subscription.
	s.unsubscribe = func() {}
	s.mu.Unlock()

	unsubscribe := s.tail.Subscribe(s.onLivePage, s.onTailError)

	s.mu.Lock()
	if s.unsubscribe == nil {
		// Close ran while the subscription was being acquired; it only
		// saw the placeholder, so the real handle is released here.
		s.mu.Unlock()
		unsubscribe()
		return
	}
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
}

// Close releases the subscription exactly once. Safe to call on every
// exit path.
func (s *ChatSession) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// onLivePage installs an authoritative replacement of the live window.
func (s *ChatSession) onLivePage(page []domain.Message, oldest *string) {
	s.mu.Lock()
	s.timeline.ReplaceLive(page)
	if oldest != nil {
		s.liveCursor = oldest
	}
	s.loading = false
	s.errText = ""
	s.mu.Unlock()
	s.notify()
}

// onTailError marks the live channel as broken. The subscription does
// not self-heal; the error stays visible until the session restarts.
func (s *ChatSession) onTailError(err error) {
	s.mu.Lock()
	s.loading = false
	s.errText = err.Error()
	s.mu.Unlock()
	s.notify()
}

// Send validates and submits the text. In edit mode it rewrites the
// targeted message instead, clearing edit mode only on success. On
// failure the error is surfaced inline and the caller's input (and
// edit target) stay intact for retry.
func (s *ChatSession) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return errors.ErrEmptyMessage
	}
	if utf8.RuneCountInString(trimmed) > s.maxLength {
		return fmt.Errorf("%w (%d max)", errors.ErrMessageTooLong, s.maxLength)
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return errors.ErrSendInFlight
	}
	s.sending = true
	editingID := s.editingID
	s.mu.Unlock()

	var err error
	if editingID != "" {
		err = s.store.EditMessage(editingID, trimmed)
	} else {
		_, err = s.store.CreateMessage(trimmed, s.senderID, s.senderName)
	}

	s.mu.Lock()
	s.sending = false
	if err != nil {
		s.errText = err.Error()
	} else {
		s.errText = ""
		if editingID != "" && s.editingID == editingID {
			s.editingID = ""
		}
	}
	s.mu.Unlock()
	s.notify()

	if err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	return nil
}

// LoadMore fetches the next older page and prepends it to history.
//
// It is a no-op while a fetch is in flight or after exhaustion was
// signaled. The cursor prefers the boundary advanced by a previous
// pagination call over the live window's oldest member. Failures are
// soft: logged, returned, and safe to retry.
func (s *ChatSession) LoadMore(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.loadingMore || !s.hasMore {
		s.mu.Unlock()
		return nil
	}
	cursor := s.pagedCursor
	if cursor == nil {
		cursor = s.liveCursor
	}
	if cursor == nil {
		// Nothing delivered yet, so there is no boundary to walk from.
		s.mu.Unlock()
		return nil
	}
	s.loadingMore = true
	s.mu.Unlock()
	s.notify()

	page, err := s.store.OlderPage(*cursor, s.pageSize)

	s.mu.Lock()
	s.loadingMore = false
	if err != nil {
		s.mu.Unlock()
		s.notify()
		s.log.Warn("Failed to load older messages", "error", err)
		return fmt.Errorf("load more failed: %w", err)
	}
	s.hasMore = page.HasMore
	if page.NextCursor != nil {
		s.pagedCursor = page.NextCursor
	}
	s.timeline.PrependOlder(page.Messages)
	s.mu.Unlock()
	s.notify()
	return nil
}

// DeleteMessage retires a message by identity. Whether the caller is
// allowed to delete it is checked at the UI layer.
func (s *ChatSession) DeleteMessage(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteMessage(id); err != nil {
		s.mu.Lock()
		s.errText = err.Error()
		s.mu.Unlock()
		s.notify()
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

// SetEditing targets a message for the next Send. Switching targets
// simply replaces the previous one.
func (s *ChatSession) SetEditing(id string) {
	s.mu.Lock()
	s.editingID = id
	s.mu.Unlock()
	s.notify()
}

func (s *ChatSession) ClearEditing() {
	s.SetEditing("")
}

// Snapshot returns a consistent copy of the session state. The message
// slice is owned by the caller.
func (s *ChatSession) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Messages:    s.timeline.Messages(),
		Loading:     s.loading,
		LoadingMore: s.loadingMore,
		EditingID:   s.editingID,
		Err:         s.errText,
	}
}

func (s *ChatSession) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
