// Package auth provides anonymous identity for the chat client: a
// generated user id carried by a signed token, the persisted display
// name, and session-state change notifications.
package auth

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pavelsokolov/yazen-chat-app/contract"
)

// Session is an authenticated anonymous identity. The UserID becomes
// the senderId of every message created under this session.
type Session struct {
	UserID string
	Token  string
}

type Authenticator struct {
	mu            sync.Mutex
	log           *slog.Logger
	prefs         contract.DisplayNameStore
	tokenDuration time.Duration
	session       *Session
	displayName   string
	listeners     map[int]func(*Session)
	nextListener  int
}

func NewAuthenticator(log *slog.Logger, prefs contract.DisplayNameStore, tokenDuration time.Duration) *Authenticator {
	return &Authenticator{
		log:           log,
		prefs:         prefs,
		tokenDuration: tokenDuration,
		listeners:     make(map[int]func(*Session)),
	}
}

// Bootstrap restores local auth state across restarts: it loads the
// saved display name and, when one exists, establishes the anonymous
// session. With no saved name it signs nothing in; the caller must ask
// the user to pick one first.
func (a *Authenticator) Bootstrap() (string, error) {
	name, err := a.prefs.LoadDisplayName()
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", nil
	}

	a.mu.Lock()
	a.displayName = name
	a.mu.Unlock()

	if _, err := a.SignInAnonymously(); err != nil {
		return "", err
	}
	return name, nil
}

// SetDisplayName validates and persists the chosen name, then makes
// sure an anonymous session exists. The name is a snapshot: messages
// already sent keep the name they were sent under.
func (a *Authenticator) SetDisplayName(name string) error {
	trimmed := strings.TrimSpace(name)
	if err := ValidateDisplayName(trimmed); err != nil {
		return err
	}
	if err := a.prefs.SaveDisplayName(trimmed); err != nil {
		return err
	}

	a.mu.Lock()
	a.displayName = trimmed
	a.mu.Unlock()

	_, err := a.SignInAnonymously()
	return err
}

// SignInAnonymously establishes the session, reusing the current one
// when it already exists, the way the identity provider would.
func (a *Authenticator) SignInAnonymously() (Session, error) {
	a.mu.Lock()
	if a.session != nil {
		session := *a.session
		a.mu.Unlock()
		return session, nil
	}
	a.mu.Unlock()

	userID := uuid.New().String()
	token, err := GenerateToken(userID, a.tokenDuration)
	if err != nil {
		return Session{}, err
	}

	session := Session{UserID: userID, Token: token}
	a.mu.Lock()
	a.session = &session
	a.mu.Unlock()

	a.log.Info("Anonymous session established", "userId", userID)
	a.notify(&session)
	return session, nil
}

// SignOut clears the session and forgets the stored display name.
func (a *Authenticator) SignOut() error {
	if err := a.prefs.ClearDisplayName(); err != nil {
		a.log.Warn("Failed to clear display name", "error", err)
	}

	a.mu.Lock()
	a.session = nil
	a.displayName = ""
	a.mu.Unlock()

	a.notify(nil)
	return nil
}

// Current returns the active session, or nil when signed out.
func (a *Authenticator) Current() *Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil
	}
	session := *a.session
	return &session
}

func (a *Authenticator) DisplayName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.displayName
}

// OnStateChange registers a callback invoked with the new session on
// sign-in and nil on sign-out. The returned function removes the
// registration.
func (a *Authenticator) OnStateChange(fn func(*Session)) func() {
	a.mu.Lock()
	id := a.nextListener
	a.nextListener++
	a.listeners[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

func (a *Authenticator) notify(session *Session) {
	a.mu.Lock()
	listeners := make([]func(*Session), 0, len(a.listeners))
	for _, fn := range a.listeners {
		listeners = append(listeners, fn)
	}
	a.mu.Unlock()

	for _, fn := range listeners {
		fn(session)
	}
}
