package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"github.com/pavelsokolov/yazen-chat-app/auth"
	"github.com/pavelsokolov/yazen-chat-app/repositories"
	"github.com/pavelsokolov/yazen-chat-app/runtime"
	"github.com/pavelsokolov/yazen-chat-app/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the session lifecycle, and
// centralizes error reporting so every defer (database close, tail
// release) executes on all exit paths.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Identity
	prefs := repositories.NewPreferenceRepository(db)
	authenticator := auth.NewAuthenticator(log, prefs, config.AuthTokenDuration)

	reader := bufio.NewScanner(os.Stdin)
	name, err := authenticator.Bootstrap()
	if err != nil {
		return fmt.Errorf("auth bootstrap failed: %w", err)
	}
	for name == "" {
		color.Cyan.Print("Pick a display name: ")
		if !reader.Scan() {
			return nil
		}
		candidate := strings.TrimSpace(reader.Text())
		if err := authenticator.SetDisplayName(candidate); err != nil {
			color.Red.Printf("%v\n", err)
			continue
		}
		name = candidate
	}
	session := authenticator.Current()

	// 4. Chat session
	messageRepository := repositories.NewMessageRepository(db, log)
	tail := runtime.NewTailSubscriber(db, messageRepository, config.PageSize, log)
	chat := services.NewChatSession(log, messageRepository, tail,
		session.UserID, name, config.PageSize, config.MaxMessageLength)

	render := newRenderer(session.UserID)
	chat.OnChange(func() { render(chat.Snapshot()) })
	chat.Start()
	defer chat.Close()

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	color.Green.Printf("Welcome, %s. Commands: /more /edit <n> /cancel /delete <n> /logout /quit\n", name)

	lines := make(chan string)
	go func() {
		defer close(lines)
		for reader.Scan() {
			lines <- reader.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			color.Gray.Println("Leaving the room...")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := handle(ctx, chat, authenticator, session.UserID, line)
			if err != nil {
				color.Red.Printf("%v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// handle interprets one input line: a slash command or a plain send.
func handle(ctx context.Context, chat *services.ChatSession, authenticator *auth.Authenticator, userID, line string) (bool, error) {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "/quit":
		return true, nil
	case trimmed == "/logout":
		return true, authenticator.SignOut()
	case trimmed == "/more":
		return false, chat.LoadMore(ctx)
	case trimmed == "/cancel":
		chat.ClearEditing()
		return false, nil
	case strings.HasPrefix(trimmed, "/edit "):
		id, err := ownMessageID(chat, userID, strings.TrimPrefix(trimmed, "/edit "))
		if err != nil {
			return false, err
		}
		chat.SetEditing(id)
		color.Yellow.Println("Editing. Type the new text, or /cancel.")
		return false, nil
	case strings.HasPrefix(trimmed, "/delete "):
		id, err := ownMessageID(chat, userID, strings.TrimPrefix(trimmed, "/delete "))
		if err != nil {
			return false, err
		}
		return false, chat.DeleteMessage(ctx, id)
	case trimmed == "":
		return false, nil
	default:
		return false, chat.Send(ctx, trimmed)
	}
}

// ownMessageID resolves a displayed index to a message id, refusing
// messages authored by someone else. Only own messages are offered for
// edit or delete; the store itself does not enforce this.
func ownMessageID(chat *services.ChatSession, userID, arg string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return "", fmt.Errorf("expected a message number, got %q", arg)
	}
	messages := chat.Snapshot().Messages
	if n < 1 || n > len(messages) {
		return "", fmt.Errorf("no message #%d", n)
	}
	message := messages[n-1]
	if message.SenderID != userID {
		return "", fmt.Errorf("message #%d is not yours", n)
	}
	return message.ID, nil
}

// newRenderer prints the merged timeline after each state change.
func newRenderer(userID string) func(services.Snapshot) {
	return func(snap services.Snapshot) {
		if snap.Loading {
			return
		}
		fmt.Println(strings.Repeat("-", 60))
		if snap.Err != "" {
			color.Red.Printf("! %s\n", snap.Err)
		}
		if snap.LoadingMore {
			color.Gray.Println("Loading older messages...")
		}
		for i, m := range snap.Messages {
			sender := color.Cyan
			if m.SenderID == userID {
				sender = color.Green
			}
			edited := ""
			if m.EditedAt != nil {
				edited = " (edited)"
			}
			at := "..."
			if m.CreatedAt != nil {
				at = m.CreatedAt.Local().Format("15:04")
			}
			fmt.Printf("%3d [%s] ", i+1, at)
			sender.Printf("%s", m.SenderName)
			fmt.Printf(": %s%s\n", m.Text, color.Gray.Render(edited))
		}
		if snap.EditingID != "" {
			color.Yellow.Println("Editing message. Type the new text, or /cancel.")
		}
	}
}
