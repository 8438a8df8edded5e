// Package runtime hosts the live side of the client: the standing
// subscription that mirrors the newest window of the message store.
package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	badgerpb "github.com/dgraph-io/badger/v4/pb"

	"github.com/pavelsokolov/yazen-chat-app/domain"
	"github.com/pavelsokolov/yazen-chat-app/repositories"
)

// staleCheckInterval bounds how long a write can stay undelivered when
// it was committed before the store subscription finished registering.
const staleCheckInterval = 200 * time.Millisecond

// PageSource is the slice of the store the tail needs.
type PageSource interface {
	NewestPage(limit int) ([]domain.Message, *string, error)
}

// TailSubscriber owns one standing subscription to the message
// keyspace. Every store change triggers a full re-read of the newest
// window: consumers always receive the complete current page, never a
// delta, so the backend keeps the burden of incremental diffing.
type TailSubscriber struct {
	db       *badger.DB
	source   PageSource
	pageSize int
	log      *slog.Logger
}

func NewTailSubscriber(db *badger.DB, source PageSource, pageSize int, log *slog.Logger) *TailSubscriber {
	return &TailSubscriber{db: db, source: source, pageSize: pageSize, log: log}
}

// Subscribe starts the tail and returns its release function.
//
// onPage receives the full current newest window, oldest first, along
// with the window's oldest position for use as a pagination cursor.
// An initial snapshot is delivered before any change arrives.
//
// onError is called at most once; after that the subscription is dead
// and will not heal itself. The release function is idempotent, stops
// all further callbacks, and must be called exactly once when the
// consumer is torn down.
func (t *TailSubscriber) Subscribe(onPage func(page []domain.Message, oldest *string), onError func(err error)) func() {
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var delivered uint64

	var failOnce sync.Once
	fail := func(err error) {
		failOnce.Do(func() {
			t.log.Error("Live tail broke", "error", err)
			onError(err)
			cancel()
		})
	}

	// deliver re-reads the newest window and hands it out, recording
	// the store version it carried. The version is read before the page
	// so a delivery is never recorded as newer than its content.
	deliver := func() error {
		version := t.db.MaxVersion()
		page, oldest, err := t.source.NewestPage(t.pageSize)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return nil
		}
		if version > delivered {
			delivered = version
		}
		onPage(page, oldest)
		return nil
	}

	go func() {
		matches := []badgerpb.Match{{Prefix: []byte(repositories.MessagePrefix)}}
		err := t.db.Subscribe(ctx, func(_ *badger.KVList) error {
			// The change payload is ignored on purpose: the window is
			// re-read in full so each delivery is authoritative.
			return deliver()
		}, matches)
		if err != nil && ctx.Err() == nil {
			fail(err)
		}
	}()

	go func() {
		if err := deliver(); err != nil {
			fail(err)
			return
		}

		// The store registers the change subscriber asynchronously: a
		// write committed between the initial read above and that
		// registration triggers no callback. The version check catches
		// such writes and redelivers until the delivered window has
		// caught up with the store. Writes outside the message keyspace
		// can cause a spurious redelivery, which consumers absorb since
		// every delivery is a full replacement.
		ticker := time.NewTicker(staleCheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				mu.Lock()
				stale := t.db.MaxVersion() > delivered
				mu.Unlock()
				if !stale {
					continue
				}
				if err := deliver(); err != nil {
					fail(err)
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(cancel)
	}
}
