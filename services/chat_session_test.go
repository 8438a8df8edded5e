package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pavelsokolov/yazen-chat-app/domain"
	"github.com/pavelsokolov/yazen-chat-app/errors"
	"github.com/pavelsokolov/yazen-chat-app/mocks"
)

const (
	testPageSize  = 3
	testMaxLength = 20
)

type fixture struct {
	session *ChatSession
	store   *mocks.MockMessageStore
	tail    *mocks.MockTailSubscriber
	// onLivePage and onTailError are captured when Start subscribes.
	onLivePage  func([]domain.Message, *string)
	onTailError func(error)
	releases    int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		store: mocks.NewMockMessageStore(ctrl),
		tail:  mocks.NewMockTailSubscriber(ctrl),
	}
	f.session = NewChatSession(logs.GetLoggerFromLevel(slog.LevelDebug),
		f.store, f.tail, "me-id", "Me", testPageSize, testMaxLength)
	return f
}

// start wires the tail mock so the test can push live pages and errors
// by hand.
func (f *fixture) start() {
	f.tail.EXPECT().
		Subscribe(gomock.Any(), gomock.Any()).
		DoAndReturn(func(onPage func([]domain.Message, *string), onError func(error)) func() {
			f.onLivePage = onPage
			f.onTailError = onError
			return func() { f.releases++ }
		}).
		Times(1)
	f.session.Start()
}

func message(id string, at int64) domain.Message {
	return domain.Message{
		ID:        id,
		Text:      "text-" + id,
		CreatedAt: lo.ToPtr(time.Unix(at, 0).UTC()),
	}
}

func Test_Send_Rejects_Blank_Text_Without_Store_Call(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	req.ErrorIs(f.session.Send(context.Background(), ""), errors.ErrEmptyMessage)
	req.ErrorIs(f.session.Send(context.Background(), "   "), errors.ErrEmptyMessage)
	req.ErrorIs(f.session.Send(context.Background(), " \t\n "), errors.ErrEmptyMessage)
}

func Test_Send_Rejects_Overlong_Text_Without_Store_Call(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	err := f.session.Send(context.Background(), strings.Repeat("x", testMaxLength+1))
	req.ErrorIs(err, errors.ErrMessageTooLong)
}

func Test_Send_Trims_And_Creates(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.store.EXPECT().
		CreateMessage("hello", "me-id", "Me").
		Return(message("m1", 10), nil).
		Times(1)

	req.NoError(f.session.Send(context.Background(), "  hello  "))
	req.Empty(f.session.Snapshot().Err)
}

func Test_Send_Rejects_While_One_Is_In_Flight(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	started := make(chan struct{})
	release := make(chan struct{})
	f.store.EXPECT().
		CreateMessage("slow", "me-id", "Me").
		DoAndReturn(func(string, string, string) (domain.Message, error) {
			close(started)
			<-release
			return message("m1", 10), nil
		}).
		Times(1)

	done := make(chan error, 1)
	go func() { done <- f.session.Send(context.Background(), "slow") }()

	<-started
	req.ErrorIs(f.session.Send(context.Background(), "rejected"), errors.ErrSendInFlight)
	close(release)
	req.NoError(<-done)
}

func Test_Send_In_Edit_Mode_Edits_And_Clears_Target(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.store.EXPECT().
		EditMessage("m1", "fixed").
		Return(nil).
		Times(1)

	f.session.SetEditing("m1")
	req.NoError(f.session.Send(context.Background(), "fixed"))
	req.Empty(f.session.Snapshot().EditingID, "edit mode clears on success")
}

func Test_Send_Failure_Keeps_Edit_Target_And_Surfaces_Error(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.store.EXPECT().
		EditMessage("m1", "fixed").
		Return(fmt.Errorf("backend rejected the write")).
		Times(1)

	f.session.SetEditing("m1")
	err := f.session.Send(context.Background(), "fixed")
	req.Error(err)

	snap := f.session.Snapshot()
	req.Equal("m1", snap.EditingID, "edit mode survives a failed save")
	req.Contains(snap.Err, "backend rejected the write")
}

func Test_Switching_Edit_Targets_Replaces_The_Previous_One(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.session.SetEditing("m1")
	f.session.SetEditing("m2")
	req.Equal("m2", f.session.Snapshot().EditingID)
	f.session.ClearEditing()
	req.Empty(f.session.Snapshot().EditingID)
}

func Test_Live_Delivery_Replaces_Window_And_Clears_Error(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.start()

	req.True(f.session.Snapshot().Loading)

	f.onLivePage([]domain.Message{message("a", 10), message("b", 20)}, lo.ToPtr("cursor-a"))
	snap := f.session.Snapshot()
	req.False(snap.Loading)
	req.Equal(2, len(snap.Messages))

	f.onLivePage([]domain.Message{message("b", 20), message("c", 30)}, lo.ToPtr("cursor-b"))
	snap = f.session.Snapshot()
	req.Equal([]string{"b", "c"}, []string{snap.Messages[0].ID, snap.Messages[1].ID},
		"each delivery supersedes the previous window in full")
}

func Test_Tail_Error_Becomes_Persistent_Banner(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.start()

	f.onTailError(fmt.Errorf("live channel broke"))
	snap := f.session.Snapshot()
	req.False(snap.Loading)
	req.Contains(snap.Err, "live channel broke")
}

func Test_LoadMore_Without_Any_Boundary_Is_A_No_Op(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.start()

	req.NoError(f.session.LoadMore(context.Background()))
}

func Test_LoadMore_Walks_From_Live_Then_Paged_Boundary(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.start()

	f.onLivePage([]domain.Message{message("d", 40), message("e", 50)}, lo.ToPtr("cursor-d"))

	f.store.EXPECT().
		OlderPage("cursor-d", testPageSize).
		Return(domain.Page{
			Messages:   []domain.Message{message("a", 10), message("b", 20), message("c", 30)},
			NextCursor: lo.ToPtr("cursor-a"),
			HasMore:    true,
		}, nil).
		Times(1)
	req.NoError(f.session.LoadMore(context.Background()))
	req.Equal([]string{"a", "b", "c", "d", "e"}, idsOf(f.session.Snapshot().Messages))

	// The second walk starts from the boundary pagination reached.
	f.store.EXPECT().
		OlderPage("cursor-a", testPageSize).
		Return(domain.Page{}, nil).
		Times(1)
	req.NoError(f.session.LoadMore(context.Background()))
}

func Test_Paged_Boundary_Takes_Precedence_Over_Live_Boundary(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.start()

	f.onLivePage([]domain.Message{message("d", 40)}, lo.ToPtr("cursor-d"))

	f.store.EXPECT().
		OlderPage("cursor-d", testPageSize).
		Return(domain.Page{
			Messages:   []domain.Message{message("a", 10), message("b", 20), message("c", 30)},
			NextCursor: lo.ToPtr("cursor-a"),
			HasMore:    true,
		}, nil).
		Times(1)
	req.NoError(f.session.LoadMore(context.Background()))

	// Even if the live window later reports an older boundary, the
	// paginated one keeps winning once pagination has run.
	f.onLivePage([]domain.Message{message("c2", 35), message("d", 40)}, lo.ToPtr("cursor-c2"))

	f.store.EXPECT().
		OlderPage("cursor-a", testPageSize).
		Return(domain.Page{}, nil).
		Times(1)
	req.NoError(f.session.LoadMore(context.Background()))
}

func Test_LoadMore_While_In_Flight_Is_Ignored(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.start()

	f.onLivePage([]domain.Message{message("d", 40)}, lo.ToPtr("cursor-d"))

	f.store.EXPECT().
		OlderPage("cursor-d", testPageSize).
		DoAndReturn(func(string, int) (domain.Page, error) {
			// Reentrant call while the first fetch is still pending:
			// it must fall through without issuing another fetch.
			require.NoError(t, f.session.LoadMore(context.Background()))
			return domain.Page{
				Messages: []domain.Message{message("c", 30)},
				HasMore:  true,
			}, nil
		}).
		Times(1)

	req.NoError(f.session.LoadMore(context.Background()))
	req.Equal([]string{"c", "d"}, idsOf(f.session.Snapshot().Messages))
}

func Test_LoadMore_Stops_After_Exhaustion(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.start()

	f.onLivePage([]domain.Message{message("d", 40)}, lo.ToPtr("cursor-d"))

	// A short page signals there is nothing further back.
	f.store.EXPECT().
		OlderPage("cursor-d", testPageSize).
		Return(domain.Page{
			Messages:   []domain.Message{message("c", 30)},
			NextCursor: lo.ToPtr("cursor-c"),
			HasMore:    false,
		}, nil).
		Times(1)

	req.NoError(f.session.LoadMore(context.Background()))
	req.NoError(f.session.LoadMore(context.Background()))
	req.NoError(f.session.LoadMore(context.Background()))
}

func Test_LoadMore_Failure_Is_Soft_And_Retryable(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.start()

	f.onLivePage([]domain.Message{message("d", 40)}, lo.ToPtr("cursor-d"))

	f.store.EXPECT().
		OlderPage("cursor-d", testPageSize).
		Return(domain.Page{}, fmt.Errorf("transient backend hiccup")).
		Times(1)
	req.Error(f.session.LoadMore(context.Background()))
	req.Empty(f.session.Snapshot().Err, "pagination failures are not banner errors")

	// A retry issues a fresh fetch from the same boundary.
	f.store.EXPECT().
		OlderPage("cursor-d", testPageSize).
		Return(domain.Page{
			Messages: []domain.Message{message("c", 30)},
			HasMore:  true,
		}, nil).
		Times(1)
	req.NoError(f.session.LoadMore(context.Background()))
	req.Equal([]string{"c", "d"}, idsOf(f.session.Snapshot().Messages))
}

func Test_Delete_Surfaces_Store_Failure(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.store.EXPECT().DeleteMessage("m1").Return(nil).Times(1)
	req.NoError(f.session.DeleteMessage(context.Background(), "m1"))

	f.store.EXPECT().DeleteMessage("m2").Return(fmt.Errorf("not allowed")).Times(1)
	req.Error(f.session.DeleteMessage(context.Background(), "m2"))
	req.Contains(f.session.Snapshot().Err, "not allowed")
}

func Test_Close_Releases_The_Subscription_Exactly_Once(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.start()

	f.session.Start() // second Start must not subscribe again
	f.session.Close()
	f.session.Close()
	req.Equal(1, f.releases)
}

func Test_Close_During_Start_Releases_The_New_Subscription(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.tail.EXPECT().
		Subscribe(gomock.Any(), gomock.Any()).
		DoAndReturn(func(func([]domain.Message, *string), func(error)) func() {
			// Teardown racing the startup: Close runs before the real
			// handle is installed and must not leak the subscription.
			f.session.Close()
			return func() { f.releases++ }
		}).
		Times(1)

	f.session.Start()
	req.Equal(1, f.releases, "the freshly acquired subscription must be released")
}

func Test_OnChange_Fires_On_State_Transitions(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	changes := 0
	f.session.OnChange(func() { changes++ })
	f.start()

	f.onLivePage([]domain.Message{message("a", 10)}, lo.ToPtr("cursor-a"))
	f.session.SetEditing("a")
	f.session.ClearEditing()
	req.GreaterOrEqual(changes, 3)
}

func idsOf(messages []domain.Message) []string {
	return lo.Map(messages, func(m domain.Message, _ int) string { return m.ID })
}
