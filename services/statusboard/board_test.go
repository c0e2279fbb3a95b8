package statusboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/cartcheckout/lib/mystore"
	"github.com/MarcGrol/cartcheckout/lib/mytime"
	"github.com/MarcGrol/cartcheckout/services/checkoutsession"
)

const sessionUID = "session-123"

func TestBoard(t *testing.T) {

	t.Run("Unknown session is idle", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		ctx, sut := setup(t, ctrl)

		// when
		status, err := sut.Current(ctx, sessionUID)

		// then
		require.NoError(t, err)
		assert.Equal(t, checkoutsession.StateIdle, status.State())
	})

	t.Run("Loading wins over message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ctx, sut := setup(t, ctrl)

		// given
		sut.MessageSet(ctx, sessionUID, checkoutsession.FlowWallet, "previous")
		sut.LoadingStarted(ctx, sessionUID, checkoutsession.FlowRedirect)

		// when
		status, err := sut.Current(ctx, sessionUID)

		// then
		require.NoError(t, err)
		assert.Equal(t, checkoutsession.Status{Loading: true}, status)
	})

	t.Run("Message stays after loading stopped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ctx, sut := setup(t, ctrl)

		sut.LoadingStarted(ctx, sessionUID, checkoutsession.FlowWallet)
		sut.MessageSet(ctx, sessionUID, checkoutsession.FlowWallet, "X Y (Z)")
		sut.LoadingStopped(ctx, sessionUID, checkoutsession.FlowWallet)

		status, err := sut.Current(ctx, sessionUID)
		require.NoError(t, err)
		assert.Equal(t, checkoutsession.Status{Message: "X Y (Z)"}, status)
	})

	t.Run("Most recent message of any flow wins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ctx, sut := setup(t, ctrl)

		sut.MessageSet(ctx, sessionUID, checkoutsession.FlowRedirect, "redirect failed")
		sut.MessageSet(ctx, sessionUID, checkoutsession.FlowWallet, "wallet failed")

		status, err := sut.Current(ctx, sessionUID)
		require.NoError(t, err)
		assert.Equal(t, "wallet failed", status.Message)

		sut.MessageSet(ctx, sessionUID, checkoutsession.FlowRedirect, "redirect failed again")

		status, err = sut.Current(ctx, sessionUID)
		require.NoError(t, err)
		assert.Equal(t, "redirect failed again", status.Message)
	})

	t.Run("Stopping without starting never goes negative", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ctx, sut := setup(t, ctrl)

		sut.LoadingStopped(ctx, sessionUID, checkoutsession.FlowWallet)
		sut.LoadingStarted(ctx, sessionUID, checkoutsession.FlowWallet)

		status, err := sut.Current(ctx, sessionUID)
		require.NoError(t, err)
		assert.True(t, status.Loading)

		session, err := sut.Get(ctx, sessionUID)
		require.NoError(t, err)
		assert.Equal(t, 1, session.Flows[checkoutsession.FlowWallet].Pending)
		assert.Equal(t, mytime.ExampleTime, session.CreatedAt)
	})

	t.Run("Sessions are separated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ctx, sut := setup(t, ctrl)

		sut.MessageSet(ctx, "session-a", checkoutsession.FlowWallet, "for a")

		status, err := sut.Current(ctx, "session-b")
		require.NoError(t, err)
		assert.Equal(t, checkoutsession.StateIdle, status.State())
	})

	t.Run("Concurrent reports end idle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ctx, sut := setup(t, ctrl)

		wg := sync.WaitGroup{}
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sut.LoadingStarted(ctx, sessionUID, checkoutsession.FlowWallet)
				_, _ = sut.Current(ctx, sessionUID)
				sut.LoadingStopped(ctx, sessionUID, checkoutsession.FlowWallet)
			}()
		}
		wg.Wait()

		status, err := sut.Current(ctx, sessionUID)
		require.NoError(t, err)
		assert.False(t, status.Loading)
	})
}

func TestExpire(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.TODO()

	store, cleanup, err := mystore.New[SessionStatus](ctx)
	require.NoError(t, err)
	defer cleanup()

	nower := mytime.NewMockNower(ctrl)
	sut := New(store, nower)

	// given
	nower.EXPECT().Now().Return(mytime.ExampleTime)
	sut.MessageSet(ctx, "old", checkoutsession.FlowWallet, "old")

	nower.EXPECT().Now().Return(mytime.ExampleTime.Add(50 * time.Minute))
	sut.MessageSet(ctx, "recent", checkoutsession.FlowWallet, "recent")

	// when
	nower.EXPECT().Now().Return(mytime.ExampleTime.Add(time.Hour))
	removed, err := sut.Expire(ctx, 30*time.Minute)

	// then
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "recent", sessions[0].SessionUID)
}

func TestCurrent(t *testing.T) {
	testCases := []struct {
		name     string
		flows    map[checkoutsession.Flow]FlowStatus
		expected checkoutsession.Status
	}{
		{
			name:     "no flows",
			expected: checkoutsession.Status{},
		},
		{
			name: "one loading",
			flows: map[checkoutsession.Flow]FlowStatus{
				checkoutsession.FlowWallet:   {Message: "x", MessageSequence: 1},
				checkoutsession.FlowRedirect: {Pending: 1},
			},
			expected: checkoutsession.Status{Loading: true},
		},
		{
			name: "highest sequence",
			flows: map[checkoutsession.Flow]FlowStatus{
				checkoutsession.FlowWallet:   {Message: "second", MessageSequence: 2},
				checkoutsession.FlowRedirect: {Message: "first", MessageSequence: 1},
			},
			expected: checkoutsession.Status{Message: "second"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SessionStatus{Flows: tc.flows}.Current())
		})
	}
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *Board) {
	c := context.TODO()

	store, cleanup, err := mystore.New[SessionStatus](c)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	return c, New(store, nower)
}
