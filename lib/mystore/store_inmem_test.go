package mystore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	UID   string
	Count int
}

func TestInMemoryStore(t *testing.T) {
	c := context.TODO()

	t.Run("Put, get and delete", func(t *testing.T) {
		store, cleanup, err := New[counter](c)
		require.NoError(t, err)
		defer cleanup()

		_, found, err := store.Get(c, "a")
		require.NoError(t, err)
		assert.False(t, found)

		require.NoError(t, store.Put(c, "a", counter{UID: "a", Count: 1}))

		got, found, err := store.Get(c, "a")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 1, got.Count)

		all, err := store.List(c)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		require.NoError(t, store.Delete(c, "a"))
		_, found, _ = store.Get(c, "a")
		assert.False(t, found)
	})

	t.Run("Transaction serializes read-modify-write", func(t *testing.T) {
		store, _, _ := New[counter](c)

		wg := sync.WaitGroup{}
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = store.RunInTransaction(c, func(c context.Context) error {
					current, _, err := store.Get(c, "a")
					if err != nil {
						return err
					}
					current.Count++
					return store.Put(c, "a", current)
				})
			}()
		}
		wg.Wait()

		got, _, _ := store.Get(c, "a")
		assert.Equal(t, 50, got.Count)
	})

	t.Run("Transaction propagates error", func(t *testing.T) {
		store, _, _ := New[counter](c)

		err := store.RunInTransaction(c, func(c context.Context) error {
			return fmt.Errorf("boom")
		})
		assert.EqualError(t, err, "boom")

		// lock must have been released
		assert.NoError(t, store.Put(c, "b", counter{}))
	})
}
