package future_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/future"
)

func TestGo(t *testing.T) {
	t.Parallel()

	t.Run("resolves with the function result", func(t *testing.T) {
		t.Parallel()
		fut := future.Go(context.Background(), func(context.Context) (int, error) {
			return 42, nil
		})

		v, err := fut.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.True(t, fut.IsComplete())
	})

	t.Run("resolves with the function error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("boom")
		fut := future.Go(context.Background(), func(context.Context) (int, error) {
			return 0, wantErr
		})

		_, err := fut.Await()
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("pre-canceled context skips the function", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		fut := future.Go(ctx, func(context.Context) (int, error) {
			called = true
			return 1, nil
		})

		_, err := fut.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("returns the result when resolved in time", func(t *testing.T) {
		t.Parallel()
		fut := future.Resolved("done")

		v, err := fut.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, "done", v)
	})

	t.Run("times out on an unresolved future", func(t *testing.T) {
		t.Parallel()
		fut, _ := future.Pending[string]()

		_, err := fut.AwaitWithTimeout(20 * time.Millisecond)
		assert.ErrorIs(t, err, future.ErrTimeout)
	})
}

func TestPending(t *testing.T) {
	t.Parallel()

	t.Run("only the first resolution takes effect", func(t *testing.T) {
		t.Parallel()
		fut, resolve := future.Pending[string]()

		resolve("first", nil)
		resolve("second", errors.New("late"))

		v, err := fut.Await()
		require.NoError(t, err)
		assert.Equal(t, "first", v)
	})

	t.Run("done channel closes on resolution", func(t *testing.T) {
		t.Parallel()
		fut, resolve := future.Pending[int]()

		assert.False(t, fut.IsComplete())
		resolve(1, nil)

		select {
		case <-fut.Done():
		default:
			t.Fatal("done channel should be closed")
		}
	})
}

func TestOnComplete(t *testing.T) {
	t.Parallel()

	t.Run("registered before resolution", func(t *testing.T) {
		t.Parallel()
		fut, resolve := future.Pending[int]()

		got := make(chan int, 1)
		fut.OnComplete(func(v int, err error) { got <- v })

		resolve(7, nil)

		select {
		case v := <-got:
			assert.Equal(t, 7, v)
		case <-time.After(time.Second):
			t.Fatal("callback never ran")
		}
	})

	t.Run("registered after resolution runs synchronously", func(t *testing.T) {
		t.Parallel()
		fut := future.Resolved(9)

		var got int
		fut.OnComplete(func(v int, err error) { got = v })
		assert.Equal(t, 9, got)
	})

	t.Run("nil callback is ignored", func(t *testing.T) {
		t.Parallel()
		fut := future.Resolved(1)
		assert.NotPanics(t, func() { fut.OnComplete(nil) })
	})

	t.Run("failed future delivers the error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("nope")
		fut := future.Failed[int](wantErr)

		var got error
		fut.OnComplete(func(_ int, err error) { got = err })
		assert.ErrorIs(t, got, wantErr)
	})
}
