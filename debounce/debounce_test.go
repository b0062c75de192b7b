package debounce_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/debounce"
)

type recorder struct {
	mu   sync.Mutex
	args []int
}

func (r *recorder) fn(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.args = append(r.args, v)
}

func (r *recorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.args...)
}

func TestDebouncer(t *testing.T) {
	t.Parallel()

	t.Run("coalesces bursts into one call with the last arguments", func(t *testing.T) {
		t.Parallel()
		rec := &recorder{}
		d := debounce.New(50*time.Millisecond, rec.fn)
		defer d.Stop()

		d.Call(1)
		d.Call(2)
		d.Call(3)

		require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, 2*time.Second, 5*time.Millisecond)
		assert.Equal(t, []int{3}, rec.snapshot())

		// No extra invocation shows up later.
		time.Sleep(120 * time.Millisecond)
		assert.Equal(t, []int{3}, rec.snapshot())
	})

	t.Run("fires again for calls after the quiet period", func(t *testing.T) {
		t.Parallel()
		rec := &recorder{}
		d := debounce.New(20*time.Millisecond, rec.fn)
		defer d.Stop()

		d.Call(1)
		require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, 2*time.Second, 5*time.Millisecond)

		d.Call(2)
		require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, 2*time.Second, 5*time.Millisecond)
		assert.Equal(t, []int{1, 2}, rec.snapshot())
	})

	t.Run("cancel discards the pending call but stays usable", func(t *testing.T) {
		t.Parallel()
		rec := &recorder{}
		d := debounce.New(30*time.Millisecond, rec.fn)
		defer d.Stop()

		d.Call(1)
		require.True(t, d.Pending())
		d.Cancel()
		require.False(t, d.Pending())

		time.Sleep(80 * time.Millisecond)
		assert.Empty(t, rec.snapshot())

		d.Call(2)
		require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, 2*time.Second, 5*time.Millisecond)
		assert.Equal(t, []int{2}, rec.snapshot())
	})

	t.Run("stop disables the debouncer permanently", func(t *testing.T) {
		t.Parallel()
		rec := &recorder{}
		d := debounce.New(20*time.Millisecond, rec.fn)

		d.Call(1)
		d.Stop()
		d.Stop() // idempotent
		d.Call(2)

		time.Sleep(60 * time.Millisecond)
		assert.Empty(t, rec.snapshot())
		assert.False(t, d.Pending())
	})

	t.Run("nil callback is silently discarded", func(t *testing.T) {
		t.Parallel()
		d := debounce.New[int](20*time.Millisecond, nil)
		defer d.Stop()

		d.Call(1)
		assert.False(t, d.Pending())
	})

	t.Run("non-positive interval falls back to the default", func(t *testing.T) {
		t.Parallel()
		rec := &recorder{}
		d := debounce.New(0, rec.fn)
		defer d.Stop()

		d.Call(1)
		// DefaultInterval is 700ms, so nothing fires quickly.
		time.Sleep(50 * time.Millisecond)
		assert.Empty(t, rec.snapshot())
		assert.True(t, d.Pending())
	})
}
