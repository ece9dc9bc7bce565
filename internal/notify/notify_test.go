package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	mu     sync.Mutex
	shown  []Notification
	clears int
}

func (r *recordingRenderer) Show(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, n)
}

func (r *recordingRenderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears++
}

func (r *recordingRenderer) snapshot() ([]Notification, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.shown...), r.clears
}

func TestBus_Publish(t *testing.T) {
	t.Run("forwards to registered renderer", func(t *testing.T) {
		bus := New()
		defer bus.Stop()

		renderer := &recordingRenderer{}
		bus.Register(renderer)

		bus.Publish("job saved", KindSuccess)

		shown, _ := renderer.snapshot()
		require.Len(t, shown, 1)
		assert.Equal(t, "job saved", shown[0].Message)
		assert.Equal(t, KindSuccess, shown[0].Kind)
		assert.False(t, shown[0].CreatedAt.IsZero())

		current := bus.Current()
		require.NotNil(t, current)
		assert.Equal(t, shown[0].ID, current.ID)
	})

	t.Run("is a no-op without a renderer", func(t *testing.T) {
		bus := New()
		defer bus.Stop()

		assert.NotPanics(t, func() {
			bus.Publish("nobody listening", KindError)
		})
		assert.Nil(t, bus.Current())
	})

	t.Run("newest replaces prior", func(t *testing.T) {
		bus := New()
		defer bus.Stop()

		renderer := &recordingRenderer{}
		bus.Register(renderer)

		bus.Publish("first", KindInfo)
		bus.Publish("second", KindWarning)

		current := bus.Current()
		require.NotNil(t, current)
		assert.Equal(t, "second", current.Message)

		shown, _ := renderer.snapshot()
		assert.Len(t, shown, 2)
	})
}

func TestBus_AutoDismiss(t *testing.T) {
	t.Run("clears after the display duration", func(t *testing.T) {
		bus := New(WithDisplayDuration(20 * time.Millisecond))
		defer bus.Stop()

		renderer := &recordingRenderer{}
		bus.Register(renderer)

		bus.Publish("short lived", KindInfo)
		require.NotNil(t, bus.Current())

		assert.Eventually(t, func() bool {
			return bus.Current() == nil
		}, time.Second, 5*time.Millisecond)

		_, clears := renderer.snapshot()
		assert.Equal(t, 1, clears)
	})

	t.Run("replacement restarts the timer", func(t *testing.T) {
		bus := New(WithDisplayDuration(40 * time.Millisecond))
		defer bus.Stop()

		renderer := &recordingRenderer{}
		bus.Register(renderer)

		bus.Publish("first", KindInfo)
		time.Sleep(25 * time.Millisecond)
		bus.Publish("second", KindInfo)

		// The first timer would have fired by now; the second publish
		// must keep its own notification visible.
		time.Sleep(25 * time.Millisecond)
		current := bus.Current()
		require.NotNil(t, current)
		assert.Equal(t, "second", current.Message)
	})
}

func TestBus_Register(t *testing.T) {
	t.Run("new renderer replaces previous", func(t *testing.T) {
		bus := New()
		defer bus.Stop()

		first := &recordingRenderer{}
		second := &recordingRenderer{}
		bus.Register(first)
		bus.Register(second)

		bus.Publish("hello", KindInfo)

		firstShown, _ := first.snapshot()
		secondShown, _ := second.snapshot()
		assert.Empty(t, firstShown)
		assert.Len(t, secondShown, 1)
	})
}
