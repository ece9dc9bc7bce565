// Package notify decouples notification producers (the request gateway,
// the expiry watcher) from the single on-screen renderer. Producers hold
// a *Bus handed to them at construction time; the renderer registers
// itself once at startup.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification for rendering.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// DisplayDuration is how long a notification stays visible before it is
// auto-dismissed.
const DisplayDuration = 4 * time.Second

// Notification is a single ephemeral user-visible message.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// Renderer displays notifications to the user. Exactly one renderer is
// active at a time; registering a new one replaces the previous.
type Renderer interface {
	Show(Notification)
	Clear()
}

// Bus holds the latest notification and forwards it to the registered
// renderer. Publishing with no renderer registered is a silent no-op.
// A new publish before the display duration elapses replaces the visible
// notification and restarts the timer; there is no queue.
type Bus struct {
	mu       sync.Mutex
	renderer Renderer
	current  *Notification
	timer    *time.Timer
	duration time.Duration
}

// Option configures a Bus.
type Option func(*Bus)

// WithDisplayDuration overrides the auto-dismiss duration.
func WithDisplayDuration(d time.Duration) Option {
	return func(b *Bus) {
		b.duration = d
	}
}

func New(opts ...Option) *Bus {
	b := &Bus{duration: DisplayDuration}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register installs the active renderer, replacing any previous one.
func (b *Bus) Register(r Renderer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.renderer = r
}

// Publish shows a notification. Newest wins: any pending auto-dismiss is
// cancelled and the prior notification is dropped immediately.
func (b *Bus) Publish(message string, kind Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderer == nil {
		return
	}

	if b.timer != nil {
		b.timer.Stop()
	}

	n := Notification{
		ID:        uuid.New(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	b.current = &n
	b.renderer.Show(n)

	b.timer = time.AfterFunc(b.duration, func() {
		b.dismiss(n.ID)
	})
}

// Current returns the notification currently on screen, or nil.
func (b *Bus) Current() *Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Stop cancels any pending auto-dismiss timer.
func (b *Bus) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Bus) dismiss(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A newer notification may have replaced us while the timer was pending.
	if b.current == nil || b.current.ID != id {
		return
	}
	b.current = nil
	if b.renderer != nil {
		b.renderer.Clear()
	}
}
