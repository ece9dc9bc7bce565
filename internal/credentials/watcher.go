package credentials

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/campusworks/careerdeck/internal/notify"
)

const (
	// CheckInterval is how often the watcher re-decodes the stored token.
	CheckInterval = 5 * time.Second

	// WarningWindow is how close to expiry the one-time warning fires.
	WarningWindow = time.Minute
)

const (
	warningMessage = "Your session will expire in 1 minute. Please save your work!"
	expiredMessage = "Session expired. Redirecting to login..."
)

// Watcher polls the stored token and reacts to approaching or passed
// expiry without server involvement. It warns once inside the warning
// window, and on expiry clears the store, notifies, and invokes the
// injected logout navigation. A malformed token is skipped for that
// tick rather than treated as expired.
type Watcher struct {
	store    *Store
	bus      *notify.Bus
	onExpire func()
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	warned bool
	cancel context.CancelFunc
	done   chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithCheckInterval overrides the polling interval.
func WithCheckInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.interval = d
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) WatcherOption {
	return func(w *Watcher) {
		w.now = now
	}
}

// NewWatcher creates an expiry watcher. onExpire is invoked after a
// detected expiry has cleared the store and published the notification;
// it is where the caller forces navigation back to the login entry point.
func NewWatcher(store *Store, bus *notify.Bus, onExpire func(), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		store:    store,
		bus:      bus,
		onExpire: onExpire,
		interval: CheckInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins polling. Calling Start on a running watcher is a no-op.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	w.cancel = cancel
	w.done = done

	// run closes its own copy of done; Stop may null the field before
	// the goroutine ever gets scheduled.
	go w.run(ctx, done)

	log.Debug().Dur("interval", w.interval).Msg("expiry watcher started")
}

// Stop releases the polling timer. It is idempotent and safe to call
// from any teardown path.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	done := w.done
	w.cancel = nil
	w.done = nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	log.Debug().Msg("expiry watcher stopped")
}

func (w *Watcher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check evaluates the stored token once. Exposed to the run loop only;
// tests drive it directly to avoid timing flakes.
func (w *Watcher) check() {
	token, err := w.store.Read()
	if err != nil {
		// No token, nothing to watch.
		return
	}

	remaining, err := Remaining(token, w.now())
	if err != nil {
		// A transient or foreign token value must not force a logout.
		log.Debug().Err(err).Msg("stored token not decodable, skipping expiry check")
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case remaining <= 0:
		if err := w.store.Clear(); err != nil {
			log.Error().Err(err).Msg("failed to clear expired token")
		}
		w.bus.Publish(expiredMessage, notify.KindError)
		w.warned = false
		if w.onExpire != nil {
			w.onExpire()
		}

	case remaining <= WarningWindow:
		if !w.warned {
			w.bus.Publish(warningMessage, notify.KindWarning)
			w.warned = true
		}

	default:
		// Token was refreshed; re-arm the warning.
		if w.warned {
			w.warned = false
		}
	}
}
