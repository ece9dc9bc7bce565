package session

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/campusworks/careerdeck/internal/api"
	"github.com/campusworks/careerdeck/internal/credentials"
)

// ErrNoIdentity is returned when Resolve is called with no external
// identity token, no stored token, and no development bypass.
var ErrNoIdentity = errors.New("no identity available")

// Bootstrap resolves an externally-authenticated identity into an
// application user and populates the Session. It runs once per session
// lifetime; re-entrant calls while a resolution is in flight return
// without issuing a duplicate lookup.
type Bootstrap struct {
	session  *Session
	store    *credentials.Store
	api      *api.Client
	devToken string
	onLogout func()

	inFlight atomic.Bool
}

// BootstrapOption configures a Bootstrap.
type BootstrapOption func(*Bootstrap)

// WithDevToken enables the development bypass: the value is used
// directly as both the bearer token and the lookup key, and the external
// identity flow is skipped entirely.
func WithDevToken(token string) BootstrapOption {
	return func(b *Bootstrap) {
		b.devToken = token
	}
}

// WithLogoutFunc sets the navigation invoked after Logout clears state.
func WithLogoutFunc(fn func()) BootstrapOption {
	return func(b *Bootstrap) {
		b.onLogout = fn
	}
}

func NewBootstrap(session *Session, store *credentials.Store, client *api.Client, opts ...BootstrapOption) *Bootstrap {
	b := &Bootstrap{
		session: session,
		store:   store,
		api:     client,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Resolve exchanges an identity token for the application user record
// and stores the result on the Session. rawIDToken is the raw token from
// the external provider's claims; it may be empty, in which case the
// stored token (a prior login surviving a restart) is used. The dev
// bypass token, when configured, takes precedence over both.
//
// Failure leaves the session unauthenticated and is not surfaced as a
// toast: the access router treats the state as "not logged in" and
// redirects to the login entry point.
func (b *Bootstrap) Resolve(ctx context.Context, rawIDToken string) error {
	if b.session.Snapshot().Authenticated {
		return nil
	}

	if !b.inFlight.CompareAndSwap(false, true) {
		log.Debug().Msg("identity resolution already in flight, skipping")
		return nil
	}
	defer b.inFlight.Store(false)

	token := rawIDToken
	if b.devToken != "" {
		log.Debug().Msg("development bypass active, using static token")
		token = b.devToken
	}
	if token == "" {
		stored, err := b.store.Read()
		if err != nil {
			return ErrNoIdentity
		}
		token = stored
	}

	b.session.setLoading(true)
	defer b.session.setLoading(false)

	user, err := b.api.CurrentUserWithToken(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("failed to resolve application user")
		return err
	}

	b.session.set(user, token)

	// Persist only when nothing is stored yet; an existing token is not
	// silently overwritten on every resolution.
	if _, err := b.store.Read(); errors.Is(err, credentials.ErrNoToken) {
		if err := b.store.Write(token); err != nil {
			log.Error().Err(err).Msg("failed to persist token")
		}
	}

	log.Info().
		Str("user", user.Email).
		Str("role", user.Role).
		Msg("identity resolved")

	return nil
}

// Logout destroys the session: in-memory fields nulled, durable storage
// cleared, then navigation back to the login entry point. Also the
// landing path for a forced expiry logout.
func (b *Bootstrap) Logout() {
	b.session.clear()
	if err := b.store.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear stored token")
	}

	log.Info().Msg("session destroyed")

	if b.onLogout != nil {
		b.onLogout()
	}
}
