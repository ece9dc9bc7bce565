package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/campusworks/careerdeck/internal/api"
	"github.com/campusworks/careerdeck/internal/credentials"
	"github.com/campusworks/careerdeck/internal/gateway"
	"github.com/campusworks/careerdeck/internal/logger"
	"github.com/campusworks/careerdeck/internal/notify"
	"github.com/campusworks/careerdeck/internal/session"
)

type Globals struct {
	Debug   bool
	Version string
}

// ClientFlags are the connection flags shared by every command that
// talks to the backend.
type ClientFlags struct {
	APIBase  string `help:"Backend API base URL" default:"http://localhost:8081/learningsystem/api" env:"CAREERDECK_API_BASE"`
	DevToken string `help:"Static development token, bypasses the identity provider" env:"CAREERDECK_DEV_TOKEN"`
	CredsDir string `help:"Custom credentials directory"`
	CacheDir string `help:"HTTP cache directory, in-memory when empty"`
}

// core is the wired-up client stack behind a command: credential store,
// notification bus with a terminal renderer, gateway, typed API client
// and the session bootstrap.
type core struct {
	store *credentials.Store
	bus   *notify.Bus
	api   *api.Client
	sess  *session.Session
	boot  *session.Bootstrap
}

func (f *ClientFlags) wire(globals *Globals) (*core, error) {
	setupLogging(globals.Debug)

	store, err := credentials.NewStore(f.CredsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}

	bus := notify.New()
	bus.Register(newTerminalToast(os.Stderr))

	hc := gateway.NewInMemoryCachingHTTPClient()
	if f.CacheDir != "" {
		hc = gateway.NewCachingHTTPClient(f.CacheDir)
	}
	hc.Transport = logger.NewHTTPRequests(hc.Transport, log.Logger)

	gw, err := gateway.New(f.APIBase, store, bus,
		gateway.WithHTTPClient(hc),
		gateway.WithRetry(3))
	if err != nil {
		return nil, err
	}

	client := api.New(gw)
	sess := session.New()
	boot := session.NewBootstrap(sess, store, client,
		session.WithDevToken(f.DevToken))

	return &core{
		store: store,
		bus:   bus,
		api:   client,
		sess:  sess,
		boot:  boot,
	}, nil
}

// resolve runs the identity bootstrap before a backend command.
func (c *core) resolve(ctx context.Context) error {
	if err := c.boot.Resolve(ctx, ""); err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}
	return nil
}

func (c *core) close() {
	c.bus.Stop()
}

func setupLogging(debug bool) {
	log.Logger = logger.Setup(debug)
}

// terminalToast renders notifications to the terminal. The bus handles
// replacement and expiry; this only prints what it is shown.
type terminalToast struct {
	w io.Writer
}

func newTerminalToast(w io.Writer) *terminalToast {
	return &terminalToast{w: w}
}

func (t *terminalToast) Show(n notify.Notification) {
	fmt.Fprintf(t.w, "[%s] %s\n", n.Kind, n.Message)
}

func (t *terminalToast) Clear() {}
