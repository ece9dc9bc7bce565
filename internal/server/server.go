// Package server hosts the local dashboard: a small HTTP server whose
// route tree is gated per-request by the access router, backed by the
// career-services API through the request gateway.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"filippo.io/csrf"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/campusworks/careerdeck/internal/access"
	"github.com/campusworks/careerdeck/internal/api"
	"github.com/campusworks/careerdeck/internal/credentials"
	"github.com/campusworks/careerdeck/internal/notify"
	"github.com/campusworks/careerdeck/internal/session"
)

// Config holds the server configuration.
type Config struct {
	Listen      string
	CORSOrigins []string
	IdP         IdPConfig
}

// IdPConfig describes the external identity provider used for login.
type IdPConfig struct {
	Domain       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Server serves the role-gated dashboard routes.
type Server struct {
	cfg     Config
	session *session.Session
	boot    *session.Bootstrap
	api     *api.Client
	bus     *notify.Bus
	watcher *credentials.Watcher
	login   *Login
}

func New(cfg Config, sess *session.Session, boot *session.Bootstrap, client *api.Client, bus *notify.Bus, watcher *credentials.Watcher) *Server {
	return &Server{
		cfg:     cfg,
		session: sess,
		boot:    boot,
		api:     client,
		bus:     bus,
		watcher: watcher,
		login:   NewLogin(cfg.IdP, boot),
	}
}

// Handler builds the full route tree. HTML routes get CSRF protection,
// the JSON routes get CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Login entry point and external identity flow (public)
	mux.HandleFunc(access.LoginPath, s.login.PageHandler)
	mux.HandleFunc("/login/start", s.login.StartHandler)
	mux.HandleFunc("/callback", s.login.CallbackHandler)
	mux.HandleFunc("/logout", s.logoutHandler)

	// Current notification for the toast poller
	mux.HandleFunc("/api/notification", s.notificationHandler)

	// Everything else is resolved through the access router.
	mux.HandleFunc("/", s.dispatch)

	protection := csrf.New()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isAPIRoute(r.URL.Path) {
			withCORS(s.cfg.CORSOrigins, mux).ServeHTTP(w, r)
		} else {
			protection.Handler(mux).ServeHTTP(w, r)
		}
	})
}

// Run serves until ctx is cancelled. The expiry watcher runs for the
// lifetime of the server and is released unconditionally on the way out.
func (s *Server) Run(ctx context.Context) error {
	s.bus.Register(newToastLog())

	s.watcher.Start(ctx)
	defer s.watcher.Stop()
	defer s.bus.Stop()

	srv := configureHTTPServer(s.cfg.Listen, s.Handler())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info().Str("addr", s.cfg.Listen).Msg("dashboard listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// dispatch resolves the requested path against the session and either
// redirects, renders the page, or renders the 404/unauthorized fallback.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()

	decision := access.Resolve(snap.User, r.URL.Path)
	switch decision.Kind {
	case access.DecisionRedirect:
		http.Redirect(w, r, decision.Location, http.StatusFound)
	case access.DecisionNotFound:
		s.renderNotFound(w, r)
	case access.DecisionAllow:
		s.renderPage(w, r, snap)
	}
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	s.boot.Logout()
	http.Redirect(w, r, access.LoginPath, http.StatusFound)
}

func (s *Server) notificationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	current := s.bus.Current()
	if current == nil {
		w.Write([]byte("null")) //nolint:errcheck
		return
	}
	json.NewEncoder(w).Encode(current) //nolint:errcheck
}

func isAPIRoute(path string) bool {
	return len(path) >= 5 && path[:5] == "/api/"
}

// withCORS adds CORS support for the JSON endpoints.
func withCORS(allowedOrigins []string, h http.Handler) http.Handler {
	middleware := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return middleware.Handler(h)
}

func configureHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       time.Minute,
		MaxHeaderBytes:    8 * 1024, // 8KiB
	}
}

// toastLog is the server-side notification renderer: toasts are logged
// and the poll endpoint serves the current one from the bus.
type toastLog struct{}

func newToastLog() *toastLog {
	return &toastLog{}
}

func (t *toastLog) Show(n notify.Notification) {
	log.Info().
		Str("kind", string(n.Kind)).
		Str("message", n.Message).
		Msg("notification")
}

func (t *toastLog) Clear() {}
