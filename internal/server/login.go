package server

import (
	"crypto/rand"
	"fmt"
	"net/http"

	"github.com/mr-tron/base58"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/campusworks/careerdeck/internal/session"
)

// Login drives the external identity flow: redirect to the provider,
// validate the callback, and hand the raw ID token to the identity
// bootstrap. When the development bypass is active the provider is never
// contacted.
type Login struct {
	oauth *oauth2.Config
	boot  *session.Bootstrap
}

func NewLogin(idp IdPConfig, boot *session.Bootstrap) *Login {
	var oauth *oauth2.Config
	if idp.Domain != "" {
		oauth = &oauth2.Config{
			ClientID:     idp.ClientID,
			ClientSecret: idp.ClientSecret,
			RedirectURL:  idp.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  fmt.Sprintf("https://%s/authorize", idp.Domain),
				TokenURL: fmt.Sprintf("https://%s/oauth/token", idp.Domain),
			},
		}
	}

	return &Login{oauth: oauth, boot: boot}
}

// PageHandler renders the login entry point.
func (l *Login) PageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(loginPage)) //nolint:errcheck
}

// StartHandler kicks off the provider redirect.
func (l *Login) StartHandler(w http.ResponseWriter, r *http.Request) {
	// Dev bypass: the bootstrap already holds a static token.
	if l.oauth == nil {
		if err := l.boot.Resolve(r.Context(), ""); err != nil {
			log.Warn().Err(err).Msg("dev bypass resolution failed")
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	state := l.saveState(w)

	log.Debug().Msg("redirecting to identity provider")
	http.Redirect(w, r, l.oauth.AuthCodeURL(state), http.StatusFound)
}

// CallbackHandler validates the provider callback, exchanges the code
// and resolves the application user.
func (l *Login) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	if l.oauth == nil {
		http.NotFound(w, r)
		return
	}

	state := r.FormValue("state")
	code := r.FormValue("code")
	if state == "" || code == "" {
		log.Warn().Msg("callback missing state or code")
		http.Error(w, "Authentication failed", http.StatusBadRequest)
		return
	}

	cookie, err := r.Cookie("state")
	if err != nil || state != cookie.Value {
		log.Warn().Msg("callback state mismatch")
		http.Error(w, "Authentication failed", http.StatusBadRequest)
		return
	}

	// Clear the state cookie after validation
	http.SetCookie(w, &http.Cookie{
		Name:     "state",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	token, err := l.oauth.Exchange(r.Context(), code)
	if err != nil {
		log.Warn().Err(err).Msg("failed to exchange code for token")
		http.Error(w, "Authentication failed", http.StatusBadRequest)
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		log.Warn().Msg("provider response missing id_token")
		http.Error(w, "Authentication failed", http.StatusBadRequest)
		return
	}

	if err := l.boot.Resolve(r.Context(), rawIDToken); err != nil {
		// Not an error toast: the router simply keeps the user at login.
		log.Warn().Err(err).Msg("identity resolution failed")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (l *Login) saveState(w http.ResponseWriter) string {
	buf := make([]byte, 24)
	rand.Read(buf) //nolint:errcheck // crypto/rand never fails
	state := base58.Encode(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     "state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300, // enough time for the provider round trip
	})

	return state
}

const loginPage = `<!doctype html>
<html>
<head><title>careerdeck - sign in</title></head>
<body>
<h1>Career Services</h1>
<p>Please sign in with your campus account.</p>
<p><a href="/login/start">Sign in</a></p>
</body>
</html>
`
