package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/campusworks/careerdeck/internal/credentials"
	"github.com/campusworks/careerdeck/internal/server"
	"github.com/campusworks/careerdeck/internal/session"
)

// ServeCmd runs the local dashboard server: role-gated routes, the
// identity flow and the session expiry watcher, all against the
// configured backend.
type ServeCmd struct {
	ClientFlags
	Listen      string   `help:"Listen address" default:"localhost:8080"`
	Config      string   `help:"YAML configuration file" optional:""`
	CORSOrigins []string `help:"Allowed CORS origins for the JSON endpoints" name:"cors-origins"`

	IdPDomain       string `help:"Identity provider domain" env:"CAREERDECK_IDP_DOMAIN"`
	IdPClientID     string `help:"Identity provider client ID" env:"CAREERDECK_IDP_CLIENT_ID"`
	IdPClientSecret string `help:"Identity provider client secret" env:"CAREERDECK_IDP_CLIENT_SECRET"`
	IdPRedirectURL  string `help:"Identity provider callback URL" env:"CAREERDECK_IDP_REDIRECT_URL"`
}

// fileConfig mirrors the serve flags for file-based configuration.
// Flags win over file values.
type fileConfig struct {
	Listen      string   `yaml:"listen"`
	APIBase     string   `yaml:"api_base"`
	CORSOrigins []string `yaml:"cors_origins"`
	IdP         struct {
		Domain       string `yaml:"domain"`
		ClientID     string `yaml:"client_id"`
		ClientSecret string `yaml:"client_secret"`
		RedirectURL  string `yaml:"redirect_url"`
	} `yaml:"idp"`
}

func (s *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	if s.Config != "" {
		if err := s.applyConfigFile(); err != nil {
			return err
		}
	}

	c, err := s.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	watcher := credentials.NewWatcher(c.store, c.bus, c.boot.Logout)

	cfg := server.Config{
		Listen:      s.Listen,
		CORSOrigins: s.CORSOrigins,
		IdP: server.IdPConfig{
			Domain:       s.IdPDomain,
			ClientID:     s.IdPClientID,
			ClientSecret: s.IdPClientSecret,
			RedirectURL:  s.IdPRedirectURL,
		},
	}

	// Pick up a surviving session before serving so a restart does not
	// bounce an already-logged-in user back to the provider.
	if err := c.boot.Resolve(ctx, ""); err != nil && !errors.Is(err, session.ErrNoIdentity) {
		log.Warn().Err(err).Msg("stored session could not be resumed")
	}

	srv := server.New(cfg, c.sess, c.boot, c.api, c.bus, watcher)
	return srv.Run(ctx)
}

func (s *ServeCmd) applyConfigFile() error {
	data, err := os.ReadFile(s.Config)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if s.Listen == "localhost:8080" && fc.Listen != "" {
		s.Listen = fc.Listen
	}
	if fc.APIBase != "" && s.APIBase == "http://localhost:8081/learningsystem/api" {
		s.APIBase = fc.APIBase
	}
	if len(s.CORSOrigins) == 0 {
		s.CORSOrigins = fc.CORSOrigins
	}
	if s.IdPDomain == "" {
		s.IdPDomain = fc.IdP.Domain
	}
	if s.IdPClientID == "" {
		s.IdPClientID = fc.IdP.ClientID
	}
	if s.IdPClientSecret == "" {
		s.IdPClientSecret = fc.IdP.ClientSecret
	}
	if s.IdPRedirectURL == "" {
		s.IdPRedirectURL = fc.IdP.RedirectURL
	}

	return nil
}
