package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/campusworks/careerdeck/internal/credentials"
)

// LoginCmd stores a session token and verifies it against the backend.
// The token normally comes out of the browser flow or the token command;
// with --dev-token set no argument is needed.
type LoginCmd struct {
	ClientFlags
	Token string `arg:"" optional:"" help:"Bearer token to store"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := l.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.boot.Resolve(ctx, l.Token); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	snap := c.sess.Snapshot()
	fmt.Printf("Logged in as %s (%s)\n", snap.User.FullName(), snap.User.Role)

	if remaining, err := credentials.Remaining(snap.Token, time.Now()); err == nil {
		fmt.Printf("Session expires in %s\n", remaining.Round(time.Second))
	}

	return nil
}

// LogoutCmd destroys the local session.
type LogoutCmd struct {
	ClientFlags
}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := l.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	c.boot.Logout()
	fmt.Println("Logged out.")
	return nil
}

// WhoamiCmd resolves and prints the current application user.
type WhoamiCmd struct {
	ClientFlags
}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := w.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.resolve(ctx); err != nil {
		return err
	}

	snap := c.sess.Snapshot()
	fmt.Printf("Name:   %s\n", snap.User.FullName())
	fmt.Printf("Email:  %s\n", snap.User.Email)
	fmt.Printf("Role:   %s\n", snap.User.Role)
	if snap.User.BannerID != "" {
		fmt.Printf("Banner: %s\n", snap.User.BannerID)
	}

	if expiry, err := credentials.Expiry(snap.Token); err == nil {
		fmt.Printf("Token expires: %s\n", expiry.Format("2006-01-02 15:04:05"))
	}

	return nil
}
