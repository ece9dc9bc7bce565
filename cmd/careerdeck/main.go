package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/campusworks/careerdeck/cmd/careerdeck/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Serve        commands.ServeCmd        `cmd:"" help:"Run the local dashboard server"`
		Login        commands.LoginCmd        `cmd:"" help:"Store a session token and resolve the user"`
		Logout       commands.LogoutCmd       `cmd:"" help:"Destroy the local session"`
		Whoami       commands.WhoamiCmd       `cmd:"" help:"Show the resolved application user"`
		Token        commands.TokenCmd        `cmd:"" help:"Generate a development JWT token"`
		Jobs         commands.JobsCmd         `cmd:"" help:"Browse job postings"`
		Applications commands.ApplicationsCmd `cmd:"" help:"Manage job applications"`
		Users        commands.UsersCmd        `cmd:"" help:"Administer platform users"`
		Audit        commands.AuditCmd        `cmd:"" help:"Inspect the audit trail"`
		Debug        bool                     `help:"Enable debug mode."`
		Version      kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
