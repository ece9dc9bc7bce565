package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/campusworks/careerdeck/internal/api"
)

// UsersCmd administers platform users. Staff only; the backend enforces
// this and the gateway surfaces the denial.
type UsersCmd struct {
	List           UsersListCmd           `cmd:"" help:"List all users"`
	Create         UsersCreateCmd         `cmd:"" help:"Create a user"`
	Delete         UsersDeleteCmd         `cmd:"" help:"Delete a user"`
	Export         UsersExportCmd         `cmd:"" help:"Export the user roster as CSV"`
	ValidateBanner UsersValidateBannerCmd `cmd:"" name:"validate-banner" help:"Validate a banner ID"`
}

type UsersListCmd struct {
	ClientFlags
}

func (u *UsersListCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := u.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.resolve(ctx); err != nil {
		return err
	}

	users, err := c.api.AdminUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tBANNER")

	for _, user := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			user.ID, user.FullName(), user.Email, user.Role, user.BannerID)
	}

	w.Flush()
	return nil
}

type UsersCreateCmd struct {
	ClientFlags
	Email     string `arg:"" help:"Email address"`
	FirstName string `help:"First name" required:""`
	LastName  string `help:"Last name" required:""`
	Role      string `help:"Role (STUDENT, EMPLOYER, STAFF, FACULTY)" required:""`
	BannerID  string `help:"Banner ID"`
}

func (u *UsersCreateCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := u.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.resolve(ctx); err != nil {
		return err
	}

	// Banner IDs are checked before the create so a typo fails fast.
	if u.BannerID != "" {
		result, err := c.api.ValidateBannerID(ctx, u.BannerID)
		if err != nil {
			return fmt.Errorf("failed to validate banner ID: %w", err)
		}
		if !result.Valid {
			return fmt.Errorf("banner ID %q rejected: %s", u.BannerID, result.Reason)
		}
	}

	created, err := c.api.CreateUser(ctx, &api.NewUser{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		BannerID:  u.BannerID,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User %s created with ID %s\n", created.Email, created.ID)
	return nil
}

type UsersDeleteCmd struct {
	ClientFlags
	ID    string `arg:"" help:"User ID"`
	Force bool   `help:"Skip confirmation" default:"false"`
}

func (u *UsersDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := u.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.resolve(ctx); err != nil {
		return err
	}

	if !u.Force {
		fmt.Printf("Delete user %s? [y/N]: ", u.ID)

		var response string
		_, _ = fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := c.api.DeleteUser(ctx, u.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Printf("User %s deleted.\n", u.ID)
	return nil
}

type UsersExportCmd struct {
	ClientFlags
	Output string `help:"Output file, stdout when empty" short:"o"`
}

func (u *UsersExportCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := u.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.resolve(ctx); err != nil {
		return err
	}

	csv, err := c.api.ExportUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}

	return writeExport(u.Output, csv)
}

type UsersValidateBannerCmd struct {
	ClientFlags
	BannerID string `arg:"" help:"Banner ID to validate"`
}

func (u *UsersValidateBannerCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := u.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.resolve(ctx); err != nil {
		return err
	}

	result, err := c.api.ValidateBannerID(ctx, u.BannerID)
	if err != nil {
		return fmt.Errorf("failed to validate banner ID: %w", err)
	}

	if result.Valid {
		fmt.Printf("Banner ID %s is valid.\n", result.BannerID)
		return nil
	}

	fmt.Printf("Banner ID %s is invalid: %s\n", result.BannerID, result.Reason)
	return nil
}

func writeExport(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("Export written to %s (%d bytes)\n", path, len(data))
	return nil
}
