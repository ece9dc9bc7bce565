package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/campusworks/careerdeck/internal/api"
)

// ApplicationsCmd manages a student's job applications.
type ApplicationsCmd struct {
	List     ApplicationsListCmd     `cmd:"" help:"List my applications"`
	Submit   ApplicationsSubmitCmd   `cmd:"" help:"Apply to a job posting"`
	Withdraw ApplicationsWithdrawCmd `cmd:"" help:"Withdraw an application"`
}

type ApplicationsListCmd struct {
	ClientFlags
}

func (a *ApplicationsListCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := a.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.resolve(ctx); err != nil {
		return err
	}

	apps, err := c.api.MyApplications(ctx)
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	if len(apps) == 0 {
		fmt.Println("No applications found.")
		fmt.Println()
		fmt.Println("To apply to a posting:")
		fmt.Println("  careerdeck applications submit <job-id>")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tJOB\tSTATUS\tSUBMITTED")

	for _, app := range apps {
		job := app.JobTitle
		if job == "" {
			job = app.JobID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			app.ID, job, app.Status, app.SubmittedAt.Format("2006-01-02 15:04"))
	}

	w.Flush()
	return nil
}

type ApplicationsSubmitCmd struct {
	ClientFlags
	JobID       string `arg:"" help:"Job posting ID"`
	CoverLetter string `help:"Cover letter text"`
}

func (a *ApplicationsSubmitCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := a.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.resolve(ctx); err != nil {
		return err
	}

	created, err := c.api.SubmitApplication(ctx, &api.NewApplication{
		JobID:       a.JobID,
		CoverLetter: a.CoverLetter,
	})
	if err != nil {
		return fmt.Errorf("failed to submit application: %w", err)
	}

	fmt.Printf("Application %s submitted (status: %s)\n", created.ID, created.Status)
	return nil
}

type ApplicationsWithdrawCmd struct {
	ClientFlags
	ID string `arg:"" help:"Application ID"`
}

func (a *ApplicationsWithdrawCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := a.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.resolve(ctx); err != nil {
		return err
	}

	if err := c.api.WithdrawApplication(ctx, a.ID); err != nil {
		return fmt.Errorf("failed to withdraw application: %w", err)
	}

	fmt.Printf("Application %s withdrawn.\n", a.ID)
	return nil
}
