package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/campusworks/careerdeck/internal/api"
)

// JobsCmd browses job postings from whichever view the caller's role
// permits.
type JobsCmd struct {
	List JobsListCmd `cmd:"" help:"List visible job postings"`
	Post JobsPostCmd `cmd:"" help:"Create a posting (employer)"`
}

// JobsListCmd lists postings. Students see the approved board, staff
// see every posting including pending ones.
type JobsListCmd struct {
	ClientFlags
	All bool `help:"List all postings, including unapproved (staff)" default:"false"`
}

func (j *JobsListCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := j.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.resolve(ctx); err != nil {
		return err
	}

	var jobs []api.Job
	if j.All {
		jobs, err = c.api.AdminJobs(ctx)
	} else {
		jobs, err = c.api.StudentJobs(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	if len(jobs) == 0 {
		fmt.Println("No job postings found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOMPANY\tLOCATION\tSTATUS\tPOSTED")

	for _, job := range jobs {
		title := job.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			job.ID, title, job.Company, job.Location, job.Status,
			job.PostedAt.Format("2006-01-02"))
	}

	w.Flush()
	return nil
}

// JobsPostCmd creates a posting on behalf of an employer.
type JobsPostCmd struct {
	ClientFlags
	Title       string `arg:"" help:"Posting title"`
	Location    string `help:"Work location" default:"On campus"`
	Description string `help:"Posting description"`
}

func (j *JobsPostCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := j.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.resolve(ctx); err != nil {
		return err
	}

	created, err := c.api.CreatePosting(ctx, &api.NewJob{
		Title:       j.Title,
		Location:    j.Location,
		Description: j.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to create posting: %w", err)
	}

	fmt.Printf("Posting %q created with ID %s (status: %s)\n", created.Title, created.ID, created.Status)
	return nil
}
