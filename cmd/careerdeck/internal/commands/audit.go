package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
)

// AuditCmd inspects the admin audit trail.
type AuditCmd struct {
	List   AuditListCmd   `cmd:"" help:"List audit log entries"`
	Export AuditExportCmd `cmd:"" help:"Export the audit trail as CSV"`
}

type AuditListCmd struct {
	ClientFlags
}

func (a *AuditListCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := a.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.resolve(ctx); err != nil {
		return err
	}

	logs, err := c.api.AuditLogs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list audit logs: %w", err)
	}

	if len(logs) == 0 {
		fmt.Println("No audit entries found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tACTOR\tACTION\tTARGET")

	for _, entry := range logs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Actor, entry.Action, entry.Target)
	}

	w.Flush()
	return nil
}

type AuditExportCmd struct {
	ClientFlags
	Output string `help:"Output file, stdout when empty" short:"o"`
}

func (a *AuditExportCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := a.wire(globals)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.resolve(ctx); err != nil {
		return err
	}

	csv, err := c.api.ExportAuditLogs(ctx)
	if err != nil {
		return fmt.Errorf("failed to export audit logs: %w", err)
	}

	return writeExport(a.Output, csv)
}
