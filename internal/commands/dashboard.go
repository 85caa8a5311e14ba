package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"organizo/internal/config"
	"organizo/internal/dashboard"
	"organizo/internal/exitcode"
	"organizo/internal/output"
)

func init() {
	Register(&DashboardCmd{})
}

// DashboardCmd renders the per-user dashboard: one task category with
// optional search, sort and the activity-log panel.
type DashboardCmd struct {
	category string
	search   string
	sortKey  string
	showLogs bool
}

func (c *DashboardCmd) Name() string      { return "dashboard" }
func (c *DashboardCmd) Aliases() []string { return []string{"dash"} }
func (c *DashboardCmd) Synopsis() string  { return "Show your task dashboard" }
func (c *DashboardCmd) Usage() string {
	return "organizo dashboard [--category assigned|created|overdue] [--search <term>] [--sort status|priority|dueDate] [--logs]"
}
func (c *DashboardCmd) NeedsAuth() bool { return true }

func (c *DashboardCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.sortKey, "sort", "", "")
	fs.BoolVar(&c.showLogs, "logs", false, "")
}

func (c *DashboardCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	category := dashboard.CategoryAssigned
	if c.category != "" {
		var err error
		category, err = dashboard.ParseCategory(c.category)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}
	if c.sortKey != "" {
		switch c.sortKey {
		case "status", "priority", "dueDate":
		default:
			fmt.Fprintf(errOut, "error: unknown sort key: %s\n", c.sortKey)
			return exitcode.UserError
		}
	}

	d := dashboard.NewUserDashboard(category, deps.Session, deps.Svc, deps.Channel)
	if err := d.Mount(ctx); err != nil {
		switch {
		case errors.Is(err, dashboard.ErrNotLoggedIn):
			fmt.Fprintln(errOut, "error: not logged in (run: organizo login)")
			return exitcode.AuthError
		case errors.Is(err, dashboard.ErrUseManagerBoard), errors.Is(err, dashboard.ErrUseAdminBoard):
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		default:
			return reportBackendErr(errOut, err)
		}
	}

	if c.sortKey != "" {
		d.SortTasks(c.sortKey)
	}
	renderTasks(out, category.Title(), d.Search(c.search), d.UserName)

	if c.showLogs {
		if err := d.FetchLogs(ctx); err != nil {
			return reportBackendErr(errOut, err)
		}
		output.FormatSectionHeader(out, "Activity")
		if len(d.Logs) == 0 {
			fmt.Fprintln(out, "(no activity)")
		}
		for _, l := range d.Logs {
			output.FormatLog(out, l)
		}
	}
	return exitcode.Success
}
