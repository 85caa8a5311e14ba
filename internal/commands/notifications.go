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
	Register(&NotificationsCmd{})
}

// NotificationsCmd prints the notification bell once.
type NotificationsCmd struct{}

func (c *NotificationsCmd) Name() string      { return "notifications" }
func (c *NotificationsCmd) Aliases() []string { return []string{"bell"} }
func (c *NotificationsCmd) Synopsis() string  { return "List notifications" }
func (c *NotificationsCmd) Usage() string     { return "organizo notifications" }
func (c *NotificationsCmd) NeedsAuth() bool   { return true }

func (c *NotificationsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *NotificationsCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	// One-shot view: no push subscription, just the fetch.
	f := dashboard.NewFeed(deps.Session, deps.Svc, nil)
	if err := f.Mount(ctx); err != nil {
		if errors.Is(err, dashboard.ErrNotLoggedIn) {
			fmt.Fprintln(errOut, "error: not logged in (run: organizo login)")
			return exitcode.AuthError
		}
		return reportBackendErr(errOut, err)
	}

	items := f.Notifications.Items()
	output.FormatSectionHeader(out, fmt.Sprintf("Notifications (%d unread)", f.UnreadCount()))
	if len(items) == 0 {
		fmt.Fprintln(out, "(no notifications)")
		return exitcode.Success
	}
	for _, n := range items {
		output.FormatNotification(out, n)
	}
	return exitcode.Success
}
