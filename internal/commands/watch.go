package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"organizo/internal/config"
	"organizo/internal/dashboard"
	"organizo/internal/exitcode"
	"organizo/internal/service"
	"organizo/internal/ui"
)

func init() {
	Register(&WatchCmd{})
}

// WatchCmd runs the live notification bell: the current list plus every
// pushed notification until the user quits.
type WatchCmd struct{}

func (c *WatchCmd) Name() string      { return "watch" }
func (c *WatchCmd) Aliases() []string { return nil }
func (c *WatchCmd) Synopsis() string  { return "Watch notifications live" }
func (c *WatchCmd) Usage() string     { return "organizo watch" }
func (c *WatchCmd) NeedsAuth() bool   { return true }

func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WatchCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	if deps.Channel == nil {
		fmt.Fprintln(errOut, "error: push channel unavailable")
		return exitcode.BackendError
	}

	f := dashboard.NewFeed(deps.Session, deps.Svc, deps.Channel)
	if err := f.Mount(ctx); err != nil {
		if errors.Is(err, dashboard.ErrNotLoggedIn) {
			fmt.Fprintln(errOut, "error: not logged in (run: organizo login)")
			return exitcode.AuthError
		}
		return reportBackendErr(errOut, err)
	}
	defer f.Unmount()

	p := tea.NewProgram(ui.NewWatchModel(f.Notifications.Items()), tea.WithOutput(out), tea.WithContext(ctx))
	f.OnChange = func(n service.Notification) {
		p.Send(ui.NotificationMsg{Notification: n})
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
