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
	"organizo/internal/service"
)

func init() {
	Register(&ManagerCmd{})
	Register(&AdminCmd{})
}

// ManagerCmd renders the manager board.
type ManagerCmd struct{}

func (c *ManagerCmd) Name() string      { return "manager" }
func (c *ManagerCmd) Aliases() []string { return nil }
func (c *ManagerCmd) Synopsis() string  { return "Show the manager board" }
func (c *ManagerCmd) Usage() string     { return "organizo manager" }
func (c *ManagerCmd) NeedsAuth() bool   { return true }

func (c *ManagerCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ManagerCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	return runBoard(ctx, service.RoleManager, "Manager Board", deps, out, errOut)
}

// AdminCmd renders the admin board.
type AdminCmd struct{}

func (c *AdminCmd) Name() string      { return "admin" }
func (c *AdminCmd) Aliases() []string { return nil }
func (c *AdminCmd) Synopsis() string  { return "Show the admin board" }
func (c *AdminCmd) Usage() string     { return "organizo admin" }
func (c *AdminCmd) NeedsAuth() bool   { return true }

func (c *AdminCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AdminCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	return runBoard(ctx, service.RoleAdmin, "Admin Board", deps, out, errOut)
}

// runBoard is the shared mount-and-render path for the elevated boards.
func runBoard(ctx context.Context, required service.Role, title string, deps Deps, out, errOut io.Writer) int {
	b := dashboard.NewBoard(required, deps.Session, deps.Svc, deps.Channel)
	if err := b.Mount(ctx); err != nil {
		switch {
		case errors.Is(err, dashboard.ErrNotLoggedIn):
			fmt.Fprintln(errOut, "error: not logged in (run: organizo login)")
			return exitcode.AuthError
		case errors.Is(err, dashboard.ErrUnauthorized):
			fmt.Fprintln(errOut, err.Error())
			return exitcode.AuthError
		default:
			return reportBackendErr(errOut, err)
		}
	}
	renderBoard(out, title, b)
	return exitcode.Success
}
