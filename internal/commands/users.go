package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"organizo/internal/config"
	"organizo/internal/dashboard"
	"organizo/internal/exitcode"
	"organizo/internal/service"
)

func init() {
	Register(&UsersCmd{})
}

// UsersCmd lists users. The user table belongs to the elevated boards,
// so the plain User role is turned away.
type UsersCmd struct{}

func (c *UsersCmd) Name() string      { return "users" }
func (c *UsersCmd) Aliases() []string { return nil }
func (c *UsersCmd) Synopsis() string  { return "List users" }
func (c *UsersCmd) Usage() string     { return "organizo users" }
func (c *UsersCmd) NeedsAuth() bool   { return true }

func (c *UsersCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UsersCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	if deps.Session.Role != service.RoleManager && deps.Session.Role != service.RoleAdmin {
		fmt.Fprintln(errOut, dashboard.ErrUnauthorized.Error())
		return exitcode.AuthError
	}

	users, err := deps.Svc.ListUsers(ctx)
	if err != nil {
		return reportBackendErr(errOut, err)
	}
	renderUsers(out, users)
	return exitcode.Success
}
