package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"organizo/internal/config"
	"organizo/internal/dashboard"
	"organizo/internal/exitcode"
	"organizo/internal/push"
	"organizo/internal/service"
)

func init() {
	Register(&EditUserCmd{})
}

// EditUserCmd updates a user's profile and role. Admin only.
type EditUserCmd struct {
	name  string
	email string
	role  string
}

func (c *EditUserCmd) Name() string      { return "edit-user" }
func (c *EditUserCmd) Aliases() []string { return nil }
func (c *EditUserCmd) Synopsis() string  { return "Update a user (admin)" }
func (c *EditUserCmd) Usage() string {
	return "organizo edit-user --name <name> --email <addr> --role <role> <user-id>"
}
func (c *EditUserCmd) NeedsAuth() bool { return true }

func (c *EditUserCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.role, "role", "", "")
}

func (c *EditUserCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	if deps.Session.Role != service.RoleAdmin {
		fmt.Fprintln(errOut, dashboard.ErrUnauthorized.Error())
		return exitcode.AuthError
	}
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: user id required")
		return exitcode.UserError
	}
	if c.name == "" || c.email == "" || c.role == "" {
		fmt.Fprintln(errOut, "error: Please fill in all fields.")
		return exitcode.UserError
	}
	if !emailPattern.MatchString(c.email) {
		fmt.Fprintln(errOut, "error: Invalid email format.")
		return exitcode.UserError
	}
	role, err := service.ParseRole(c.role)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	updated, err := deps.Svc.UpdateUser(ctx, args[0], service.UserDraft{
		Name:  c.name,
		Email: c.email,
		Role:  role,
	})
	if err != nil {
		return reportBackendErr(errOut, err)
	}
	if deps.Channel != nil {
		deps.Channel.Emit(push.EventUserUpdated, updated)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
