package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"organizo/internal/config"
	"organizo/internal/dashboard"
	"organizo/internal/exitcode"
	"organizo/internal/push"
	"organizo/internal/service"
)

func init() {
	Register(&RmUserCmd{})
}

// RmUserCmd deletes a user. Admin only, confirmed like rm.
type RmUserCmd struct {
	yes bool
}

func (c *RmUserCmd) Name() string      { return "rm-user" }
func (c *RmUserCmd) Aliases() []string { return nil }
func (c *RmUserCmd) Synopsis() string  { return "Delete a user (admin)" }
func (c *RmUserCmd) Usage() string     { return "organizo rm-user [--yes] <user-id>" }
func (c *RmUserCmd) NeedsAuth() bool   { return true }

func (c *RmUserCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmUserCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	if deps.Session.Role != service.RoleAdmin {
		fmt.Fprintln(errOut, dashboard.ErrUnauthorized.Error())
		return exitcode.AuthError
	}
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: user id required")
		return exitcode.UserError
	}
	id := args[0]

	if !c.yes {
		fmt.Fprintf(errOut, "delete user %s? [y/N] ", id)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(line)) != "y" {
			if !cfg.Quiet {
				fmt.Fprintln(out, "cancelled")
			}
			return exitcode.Success
		}
	}

	if err := deps.Svc.DeleteUser(ctx, id); err != nil {
		return reportBackendErr(errOut, err)
	}
	if deps.Channel != nil {
		deps.Channel.Emit(push.EventUserDeleted, id)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
