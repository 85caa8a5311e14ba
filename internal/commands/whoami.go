package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"organizo/internal/config"
	"organizo/internal/exitcode"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd implements the whoami command.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Print the logged-in user" }
func (c *WhoamiCmd) Usage() string     { return "organizo whoami" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	// The session stores only id and role; the name comes from the
	// user list.
	name := "N/A"
	if users, err := deps.Svc.ListUsers(ctx); err == nil {
		for _, u := range users {
			if u.ID == deps.Session.UserID {
				name = u.Name
				break
			}
		}
	}
	fmt.Fprintf(out, "%s (%s) id=%s\n", name, deps.Session.Role, deps.Session.UserID)
	return exitcode.Success
}
