package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"organizo/internal/config"
	"organizo/internal/exitcode"
	"organizo/internal/session"
	"organizo/internal/ui"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	username string
	password string
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate and store a session" }
func (c *LoginCmd) Usage() string     { return "organizo login [--username <name>] [--password <pw>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.username, "username", "", "")
	fs.StringVar(&c.username, "u", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password, "p", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	username, password := c.username, c.password

	// Missing flags fall back to the interactive prompt.
	if username == "" || password == "" {
		values, err := ui.RunPrompt([]ui.Field{
			{Label: "Username"},
			{Label: "Password", Secret: true},
		}, os.Stdin, errOut)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		username, password = values[0], values[1]
	}

	if username == "" || password == "" {
		fmt.Fprintln(errOut, "error: Please fill in all fields.")
		return exitcode.UserError
	}

	creds, err := deps.Svc.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	sess := session.Session{Token: creds.Token, UserID: creds.UserID, Role: creds.Role}
	if err := deps.Sessions.Save(sess); err != nil {
		fmt.Fprintf(errOut, "error: failed to save session: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s (%s)\n", username, creds.Role)
	}
	return exitcode.Success
}
