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
	Register(&ForgotPasswordCmd{})
}

// ForgotPasswordCmd starts the credential recovery flow. The email form
// sends a one-time code; the username form asks the server to mail a
// reset link to the account's address.
type ForgotPasswordCmd struct {
	email    string
	username string
}

func (c *ForgotPasswordCmd) Name() string      { return "forgot-password" }
func (c *ForgotPasswordCmd) Aliases() []string { return nil }
func (c *ForgotPasswordCmd) Synopsis() string  { return "Request a password reset" }
func (c *ForgotPasswordCmd) Usage() string {
	return "organizo forgot-password [--email <addr> | --username <name>]"
}
func (c *ForgotPasswordCmd) NeedsAuth() bool { return false }

func (c *ForgotPasswordCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.username, "username", "", "")
}

func (c *ForgotPasswordCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	if c.email == "" && c.username == "" {
		fmt.Fprintln(errOut, "error: --email or --username required")
		return exitcode.UserError
	}
	if c.email != "" && c.username != "" {
		fmt.Fprintln(errOut, "error: cannot use both --email and --username")
		return exitcode.UserError
	}

	if c.email != "" {
		if !emailPattern.MatchString(c.email) {
			fmt.Fprintln(errOut, "error: Invalid email format.")
			return exitcode.UserError
		}
		if err := deps.Svc.RequestReset(ctx, c.email); err != nil {
			return reportBackendErr(errOut, err)
		}
		if !cfg.Quiet {
			fmt.Fprintln(out, "one-time code sent, complete with: organizo reset-password")
		}
		return exitcode.Success
	}

	if err := deps.Svc.ForgotPassword(ctx, c.username); err != nil {
		return reportBackendErr(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "reset instructions sent to the account's email")
	}
	return exitcode.Success
}
