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
	Register(&ResetPasswordCmd{})
}

// ResetPasswordCmd completes the recovery flow: the code is verified
// first, then the new password submitted with it.
type ResetPasswordCmd struct {
	email    string
	otp      string
	password string
	confirm  string
}

func (c *ResetPasswordCmd) Name() string      { return "reset-password" }
func (c *ResetPasswordCmd) Aliases() []string { return nil }
func (c *ResetPasswordCmd) Synopsis() string  { return "Set a new password with a one-time code" }
func (c *ResetPasswordCmd) Usage() string {
	return "organizo reset-password --email <addr> --otp <code> --password <pw> --confirm <pw>"
}
func (c *ResetPasswordCmd) NeedsAuth() bool { return false }

func (c *ResetPasswordCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.otp, "otp", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.confirm, "confirm", "", "")
}

func (c *ResetPasswordCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	if c.email == "" || c.otp == "" || c.password == "" || c.confirm == "" {
		fmt.Fprintln(errOut, "error: Please fill in all fields.")
		return exitcode.UserError
	}
	if c.password != c.confirm {
		fmt.Fprintln(errOut, "error: Passwords do not match.")
		return exitcode.UserError
	}

	if err := deps.Svc.VerifyOTP(ctx, c.email, c.otp); err != nil {
		return reportBackendErr(errOut, err)
	}
	if err := deps.Svc.ResetPassword(ctx, c.email, c.otp, c.password); err != nil {
		return reportBackendErr(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "password updated, log in with: organizo login")
	}
	return exitcode.Success
}
