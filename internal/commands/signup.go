package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"regexp"

	"organizo/internal/config"
	"organizo/internal/exitcode"
	"organizo/internal/service"
	"organizo/internal/session"
)

func init() {
	Register(&SignupCmd{})
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignupCmd implements the signup command.
type SignupCmd struct {
	name     string
	username string
	email    string
	password string
	confirm  string
	role     string
}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return []string{"register"} }
func (c *SignupCmd) Synopsis() string  { return "Create an account and store a session" }
func (c *SignupCmd) Usage() string {
	return "organizo signup --name <name> --username <name> --email <addr> --password <pw> --confirm <pw> [--role User|Manager]"
}
func (c *SignupCmd) NeedsAuth() bool { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.username, "username", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.confirm, "confirm", "", "")
	fs.StringVar(&c.role, "role", string(service.RoleUser), "")
}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	// All validation happens before any network call.
	if c.name == "" || c.username == "" || c.email == "" || c.password == "" || c.confirm == "" {
		fmt.Fprintln(errOut, "error: Please fill in all fields.")
		return exitcode.UserError
	}
	if c.password != c.confirm {
		fmt.Fprintln(errOut, "error: Passwords do not match.")
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
	if role == service.RoleAdmin {
		fmt.Fprintln(errOut, "error: the Admin role cannot be self-assigned")
		return exitcode.UserError
	}

	creds, err := deps.Svc.Register(ctx, service.Registration{
		Name:     c.name,
		Username: c.username,
		Email:    c.email,
		Password: c.password,
		Role:     role,
	})
	if err != nil {
		return reportBackendErr(errOut, err)
	}

	sess := session.Session{Token: creds.Token, UserID: creds.UserID, Role: creds.Role}
	if err := deps.Sessions.Save(sess); err != nil {
		fmt.Fprintf(errOut, "error: failed to save session: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "account created, logged in as %s (%s)\n", c.username, creds.Role)
	}
	return exitcode.Success
}
