// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"organizo/internal/config"
	"organizo/internal/push"
	"organizo/internal/service"
	"organizo/internal/session"
)

// Deps carries everything a command may need at run time. The dispatcher
// fills it in: Sessions is always set, Svc is always set (login and signup
// talk to the backend before any credentials exist), Channel may be nil
// when no push connection is configured.
type Deps struct {
	// Sessions persists credentials under the config dir.
	Sessions *session.Store

	// Session is the credentials loaded for this invocation. Zero when
	// not logged in.
	Session session.Session

	// Svc is the backend client.
	Svc service.Service

	// Channel is the push connection, nil if disabled.
	Channel push.Broadcaster
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a stored session.
	// Commands like help, version, login, signup return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command and returns an exit code.
	// args contains positional arguments after flag parsing.
	Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int
}
