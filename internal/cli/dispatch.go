// Package cli parses arguments and dispatches commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"organizo/internal/commands"
	"organizo/internal/config"
	"organizo/internal/exitcode"
	"organizo/internal/push"
	"organizo/internal/service"
	"organizo/internal/session"
)

// ServiceFactory creates the backend client for one invocation.
type ServiceFactory func(ctx context.Context, cfg *config.Config, sess session.Session) (service.Service, error)

// ChannelFactory creates the push connection, nil when the command has
// no use for one.
type ChannelFactory func(cfg *config.Config, sess session.Session) push.Broadcaster

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	services ServiceFactory
	channels ChannelFactory
}

// NewDispatcher creates a dispatcher. channels may be nil.
func NewDispatcher(registry *commands.Registry, services ServiceFactory, channels ChannelFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		services: services,
		channels: channels,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> the dashboard, the app's landing view.
	if len(args) == 0 {
		args = []string{"dashboard"}
	}

	cmdName := args[0]

	// Flags require a command first.
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // errors are shaped below

	// Common flags
	var configDir string
	var apiURL string
	var pushURL string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&apiURL, "api-url", "", "")
	fs.StringVar(&pushURL, "push-url", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "flag needs an argument") {
			parts := strings.Split(errStr, ":")
			flagPart := strings.TrimSpace(parts[0])
			flagPart = strings.TrimPrefix(flagPart, "flag ")
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagPart)
			return exitcode.UserError
		}
		if strings.HasPrefix(errStr, "flag provided but not defined: ") {
			flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %s\n", errStr)
		return exitcode.UserError
	}

	// A leading dash in the positionals means a flag slipped past parsing.
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if pushURL != "" {
		cfg.PushURL = pushURL
	}

	sessions := session.NewStore(cfg.SessionPath())
	sess, err := sessions.Load()
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read session: %v\n", err)
		return exitcode.AuthError
	}

	if cmd.NeedsAuth() && !sess.LoggedIn() {
		fmt.Fprintln(errOut, "error: not logged in (run: organizo login)")
		return exitcode.AuthError
	}

	// Every command gets a backend client; login and signup talk to the
	// API before any session exists.
	svc, err := d.services(ctx, cfg, sess)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	var ch push.Broadcaster
	if d.channels != nil {
		ch = d.channels(cfg, sess)
	}

	deps := commands.Deps{
		Sessions: sessions,
		Session:  sess,
		Svc:      svc,
		Channel:  ch,
	}
	return cmd.Run(ctx, cfg, deps, positionalArgs, out, errOut)
}
