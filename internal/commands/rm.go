package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"organizo/internal/config"
	"organizo/internal/dashboard"
	"organizo/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command. Deletion is two-phase: the target is
// staged, then confirmed with --yes or interactively.
type RmCmd struct {
	yes bool
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "organizo rm [--yes] <task-id>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}
	id := args[0]

	b := dashboard.NewBoard("", deps.Session, deps.Svc, deps.Channel)
	if err := b.Mount(ctx); err != nil {
		if errors.Is(err, dashboard.ErrNotLoggedIn) {
			fmt.Fprintln(errOut, "error: not logged in (run: organizo login)")
			return exitcode.AuthError
		}
		return reportBackendErr(errOut, err)
	}

	if err := b.StageDelete(id); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !c.yes {
		target, _ := b.Tasks.Get(id)
		fmt.Fprintf(errOut, "delete %q? [y/N] ", target.Title)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(line)) != "y" {
			b.CancelDelete()
			if !cfg.Quiet {
				fmt.Fprintln(out, "cancelled")
			}
			return exitcode.Success
		}
	}

	target, _ := b.Tasks.Get(id)
	if err := b.ConfirmDelete(ctx); err != nil {
		return reportBackendErr(errOut, err)
	}
	_ = deps.Svc.LogAction(ctx, "Deleted task: "+target.Title)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
