package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"organizo/internal/config"
	"organizo/internal/exitcode"
	"organizo/internal/push"
)

func init() {
	Register(&UpdateCmd{})
}

// UpdateCmd implements the update command.
type UpdateCmd struct {
	taskFlags
}

func (c *UpdateCmd) Name() string      { return "update" }
func (c *UpdateCmd) Aliases() []string { return []string{"edit"} }
func (c *UpdateCmd) Synopsis() string  { return "Update a task" }
func (c *UpdateCmd) Usage() string {
	return "organizo update [task flags] <task-id> <title...>"
}
func (c *UpdateCmd) NeedsAuth() bool { return true }

func (c *UpdateCmd) RegisterFlags(fs *flag.FlagSet) {
	c.taskFlags.register(fs)
}

func (c *UpdateCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: task id and title required")
		return exitcode.UserError
	}
	id := args[0]
	title := strings.Join(args[1:], " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	draft, code := c.taskFlags.draft(title, errOut)
	if code != exitcode.Success {
		return code
	}

	updated, err := deps.Svc.UpdateTask(ctx, id, draft)
	if err != nil {
		return reportBackendErr(errOut, err)
	}
	if deps.Channel != nil {
		deps.Channel.Emit(push.EventTaskUpdated, updated)
	}
	_ = deps.Svc.LogAction(ctx, "Updated task: "+updated.Title)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
