package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"organizo/internal/config"
	"organizo/internal/exitcode"
	"organizo/internal/push"
)

func init() {
	Register(&AssignCmd{})
}

// AssignCmd implements the assign command. Only the assignee field goes
// over the wire; the task is otherwise untouched.
type AssignCmd struct{}

func (c *AssignCmd) Name() string      { return "assign" }
func (c *AssignCmd) Aliases() []string { return nil }
func (c *AssignCmd) Synopsis() string  { return "Assign a task to a user" }
func (c *AssignCmd) Usage() string     { return "organizo assign <task-id> <user-id>" }
func (c *AssignCmd) NeedsAuth() bool   { return true }

func (c *AssignCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AssignCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: task id and user id required")
		return exitcode.UserError
	}
	taskID, userID := args[0], args[1]

	updated, err := deps.Svc.AssignTask(ctx, taskID, userID)
	if err != nil {
		return reportBackendErr(errOut, err)
	}
	if deps.Channel != nil {
		deps.Channel.Emit(push.EventTaskAssigned, updated)
	}
	_ = deps.Svc.LogAction(ctx, "Assigned task: "+updated.Title)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
