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
	"organizo/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	taskFlags
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "organizo add [--due <date>] [--priority <p>] [--status <s>] [--desc <text>] [--assignee <user-id>] [--every <recurrence>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	c.taskFlags.register(fs)
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	draft, code := c.taskFlags.draft(title, errOut)
	if code != exitcode.Success {
		return code
	}

	created, err := deps.Svc.CreateTask(ctx, draft)
	if err != nil {
		return reportBackendErr(errOut, err)
	}
	if deps.Channel != nil {
		deps.Channel.Emit(push.EventTaskCreated, created)
	}
	_ = deps.Svc.LogAction(ctx, "Created task: "+created.Title)

	if !cfg.Quiet {
		fmt.Fprintf(out, "created %s\n", created.ID)
	}
	return exitcode.Success
}

// taskFlags is the flag set shared by add and update.
type taskFlags struct {
	description string
	dueDate     string
	priority    string
	status      string
	assignee    string
	recurrence  string
}

func (f *taskFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.description, "desc", "", "")
	fs.StringVar(&f.dueDate, "due", "", "")
	fs.StringVar(&f.priority, "priority", "", "")
	fs.StringVar(&f.status, "status", "", "")
	fs.StringVar(&f.assignee, "assignee", "", "")
	fs.StringVar(&f.recurrence, "every", "", "")
}

// draft validates the flags into a TaskDraft. On failure it prints the
// problem and returns a non-success exit code.
func (f *taskFlags) draft(title string, errOut io.Writer) (service.TaskDraft, int) {
	priority := service.PriorityMedium
	if f.priority != "" {
		var err error
		priority, err = service.ParsePriority(f.priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return service.TaskDraft{}, exitcode.UserError
		}
	}
	status := service.StatusToDo
	if f.status != "" {
		var err error
		status, err = service.ParseStatus(f.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return service.TaskDraft{}, exitcode.UserError
		}
	}

	draft := service.TaskDraft{
		Title:       title,
		Description: f.description,
		DueDate:     f.dueDate,
		Priority:    priority,
		Status:      status,
		Assignee:    f.assignee,
		Recurrence:  service.RecurrenceNone,
	}
	if f.recurrence != "" {
		rec, err := service.ParseRecurrence(f.recurrence)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return service.TaskDraft{}, exitcode.UserError
		}
		draft.Recurrence = rec
		draft.IsRecurring = rec != service.RecurrenceNone
	}
	return draft, exitcode.Success
}
