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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "organizo help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  organizo login [--username <name>] [--password <pw>]
  organizo logout
  organizo signup --name <name> --username <name> --email <addr> --password <pw> --confirm <pw> [--role User|Manager]
  organizo whoami
  organizo forgot-password [--email <addr> | --username <name>]
  organizo reset-password --email <addr> --otp <code> --password <pw> --confirm <pw>
  organizo dashboard [--category assigned|created|overdue] [--search <term>] [--sort status|priority|dueDate] [--logs]
  organizo manager
  organizo admin
  organizo add [task flags] <title...>
  organizo update [task flags] <task-id> <title...>
  organizo assign <task-id> <user-id>
  organizo rm [--yes] <task-id>
  organizo users
  organizo edit-user --name <name> --email <addr> --role <role> <user-id>
  organizo rm-user [--yes] <user-id>
  organizo notifications
  organizo watch
  organizo logs
  organizo help
  organizo version

Task flags:
  --desc <text>          Description
  --due <date>           Due date (YYYY-MM-DD)
  --priority <p>         High, Medium or Low (default Medium)
  --status <s>           "To Do", "In Progress" or "Done" (default "To Do")
  --assignee <user-id>   Assign on create/update
  --every <recurrence>   None, Daily, Weekly or Monthly

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
