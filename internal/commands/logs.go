package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"organizo/internal/config"
	"organizo/internal/exitcode"
	"organizo/internal/output"
)

func init() {
	Register(&LogsCmd{})
}

// LogsCmd prints the activity log.
type LogsCmd struct{}

func (c *LogsCmd) Name() string      { return "logs" }
func (c *LogsCmd) Aliases() []string { return nil }
func (c *LogsCmd) Synopsis() string  { return "Show the activity log" }
func (c *LogsCmd) Usage() string     { return "organizo logs" }
func (c *LogsCmd) NeedsAuth() bool   { return true }

func (c *LogsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogsCmd) Run(ctx context.Context, cfg *config.Config, deps Deps, args []string, out, errOut io.Writer) int {
	logs, err := deps.Svc.ListLogs(ctx)
	if err != nil {
		return reportBackendErr(errOut, err)
	}
	if len(logs) == 0 {
		fmt.Fprintln(out, "(no activity)")
		return exitcode.Success
	}
	for _, l := range logs {
		output.FormatLog(out, l)
	}
	return exitcode.Success
}
