// Package base carries the pieces shared by all CLI commands.
package base

import (
	"flag"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded by every CLI command.
type Command struct {
	// UI is the command line UI for user-facing output.
	UI cli.Ui

	// Log is the logger commands hand down to the components they start.
	Log hclog.Logger
}

// NewCommand returns a base command with the given UI and logger.
func NewCommand(ui cli.Ui, log hclog.Logger) *Command {
	return &Command{
		UI:  ui,
		Log: log,
	}
}

// FlagSet wraps flag.FlagSet with help rendering for command Help() output.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps a flag.FlagSet.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

// Help returns the rendered flag usage, indented for inclusion in a
// command's Help() text.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		b.WriteString("  -")
		b.WriteString(fl.Name)
		if fl.DefValue != "" {
			b.WriteString("=")
			b.WriteString(fl.DefValue)
		}
		b.WriteString("\n      ")
		b.WriteString(fl.Usage)
		b.WriteString("\n")
	})
	return b.String()
}
